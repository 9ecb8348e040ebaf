// Command import runs a one-shot import of brokerage CSVs or bank/
// credit-card statements into the persisted document.
//
//	import -source fidelity Portfolio_Positions.csv
//	import -source statement january.pdf february.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hferris/tally/internal/config"
	"github.com/hferris/tally/internal/services/importer"
	"github.com/hferris/tally/internal/services/ledger"
	"github.com/hferris/tally/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	source := flag.String("source", "", "import source: "+strings.Join(ledger.PositionSources, ", ")+", or statement")
	docPath := flag.String("config", cfg.DocumentPath, "path to the persisted document")
	flag.Parse()

	if *source == "" || flag.NArg() == 0 {
		flag.Usage()
		return 2
	}
	for _, path := range flag.Args() {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "File not found: %s\n", path)
			return 1
		}
	}

	st := store.New(*docPath)

	if strings.EqualFold(*source, "statement") {
		doc, err := st.Load()
		if err != nil {
			log.Fatalf("load document: %v", err)
		}
		cat := importer.NewCategorizer(nil, doc.BudgetCategories())
		reader := importer.NewStatementReader(cat, cfg.DefaultStatementYear)
		result, _, err := ledger.ImportStatements(st, reader, flag.Args(), nil)
		if err != nil {
			log.Fatalf("import statements: %v", err)
		}
		fmt.Println(result.Message)
		if result.Added == 0 {
			return 1
		}
		return 0
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "position imports take exactly one CSV file")
		return 2
	}
	updated, msg, err := ledger.ImportPositions(st, flag.Arg(0), *source)
	if err != nil {
		log.Fatalf("import positions: %v", err)
	}
	fmt.Println(msg)
	if updated == 0 {
		return 1
	}
	return 0
}
