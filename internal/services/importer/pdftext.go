package importer

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText pulls the text out of a statement PDF as one flattened
// blob. It tries the pdf library first and falls back to the pdftotext
// binary when that yields nothing. Extraction is best-effort: any
// failure (corrupt file, missing binary) degrades to an empty string,
// which cascades to an empty transaction list rather than an error.
func ExtractPDFText(path string) string {
	if text := extractWithLibrary(path); text != "" {
		return text
	}
	return extractWithPdftotext(path)
}

func extractWithLibrary(path string) (text string) {
	// The pdf package panics on some malformed files.
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	var parts []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, err := page.GetPlainText(nil)
		if err != nil || t == "" {
			continue
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, "\n")
}

func extractWithPdftotext(path string) string {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return ""
	}
	return out.String()
}
