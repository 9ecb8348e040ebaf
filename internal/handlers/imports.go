package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hferris/tally/internal/services/ledger"
)

const maxUploadBytes = 32 << 20

// ImportPositions handles POST /api/import/positions: one brokerage or
// blended-account CSV plus a source identifier.
func (h *Handler) ImportPositions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	source := r.FormValue("source")
	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	path, err := saveUpload(file, header)
	if err != nil {
		jsonError(w, "could not store upload", http.StatusInternalServerError)
		return
	}
	defer os.Remove(path)

	updated, msg, err := ledger.ImportPositions(h.store, path, source)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if updated > 0 {
		h.logAction("positions import", msg)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
		"message": msg,
	})
}

// ImportStatement handles POST /api/import/statement: one or more
// statement files (CSV or PDF) imported as a single batch, with
// optional category overrides as a JSON object in the "overrides"
// form field.
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	var overrides map[string]string
	if raw := r.FormValue("overrides"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			jsonError(w, "invalid overrides", http.StatusBadRequest)
			return
		}
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		jsonError(w, "missing file", http.StatusBadRequest)
		return
	}

	var paths []string
	defer func() {
		for _, p := range paths {
			os.Remove(p)
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			jsonError(w, "could not read upload", http.StatusBadRequest)
			return
		}
		path, err := saveUpload(f, fh)
		f.Close()
		if err != nil {
			jsonError(w, "could not store upload", http.StatusInternalServerError)
			return
		}
		paths = append(paths, path)
	}

	doc, err := h.store.Load()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result, txns, err := ledger.ImportStatements(h.store, h.statementReader(doc), paths, overrides)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if result.Added > 0 {
		h.logAction("statement import", result.Message)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"added":            result.Added,
		"parsed":           result.Parsed,
		"skipped":          result.Skipped,
		"message":          result.Message,
		"transactions":     txns,
		"detect_recurring": result.Added > 0,
	})
}

// UndoImport handles POST /api/undo-import.
func (h *Handler) UndoImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	doc, err := h.store.Load()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	removed, err := ledger.UndoLastImport(doc)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.Save(doc); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	msg := fmt.Sprintf("Undid last import: removed %d transactions.", removed)
	h.logAction("undo import", msg)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"removed": removed,
		"message": msg,
	})
}

// ClearTransactions handles POST /api/clear-transactions.
func (h *Handler) ClearTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	doc, err := h.store.Load()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	count := ledger.ClearTransactions(doc)
	if err := h.store.Save(doc); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	msg := fmt.Sprintf("Cleared all %d transactions and reset spending history.", count)
	h.logAction("clear transactions", msg)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cleared": count,
		"message": msg,
	})
}

// ImportHistory handles GET /api/history.
func (h *Handler) ImportHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		respondJSON(w, http.StatusOK, []struct{}{})
		return
	}
	entries, err := h.history.Recent(50)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// saveUpload copies an uploaded file to a temp path, preserving the
// extension so statement parsing can dispatch on it.
func saveUpload(src io.Reader, header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	tmp, err := os.CreateTemp("", "tally-upload-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
