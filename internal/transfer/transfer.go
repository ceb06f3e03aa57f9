// Package transfer moves quotes in and out of files: JSON both ways, XLSX
// export for spreadsheets and HTML import from pages of <blockquote> elements.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/quoter/internal/quotes"
)

// DefaultExportName is the file name used when exporting without a path.
const DefaultExportName = "quotes.json"

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ImportResult is the outcome of reading quotes from a file.
type ImportResult struct {
	Quotes  []quotes.Quote
	Skipped int // entries missing text or category
}

// ImportJSON reads a JSON array of quote objects. Invalid entries are skipped
// and counted; entries without an ID receive one.
func ImportJSON(r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: read: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return ImportResult{}, fmt.Errorf("import: expected a JSON array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return ImportResult{}, fmt.Errorf("import: parse json: %w", err)
	}

	var res ImportResult
	for _, entry := range raw {
		var q quotes.Quote
		if err := json.Unmarshal(entry, &q); err != nil {
			res.Skipped++
			continue
		}
		if err := quotes.Validate(&q); err != nil {
			res.Skipped++
			continue
		}
		res.Quotes = append(res.Quotes, q)
	}
	quotes.EnsureIDs(res.Quotes)
	return res, nil
}

// ExportJSON writes list as indented JSON.
func ExportJSON(w io.Writer, list []quotes.Quote) error {
	if list == nil {
		list = []quotes.Quote{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// ImportFile reads quotes from path, choosing the codec by extension.
func ImportFile(path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch ext(path) {
	case ".json":
		return ImportJSON(f)
	case ".html", ".htm":
		return ImportHTML(f)
	default:
		return ImportResult{}, fmt.Errorf("%w: %s (import accepts .json, .html)", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// ExportFile writes list to path, choosing the codec by extension.
func ExportFile(path string, list []quotes.Quote) error {
	switch ext(path) {
	case ".json":
	case ".xlsx":
		return ExportXLSX(path, list)
	default:
		return fmt.Errorf("%w: %s (export accepts .json, .xlsx)", ErrUnsupportedFormat, filepath.Base(path))
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := ExportJSON(f, list); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(path)))
}
