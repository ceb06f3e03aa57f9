package transfer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/five82/quoter/internal/quotes"
)

func TestImportJSON_ValidAndSkipped(t *testing.T) {
	in := `[
  {"text": "  Keep going. ", "category": "Motivation"},
  {"text": "", "category": "Empty"},
  {"id": "fixed", "text": "Has id", "category": "Kept"},
  "not an object",
  {"text": "No category"}
]`
	res, err := ImportJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportJSON returned error: %v", err)
	}
	if len(res.Quotes) != 2 || res.Skipped != 3 {
		t.Fatalf("ImportJSON = %d quotes, %d skipped; want 2, 3", len(res.Quotes), res.Skipped)
	}
	if res.Quotes[0].Text != "Keep going." || res.Quotes[0].ID == "" {
		t.Fatalf("first quote = %#v, want trimmed with assigned id", res.Quotes[0])
	}
	if res.Quotes[1].ID != "fixed" {
		t.Fatalf("second quote id = %q, want fixed", res.Quotes[1].ID)
	}
}

func TestImportJSON_RejectsNonArray(t *testing.T) {
	for _, in := range []string{`{"text":"a","category":"b"}`, ``, `[broken`} {
		if _, err := ImportJSON(strings.NewReader(in)); err == nil {
			t.Fatalf("ImportJSON(%q) returned nil error", in)
		}
	}
	_, err := ImportJSON(strings.NewReader(`{"quotes":[]}`))
	if err == nil || !strings.Contains(err.Error(), "expected a JSON array") {
		t.Fatalf("ImportJSON(object) error = %v", err)
	}
}

func TestExportJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, quotes.Defaults()); err != nil {
		t.Fatalf("ExportJSON returned error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "[\n  {") {
		t.Fatalf("export should be indented with two spaces, got %q", out[:10])
	}
	if strings.Contains(out, "updatedAt") {
		t.Fatalf("zero UpdatedAt should be omitted: %s", out)
	}

	res, err := ImportJSON(&buf)
	if err != nil {
		t.Fatalf("ImportJSON returned error: %v", err)
	}
	if len(res.Quotes) != 4 || res.Quotes[3].ID != "seed-4" {
		t.Fatalf("round trip = %#v", res.Quotes)
	}
}

func TestExportJSON_NilListIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, nil); err != nil {
		t.Fatalf("ExportJSON returned error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("ExportJSON(nil) = %q, want []", buf.String())
	}
}

func TestImportHTML(t *testing.T) {
	page := `<html><body>
<blockquote data-category="Wisdom">Know thyself.</blockquote>
<blockquote>
  “Simplicity is the ultimate sophistication.”
  <footer>— Design</footer>
</blockquote>
<blockquote><p>Unlabelled thought.</p></blockquote>
<blockquote data-category="Empty">   </blockquote>
</body></html>`

	res, err := ImportHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ImportHTML returned error: %v", err)
	}
	if len(res.Quotes) != 3 || res.Skipped != 1 {
		t.Fatalf("ImportHTML = %#v, skipped %d; want 3 quotes, 1 skipped", res.Quotes, res.Skipped)
	}
	want := []struct{ text, category string }{
		{"Know thyself.", "Wisdom"},
		{"Simplicity is the ultimate sophistication.", "Design"},
		{"Unlabelled thought.", DefaultHTMLCategory},
	}
	for i, w := range want {
		got := res.Quotes[i]
		if got.Text != w.text || got.Category != w.category {
			t.Fatalf("quote %d = %q/%q, want %q/%q", i, got.Text, got.Category, w.text, w.category)
		}
		if got.ID == "" {
			t.Fatalf("quote %d missing id", i)
		}
	}
}

func TestExportFileAndImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", DefaultExportName)

	if err := ExportFile(path, quotes.Defaults()); err != nil {
		t.Fatalf("ExportFile returned error: %v", err)
	}
	res, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile returned error: %v", err)
	}
	if len(res.Quotes) != 4 {
		t.Fatalf("ImportFile returned %d quotes, want 4", len(res.Quotes))
	}

	htmlPath := filepath.Join(dir, "page.HTML")
	if err := os.WriteFile(htmlPath, []byte(`<blockquote data-category="x">y</blockquote>`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	res, err = ImportFile(htmlPath)
	if err != nil || len(res.Quotes) != 1 {
		t.Fatalf("ImportFile(html) = %#v, %v", res, err)
	}
}

func TestUnsupportedFormats(t *testing.T) {
	dir := t.TempDir()
	if err := ExportFile(filepath.Join(dir, "quotes.csv"), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("ExportFile(csv) error = %v, want ErrUnsupportedFormat", err)
	}
	path := filepath.Join(dir, "quotes.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ImportFile(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("ImportFile(txt) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := ImportFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("ImportFile(missing) returned nil error")
	}
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.xlsx")
	list := quotes.Defaults()
	if err := ExportFile(path, list); err != nil {
		t.Fatalf("ExportFile(xlsx) returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != len(list)+1 {
		t.Fatalf("rows = %d, want %d", len(rows), len(list)+1)
	}
	if strings.Join(rows[0], ",") != "id,text,category,updated_at" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[4][0] != "seed-4" || rows[4][2] != "Creativity" {
		t.Fatalf("last row = %v", rows[4])
	}
}
