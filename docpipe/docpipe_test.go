package docpipe

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDetect(t *testing.T) {
	parser := New(Config{})

	tests := []struct {
		path   string
		format Format
	}{
		{"plan.pdf", FormatPDF},
		{"plan.docx", FormatDocx},
		{"plan.txt", FormatTXT},
		{"plan.md", FormatMD},
		{"plan.markdown", FormatMD},
		{"plan.html", FormatHTML},
		{"plan.htm", FormatHTML},
		{"plan.xlsx", FormatXLSX},
		{"plan.csv", FormatCSV},
	}

	for _, tt := range tests {
		f, err := parser.Detect(tt.path)
		if err != nil {
			t.Errorf("Detect(%q): %v", tt.path, err)
			continue
		}
		if f != tt.format {
			t.Errorf("Detect(%q) = %q, want %q", tt.path, f, tt.format)
		}
	}

	if _, err := parser.Detect("file.xyz"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	os.WriteFile(path, []byte(strings.Repeat("x", 2048)), 0644)

	parser := New(Config{MaxFileSize: 1024})
	if _, err := parser.Parse(context.Background(), path); !errors.Is(err, ErrSizeExceeded) {
		t.Fatalf("expected ErrSizeExceeded, got %v", err)
	}
}

func TestParseText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	content := `COMMISSION PLAN

Eligibility:
All full-time sales employees are eligible. Participation begins on hire.

Payment happens monthly. Disputes must be raised within 30 days.
`
	os.WriteFile(path, []byte(content), 0644)

	parser := New(Config{})
	res, err := parser.Parse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Format != FormatTXT {
		t.Fatalf("expected txt format, got %s", res.Format)
	}

	if len(res.Elements) < 3 {
		t.Fatalf("expected at least 3 elements, got %d", len(res.Elements))
	}
	if res.Elements[0].Type != ElementHeading || res.Elements[0].Level != 1 {
		t.Errorf("all-caps line should be a level-1 heading, got %+v", res.Elements[0])
	}

	var colonHeading *Element
	for i := range res.Elements {
		if res.Elements[i].Text == "Eligibility" {
			colonHeading = &res.Elements[i]
		}
	}
	if colonHeading == nil {
		t.Fatal("colon-terminated line should become a heading with colon stripped")
	}
	if colonHeading.Type != ElementHeading || colonHeading.Level != 2 {
		t.Errorf("mixed-case heading should be level 2, got %+v", colonHeading)
	}
	if !strings.Contains(res.RawText, "Disputes") {
		t.Errorf("raw text missing body content: %q", res.RawText)
	}
}

func TestParseMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.md")
	content := `# FY26 Sales Plan

This is the overview paragraph.

## Commission Structure

Commission is paid at 8% of net revenue.
`
	os.WriteFile(path, []byte(content), 0644)

	parser := New(Config{})
	res, err := parser.Parse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Title != "FY26 Sales Plan" {
		t.Fatalf("expected title from first heading, got %q", res.Title)
	}

	headings, paragraphs := 0, 0
	for _, el := range res.Elements {
		switch el.Type {
		case ElementHeading:
			headings++
		case ElementParagraph:
			paragraphs++
		}
	}
	if headings != 2 || paragraphs != 2 {
		t.Fatalf("expected 2 headings and 2 paragraphs, got %d/%d", headings, paragraphs)
	}
}

func writeDocx(t *testing.T, path, docXML string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	fw, _ := w.Create("word/document.xml")
	fw.Write([]byte(docXML))
	w.Close()
	f.Close()
}

func TestParseDocx(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.docx")

	writeDocx(t, path, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Compensation Plan</w:t></w:r></w:p>
<w:p><w:r><w:t>This plan covers all sellers.</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Payout Terms</w:t></w:r></w:p>
<w:p><w:pPr><w:numPr/></w:pPr><w:r><w:t>First item</w:t></w:r></w:p>
<w:p><w:pPr><w:numPr/></w:pPr><w:r><w:t>Second item</w:t></w:r></w:p>
</w:body>
</w:document>`)

	parser := New(Config{})
	res, err := parser.Parse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if res.Title != "Compensation Plan" {
		t.Fatalf("expected title 'Compensation Plan', got %q", res.Title)
	}
	if len(res.Elements) != 4 {
		t.Fatalf("expected 4 elements (list items coalesced), got %d: %+v", len(res.Elements), res.Elements)
	}
	last := res.Elements[3]
	if last.Type != ElementList || len(last.Items) != 2 {
		t.Fatalf("expected coalesced 2-item list, got %+v", last)
	}
}

func TestDocxXMLBomb(t *testing.T) {
	// WHAT: DOCX with deeply nested XML returns depth error.
	// WHY: XML bomb / billion laughs defense.
	dir := t.TempDir()
	path := filepath.Join(dir, "bomb.docx")

	var xmlB strings.Builder
	xmlB.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	xmlB.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for i := 0; i < 300; i++ {
		xmlB.WriteString("<w:p>")
	}
	xmlB.WriteString("<w:r><w:t>deep</w:t></w:r>")
	for i := 0; i < 300; i++ {
		xmlB.WriteString("</w:p>")
	}
	xmlB.WriteString("</w:body></w:document>")
	writeDocx(t, path, xmlB.String())

	_, err := extractDocx(path)
	if err == nil {
		t.Fatal("expected error for deeply nested XML")
	}
	if !strings.Contains(err.Error(), "nesting depth") {
		t.Errorf("expected 'nesting depth' error, got: %v", err)
	}
}

func TestParseCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.csv")
	os.WriteFile(path, []byte("Tier,Rate\nBase,5%\nAccelerator,9%\n"), 0644)

	parser := New(Config{})
	res, err := parser.Parse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Elements) != 1 {
		t.Fatalf("expected 1 table element, got %d", len(res.Elements))
	}
	table := res.Elements[0]
	if table.Type != ElementTable {
		t.Fatalf("expected table, got %s", table.Type)
	}
	if len(table.Headers) != 2 || table.Headers[0] != "Tier" {
		t.Errorf("unexpected headers: %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Errorf("expected 2 data rows, got %d", len(table.Rows))
	}
}

func TestParseXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.xlsx")

	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Quota")
	f.SetCellValue("Sheet1", "B1", "Rate")
	f.SetCellValue("Sheet1", "A2", "1000000")
	f.SetCellValue("Sheet1", "B2", "0.08")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	parser := New(Config{})
	res, err := parser.Parse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	// Sheet heading + table.
	if len(res.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d: %+v", len(res.Elements), res.Elements)
	}
	if res.Elements[0].Type != ElementHeading || res.Elements[0].Text != "Sheet1" {
		t.Errorf("expected sheet-name heading, got %+v", res.Elements[0])
	}
	table := res.Elements[1]
	if table.Type != ElementTable || len(table.Headers) != 2 || len(table.Rows) != 1 {
		t.Errorf("unexpected table shape: %+v", table)
	}
}

func TestParseHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.html")
	html := `<!DOCTYPE html>
<html><head><title>Plan Document</title></head>
<body>
<h1>Main Heading</h1>
<p>Commission terms described in detail here.</p>
<table><tr><th>Tier</th><th>Rate</th></tr><tr><td>Base</td><td>5%</td></tr></table>
<ol><li>First rule</li><li>Second rule</li></ol>
</body></html>`
	os.WriteFile(path, []byte(html), 0644)

	parser := New(Config{})
	res, err := parser.Parse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if res.Title != "Plan Document" {
		t.Fatalf("expected title 'Plan Document', got %q", res.Title)
	}

	var table, list *Element
	for i := range res.Elements {
		switch res.Elements[i].Type {
		case ElementTable:
			table = &res.Elements[i]
		case ElementList:
			list = &res.Elements[i]
		}
	}
	if table == nil || len(table.Headers) != 2 || len(table.Rows) != 1 {
		t.Errorf("unexpected table extraction: %+v", table)
	}
	if list == nil || !list.Ordered || len(list.Items) != 2 {
		t.Errorf("unexpected list extraction: %+v", list)
	}
}

func TestHTMLHiddenTextExcluded(t *testing.T) {
	// WHAT: Elements hidden with CSS are excluded.
	// WHY: Hidden text injection vector (SEO spam, prompt injection).
	dir := t.TempDir()
	path := filepath.Join(dir, "hidden.html")
	html := `<!DOCTYPE html><html><body>
<p>Visible text here</p>
<p style="display:none">secret hidden text</p>
<p style="visibility:hidden">hidden payload</p>
<p style="opacity:0">ghost text</p>
<p style="color:red">Styled but visible</p>
</body></html>`
	os.WriteFile(path, []byte(html), 0644)

	parser := New(Config{})
	res, err := parser.Parse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	for _, hidden := range []string{"secret hidden text", "hidden payload", "ghost text"} {
		if strings.Contains(res.RawText, hidden) {
			t.Errorf("hidden text %q should be excluded", hidden)
		}
	}
	if !strings.Contains(res.RawText, "Visible text") || !strings.Contains(res.RawText, "Styled but visible") {
		t.Error("visible text should be kept")
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) != 7 {
		t.Fatalf("expected 7 formats, got %d: %v", len(formats), formats)
	}
}
