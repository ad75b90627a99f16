// Package docpipe parses compensation plan documents into a typed element
// stream.
//
// Supported formats:
//   - .pdf   — PDF text extraction (pdfcpu, content-stream decoding)
//   - .docx  — Microsoft Word (archive/zip → word/document.xml)
//   - .txt   — Plain text with heading heuristics
//   - .md    — Markdown (ATX heading detection)
//   - .html  — HTML (sanitized DOM walk)
//   - .xlsx  — Excel workbooks (one table per sheet)
//   - .csv   — Comma-separated grids
//
// Usage:
//
//	parser := docpipe.New(docpipe.Config{})
//	res, err := parser.Parse(ctx, "/path/to/plan.docx")
//	fmt.Println(res.Title, len(res.Elements), "elements")
package docpipe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Parser is the document parsing engine.
type Parser struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Parser with the given configuration.
func New(cfg Config) *Parser {
	cfg.defaults()
	return &Parser{
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Detect returns the document format based on file extension.
func (p *Parser) Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDocx, nil
	case ".txt", ".text":
		return FormatTXT, nil
	case ".md", ".markdown":
		return FormatMD, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Parse reads a document file and returns its element stream.
func (p *Parser) Parse(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrSizeExceeded, info.Size(), p.cfg.MaxFileSize)
	}

	format, err := p.Detect(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Debug("parsing document", "path", path, "format", format)

	var res *Result
	switch format {
	case FormatPDF:
		res, err = extractPDF(path)
	case FormatDocx:
		res, err = extractDocx(path)
	case FormatTXT:
		res, err = extractText(path)
	case FormatMD:
		res, err = extractMarkdown(path)
	case FormatHTML:
		res, err = extractHTML(path)
	case FormatXLSX:
		res, err = extractXLSX(path)
	case FormatCSV:
		res, err = extractCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}

	res.Path = path
	res.Format = format
	if res.PageCount < 1 {
		res.PageCount = 1
	}
	if res.RawText == "" {
		res.RawText = joinElements(res.Elements)
	}
	if res.Title == "" {
		res.Title = firstElementText(res.Elements)
	}

	p.logger.Debug("parsed document",
		"path", path,
		"format", format,
		"elements", len(res.Elements),
		"pages", res.PageCount,
		"warnings", len(res.Warnings))

	return res, nil
}

// joinElements builds the raw text view of an element stream.
func joinElements(elements []Element) string {
	var sb strings.Builder
	for _, el := range elements {
		text := el.Text
		if el.Type == ElementTable {
			var parts []string
			if len(el.Headers) > 0 {
				parts = append(parts, strings.Join(el.Headers, " "))
			}
			for _, row := range el.Rows {
				parts = append(parts, strings.Join(row, " "))
			}
			text = strings.Join(parts, "\n")
		}
		if el.Type == ElementList && len(el.Items) > 0 {
			text = strings.Join(el.Items, "\n")
		}
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func firstElementText(elements []Element) string {
	for _, el := range elements {
		if el.Type == ElementHeading && el.Text != "" {
			return firstLine(el.Text)
		}
	}
	for _, el := range elements {
		if el.Text != "" {
			return firstLine(el.Text)
		}
	}
	return ""
}

// SupportedFormats returns all supported format extensions.
func SupportedFormats() []string {
	return []string{"pdf", "docx", "txt", "md", "html", "xlsx", "csv"}
}
