package docpipe

import "errors"

// Format identifies a document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatTXT  Format = "txt"
	FormatMD   Format = "md"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	// ErrUnsupportedFormat is returned for file extensions outside the
	// supported set.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSizeExceeded is returned when the input file is larger than the
	// configured maximum.
	ErrSizeExceeded = errors.New("file too large")
)

// ParseError wraps an extraction failure with its source context.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return "parse " + e.Path + " (" + string(e.Format) + "): " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ElementType classifies a parsed element.
type ElementType string

const (
	ElementHeading   ElementType = "heading"
	ElementParagraph ElementType = "paragraph"
	ElementTable     ElementType = "table"
	ElementList      ElementType = "list"
)

// Element is a structural unit extracted from a document, in source order.
type Element struct {
	Type    ElementType `json:"type"`
	Text    string      `json:"text,omitempty"`
	Level   int         `json:"level,omitempty"` // heading level 1-6
	Page    int         `json:"page,omitempty"`  // 1-based page number, 0 when unknown
	Headers []string    `json:"headers,omitempty"`
	Rows    [][]string  `json:"rows,omitempty"`
	Items   []string    `json:"items,omitempty"`
	Ordered bool        `json:"ordered,omitempty"`
}

// Result is the output of parsing one document.
type Result struct {
	Path      string             `json:"path"`
	Format    Format             `json:"format"`
	Title     string             `json:"title,omitempty"`
	Elements  []Element          `json:"elements"`
	RawText   string             `json:"raw_text"`
	PageCount int                `json:"page_count"`
	Warnings  []string           `json:"warnings,omitempty"`
	Quality   *ExtractionQuality `json:"quality,omitempty"`
}
