package docpipe

import (
	"bytes"
	"os"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)font-size\s*:\s*0[^1-9]`),
	regexp.MustCompile(`(?i)opacity\s*:\s*0[^.]`),
	regexp.MustCompile(`(?i)position\s*:\s*absolute[^;]*-\d{4,}`),
}

func hasHiddenStyle(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "style" {
			for _, pat := range hiddenStylePatterns {
				if pat.MatchString(a.Val) {
					return true
				}
			}
		}
	}
	return false
}

// extractHTML parses an HTML file into typed elements. When the DOM walk
// yields nothing structured, the body is sanitized and converted to
// markdown as a fallback path.
func extractHTML(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	title := findHTMLTitle(doc)

	var elements []Element
	extractHTMLNodes(doc, &elements)

	res := &Result{Title: title, Elements: elements}

	if len(elements) == 0 {
		sanitized := bluemonday.UGCPolicy().SanitizeBytes(data)
		md, err := htmltomarkdown.ConvertString(string(sanitized))
		if err == nil && strings.TrimSpace(md) != "" {
			res.Elements = parseMarkdownString(md)
			res.Warnings = append(res.Warnings, "no structured content in DOM: used markdown fallback")
		}
	}

	return res, nil
}

// findHTMLTitle extracts the <title> text.
func findHTMLTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		if n.FirstChild != nil {
			return strings.TrimSpace(n.FirstChild.Data)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findHTMLTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// extractHTMLNodes walks the DOM tree and extracts headings, paragraphs,
// tables, and lists.
func extractHTMLNodes(n *html.Node, elements *[]Element) {
	if n.Type == html.ElementNode {
		// Skip boilerplate.
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Nav, atom.Footer, atom.Header:
			return
		}
		if hasHiddenStyle(n) {
			return
		}

		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			text := collectHTMLText(n)
			if text != "" {
				level := int(n.Data[1] - '0')
				*elements = append(*elements, Element{Type: ElementHeading, Text: text, Level: level})
			}
			return

		case atom.P:
			text := collectHTMLText(n)
			if text != "" {
				*elements = append(*elements, Element{Type: ElementParagraph, Text: text})
			}
			return

		case atom.Table:
			headers, rows := extractHTMLTable(n)
			if len(headers) > 0 || len(rows) > 0 {
				*elements = append(*elements, Element{Type: ElementTable, Headers: headers, Rows: rows})
			}
			return

		case atom.Ul, atom.Ol:
			items := extractHTMLListItems(n)
			if len(items) > 0 {
				*elements = append(*elements, Element{
					Type:    ElementList,
					Items:   items,
					Ordered: n.DataAtom == atom.Ol,
				})
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractHTMLNodes(c, elements)
	}
}

// extractHTMLTable collects header cells and data rows from a <table>
// subtree. When no <th> cells exist, the first row becomes the header.
func extractHTMLTable(n *html.Node) ([]string, [][]string) {
	var headers []string
	var rows [][]string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			isHeader := false
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				switch c.DataAtom {
				case atom.Th:
					isHeader = true
					cells = append(cells, collectHTMLText(c))
				case atom.Td:
					cells = append(cells, collectHTMLText(c))
				}
			}
			if len(cells) == 0 {
				return
			}
			if isHeader && headers == nil {
				headers = cells
			} else {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	if headers == nil && len(rows) > 0 {
		headers = rows[0]
		rows = rows[1:]
	}
	return headers, rows
}

func extractHTMLListItems(n *html.Node) []string {
	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Li {
			text := collectHTMLText(c)
			if text != "" {
				items = append(items, text)
			}
		}
	}
	return items
}

// collectHTMLText extracts all visible text from a node subtree.
func collectHTMLText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
			if hasHiddenStyle(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
