package docpipe

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

// maxXMLDepth bounds element nesting while decoding, as an XML bomb defense.
const maxXMLDepth = 256

// extractDocx parses a .docx file by reading word/document.xml from the ZIP
// archive and walking its paragraph runs.
func extractDocx(path string) (*Result, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var elements []Element
	var title string
	var currentText strings.Builder
	var inParagraph bool
	var paragraphStyle string
	var numbered bool
	depth := 0

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth > maxXMLDepth {
				return nil, fmt.Errorf("xml nesting depth exceeds %d", maxXMLDepth)
			}
			switch {
			case t.Name.Local == "p":
				inParagraph = true
				currentText.Reset()
				paragraphStyle = ""
				numbered = false
			case t.Name.Local == "pStyle" && inParagraph:
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						paragraphStyle = attr.Value
					}
				}
			case t.Name.Local == "numPr" && inParagraph:
				numbered = true
			}

		case xml.CharData:
			if inParagraph {
				currentText.Write(t)
			}

		case xml.EndElement:
			depth--
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}

				level := docxHeadingLevel(paragraphStyle)
				switch {
				case level > 0:
					if title == "" {
						title = text
					}
					elements = append(elements, Element{Type: ElementHeading, Text: text, Level: level})
				case numbered || strings.HasPrefix(strings.ToLower(paragraphStyle), "listparagraph"):
					elements = append(elements, Element{Type: ElementList, Items: []string{text}})
				default:
					elements = append(elements, Element{Type: ElementParagraph, Text: text})
				}
			}
		}
	}

	return &Result{Title: title, Elements: coalesceLists(elements)}, nil
}

// coalesceLists merges runs of adjacent single-item list elements into one.
func coalesceLists(elements []Element) []Element {
	var out []Element
	for _, el := range elements {
		if el.Type == ElementList && len(out) > 0 && out[len(out)-1].Type == ElementList {
			last := &out[len(out)-1]
			last.Items = append(last.Items, el.Items...)
			continue
		}
		out = append(out, el)
	}
	return out
}

// docxHeadingLevel extracts the heading level from a paragraph style name.
// e.g. "Heading1" → 1, "Heading2" → 2, "Title" → 1, etc.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)

	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}

	// "Heading1", "heading1", "Titre1", etc.
	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}
