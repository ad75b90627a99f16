package docpipe

import (
	"os"
	"strings"
	"unicode"
)

// extractText parses a plain text file, splitting on blank lines and
// promoting heading-like lines.
func extractText(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	var elements []Element
	var current strings.Builder

	flush := func() {
		text := normalizeWhitespace(current.String())
		if text != "" {
			elements = append(elements, Element{Type: ElementParagraph, Text: text})
		}
		current.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if isTextHeading(trimmed) {
			flush()
			text := strings.TrimSuffix(trimmed, ":")
			level := 2
			if isAllCaps(text) {
				level = 1
			}
			elements = append(elements, Element{Type: ElementHeading, Text: text, Level: level})
			continue
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(trimmed)
	}
	flush()

	return &Result{Elements: elements}, nil
}

// isTextHeading reports whether a plain text line reads like a heading:
// short, and either fully capitalized, colon-terminated, or free of
// sentence punctuation.
func isTextHeading(line string) bool {
	if len(line) >= 100 {
		return false
	}
	if isAllCaps(line) {
		return true
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	return !strings.Contains(line, ".")
}

// isAllCaps reports whether the line contains letters and none of them
// are lowercase.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// extractMarkdown parses a Markdown file with ATX heading detection.
func extractMarkdown(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	elements := parseMarkdownString(string(data))

	var title string
	for _, el := range elements {
		if el.Type == ElementHeading {
			title = el.Text
			break
		}
	}
	return &Result{Title: title, Elements: elements}, nil
}

// parseMarkdownString splits markdown text into heading and paragraph
// elements.
func parseMarkdownString(text string) []Element {
	lines := strings.Split(text, "\n")
	var elements []Element
	var current strings.Builder

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text != "" {
			elements = append(elements, Element{Type: ElementParagraph, Text: text})
		}
		current.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			flush()

			level := 0
			for _, ch := range trimmed {
				if ch == '#' {
					level++
				} else {
					break
				}
			}
			if level > 6 {
				level = 6
			}

			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			heading = strings.TrimSpace(strings.TrimRight(heading, "#"))
			if heading != "" {
				elements = append(elements, Element{Type: ElementHeading, Text: heading, Level: level})
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(trimmed)
	}
	flush()

	return elements
}

func normalizeWhitespace(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
