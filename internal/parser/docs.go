package parser

import (
	"regexp"
	"strings"
)

// DocExtractor recovers documentation comments that sit directly above a declaration
type DocExtractor struct {
	// Window is the number of lines above the declaration that may be scanned
	Window int
}

// NewDocExtractor creates an extractor scanning at most window lines upward
func NewDocExtractor(window int) *DocExtractor {
	if window <= 0 {
		window = 10
	}
	return &DocExtractor{Window: window}
}

var (
	docTagRe        = regexp.MustCompile(`^@(\w+)\s*(.*)$`)
	docTypeRe       = regexp.MustCompile(`^\{([^}]*)\}\s*(.*)$`)
	docOptionalRe   = regexp.MustCompile(`^\[([^\]=]+)(?:=([^\]]*))?\]\s*(.*)$`)
	docNameRe       = regexp.MustCompile(`^([\w$.]+)\s*(.*)$`)
	docDashPrefix   = regexp.MustCompile(`^-\s*`)
	decoratorLineRe = regexp.MustCompile(`^@[\w$.]+(\s*\(.*)?$`)
)

// ExtractDocstring scans upward from the line before `to` (0-based, exclusive)
// but not above `from`, and returns the text of the comment block that ends
// there. Blank lines and decorator lines between the comment and the
// declaration are skipped; any other code line ends the search.
func (d *DocExtractor) ExtractDocstring(lines SourceLines, from, to int) (string, bool) {
	body, ok := d.commentLines(lines, from, to)
	if !ok {
		return "", false
	}
	text := strings.TrimSpace(strings.Join(body, "\n"))
	if text == "" {
		return "", false
	}
	return text, true
}

// ParseStructuredDocs is ExtractDocstring plus recognition of @tags
func (d *DocExtractor) ParseStructuredDocs(lines SourceLines, from, to int) *StructuredDoc {
	body, ok := d.commentLines(lines, from, to)
	if !ok {
		return nil
	}
	return parseDocBody(body)
}

// docsAbove returns the docstring and structured docs for the declaration starting at index i
func (d *DocExtractor) docsAbove(lines SourceLines, i int) (string, *StructuredDoc) {
	from := i - d.Window
	if from < 0 {
		from = 0
	}
	body, ok := d.commentLines(lines, from, i)
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(strings.Join(body, "\n")), parseDocBody(body)
}

// commentLines returns the marker-stripped lines of the comment above `to`
func (d *DocExtractor) commentLines(lines SourceLines, from, to int) ([]string, bool) {
	if from < 0 {
		from = 0
	}
	i := to - 1
	for ; i >= from; i-- {
		t := lines.Trimmed(i)
		if t == "" || decoratorLineRe.MatchString(t) {
			continue
		}
		break
	}
	if i < from {
		return nil, false
	}

	last := lines.Trimmed(i)
	switch {
	case strings.HasSuffix(last, "*/"):
		end := i
		for ; i >= from; i-- {
			if strings.Contains(lines.At(i), "/*") {
				break
			}
		}
		if i < from {
			return nil, false
		}
		var out []string
		for j := i; j <= end; j++ {
			out = append(out, stripBlockMarkers(lines.Trimmed(j)))
		}
		return trimBlank(out), true
	case strings.HasPrefix(last, "//"):
		end := i
		for i > from && strings.HasPrefix(lines.Trimmed(i-1), "//") {
			i--
		}
		var out []string
		for j := i; j <= end; j++ {
			t := strings.TrimLeft(lines.Trimmed(j), "/")
			out = append(out, strings.TrimSpace(t))
		}
		return trimBlank(out), true
	}
	return nil, false
}

func stripBlockMarkers(line string) string {
	if idx := strings.Index(line, "/*"); idx >= 0 {
		line = line[idx+2:]
		line = strings.TrimLeft(line, "*")
	}
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "*") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
	}
	return line
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseDocBody turns stripped comment lines into a StructuredDoc, or nil when
// there is neither description text nor any tag
func parseDocBody(body []string) *StructuredDoc {
	doc := &StructuredDoc{}
	var desc []string
	found := false
	inExample := false

	for _, line := range body {
		m := docTagRe.FindStringSubmatch(line)
		if m == nil {
			if inExample {
				n := len(doc.Examples) - 1
				if doc.Examples[n] == "" {
					doc.Examples[n] = line
				} else {
					doc.Examples[n] += "\n" + line
				}
				continue
			}
			if line != "" {
				desc = append(desc, line)
			}
			continue
		}

		found = true
		inExample = false
		tag, rest := m[1], strings.TrimSpace(m[2])
		switch tag {
		case "param", "arg", "argument":
			doc.Params = append(doc.Params, parseDocParam(rest))
		case "returns", "return":
			typ, text := splitDocType(rest)
			doc.Returns = &DocReturn{Type: typ, Description: stripDash(text)}
		case "throws", "exception":
			typ, text := splitDocType(rest)
			doc.Throws = append(doc.Throws, DocThrows{Type: typ, Description: stripDash(text)})
		case "example":
			doc.Examples = append(doc.Examples, rest)
			inExample = true
		case "deprecated":
			doc.Deprecated = true
			doc.DeprecationNote = rest
		case "since":
			doc.Since = rest
		case "author":
			doc.Author = rest
		default:
			doc.Tags = append(doc.Tags, DocTag{Name: tag, Value: rest})
		}
	}

	doc.Description = strings.Join(desc, "\n")
	if !found && doc.Description == "" {
		return nil
	}
	return doc
}

func parseDocParam(rest string) DocParam {
	typ, rest := splitDocType(rest)
	p := DocParam{Type: typ}
	if m := docOptionalRe.FindStringSubmatch(rest); m != nil {
		p.Name = strings.TrimSpace(m[1])
		p.Optional = true
		p.DefaultValue = strings.TrimSpace(m[2])
		p.Description = stripDash(m[3])
		return p
	}
	if m := docNameRe.FindStringSubmatch(rest); m != nil {
		p.Name = m[1]
		p.Description = stripDash(m[2])
	}
	if strings.HasSuffix(p.Type, "=") {
		p.Type = strings.TrimSuffix(p.Type, "=")
		p.Optional = true
	}
	return p
}

func splitDocType(s string) (string, string) {
	if m := docTypeRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", s
}

func stripDash(s string) string {
	return strings.TrimSpace(docDashPrefix.ReplaceAllString(strings.TrimSpace(s), ""))
}
