package parser

import (
	"regexp"
	"strings"
)

// toolkit bundles the shared scanning pieces each dialect parser composes
type toolkit struct {
	lines   SourceLines
	scanner *BlockScanner
	docs    *DocExtractor
	opts    Options
	typed   bool
	// depths holds the brace depth at the start of every line
	depths []int
}

func newToolkit(lines SourceLines, opts Options, typed bool) *toolkit {
	scanner := NewBlockScanner(opts.ScanMode)
	return &toolkit{
		lines:   lines,
		scanner: scanner,
		docs:    NewDocExtractor(opts.DocWindow),
		opts:    opts,
		typed:   typed,
		depths:  scanner.Depths(lines, '{', '}'),
	}
}

func (t *toolkit) depth(i int) int {
	if i < 0 || i >= len(t.depths) {
		return 0
	}
	return t.depths[i]
}

// header is a declaration header that may span several lines
type header struct {
	text  string
	start int
	end   int
}

// headerFrom joins lines starting at i until the paren opened at byte offset
// paren of line i is closed or the header window is exhausted. It returns the
// header and the offset of the closing paren within header.text, or -1.
func (t *toolkit) headerFrom(i, paren int) (header, int) {
	h := header{text: t.lines.At(i), start: i, end: i}
	closeIdx := matchingParen(h.text, paren)
	for closeIdx < 0 && h.end+1 < t.lines.Len() && h.end-h.start+1 < t.opts.HeaderWindow {
		h.end++
		h.text += "\n" + t.lines.At(h.end)
		closeIdx = matchingParen(h.text, paren)
	}
	return h, closeIdx
}

// position converts a byte offset in the header into a line index and column
func (h header) position(off int) (int, int) {
	if off > len(h.text) {
		off = len(h.text)
	}
	prefix := h.text[:off]
	line := h.start + strings.Count(prefix, "\n")
	col := off - (strings.LastIndex(prefix, "\n") + 1)
	return line, col
}

// bodyEnd returns the last line of a declaration whose text following the
// signature starts at offset off of the header
func (t *toolkit) bodyEnd(h header, off int, arrow bool) int {
	skip := func() string {
		rest := h.text[off:]
		trimmed := strings.TrimLeft(rest, " \t\n")
		off += len(rest) - len(trimmed)
		return trimmed
	}
	rest := skip()
	if strings.HasPrefix(rest, "=>") {
		off += 2
		arrow = true
		rest = skip()
	}

	switch {
	case strings.HasPrefix(rest, "{"):
		line, col := h.position(off)
		return t.scanner.FindBlockEndFrom(t.lines, line, col, '{', '}')
	case arrow && strings.HasPrefix(rest, "("):
		line, col := h.position(off)
		return t.scanner.FindBlockEndFrom(t.lines, line, col, '(', ')')
	case rest != "":
		return h.end
	}

	next := t.lines.NextNonBlank(h.end)
	if next < 0 {
		return h.end
	}
	raw := t.lines.At(next)
	col := len(raw) - len(strings.TrimLeft(raw, " \t"))
	switch {
	case strings.HasPrefix(raw[col:], "{"):
		return t.scanner.FindBlockEndFrom(t.lines, next, col, '{', '}')
	case arrow && strings.HasPrefix(raw[col:], "("):
		return t.scanner.FindBlockEndFrom(t.lines, next, col, '(', ')')
	case arrow:
		return next
	}
	return h.end
}

var (
	decoratorStartRe = regexp.MustCompile(`^@([\w$.]+)\s*(\()?`)
	complexityWordRe = regexp.MustCompile(`\b(?:` + strings.Join(ComplexityKeywords, "|") + `)\b`)
)

// decoratorBlock is a decorator application above (or in front of) a declaration
type decoratorBlock struct {
	name  string
	args  string
	start int
	end   int
}

// parseDecoratorAt reads the decorator starting on line i, following its
// argument list across lines when needed
func (t *toolkit) parseDecoratorAt(i int) (decoratorBlock, string, bool) {
	raw := t.lines.At(i)
	trimmed := strings.TrimSpace(raw)
	m := decoratorStartRe.FindStringSubmatchIndex(trimmed)
	if m == nil {
		return decoratorBlock{}, "", false
	}
	d := decoratorBlock{name: trimmed[m[2]:m[3]], start: i, end: i}
	after := trimmed[m[1]:]
	if m[4] < 0 {
		return d, strings.TrimSpace(after), true
	}

	indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
	h, closeIdx := t.headerFrom(i, indent+m[4])
	if closeIdx < 0 {
		return d, "", true
	}
	d.args = strings.TrimSpace(h.text[indent+m[4]+1 : closeIdx])
	d.end, _ = h.position(closeIdx)
	rest := h.text[closeIdx+1:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return d, strings.TrimSpace(rest), true
}

// decoratorsAbove collects the decorators stacked directly above line i and
// returns them with the first line of the stack
func (t *toolkit) decoratorsAbove(i int) ([]decoratorBlock, int) {
	if !t.typed {
		return nil, i
	}
	var out []decoratorBlock
	anchor := i
	j := i - 1
	for j >= 0 {
		if t.lines.Trimmed(j) == "" {
			j--
			continue
		}
		k := t.decoratorEndingAt(j)
		if k < 0 {
			break
		}
		d, _, _ := t.parseDecoratorAt(k)
		out = append([]decoratorBlock{d}, out...)
		anchor = k
		j = k - 1
	}
	return out, anchor
}

// decoratorEndingAt returns the first line of a decorator whose application ends on line j, or -1
func (t *toolkit) decoratorEndingAt(j int) int {
	for k := j; k >= 0 && j-k < t.opts.HeaderWindow; k-- {
		if !strings.HasPrefix(t.lines.Trimmed(k), "@") {
			continue
		}
		d, rest, ok := t.parseDecoratorAt(k)
		if ok && d.end == j && rest == "" {
			return k
		}
		return -1
	}
	return -1
}

func decoratorNames(ds []decoratorBlock) []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.name
	}
	return names
}

// complexity approximates cyclomatic complexity over the given text
func complexity(text string) int {
	score := 1 + len(complexityWordRe.FindAllStringIndex(text, -1))
	score += strings.Count(text, "&&") + strings.Count(text, "||")
	for i := 0; i < len(text); i++ {
		if text[i] != '?' {
			continue
		}
		if i+1 < len(text) && strings.IndexByte(".?:", text[i+1]) >= 0 {
			continue
		}
		if i > 0 && text[i-1] == '?' {
			continue
		}
		score++
	}
	return score
}
