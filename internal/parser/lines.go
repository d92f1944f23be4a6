package parser

import "strings"

// SourceLines is source text split into lines. Indexes are 0-based,
// entity line numbers reported to callers are 1-based.
type SourceLines []string

// NewSourceLines splits text on \n, \r\n and \r. Empty text yields no lines
// and a trailing terminator does not produce an extra empty line.
func NewSourceLines(text string) SourceLines {
	if text == "" {
		return SourceLines{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return SourceLines(strings.Split(text, "\n"))
}

// Len returns the number of lines
func (l SourceLines) Len() int {
	return len(l)
}

// Line returns the line with 1-based number n, or the empty string when out of range
func (l SourceLines) Line(n int) string {
	return l.At(n - 1)
}

// At returns line i, or the empty string when i is out of range
func (l SourceLines) At(i int) string {
	if i < 0 || i >= len(l) {
		return ""
	}
	return l[i]
}

// Trimmed returns line i with surrounding whitespace removed
func (l SourceLines) Trimmed(i int) string {
	return strings.TrimSpace(l.At(i))
}

// Join returns lines from..to inclusive joined with sep, clamped to the buffer
func (l SourceLines) Join(from, to int, sep string) string {
	from, to = l.clampIndex(from), l.clampIndex(to)
	if len(l) == 0 || from > to {
		return ""
	}
	return strings.Join(l[from:to+1], sep)
}

// Text returns lines from..to inclusive joined with newlines
func (l SourceLines) Text(from, to int) string {
	return l.Join(from, to, "\n")
}

// NextNonBlank returns the index of the first non-blank line after i, or -1
func (l SourceLines) NextNonBlank(i int) int {
	for j := i + 1; j < len(l); j++ {
		if strings.TrimSpace(l[j]) != "" {
			return j
		}
	}
	return -1
}

// LineNumber converts a 0-based index into a 1-based line number within [1, Len]
func (l SourceLines) LineNumber(i int) int {
	n := i + 1
	if n > len(l) {
		n = len(l)
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (l SourceLines) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(l) {
		return len(l) - 1
	}
	return i
}
