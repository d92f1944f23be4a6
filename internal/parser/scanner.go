package parser

import "strings"

// ScanMode selects how the block scanner treats delimiters inside literals and comments
type ScanMode string

const (
	// ScanNaive counts every delimiter character, including ones inside
	// strings, comments and regular expressions
	ScanNaive ScanMode = "naive"
	// ScanHardened ignores delimiters inside string, template and regex
	// literals and inside comments
	ScanHardened ScanMode = "hardened"
)

// ParseScanMode converts a configuration value into a ScanMode, falling back to naive
func ParseScanMode(s string) ScanMode {
	if ScanMode(s) == ScanHardened {
		return ScanHardened
	}
	return ScanNaive
}

// BlockScanner locates the end of a delimited block by counting depth line by line
type BlockScanner struct {
	Mode ScanMode
}

// NewBlockScanner creates a scanner in the given mode
func NewBlockScanner(mode ScanMode) *BlockScanner {
	return &BlockScanner{Mode: mode}
}

// FindBlockEnd returns the index of the line on which the block opened at or
// after start is closed. Depth is counted from start; the block ends on the
// first line where, after an opening delimiter has been seen, depth returns to
// zero or below. A block that never closes ends on the last line.
func (s *BlockScanner) FindBlockEnd(lines SourceLines, start int, open, close byte) int {
	return s.FindBlockEndFrom(lines, start, 0, open, close)
}

// FindBlockEndFrom is FindBlockEnd with counting on the first line starting at column col
func (s *BlockScanner) FindBlockEndFrom(lines SourceLines, start, col int, open, close byte) int {
	if len(lines) == 0 {
		return 0
	}
	if start < 0 {
		start = 0
	}
	if start >= len(lines) {
		return len(lines) - 1
	}

	depth := 0
	seen := false
	st := &lexState{}
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if i == start && col > 0 && col < len(line) {
			line = line[col:]
		}
		opens, closes := s.count(line, open, close, st)
		if opens > 0 {
			seen = true
		}
		depth += opens - closes
		if seen && depth <= 0 {
			return i
		}
	}
	return len(lines) - 1
}

// Depths returns, for every line, the delimiter depth at the start of that line
func (s *BlockScanner) Depths(lines SourceLines, open, close byte) []int {
	depths := make([]int, len(lines))
	depth := 0
	st := &lexState{}
	for i, line := range lines {
		depths[i] = depth
		opens, closes := s.count(line, open, close, st)
		depth += opens - closes
		if depth < 0 {
			depth = 0
		}
	}
	return depths
}

// Balance returns opens minus closes for a single fragment of text
func (s *BlockScanner) Balance(text string, open, close byte) int {
	opens, closes := s.count(text, open, close, &lexState{})
	return opens - closes
}

func (s *BlockScanner) count(line string, open, close byte, st *lexState) (int, int) {
	if s.Mode != ScanHardened {
		opens, closes := 0, 0
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case open:
				opens++
			case close:
				closes++
			}
		}
		return opens, closes
	}
	return st.count(line, open, close)
}

// lexState carries literal and comment state across lines for hardened scans
type lexState struct {
	inBlockComment bool
	inTemplate     bool
}

func (st *lexState) count(line string, open, close byte) (int, int) {
	opens, closes := 0, 0
	var prev byte // last significant character, used to tell regex from division
	for i := 0; i < len(line); i++ {
		c := line[i]
		if st.inBlockComment {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				st.inBlockComment = false
				i++
			}
			continue
		}
		if st.inTemplate {
			if c == '\\' {
				i++
				continue
			}
			if c == '`' {
				st.inTemplate = false
				prev = '`'
			}
			continue
		}

		switch {
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return opens, closes
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			st.inBlockComment = true
			i++
			continue
		case c == '\'' || c == '"':
			i = skipQuoted(line, i, c)
			prev = c
			continue
		case c == '`':
			st.inTemplate = true
			continue
		case c == '/' && (regexAllowedAfter(prev) || afterKeyword(line, i)):
			i = skipQuoted(line, i, '/')
			prev = '/'
			continue
		case c == open:
			opens++
		case c == close:
			closes++
		}
		if c != ' ' && c != '\t' {
			prev = c
		}
	}
	return opens, closes
}

// skipQuoted returns the index of the closing quote matching line[start], or
// the last index when the literal runs to the end of the line
func skipQuoted(line string, start int, quote byte) int {
	for j := start + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(line) - 1
}

func regexAllowedAfter(prev byte) bool {
	switch prev {
	case 0, '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	}
	return false
}

var regexKeywords = []string{"return", "typeof", "case", "in", "of", "delete", "void", "throw", "new", "yield", "await"}

// afterKeyword reports whether the text before index i ends with a keyword that
// can be followed by a regex literal
func afterKeyword(line string, i int) bool {
	before := strings.TrimRight(line[:i], " \t")
	for _, kw := range regexKeywords {
		if strings.HasSuffix(before, kw) {
			rest := before[:len(before)-len(kw)]
			if rest == "" || !isIdentByte(rest[len(rest)-1]) {
				return true
			}
		}
	}
	return false
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
