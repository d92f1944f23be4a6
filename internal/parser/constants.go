package parser

import (
	"regexp"
	"strings"
)

var constantRe = regexp.MustCompile(`^\s*(export\s+)?(?:declare\s+)?const\s+(` + identPattern +
	`)\s*(?::\s*((?:[^=]|=>)+?))?\s*=\s*(.*?)\s*;?\s*$`)

var valuePairs = [][2]byte{{'{', '}'}, {'[', ']'}, {'(', ')'}}

// constants records top-level const declarations that are neither functions nor require calls
func (t *toolkit) constants(functions []FunctionInfo) []ConstantInfo {
	out := []ConstantInfo{}
	fnAt := map[int]bool{}
	for _, fn := range functions {
		fnAt[fn.LineStart] = true
	}
	for i := 0; i < t.lines.Len(); i++ {
		if t.depth(i) != 0 || fnAt[i+1] {
			continue
		}
		m := constantRe.FindStringSubmatch(t.lines.At(i))
		if m == nil {
			continue
		}
		value := m[4]
		if strings.HasPrefix(value, "require(") || functionValueRe.MatchString(value) {
			continue
		}
		c := ConstantInfo{
			Name:     m[2],
			Exported: m[1] != "",
			Line:     i + 1,
		}
		c.Value, i = t.constantValue(value, i)
		if t.typed {
			c.Type = strings.TrimSpace(m[3])
		}
		out = append(out, c)
	}
	return out
}

// constantValue completes a value whose brackets stay open past line i. The
// continuation lines are joined with single spaces and the index of the last
// line consumed is returned. A literal that never closes yields "".
func (t *toolkit) constantValue(value string, i int) (string, int) {
	var balance [3]int
	if !t.addBrackets(&balance, value) {
		return value, i
	}
	parts := []string{value}
	for j := i + 1; j < t.lines.Len(); j++ {
		line := t.lines.Trimmed(j)
		if line == "" {
			continue
		}
		parts = append(parts, line)
		if !t.addBrackets(&balance, line) {
			joined := strings.Join(parts, " ")
			return strings.TrimSpace(strings.TrimSuffix(joined, ";")), j
		}
	}
	return "", i
}

// addBrackets adds the brace, bracket and paren balance of one line and
// reports whether any pair is still open
func (t *toolkit) addBrackets(balance *[3]int, line string) bool {
	open := false
	for k, p := range valuePairs {
		balance[k] += t.scanner.Balance(line, p[0], p[1])
		if balance[k] > 0 {
			open = true
		}
	}
	return open
}
