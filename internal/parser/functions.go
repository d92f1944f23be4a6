package parser

import (
	"regexp"
	"strings"
)

// functionShape is one entry of an ordered first-match-wins shape list. The
// regular expression ends just past the opening paren of the parameter list.
type functionShape struct {
	kind  string
	re    *regexp.Regexp
	arrow bool
}

const identPattern = `[A-Za-z_$][\w$]*`

// fileFunctionShapes is evaluated in order for every line outside class bodies
var fileFunctionShapes = []functionShape{
	{
		kind: FunctionDeclaration,
		re: regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:declare\s+)?(async\s+)?function\s*(\*)?\s*(` +
			identPattern + `)\s*(?:<[^(]*>)?\s*\(`),
	},
	{
		kind: FunctionArrow,
		re: regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(` + identPattern +
			`)\s*(?::\s*(?:[^=]|=>)+?)?\s*=\s*(async\s+)?(?:<[^>(]*>\s*)?(?:\(|(` + identPattern + `)\s*=>)`),
		arrow: true,
	},
	{
		kind: FunctionExpression,
		re: regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(` + identPattern +
			`)\s*(?::\s*(?:[^=]|=>)+?)?\s*=\s*(async\s+)?function\s*(\*)?\s*(?:` + identPattern + `)?\s*(?:<[^(]*>)?\s*\(`),
	},
	{
		kind: FunctionMethod,
		re:   regexp.MustCompile(`^\s*(async\s+)?(\*\s*)?(` + identPattern + `)\s*(?:<[^(]*>)?\s*\(`),
	},
}

// functionMatch is the result of testing one shape against one line
type functionMatch struct {
	fn    FunctionInfo
	h     header
	after int // offset in h.text just past the parameter list
	arrow bool
}

// matchFileFunction tries the file-level shapes in order on line i
func (t *toolkit) matchFileFunction(i int) (functionMatch, bool) {
	line := t.lines.At(i)
	for _, shape := range fileFunctionShapes {
		m := shape.re.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		group := func(n int) string {
			if m[2*n] < 0 {
				return ""
			}
			return line[m[2*n]:m[2*n+1]]
		}

		fn := FunctionInfo{Kind: shape.kind, Visibility: VisibilityPublic}
		switch shape.kind {
		case FunctionDeclaration:
			fn.Async, fn.Generator, fn.Name = group(1) != "", group(2) != "", group(3)
		case FunctionArrow:
			fn.Name, fn.Async = group(1), group(2) != ""
			if bare := group(3); bare != "" {
				// single unparenthesized parameter
				if bare == "async" || !isIdentifier(bare) {
					continue
				}
				fn.Parameters = []Parameter{{Name: bare}}
				h := header{text: line, start: i, end: i}
				return functionMatch{fn: fn, h: h, after: m[1], arrow: true}, true
			}
		case FunctionExpression:
			fn.Name, fn.Async, fn.Generator = group(1), group(2) != "", group(3) != ""
		case FunctionMethod:
			fn.Async, fn.Generator, fn.Name = group(1) != "", group(2) != "", group(3)
		}
		if !isIdentifier(fn.Name) || ReservedWords[fn.Name] {
			continue
		}

		fm, ok := t.completeSignature(fn, i, m[1]-1, shape.arrow)
		if !ok {
			continue
		}
		if shape.kind == FunctionMethod && !t.isMethodBodyStart(fm) {
			continue
		}
		return fm, true
	}
	return functionMatch{}, false
}

// completeSignature parses the parameter list opened at offset paren of line i
// and the optional return type after it
func (t *toolkit) completeSignature(fn FunctionInfo, i, paren int, arrow bool) (functionMatch, bool) {
	h, closeIdx := t.headerFrom(i, paren)
	if closeIdx < 0 {
		return functionMatch{}, false
	}
	fn.Parameters = parseParameters(h.text[paren+1:closeIdx], t.typed)

	after := closeIdx + 1
	ret, off := returnTypeAt(h.text, after)
	if t.typed {
		fn.ReturnType = ret
	}
	rest := strings.TrimSpace(h.text[off:])
	if arrow && !strings.HasPrefix(rest, "=>") {
		return functionMatch{}, false
	}
	return functionMatch{fn: fn, h: h, after: off, arrow: arrow}, true
}

// returnTypeAt reads an optional `: Type` at offset off of s and returns the
// type and the offset of whatever follows it
func returnTypeAt(s string, off int) (string, int) {
	rest := s[off:]
	typ, remainder := splitReturnType(rest)
	if typ == "" && remainder == strings.TrimSpace(rest) {
		return "", off
	}
	if remainder == "" {
		return typ, len(s)
	}
	return typ, off + strings.LastIndex(rest, remainder)
}

// isMethodBodyStart accepts a shorthand method only when its parameter list
// closes on the declaration line and a body follows
func (t *toolkit) isMethodBodyStart(fm functionMatch) bool {
	if fm.h.end != fm.h.start {
		return false
	}
	rest := strings.TrimSpace(fm.h.text[fm.after:])
	if strings.HasPrefix(rest, "{") {
		return true
	}
	if rest == "" {
		next := t.lines.NextNonBlank(fm.h.end)
		return next >= 0 && strings.HasPrefix(t.lines.Trimmed(next), "{")
	}
	return false
}

// finishFunction fills line range, docs, decorators and complexity
func (t *toolkit) finishFunction(fm functionMatch) FunctionInfo {
	fn := fm.fn
	start := fm.h.start
	end := t.bodyEnd(fm.h, fm.after, fm.arrow)
	if end < start {
		end = start
	}
	fn.LineStart = start + 1
	fn.LineEnd = end + 1

	decorators, anchor := t.decoratorsAbove(start)
	fn.Decorators = decoratorNames(decorators)
	fn.Docstring, fn.Docs = t.docs.docsAbove(t.lines, anchor)
	if t.opts.Complexity {
		fn.Complexity = complexity(t.lines.Text(start, end))
	}
	return fn
}

// functions runs the file-level shapes over every line outside class bodies
func (t *toolkit) functions(classes []ClassInfo) []FunctionInfo {
	out := []FunctionInfo{}
	inClass := func(i int) bool {
		n := i + 1
		for _, c := range classes {
			if n >= c.LineStart && n <= c.LineEnd {
				return true
			}
		}
		return false
	}
	for i := 0; i < t.lines.Len(); i++ {
		if inClass(i) {
			continue
		}
		fm, ok := t.matchFileFunction(i)
		if !ok {
			continue
		}
		out = append(out, t.finishFunction(fm))
	}
	return out
}
