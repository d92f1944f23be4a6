package parser

import (
	"regexp"
	"strings"
)

var (
	classHeaderRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:declare\s+)?(abstract\s+)?class\s+(` +
		identPattern + `)\s*(?:<[^{]*?>)?\s*(?:extends\s+([\w$.]+)(?:\s*<[^{]*?>)?)?\s*(?:implements\s+([^{]+?))?\s*(?:\{|$)`)

	memberModifiersPattern = `((?:(?:public|private|protected|static|async|readonly|abstract|override|declare|get|set|accessor)\s+)*)`

	// classMemberShapes is evaluated in order for every line at class body depth
	methodMemberRe = regexp.MustCompile(`^\s*` + memberModifiersPattern + `(\*\s*)?(#?` + identPattern +
		`)\s*\??\s*(?:<[^(]*>)?\s*\(`)
	arrowMemberRe = regexp.MustCompile(`^\s*` + memberModifiersPattern + `(#?` + identPattern +
		`)\s*(?::\s*(?:[^=]|=>)+?)?\s*=\s*(async\s+)?(?:<[^>(]*>\s*)?(?:\(|(` + identPattern + `)\s*=>)`)
	propertyRe = regexp.MustCompile(`^\s*` + memberModifiersPattern + `(#?` + identPattern +
		`)\s*([?!])?\s*(?::\s*((?:[^=;]|=>)+?))?\s*(?:=\s*(.+?))?\s*;?\s*$`)
)

// classes finds every class declaration and its members
func (t *toolkit) classes() []ClassInfo {
	out := []ClassInfo{}
	for i := 0; i < t.lines.Len(); i++ {
		m := classHeaderRe.FindStringSubmatch(t.lines.At(i))
		if m == nil {
			continue
		}
		c := ClassInfo{
			Name:       m[2],
			Abstract:   m[1] != "",
			Superclass: m[3],
			Implements: []string{},
			Methods:    []FunctionInfo{},
			Properties: []PropertyInfo{},
		}
		if m[4] != "" {
			for _, name := range splitTopLevel(m[4], ',') {
				if name = strings.TrimSpace(name); name != "" {
					c.Implements = append(c.Implements, name)
				}
			}
		}

		open, col := t.findOpenBrace(i)
		end := i
		if open >= 0 {
			end = t.scanner.FindBlockEndFrom(t.lines, open, col, '{', '}')
			if end == open {
				t.inlineClassMembers(&c, open, col)
			} else {
				t.classMembers(&c, open, end)
			}
		}
		c.LineStart, c.LineEnd = i+1, end+1

		decorators, anchor := t.decoratorsAbove(i)
		c.Decorators = decoratorNames(decorators)
		c.Docstring, _ = t.docs.docsAbove(t.lines, anchor)
		out = append(out, c)
	}
	return out
}

// findOpenBrace returns the line and column of the first { on line i or on
// the next non-blank line, or -1
func (t *toolkit) findOpenBrace(i int) (int, int) {
	if col := strings.IndexByte(t.lines.At(i), '{'); col >= 0 {
		return i, col
	}
	next := t.lines.NextNonBlank(i)
	if next >= 0 && strings.HasPrefix(t.lines.Trimmed(next), "{") {
		return next, strings.IndexByte(t.lines.At(next), '{')
	}
	return -1, 0
}

// classMembers records methods and properties declared at the body's own
// nesting level between the opening brace on line open and line end
func (t *toolkit) classMembers(c *ClassInfo, open, end int) {
	memberDepth := t.depth(open) + 1
	for j := open + 1; j < end; j++ {
		if t.depth(j) != memberDepth {
			continue
		}
		trimmed := t.lines.Trimmed(j)
		if strings.HasPrefix(trimmed, "@") {
			// a decorator in front of a field on the same line
			if d, rest, ok := t.parseDecoratorAt(j); ok && d.end == j && rest != "" {
				if p, ok := t.matchProperty(rest, j); ok {
					c.Properties = append(c.Properties, p)
				}
			}
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "}") {
			continue
		}

		if fm, ok := t.matchMethod(j); ok {
			fn := t.finishFunction(fm)
			c.Methods = append(c.Methods, fn)
			if fn.LineEnd-1 > j {
				j = fn.LineEnd - 1
			}
			continue
		}
		if fm, ok := t.matchArrowMember(j); ok {
			fn := t.finishFunction(fm)
			c.Methods = append(c.Methods, fn)
			if fn.LineEnd-1 > j {
				j = fn.LineEnd - 1
			}
			continue
		}
		if p, ok := t.matchProperty(t.lines.At(j), j); ok {
			c.Properties = append(c.Properties, p)
		}
	}
}

// inlineClassMembers records the members of a class body that opens and closes
// on line i, the opening brace being at col
func (t *toolkit) inlineClassMembers(c *ClassInfo, i, col int) {
	text := t.lines.At(i)
	closeIdx := closingBrace(text, col)
	if closeIdx < 0 {
		return
	}
	for _, member := range splitClassBody(text[col+1 : closeIdx]) {
		if fn, ok := t.inlineMethod(member, i); ok {
			c.Methods = append(c.Methods, fn)
			continue
		}
		if p, ok := t.matchProperty(member, i); ok {
			p.Docstring = ""
			c.Properties = append(c.Properties, p)
		}
	}
}

// inlineMethod matches a method or arrow-function field written inside a one-line class body
func (t *toolkit) inlineMethod(member string, i int) (FunctionInfo, bool) {
	var fn FunctionInfo
	paren := -1
	if m := methodMemberRe.FindStringSubmatchIndex(member); m != nil {
		name := member[m[6]:m[7]]
		if ReservedWords[name] {
			return FunctionInfo{}, false
		}
		fn = FunctionInfo{Name: name, Kind: FunctionMethod, Visibility: VisibilityPublic, Generator: m[4] >= 0}
		if name == "constructor" {
			fn.Kind = FunctionConstructor
		}
		t.applyModifiers(&fn, member[m[2]:m[3]])
		paren = m[1] - 1
	} else if m := arrowMemberRe.FindStringSubmatchIndex(member); m != nil {
		fn = FunctionInfo{Name: member[m[4]:m[5]], Kind: FunctionArrow, Visibility: VisibilityPublic, Async: m[6] >= 0}
		t.applyModifiers(&fn, member[m[2]:m[3]])
		if m[8] >= 0 {
			fn.Parameters = []Parameter{{Name: member[m[8]:m[9]]}}
		} else {
			paren = m[1] - 1
		}
	} else {
		return FunctionInfo{}, false
	}

	if paren >= 0 {
		closeIdx := matchingParen(member, paren)
		if closeIdx < 0 {
			return FunctionInfo{}, false
		}
		fn.Parameters = parseParameters(member[paren+1:closeIdx], t.typed)
		ret, rest := splitReturnType(member[closeIdx+1:])
		if fn.Kind != FunctionArrow && rest != "" && !strings.HasPrefix(rest, "{") && !strings.HasPrefix(rest, ";") {
			return FunctionInfo{}, false
		}
		if t.typed {
			fn.ReturnType = strings.TrimSpace(ret)
		}
	}

	fn.LineStart, fn.LineEnd = i+1, i+1
	fn.Decorators = []string{}
	if t.opts.Complexity {
		fn.Complexity = complexity(member)
	}
	return fn, true
}

// closingBrace returns the index of the brace closing the one at open, or -1
func closingBrace(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitClassBody splits a one-line class body into member declarations. A
// member ends at a top-level ; or at the } closing its own body.
func splitClassBody(body string) []string {
	var members []string
	depth, start := 0, 0
	var quote byte
	flush := func(end int) {
		if m := strings.TrimSpace(body[start:end]); m != "" && m != ";" {
			members = append(members, m)
		}
		start = end
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{', '(', '[':
			depth++
		case ')', ']':
			depth--
		case '}':
			depth--
			if depth == 0 {
				flush(i + 1)
			}
		case ';':
			if depth == 0 {
				flush(i + 1)
			}
		}
	}
	flush(len(body))
	return members
}

// applyModifiers sets flags and visibility from a modifier run
func (t *toolkit) applyModifiers(fn *FunctionInfo, modifiers string) {
	for _, mod := range strings.Fields(modifiers) {
		switch mod {
		case "static":
			fn.Static = true
		case "async":
			fn.Async = true
		case "get":
			fn.Kind = FunctionGetter
		case "set":
			fn.Kind = FunctionSetter
		case "private", "protected":
			if t.typed {
				fn.Visibility = Visibility(mod)
			}
		}
	}
	if strings.HasPrefix(fn.Name, "#") {
		fn.Visibility = VisibilityPrivate
	}
}

// matchMethod tries the class method shape on line j
func (t *toolkit) matchMethod(j int) (functionMatch, bool) {
	line := t.lines.At(j)
	m := methodMemberRe.FindStringSubmatchIndex(line)
	if m == nil {
		return functionMatch{}, false
	}
	name := line[m[6]:m[7]]
	if ReservedWords[name] {
		return functionMatch{}, false
	}
	fn := FunctionInfo{Name: name, Kind: FunctionMethod, Visibility: VisibilityPublic, Generator: m[4] >= 0}
	if name == "constructor" {
		fn.Kind = FunctionConstructor
	}
	t.applyModifiers(&fn, line[m[2]:m[3]])

	fm, ok := t.completeSignature(fn, j, m[1]-1, false)
	if !ok {
		return functionMatch{}, false
	}
	rest := strings.TrimSpace(fm.h.text[fm.after:])
	switch {
	case strings.HasPrefix(rest, "{"), strings.HasPrefix(rest, ";"):
	case rest == "":
		// abstract or overload signature without a terminator, or body on the next line
	default:
		return functionMatch{}, false
	}
	return fm, true
}

// matchArrowMember tries the arrow-function field shape on line j
func (t *toolkit) matchArrowMember(j int) (functionMatch, bool) {
	line := t.lines.At(j)
	m := arrowMemberRe.FindStringSubmatchIndex(line)
	if m == nil {
		return functionMatch{}, false
	}
	fn := FunctionInfo{Name: line[m[4]:m[5]], Kind: FunctionArrow, Visibility: VisibilityPublic, Async: m[6] >= 0}
	t.applyModifiers(&fn, line[m[2]:m[3]])
	if m[8] >= 0 {
		fn.Parameters = []Parameter{{Name: line[m[8]:m[9]]}}
		return functionMatch{fn: fn, h: header{text: line, start: j, end: j}, after: m[1], arrow: true}, true
	}
	return t.completeSignature(fn, j, m[1]-1, true)
}

// matchProperty records a field declared by text on line j that is annotated or assigned
func (t *toolkit) matchProperty(text string, j int) (PropertyInfo, bool) {
	m := propertyRe.FindStringSubmatch(text)
	if m == nil {
		return PropertyInfo{}, false
	}
	name := m[2]
	if ReservedWords[name] || name == "constructor" {
		return PropertyInfo{}, false
	}
	if m[4] == "" && !strings.Contains(text, "=") {
		return PropertyInfo{}, false
	}

	p := PropertyInfo{
		Name:         name,
		Visibility:   VisibilityPublic,
		Optional:     m[3] == "?",
		DefaultValue: strings.TrimSpace(m[5]),
		Line:         j + 1,
	}
	if t.typed {
		p.Type = strings.TrimSpace(m[4])
	}
	for _, mod := range strings.Fields(m[1]) {
		switch mod {
		case "static":
			p.Static = true
		case "readonly":
			p.Readonly = true
		case "private", "protected":
			if t.typed {
				p.Visibility = Visibility(mod)
			}
		}
	}
	if strings.HasPrefix(name, "#") {
		p.Visibility = VisibilityPrivate
	}
	p.Docstring, _ = t.docs.docsAbove(t.lines, j)
	return p, true
}
