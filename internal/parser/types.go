package parser

import (
	"regexp"
	"strings"
)

var (
	interfaceHeaderRe = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(?:declare\s+)?interface\s+(` +
		identPattern + `)\s*(?:<[^{]*?>)?\s*(?:extends\s+([^{]+?))?\s*(?:\{|$)`)
	typeAliasHeaderRe = regexp.MustCompile(`^\s*(export\s+)?(?:declare\s+)?type\s+(` + identPattern +
		`)\s*(?:<[^=]*>)?\s*=\s*(.*)$`)

	memberMethodRe   = regexp.MustCompile(`^\s*(` + identPattern + `)\s*(\?)?\s*(?:<[^(]*>)?\s*\(`)
	memberPropertyRe = regexp.MustCompile(`^\s*(readonly\s+)?(` + identPattern + `|'[^']*'|"[^"]*"|\[[^\]]+\])\s*(\?)?\s*:\s*(.+?)\s*[;,]?\s*$`)
)

// interfaces finds interface declarations and their declarative members
func (t *toolkit) interfaces() []InterfaceInfo {
	out := []InterfaceInfo{}
	for i := 0; i < t.lines.Len(); i++ {
		m := interfaceHeaderRe.FindStringSubmatch(t.lines.At(i))
		if m == nil {
			continue
		}
		iface := InterfaceInfo{
			Name:       m[2],
			Exported:   m[1] != "",
			Extends:    []string{},
			Properties: []MemberInfo{},
			Methods:    []MethodSignature{},
		}
		for _, name := range splitTopLevel(m[3], ',') {
			if name = strings.TrimSpace(name); name != "" {
				iface.Extends = append(iface.Extends, name)
			}
		}

		end := i
		if open, col := t.findOpenBrace(i); open >= 0 {
			end = t.scanner.FindBlockEndFrom(t.lines, open, col, '{', '}')
			iface.Properties, iface.Methods = t.typeMembers(open, end)
		}
		iface.LineStart, iface.LineEnd = i+1, end+1
		iface.Docstring, _ = t.docs.docsAbove(t.lines, i)
		out = append(out, iface)
	}
	return out
}

// typeAliases finds type alias declarations, following the definition across
// union or intersection continuation lines and open delimiters
func (t *toolkit) typeAliases() []TypeAliasInfo {
	out := []TypeAliasInfo{}
	for i := 0; i < t.lines.Len(); i++ {
		m := typeAliasHeaderRe.FindStringSubmatch(t.lines.At(i))
		if m == nil {
			continue
		}
		alias := TypeAliasInfo{
			Name:       m[2],
			Exported:   m[1] != "",
			Properties: []MemberInfo{},
			Methods:    []MethodSignature{},
		}
		rhs := strings.TrimSpace(m[3])

		end := i
		if strings.HasPrefix(rhs, "{") {
			open, col := i, strings.Index(t.lines.At(i), "=")+1
			col += strings.IndexByte(t.lines.At(i)[col:], '{')
			end = t.scanner.FindBlockEndFrom(t.lines, open, col, '{', '}')
			alias.Properties, alias.Methods = t.typeMembers(open, end)
		} else {
			end = t.definitionEnd(i, rhs)
		}

		parts := []string{rhs}
		for j := i + 1; j <= end; j++ {
			parts = append(parts, t.lines.Trimmed(j))
		}
		def := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		alias.Definition = strings.TrimSuffix(def, ";")

		alias.LineStart, alias.LineEnd = i+1, end+1
		alias.Docstring, _ = t.docs.docsAbove(t.lines, i)
		out = append(out, alias)
		i = end
	}
	return out
}

// definitionEnd returns the last line of a non-object type definition starting on line i
func (t *toolkit) definitionEnd(i int, rhs string) int {
	text := rhs
	end := i
	open := func() bool {
		return t.scanner.Balance(text, '{', '}') > 0 || t.scanner.Balance(text, '(', ')') > 0 ||
			t.scanner.Balance(text, '[', ']') > 0
	}
	dangling := func() bool {
		s := strings.TrimSpace(text)
		return s == "" || strings.HasSuffix(s, "|") || strings.HasSuffix(s, "&") ||
			strings.HasSuffix(s, "=>") || strings.HasSuffix(s, "=") || strings.HasSuffix(s, "<") ||
			strings.HasSuffix(s, ",") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, ":")
	}
	for end+1 < t.lines.Len() {
		next := t.lines.Trimmed(end + 1)
		continues := strings.HasPrefix(next, "|") || strings.HasPrefix(next, "&")
		if !open() && !dangling() && !continues {
			break
		}
		end++
		text += " " + next
	}
	return end
}

// typeMembers reads properties and method signatures of the object type whose
// braces open on line open and close on line end
func (t *toolkit) typeMembers(open, end int) ([]MemberInfo, []MethodSignature) {
	ms := &memberSet{props: []MemberInfo{}, methods: []MethodSignature{}}
	if open == end {
		text := t.lines.At(open)
		if l, r := strings.IndexByte(text, '{'), strings.LastIndexByte(text, '}'); l >= 0 && r > l {
			ms.addInline(text[l+1:r], open+1)
		}
		return ms.props, ms.methods
	}

	memberDepth := t.depth(open) + 1
	for j := open + 1; j <= end; j++ {
		if t.depth(j) != memberDepth {
			continue
		}
		text := t.lines.At(j)
		if j == end {
			// a member sharing the closing line
			if k := strings.LastIndexByte(text, '}'); k >= 0 {
				text = text[:k]
			}
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "}") {
			continue
		}
		ms.add(text, j+1)
	}
	return ms.props, ms.methods
}

// memberSet accumulates the members of an object type
type memberSet struct {
	props   []MemberInfo
	methods []MethodSignature
}

// addInline splits a one-line object type body on ; and , and adds each member
func (ms *memberSet) addInline(body string, line int) {
	for _, stmt := range splitTopLevel(body, ';') {
		for _, member := range splitTopLevel(stmt, ',') {
			if strings.TrimSpace(member) != "" {
				ms.add(member, line)
			}
		}
	}
}

// add classifies one member declaration, method signature first
func (ms *memberSet) add(text string, line int) {
	if m := memberMethodRe.FindStringSubmatchIndex(text); m != nil {
		paren := m[1] - 1
		if closeIdx := matchingParen(text, paren); closeIdx >= 0 {
			ret, _ := splitReturnType(text[closeIdx+1:])
			ms.methods = append(ms.methods, MethodSignature{
				Name:       text[m[2]:m[3]],
				Optional:   m[4] >= 0,
				Parameters: parseParameters(text[paren+1:closeIdx], true),
				ReturnType: strings.TrimRight(ret, ";,"),
				Line:       line,
			})
			return
		}
	}
	if m := memberPropertyRe.FindStringSubmatch(text); m != nil {
		ms.props = append(ms.props, MemberInfo{
			Name:     strings.Trim(m[2], `'"`),
			Readonly: m[1] != "",
			Optional: m[3] == "?",
			Type:     strings.TrimRight(strings.TrimSpace(m[4]), ";,"),
			Line:     line,
		})
	}
}
