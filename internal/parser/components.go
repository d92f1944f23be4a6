package parser

import (
	"regexp"
	"strings"
)

var (
	fcTypeRe          = regexp.MustCompile(`:\s*(?:React\.)?(?:FC|FunctionComponent|VFC)\s*<\s*([\w$.]+)`)
	classPropsTypeRe  = regexp.MustCompile(`extends\s+(?:React\.)?(?:Pure)?Component\s*<\s*([\w$.]+)`)
	propsAccessRe     = regexp.MustCompile(`\bprops\.(` + identPattern + `)`)
	thisPropsRe       = regexp.MustCompile(`\bthis\.props\.(` + identPattern + `)`)
	propsDestructRe   = regexp.MustCompile(`(?:const|let|var)\s*\{([^}]*)\}\s*=\s*(?:this\.)?props\b`)
	hookCallRe        = regexp.MustCompile(`\b(?:React\.)?(use[A-Z]\w*|create[A-Z]\w*)\s*(?:<[^>]*>)?\s*\(\s*([\w$.]*)`)
	hookBindingRe     = regexp.MustCompile(`^\s*(?:const|let|var)\s+(?:\[\s*(` + identPattern + `)|(` + identPattern + `))`)
	propTypeEntryRe   = regexp.MustCompile(`(` + identPattern + `)\s*:\s*(PropTypes\.[\w.]+(?:\([^)]*\))?[\w.]*)`)
	defaultPropRe     = regexp.MustCompile(`(` + identPattern + `)\s*:\s*([^,}]+)`)
	styledDefRe       = regexp.MustCompile(`(?:const|let|var)\s+(` + identPattern + `)\s*=\s*styled(?:\.\w+|\()`)
	styledCallRe      = regexp.MustCompile(`(?:^|[^\w$.])styled(?:\.\w|\s*\()`)
	cssModuleImportRe = regexp.MustCompile(`\.module\.(?:css|scss|sass|less)$`)
	classNameAttrRe   = regexp.MustCompile("className=(?:\"([^\"]*)\"|'([^']*)'|\\{\\s*[`'\"]([^`'\"]*)[`'\"]\\s*\\})")
	inlineStyleRe     = regexp.MustCompile(`<([\w.]+)[^<>]*?\bstyle=\{\{([^}]*)\}\}`)
	styleKeyRe        = regexp.MustCompile(`([\w$]+)\s*:`)
)

// components flags function and class candidates that look like UI view components
func (t *toolkit) components(r *ParseResult) []ComponentInfo {
	out := []ComponentInfo{}
	if !importsModule(r.Imports, UIFrameworkModules) {
		return out
	}

	types := t.namedObjectTypes(r)
	styling := t.newStylingContext(r.Imports)
	for _, fn := range r.Functions {
		if !isComponentName(fn.Name) {
			continue
		}
		body := t.lines.Text(fn.LineStart-1, fn.LineEnd-1)
		hasMarkup := containsMarkup(body)
		if !hasMarkup && !containsFrameworkType(body) {
			continue
		}
		c := ComponentInfo{
			Name:      fn.Name,
			Props:     t.functionProps(fn, body, types),
			Hooks:     hookUsages(t.lines, fn.LineStart-1, fn.LineEnd-1),
			HasJSX:    hasMarkup,
			Styling:   styling.classify(body),
			LineStart: fn.LineStart,
			LineEnd:   fn.LineEnd,
			Docstring: fn.Docstring,
		}
		t.mergePropTypes(&c)
		out = append(out, c)
	}

	for _, cls := range r.Classes {
		if !isComponentName(cls.Name) || !ComponentBaseClasses[cls.Superclass] {
			continue
		}
		body := t.lines.Text(cls.LineStart-1, cls.LineEnd-1)
		c := ComponentInfo{
			Name:      cls.Name,
			Props:     t.classProps(cls, body, types),
			Hooks:     []string{},
			HasJSX:    containsMarkup(body),
			Styling:   styling.classify(body),
			LineStart: cls.LineStart,
			LineEnd:   cls.LineEnd,
			Docstring: cls.Docstring,
		}
		t.mergePropTypes(&c)
		out = append(out, c)
	}
	return out
}

func isComponentName(name string) bool {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	return !EventHandlerName.MatchString(name)
}

func containsMarkup(body string) bool {
	for _, re := range MarkupPatterns {
		if re.MatchString(body) {
			return true
		}
	}
	return false
}

func containsFrameworkType(body string) bool {
	for _, marker := range FrameworkTypeMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

// namedObjectTypes indexes interface and object type alias members by name
func (t *toolkit) namedObjectTypes(r *ParseResult) map[string][]MemberInfo {
	types := map[string][]MemberInfo{}
	for _, iface := range r.Interfaces {
		types[iface.Name] = iface.Properties
	}
	for _, alias := range r.TypeAliases {
		if len(alias.Properties) > 0 {
			types[alias.Name] = alias.Properties
		}
	}
	return types
}

// functionProps derives props from the first parameter of a function component
func (t *toolkit) functionProps(fn FunctionInfo, body string, types map[string][]MemberInfo) []PropInfo {
	props := []PropInfo{}
	typeName := ""
	if m := fcTypeRe.FindStringSubmatch(t.lines.At(fn.LineStart - 1)); m != nil {
		typeName = m[1]
	}
	if len(fn.Parameters) == 0 {
		return propsFromMembers(types[typeName])
	}

	first := fn.Parameters[0]
	if first.Type != "" {
		typeName = first.Type
	}
	if i := strings.IndexByte(typeName, '<'); i > 0 {
		typeName = strings.TrimSpace(typeName[:i])
	}
	members, known := types[typeName]
	if !known && strings.HasPrefix(strings.TrimSpace(typeName), "{") {
		ms := &memberSet{}
		ms.addInline(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(typeName), "{"), "}"), fn.LineStart)
		members, known = ms.props, true
	}

	if first.Destructured && strings.HasPrefix(first.Name, "{") {
		for _, p := range destructuredNames(first.Name) {
			for _, m := range members {
				if m.Name == p.Name {
					p.Type = m.Type
					p.Optional = p.Optional || m.Optional
				}
			}
			props = append(props, p)
		}
		return props
	}
	if known {
		return propsFromMembers(members)
	}
	return propsFromAccess(propsAccessRe, body)
}

// classProps derives props of a class component from its generic argument or this.props usage
func (t *toolkit) classProps(cls ClassInfo, body string, types map[string][]MemberInfo) []PropInfo {
	if m := classPropsTypeRe.FindStringSubmatch(t.lines.At(cls.LineStart - 1)); m != nil {
		if members, ok := types[m[1]]; ok {
			return propsFromMembers(members)
		}
	}
	props := []PropInfo{}
	seen := map[string]bool{}
	for _, m := range propsDestructRe.FindAllStringSubmatch(body, -1) {
		for _, p := range destructuredNames("{" + m[1] + "}") {
			if !seen[p.Name] {
				seen[p.Name] = true
				props = append(props, p)
			}
		}
	}
	for _, p := range propsFromAccess(thisPropsRe, body) {
		if !seen[p.Name] {
			seen[p.Name] = true
			props = append(props, p)
		}
	}
	return props
}

// destructuredNames reads binding names out of an object pattern like "{ a, b = 1, c: d, ...rest }"
func destructuredNames(pattern string) []PropInfo {
	inner := strings.TrimSpace(pattern)
	inner = strings.TrimSuffix(strings.TrimPrefix(inner, "{"), "}")
	props := []PropInfo{}
	for _, part := range splitTopLevel(inner, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var p PropInfo
		if i := indexTopLevel(part, '='); i >= 0 {
			p.DefaultValue = strings.TrimSpace(part[i+1:])
			p.Optional = true
			part = strings.TrimSpace(part[:i])
		}
		part = strings.TrimPrefix(part, "...")
		if i := indexTopLevel(part, ':'); i >= 0 {
			part = strings.TrimSpace(part[:i])
		}
		if !isIdentifier(part) {
			continue
		}
		p.Name = part
		props = append(props, p)
	}
	return props
}

func propsFromMembers(members []MemberInfo) []PropInfo {
	props := []PropInfo{}
	for _, m := range members {
		props = append(props, PropInfo{Name: m.Name, Type: m.Type, Optional: m.Optional})
	}
	return props
}

func propsFromAccess(re *regexp.Regexp, body string) []PropInfo {
	props := []PropInfo{}
	seen := map[string]bool{}
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			props = append(props, PropInfo{Name: m[1]})
		}
	}
	return props
}

// mergePropTypes folds Name.propTypes and Name.defaultProps declarations into the props
func (t *toolkit) mergePropTypes(c *ComponentInfo) {
	index := map[string]int{}
	for i, p := range c.Props {
		index[p.Name] = i
	}
	upsert := func(name string, apply func(p *PropInfo)) {
		i, ok := index[name]
		if !ok {
			c.Props = append(c.Props, PropInfo{Name: name})
			i = len(c.Props) - 1
			index[name] = i
		}
		apply(&c.Props[i])
	}

	if body, ok := t.assignedObject(c.Name + ".propTypes"); ok {
		for _, m := range propTypeEntryRe.FindAllStringSubmatch(body, -1) {
			typ := m[2]
			upsert(m[1], func(p *PropInfo) {
				if p.Type == "" {
					p.Type = strings.TrimSuffix(typ, ".isRequired")
				}
				p.Optional = !strings.Contains(typ, "isRequired")
			})
		}
	}
	if body, ok := t.assignedObject(c.Name + ".defaultProps"); ok {
		for _, m := range defaultPropRe.FindAllStringSubmatch(body, -1) {
			value := strings.TrimSpace(m[2])
			upsert(m[1], func(p *PropInfo) {
				p.DefaultValue = value
				p.Optional = true
			})
		}
	}
}

// assignedObject returns the text of the object literal assigned to target at the top level
func (t *toolkit) assignedObject(target string) (string, bool) {
	for i := 0; i < t.lines.Len(); i++ {
		line := t.lines.At(i)
		idx := assignmentIndex(line, target)
		if idx < 0 {
			continue
		}
		col := strings.IndexByte(line[idx:], '{')
		if col < 0 {
			continue
		}
		end := t.scanner.FindBlockEndFrom(t.lines, i, idx+col, '{', '}')
		text := t.lines.Text(i, end)
		return text[strings.IndexByte(text, '{'):], true
	}
	return "", false
}

// assignmentIndex returns where target starts as the whole left-hand side of a
// plain assignment on line, or -1. Button.propTypes does not match inside
// IconButton.propTypes.
func assignmentIndex(line, target string) int {
	for from := 0; ; {
		idx := strings.Index(line[from:], target)
		if idx < 0 {
			return -1
		}
		idx += from
		from = idx + 1
		if idx > 0 && (isIdentByte(line[idx-1]) || line[idx-1] == '.') {
			continue
		}
		rest := strings.TrimSpace(line[idx+len(target):])
		if strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==") {
			return idx
		}
	}
}

// hookUsages lists catalogue primitives used on lines from..to as "hook" or
// "hook:subject", deduplicated in order of first use
func hookUsages(lines SourceLines, from, to int) []string {
	catalogue := make(map[string]bool, len(HookCatalogue))
	for _, h := range HookCatalogue {
		catalogue[h] = true
	}
	usages := []string{}
	seen := map[string]bool{}
	for i := from; i <= to && i < lines.Len(); i++ {
		line := lines.At(i)
		for _, m := range hookCallRe.FindAllStringSubmatchIndex(line, -1) {
			hook := line[m[2]:m[3]]
			if !catalogue[hook] {
				continue
			}
			subject := ""
			if hook == "useContext" {
				subject = line[m[4]:m[5]]
			} else if b := hookBindingRe.FindStringSubmatch(line[:m[0]]); b != nil {
				subject = b[1]
				if subject == "" {
					subject = b[2]
				}
			}
			usage := hook
			if subject != "" {
				usage += ":" + subject
			}
			if !seen[usage] {
				seen[usage] = true
				usages = append(usages, usage)
			}
		}
	}
	return usages
}

// stylingContext holds file-level facts the styling classification depends on
type stylingContext struct {
	styled       []string
	styledImport bool
	// moduleRefs match member access on CSS-module bindings
	moduleRefs []*regexp.Regexp
}

func (t *toolkit) newStylingContext(imports []ImportInfo) *stylingContext {
	sc := &stylingContext{}
	for _, imp := range imports {
		if imp.Module == "styled-components" || imp.Module == "@emotion/styled" {
			sc.styledImport = true
		}
		if cssModuleImportRe.MatchString(imp.Module) {
			for _, item := range imp.Items {
				name := item.Name
				if item.Alias != "" {
					name = item.Alias
				}
				sc.moduleRefs = append(sc.moduleRefs, regexp.MustCompile(
					`\b`+regexp.QuoteMeta(name)+`(?:\.(\w+)|\[\s*['"]([\w-]+)['"]\s*\])`))
			}
		}
	}
	for i := 0; i < t.lines.Len(); i++ {
		if m := styledDefRe.FindStringSubmatch(t.lines.At(i)); m != nil {
			sc.styled = append(sc.styled, m[1])
		}
	}
	return sc
}

// classify assigns one styling kind to a component body, trying kinds in StylingPriority order
func (sc *stylingContext) classify(body string) StylingInfo {
	for _, kind := range StylingPriority {
		if info, ok := sc.try(kind, body); ok {
			return info
		}
	}
	return StylingInfo{Kind: StylingNone}
}

func (sc *stylingContext) try(kind StylingKind, body string) (StylingInfo, bool) {
	switch kind {
	case StylingStyledJS:
		var used []string
		for _, name := range sc.styled {
			if strings.Contains(body, "<"+name) {
				used = append(used, name)
			}
		}
		if len(used) > 0 || (sc.styledImport && styledCallRe.MatchString(body)) {
			return StylingInfo{Kind: kind, StyledComponents: used}, true
		}
	case StylingModule:
		var classes []string
		for _, re := range sc.moduleRefs {
			for _, m := range re.FindAllStringSubmatch(body, -1) {
				classes = appendUnique(classes, m[1]+m[2])
			}
		}
		if len(classes) > 0 {
			return StylingInfo{Kind: kind, ClassNames: classes}, true
		}
	case StylingUtility:
		classes := classNameTokens(body)
		utility := 0
		for _, c := range classes {
			if UtilityClassPattern.MatchString(c) {
				utility++
			}
		}
		if utility > 0 && utility*2 >= len(classes) {
			return StylingInfo{Kind: kind, ClassNames: classes}, true
		}
	case StylingStyleBlock:
		if strings.Contains(body, "<style") {
			return StylingInfo{Kind: kind}, true
		}
	case StylingClassNames:
		if classes := classNameTokens(body); len(classes) > 0 {
			return StylingInfo{Kind: kind, ClassNames: classes}, true
		}
	case StylingInline:
		var styles []InlineStyle
		for _, m := range inlineStyleRe.FindAllStringSubmatch(body, -1) {
			var keys []string
			for _, k := range styleKeyRe.FindAllStringSubmatch(m[2], -1) {
				keys = append(keys, k[1])
			}
			styles = append(styles, InlineStyle{Element: m[1], Properties: keys})
		}
		if len(styles) > 0 {
			return StylingInfo{Kind: kind, InlineStyles: styles}, true
		}
	}
	return StylingInfo{}, false
}

func classNameTokens(body string) []string {
	var tokens []string
	for _, m := range classNameAttrRe.FindAllStringSubmatch(body, -1) {
		for _, tok := range strings.Fields(m[1] + " " + m[2] + " " + m[3]) {
			if !strings.ContainsAny(tok, "${}") {
				tokens = appendUnique(tokens, tok)
			}
		}
	}
	return tokens
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
