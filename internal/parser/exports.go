package parser

import (
	"regexp"
	"strings"
)

var (
	exportDefaultRe = regexp.MustCompile(`^export\s+default\b(?:\s+(?:abstract\s+)?(?:async\s+)?(?:function\s*\*?|class)\s*(` +
		identPattern + `)?|\s+(` + identPattern + `)\s*;?\s*$)?`)
	exportFunctionRe = regexp.MustCompile(`^export\s+(?:declare\s+)?(?:async\s+)?function\s*\*?\s*(` + identPattern + `)`)
	exportClassRe    = regexp.MustCompile(`^export\s+(?:declare\s+)?(?:abstract\s+)?class\s+(` + identPattern + `)`)
	exportConstRe    = regexp.MustCompile(`^export\s+(?:declare\s+)?(?:const\s+enum|const|let|var|enum)\s+(` + identPattern + `)`)
	exportListRe     = regexp.MustCompile(`^export\s+(?:type\s+)?\{([^}]*)\}(?:\s*from\s+` + modulePattern + `)?`)
	exportStarRe     = regexp.MustCompile(`^export\s+\*(?:\s+as\s+(` + identPattern + `))?\s+from\s+` + modulePattern)
	moduleExportsRe  = regexp.MustCompile(`^module\.exports\s*=\s*(?:\{(.*)|(` + identPattern + `))`)
	exportsPropRe    = regexp.MustCompile(`^(?:module\.)?exports\.(` + identPattern + `)\s*=\s*(.*)$`)
	functionValueRe  = regexp.MustCompile(`^(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|` + identPattern + `\s*=>)`)
)

// exportKinds cross-references names against already classified declarations
type exportKinds struct {
	functions map[string]bool
	classes   map[string]bool
}

func newExportKinds(functions []FunctionInfo, classes []ClassInfo) exportKinds {
	k := exportKinds{functions: map[string]bool{}, classes: map[string]bool{}}
	for _, fn := range functions {
		k.functions[fn.Name] = true
	}
	for _, c := range classes {
		k.classes[c.Name] = true
	}
	return k
}

func (k exportKinds) of(name string) ExportKind {
	switch {
	case k.functions[name]:
		return ExportFunction
	case k.classes[name]:
		return ExportClass
	}
	return ExportConstant
}

// exports classifies each top-level line against the ordered export shapes:
// default export, function, class, variable, re-export list (and export *),
// module.exports assignment, exports.name assignment
func (t *toolkit) exports(functions []FunctionInfo, classes []ClassInfo) []ExportInfo {
	out := []ExportInfo{}
	kinds := newExportKinds(functions, classes)
	for i := 0; i < t.lines.Len(); i++ {
		if t.depth(i) != 0 {
			continue
		}
		trimmed := t.lines.Trimmed(i)
		if !strings.HasPrefix(trimmed, "export") && !strings.HasPrefix(trimmed, "module.exports") {
			continue
		}
		line := i + 1

		if m := exportDefaultRe.FindStringSubmatch(trimmed); m != nil {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			if name == "" || ReservedWords[name] {
				name = "default"
			}
			out = append(out, ExportInfo{Name: name, Kind: ExportDefault, Line: line})
			continue
		}
		if m := exportFunctionRe.FindStringSubmatch(trimmed); m != nil {
			out = append(out, ExportInfo{Name: m[1], Kind: ExportFunction, Line: line})
			continue
		}
		if m := exportClassRe.FindStringSubmatch(trimmed); m != nil {
			out = append(out, ExportInfo{Name: m[1], Kind: ExportClass, Line: line})
			continue
		}
		if m := exportConstRe.FindStringSubmatch(trimmed); m != nil {
			kind := ExportConstant
			if kinds.functions[m[1]] {
				kind = ExportFunction
			}
			out = append(out, ExportInfo{Name: m[1], Kind: kind, Line: line})
			continue
		}
		if strings.HasPrefix(trimmed, "export {") || strings.HasPrefix(trimmed, "export type {") {
			text, end := t.statementAt(i)
			if m := exportListRe.FindStringSubmatch(text); m != nil {
				for _, item := range parseImportItems(m[1], false) {
					name := item.Name
					if item.Alias != "" {
						name = item.Alias
					}
					kind := kinds.of(item.Name)
					if name == "default" {
						kind = ExportDefault
					}
					out = append(out, ExportInfo{Name: name, Kind: kind, Source: m[2], Line: line})
				}
				i = end
				continue
			}
		}
		if m := exportStarRe.FindStringSubmatch(trimmed); m != nil {
			name := m[1]
			if name == "" {
				name = "*"
			}
			out = append(out, ExportInfo{Name: name, Kind: ExportConstant, Source: m[2], Line: line})
			continue
		}
		if strings.HasPrefix(trimmed, "module.exports") {
			text, end := t.statementAt(i)
			if m := moduleExportsRe.FindStringSubmatch(text); m != nil {
				if m[2] != "" {
					out = append(out, ExportInfo{Name: m[2], Kind: ExportDefault, Line: line})
				} else {
					body := strings.TrimSuffix(strings.TrimRight(strings.TrimSpace(m[1]), "; "), "}")
					out = append(out, objectExports(body, kinds, line)...)
				}
				i = end
				continue
			}
		}
		if m := exportsPropRe.FindStringSubmatch(trimmed); m != nil {
			kind := kinds.of(m[1])
			if functionValueRe.MatchString(strings.TrimSpace(m[2])) {
				kind = ExportFunction
			}
			out = append(out, ExportInfo{Name: m[1], Kind: kind, Line: line})
		}
	}
	return out
}

// objectExports reads the keys of a module.exports object literal
func objectExports(body string, kinds exportKinds, line int) []ExportInfo {
	out := []ExportInfo{}
	for _, entry := range splitTopLevel(body, ',') {
		entry = strings.TrimSpace(entry)
		if entry == "" || strings.HasPrefix(entry, "...") {
			continue
		}
		key, value, hasValue := strings.Cut(entry, ":")
		key = strings.Trim(strings.TrimSpace(key), `'"`)
		if i := strings.IndexByte(key, '('); i >= 0 {
			// method shorthand
			out = append(out, ExportInfo{Name: strings.TrimSpace(key[:i]), Kind: ExportFunction, Line: line})
			continue
		}
		if !isIdentifier(key) {
			continue
		}
		kind := kinds.of(key)
		if hasValue {
			value = strings.TrimSpace(value)
			if functionValueRe.MatchString(value) {
				kind = ExportFunction
			} else if isIdentifier(value) {
				kind = kinds.of(value)
			}
		}
		out = append(out, ExportInfo{Name: key, Kind: kind, Line: line})
	}
	return out
}
