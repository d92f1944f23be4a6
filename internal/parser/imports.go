package parser

import (
	"regexp"
	"strings"
)

const modulePattern = `['"]([^'"]+)['"]`

// importShape is one entry of the ordered import shape list
type importShape struct {
	kind ImportKind
	re   *regexp.Regexp
	// build turns the submatches into an ImportInfo
	build func(m []string) ImportInfo
}

var importShapes = []importShape{
	{
		kind: ImportDefault,
		re:   regexp.MustCompile(`^import\s+(` + identPattern + `)\s+from\s+` + modulePattern),
		build: func(m []string) ImportInfo {
			return ImportInfo{Module: m[2], IsDefault: true, Items: []ImportItem{{Name: m[1]}}}
		},
	},
	{
		kind: ImportNamed,
		re:   regexp.MustCompile(`^import\s+\{([^}]*)\}\s*from\s+` + modulePattern),
		build: func(m []string) ImportInfo {
			return ImportInfo{Module: m[2], Items: parseImportItems(m[1], false)}
		},
	},
	{
		kind: ImportDefaultNamed,
		re:   regexp.MustCompile(`^import\s+(` + identPattern + `)\s*,\s*\{([^}]*)\}\s*from\s+` + modulePattern),
		build: func(m []string) ImportInfo {
			items := append([]ImportItem{{Name: m[1]}}, parseImportItems(m[2], false)...)
			return ImportInfo{Module: m[3], IsDefault: true, Items: items}
		},
	},
	{
		kind: ImportDefaultNamespace,
		re: regexp.MustCompile(`^import\s+(` + identPattern + `)\s*,\s*\*\s*as\s+(` + identPattern +
			`)\s+from\s+` + modulePattern),
		build: func(m []string) ImportInfo {
			return ImportInfo{Module: m[3], IsDefault: true, Items: []ImportItem{{Name: m[1]}, {Name: "*", Alias: m[2]}}}
		},
	},
	{
		kind: ImportNamespace,
		re:   regexp.MustCompile(`^import\s+\*\s*as\s+(` + identPattern + `)\s+from\s+` + modulePattern),
		build: func(m []string) ImportInfo {
			return ImportInfo{Module: m[2], Items: []ImportItem{{Name: "*", Alias: m[1]}}}
		},
	},
	{
		kind: ImportRequire,
		re: regexp.MustCompile(`^(?:const|let|var)\s+(\{[^}]*\}|` + identPattern +
			`)\s*=\s*require\(\s*` + modulePattern + `\s*\)`),
		build: func(m []string) ImportInfo {
			if strings.HasPrefix(m[1], "{") {
				return ImportInfo{Module: m[2], Items: parseImportItems(strings.Trim(m[1], "{}"), true)}
			}
			return ImportInfo{Module: m[2], IsDefault: true, Items: []ImportItem{{Name: m[1]}}}
		},
	},
	{
		kind: ImportTypeNamed,
		re:   regexp.MustCompile(`^import\s+type\s+\{([^}]*)\}\s*from\s+` + modulePattern),
		build: func(m []string) ImportInfo {
			items := parseImportItems(m[1], false)
			for i := range items {
				items[i].TypeOnly = true
			}
			return ImportInfo{Module: m[2], TypeOnly: true, Items: items}
		},
	},
	{
		kind: ImportTypeDefault,
		re:   regexp.MustCompile(`^import\s+type\s+(` + identPattern + `)\s+from\s+` + modulePattern),
		build: func(m []string) ImportInfo {
			return ImportInfo{Module: m[2], IsDefault: true, TypeOnly: true, Items: []ImportItem{{Name: m[1], TypeOnly: true}}}
		},
	},
	{
		kind: ImportSideEffect,
		re:   regexp.MustCompile(`^import\s+` + modulePattern),
		build: func(m []string) ImportInfo {
			return ImportInfo{Module: m[1], Items: []ImportItem{}}
		},
	},
}

// parseImportItems parses "a, b as c, type D" or, for require destructuring, "a, b: c"
func parseImportItems(list string, destructure bool) []ImportItem {
	items := []ImportItem{}
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		var item ImportItem
		if strings.HasPrefix(raw, "type ") {
			item.TypeOnly = true
			raw = strings.TrimSpace(strings.TrimPrefix(raw, "type "))
		}
		sep := " as "
		if destructure {
			sep = ":"
		}
		if name, alias, ok := strings.Cut(raw, sep); ok {
			item.Name, item.Alias = strings.TrimSpace(name), strings.TrimSpace(alias)
		} else {
			item.Name = raw
		}
		items = append(items, item)
	}
	return items
}

// statementAt returns the trimmed statement starting on line i, joining
// following lines while a { list stays open, and the index of its last line
func (t *toolkit) statementAt(i int) (string, int) {
	text := t.lines.Trimmed(i)
	end := i
	limit := i + t.opts.HeaderWindow*4
	for strings.Count(text, "{") > strings.Count(text, "}") && end+1 < t.lines.Len() && end < limit {
		end++
		text += " " + t.lines.Trimmed(end)
	}
	return text, end
}

// imports classifies every import-looking line against the ordered shapes
func (t *toolkit) imports() []ImportInfo {
	out := []ImportInfo{}
	for i := 0; i < t.lines.Len(); i++ {
		trimmed := t.lines.Trimmed(i)
		if !strings.HasPrefix(trimmed, "import") && !strings.Contains(trimmed, "require(") {
			continue
		}
		text, end := t.statementAt(i)
		for _, shape := range importShapes {
			m := shape.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			imp := shape.build(m)
			imp.Kind = shape.kind
			imp.Line = i + 1
			out = append(out, imp)
			i = end
			break
		}
	}
	return out
}

// importsModule reports whether any import brings in one of the given modules
func importsModule(imports []ImportInfo, modules []string) bool {
	for _, imp := range imports {
		for _, mod := range modules {
			if imp.Module == mod {
				return true
			}
		}
	}
	return false
}
