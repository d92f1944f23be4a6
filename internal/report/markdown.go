// Package report renders parse results as Markdown
package report

import (
	"fmt"
	"strings"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
)

// Markdown renders the structural model of one file
func Markdown(fr *parser.FileResult) string {
	var b strings.Builder
	r := fr.Result

	fmt.Fprintf(&b, "# %s\n\n", fr.Path)
	fmt.Fprintf(&b, "- Language: %s\n", fr.Language)
	fmt.Fprintf(&b, "- Dialect: %s\n", fr.Dialect)
	fmt.Fprintf(&b, "- Lines: %d\n", fr.LineCount)
	fmt.Fprintf(&b, "- Size: %d bytes\n", fr.Size)

	writeSummary(&b, r)
	writeImports(&b, r.Imports)
	writeExports(&b, r.Exports)
	writeFunctions(&b, "Functions", r.Functions)
	writeClasses(&b, r.Classes)
	writeInterfaces(&b, r.Interfaces)
	writeTypeAliases(&b, r.TypeAliases)
	writeConstants(&b, r.Constants)
	writeComponents(&b, r.Components)
	writeDecorators(&b, r.Decorators)

	return b.String()
}

func writeSummary(b *strings.Builder, r *parser.ParseResult) {
	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Kind | Count |\n|---|---|\n")
	rows := []struct {
		kind  string
		count int
	}{
		{"Functions", len(r.Functions)},
		{"Classes", len(r.Classes)},
		{"Imports", len(r.Imports)},
		{"Exports", len(r.Exports)},
		{"Constants", len(r.Constants)},
		{"Interfaces", len(r.Interfaces)},
		{"Type aliases", len(r.TypeAliases)},
		{"Components", len(r.Components)},
		{"Decorators", len(r.Decorators)},
	}
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %d |\n", row.kind, row.count)
	}
}

func writeImports(b *strings.Builder, imports []parser.ImportInfo) {
	if len(imports) == 0 {
		return
	}
	b.WriteString("\n## Imports\n\n")
	for _, im := range imports {
		names := make([]string, 0, len(im.Items))
		for _, it := range im.Items {
			if it.Alias != "" {
				names = append(names, it.Name+" as "+it.Alias)
			} else {
				names = append(names, it.Name)
			}
		}
		fmt.Fprintf(b, "- `%s` (%s, line %d)", im.Module, im.Kind, im.Line)
		if len(names) > 0 {
			fmt.Fprintf(b, ": %s", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
}

func writeExports(b *strings.Builder, exports []parser.ExportInfo) {
	if len(exports) == 0 {
		return
	}
	b.WriteString("\n## Exports\n\n")
	for _, ex := range exports {
		fmt.Fprintf(b, "- `%s` (%s, line %d)", ex.Name, ex.Kind, ex.Line)
		if ex.Source != "" {
			fmt.Fprintf(b, " from `%s`", ex.Source)
		}
		b.WriteString("\n")
	}
}

// Signature renders a function header such as "async load(id: string): User"
func Signature(f parser.FunctionInfo) string {
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		s := p.Name
		if p.Rest {
			s = "..." + s
		}
		if p.Optional && p.DefaultValue == "" {
			s += "?"
		}
		if p.Type != "" {
			s += ": " + p.Type
		}
		if p.DefaultValue != "" {
			s += " = " + p.DefaultValue
		}
		params = append(params, s)
	}

	var prefix string
	if f.Static {
		prefix += "static "
	}
	if f.Async {
		prefix += "async "
	}
	if f.Generator {
		prefix += "*"
	}

	sig := fmt.Sprintf("%s%s(%s)", prefix, f.Name, strings.Join(params, ", "))
	if f.ReturnType != "" {
		sig += ": " + f.ReturnType
	}
	return sig
}

func writeFunctions(b *strings.Builder, title string, functions []parser.FunctionInfo) {
	if len(functions) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, f := range functions {
		writeFunction(b, f, "")
	}
}

func writeFunction(b *strings.Builder, f parser.FunctionInfo, indent string) {
	fmt.Fprintf(b, "%s- `%s` lines %d-%d", indent, Signature(f), f.LineStart, f.LineEnd)
	if f.Complexity > 0 {
		fmt.Fprintf(b, ", complexity %d", f.Complexity)
	}
	if f.Visibility != "" && f.Visibility != parser.VisibilityPublic {
		fmt.Fprintf(b, ", %s", f.Visibility)
	}
	if len(f.Decorators) > 0 {
		fmt.Fprintf(b, ", decorated with %s", strings.Join(prefixAll(f.Decorators, "@"), " "))
	}
	b.WriteString("\n")
	if f.Docstring != "" {
		fmt.Fprintf(b, "%s  > %s\n", indent, firstLine(f.Docstring))
	}
}

func writeClasses(b *strings.Builder, classes []parser.ClassInfo) {
	if len(classes) == 0 {
		return
	}
	b.WriteString("\n## Classes\n")
	for _, c := range classes {
		fmt.Fprintf(b, "\n### %s\n\n", c.Name)
		fmt.Fprintf(b, "Lines %d-%d", c.LineStart, c.LineEnd)
		if c.Abstract {
			b.WriteString(", abstract")
		}
		if c.Superclass != "" {
			fmt.Fprintf(b, ", extends `%s`", c.Superclass)
		}
		if len(c.Implements) > 0 {
			fmt.Fprintf(b, ", implements %s", strings.Join(quoteAll(c.Implements), ", "))
		}
		if len(c.Decorators) > 0 {
			fmt.Fprintf(b, ", decorated with %s", strings.Join(prefixAll(c.Decorators, "@"), " "))
		}
		b.WriteString("\n")
		if c.Docstring != "" {
			fmt.Fprintf(b, "\n> %s\n", firstLine(c.Docstring))
		}

		if len(c.Properties) > 0 {
			b.WriteString("\nProperties:\n\n")
			for _, p := range c.Properties {
				fmt.Fprintf(b, "- `%s`", p.Name)
				if p.Type != "" {
					fmt.Fprintf(b, ": `%s`", p.Type)
				}
				fmt.Fprintf(b, " (%s, line %d)\n", p.Visibility, p.Line)
			}
		}
		if len(c.Methods) > 0 {
			b.WriteString("\nMethods:\n\n")
			for _, m := range c.Methods {
				writeFunction(b, m, "")
			}
		}
	}
}

func writeMembers(b *strings.Builder, props []parser.MemberInfo, methods []parser.MethodSignature) {
	for _, p := range props {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		fmt.Fprintf(b, "  - `%s%s: %s`\n", p.Name, opt, p.Type)
	}
	for _, m := range methods {
		sig := Signature(parser.FunctionInfo{Name: m.Name, Parameters: m.Parameters, ReturnType: m.ReturnType})
		fmt.Fprintf(b, "  - `%s`\n", sig)
	}
}

func writeInterfaces(b *strings.Builder, interfaces []parser.InterfaceInfo) {
	if len(interfaces) == 0 {
		return
	}
	b.WriteString("\n## Interfaces\n\n")
	for _, i := range interfaces {
		fmt.Fprintf(b, "- `%s` lines %d-%d", i.Name, i.LineStart, i.LineEnd)
		if len(i.Extends) > 0 {
			fmt.Fprintf(b, ", extends %s", strings.Join(quoteAll(i.Extends), ", "))
		}
		b.WriteString("\n")
		writeMembers(b, i.Properties, i.Methods)
	}
}

func writeTypeAliases(b *strings.Builder, aliases []parser.TypeAliasInfo) {
	if len(aliases) == 0 {
		return
	}
	b.WriteString("\n## Type aliases\n\n")
	for _, t := range aliases {
		fmt.Fprintf(b, "- `%s` lines %d-%d", t.Name, t.LineStart, t.LineEnd)
		if t.Definition != "" && !strings.Contains(t.Definition, "\n") {
			fmt.Fprintf(b, ": `%s`", t.Definition)
		}
		b.WriteString("\n")
		writeMembers(b, t.Properties, t.Methods)
	}
}

func writeConstants(b *strings.Builder, constants []parser.ConstantInfo) {
	if len(constants) == 0 {
		return
	}
	b.WriteString("\n## Constants\n\n")
	for _, c := range constants {
		fmt.Fprintf(b, "- `%s`", c.Name)
		if c.Type != "" {
			fmt.Fprintf(b, ": `%s`", c.Type)
		}
		if c.Value != "" {
			fmt.Fprintf(b, " = `%s`", c.Value)
		}
		fmt.Fprintf(b, " (line %d)\n", c.Line)
	}
}

func writeComponents(b *strings.Builder, components []parser.ComponentInfo) {
	if len(components) == 0 {
		return
	}
	b.WriteString("\n## Components\n")
	for _, c := range components {
		fmt.Fprintf(b, "\n### %s\n\n", c.Name)
		fmt.Fprintf(b, "Lines %d-%d, styling: %s\n", c.LineStart, c.LineEnd, c.Styling.Kind)
		if len(c.Props) > 0 {
			b.WriteString("\n| Prop | Type | Optional | Default |\n|---|---|---|---|\n")
			for _, p := range c.Props {
				opt := "no"
				if p.Optional {
					opt = "yes"
				}
				fmt.Fprintf(b, "| %s | %s | %s | %s |\n", p.Name, cell(p.Type), opt, cell(p.DefaultValue))
			}
		}
		if len(c.Hooks) > 0 {
			fmt.Fprintf(b, "\nHooks: %s\n", strings.Join(quoteAll(c.Hooks), ", "))
		}
	}
}

func writeDecorators(b *strings.Builder, decorators []parser.DecoratorInfo) {
	if len(decorators) == 0 {
		return
	}
	b.WriteString("\n## Decorators\n\n")
	for _, d := range decorators {
		fmt.Fprintf(b, "- `@%s` (line %d)", d.Name, d.Line)
		if d.TargetName != "" {
			fmt.Fprintf(b, " on %s `%s`", d.TargetKind, d.TargetName)
		}
		b.WriteString("\n")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// cell escapes pipes so a value fits in a table cell
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "`" + s + "`"
	}
	return out
}

func prefixAll(items []string, prefix string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = prefix + s
	}
	return out
}
