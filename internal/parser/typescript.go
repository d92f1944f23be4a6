package parser

// typescriptParser recovers the structural model of TypeScript and TSX. Over
// the JavaScript classifiers it adds type annotations, visibility modifiers,
// interfaces, type aliases and decorators.
type typescriptParser struct {
	tk *toolkit
}

func newTypeScriptParser(lines SourceLines, opts Options) *typescriptParser {
	return &typescriptParser{tk: newToolkit(lines, opts, true)}
}

// Parse runs the typed classifier set
func (p *typescriptParser) Parse() *ParseResult {
	r := newParseResult(DialectTypeScript, p.tk.lines.Len())
	r.Classes = p.tk.classes()
	r.Functions = p.tk.functions(r.Classes)
	r.Imports = p.tk.imports()
	r.Exports = p.tk.exports(r.Functions, r.Classes)
	r.Constants = p.tk.constants(r.Functions)
	r.Interfaces = p.tk.interfaces()
	r.TypeAliases = p.tk.typeAliases()
	r.Decorators = p.tk.decorators()
	r.Components = p.tk.components(r)
	return r
}
