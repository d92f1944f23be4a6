package parser

// javascriptParser recovers the structural model of JavaScript and JSX
type javascriptParser struct {
	tk *toolkit
}

func newJavaScriptParser(lines SourceLines, opts Options) *javascriptParser {
	return &javascriptParser{tk: newToolkit(lines, opts, false)}
}

// Parse runs the untyped classifier set
func (p *javascriptParser) Parse() *ParseResult {
	r := newParseResult(DialectJavaScript, p.tk.lines.Len())
	r.Classes = p.tk.classes()
	r.Functions = p.tk.functions(r.Classes)
	r.Imports = p.tk.imports()
	r.Exports = p.tk.exports(r.Functions, r.Classes)
	r.Constants = p.tk.constants(r.Functions)
	r.Components = p.tk.components(r)
	return r
}
