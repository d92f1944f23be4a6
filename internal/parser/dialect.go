package parser

import "strings"

// Dialect selects which classifier set runs over a file
type Dialect string

const (
	// DialectJavaScript covers JavaScript and JSX
	DialectJavaScript Dialect = "javascript"
	// DialectTypeScript covers TypeScript and TSX
	DialectTypeScript Dialect = "typescript"
	// DialectUnknown runs no classifiers
	DialectUnknown Dialect = "unknown"
)

// ParseDialect maps a dialect or file-extension style name onto a Dialect
func ParseDialect(name string) Dialect {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "js", "javascript", "jsx", "mjs", "cjs":
		return DialectJavaScript
	case "ts", "typescript", "tsx", "mts", "cts":
		return DialectTypeScript
	}
	return DialectUnknown
}

// Options tune the heuristics
type Options struct {
	// ScanMode selects naive or literal-aware delimiter counting
	ScanMode ScanMode
	// DocWindow is how many lines above a declaration are searched for a comment
	DocWindow int
	// HeaderWindow caps how many lines are joined to recover a multi-line header
	HeaderWindow int
	// Complexity enables the complexity score on functions
	Complexity bool
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		ScanMode:     ScanNaive,
		DocWindow:    10,
		HeaderWindow: 8,
		Complexity:   true,
	}
}

// Option mutates Options
type Option func(*Options)

// WithScanMode sets the block scanner mode
func WithScanMode(mode ScanMode) Option {
	return func(o *Options) { o.ScanMode = mode }
}

// WithDocWindow sets how far above a declaration documentation is searched
func WithDocWindow(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.DocWindow = n
		}
	}
}

// WithHeaderWindow sets the multi-line header limit
func WithHeaderWindow(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.HeaderWindow = n
		}
	}
}

// WithComplexity toggles complexity scoring
func WithComplexity(enabled bool) Option {
	return func(o *Options) { o.Complexity = enabled }
}

// WithOptions replaces all options at once
func WithOptions(opts Options) Option {
	return func(o *Options) {
		defaults := DefaultOptions()
		*o = opts
		if o.ScanMode == "" {
			o.ScanMode = defaults.ScanMode
		}
		if o.DocWindow <= 0 {
			o.DocWindow = defaults.DocWindow
		}
		if o.HeaderWindow <= 0 {
			o.HeaderWindow = defaults.HeaderWindow
		}
	}
}

// dialectParser is implemented by each dialect
type dialectParser interface {
	Parse() *ParseResult
}

// Parse extracts the structural model of text in the given dialect. It never
// fails: unknown dialects and unrecognizable text produce an empty result.
func Parse(text string, dialect Dialect, opts ...Option) *ParseResult {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	lines := NewSourceLines(text)
	var p dialectParser
	switch dialect {
	case DialectJavaScript:
		p = newJavaScriptParser(lines, o)
	case DialectTypeScript:
		p = newTypeScriptParser(lines, o)
	default:
		return newParseResult(DialectUnknown, lines.Len())
	}

	result := p.Parse()
	clampResult(result)
	return result
}

// clampResult forces every line number into [1, LineCount] with start <= end
func clampResult(r *ParseResult) {
	n := r.LineCount
	clamp := func(v int) int {
		if v > n {
			v = n
		}
		if v < 1 {
			v = 1
		}
		return v
	}
	span := func(start, end *int) {
		*start = clamp(*start)
		*end = clamp(*end)
		if *end < *start {
			*end = *start
		}
	}

	for i := range r.Functions {
		span(&r.Functions[i].LineStart, &r.Functions[i].LineEnd)
	}
	for i := range r.Classes {
		c := &r.Classes[i]
		span(&c.LineStart, &c.LineEnd)
		for j := range c.Methods {
			span(&c.Methods[j].LineStart, &c.Methods[j].LineEnd)
		}
		for j := range c.Properties {
			c.Properties[j].Line = clamp(c.Properties[j].Line)
		}
	}
	for i := range r.Imports {
		r.Imports[i].Line = clamp(r.Imports[i].Line)
	}
	for i := range r.Exports {
		r.Exports[i].Line = clamp(r.Exports[i].Line)
	}
	for i := range r.Constants {
		r.Constants[i].Line = clamp(r.Constants[i].Line)
	}
	for i := range r.Interfaces {
		span(&r.Interfaces[i].LineStart, &r.Interfaces[i].LineEnd)
	}
	for i := range r.TypeAliases {
		span(&r.TypeAliases[i].LineStart, &r.TypeAliases[i].LineEnd)
	}
	for i := range r.Components {
		span(&r.Components[i].LineStart, &r.Components[i].LineEnd)
	}
	for i := range r.Decorators {
		r.Decorators[i].Line = clamp(r.Decorators[i].Line)
	}
}
