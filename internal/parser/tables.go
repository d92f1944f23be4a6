package parser

import "regexp"

// Heuristic tables shared by the classifiers

// ReservedWords may look like a callable name at the start of a line but never name a function
var ReservedWords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true, "switch": true,
	"case": true, "default": true, "catch": true, "try": true, "finally": true,
	"return": true, "throw": true, "function": true, "new": true, "typeof": true,
	"instanceof": true, "delete": true, "void": true, "await": true, "yield": true,
	"class": true, "const": true, "let": true, "var": true, "import": true,
	"export": true, "super": true, "this": true, "with": true, "in": true, "of": true,
	"break": true, "continue": true, "debugger": true, "extends": true,
}

// MemberModifiers are the keywords that may precede a class member name
var MemberModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "static": true, "async": true,
	"readonly": true, "abstract": true, "override": true, "declare": true,
	"get": true, "set": true, "accessor": true,
}

// EventHandlerName matches names shaped like event handlers (onClick, handleSubmit)
var EventHandlerName = regexp.MustCompile(`^(?:[oO]n|[hH]andle)[A-Z]`)

// UIFrameworkModules are the import specifiers that make a file eligible for component detection
var UIFrameworkModules = []string{
	"react",
	"react-dom",
	"react-native",
	"preact",
	"preact/compat",
	"preact/hooks",
	"solid-js",
	"vue",
	"@emotion/react",
}

// ComponentBaseClasses are the superclasses that make a class a component candidate
var ComponentBaseClasses = map[string]bool{
	"Component":           true,
	"PureComponent":       true,
	"React.Component":     true,
	"React.PureComponent": true,
}

// MarkupPatterns signal that a body renders markup
var MarkupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|[^\w$.])<[A-Z][\w.]*(?:\s|/?>|$)`),
	regexp.MustCompile(`</[\w.]*>`),
	regexp.MustCompile(`return\s*\(\s*<`),
	regexp.MustCompile(`=>\s*\(\s*<[\w>]`),
	regexp.MustCompile(`<>`),
	regexp.MustCompile(`(?:^|[^\w$.])<[a-z][\w-]*(?:\s+[\w-]+=|\s*/?>)`),
}

// FrameworkTypeMarkers are type annotations that identify a component without markup
var FrameworkTypeMarkers = []string{
	"React.FC",
	"React.FunctionComponent",
	"FC<",
	"FunctionComponent",
	"JSX.Element",
	"ReactNode",
	"ReactElement",
	"Component<",
}

// HookCatalogue is the fixed set of state, effect, context, ref and memoization primitives
var HookCatalogue = []string{
	"useState",
	"useEffect",
	"useContext",
	"useReducer",
	"useCallback",
	"useMemo",
	"useRef",
	"useLayoutEffect",
	"useImperativeHandle",
	"useDebugValue",
	"useTransition",
	"useDeferredValue",
	"useId",
	"useSyncExternalStore",
	"createSignal",
	"createEffect",
	"createMemo",
}

// StylingPriority is the order in which styling classifications are tried
var StylingPriority = []StylingKind{
	StylingStyledJS,
	StylingModule,
	StylingUtility,
	StylingStyleBlock,
	StylingClassNames,
	StylingInline,
}

// UtilityClassPattern matches class tokens typical of utility-first CSS frameworks
var UtilityClassPattern = regexp.MustCompile(
	`^(?:-?(?:m|p)[trblxy]?-\d|(?:w|h|min-w|max-w|min-h|max-h)-|flex|grid|gap-|text-|bg-|border|rounded|shadow|font-|items-|justify-|space-[xy]-|(?:sm|md|lg|xl|2xl|hover|focus|dark):)`)

// ComplexityKeywords each add one decision point
var ComplexityKeywords = []string{"if", "for", "while", "case", "catch"}
