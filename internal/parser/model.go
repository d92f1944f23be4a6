// Package parser recovers a structural inventory of declarations from ECMAScript-family source text
package parser

// Visibility is the access level of a function, method or property
type Visibility string

const (
	// VisibilityPublic is the default visibility
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate marks private members (TypeScript modifier or #name)
	VisibilityPrivate Visibility = "private"
	// VisibilityProtected marks protected members
	VisibilityProtected Visibility = "protected"
)

// ExportKind is the coarse kind of an exported name
type ExportKind string

const (
	// ExportFunction is an exported function
	ExportFunction ExportKind = "function"
	// ExportClass is an exported class
	ExportClass ExportKind = "class"
	// ExportConstant is an exported variable or any other value
	ExportConstant ExportKind = "constant"
	// ExportDefault is a default export
	ExportDefault ExportKind = "default"
)

// Function kinds
const (
	FunctionDeclaration = "function"
	FunctionArrow       = "arrow"
	FunctionExpression  = "expression"
	FunctionMethod      = "method"
	FunctionConstructor = "constructor"
	FunctionGetter      = "getter"
	FunctionSetter      = "setter"
)

// ImportKind names the shape an import statement was recognized as
type ImportKind string

const (
	ImportDefault          ImportKind = "default"
	ImportNamed            ImportKind = "named"
	ImportDefaultNamed     ImportKind = "default+named"
	ImportDefaultNamespace ImportKind = "default+namespace"
	ImportNamespace        ImportKind = "namespace"
	ImportRequire          ImportKind = "require"
	ImportTypeNamed        ImportKind = "type-named"
	ImportTypeDefault      ImportKind = "type-default"
	ImportSideEffect       ImportKind = "side-effect"
)

// StylingKind classifies how a UI component is styled
type StylingKind string

const (
	StylingStyledJS   StylingKind = "styled-in-js"
	StylingModule     StylingKind = "css-modules"
	StylingUtility    StylingKind = "utility-classes"
	StylingStyleBlock StylingKind = "style-block"
	StylingClassNames StylingKind = "class-names"
	StylingInline     StylingKind = "inline-style"
	StylingNone       StylingKind = "none"
)

// Parameter is one entry of a function parameter list
type Parameter struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
	Destructured bool   `json:"destructured,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
	Rest         bool   `json:"rest,omitempty"`
}

// DocParam is a documented parameter from a @param tag
type DocParam struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Description  string `json:"description,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
}

// DocReturn is the @returns tag
type DocReturn struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// DocThrows is one @throws tag
type DocThrows struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// DocTag is any tag without a dedicated field
type DocTag struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// StructuredDoc is the parsed form of a documentation comment
type StructuredDoc struct {
	Description     string      `json:"description,omitempty"`
	Params          []DocParam  `json:"params,omitempty"`
	Returns         *DocReturn  `json:"returns,omitempty"`
	Throws          []DocThrows `json:"throws,omitempty"`
	Examples        []string    `json:"examples,omitempty"`
	Deprecated      bool        `json:"deprecated,omitempty"`
	DeprecationNote string      `json:"deprecation_note,omitempty"`
	Since           string      `json:"since,omitempty"`
	Author          string      `json:"author,omitempty"`
	Tags            []DocTag    `json:"tags,omitempty"`
}

// FunctionInfo describes a function, method or function-valued variable
type FunctionInfo struct {
	Name       string         `json:"name"`
	Kind       string         `json:"kind"`
	Parameters []Parameter    `json:"parameters"`
	ReturnType string         `json:"return_type,omitempty"`
	Async      bool           `json:"async,omitempty"`
	Static     bool           `json:"static,omitempty"`
	Generator  bool           `json:"generator,omitempty"`
	Visibility Visibility     `json:"visibility"`
	Decorators []string       `json:"decorators,omitempty"`
	LineStart  int            `json:"line_start"`
	LineEnd    int            `json:"line_end"`
	Docstring  string         `json:"docstring,omitempty"`
	Docs       *StructuredDoc `json:"docs,omitempty"`
	Complexity int            `json:"complexity,omitempty"`
}

// PropertyInfo describes a class field
type PropertyInfo struct {
	Name         string     `json:"name"`
	Type         string     `json:"type,omitempty"`
	Visibility   Visibility `json:"visibility"`
	Static       bool       `json:"static,omitempty"`
	Readonly     bool       `json:"readonly,omitempty"`
	Optional     bool       `json:"optional,omitempty"`
	DefaultValue string     `json:"default_value,omitempty"`
	Line         int        `json:"line"`
	Docstring    string     `json:"docstring,omitempty"`
}

// ClassInfo describes a class declaration and its members
type ClassInfo struct {
	Name       string         `json:"name"`
	Superclass string         `json:"superclass,omitempty"`
	Implements []string       `json:"implements"`
	Abstract   bool           `json:"abstract,omitempty"`
	Decorators []string       `json:"decorators,omitempty"`
	Methods    []FunctionInfo `json:"methods"`
	Properties []PropertyInfo `json:"properties"`
	LineStart  int            `json:"line_start"`
	LineEnd    int            `json:"line_end"`
	Docstring  string         `json:"docstring,omitempty"`
}

// ImportItem is one binding brought in by an import
type ImportItem struct {
	Name     string `json:"name"`
	Alias    string `json:"alias,omitempty"`
	TypeOnly bool   `json:"type_only,omitempty"`
}

// ImportInfo describes one import statement
type ImportInfo struct {
	Module    string       `json:"module"`
	Kind      ImportKind   `json:"kind"`
	Items     []ImportItem `json:"items"`
	IsDefault bool         `json:"is_default"`
	TypeOnly  bool         `json:"type_only,omitempty"`
	Line      int          `json:"line"`
}

// ExportInfo describes one exported name
type ExportInfo struct {
	Name   string     `json:"name"`
	Kind   ExportKind `json:"kind"`
	Source string     `json:"source,omitempty"`
	Line   int        `json:"line"`
}

// ConstantInfo describes a file-level const declaration that is not function-valued
type ConstantInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Value    string `json:"value,omitempty"`
	Exported bool   `json:"exported,omitempty"`
	Line     int    `json:"line"`
}

// MemberInfo is a declarative property of an interface or object type
type MemberInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Readonly bool   `json:"readonly,omitempty"`
	Line     int    `json:"line"`
}

// MethodSignature is a body-less method declared in an interface or object type
type MethodSignature struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
	ReturnType string      `json:"return_type,omitempty"`
	Optional   bool        `json:"optional,omitempty"`
	Line       int         `json:"line"`
}

// InterfaceInfo describes an interface declaration
type InterfaceInfo struct {
	Name       string            `json:"name"`
	Extends    []string          `json:"extends"`
	Properties []MemberInfo      `json:"properties"`
	Methods    []MethodSignature `json:"methods"`
	Exported   bool              `json:"exported,omitempty"`
	LineStart  int               `json:"line_start"`
	LineEnd    int               `json:"line_end"`
	Docstring  string            `json:"docstring,omitempty"`
}

// TypeAliasInfo describes a type alias declaration
type TypeAliasInfo struct {
	Name       string            `json:"name"`
	Definition string            `json:"definition,omitempty"`
	Properties []MemberInfo      `json:"properties"`
	Methods    []MethodSignature `json:"methods"`
	Exported   bool              `json:"exported,omitempty"`
	LineStart  int               `json:"line_start"`
	LineEnd    int               `json:"line_end"`
	Docstring  string            `json:"docstring,omitempty"`
}

// PropInfo is a UI component prop
type PropInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
}

// InlineStyle lists the style properties set inline on one element
type InlineStyle struct {
	Element    string   `json:"element"`
	Properties []string `json:"properties"`
}

// StylingInfo is the styling classification of a component
type StylingInfo struct {
	Kind             StylingKind   `json:"kind"`
	StyledComponents []string      `json:"styled_components,omitempty"`
	ClassNames       []string      `json:"class_names,omitempty"`
	InlineStyles     []InlineStyle `json:"inline_styles,omitempty"`
}

// ComponentInfo describes a function or class recognized as a UI view component
type ComponentInfo struct {
	Name      string      `json:"name"`
	Props     []PropInfo  `json:"props"`
	Hooks     []string    `json:"hooks"`
	HasJSX    bool        `json:"has_jsx"`
	Styling   StylingInfo `json:"styling"`
	LineStart int         `json:"line_start"`
	LineEnd   int         `json:"line_end"`
	Docstring string      `json:"docstring,omitempty"`
}

// DecoratorInfo is a decorator application and the element it decorates
type DecoratorInfo struct {
	Name       string `json:"name"`
	Args       string `json:"args,omitempty"`
	Line       int    `json:"line"`
	TargetKind string `json:"target_kind,omitempty"`
	TargetName string `json:"target_name,omitempty"`
}

// ParseResult is everything recovered from one source file
type ParseResult struct {
	Dialect     Dialect         `json:"dialect"`
	LineCount   int             `json:"line_count"`
	Functions   []FunctionInfo  `json:"functions"`
	Classes     []ClassInfo     `json:"classes"`
	Imports     []ImportInfo    `json:"imports"`
	Exports     []ExportInfo    `json:"exports"`
	Constants   []ConstantInfo  `json:"constants"`
	Interfaces  []InterfaceInfo `json:"interfaces"`
	TypeAliases []TypeAliasInfo `json:"type_aliases"`
	Components  []ComponentInfo `json:"components"`
	Decorators  []DecoratorInfo `json:"decorators"`
}

// newParseResult returns a result with every collection allocated
func newParseResult(dialect Dialect, lineCount int) *ParseResult {
	return &ParseResult{
		Dialect:     dialect,
		LineCount:   lineCount,
		Functions:   []FunctionInfo{},
		Classes:     []ClassInfo{},
		Imports:     []ImportInfo{},
		Exports:     []ExportInfo{},
		Constants:   []ConstantInfo{},
		Interfaces:  []InterfaceInfo{},
		TypeAliases: []TypeAliasInfo{},
		Components:  []ComponentInfo{},
		Decorators:  []DecoratorInfo{},
	}
}

// EntityCount returns the number of top-level entities in the result
func (r *ParseResult) EntityCount() int {
	return len(r.Functions) + len(r.Classes) + len(r.Imports) + len(r.Exports) +
		len(r.Constants) + len(r.Interfaces) + len(r.TypeAliases) + len(r.Components) + len(r.Decorators)
}
