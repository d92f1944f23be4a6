package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
)

// ErrUnsupportedLanguage is returned when no registered module handles a language
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Module represents a dialect module that can parse source text
type Module interface {
	// GetName returns the name of the dialect that this module handles
	GetName() string
	// CanHandle returns true if this module can handle the given detected language
	CanHandle(language string) bool
	// Parse extracts the structural model of text
	Parse(text string) *ParseResult
}

// DialectModule is a Module backed by one of the built-in dialect parsers
type DialectModule struct {
	logger    *loggy.Logger
	dialect   Dialect
	languages map[string]bool
	opts      []Option
}

// NewJavaScriptModule creates the module for JavaScript and JSX
func NewJavaScriptModule(logger *loggy.Logger, opts ...Option) *DialectModule {
	return &DialectModule{
		logger:    logger,
		dialect:   DialectJavaScript,
		languages: map[string]bool{LanguageJavaScript: true, LanguageJSX: true, "javascript": true, "js": true, "jsx": true},
		opts:      opts,
	}
}

// NewTypeScriptModule creates the module for TypeScript and TSX
func NewTypeScriptModule(logger *loggy.Logger, opts ...Option) *DialectModule {
	return &DialectModule{
		logger:    logger,
		dialect:   DialectTypeScript,
		languages: map[string]bool{LanguageTypeScript: true, LanguageTSX: true, "typescript": true, "ts": true, "tsx": true},
		opts:      opts,
	}
}

// GetName returns the dialect name
func (m *DialectModule) GetName() string {
	return string(m.dialect)
}

// Dialect returns the dialect the module parses
func (m *DialectModule) Dialect() Dialect {
	return m.dialect
}

// CanHandle returns true if this module can handle the given language
func (m *DialectModule) CanHandle(language string) bool {
	return m.languages[language]
}

// Parse parses text in the module's dialect
func (m *DialectModule) Parse(text string) *ParseResult {
	return Parse(text, m.dialect, m.opts...)
}

// FileResult is the parse of one file together with what was learned about the file itself
type FileResult struct {
	Path      string       `json:"path"`
	Language  string       `json:"language"`
	Dialect   Dialect      `json:"dialect"`
	Size      int64        `json:"size"`
	LineCount int          `json:"line_count"`
	Result    *ParseResult `json:"result"`
}

// ModuleRegistry manages and provides access to dialect modules
type ModuleRegistry struct {
	logger           *loggy.Logger
	modules          []Module
	languageDetector *LanguageDetector
}

// NewModuleRegistry creates a new module registry
func NewModuleRegistry(logger *loggy.Logger, languageDetector *LanguageDetector) *ModuleRegistry {
	return &ModuleRegistry{
		logger:           logger,
		modules:          make([]Module, 0),
		languageDetector: languageDetector,
	}
}

// RegisterModule registers a dialect module
func (r *ModuleRegistry) RegisterModule(module Module) {
	r.modules = append(r.modules, module)
}

// GetModuleForLanguage returns the module that can handle the given language
func (r *ModuleRegistry) GetModuleForLanguage(language string) (Module, error) {
	for _, module := range r.modules {
		if module.CanHandle(language) {
			return module, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
}

// GetModuleForFile returns the module that can handle the given file
func (r *ModuleRegistry) GetModuleForFile(filePath string) (Module, string, error) {
	language, err := r.languageDetector.DetectLanguage(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("detecting language: %w", err)
	}

	module, err := r.GetModuleForLanguage(language)
	if err != nil {
		return nil, language, fmt.Errorf("getting module: %w", err)
	}

	return module, language, nil
}

// ParseFile reads and parses a file using the appropriate module
func (r *ModuleRegistry) ParseFile(filePath string) (*FileResult, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("checking file: %w", err)
	}

	module, language, err := r.GetModuleForFile(filePath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	result := module.Parse(string(data))
	return &FileResult{
		Path:      filePath,
		Language:  language,
		Dialect:   result.Dialect,
		Size:      info.Size(),
		LineCount: result.LineCount,
		Result:    result,
	}, nil
}
