package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
)

// Service provides source parsing functionality
type Service struct {
	logger           *loggy.Logger
	languageDetector *LanguageDetector
	moduleRegistry   *ModuleRegistry
	opts             []Option
}

// NewService creates a new parser service; opts apply to every registered dialect
func NewService(logger *loggy.Logger, opts ...Option) *Service {
	languageDetector := NewLanguageDetector(logger)
	moduleRegistry := NewModuleRegistry(logger, languageDetector)

	s := &Service{
		logger:           logger,
		languageDetector: languageDetector,
		moduleRegistry:   moduleRegistry,
		opts:             opts,
	}

	s.RegisterDefaultModules()

	return s
}

// RegisterDefaultModules registers the JavaScript and TypeScript modules
func (s *Service) RegisterDefaultModules() {
	s.moduleRegistry.RegisterModule(NewTypeScriptModule(s.logger, s.opts...))
	s.moduleRegistry.RegisterModule(NewJavaScriptModule(s.logger, s.opts...))
}

// DetectLanguage detects the language of a file
func (s *Service) DetectLanguage(filePath string) (string, error) {
	language, err := s.languageDetector.DetectLanguage(filePath)
	if err != nil {
		return "", fmt.Errorf("detecting language: %w", err)
	}
	return language, nil
}

// ParseFile parses a file and returns its structural model
func (s *Service) ParseFile(filePath string) (*FileResult, error) {
	fr, err := s.moduleRegistry.ParseFile(filePath)
	if err != nil {
		if errors.Is(err, ErrUnsupportedLanguage) {
			s.logger.Debug("No parser module found for file", "path", filePath)
		}
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	s.logger.Debug("Parsed file",
		"path", filePath,
		"dialect", fr.Dialect,
		"lines", fr.LineCount,
		"functions", len(fr.Result.Functions),
		"classes", len(fr.Result.Classes),
		"components", len(fr.Result.Components))
	return fr, nil
}

// ParseSource parses text that did not come from a file
func (s *Service) ParseSource(text string, dialect Dialect) *ParseResult {
	return Parse(text, dialect, s.opts...)
}

// IsSourceFile checks if a file is something a registered module can parse
// (not binary, vendored, documentation or another language)
func (s *Service) IsSourceFile(filePath string) bool {
	return s.isSourceFile(filePath, filePath)
}

// IsSourceFileUnder is IsSourceFile for a file inside a scanned tree; vendor and
// documentation rules only look at the part of the path below root
func (s *Service) IsSourceFileUnder(root, relPath string) bool {
	return s.isSourceFile(filepath.Join(root, relPath), relPath)
}

func (s *Service) isSourceFile(filePath, displayPath string) bool {
	if s.languageDetector.IsVendorFile(displayPath) {
		s.logger.Debug("File is a vendor file", "path", displayPath)
		return false
	}

	if s.languageDetector.IsDocumentationFile(displayPath) {
		return false
	}

	if _, err := os.Stat(filePath); err != nil {
		s.logger.Debug("File does not exist or cannot be accessed", "path", filePath, "error", err)
		return false
	}

	language, err := s.languageDetector.DetectLanguage(filePath)
	if err != nil || language == "" || language == LanguageBinary {
		return false
	}

	_, err = s.moduleRegistry.GetModuleForLanguage(language)
	return err == nil
}

// RegisterModule registers a new dialect module
func (s *Service) RegisterModule(module Module) {
	s.moduleRegistry.RegisterModule(module)
}

// ListModules returns a list of registered module names
func (s *Service) ListModules() []string {
	var names []string
	for _, module := range s.moduleRegistry.modules {
		names = append(names, module.GetName())
	}
	return names
}

// GetLanguageDetector returns the language detector
func (s *Service) GetLanguageDetector() *LanguageDetector {
	return s.languageDetector
}

// GetModuleRegistry returns the module registry
func (s *Service) GetModuleRegistry() *ModuleRegistry {
	return s.moduleRegistry
}
