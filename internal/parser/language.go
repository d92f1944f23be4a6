package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/go-enry/go-enry/v2"
)

// Language names as reported by go-enry
const (
	LanguageJavaScript = "JavaScript"
	LanguageJSX        = "JSX"
	LanguageTypeScript = "TypeScript"
	LanguageTSX        = "TSX"
	LanguageText       = "Text"
	LanguageMarkdown   = "Markdown"
	LanguageDoc        = "Documentation"
	LanguageBinary     = "Binary"
)

// langFilePatterns maps the languages with a dialect to their file extensions
var langFilePatterns = map[string][]string{
	LanguageJavaScript: {".js", ".mjs", ".cjs"},
	LanguageJSX:        {".jsx"},
	LanguageTypeScript: {".ts", ".mts", ".cts"},
	LanguageTSX:        {".tsx"},
}

// DialectForLanguage maps a detected language onto the dialect that parses it
func DialectForLanguage(language string) Dialect {
	switch language {
	case LanguageJavaScript, LanguageJSX:
		return DialectJavaScript
	case LanguageTypeScript, LanguageTSX:
		return DialectTypeScript
	}
	return DialectUnknown
}

// LanguageDetector detects the language of a file
type LanguageDetector struct {
	logger *loggy.Logger
}

// NewLanguageDetector creates a new language detector
func NewLanguageDetector(logger *loggy.Logger) *LanguageDetector {
	return &LanguageDetector{
		logger: logger,
	}
}

// DetectLanguage determines the language of a file
func (d *LanguageDetector) DetectLanguage(filePath string) (string, error) {
	fileName := filepath.Base(filePath)
	if _, err := os.Stat(filePath); err != nil {
		d.logger.Debug("File does not exist or cannot be accessed", "path", filePath, "error", err)
		return "", fmt.Errorf("accessing file: %w", err)
	}

	if d.IsDocumentationFile(filePath) {
		if strings.HasSuffix(fileName, ".md") || strings.HasSuffix(fileName, ".markdown") {
			return LanguageMarkdown, nil
		}
		return LanguageDoc, nil
	}

	data, err := readFileSample(filePath, 8*1024)
	if err != nil {
		d.logger.Debug("Error reading file sample", "path", filePath, "error", err)
		return "", fmt.Errorf("reading file: %w", err)
	}

	if enry.IsBinary(data) {
		return LanguageBinary, nil
	}

	// content heuristics decide ambiguous extensions such as .ts
	language := enry.GetLanguage(fileName, data)
	if language != "" {
		return language, nil
	}

	language, _ = enry.GetLanguageByExtension(filePath)
	d.logger.Debug("Fallback to extension detection", "path", filePath, "detected", language)
	if language != "" {
		return language, nil
	}

	language, _ = enry.GetLanguageByFilename(fileName)
	if language != "" {
		return language, nil
	}

	return LanguageText, nil
}

// readFileSample reads a sample of a file up to maxSize bytes
func readFileSample(filePath string, maxSize int64) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file info: %w", err)
	}

	size := fileInfo.Size()
	if size > maxSize {
		size = maxSize
	}

	sample := make([]byte, size)
	if _, err = file.Read(sample); err != nil && size > 0 {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return sample, nil
}

// IsVendorFile checks if the file is in a vendor, dependency or VCS directory
func (d *LanguageDetector) IsVendorFile(path string) bool {
	slashed := filepath.ToSlash(path)
	if strings.Contains(slashed, "/.git/") || strings.HasPrefix(slashed, ".git/") {
		return true
	}

	for _, dir := range []string{"/vendor/", "/node_modules/", "/bower_components/"} {
		if strings.Contains(slashed, dir) || strings.HasPrefix(slashed, dir[1:]) {
			return true
		}
	}

	return enry.IsVendor(slashed)
}

// IsDocumentationFile checks if a file is a documentation file
func (d *LanguageDetector) IsDocumentationFile(filePath string) bool {
	return enry.IsDocumentation(filePath)
}

// IsGenerated reports whether the content looks machine generated or minified
func (d *LanguageDetector) IsGenerated(filePath string, content []byte) bool {
	return enry.IsGenerated(filePath, content)
}

// GetLangFilePatterns returns the file extensions of a language
func (d *LanguageDetector) GetLangFilePatterns(language string) []string {
	if patterns, ok := langFilePatterns[language]; ok {
		return patterns
	}
	return []string{}
}

// HasSourceExtension reports whether the path carries a JavaScript or TypeScript extension
func (d *LanguageDetector) HasSourceExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, patterns := range langFilePatterns {
		for _, p := range patterns {
			if p == ext {
				return true
			}
		}
	}
	return false
}
