package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockModule implements Module for testing
type mockModule struct {
	name      string
	canHandle func(string) bool
}

func (m *mockModule) GetName() string {
	return m.name
}

func (m *mockModule) CanHandle(language string) bool {
	if m.canHandle != nil {
		return m.canHandle(language)
	}
	return m.name == language
}

func (m *mockModule) Parse(text string) *ParseResult {
	return newParseResult(DialectUnknown, NewSourceLines(text).Len())
}

func TestModuleRegistry_RegisterModule(t *testing.T) {
	logger := loggy.NewNoopLogger()
	registry := NewModuleRegistry(logger, NewLanguageDetector(logger))

	registry.RegisterModule(&mockModule{name: "TestLang"})

	require.Len(t, registry.modules, 1)
	assert.Equal(t, "TestLang", registry.modules[0].GetName())
}

func TestModuleRegistry_GetModuleForLanguage(t *testing.T) {
	logger := loggy.NewNoopLogger()
	registry := NewModuleRegistry(logger, NewLanguageDetector(logger))
	registry.RegisterModule(NewTypeScriptModule(logger))
	registry.RegisterModule(NewJavaScriptModule(logger))

	tests := []struct {
		language string
		want     string
		wantErr  bool
	}{
		{LanguageTypeScript, "typescript", false},
		{LanguageTSX, "typescript", false},
		{"ts", "typescript", false},
		{LanguageJavaScript, "javascript", false},
		{LanguageJSX, "javascript", false},
		{"Python", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			module, err := registry.GetModuleForLanguage(tt.language)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedLanguage)
				assert.Nil(t, module)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, module.GetName())
		})
	}
}

func TestModuleRegistry_FirstRegisteredWins(t *testing.T) {
	logger := loggy.NewNoopLogger()
	registry := NewModuleRegistry(logger, NewLanguageDetector(logger))
	registry.RegisterModule(&mockModule{name: "first", canHandle: func(string) bool { return true }})
	registry.RegisterModule(NewJavaScriptModule(logger))

	module, err := registry.GetModuleForLanguage(LanguageJavaScript)
	require.NoError(t, err)
	assert.Equal(t, "first", module.GetName())
}

func TestModuleRegistry_ParseFile(t *testing.T) {
	logger := loggy.NewNoopLogger()
	registry := NewModuleRegistry(logger, NewLanguageDetector(logger))
	registry.RegisterModule(NewTypeScriptModule(logger))
	registry.RegisterModule(NewJavaScriptModule(logger))

	dir := t.TempDir()
	src := "export interface User {\n  id: string;\n}\n\nexport function load(id: string): User {\n  return { id };\n}\n"
	path := filepath.Join(dir, "user.ts")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	fr, err := registry.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, fr.Path)
	assert.Equal(t, LanguageTypeScript, fr.Language)
	assert.Equal(t, DialectTypeScript, fr.Dialect)
	assert.Equal(t, int64(len(src)), fr.Size)
	assert.Equal(t, 7, fr.LineCount)
	require.Len(t, fr.Result.Interfaces, 1)
	require.Len(t, fr.Result.Functions, 1)
	assert.Equal(t, "load", fr.Result.Functions[0].Name)
	assert.Equal(t, "User", fr.Result.Functions[0].ReturnType)
}

func TestModuleRegistry_ParseFile_Errors(t *testing.T) {
	logger := loggy.NewNoopLogger()
	registry := NewModuleRegistry(logger, NewLanguageDetector(logger))
	registry.RegisterModule(NewJavaScriptModule(logger))

	dir := t.TempDir()
	_, err := registry.ParseFile(filepath.Join(dir, "missing.js"))
	assert.Error(t, err)

	py := filepath.Join(dir, "tool.py")
	require.NoError(t, os.WriteFile(py, []byte("def main():\n    pass\n"), 0644))
	_, err = registry.ParseFile(py)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestDialectModule(t *testing.T) {
	logger := loggy.NewNoopLogger()

	js := NewJavaScriptModule(logger)
	assert.Equal(t, "javascript", js.GetName())
	assert.Equal(t, DialectJavaScript, js.Dialect())
	assert.True(t, js.CanHandle("jsx"))
	assert.False(t, js.CanHandle(LanguageTypeScript))

	ts := NewTypeScriptModule(logger, WithComplexity(false))
	r := ts.Parse("function f(a) {\n  if (a) {}\n}")
	require.Len(t, r.Functions, 1)
	assert.Zero(t, r.Functions[0].Complexity)
}
