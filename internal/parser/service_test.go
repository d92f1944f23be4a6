package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserService(t *testing.T) {
	tempDir := t.TempDir()

	jsFile := filepath.Join(tempDir, "app.js")
	jsContent := `import { render } from "react-dom";

function App() {
  return <main className="p-4">Hello</main>;
}

render(<App />, document.getElementById("root"));
`
	require.NoError(t, os.WriteFile(jsFile, []byte(jsContent), 0644))

	textFile := filepath.Join(tempDir, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("plain notes\n"), 0644))

	service := NewService(loggy.NewNoopLogger())

	t.Run("ListModules", func(t *testing.T) {
		assert.Equal(t, []string{"typescript", "javascript"}, service.ListModules())
	})

	t.Run("ParseFile_JavaScript", func(t *testing.T) {
		fr, err := service.ParseFile(jsFile)
		require.NoError(t, err)
		assert.Equal(t, DialectJavaScript, fr.Dialect)
		require.Len(t, fr.Result.Components, 1)
		assert.Equal(t, "App", fr.Result.Components[0].Name)
	})

	t.Run("ParseFile_Text", func(t *testing.T) {
		_, err := service.ParseFile(textFile)
		assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	})

	t.Run("ParseSource", func(t *testing.T) {
		r := service.ParseSource("export type Id = string;", DialectTypeScript)
		require.Len(t, r.TypeAliases, 1)
		assert.Equal(t, "Id", r.TypeAliases[0].Name)
	})

	t.Run("DetectLanguage", func(t *testing.T) {
		lang, err := service.DetectLanguage(jsFile)
		require.NoError(t, err)
		assert.Equal(t, LanguageJavaScript, lang)

		_, err = service.DetectLanguage(filepath.Join(tempDir, "nope.js"))
		assert.Error(t, err)
	})
}

func TestParserService_IsSourceFile(t *testing.T) {
	tempDir := t.TempDir()
	write := func(rel, content string) string {
		p := filepath.Join(tempDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}

	service := NewService(loggy.NewNoopLogger())

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"typescript", write("src/index.ts", "export const a = 1;\n"), true},
		{"javascript", write("src/util.js", "module.exports = {};\n"), true},
		{"vendored", write("node_modules/pkg/index.js", "module.exports = {};\n"), false},
		{"readme", write("README.md", "# hi\n"), false},
		{"binary", write("img.bin", "\x00\x00\x01"), false},
		{"other language", write("main.go", "package main\n"), false},
		{"missing", filepath.Join(tempDir, "missing.ts"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.IsSourceFile(tt.path))
		})
	}
}

func TestParserService_Options(t *testing.T) {
	service := NewService(loggy.NewNoopLogger(), WithComplexity(false))

	r := service.ParseSource("function f(a) {\n  return a ? 1 : 2;\n}", DialectJavaScript)
	require.Len(t, r.Functions, 1)
	assert.Zero(t, r.Functions[0].Complexity)
}

func TestParserService_IsSourceFileUnder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vendor", "checkout")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.js"), []byte("export const a = 1;\n"), 0644))

	service := NewService(loggy.NewNoopLogger())

	// only the part below root decides whether a file is vendored
	assert.False(t, service.IsSourceFile(filepath.Join(root, "src", "a.js")))
	assert.True(t, service.IsSourceFileUnder(root, filepath.Join("src", "a.js")))
}
