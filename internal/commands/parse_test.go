package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/utils"
)

func TestParseOne(t *testing.T) {
	dir := t.TempDir()
	src := "export interface Point {\n  x: number;\n}\n"
	path := filepath.Join(dir, "point.txt")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	svc := parser.NewService(loggy.NewNoopLogger())

	t.Run("detected language", func(t *testing.T) {
		_, err := parseOne(svc, path, "")
		assert.ErrorIs(t, err, parser.ErrUnsupportedLanguage)
	})

	t.Run("forced dialect", func(t *testing.T) {
		fr, err := parseOne(svc, path, "ts")
		require.NoError(t, err)
		assert.Equal(t, parser.DialectTypeScript, fr.Dialect)
		assert.Equal(t, parser.LanguageTypeScript, fr.Language)
		assert.Equal(t, int64(len(src)), fr.Size)
		require.Len(t, fr.Result.Interfaces, 1)
		assert.Equal(t, "Point", fr.Result.Interfaces[0].Name)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, err := parseOne(svc, path, "cobol")
		assert.ErrorContains(t, err, "unknown dialect")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := parseOne(svc, filepath.Join(dir, "nope.ts"), "ts")
		assert.Error(t, err)
	})
}

func TestLineSpan(t *testing.T) {
	assert.Equal(t, "4", lineSpan(4, 4))
	assert.Equal(t, "4-9", lineSpan(4, 9))
}

func TestWriteJSONAndRawMarkdown(t *testing.T) {
	var buf bytes.Buffer
	old := utils.Output
	utils.Output = &buf
	t.Cleanup(func() { utils.Output = old })

	require.NoError(t, writeJSON(map[string]int{"files": 2}))
	assert.JSONEq(t, `{"files": 2}`, buf.String())

	buf.Reset()
	require.NoError(t, printMarkdown("# title\n", true))
	assert.Equal(t, "# title\n", buf.String())
}
