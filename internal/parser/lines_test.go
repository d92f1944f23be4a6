package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSourceLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want SourceLines
	}{
		{name: "empty", text: "", want: SourceLines{}},
		{name: "single line", text: "a", want: SourceLines{"a"}},
		{name: "trailing newline", text: "a\nb\n", want: SourceLines{"a", "b"}},
		{name: "crlf", text: "a\r\nb", want: SourceLines{"a", "b"}},
		{name: "bare cr", text: "a\rb", want: SourceLines{"a", "b"}},
		{name: "blank lines kept", text: "a\n\nb", want: SourceLines{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSourceLines(tt.text))
		})
	}
}

func TestSourceLines_Accessors(t *testing.T) {
	lines := NewSourceLines("first\n  second  \n\nfourth")

	assert.Equal(t, 4, lines.Len())
	assert.Equal(t, "first", lines.Line(1))
	assert.Equal(t, "  second  ", lines.At(1))
	assert.Equal(t, "second", lines.Trimmed(1))
	assert.Equal(t, "", lines.At(-1))
	assert.Equal(t, "", lines.Line(10))
	assert.Equal(t, "first\n  second  ", lines.Text(0, 1))
	assert.Equal(t, "fourth", lines.Join(3, 99, " "))
	assert.Equal(t, 3, lines.NextNonBlank(1))
	assert.Equal(t, -1, lines.NextNonBlank(3))
	assert.Equal(t, 1, lines.LineNumber(-5))
	assert.Equal(t, 4, lines.LineNumber(40))
}
