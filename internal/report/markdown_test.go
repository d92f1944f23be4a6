package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
)

const userSource = `import { useState } from "react";

/** Loads a user by id. */
export async function load(id: string, opts?: Options): Promise<User> {
  return fetch(id);
}

export interface User {
  id: string;
  name?: string;
}

export type Id = string;
`

func TestMarkdown(t *testing.T) {
	result := parser.Parse(userSource, parser.DialectTypeScript)
	fr := &parser.FileResult{
		Path:      "src/user.ts",
		Language:  parser.LanguageTypeScript,
		Dialect:   parser.DialectTypeScript,
		Size:      int64(len(userSource)),
		LineCount: result.LineCount,
		Result:    result,
	}

	md := Markdown(fr)

	for _, want := range []string{
		"# src/user.ts\n",
		"- Dialect: typescript\n",
		"| Functions | 1 |\n",
		"| Interfaces | 1 |\n",
		"| Components | 0 |\n",
		"## Imports\n\n- `react` (named, line 1): useState\n",
		"- `load` (function, line 4)\n",
		"- `async load(id: string, opts?: Options): Promise<User>` lines 4-6",
		"  > Loads a user by id.\n",
		"- `User` lines 8-11\n",
		"  - `name?: string`\n",
		"- `Id` lines 13-13",
	} {
		assert.Contains(t, md, want)
	}

	assert.NotContains(t, md, "## Classes")
	assert.NotContains(t, md, "## Components")
}

func TestMarkdown_Components(t *testing.T) {
	src := `import React from "react";

export function Badge({ label, tone = "info" }) {
  const [open, setOpen] = useState(false);
  return <span className="badge">{label}</span>;
}
`
	result := parser.Parse(src, parser.DialectJavaScript)
	md := Markdown(&parser.FileResult{Path: "Badge.jsx", Dialect: parser.DialectJavaScript, LineCount: result.LineCount, Result: result})

	assert.Contains(t, md, "### Badge\n")
	assert.Contains(t, md, "| Prop | Type | Optional | Default |")
	assert.Contains(t, md, "| tone | - | yes | `\"info\"` |")
	assert.Contains(t, md, "Hooks: `useState:open`")
}

func TestSignature(t *testing.T) {
	tests := []struct {
		name string
		fn   parser.FunctionInfo
		want string
	}{
		{
			name: "plain",
			fn:   parser.FunctionInfo{Name: "run"},
			want: "run()",
		},
		{
			name: "typed with default and rest",
			fn: parser.FunctionInfo{
				Name: "log",
				Parameters: []parser.Parameter{
					{Name: "level", Type: "string", DefaultValue: `"info"`, Optional: true},
					{Name: "args", Type: "unknown[]", Rest: true},
				},
				ReturnType: "void",
			},
			want: `log(level: string = "info", ...args: unknown[]): void`,
		},
		{
			name: "static async generator",
			fn:   parser.FunctionInfo{Name: "items", Static: true, Async: true, Generator: true},
			want: "static async *items()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.fn))
		})
	}
}

func TestCell(t *testing.T) {
	assert.Equal(t, "-", cell(""))
	assert.Equal(t, "`a \\| b`", cell("a | b"))
	assert.Equal(t, "first", firstLine("first\nsecond"))
	assert.True(t, strings.HasPrefix(strings.Join(prefixAll([]string{"Get"}, "@"), ""), "@Get"))
}
