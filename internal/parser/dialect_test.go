package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedSource = `import React, { useState } from "react";
import type { Store } from "./store";

/**
 * Props of the list.
 * @deprecated use Grid
 */
export interface ListProps<T> {
  items: T[];
  render?(item: T): React.ReactNode;
}

export type Mode = "compact" | "full";

export const PAGE_SIZE = 20;

@observer
export class ListStore implements Store {
  private items: string[] = [];

  constructor(private readonly api: Api) {}

  async load(page = 1): Promise<void> {
    const res = await this.api.get("/items?page=" + page);
    this.items = res.data ?? [];
  }
}

export function List<T>({ items }: ListProps<T>) {
  const [open, setOpen] = useState(false);
  return (
    <ul className="space-y-2">
      {items.map((item) => <li key={String(item)}>{String(item)}</li>)}
    </ul>
  );
}

export default List;

function unterminated() {
  if (true) {
`

func TestParse_LineInvariants(t *testing.T) {
	for _, dialect := range []Dialect{DialectJavaScript, DialectTypeScript} {
		for _, mode := range []ScanMode{ScanNaive, ScanHardened} {
			r := Parse(mixedSource, dialect, WithScanMode(mode))
			n := r.LineCount
			require.Positive(t, n)

			span := func(kind, name string, start, end int) {
				assert.GreaterOrEqual(t, start, 1, "%s %s", kind, name)
				assert.LessOrEqual(t, start, end, "%s %s", kind, name)
				assert.LessOrEqual(t, end, n, "%s %s", kind, name)
			}
			for _, fn := range r.Functions {
				span("function", fn.Name, fn.LineStart, fn.LineEnd)
			}
			for _, c := range r.Classes {
				span("class", c.Name, c.LineStart, c.LineEnd)
				for _, m := range c.Methods {
					span("method", m.Name, m.LineStart, m.LineEnd)
				}
			}
			for _, i := range r.Interfaces {
				span("interface", i.Name, i.LineStart, i.LineEnd)
			}
			for _, a := range r.TypeAliases {
				span("type", a.Name, a.LineStart, a.LineEnd)
			}
			for _, c := range r.Components {
				span("component", c.Name, c.LineStart, c.LineEnd)
			}
			for _, imp := range r.Imports {
				span("import", imp.Module, imp.Line, imp.Line)
			}
			for _, e := range r.Exports {
				span("export", e.Name, e.Line, e.Line)
			}
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(mixedSource, DialectTypeScript)
	second := Parse(mixedSource, DialectTypeScript)
	assert.Equal(t, first, second)
}

func TestParse_MixedSource(t *testing.T) {
	r := Parse(mixedSource, DialectTypeScript)

	assert.Equal(t, DialectTypeScript, r.Dialect)
	require.Len(t, r.Interfaces, 1)
	assert.Equal(t, "ListProps", r.Interfaces[0].Name)
	require.Len(t, r.TypeAliases, 1)
	assert.Equal(t, `"compact" | "full"`, r.TypeAliases[0].Definition)

	require.Len(t, r.Classes, 1)
	store := r.Classes[0]
	assert.Equal(t, []string{"observer"}, store.Decorators)
	assert.Equal(t, []string{"Store"}, store.Implements)

	names := map[string]FunctionInfo{}
	for _, fn := range r.Functions {
		names[fn.Name] = fn
	}
	require.Contains(t, names, "List")
	require.Contains(t, names, "unterminated")
	assert.Equal(t, r.LineCount, names["unterminated"].LineEnd)

	require.Len(t, r.Components, 1)
	assert.Equal(t, "List", r.Components[0].Name)
	assert.Equal(t, []string{"useState:open"}, r.Components[0].Hooks)
	assert.Equal(t, []PropInfo{{Name: "items", Type: "T[]"}}, r.Components[0].Props)
	assert.Equal(t, StylingUtility, r.Components[0].Styling.Kind)

	assert.Contains(t, r.Exports, ExportInfo{Name: "List", Kind: ExportDefault, Line: 38})
	assert.Contains(t, r.Constants, ConstantInfo{Name: "PAGE_SIZE", Value: "20", Exported: true, Line: 15})
}

func TestParse_UnknownDialect(t *testing.T) {
	r := Parse("function f() {}", DialectUnknown)

	assert.Equal(t, DialectUnknown, r.Dialect)
	assert.Equal(t, 1, r.LineCount)
	assert.Zero(t, r.EntityCount())
	assert.NotNil(t, r.Functions)
}

func TestParse_EmptyText(t *testing.T) {
	r := Parse("", DialectTypeScript)

	assert.Zero(t, r.LineCount)
	assert.Zero(t, r.EntityCount())
	assert.Equal(t, []FunctionInfo{}, r.Functions)
}

func TestParse_ComplexityOption(t *testing.T) {
	src := "function f(a) {\n  if (a) { return 1; }\n  return 2;\n}"

	on := Parse(src, DialectJavaScript)
	off := Parse(src, DialectJavaScript, WithComplexity(false))
	require.Len(t, on.Functions, 1)
	require.Len(t, off.Functions, 1)
	assert.Equal(t, 2, on.Functions[0].Complexity)
	assert.Zero(t, off.Functions[0].Complexity)
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in   string
		want Dialect
	}{
		{"js", DialectJavaScript},
		{".jsx", DialectJavaScript},
		{"JavaScript", DialectJavaScript},
		{"mjs", DialectJavaScript},
		{"ts", DialectTypeScript},
		{".tsx", DialectTypeScript},
		{"typescript", DialectTypeScript},
		{"cts", DialectTypeScript},
		{"go", DialectUnknown},
		{"", DialectUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDialect(tt.in))
		})
	}
}

func TestWithOptions_FillsDefaults(t *testing.T) {
	o := Options{}
	WithOptions(Options{ScanMode: ScanHardened})(&o)

	assert.Equal(t, ScanHardened, o.ScanMode)
	assert.Equal(t, DefaultOptions().DocWindow, o.DocWindow)
	assert.Equal(t, DefaultOptions().HeaderWindow, o.HeaderWindow)
}

func TestClampResult(t *testing.T) {
	r := newParseResult(DialectJavaScript, 5)
	r.Functions = append(r.Functions, FunctionInfo{Name: "f", LineStart: 0, LineEnd: 99})
	r.Classes = append(r.Classes, ClassInfo{Name: "C", LineStart: 4, LineEnd: 2})
	r.Imports = append(r.Imports, ImportInfo{Module: "m", Line: -3})

	clampResult(r)

	assert.Equal(t, 1, r.Functions[0].LineStart)
	assert.Equal(t, 5, r.Functions[0].LineEnd)
	assert.Equal(t, 4, r.Classes[0].LineStart)
	assert.Equal(t, 4, r.Classes[0].LineEnd)
	assert.Equal(t, 1, r.Imports[0].Line)
}
