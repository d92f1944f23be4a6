package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buttonSource = `import React, { useState, useContext } from "react";
import styles from "./Button.module.css";

/** A button. */
export function Button({ label, size = "md", onPress }) {
  const [count, setCount] = useState(0);
  const theme = useContext(ThemeContext);
  return (
    <button className={styles.primary} onClick={onPress}>
      {label} {count}
    </button>
  );
}

Button.propTypes = {
  label: PropTypes.string.isRequired,
  onPress: PropTypes.func,
};

function helper() {
  return 1;
}

const OnToggle = () => <span />;`

func TestComponents_FunctionComponent(t *testing.T) {
	r := Parse(buttonSource, DialectJavaScript)

	require.Len(t, r.Components, 1)
	c := r.Components[0]
	assert.Equal(t, "Button", c.Name)
	assert.Equal(t, 5, c.LineStart)
	assert.Equal(t, 13, c.LineEnd)
	assert.Equal(t, "A button.", c.Docstring)
	assert.True(t, c.HasJSX)
	assert.Equal(t, []PropInfo{
		{Name: "label", Type: "PropTypes.string"},
		{Name: "size", Optional: true, DefaultValue: `"md"`},
		{Name: "onPress", Type: "PropTypes.func", Optional: true},
	}, c.Props)
	assert.Equal(t, []string{"useState:count", "useContext:ThemeContext"}, c.Hooks)
	assert.Equal(t, StylingModule, c.Styling.Kind)
	assert.Equal(t, []string{"primary"}, c.Styling.ClassNames)

	// helpers and handler-shaped names are plain functions
	names := make([]string, 0, len(r.Functions))
	for _, fn := range r.Functions {
		names = append(names, fn.Name)
	}
	assert.Contains(t, names, "helper")
	assert.Contains(t, names, "OnToggle")
}

func TestComponents_RequireFrameworkImport(t *testing.T) {
	const body = `
function Button() {
  return <button>Hi</button>;
}`
	tests := []struct {
		name       string
		header     string
		components int
	}{
		{name: "no framework import", header: "", components: 0},
		{name: "unrelated import", header: `import { get } from "lodash";`, components: 0},
		{name: "react", header: `import React from "react";`, components: 1},
		{name: "preact hooks", header: `import { useState } from "preact/hooks";`, components: 1},
		{name: "solid", header: `import { createSignal } from "solid-js";`, components: 1},
		{name: "vue", header: `import { defineComponent } from "vue";`, components: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.header+body, DialectJavaScript)
			assert.Len(t, r.Components, tt.components)
			assert.Len(t, r.Functions, 1)
		})
	}
}

func TestComponents_ClassComponent(t *testing.T) {
	src := `import React from "react";
export class Panel extends React.Component {
  render() {
    const { title } = this.props;
    return <div className="flex p-4 text-sm">{title}{this.props.footer}</div>;
  }
}`
	r := Parse(src, DialectJavaScript)

	require.Len(t, r.Components, 1)
	c := r.Components[0]
	assert.Equal(t, "Panel", c.Name)
	assert.Equal(t, []PropInfo{{Name: "title"}, {Name: "footer"}}, c.Props)
	assert.Equal(t, []string{}, c.Hooks)
	assert.True(t, c.HasJSX)
	assert.Equal(t, StylingUtility, c.Styling.Kind)
	assert.Equal(t, []string{"flex", "p-4", "text-sm"}, c.Styling.ClassNames)
}

func TestComponents_TypedProps(t *testing.T) {
	src := `import { FC } from "react";
interface CardProps {
  title: string;
  subtitle?: string;
}
export const Card: FC<CardProps> = ({ title, subtitle }) => {
  return <Wrapper>{title}</Wrapper>;
};`
	r := Parse(src, DialectTypeScript)

	require.Len(t, r.Components, 1)
	c := r.Components[0]
	assert.Equal(t, "Card", c.Name)
	assert.Equal(t, []PropInfo{
		{Name: "title", Type: "string"},
		{Name: "subtitle", Type: "string", Optional: true},
	}, c.Props)
	assert.Equal(t, []string{}, c.Hooks)
	assert.Equal(t, StylingInfo{Kind: StylingNone}, c.Styling)
}

func TestStylingClassification(t *testing.T) {
	tests := []struct {
		name string
		ctx  *stylingContext
		body string
		want StylingKind
	}{
		{
			name: "styled component in use",
			ctx:  &stylingContext{styled: []string{"Title"}},
			body: `return <Title className="big">x</Title>;`,
			want: StylingStyledJS,
		},
		{
			name: "styled call with styled import",
			ctx:  &stylingContext{styledImport: true},
			body: `const Box = styled.div` + "`" + `color: red;` + "`" + `;`,
			want: StylingStyledJS,
		},
		{
			name: "unstyled prop is not styled-in-JS",
			ctx:  &stylingContext{styledImport: true},
			body: `return <Menu unstyled />;`,
			want: StylingNone,
		},
		{
			name: "style block",
			body: `return <div><style>{css}</style></div>;`,
			want: StylingStyleBlock,
		},
		{
			name: "plain class names",
			body: `return <div className="card card--active">x</div>;`,
			want: StylingClassNames,
		},
		{
			name: "inline style",
			body: `return <div style={{ color: "red", margin: 0 }}>x</div>;`,
			want: StylingInline,
		},
		{
			name: "mostly semantic classes",
			body: `return <div className="card header flex">x</div>;`,
			want: StylingClassNames,
		},
		{
			name: "none",
			body: `return null;`,
			want: StylingNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.ctx
			if ctx == nil {
				ctx = &stylingContext{}
			}
			assert.Equal(t, tt.want, ctx.classify(tt.body).Kind)
		})
	}
}

func TestInlineStyleProperties(t *testing.T) {
	info := (&stylingContext{}).classify(`<div style={{ color: "red", margin: 0 }}>x</div>`)

	require.Len(t, info.InlineStyles, 1)
	assert.Equal(t, InlineStyle{Element: "div", Properties: []string{"color", "margin"}}, info.InlineStyles[0])
}

func TestHookUsages(t *testing.T) {
	lines := NewSourceLines(`const [open, setOpen] = useState(false);
const ref = useRef<HTMLDivElement>(null);
useEffect(() => {}, []);
useEffect(() => {}, [open]);
const user = React.useContext(UserContext);
const custom = useCustomThing();`)

	assert.Equal(t, []string{"useState:open", "useRef:ref", "useEffect", "useContext:UserContext"}, hookUsages(lines, 0, lines.Len()-1))
}

func TestIsComponentName(t *testing.T) {
	assert.True(t, isComponentName("Button"))
	assert.False(t, isComponentName("button"))
	assert.False(t, isComponentName("OnClose"))
	assert.False(t, isComponentName("HandleSubmit"))
	assert.False(t, isComponentName(""))
}

func TestComponents_PropTypesMatchWholeName(t *testing.T) {
	src := `import React from "react";

export function IconButton({ icon }) {
  return <button>{icon}</button>;
}

IconButton.propTypes = {
  icon: PropTypes.string,
};

IconButton.defaultProps = {
  icon: "star",
};

export function Button({ label }) {
  return <button>{label}</button>;
}

Button.propTypes = {
  label: PropTypes.string.isRequired,
};`
	r := Parse(src, DialectJavaScript)

	require.Len(t, r.Components, 2)
	byName := map[string]ComponentInfo{}
	for _, c := range r.Components {
		byName[c.Name] = c
	}
	assert.Equal(t, []PropInfo{{Name: "label", Type: "PropTypes.string"}}, byName["Button"].Props)
	assert.Equal(t, []PropInfo{
		{Name: "icon", Type: "PropTypes.string", Optional: true, DefaultValue: `"star"`},
	}, byName["IconButton"].Props)
}

func TestAssignmentIndex(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"Button.propTypes = {", 0},
		{"IconButton.propTypes = {", -1},
		{"Lib.Button.propTypes = {", -1},
		{"if (Button.propTypes === x) {", -1},
		{"IconButton.propTypes = Button.propTypes = {", 23},
		{"  Button.propTypes={", 2},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, assignmentIndex(tt.line, "Button.propTypes"))
		})
	}
}
