package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// Output is where the Print helpers write; tests swap it for a buffer
var Output io.Writer = os.Stdout

var (
	headingColor = color.New(color.FgHiCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgBlue)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	keyColor     = color.New(color.Bold)
	subtleColor  = color.New(color.FgHiBlack)
)

// PrintHeading prints a formatted heading
func PrintHeading(title string) {
	fmt.Fprintln(Output, headingColor.Sprint(title))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Fprintln(Output, successColor.Sprint("✓ ")+message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Fprintln(Output, infoColor.Sprint("ℹ ")+message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintln(Output, warningColor.Sprint("⚠ ")+message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintln(Output, errorColor.Sprint("✗ ")+message)
}

// PrintKeyValue prints a key-value pair
func PrintKeyValue(key, value string) {
	fmt.Fprintf(Output, "%s: %s\n", keyColor.Sprint(key), value)
}

// Highlight returns s in the accent color
func Highlight(s string) string {
	return color.YellowString("%s", s)
}

// Subtle returns s dimmed
func Subtle(s string) string {
	return subtleColor.Sprint(s)
}

// TableOptions defines options for table creation
type TableOptions struct {
	Title string
	// MaxCellWidth wraps longer cells; zero disables wrapping
	MaxCellWidth int
}

// DefaultTableOptions returns default table options
func DefaultTableOptions() TableOptions {
	return TableOptions{MaxCellWidth: 60}
}

// CreateTable creates a new table with the analyzer's styling
func CreateTable(opts TableOptions) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(Output)

	if opts.Title != "" {
		t.SetTitle(opts.Title)
	}

	style := table.StyleLight
	style.Color.Header = text.Colors{text.FgHiBlue, text.Bold}
	style.Color.Border = text.Colors{text.FgBlue}
	style.Title.Colors = text.Colors{text.FgHiCyan, text.Bold}
	style.Title.Align = text.AlignCenter
	style.Options.SeparateRows = false
	t.SetStyle(style)

	return t
}

// PrintTable prints a table with headers and rows
func PrintTable(headers []string, rows [][]string, options ...TableOptions) {
	opts := DefaultTableOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	t := CreateTable(opts)

	headerRow := table.Row{}
	for _, header := range headers {
		headerRow = append(headerRow, header)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tableRow := table.Row{}
		for _, cell := range row {
			if opts.MaxCellWidth > 0 {
				cell = WrapText(cell, opts.MaxCellWidth)
			}
			tableRow = append(tableRow, cell)
		}
		t.AppendRow(tableRow)
	}

	t.Render()
}

// WrapText wraps text at word boundaries to width columns
func WrapText(s string, width int) string {
	return wordwrap.String(s, width)
}

// Truncate shortens s to width columns, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return truncate.StringWithTail(s, uint(width), "…")
}
