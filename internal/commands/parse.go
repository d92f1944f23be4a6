package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v2"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/app"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/report"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/store"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/utils"
)

// ParseCommand returns the command that extracts the structure of a single file
func ParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Extract functions, classes, imports and components from one file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dialect",
				Aliases: []string{"d"},
				Usage:   "Parse as javascript or typescript instead of detecting the language",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the parse result as JSON",
			},
			&cli.BoolFlag{
				Name:    "markdown",
				Aliases: []string{"md"},
				Usage:   "Render a Markdown report in the terminal",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "With --markdown, print the Markdown source instead of rendering it",
			},
		},
		Action: parseAction,
	}
}

func parseAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("parse takes exactly one file", 1)
	}

	application, err := app.FromContext(c)
	if err != nil {
		return fmt.Errorf("failed to get application from context: %w", err)
	}

	fr, err := parseOne(application.Parser, c.Args().First(), c.String("dialect"))
	if err != nil {
		utils.PrintError(err.Error())
		return err
	}

	switch {
	case c.Bool("json"):
		return writeJSON(fr)
	case c.Bool("markdown"):
		return printMarkdown(report.Markdown(fr), c.Bool("raw"))
	default:
		return printFileSummary(fr)
	}
}

// parseOne parses path, forcing the dialect when one is named
func parseOne(svc *parser.Service, path, dialect string) (*parser.FileResult, error) {
	if dialect == "" {
		fr, err := svc.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return fr, nil
	}

	d := parser.ParseDialect(dialect)
	if d == parser.DialectUnknown {
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	language := parser.LanguageJavaScript
	if d == parser.DialectTypeScript {
		language = parser.LanguageTypeScript
	}

	result := svc.ParseSource(string(data), d)
	return &parser.FileResult{
		Path:      path,
		Language:  language,
		Dialect:   d,
		Size:      int64(len(data)),
		LineCount: result.LineCount,
		Result:    result,
	}, nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(utils.Output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func printMarkdown(md string, raw bool) error {
	if raw {
		_, err := fmt.Fprint(utils.Output, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = fmt.Fprint(utils.Output, out)
	return err
}

func printFileSummary(fr *parser.FileResult) error {
	utils.PrintHeading(fr.Path)
	utils.PrintKeyValue("Language", fr.Language)
	utils.PrintKeyValue("Dialect", string(fr.Dialect))
	utils.PrintKeyValue("Lines", strconv.Itoa(fr.LineCount))
	utils.PrintKeyValue("Entities", strconv.Itoa(fr.Result.EntityCount()))

	entities, err := store.Flatten(fr)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		utils.PrintInfo("No declarations found")
		return nil
	}

	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, []string{e.Kind, utils.Truncate(e.Name, 48), lineSpan(e.LineStart, e.LineEnd)})
	}
	utils.PrintTable([]string{"Kind", "Name", "Lines"}, rows)
	return nil
}

func lineSpan(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
