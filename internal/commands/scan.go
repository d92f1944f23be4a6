package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/app"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/inventory"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/report"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/store"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/utils"
)

// ScanCommand returns the command that parses every source file under a directory
func ScanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Parse every JavaScript and TypeScript file under a directory",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "Label for the scan (defaults to a generated name)",
			},
			&cli.BoolFlag{
				Name:    "save",
				Aliases: []string{"s"},
				Usage:   "Store the inventory in the database",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the whole inventory as JSON",
			},
		},
		Action: scanAction,
	}
}

func scanAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return fmt.Errorf("failed to get application from context: %w", err)
	}

	root := "."
	if c.NArg() > 0 {
		root = c.Args().First()
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	label := c.String("label")
	if label != "" {
		label = utils.SanitizeLabel(label)
	}

	inv, err := application.Scanner.Scan(ctx, root, label)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			utils.PrintWarning("Scan cancelled")
		} else {
			utils.PrintError(fmt.Sprintf("Scan failed: %s", err))
		}
		return err
	}

	if c.Bool("save") {
		repo, err := application.Store()
		if err != nil {
			utils.PrintError(err.Error())
			return err
		}
		if err := repo.SaveInventory(ctx, inv); err != nil {
			utils.PrintError(fmt.Sprintf("Failed to save scan: %s", err))
			return fmt.Errorf("failed to save scan: %w", err)
		}
	}

	if c.Bool("json") {
		return writeJSON(inv)
	}

	printInventory(inv)
	if c.Bool("save") {
		utils.PrintSuccess("Saved scan " + utils.Highlight(inv.ID))
	}
	return nil
}

func printInventory(inv *inventory.Inventory) {
	st := inv.Stats()

	utils.PrintHeading(fmt.Sprintf("Scan %s", inv.Label))
	utils.PrintKeyValue("Root", inv.Root)
	utils.PrintKeyValue("Files", strconv.Itoa(st.Files))
	utils.PrintKeyValue("Lines", strconv.Itoa(st.Lines))
	utils.PrintKeyValue("Entities", strconv.Itoa(st.Entities))

	if st.Files > 0 {
		rows := make([][]string, 0, len(inv.Files))
		for _, f := range inv.Files {
			r := f.Result
			rows = append(rows, []string{
				f.Path,
				string(f.Dialect),
				strconv.Itoa(f.LineCount),
				strconv.Itoa(len(r.Functions)),
				strconv.Itoa(len(r.Classes)),
				strconv.Itoa(len(r.Components)),
				strconv.Itoa(r.EntityCount()),
			})
		}
		utils.PrintTable(
			[]string{"File", "Dialect", "Lines", "Functions", "Classes", "Components", "Entities"},
			rows,
		)
	}

	for _, fe := range inv.Errors {
		utils.PrintWarning(fe.Error())
	}
	if st.Skipped > 0 {
		utils.PrintInfo(fmt.Sprintf("Skipped %d file(s) over the size limit", st.Skipped))
	}
}

// ScansCommand returns the command that lists stored scans
func ScansCommand() *cli.Command {
	return &cli.Command{
		Name:  "scans",
		Usage: "List stored scans",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print scans as JSON"},
		},
		Action: func(c *cli.Context) error {
			repo, err := storeFromContext(c)
			if err != nil {
				return err
			}

			scans, err := repo.ListScans(c.Context)
			if err != nil {
				return fmt.Errorf("failed to list scans: %w", err)
			}

			if c.Bool("json") {
				return writeJSON(scans)
			}
			if len(scans) == 0 {
				utils.PrintInfo("No scans stored yet")
				return nil
			}

			rows := make([][]string, 0, len(scans))
			for _, s := range scans {
				rows = append(rows, []string{
					s.ID,
					s.Label,
					utils.Truncate(s.Root, 40),
					strconv.Itoa(s.FileCount),
					strconv.Itoa(s.EntityCount),
					strconv.Itoa(s.ErrorCount),
					s.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			utils.PrintTable([]string{"ID", "Label", "Root", "Files", "Entities", "Errors", "Created"}, rows)
			return nil
		},
	}
}

// EntitiesCommand returns the command that lists the entities of a stored scan
func EntitiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "entities",
		Usage: "List declarations recorded by a stored scan",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "scan",
				Usage:    "Scan ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Only list one kind (function, method, class, import, export, constant, interface, type_alias, component, decorator)",
			},
			&cli.BoolFlag{Name: "json", Usage: "Print entities as JSON"},
		},
		Action: func(c *cli.Context) error {
			kind := c.String("kind")
			if kind != "" && !store.ValidKind(kind) {
				return cli.Exit(fmt.Sprintf("unknown kind %q", kind), 1)
			}

			repo, err := storeFromContext(c)
			if err != nil {
				return err
			}

			entities, err := repo.ListEntities(c.Context, c.String("scan"), kind)
			if err != nil {
				if errors.Is(err, store.ErrScanNotFound) {
					utils.PrintError("No scan with ID " + c.String("scan"))
				}
				return fmt.Errorf("failed to list entities: %w", err)
			}

			if c.Bool("json") {
				return writeJSON(entities)
			}
			if len(entities) == 0 {
				utils.PrintInfo("No matching entities")
				return nil
			}

			rows := make([][]string, 0, len(entities))
			for _, e := range entities {
				rows = append(rows, []string{
					e.Kind,
					utils.Truncate(e.Name, 48),
					e.FilePath,
					lineSpan(e.LineStart, e.LineEnd),
				})
			}
			utils.PrintTable([]string{"Kind", "Name", "File", "Lines"}, rows)
			return nil
		},
	}
}

// ShowCommand returns the command that prints one stored file result
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the stored parse result of one file from a scan",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scan", Usage: "Scan ID", Required: true},
			&cli.BoolFlag{Name: "json", Usage: "Print the result as JSON"},
			&cli.BoolFlag{Name: "raw", Usage: "Print the Markdown source instead of rendering it"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("show takes exactly one path", 1)
			}

			repo, err := storeFromContext(c)
			if err != nil {
				return err
			}

			path := filepath.ToSlash(c.Args().First())
			fr, err := repo.GetFileResult(c.Context, c.String("scan"), path)
			if err != nil {
				if errors.Is(err, store.ErrScanNotFound) || errors.Is(err, store.ErrFileNotFound) {
					utils.PrintError(err.Error())
				}
				return err
			}

			if c.Bool("json") {
				return writeJSON(fr)
			}
			return printMarkdown(report.Markdown(fr), c.Bool("raw"))
		},
	}
}

// DeleteScanCommand returns the command that removes a stored scan
func DeleteScanCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete-scan",
		Usage:     "Delete a stored scan and everything recorded with it",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("delete-scan takes exactly one scan ID", 1)
			}

			repo, err := storeFromContext(c)
			if err != nil {
				return err
			}

			id := c.Args().First()
			if err := repo.DeleteScan(c.Context, id); err != nil {
				if errors.Is(err, store.ErrScanNotFound) {
					utils.PrintError("No scan with ID " + id)
				}
				return err
			}

			utils.PrintSuccess("Deleted scan " + utils.Highlight(id))
			return nil
		},
	}
}

func storeFromContext(c *cli.Context) (store.Repository, error) {
	application, err := app.FromContext(c)
	if err != nil {
		return nil, fmt.Errorf("failed to get application from context: %w", err)
	}

	repo, err := application.Store()
	if err != nil {
		utils.PrintError(err.Error())
		return nil, err
	}
	return repo, nil
}
