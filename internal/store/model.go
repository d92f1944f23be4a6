// Package store persists scan inventories in SQLite
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
)

// Entity kinds as stored in the entities table
const (
	KindFunction  = "function"
	KindMethod    = "method"
	KindClass     = "class"
	KindImport    = "import"
	KindExport    = "export"
	KindConstant  = "constant"
	KindInterface = "interface"
	KindTypeAlias = "type_alias"
	KindComponent = "component"
	KindDecorator = "decorator"
)

// Kinds lists every entity kind in display order
var Kinds = []string{
	KindFunction, KindMethod, KindClass, KindImport, KindExport, KindConstant,
	KindInterface, KindTypeAlias, KindComponent, KindDecorator,
}

// Scan is the stored summary of one inventory
type Scan struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Root        string    `json:"root"`
	FileCount   int       `json:"file_count"`
	EntityCount int       `json:"entity_count"`
	ErrorCount  int       `json:"error_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Entity is one declaration flattened out of a parse result
type Entity struct {
	ID        string          `json:"id"`
	ScanID    string          `json:"scan_id"`
	FileID    string          `json:"file_id"`
	FilePath  string          `json:"file_path"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	LineStart int             `json:"line_start"`
	LineEnd   int             `json:"line_end"`
	Detail    json.RawMessage `json:"detail,omitempty"`
}

// Flatten lists the entities of one parsed file. Class methods become their own
// entities named "Class.method"; IDs are left for the caller to assign.
func Flatten(fr *parser.FileResult) ([]Entity, error) {
	r := fr.Result
	out := make([]Entity, 0, r.EntityCount())

	add := func(kind, name string, start, end int, detail any) error {
		data, err := json.Marshal(detail)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", kind, name, err)
		}
		out = append(out, Entity{
			FilePath:  fr.Path,
			Kind:      kind,
			Name:      name,
			LineStart: start,
			LineEnd:   end,
			Detail:    data,
		})
		return nil
	}

	for _, f := range r.Functions {
		if err := add(KindFunction, f.Name, f.LineStart, f.LineEnd, f); err != nil {
			return nil, err
		}
	}
	for _, c := range r.Classes {
		if err := add(KindClass, c.Name, c.LineStart, c.LineEnd, c); err != nil {
			return nil, err
		}
		for _, m := range c.Methods {
			if err := add(KindMethod, c.Name+"."+m.Name, m.LineStart, m.LineEnd, m); err != nil {
				return nil, err
			}
		}
	}
	for _, im := range r.Imports {
		if err := add(KindImport, im.Module, im.Line, im.Line, im); err != nil {
			return nil, err
		}
	}
	for _, ex := range r.Exports {
		if err := add(KindExport, ex.Name, ex.Line, ex.Line, ex); err != nil {
			return nil, err
		}
	}
	for _, c := range r.Constants {
		if err := add(KindConstant, c.Name, c.Line, c.Line, c); err != nil {
			return nil, err
		}
	}
	for _, i := range r.Interfaces {
		if err := add(KindInterface, i.Name, i.LineStart, i.LineEnd, i); err != nil {
			return nil, err
		}
	}
	for _, t := range r.TypeAliases {
		if err := add(KindTypeAlias, t.Name, t.LineStart, t.LineEnd, t); err != nil {
			return nil, err
		}
	}
	for _, c := range r.Components {
		if err := add(KindComponent, c.Name, c.LineStart, c.LineEnd, c); err != nil {
			return nil, err
		}
	}
	for _, d := range r.Decorators {
		if err := add(KindDecorator, d.Name, d.Line, d.Line, d); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ValidKind reports whether kind names a stored entity kind
func ValidKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
