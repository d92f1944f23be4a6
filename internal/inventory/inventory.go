// Package inventory walks a source tree and parses every JavaScript and TypeScript file in it
package inventory

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
)

// FileError records a file that was selected for parsing but could not be parsed
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Message()
}

// Message is the underlying error text
func (e FileError) Message() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e FileError) Unwrap() error {
	return e.Err
}

// MarshalJSON writes the error as a message string
func (e FileError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path  string `json:"path"`
		Error string `json:"error"`
	}{e.Path, e.Message()})
}

// Inventory is the outcome of one scan: every parsed file plus the ones that failed
type Inventory struct {
	ID        string               `json:"id"`
	Label     string               `json:"label"`
	Root      string               `json:"root"`
	CreatedAt time.Time            `json:"created_at"`
	Files     []*parser.FileResult `json:"files"`
	Errors    []FileError          `json:"errors"`
	Skipped   []string             `json:"skipped,omitempty"`
}

// Stats summarizes an inventory
type Stats struct {
	Files       int                    `json:"files"`
	Errors      int                    `json:"errors"`
	Skipped     int                    `json:"skipped"`
	Lines       int                    `json:"lines"`
	Bytes       int64                  `json:"bytes"`
	Entities    int                    `json:"entities"`
	Functions   int                    `json:"functions"`
	Classes     int                    `json:"classes"`
	Imports     int                    `json:"imports"`
	Exports     int                    `json:"exports"`
	Constants   int                    `json:"constants"`
	Interfaces  int                    `json:"interfaces"`
	TypeAliases int                    `json:"type_aliases"`
	Components  int                    `json:"components"`
	Decorators  int                    `json:"decorators"`
	ByDialect   map[parser.Dialect]int `json:"by_dialect"`
}

// Stats counts files and entities across the inventory
func (inv *Inventory) Stats() Stats {
	st := Stats{
		Files:     len(inv.Files),
		Errors:    len(inv.Errors),
		Skipped:   len(inv.Skipped),
		ByDialect: make(map[parser.Dialect]int),
	}

	for _, f := range inv.Files {
		r := f.Result
		st.Lines += f.LineCount
		st.Bytes += f.Size
		st.ByDialect[f.Dialect]++
		st.Entities += r.EntityCount()
		st.Functions += len(r.Functions)
		st.Classes += len(r.Classes)
		st.Imports += len(r.Imports)
		st.Exports += len(r.Exports)
		st.Constants += len(r.Constants)
		st.Interfaces += len(r.Interfaces)
		st.TypeAliases += len(r.TypeAliases)
		st.Components += len(r.Components)
		st.Decorators += len(r.Decorators)
	}

	return st
}

// File returns the parsed file with the given root-relative path
func (inv *Inventory) File(path string) (*parser.FileResult, bool) {
	i := sort.Search(len(inv.Files), func(i int) bool { return inv.Files[i].Path >= path })
	if i < len(inv.Files) && inv.Files[i].Path == path {
		return inv.Files[i], true
	}
	return nil, false
}
