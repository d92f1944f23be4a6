// Package migrations embeds the SQL schema for stored scans
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql
var schemaFS embed.FS

// GetSource returns a migrate source driver reading the embedded sql directory
func GetSource() (source.Driver, error) {
	sub, err := fs.Sub(schemaFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to access embedded migrations: %w", err)
	}

	src, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}
	return src, nil
}

// Versions lists the embedded migration versions in ascending order
func Versions() ([]uint, error) {
	src, err := GetSource()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	v, err := src.First()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading first migration: %w", err)
	}

	versions := []uint{v}
	for {
		v, err = src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			return versions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading migration after %d: %w", v, err)
		}
		versions = append(versions, v)
	}
}

// Latest is the highest embedded migration version, zero when there are none
func Latest() (uint, error) {
	versions, err := Versions()
	if err != nil || len(versions) == 0 {
		return 0, err
	}
	return versions[len(versions)-1], nil
}
