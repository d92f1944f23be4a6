package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/mattn/go-sqlite3"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/database"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/inventory"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/ulid"
)

var (
	// ErrScanNotFound is returned when no scan has the requested ID
	ErrScanNotFound = errors.New("scan not found")

	// ErrFileNotFound is returned when a scan has no file with the requested path
	ErrFileNotFound = errors.New("file not found")
)

// Repository defines scan persistence operations
type Repository interface {
	SaveInventory(ctx context.Context, inv *inventory.Inventory) error
	GetScan(ctx context.Context, id string) (*Scan, error)
	ListScans(ctx context.Context) ([]*Scan, error)
	ListEntities(ctx context.Context, scanID, kind string) ([]*Entity, error)
	GetFileResult(ctx context.Context, scanID, path string) (*parser.FileResult, error)
	DeleteScan(ctx context.Context, id string) error
}

// entityBatchSize keeps one multi-row entity insert under SQLite's limit of
// 32766 bound variables at eight columns per row
const entityBatchSize = 500

// SQLRepository implements Repository using SQLite
type SQLRepository struct {
	db             *sql.DB
	logger         *loggy.Logger
	builder        sq.StatementBuilderType
	saveMaxElapsed time.Duration
	queryTimeout   time.Duration
}

// Option configures a SQLRepository
type Option func(*SQLRepository)

// WithQueryTimeout bounds each read query. Zero leaves reads bounded only by the caller's context.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *SQLRepository) {
		r.queryTimeout = d
	}
}

// NewSQLRepository creates a scan repository. saveMaxElapsed bounds how long
// SaveInventory keeps retrying while the database is busy.
func NewSQLRepository(db *sql.DB, logger *loggy.Logger, saveMaxElapsed time.Duration, opts ...Option) *SQLRepository {
	r := &SQLRepository{
		db:             db,
		logger:         logger,
		builder:        sq.StatementBuilder.PlaceholderFormat(sq.Question),
		saveMaxElapsed: saveMaxElapsed,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *SQLRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// isBusy reports whether err is SQLite telling us another connection holds the lock
func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// SaveInventory stores the scan, its files, entities and file errors in one transaction,
// retrying the whole transaction with exponential backoff while SQLite reports busy
func (r *SQLRepository) SaveInventory(ctx context.Context, inv *inventory.Inventory) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := database.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
			return r.saveInventoryTx(ctx, tx, inv)
		})
		if err == nil {
			return nil
		}
		if isBusy(err) {
			r.logger.Debug("Database busy, retrying save", "scan_id", inv.ID, "attempt", attempt)
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxElapsedTime = r.saveMaxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("saving scan %s: %w", inv.ID, err)
	}

	r.logger.Info("Saved scan", "scan_id", inv.ID, "files", len(inv.Files), "attempts", attempt)
	return nil
}

func (r *SQLRepository) saveInventoryTx(ctx context.Context, tx *sql.Tx, inv *inventory.Inventory) error {
	st := inv.Stats()

	query, args, err := r.builder.
		Insert("scans").
		Columns("id", "label", "root", "file_count", "entity_count", "error_count", "created_at").
		Values(inv.ID, inv.Label, inv.Root, st.Files, st.Entities, st.Errors, inv.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("building scan insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting scan: %w", err)
	}

	for _, fr := range inv.Files {
		if err := r.saveFileTx(ctx, tx, inv.ID, fr); err != nil {
			return err
		}
	}

	if len(inv.Errors) > 0 {
		insert := r.builder.Insert("file_errors").Columns("scan_id", "path", "message")
		for _, fe := range inv.Errors {
			insert = insert.Values(inv.ID, fe.Path, fe.Message())
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("building file error insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting file errors: %w", err)
		}
	}

	return nil
}

func (r *SQLRepository) saveFileTx(ctx context.Context, tx *sql.Tx, scanID string, fr *parser.FileResult) error {
	result, err := json.Marshal(fr.Result)
	if err != nil {
		return fmt.Errorf("encoding result for %s: %w", fr.Path, err)
	}

	fileID := ulid.FileID()
	query, args, err := r.builder.
		Insert("files").
		Columns("id", "scan_id", "path", "language", "dialect", "size", "line_count", "result").
		Values(fileID, scanID, fr.Path, fr.Language, string(fr.Dialect), fr.Size, fr.LineCount, string(result)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building file insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting file %s: %w", fr.Path, err)
	}

	entities, err := Flatten(fr)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		return nil
	}

	for _, batch := range batches(len(entities), entityBatchSize) {
		insert := r.builder.
			Insert("entities").
			Columns("id", "scan_id", "file_id", "kind", "name", "line_start", "line_end", "detail")
		for _, e := range entities[batch[0]:batch[1]] {
			insert = insert.Values(ulid.EntityID(), scanID, fileID, e.Kind, e.Name, e.LineStart, e.LineEnd, string(e.Detail))
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("building entity insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting entities for %s: %w", fr.Path, err)
		}
	}

	return nil
}

// batches splits n items into [start, end) ranges of at most size items
func batches(n, size int) [][2]int {
	out := [][2]int{}
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}

var scanColumns = []string{"id", "label", "root", "file_count", "entity_count", "error_count", "created_at"}

func scanScan(row interface{ Scan(...any) error }) (*Scan, error) {
	var s Scan
	if err := row.Scan(&s.ID, &s.Label, &s.Root, &s.FileCount, &s.EntityCount, &s.ErrorCount, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetScan retrieves a scan summary by ID
func (r *SQLRepository) GetScan(ctx context.Context, id string) (*Scan, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query, args, err := r.builder.
		Select(scanColumns...).
		From("scans").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	s, err := scanScan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrScanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning scan: %w", err)
	}
	return s, nil
}

// ListScans returns every stored scan, newest first
func (r *SQLRepository) ListScans(ctx context.Context) ([]*Scan, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query, args, err := r.builder.
		Select(scanColumns...).
		From("scans").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	scans := []*Scan{}
	for rows.Next() {
		s, err := scanScan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning scan: %w", err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scans: %w", err)
	}
	return scans, nil
}

// ListEntities returns the entities of a scan ordered by file and line; an empty kind means all kinds
func (r *SQLRepository) ListEntities(ctx context.Context, scanID, kind string) ([]*Entity, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	if _, err := r.GetScan(ctx, scanID); err != nil {
		return nil, err
	}

	q := r.builder.
		Select("e.id", "e.scan_id", "e.file_id", "f.path", "e.kind", "e.name", "e.line_start", "e.line_end", "e.detail").
		From("entities e").
		Join("files f ON f.id = e.file_id").
		Where(sq.Eq{"e.scan_id": scanID})
	if kind != "" {
		q = q.Where(sq.Eq{"e.kind": kind})
	}

	query, args, err := q.OrderBy("f.path", "e.line_start", "e.name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	entities := []*Entity{}
	for rows.Next() {
		var e Entity
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.ScanID, &e.FileID, &e.FilePath, &e.Kind, &e.Name, &e.LineStart, &e.LineEnd, &detail); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		if detail.Valid {
			e.Detail = json.RawMessage(detail.String)
		}
		entities = append(entities, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	return entities, nil
}

// GetFileResult reloads the stored parse of one file
func (r *SQLRepository) GetFileResult(ctx context.Context, scanID, path string) (*parser.FileResult, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query, args, err := r.builder.
		Select("path", "language", "dialect", "size", "line_count", "result").
		From("files").
		Where(sq.Eq{"scan_id": scanID, "path": path}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var fr parser.FileResult
	var dialect, result string
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&fr.Path, &fr.Language, &dialect, &fr.Size, &fr.LineCount, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s in %s", ErrFileNotFound, path, scanID)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning file: %w", err)
	}

	fr.Dialect = parser.Dialect(dialect)
	if err := json.Unmarshal([]byte(result), &fr.Result); err != nil {
		return nil, fmt.Errorf("decoding result for %s: %w", path, err)
	}
	return &fr, nil
}

// DeleteScan removes a scan and everything recorded for it
func (r *SQLRepository) DeleteScan(ctx context.Context, id string) error {
	return database.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		for _, table := range []string{"file_errors", "entities", "files"} {
			query, args, err := r.builder.Delete(table).Where(sq.Eq{"scan_id": id}).ToSql()
			if err != nil {
				return fmt.Errorf("building delete: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("deleting from %s: %w", table, err)
			}
		}

		query, args, err := r.builder.Delete("scans").Where(sq.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("building delete: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("deleting scan: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: %s", ErrScanNotFound, id)
		}
		return nil
	})
}
