package inventory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/config"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/ulid"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/utils"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"golang.org/x/sync/errgroup"
)

// Scanner parses every source file under a root directory
type Scanner struct {
	parser           *parser.Service
	logger           *loggy.Logger
	workers          int
	maxFileSize      int64
	respectGitignore bool
	skipDirs         map[string]bool
}

// NewScanner creates a scanner using the scan section of the configuration
func NewScanner(parserService *parser.Service, cfg config.ScanConfig, logger *loggy.Logger) *Scanner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	skip := make(map[string]bool, len(cfg.SkipDirs))
	for _, d := range cfg.SkipDirs {
		skip[d] = true
	}

	return &Scanner{
		parser:           parserService,
		logger:           logger,
		workers:          workers,
		maxFileSize:      cfg.MaxFileSize,
		respectGitignore: cfg.RespectGitignore,
		skipDirs:         skip,
	}
}

// candidate is a file chosen for parsing; rel uses forward slashes
type candidate struct {
	abs string
	rel string
}

// Scan walks root and parses the source files found there. An empty label gets a generated one.
// Unparseable files are recorded on the inventory; only walk failures and cancellation abort the scan.
func (s *Scanner) Scan(ctx context.Context, root, label string) (*Inventory, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("checking root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", absRoot)
	}

	if label == "" {
		label = utils.GenerateScanLabel()
	}

	inv := &Inventory{
		ID:        ulid.ScanID(),
		Label:     label,
		Root:      absRoot,
		CreatedAt: time.Now().UTC(),
		Files:     []*parser.FileResult{},
		Errors:    []FileError{},
	}

	ctx = loggy.WithScanID(loggy.WithLogger(ctx, s.logger), inv.ID)
	logger := loggy.FromContext(ctx)
	logger.Info("Scanning directory", "root", absRoot, "label", label, "workers", s.workers)

	candidates, skipped, err := s.collect(ctx, absRoot)
	if err != nil {
		return nil, err
	}
	inv.Skipped = skipped

	results, fileErrors, err := s.parseAll(ctx, candidates)
	if err != nil {
		return nil, err
	}

	for _, fr := range results {
		if fr != nil {
			inv.Files = append(inv.Files, fr)
		}
	}
	sort.Slice(inv.Files, func(i, j int) bool { return inv.Files[i].Path < inv.Files[j].Path })
	sort.Slice(fileErrors, func(i, j int) bool { return fileErrors[i].Path < fileErrors[j].Path })
	inv.Errors = append(inv.Errors, fileErrors...)

	st := inv.Stats()
	logger.Info("Scan complete",
		"files", st.Files,
		"entities", st.Entities,
		"errors", st.Errors,
		"skipped", st.Skipped)

	return inv, nil
}

// collect walks the tree and returns the files worth parsing, plus the too-large ones it passed over
func (s *Scanner) collect(ctx context.Context, absRoot string) ([]candidate, []string, error) {
	fs := osfs.New(absRoot)

	var matcher gitignore.Matcher
	if s.respectGitignore {
		patterns, err := gitignore.ReadPatterns(fs, nil)
		if err != nil {
			loggy.FromContext(ctx).Warn("Failed to read .gitignore patterns", "error", err)
		} else if len(patterns) > 0 {
			matcher = gitignore.NewMatcher(patterns)
		}
	}

	var candidates []candidate
	var skipped []string

	err := util.Walk(fs, ".", func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == "." {
			return err
		}
		if err != nil {
			loggy.FromContext(ctx).Warn("Failed to read path", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := filepath.ToSlash(path)
		if info.IsDir() {
			if s.skipDirs[info.Name()] || s.ignored(matcher, rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() || s.ignored(matcher, rel, false) {
			return nil
		}

		abs := filepath.Join(absRoot, path)
		if !s.parser.GetLanguageDetector().HasSourceExtension(abs) {
			return nil
		}
		if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
			loggy.FromContext(ctx).Debug("Skipping large file", "path", rel, "size", info.Size())
			skipped = append(skipped, rel)
			return nil
		}
		if !s.parser.IsSourceFileUnder(absRoot, path) {
			return nil
		}

		candidates = append(candidates, candidate{abs: abs, rel: rel})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", absRoot, err)
	}

	sort.Strings(skipped)
	return candidates, skipped, nil
}

func (s *Scanner) ignored(matcher gitignore.Matcher, rel string, isDir bool) bool {
	if matcher == nil {
		return false
	}
	return matcher.Match(strings.Split(rel, "/"), isDir)
}

// parseAll parses candidates with at most s.workers files in flight.
// Results keep the candidates' order; nil entries mark files that failed.
func (s *Scanner) parseAll(ctx context.Context, candidates []candidate) ([]*parser.FileResult, []FileError, error) {
	results := make([]*parser.FileResult, len(candidates))
	var (
		mu         sync.Mutex
		fileErrors []FileError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}

		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fr, err := s.parser.ParseFile(c.abs)
			if err != nil {
				loggy.FromContext(ctx).Warn("Failed to parse file", "path", c.rel, "error", err)
				mu.Lock()
				fileErrors = append(fileErrors, FileError{Path: c.rel, Err: err})
				mu.Unlock()
				return nil
			}

			fr.Path = c.rel
			results[i] = fr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("parsing files: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("parsing files: %w", err)
	}

	return results, fileErrors, nil
}
