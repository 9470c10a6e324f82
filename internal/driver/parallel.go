package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/source"
)

// SourceExt is the Iona source file extension.
const SourceExt = ".iona"

// ListSourceFiles returns every *.iona file under dir, sorted so the
// compile order (and with it aggregation and instantiation numbering) is
// deterministic.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every *.iona file under dir, fanning files out over
// Jobs workers. Files are loaded up front on one goroutine; workers then
// only read the FileSet, so the shared state needing locks is just the
// instantiation and aggregation tables. Results come back in file order
// regardless of completion order.
func (s *Session) CompileDir(ctx context.Context, dir string) ([]FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return s.CompileAll(ctx, files)
}

// CompileAll compiles the given files in parallel. See CompileDir.
func (s *Session) CompileAll(ctx context.Context, files []string) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := s.FileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := s.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	// Slot per file; each goroutine owns exactly one index.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(s.opts.maxDiagnostics())
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFile,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{File: source.NoFile},
				})
				emitEvent(s.opts.Progress, path, StageLex, StatusError, loadErr)
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			results[i] = s.compileLoaded(fileIDs[path], path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// HasErrors reports whether any result carries an error diagnostic.
func HasErrors(results []FileResult) bool {
	for _, r := range results {
		if r.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// MergeBags collects every per-file diagnostic into one sorted bag for
// cross-file reporting.
func MergeBags(results []FileResult) *diag.Bag {
	total := 0
	for _, r := range results {
		total += r.Bag.Len()
	}
	merged := diag.NewBag(total + 1)
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	merged.Sort()
	return merged
}
