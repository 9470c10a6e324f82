// Package driver wires the per-file pipeline (lex, parse, emit) and the
// session state shared across files: the instantiation table, the
// aggregation tables, and the emission cache.
package driver

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/cgen"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/lexer"
	"github.com/BurntChromium/IonaLang/internal/mono"
	"github.com/BurntChromium/IonaLang/internal/parser"
	"github.com/BurntChromium/IonaLang/internal/source"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// Options configures a compilation session.
type Options struct {
	// MaxDiagnostics bounds the per-file diagnostic bag.
	MaxDiagnostics int
	// MaxErrors stops error reporting (not parsing) per file. Zero is
	// unlimited.
	MaxErrors uint
	// Jobs bounds parallel file compilation. Zero means GOMAXPROCS.
	Jobs int
	// Cache, when set, skips emission for files whose content hash has a
	// cached artifact.
	Cache *EmitCache
	// Progress receives pipeline events for UI display. May be nil.
	Progress chan<- Event
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// FileResult is the outcome of compiling one source file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Output is the generated module header; empty when errors blocked
	// emission or loading failed.
	Output string
	// FromCache marks output replayed from the emission cache.
	FromCache bool
}

// Session owns the state shared by every file of one compilation.
type Session struct {
	FileSet *source.FileSet
	Table   *mono.Table
	Tables  *Tables

	// tablesMu serializes aggregation updates when files compile in
	// parallel. The instantiation table does its own locking.
	tablesMu sync.Mutex
	opts     Options
}

func NewSession(opts Options) *Session {
	return &Session{
		FileSet: source.NewFileSet(),
		Table:   mono.NewTable(diag.NopReporter{}),
		Tables:  NewTables(),
		opts:    opts,
	}
}

// ModuleName derives the Iona module name from a file path: the base name
// without the .iona extension.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CompileFile runs one file through the pipeline. Emission is skipped when
// the file produced any error; the parse still completes so all
// diagnostics surface in one run.
func (s *Session) CompileFile(path string) FileResult {
	bag := diag.NewBag(s.opts.maxDiagnostics())
	res := FileResult{Path: path, Bag: bag}

	emitEvent(s.opts.Progress, path, StageLex, StatusWorking, nil)
	id, err := s.FileSet.Load(path)
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFile,
			Message:  "failed to load file: " + err.Error(),
			Primary:  source.Span{File: source.NoFile},
		})
		emitEvent(s.opts.Progress, path, StageLex, StatusError, err)
		return res
	}
	return s.compileLoaded(id, path)
}

// compileLoaded runs the pipeline for a file already in the FileSet. Safe
// to call concurrently for distinct files once loading is done.
func (s *Session) compileLoaded(id source.FileID, path string) FileResult {
	bag := diag.NewBag(s.opts.maxDiagnostics())
	reporter := diag.BagReporter{Bag: bag}
	res := FileResult{Path: path, FileID: id, Bag: bag}
	file := s.FileSet.Get(id)

	toks := lexer.New(file, reporter).Tokenize()
	emitEvent(s.opts.Progress, path, StageParse, StatusWorking, nil)

	parsed := parser.ParseFile(file, toks, parser.Options{
		MaxErrors: s.opts.MaxErrors,
		Reporter:  reporter,
	})

	s.tablesMu.Lock()
	s.Tables.Update(parsed.File, ModuleName(path))
	s.tablesMu.Unlock()

	if bag.HasErrors() {
		emitEvent(s.opts.Progress, path, StageParse, StatusError, nil)
		return res
	}

	emitEvent(s.opts.Progress, path, StageEmit, StatusWorking, nil)
	if s.opts.Cache != nil {
		if cached, hit := s.opts.Cache.Get(file.Hash); hit {
			// The replayed header includes instantiation units, so their
			// table entries must exist even though emission is skipped.
			s.replayInstantiations(parsed.File)
			res.Output = cached
			res.FromCache = true
			emitEvent(s.opts.Progress, path, StageEmit, StatusDone, nil)
			return res
		}
	}

	out, ok := cgen.New(s.Table, reporter).EmitFile(parsed.File)
	if !ok {
		emitEvent(s.opts.Progress, path, StageEmit, StatusError, nil)
		return res
	}
	res.Output = out

	if s.opts.Cache != nil {
		// Cache failures are not compile failures.
		_ = s.opts.Cache.Put(file.Hash, out)
	}
	emitEvent(s.opts.Progress, path, StageEmit, StatusDone, nil)
	return res
}

// replayInstantiations requests every generic type the file mentions.
// Cached output only exists for files that emitted cleanly, so this is the
// exact set emission requested when the artifact was produced.
func (s *Session) replayInstantiations(file *ast.File) {
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.StructDecl:
			for _, f := range it.Fields {
				s.requestGenerics(f.Type)
			}
		case *ast.EnumDecl:
			for _, v := range it.Variants {
				if v.Payload != nil {
					s.requestGenerics(*v.Payload)
				}
			}
		case *ast.FnDecl:
			for _, p := range it.Params {
				s.requestGenerics(p.Type)
			}
			s.requestGenerics(it.Return)
		}
	}
}

func (s *Session) requestGenerics(t ast.Type) {
	t.Walk(func(tt ast.Type) {
		if tt.Kind == ast.TypeGeneric {
			s.Table.Request(tt)
		}
	})
}

// TokenizeFile lexes one file without parsing it.
func (s *Session) TokenizeFile(path string) ([]token.Token, *diag.Bag, error) {
	bag := diag.NewBag(s.opts.maxDiagnostics())
	id, err := s.FileSet.Load(path)
	if err != nil {
		return nil, bag, err
	}
	toks := lexer.New(s.FileSet.Get(id), diag.BagReporter{Bag: bag}).Tokenize()
	return toks, bag, nil
}
