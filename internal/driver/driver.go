// Package driver runs the gecko front-end over compilation units: parse,
// then type-check, turning every failure into diagnostics.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/logs"
	"github.com/gecko-lang/gecko/internal/parser"
	"github.com/gecko-lang/gecko/internal/types"
)

// Unit is one source file to compile.
type Unit struct {
	Name   string
	Source string
}

// LoadUnits reads each path into a Unit.
func LoadUnits(paths []string) ([]Unit, error) {
	units := make([]Unit, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		units = append(units, Unit{Name: path, Source: string(data)})
	}
	return units, nil
}

// Result is the outcome of compiling one unit. File is nil when parsing
// failed; Scope is nil when checking did not run.
type Result struct {
	ID          uuid.UUID
	Unit        Unit
	File        *ast.File
	Scope       *types.Scope
	Diagnostics []diag.Diagnostic

	// Err is set when the unit was not compiled at all, e.g. because the
	// context was cancelled first.
	Err error
}

// Failed reports whether the unit produced errors or did not run.
func (r *Result) Failed() bool {
	return r.Err != nil || diag.HasErrors(r.Diagnostics)
}

// Options configures a Driver.
type Options struct {
	Jobs       int          // concurrent units; values below 1 mean 1
	Logger     *slog.Logger // nil discards logs
	SyntaxOnly bool         // stop after parsing
}

// Driver compiles units with a fixed configuration. It is safe for
// concurrent use; each compilation owns its own checker state.
type Driver struct {
	jobs       int
	syntaxOnly bool
	logger     *slog.Logger
}

// New creates a driver.
func New(opts Options) *Driver {
	logger := opts.Logger
	if logger == nil {
		logger = logs.Discard()
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	return &Driver{
		jobs:       jobs,
		syntaxOnly: opts.SyntaxOnly,
		logger:     logger.With("component", "driver"),
	}
}

// Compile parses and checks one unit.
func (d *Driver) Compile(ctx context.Context, u Unit) *Result {
	res := &Result{ID: uuid.New(), Unit: u}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	log := d.logger.With("unit", u.Name, "id", res.ID.String())
	log.Debug("compile start")

	file, err := parser.Parse(u.Source, parser.WithFilename(u.Name))
	if err != nil {
		var perr *parser.Error
		if !errors.As(err, &perr) {
			res.Err = fmt.Errorf("parse %s: %w", u.Name, err)
			log.Error("parse failed", "error", err)
			return res
		}
		res.Diagnostics = append(res.Diagnostics, perr.ToDiagnostic())
		log.Info("compile finished", "stage", "parse", "diagnostics", len(res.Diagnostics))
		return res
	}
	res.File = file

	if !d.syntaxOnly {
		checker := types.NewChecker()
		errs := checker.Check(file)
		res.Scope = checker.GlobalScope
		res.Diagnostics = append(res.Diagnostics, errs.Diagnostics()...)
	}

	log.Info("compile finished", "diagnostics", len(res.Diagnostics))
	return res
}

// CompileAll compiles units concurrently, at most Jobs at a time. Results
// are returned in input order. Units not started before ctx is cancelled
// carry ctx's error.
func (d *Driver) CompileAll(ctx context.Context, units []Unit) []*Result {
	results := make([]*Result, len(units))
	sem := make(chan struct{}, d.jobs)

	var wg sync.WaitGroup
	for i, u := range units {
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = &Result{ID: uuid.New(), Unit: u, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			results[i] = d.Compile(ctx, u)
		}()
	}
	wg.Wait()

	d.logger.Debug("compiled units", "count", len(units), "jobs", d.jobs)
	return results
}

// Diagnostics flattens the diagnostics of results in order.
func Diagnostics(results []*Result) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, r := range results {
		out = append(out, r.Diagnostics...)
	}
	return out
}
