// Package pass drives one generation pass: load, scan, resolve, generate and
// write, collecting diagnostics on the way.
package pass

import (
	"context"
	"fmt"
	"path/filepath"

	"rowmapper-generator/internal/analyze"
	"rowmapper-generator/internal/config"
	"rowmapper-generator/internal/diagnostic"
	"rowmapper-generator/internal/gen"
	"rowmapper-generator/internal/logger"
	"rowmapper-generator/internal/mapping"
	"rowmapper-generator/internal/plan"
)

// Result is everything one pass produced.
type Result struct {
	Graph *analyze.ClassGraph
	Plan  *plan.ResolvedPlan
	// Files are the generated mappers; written unless the pass is a dry run.
	Files   []gen.GeneratedFile
	Written bool
}

// Diagnostics returns the diagnostics of the resolution.
func (r *Result) Diagnostics() diagnostic.Diagnostics {
	if r.Plan == nil {
		return diagnostic.Diagnostics{}
	}

	return r.Plan.Diagnostics
}

// Drifted reports whether the bindings differ from the lock file.
func (r *Result) Drifted() bool {
	if r.Plan == nil {
		return false
	}

	return len(r.Plan.Diagnostics.WithCode(diagnostic.CodeLockDrift)) > 0
}

// Driver runs passes with a fixed configuration. A Driver holds no state
// between passes.
type Driver struct {
	cfg *config.Config
	log logger.Logger
}

// New creates a Driver.
func New(cfg *config.Config, log logger.Logger) *Driver {
	if log == nil {
		log = logger.NewNop()
	}

	return &Driver{cfg: cfg, log: log}
}

// Resolve loads the configured packages and resolves their mappable types.
func (d *Driver) Resolve(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.log.Debug("loading packages", "patterns", d.cfg.Packages, "tag", d.cfg.Tag)

	graph, err := analyze.NewAnalyzer(d.cfg.AnalyzeConfig()).LoadPackages(d.cfg.Packages...)
	if err != nil {
		return nil, err
	}

	d.log.Debug("scanned packages", "packages", len(graph.Packages), "classes", len(graph.Classes))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rcfg, err := d.resolutionConfig()
	if err != nil {
		return nil, err
	}

	p, err := plan.NewResolver(graph, rcfg).Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving bindings: %w", err)
	}

	if d.cfg.Lock != "" {
		if err := d.checkLock(p); err != nil {
			return nil, err
		}
	}

	for _, rc := range p.Classes {
		d.log.Debug("resolved class", "class", rc.ID.Qualified(), "bindings", len(rc.Bindings), "mapper", rc.MapperName)
	}

	d.log.Info("resolved",
		"classes", len(p.Classes),
		"errors", len(p.Diagnostics.Errors),
		"warnings", len(p.Diagnostics.Warnings))

	return &Result{Graph: graph, Plan: p}, nil
}

// Run resolves, generates a mapper for every valid class and writes the
// output. Classes with errors get no mapper; the caller decides from the
// diagnostics whether the pass failed.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	res, err := d.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if res.Drifted() {
		d.log.Warn("bindings differ from the lock file, nothing generated", "lock", d.cfg.Lock)
		return res, nil
	}

	files, err := gen.NewGenerator(d.cfg.GeneratorConfig()).Generate(res.Plan)
	if err != nil {
		return nil, err
	}

	res.Files = files

	if d.cfg.Manifest != "" {
		if err := d.writeManifest(res.Plan); err != nil {
			return nil, err
		}
	}

	if d.cfg.DryRun {
		d.log.Info("dry run, nothing written", "files", len(files))
		return res, nil
	}

	if err := gen.WriteFiles(files, ""); err != nil {
		return nil, err
	}

	for _, f := range files {
		d.log.Debug("wrote mapper", "class", f.Class.Qualified(), "path", f.Path())
	}

	res.Written = true
	d.log.Info("generated mappers", "files", len(files))

	return res, nil
}

func (d *Driver) resolutionConfig() (plan.ResolutionConfig, error) {
	rcfg := d.cfg.ResolutionConfig()
	if rcfg.OutputDir == "" {
		return rcfg, nil
	}

	dir := rcfg.OutputDir
	if !filepath.IsAbs(dir) && d.cfg.Dir != "" {
		dir = filepath.Join(d.cfg.Dir, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return rcfg, fmt.Errorf("resolving output directory: %w", err)
	}

	rcfg.OutputDir = abs

	return rcfg, nil
}

func (d *Driver) checkLock(p *plan.ResolvedPlan) error {
	locked, err := mapping.LoadFile(d.cfg.Lock)
	if err != nil {
		return err
	}

	drift := mapping.Compare(locked, plan.ExportManifest(p))
	if drift.HasErrors() {
		d.log.Debug("lock drift", "lock", d.cfg.Lock, "differences", len(drift.Errors))
	}

	p.Diagnostics.Merge(drift)

	return nil
}

func (d *Driver) writeManifest(p *plan.ResolvedPlan) error {
	if err := mapping.WriteFile(p, d.cfg.Manifest); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	d.log.Debug("wrote manifest", "path", d.cfg.Manifest)

	return nil
}
