// Package driver orchestrates lefcheck runs: it loads the technology table,
// extracts Liberty records, fans out over LEF documents and joins the
// per-document results. The core packages stay purely sequential; all
// parallelism and all file I/O live here.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"lefcheck/internal/crosscheck"
	"lefcheck/internal/diag"
	"lefcheck/internal/lef"
	"lefcheck/internal/liberty"
	"lefcheck/internal/observ"
	"lefcheck/internal/project"
	"lefcheck/internal/source"
	"lefcheck/internal/tech"
)

// CheckOptions configures a full pipeline run.
type CheckOptions struct {
	// OutDir receives canonical renderings; "" writes next to the inputs.
	OutDir string
	// Jobs caps parallel LEF processing; 0 lets errgroup decide from the
	// file count.
	Jobs int
	// NoCache bypasses the disk cache.
	NoCache bool
	// SkipOutput suppresses writing canonical files (report-only runs).
	SkipOutput bool

	Logger *log.Logger
	Timer  *observ.Timer
}

// CheckResult captures the outcome for one LEF document.
type CheckResult struct {
	Path      string
	Canonical string
	// Ledger holds the document's findings, including cross-checks.
	Ledger *diag.Ledger
	// OutPath is where the canonical text was written, "" when not written.
	OutPath  string
	CacheHit bool
	// Err is the fatal structural violation that aborted this document,
	// nil otherwise. Other documents keep processing.
	Err error
}

func (o CheckOptions) logf() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// CheckWorkspace runs the whole pipeline over a workspace.
//
// Каждый LEF-файл обрабатывается со своим Ledger и своим run context;
// таблица слоёв загружается один раз до разбора и дальше только читается,
// поэтому её можно безопасно разделять между воркерами.
func CheckWorkspace(ctx context.Context, ws *project.Workspace, opts CheckOptions) ([]CheckResult, error) {
	if len(ws.LEF) == 0 {
		return nil, fmt.Errorf("check: no LEF files found")
	}
	logger := opts.logf()
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	// Technology table.
	span := timer.Begin("tech")
	var techData []byte
	table := tech.Default()
	if ws.Tech != "" {
		data, err := os.ReadFile(ws.Tech)
		if err != nil {
			return nil, fmt.Errorf("check: read technology file: %w", err)
		}
		techData = data
		table = tech.Load(ws.Tech, string(data))
		logger.Info("technology table loaded", "path", ws.Tech, "layers", len(table.Names))
	} else {
		logger.Warn("no technology file, using the built-in layer table")
	}
	table.Warnf = logger.Warnf
	span.End(ws.Tech)

	// Liberty records.
	span = timer.Begin("liberty")
	libs := make([]*liberty.File, 0, len(ws.Lib))
	var libData [][]byte
	for _, path := range ws.Lib {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("check: read liberty file: %w", err)
		}
		libData = append(libData, data)
		lf := liberty.Extract(path, string(data))
		logger.Info("liberty extracted", "path", path, "cells", len(lf.Cells))
		libs = append(libs, lf)
	}
	span.End(fmt.Sprintf("%d file(s)", len(libs)))

	var cache *DiskCache
	if !opts.NoCache {
		if c, err := OpenDiskCache("lefcheck"); err == nil {
			cache = c
		} else {
			logger.Warn("disk cache unavailable", "err", err)
		}
	}

	span = timer.Begin("lef")
	results := make([]CheckResult, len(ws.LEF))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, path := range ws.LEF {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkOne(path, table, techData, libs, libData, cache, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	span.End(fmt.Sprintf("%d file(s)", len(ws.LEF)))

	if !opts.SkipOutput {
		span = timer.Begin("output")
		for i := range results {
			if results[i].Err != nil {
				continue
			}
			outPath, err := writeCanonical(opts.OutDir, results[i].Path, results[i].Canonical)
			if err != nil {
				logger.Error("canonical output not written", "path", results[i].Path, "err", err)
				continue
			}
			results[i].OutPath = outPath
		}
		span.End("")
	}
	return results, nil
}

// checkOne processes a single LEF document end to end.
func checkOne(path string, table *tech.Table, techData []byte, libs []*liberty.File, libData [][]byte, cache *DiskCache, logger *log.Logger) CheckResult {
	res := CheckResult{Path: path, Ledger: diag.NewLedger()}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	var key Digest
	if cache != nil {
		parts := [][]byte{data, techData}
		parts = append(parts, libData...)
		key = inputDigest(parts...)
		if canonical, dumped, ok := cache.Get(key); ok {
			res.Canonical = canonical
			res.Ledger = diag.Restore(dumped)
			res.CacheHit = true
			logger.Debug("cache hit", "path", path)
			return res
		}
	}

	runCtx := lef.NewContext(table, res.Ledger)
	lib, err := lef.Parse(source.NewFile(path, string(data)), runCtx)
	if err != nil {
		res.Err = err
		return res
	}
	lef.CheckViaObs(lib, runCtx)
	lef.Canonicalize(lib, runCtx)
	res.Canonical = lef.Render(lib, runCtx)
	crosscheck.Check(lib, libs, runCtx)
	logger.Info("checked", "path", path, "cells", len(lib.CellNames()), "findings", res.Ledger.Total())

	if cache != nil {
		if err := cache.Put(key, res.Canonical, res.Ledger.Dump()); err != nil {
			logger.Debug("cache write failed", "path", path, "err", err)
		}
	}
	return res
}

// MergedLedger joins the per-document ledgers in input order.
func MergedLedger(results []CheckResult) *diag.Ledger {
	merged := diag.NewLedger()
	for i := range results {
		merged.Merge(results[i].Ledger)
	}
	return merged
}
