package driver

import (
	"context"
	"errors"
	"os"

	"lefcheck/internal/diag"
	"lefcheck/internal/lef"
	"lefcheck/internal/source"
	"lefcheck/internal/tech"
)

// CanonOptions configures canonicalization-only runs.
type CanonOptions struct {
	// Check detects whether output would differ without writing anything.
	Check bool
	// Stdout returns the canonical text in the results instead of writing
	// files.
	Stdout bool
	// TechPath optionally names a technology file for the layer order.
	TechPath string
	// OutDir receives outputs; "" writes next to the inputs.
	OutDir string
}

// CanonResult captures the result of canonicalizing a single file.
type CanonResult struct {
	Path      string
	Changed   bool
	Canonical string
	Ledger    *diag.Ledger
	OutPath   string
	Err       error
}

// CanonPaths canonicalizes the given LEF files. When opts.Check is true no
// file is modified; Changed reports whether canonical output differs from
// the source text.
func CanonPaths(ctx context.Context, paths []string, opts CanonOptions) ([]CanonResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("canon: no LEF files given")
	}

	table := tech.Default()
	if opts.TechPath != "" {
		data, err := os.ReadFile(opts.TechPath)
		if err != nil {
			return nil, err
		}
		table = tech.Load(opts.TechPath, string(data))
	}

	results := make([]CanonResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := CanonResult{Path: path, Ledger: diag.NewLedger()}
		data, err := os.ReadFile(path)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		runCtx := lef.NewContext(table, res.Ledger)
		lib, err := lef.Parse(source.NewFile(path, string(data)), runCtx)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		lef.Canonicalize(lib, runCtx)
		res.Canonical = lef.Render(lib, runCtx)
		res.Changed = res.Canonical != string(data)

		if !opts.Check && !opts.Stdout && res.Changed {
			outPath, err := writeCanonical(opts.OutDir, path, res.Canonical)
			if err != nil {
				res.Err = err
			} else {
				res.OutPath = outPath
			}
		}
		results = append(results, res)
	}
	return results, nil
}
