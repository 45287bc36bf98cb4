package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// canonicalName derives the output file name for a LEF input.
func canonicalName(lefPath string) string {
	base := filepath.Base(lefPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".canon" + ext
}

// writeCanonical writes the canonical rendering, falling back through
// candidate directories when a write fails (типично — права на каталог):
// каталог вывода, каталог исходника, затем временный каталог.
func writeCanonical(outDir, lefPath, content string) (string, error) {
	name := canonicalName(lefPath)
	candidates := make([]string, 0, 3)
	if outDir != "" {
		candidates = append(candidates, outDir)
	}
	candidates = append(candidates, filepath.Dir(lefPath), os.TempDir())

	var firstErr error
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("no writable location for %s: %w", name, firstErr)
}

// WriteReport stores the rendered report next to the canonical outputs with
// the same permission fallback.
func WriteReport(outDir, text string) (string, error) {
	const name = "lefcheck.report.txt"
	candidates := make([]string, 0, 2)
	if outDir != "" {
		candidates = append(candidates, outDir)
	}
	candidates = append(candidates, os.TempDir())

	var firstErr error
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("no writable location for %s: %w", name, firstErr)
}
