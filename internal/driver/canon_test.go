package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCanonPathsWrites: изменившийся документ получает канонический файл
// рядом с исходником.
func TestCanonPathsWrites(t *testing.T) {
	dir := t.TempDir()
	messy := strings.Replace(driverLEF, "VERSION 5.7 ;", "VERSION 5.7;", 1)
	path := writeInput(t, dir, "cells.lef", messy)

	results, err := CanonPaths(context.Background(), []string{path}, CanonOptions{})
	if err != nil {
		t.Fatalf("CanonPaths failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.Err != nil {
		t.Fatalf("Expected the document to canonicalize, got %v", res.Err)
	}
	if !res.Changed {
		t.Error("Expected the messy document to change")
	}
	if res.OutPath != filepath.Join(dir, "cells.canon.lef") {
		t.Errorf("Unexpected output path %q", res.OutPath)
	}
	data, err := os.ReadFile(res.OutPath)
	if err != nil {
		t.Fatalf("Expected the canonical file: %v", err)
	}
	if !strings.Contains(string(data), "VERSION 5.7 ;") {
		t.Error("Expected the semicolon fix in the output")
	}
}

// TestCanonPathsCheckMode: --check ничего не пишет, но сообщает о
// расхождении.
func TestCanonPathsCheckMode(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "cells.lef", driverLEF)

	results, err := CanonPaths(context.Background(), []string{path}, CanonOptions{Check: true})
	if err != nil {
		t.Fatalf("CanonPaths failed: %v", err)
	}
	res := results[0]
	// driverLEF нарочно с перепутанным порядком свойств.
	if !res.Changed {
		t.Error("Expected the out-of-order document to report a change")
	}
	if res.OutPath != "" {
		t.Error("Expected no file in check mode")
	}
	if _, err := os.Stat(filepath.Join(dir, "cells.canon.lef")); !os.IsNotExist(err) {
		t.Error("Expected no canonical file on disk")
	}
}

// TestCanonPathsStable: канонический текст канонического текста не меняется.
func TestCanonPathsStable(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "cells.lef", driverLEF)

	first, err := CanonPaths(context.Background(), []string{path}, CanonOptions{Stdout: true})
	if err != nil {
		t.Fatalf("CanonPaths failed: %v", err)
	}
	stable := writeInput(t, dir, "stable.lef", first[0].Canonical)
	second, err := CanonPaths(context.Background(), []string{stable}, CanonOptions{Check: true})
	if err != nil {
		t.Fatalf("Second CanonPaths failed: %v", err)
	}
	if second[0].Changed {
		t.Error("Expected the canonical text to be a fixed point")
	}
}

func TestCanonPathsNoInputs(t *testing.T) {
	if _, err := CanonPaths(context.Background(), nil, CanonOptions{}); err == nil {
		t.Error("Expected an error without inputs")
	}
}

// TestCanonPathsMissingFile: ошибка чтения оседает в результате файла, а не
// валит весь прогон.
func TestCanonPathsMissingFile(t *testing.T) {
	results, err := CanonPaths(context.Background(), []string{"/nonexistent/x.lef"}, CanonOptions{})
	if err != nil {
		t.Fatalf("CanonPaths failed: %v", err)
	}
	if results[0].Err == nil {
		t.Error("Expected a per-file error for the missing input")
	}
}
