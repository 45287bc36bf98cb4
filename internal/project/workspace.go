// Package project locates the input files of a run: LEF documents, Liberty
// libraries and the technology file, either from explicit paths or by
// walking a workspace directory. It also loads the optional lefcheck.toml.
package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Workspace перечисляет входные файлы одного прогона. Списки всегда
// отсортированы, чтобы порядок обработки был детерминированным.
type Workspace struct {
	Root string
	LEF  []string
	Lib  []string
	// Tech is the technology file path, "" when the workspace has none.
	Tech string
}

// Discover walks root and collects .lef, .lib and .tf/.tlef files. When the
// workspace has several technology files, .tf is preferred over .tlef and
// ties break lexically.
func Discover(root string) (*Workspace, error) {
	ws := &Workspace{Root: root}
	var tf, tlef []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Скрытые каталоги не сканируем.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".lef":
			if strings.HasSuffix(strings.ToLower(path), "_tech.lef") {
				tlef = append(tlef, path)
			} else {
				ws.LEF = append(ws.LEF, path)
			}
		case ".lib":
			ws.Lib = append(ws.Lib, path)
		case ".tf":
			tf = append(tf, path)
		case ".tlef":
			tlef = append(tlef, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(ws.LEF)
	sort.Strings(ws.Lib)
	sort.Strings(tf)
	sort.Strings(tlef)
	switch {
	case len(tf) > 0:
		ws.Tech = tf[0]
	case len(tlef) > 0:
		ws.Tech = tlef[0]
	}
	return ws, nil
}

// FromPaths builds a workspace from explicit file arguments, dispatching on
// extension the same way Discover does.
func FromPaths(paths []string) (*Workspace, error) {
	ws := &Workspace{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			sub, err := Discover(path)
			if err != nil {
				return nil, err
			}
			ws.LEF = append(ws.LEF, sub.LEF...)
			ws.Lib = append(ws.Lib, sub.Lib...)
			if ws.Tech == "" {
				ws.Tech = sub.Tech
			}
			continue
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".lef":
			if strings.HasSuffix(strings.ToLower(path), "_tech.lef") {
				ws.Tech = path
			} else {
				ws.LEF = append(ws.LEF, path)
			}
		case ".lib":
			ws.Lib = append(ws.Lib, path)
		case ".tf", ".tlef":
			ws.Tech = path
		}
	}
	sort.Strings(ws.LEF)
	sort.Strings(ws.Lib)
	return ws, nil
}
