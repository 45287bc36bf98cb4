package source

import "strings"

// File — один входной документ, разрезанный на логические строки.
// Содержимое после конструирования не меняется.
type File struct {
	Path  string
	Lines []string
}

// NewFile splits content into lines. Trailing carriage returns are stripped
// so Windows line endings behave like Unix ones; a trailing newline does not
// produce a phantom empty line.
func NewFile(path, content string) *File {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return &File{Path: path, Lines: lines}
}

// Line returns the 0-based line, or "" when idx is out of range.
func (f *File) Line(idx int) string {
	if idx < 0 || idx >= len(f.Lines) {
		return ""
	}
	return f.Lines[idx]
}

// Len returns the number of lines in the file.
func (f *File) Len() int { return len(f.Lines) }
