package source

import "strings"

// Cursor представляет собой позицию в файле: однонаправленный взгляд на
// строки документа. Пустые строки (только пробельные символы) прозрачно
// пропускаются и при конструировании, и при каждом Advance.
//
// Конец ввода — это явное "строки нет" (ok == false), никогда не паника.
type Cursor struct {
	file *File
	pos  int
}

// NewCursor creates a cursor positioned at the first non-blank line.
func NewCursor(f *File) *Cursor {
	c := &Cursor{file: f}
	c.skipBlank()
	return c
}

func (c *Cursor) skipBlank() {
	for c.pos < c.file.Len() && strings.TrimSpace(c.file.Line(c.pos)) == "" {
		c.pos++
	}
}

// EOF reports whether the cursor is past the last line.
func (c *Cursor) EOF() bool {
	return c.pos >= c.file.Len()
}

// Current returns the line under the cursor. ok is false at end of input.
func (c *Cursor) Current() (line string, ok bool) {
	if c.EOF() {
		return "", false
	}
	return c.file.Line(c.pos), true
}

// Advance moves one logical line forward, skipping any number of blank
// lines, and returns the new current line.
func (c *Cursor) Advance() (line string, ok bool) {
	if c.EOF() {
		return "", false
	}
	c.pos++
	c.skipBlank()
	return c.Current()
}

// Pos returns the 0-based index of the current line.
func (c *Cursor) Pos() int { return c.pos }

// LineNo returns the 1-based line number used in diagnostics.
func (c *Cursor) LineNo() int { return c.pos + 1 }

// Path returns the path of the underlying file.
func (c *Cursor) Path() string { return c.file.Path }
