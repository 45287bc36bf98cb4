package source

import "testing"

// TestNewFileSplitsLines проверяет разрезание на строки: CRLF и завершающий
// перевод строки не дают фантомных строк.
func TestNewFileSplitsLines(t *testing.T) {
	f := NewFile("a.lef", "one\r\ntwo\nthree\n")
	if f.Len() != 3 {
		t.Fatalf("Expected 3 lines, got %d", f.Len())
	}
	if f.Line(0) != "one" {
		t.Errorf("Expected line 0 %q, got %q", "one", f.Line(0))
	}
	if f.Line(2) != "three" {
		t.Errorf("Expected line 2 %q, got %q", "three", f.Line(2))
	}
	if f.Line(3) != "" {
		t.Errorf("Expected out-of-range line to be empty, got %q", f.Line(3))
	}
	if f.Line(-1) != "" {
		t.Errorf("Expected negative index to be empty, got %q", f.Line(-1))
	}
}

// TestCursorSkipsBlankLines проверяет прозрачный пропуск пустых строк при
// конструировании и при каждом Advance.
func TestCursorSkipsBlankLines(t *testing.T) {
	f := NewFile("a.lef", "\n  \nfirst\n\n\t\nsecond\n\n")
	c := NewCursor(f)

	line, ok := c.Current()
	if !ok || line != "first" {
		t.Fatalf("Expected current %q, got %q (ok=%v)", "first", line, ok)
	}
	if c.LineNo() != 3 {
		t.Errorf("Expected line number 3, got %d", c.LineNo())
	}

	line, ok = c.Advance()
	if !ok || line != "second" {
		t.Fatalf("Expected advance to %q, got %q (ok=%v)", "second", line, ok)
	}
	if c.LineNo() != 6 {
		t.Errorf("Expected line number 6, got %d", c.LineNo())
	}

	if _, ok := c.Advance(); ok {
		t.Error("Expected end of input after the last line")
	}
	if !c.EOF() {
		t.Error("Expected EOF after the last line")
	}
}

// TestCursorEndOfInput: конец ввода — это ok == false, не паника.
func TestCursorEndOfInput(t *testing.T) {
	c := NewCursor(NewFile("empty.lef", "\n   \n"))
	if !c.EOF() {
		t.Error("Expected EOF on an all-blank file")
	}
	if _, ok := c.Current(); ok {
		t.Error("Expected Current to report no line")
	}
	if _, ok := c.Advance(); ok {
		t.Error("Expected Advance to report no line")
	}
}

func TestCursorPath(t *testing.T) {
	c := NewCursor(NewFile("dir/x.lef", "MACRO A"))
	if c.Path() != "dir/x.lef" {
		t.Errorf("Expected path %q, got %q", "dir/x.lef", c.Path())
	}
}
