package diag

import "testing"

// TestLedgerAppendOrder: записи внутри категории хранятся в порядке
// обнаружения.
func TestLedgerAppendOrder(t *testing.T) {
	l := NewLedger()
	l.Append(MissingClass, "cell A")
	l.Append(MissingClass, "cell B")
	l.Append(SemicolonSpacing, "line 1: x")

	lines := l.Lines(MissingClass)
	if len(lines) != 2 || lines[0] != "cell A" || lines[1] != "cell B" {
		t.Errorf("Unexpected category lines: %v", lines)
	}
	if l.Count(SemicolonSpacing) != 1 {
		t.Errorf("Expected 1 semicolon line, got %d", l.Count(SemicolonSpacing))
	}
	if l.Total() != 3 {
		t.Errorf("Expected total 3, got %d", l.Total())
	}
	if l.Empty() {
		t.Error("Expected a non-empty ledger")
	}
}

// TestLedgerMergeOrder: слияние детерминировано — чужие записи идут после
// своих, категория за категорией.
func TestLedgerMergeOrder(t *testing.T) {
	a := NewLedger()
	a.Append(MissingClass, "from a")
	b := NewLedger()
	b.Append(MissingClass, "from b")
	b.Append(UnknownLayer, "layer x")

	a.Merge(b)
	lines := a.Lines(MissingClass)
	if len(lines) != 2 || lines[0] != "from a" || lines[1] != "from b" {
		t.Errorf("Unexpected merge order: %v", lines)
	}
	if a.Count(UnknownLayer) != 1 {
		t.Error("Expected the other category to be merged too")
	}
	a.Merge(nil) // no-op
	if a.Total() != 3 {
		t.Errorf("Expected total 3 after nil merge, got %d", a.Total())
	}
}

// TestLedgerDumpRestore: Dump/Restore сохраняют содержимое и порядок.
func TestLedgerDumpRestore(t *testing.T) {
	l := NewLedger()
	l.Append(AreaMismatch, "cell A: LEF missing vs x.lib area 5")
	l.Append(MissingUse, "cell A pin P")
	l.Append(MissingUse, "cell A pin Q")

	restored := Restore(l.Dump())
	if restored.Total() != l.Total() {
		t.Fatalf("Expected total %d, got %d", l.Total(), restored.Total())
	}
	for _, c := range Categories() {
		want := l.Lines(c)
		got := restored.Lines(c)
		if len(want) != len(got) {
			t.Errorf("Category %s: expected %d lines, got %d", c, len(want), len(got))
			continue
		}
		for i := range want {
			if want[i] != got[i] {
				t.Errorf("Category %s line %d: expected %q, got %q", c, i, want[i], got[i])
			}
		}
	}
}

// TestRestoreForeignSchema: лишние категории чужой схемы отбрасываются.
func TestRestoreForeignSchema(t *testing.T) {
	data := make([][]string, int(numCategories)+4)
	data[0] = []string{"kept"}
	data[int(numCategories)+1] = []string{"dropped"}
	l := Restore(data)
	if l.Total() != 1 {
		t.Errorf("Expected only in-schema lines, got total %d", l.Total())
	}
}

func TestCategoryNames(t *testing.T) {
	for _, c := range Categories() {
		if c.Title() == "" || c.Title() == "unknown" {
			t.Errorf("Category %d has no title", c)
		}
		if c.String() == "" || c.String() == "unknown" {
			t.Errorf("Category %d has no name", c)
		}
	}
	if numCategories.String() != "unknown" {
		t.Error("Expected an out-of-range category to be unknown")
	}
}
