package crosscheck

import (
	"strings"
	"testing"

	"lefcheck/internal/diag"
	"lefcheck/internal/lef"
	"lefcheck/internal/liberty"
	"lefcheck/internal/source"
)

func parseLEF(t *testing.T, text string) (*lef.Library, *lef.Context) {
	t.Helper()
	ctx := lef.NewContext(nil, nil)
	lib, err := lef.Parse(source.NewFile("test.lef", text), ctx)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return lib, ctx
}

func lefDoc(body string) string {
	return "PROPERTYDEFINITIONS\nEND PROPERTYDEFINITIONS\n" + body + "END LIBRARY\n"
}

const invCell = `MACRO INV_X1
  ORIGIN 0 0 ;
  CLASS CORE ;
  SIZE 10 BY 5 ;
  SYMMETRY X ;
  SITE core ;
  PIN A
    DIRECTION INPUT ;
    USE SIGNAL ;
  END A
  PIN ZN
    DIRECTION OUTPUT ;
    USE SIGNAL ;
  END ZN
END INV_X1
`

func matchingLib(path string) *liberty.File {
	return liberty.Extract(path, `
cell (INV_X1) {
  area : 50;
  pin (A) {
    direction : input;
  }
  pin (ZN) {
    direction : output;
  }
}
`)
}

// TestCheckClean: согласованная пара LEF/Liberty не даёт находок.
func TestCheckClean(t *testing.T) {
	lib, ctx := parseLEF(t, lefDoc(invCell))
	Check(lib, []*liberty.File{matchingLib("a.lib")}, ctx)
	if !ctx.Ledger.Empty() {
		for _, c := range diag.Categories() {
			for _, line := range ctx.Ledger.Lines(c) {
				t.Errorf("Unexpected finding [%s]: %s", c, line)
			}
		}
	}
}

// TestCheckNoLibraries: без Liberty сверка не запускается вообще.
func TestCheckNoLibraries(t *testing.T) {
	lib, ctx := parseLEF(t, lefDoc(invCell))
	Check(lib, nil, ctx)
	if !ctx.Ledger.Empty() {
		t.Error("Expected no findings without Liberty files")
	}
}

// TestAreaMismatch: SIZE 10 BY 5 против area 51 — расхождение с обеими
// сторонами в сообщении.
func TestAreaMismatch(t *testing.T) {
	lib, ctx := parseLEF(t, lefDoc(invCell))
	libs := []*liberty.File{liberty.Extract("bad.lib", `
cell (INV_X1) {
  area : 51;
  pin (A) { direction : input; }
  pin (ZN) { direction : output; }
}
`)}
	Check(lib, libs, ctx)
	lines := ctx.Ledger.Lines(diag.AreaMismatch)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 area mismatch, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "SIZE 10 BY 5") || !strings.Contains(lines[0], "area 51") {
		t.Errorf("Expected both areas in the finding, got %q", lines[0])
	}
}

// TestAreaMissingSide: отсутствие area в Liberty — тоже расхождение.
func TestAreaMissingSide(t *testing.T) {
	lib, ctx := parseLEF(t, lefDoc(invCell))
	libs := []*liberty.File{liberty.Extract("noarea.lib", `
cell (INV_X1) {
  pin (A) { direction : input; }
  pin (ZN) { direction : output; }
}
`)}
	Check(lib, libs, ctx)
	lines := ctx.Ledger.Lines(diag.AreaMismatch)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 area finding, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "missing") {
		t.Errorf("Expected the missing side to be named, got %q", lines[0])
	}
}

// TestDirectionMismatch: направления сравниваются без учёта регистра, в
// сообщении обе стороны в верхнем регистре.
func TestDirectionMismatch(t *testing.T) {
	lib, ctx := parseLEF(t, lefDoc(invCell))
	libs := []*liberty.File{liberty.Extract("dir.lib", `
cell (INV_X1) {
  area : 50;
  pin (A) {
    direction : output;
  }
  pin (ZN) {
    direction : output;
  }
}
`)}
	Check(lib, libs, ctx)
	lines := ctx.Ledger.Lines(diag.PinPropertyMismatch)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 direction mismatch, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "DIRECTION INPUT (LEF) vs OUTPUT") {
		t.Errorf("Expected upper-cased directions, got %q", lines[0])
	}
}

// TestClockChecks: clock=true требует USE CLOCK или SIGNAL, clock=false
// запрещает USE CLOCK.
func TestClockChecks(t *testing.T) {
	doc := lefDoc(`MACRO FF
  ORIGIN 0 0 ;
  CLASS CORE ;
  SIZE 2 BY 2 ;
  SYMMETRY X ;
  SITE core ;
  PIN CLK
    DIRECTION INPUT ;
    USE GROUND ;
  END CLK
  PIN D
    DIRECTION INPUT ;
    USE CLOCK ;
  END D
END FF
`)
	lib, ctx := parseLEF(t, doc)
	libs := []*liberty.File{liberty.Extract("ff.lib", `
cell (FF) {
  area : 4;
  pin (CLK) {
    direction : input;
    clock : true;
  }
  pin (D) {
    direction : input;
  }
}
`)}
	Check(lib, libs, ctx)
	lines := ctx.Ledger.Lines(diag.PinPropertyMismatch)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 clock findings, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "clock true") || !strings.Contains(lines[0], "USE GROUND") {
		t.Errorf("Unexpected first clock finding %q", lines[0])
	}
	if !strings.Contains(lines[1], "clock false") {
		t.Errorf("Unexpected second clock finding %q", lines[1])
	}
}

// TestForwardMissing: ячейки и пины, которых нет в Liberty, группируются по
// списку файлов.
func TestForwardMissing(t *testing.T) {
	lib, ctx := parseLEF(t, lefDoc(invCell))
	empty := liberty.Extract("empty.lib", "library (x) {\n}\n")
	partial := liberty.Extract("partial.lib", `
cell (INV_X1) {
  area : 50;
  pin (A) { direction : input; }
}
`)
	Check(lib, []*liberty.File{empty, partial}, ctx)

	cellLines := ctx.Ledger.Lines(diag.LibMissingCell)
	if len(cellLines) != 1 {
		t.Fatalf("Expected 1 grouped missing-cell finding, got %v", cellLines)
	}
	if !strings.Contains(cellLines[0], "empty.lib") || strings.Contains(cellLines[0], "partial.lib") {
		t.Errorf("Expected only empty.lib in the finding, got %q", cellLines[0])
	}
	pinLines := ctx.Ledger.Lines(diag.LibMissingPin)
	if len(pinLines) != 1 {
		t.Fatalf("Expected 1 missing-pin finding, got %v", pinLines)
	}
	if !strings.Contains(pinLines[0], "pin ZN") || !strings.Contains(pinLines[0], "partial.lib") {
		t.Errorf("Expected pin ZN missing from partial.lib, got %q", pinLines[0])
	}
}

// TestReverseMissing: обратная сторона — ячейки и пины Liberty, которых
// нет в LEF.
func TestReverseMissing(t *testing.T) {
	lib, ctx := parseLEF(t, lefDoc(invCell))
	libs := []*liberty.File{liberty.Extract("extra.lib", `
cell (INV_X1) {
  area : 50;
  pin (A) { direction : input; }
  pin (ZN) { direction : output; }
  pin (EXTRA) { direction : input; }
}
cell (GHOST) {
  area : 1;
}
`)}
	Check(lib, libs, ctx)

	if lines := ctx.Ledger.Lines(diag.LefMissingCell); len(lines) != 1 || !strings.Contains(lines[0], "GHOST") {
		t.Errorf("Expected GHOST to be reported, got %v", lines)
	}
	if lines := ctx.Ledger.Lines(diag.LefMissingPin); len(lines) != 1 || !strings.Contains(lines[0], "EXTRA") {
		t.Errorf("Expected pin EXTRA to be reported, got %v", lines)
	}
}

func TestParseSizeArea(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10 BY 5", 50, true},
		{"1.38 by 2.72", 3.7536, true},
		{"10 5", 0, false},
		{"10 BY x", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseSizeArea(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("parseSizeArea(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
