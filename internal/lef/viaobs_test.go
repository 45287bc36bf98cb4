package lef

import (
	"strings"
	"testing"

	"lefcheck/internal/diag"
)

// TestViaObsMissing: CUT-слой в геометрии PORT без записи в OBS даёт одну
// находку на пару (пин, слой) с суммарным числом вхождений.
func TestViaObsMissing(t *testing.T) {
	doc := `PROPERTYDEFINITIONS
END PROPERTYDEFINITIONS
MACRO A
  ORIGIN 0 0 ;
  CLASS CORE ;
  SIZE 1 BY 2 ;
  SYMMETRY X ;
  SITE core ;
  PIN P
    DIRECTION INPUT ;
    USE SIGNAL ;
    PORT
      LAYER mcon ;
        RECT 0 0 1 1 ;
        RECT 2 0 3 1 ;
    END
    PORT
      LAYER mcon ;
        RECT 4 0 5 1 ;
    END
  END P
END A
END LIBRARY
`
	lib, ctx := parseText(t, doc)
	CheckViaObs(lib, ctx)

	lines := ctx.Ledger.Lines(diag.MissingViaObs)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 grouped finding, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "pin P") || !strings.Contains(lines[0], "mcon") {
		t.Errorf("Expected pin and layer in the finding, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "3 time(s)") {
		t.Errorf("Expected the statement count across ports, got %q", lines[0])
	}
}

// TestViaObsCovered: запись того же слоя в OBS закрывает находку.
func TestViaObsCovered(t *testing.T) {
	doc := `PROPERTYDEFINITIONS
END PROPERTYDEFINITIONS
MACRO A
  ORIGIN 0 0 ;
  CLASS CORE ;
  SIZE 1 BY 2 ;
  SYMMETRY X ;
  SITE core ;
  PIN P
    DIRECTION INPUT ;
    USE SIGNAL ;
    PORT
      LAYER mcon ;
        RECT 0 0 1 1 ;
    END
  END P
  OBS
    LAYER mcon ;
      RECT 0 0 1 1 ;
  END
END A
END LIBRARY
`
	lib, ctx := parseText(t, doc)
	CheckViaObs(lib, ctx)
	if n := ctx.Ledger.Count(diag.MissingViaObs); n != 0 {
		t.Errorf("Expected no findings when OBS covers the layer, got %v", ctx.Ledger.Lines(diag.MissingViaObs))
	}
}

// TestViaObsIgnoresRoutingLayers: металлические слои не требуют OBS.
func TestViaObsIgnoresRoutingLayers(t *testing.T) {
	doc := `PROPERTYDEFINITIONS
END PROPERTYDEFINITIONS
MACRO A
  ORIGIN 0 0 ;
  CLASS CORE ;
  SIZE 1 BY 2 ;
  SYMMETRY X ;
  SITE core ;
  PIN P
    DIRECTION INPUT ;
    USE SIGNAL ;
    PORT
      LAYER li1 ;
        RECT 0 0 1 1 ;
      LAYER met1 ;
        RECT 0 0 1 1 ;
    END
  END P
END A
END LIBRARY
`
	lib, ctx := parseText(t, doc)
	CheckViaObs(lib, ctx)
	if n := ctx.Ledger.Count(diag.MissingViaObs); n != 0 {
		t.Errorf("Expected no findings for routing layers, got %v", ctx.Ledger.Lines(diag.MissingViaObs))
	}
}
