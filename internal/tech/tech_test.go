package tech

import (
	"fmt"
	"sync"
	"testing"
)

// TestParseTLEF проверяет построчный разбор технологического LEF: имена в
// порядке объявления, роли из TYPE, комментарии отбрасываются.
func TestParseTLEF(t *testing.T) {
	content := `
VERSION 5.7 ;
# comment line
LAYER li1
  TYPE ROUTING ;
END li1
LAYER mcon
  TYPE CUT ; # inline comment
END mcon
LAYER met1
  TYPE ROUTING ;
END met1
LAYER nwell
  TYPE MASTERSLICE ;
END nwell
`
	table := ParseTLEF(content)
	want := []string{"li1", "mcon", "met1", "nwell"}
	if len(table.Names) != len(want) {
		t.Fatalf("Expected %d layers, got %d: %v", len(want), len(table.Names), table.Names)
	}
	for i, name := range want {
		if table.Names[i] != name {
			t.Errorf("Expected layer %d to be %q, got %q", i, name, table.Names[i])
		}
	}
	if !table.IsRouting("li1") {
		t.Error("Expected li1 to be ROUTING")
	}
	if !table.IsCut("mcon") {
		t.Error("Expected mcon to be CUT")
	}
	if k, ok := table.Lookup("nwell"); ok {
		t.Errorf("Expected nwell to stay unclassified, got %v", k)
	}
}

// TestParseTF: имена из techLayers, роли из validLayers.
func TestParseTF(t *testing.T) {
	content := `
Technology {
}

techLayers(
  ( li1     67 )
  ( "mcon"  66 )
  ( met1    68 )
  ( via1    67 )
  ( met2    69 )
)

validLayers ( ( li1 drawing ) ( mcon drawing ) ( met1 drawing ) )
`
	table := ParseTF(content)
	want := []string{"li1", "mcon", "met1", "via1", "met2"}
	if len(table.Names) != len(want) {
		t.Fatalf("Expected %d layers, got %d: %v", len(want), len(table.Names), table.Names)
	}
	for i, name := range want {
		if table.Names[i] != name {
			t.Errorf("Expected layer %d to be %q, got %q", i, name, table.Names[i])
		}
	}
	if !table.IsCut("mcon") {
		t.Error("Expected mcon to be CUT")
	}
	if !table.IsRouting("met1") {
		t.Error("Expected met1 to be ROUTING")
	}
	// via1 не упомянут в validLayers: роль выводится по форме имени вторым
	// проходом.
	if !table.IsCut("via1") {
		t.Error("Expected via1 to be classified CUT by name shape")
	}
}

// TestLookupCaseInsensitive: классификация хранится под несколькими
// регистровыми вариантами, запрос нормализуется до первого токена.
func TestLookupCaseInsensitive(t *testing.T) {
	table := NewTable()
	table.Insert("Met1", Routing)

	for _, q := range []string{"Met1", "MET1", "met1", "  met1  0.17 0.17"} {
		if !table.IsRouting(q) {
			t.Errorf("Expected %q to resolve to ROUTING", q)
		}
		if table.IsCut(q) {
			t.Errorf("Expected %q not to be CUT", q)
		}
	}
}

// TestTableOverridesHeuristic: имя, явно помеченное в таблице, никогда не
// переосмысляется эвристикой, даже когда форма имени выглядит как via.
func TestTableOverridesHeuristic(t *testing.T) {
	table := NewTable()
	table.Insert("VIA1", Routing) // нарочно "неправильная" классификация

	if table.IsCut("via1") {
		t.Error("Expected the table entry to win over the name shape")
	}
	if !table.IsRouting("via1") {
		t.Error("Expected via1 to report the table classification")
	}
}

// TestFallbackWarnsOncePerName: предупреждение эвристики выдаётся один раз
// на каждое различное неизвестное имя.
func TestFallbackWarnsOncePerName(t *testing.T) {
	table := NewTable()
	var warnings []string
	table.Warnf = func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	table.IsCut("via9")
	table.IsCut("VIA9")
	table.IsRouting("via9")
	table.IsCut("met9")

	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings (one per distinct name), got %d: %v", len(warnings), warnings)
	}
}

// TestFallbackConcurrent: эвристику дёргают несколько горутин одновременно.
// Состояние warned защищено, и предупреждение на имя выдаётся ровно один раз.
func TestFallbackConcurrent(t *testing.T) {
	table := NewTable()
	var mu sync.Mutex
	var warnings int
	table.Warnf = func(format string, args ...any) {
		mu.Lock()
		warnings++
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				table.IsCut("via9")
				table.IsRouting("met9")
			}
		}()
	}
	wg.Wait()

	if warnings != 2 {
		t.Errorf("Expected 2 warnings (one per distinct name), got %d", warnings)
	}
}

// TestFallbackShapes перечисляет формы имён, которые эвристика относит к
// via/contact и metal/access слоям.
func TestFallbackShapes(t *testing.T) {
	table := NewTable()
	cuts := []string{"VIA1", "VI2", "V3", "CUT1", "CONT", "MCON", "CONTACT", "CO"}
	for _, name := range cuts {
		if !table.IsCut(name) {
			t.Errorf("Expected %q to match the cut shape", name)
		}
	}
	routings := []string{"MET1", "METAL2", "ME3", "M4", "LI1", "LI", "AP"}
	for _, name := range routings {
		if !table.IsRouting(name) {
			t.Errorf("Expected %q to match the routing shape", name)
		}
	}
	for _, name := range []string{"NWELL", "POLY", "PWELL"} {
		if table.IsCut(name) || table.IsRouting(name) {
			t.Errorf("Expected %q to match neither shape", name)
		}
	}
}

func TestLayerIndex(t *testing.T) {
	table := Default()
	if idx := table.LayerIndex("li1"); idx != 0 {
		t.Errorf("Expected li1 at index 0, got %d", idx)
	}
	if idx := table.LayerIndex("MET1"); idx != 2 {
		t.Errorf("Expected MET1 at index 2, got %d", idx)
	}
	if idx := table.LayerIndex("poly"); idx != -1 {
		t.Errorf("Expected poly to be unlisted, got %d", idx)
	}
	if !table.HasLayer("mcon 0.17") {
		t.Error("Expected the first token of the query to resolve")
	}
}

func TestKindString(t *testing.T) {
	if Cut.String() != "CUT" || Routing.String() != "ROUTING" {
		t.Errorf("Unexpected Kind strings: %s, %s", Cut, Routing)
	}
}
