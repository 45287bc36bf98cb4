package tech

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Шаблоны имён для эвристической классификации. Используются только когда
// имени нет в таблице вообще.
var (
	cutShape     = regexp.MustCompile(`^(?:VI\d+|VIA\d+|V\d+|CUT\d+|CONT|MCON|CONTACT|CO)$`)
	routingShape = regexp.MustCompile(`^(?:ME\d+|MET\d+|METAL\d+|M\d+|LI\d*|AP\d*)$`)
)

// Table хранит порядок слоёв и классификацию имя → Kind. Таблица строится
// один раз до разбора LEF и после этого только читается; состояние прогона
// (run context) владеет ею явно, глобальных переменных нет.
type Table struct {
	// Names is the canonical layer sort order, as listed by the technology
	// file (or the built-in default).
	Names []string

	kinds map[string]Kind

	// Классификация после загрузки только читается, но warned пишется при
	// каждом первом попадании в эвристику. Мьютекс делает IsCut/IsRouting
	// безопасными при параллельной обработке файлов.
	warnMu sync.Mutex
	warned map[string]bool

	// Warnf, if set, receives a warning the first time the heuristic
	// fallback is consulted for a distinct unknown name.
	Warnf func(format string, args ...any)
}

// NewTable returns an empty classification table.
func NewTable() *Table {
	return &Table{
		kinds:  make(map[string]Kind),
		warned: make(map[string]bool),
	}
}

// Insert records name under its exact, upper and lower case variants.
// The first classification for a name wins; later inserts do not override.
func (t *Table) Insert(name string, k Kind) {
	for _, key := range []string{name, strings.ToUpper(name), strings.ToLower(name)} {
		if _, ok := t.kinds[key]; !ok {
			t.kinds[key] = k
		}
	}
}

// Lookup consults the table under the exact, upper and lower case variants
// of the normalized name.
func (t *Table) Lookup(name string) (Kind, bool) {
	n := Normalize(name)
	for _, key := range []string{n, strings.ToUpper(n), strings.ToLower(n)} {
		if k, ok := t.kinds[key]; ok {
			return k, true
		}
	}
	return 0, false
}

// Len returns the number of distinct classified keys.
func (t *Table) Len() int { return len(t.kinds) }

// Normalize trims the query and keeps the first whitespace-delimited token.
func Normalize(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IsCut reports whether the layer is a via/contact layer. Таблица
// авторитетна: если имя в ней есть (хоть в какой классификации), эвристика
// не применяется — имя, явно помеченное ROUTING, никогда не будет
// переосмыслено как CUT.
func (t *Table) IsCut(name string) bool {
	if k, ok := t.Lookup(name); ok {
		return k == Cut
	}
	return t.fallback(name, cutShape)
}

// IsRouting reports whether the layer is a metal/access layer.
func (t *Table) IsRouting(name string) bool {
	if k, ok := t.Lookup(name); ok {
		return k == Routing
	}
	return t.fallback(name, routingShape)
}

func (t *Table) fallback(name string, shape *regexp.Regexp) bool {
	n := strings.ToUpper(Normalize(name))
	if n == "" {
		return false
	}
	t.warnMu.Lock()
	first := !t.warned[n]
	if first {
		t.warned[n] = true
	}
	t.warnMu.Unlock()
	if first && t.Warnf != nil {
		t.Warnf("layer %q is not in the technology table, falling back to name patterns", Normalize(name))
	}
	return shape.MatchString(n)
}

// HasLayer reports whether name appears in the canonical layer order,
// compared case-insensitively.
func (t *Table) HasLayer(name string) bool {
	n := Normalize(name)
	for _, known := range t.Names {
		if strings.EqualFold(known, n) {
			return true
		}
	}
	return false
}

// LayerIndex returns the position of name in the canonical layer order, or
// -1 when the name is not listed.
func (t *Table) LayerIndex(name string) int {
	n := Normalize(name)
	for i, known := range t.Names {
		if strings.EqualFold(known, n) {
			return i
		}
	}
	return -1
}

// Load parses a technology file by extension: .tf is the Synopsys-style
// variant, anything else is treated as a technology LEF. An unclassifiable
// file degrades to an empty table rather than failing.
func Load(path, content string) *Table {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tf":
		return ParseTF(content)
	default:
		return ParseTLEF(content)
	}
}

// Default returns the built-in layer table used when no technology file is
// available.
func Default() *Table {
	t := NewTable()
	stack := []struct {
		name string
		kind Kind
	}{
		{"LI1", Routing},
		{"MCON", Cut},
		{"MET1", Routing},
		{"VIA1", Cut},
		{"MET2", Routing},
		{"VIA2", Cut},
		{"MET3", Routing},
		{"VIA3", Cut},
		{"MET4", Routing},
		{"VIA4", Cut},
		{"MET5", Routing},
		{"AP", Routing},
	}
	for _, l := range stack {
		t.Names = append(t.Names, l.name)
		t.Insert(l.name, l.kind)
	}
	return t
}
