package lef

import "strings"

// Property — одна "простая" строка свойства (ORIGIN, CLASS, SIZE ...),
// хранится как полуопрозрачный текст, помеченный ведущим ключевым словом.
type Property struct {
	Keyword string
	Text    string
	Line    int
}

// Library is the root of a parsed LEF document.
type Library struct {
	// Header holds the opaque lines before PROPERTYDEFINITIONS or the first
	// cell, semicolon fixes already applied.
	Header []string
	// PropertyDefinitions holds the opaque PROPERTYDEFINITIONS block
	// including its start and end lines; nil when the block is absent.
	PropertyDefinitions []string
	// EndLine is the terminating END LIBRARY line, or "" when missing.
	EndLine string

	cells map[string]*Cell
}

// Cell возвращает ячейку по имени (точное совпадение) или nil.
func (l *Library) Cell(name string) *Cell {
	return l.cells[name]
}

// CellNames returns cell names sorted lexically.
func (l *Library) CellNames() []string {
	return sortedKeys(l.cells)
}

// Cells returns the cells in lexical name order.
func (l *Library) Cells() []*Cell {
	names := l.CellNames()
	out := make([]*Cell, 0, len(names))
	for _, n := range names {
		out = append(out, l.cells[n])
	}
	return out
}

func (l *Library) addCell(c *Cell) {
	if l.cells == nil {
		l.cells = make(map[string]*Cell)
	}
	l.cells[c.Name] = c
}

// Cell is one MACRO block.
type Cell struct {
	Name string
	Line int

	// Simple properties keep the order they will be compared in; rendering
	// sorts them by the cell priority table.
	Simple []Property
	// Keyword holds PROPERTY ... lines, rendered after the simple ones in
	// their own stable order.
	Keyword []Property

	// Obs is the single optional obstruction block.
	Obs *LayerSet

	// pins is keyed by the upper-cased pin name: one case-insensitive map
	// instead of registering the same record under two case variants.
	pins map[string]*Pin
}

// Pin returns the pin by name under case-insensitive comparison, or nil.
func (c *Cell) Pin(name string) *Pin {
	return c.pins[strings.ToUpper(name)]
}

// PinNames returns the original pin names sorted lexically.
func (c *Cell) PinNames() []string {
	names := make([]string, 0, len(c.pins))
	for _, p := range c.pins {
		names = append(names, p.Name)
	}
	sortStrings(names)
	return names
}

// Pins returns the pins in lexical name order.
func (c *Cell) Pins() []*Pin {
	names := c.PinNames()
	out := make([]*Pin, 0, len(names))
	for _, n := range names {
		out = append(out, c.Pin(n))
	}
	return out
}

func (c *Cell) addPin(p *Pin) {
	if c.pins == nil {
		c.pins = make(map[string]*Pin)
	}
	c.pins[strings.ToUpper(p.Name)] = p
}

// SimpleValue returns the text after the keyword of the first simple
// property with the given keyword, or "" when absent.
func (c *Cell) SimpleValue(keyword string) string {
	return propertyValue(c.Simple, keyword)
}

// Pin is one PIN block inside a cell.
type Pin struct {
	Name string
	Line int

	Simple  []Property
	Keyword []Property

	// Ports holds the PORT geometry blocks in canonical order.
	Ports []*LayerSet
}

// SimpleValue returns the text after the keyword of the first simple
// property with the given keyword, or "" when absent.
func (p *Pin) SimpleValue(keyword string) string {
	return propertyValue(p.Simple, keyword)
}

func propertyValue(props []Property, keyword string) string {
	for _, pr := range props {
		if pr.Keyword == keyword {
			rest := strings.TrimSpace(strings.TrimPrefix(pr.Text, pr.Keyword))
			rest = strings.TrimSpace(strings.TrimSuffix(rest, ";"))
			return rest
		}
	}
	return ""
}

// LayerSet models both OBS and PORT bodies: a start/end marker pair around a
// set of named layers.
type LayerSet struct {
	StartText string
	EndText   string

	layers map[string]*Layer
}

// Layer returns the layer by exact name, or nil.
func (s *LayerSet) Layer(name string) *Layer {
	return s.layers[name]
}

// HasLayer reports whether the set contains the layer under
// case-insensitive comparison.
func (s *LayerSet) HasLayer(name string) bool {
	if _, ok := s.layers[name]; ok {
		return true
	}
	for n := range s.layers {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// LayerNames returns the layer names in unspecified order.
func (s *LayerSet) LayerNames() []string {
	return sortedKeys(s.layers)
}

func (s *LayerSet) addLayer(l *Layer) {
	if s.layers == nil {
		s.layers = make(map[string]*Layer)
	}
	s.layers[l.Name] = l
}

// Layer is one LAYER block: the coordinate statements on a named layer plus
// the source line each statement came from.
type Layer struct {
	Name      string
	StartText string

	// Coords are the normalized coordinate statements. SourceLines runs in
	// parallel with Coords; it is either nil or the same length.
	Coords      []string
	SourceLines []int
}
