// Package liberty extracts cell and pin records from Liberty timing library
// text. It is not a Liberty grammar: a pre-scan collects line-number-tagged
// occurrences of cell starts, pin starts and the handful of properties of
// interest, and a bounded two-pointer merge associates them into records.
package liberty

import (
	"sort"
	"strings"
)

// CellProperties and PinProperties are the only property names the extractor
// looks at; everything else in the file is ignored.
var (
	CellProperties = []string{"area"}
	PinProperties  = []string{
		"direction",
		"pg_type",
		"voltage_name",
		"related_power_pin",
		"related_ground_pin",
		"clock",
	}
)

// File is the parsed view of one Liberty document.
type File struct {
	Path  string
	Cells []*Cell

	byName map[string]*Cell
}

// Cell возвращает ячейку по имени без учёта регистра, или nil.
func (f *File) Cell(name string) *Cell {
	return f.byName[strings.ToUpper(name)]
}

// CellNames returns the cell names sorted lexically.
func (f *File) CellNames() []string {
	names := make([]string, 0, len(f.Cells))
	for _, c := range f.Cells {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Cell is one cell ( NAME ) group with its properties of interest.
type Cell struct {
	Name string
	Line int
	// Props is sparse: only properties present in the source have keys.
	Props map[string]string
	Pins  []*Pin

	byName map[string]*Pin
}

// Area returns the area property value, "" when absent.
func (c *Cell) Area() string { return c.Props["area"] }

// Pin возвращает пин по имени без учёта регистра, или nil.
func (c *Cell) Pin(name string) *Pin {
	return c.byName[strings.ToUpper(name)]
}

// PinNames returns the pin names sorted lexically.
func (c *Cell) PinNames() []string {
	names := make([]string, 0, len(c.Pins))
	for _, p := range c.Pins {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Pin is one pin ( NAME ) or pg_pin ( NAME ) group.
type Pin struct {
	Name string
	Line int
	// Props is sparse: only properties present in the source have keys.
	Props map[string]string
}

// Clock reports the boolean clock property; absent defaults to false.
func (p *Pin) Clock() bool {
	return strings.EqualFold(p.Props["clock"], "true")
}
