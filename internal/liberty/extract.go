package liberty

import (
	"math"
	"regexp"
	"strings"
)

// entry — одна найденная при предварительном сканировании строка.
type entry struct {
	line  int // 1-based
	value string
}

// entryList is consumed front to back by the bounded merge.
type entryList struct {
	entries []entry
	idx     int
}

// advanceTo discards every entry whose line number is less than n.
func (l *entryList) advanceTo(n int) {
	for l.idx < len(l.entries) && l.entries[l.idx].line < n {
		l.idx++
	}
}

// takeBelow returns the next entry if its line number is strictly below the
// exclusive bound.
func (l *entryList) takeBelow(bound int) (entry, bool) {
	if l.idx < len(l.entries) && l.entries[l.idx].line < bound {
		return l.entries[l.idx], true
	}
	return entry{}, false
}

var (
	cellStartRe = regexp.MustCompile(`^\s*cell\s*\(\s*"?([^"()\s]+)"?\s*\)`)
	pinStartRe  = regexp.MustCompile(`^\s*(?:pin|pg_pin)\s*\(\s*"?([^"()\s]+)"?\s*\)`)
)

type prescanned struct {
	cellStarts entryList
	pinStarts  entryList
	cellProps  map[string]*entryList
	pinProps   map[string]*entryList
}

func propRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(name) + `\s*:\s*(.+)$`)
}

var (
	cellPropRes = buildPropRes(CellProperties)
	pinPropRes  = buildPropRes(PinProperties)
)

func buildPropRes(names []string) map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(names))
	for _, n := range names {
		m[n] = propRe(n)
	}
	return m
}

// cleanValue strips quote and semicolon characters and surrounding space.
func cleanValue(v string) string {
	v = strings.ReplaceAll(v, `"`, "")
	v = strings.ReplaceAll(v, ";", "")
	return strings.TrimSpace(v)
}

func prescan(lines []string) *prescanned {
	s := &prescanned{
		cellProps: make(map[string]*entryList, len(CellProperties)),
		pinProps:  make(map[string]*entryList, len(PinProperties)),
	}
	for _, n := range CellProperties {
		s.cellProps[n] = &entryList{}
	}
	for _, n := range PinProperties {
		s.pinProps[n] = &entryList{}
	}
	for i, line := range lines {
		no := i + 1
		if m := cellStartRe.FindStringSubmatch(line); m != nil {
			s.cellStarts.entries = append(s.cellStarts.entries, entry{no, m[1]})
			continue
		}
		if m := pinStartRe.FindStringSubmatch(line); m != nil {
			s.pinStarts.entries = append(s.pinStarts.entries, entry{no, m[1]})
			continue
		}
		for name, re := range cellPropRes {
			if m := re.FindStringSubmatch(line); m != nil {
				s.cellProps[name].entries = append(s.cellProps[name].entries, entry{no, cleanValue(m[1])})
			}
		}
		for name, re := range pinPropRes {
			if m := re.FindStringSubmatch(line); m != nil {
				s.pinProps[name].entries = append(s.pinProps[name].entries, entry{no, cleanValue(m[1])})
			}
		}
	}
	return s
}

// Extract builds the cell and pin records of one Liberty document.
//
// Каждая ячейка ограничена строкой старта следующей ячейки (эксклюзивно,
// "бесконечность" для последней); свойства и пины берутся слиянием двух
// указателей строго внутри этих границ.
func Extract(path, content string) *File {
	lines := strings.Split(content, "\n")
	s := prescan(lines)

	f := &File{Path: path, byName: make(map[string]*Cell)}
	starts := s.cellStarts.entries
	for i, cs := range starts {
		bound := math.MaxInt
		if i+1 < len(starts) {
			bound = starts[i+1].line
		}
		cell := &Cell{
			Name:   cs.value,
			Line:   cs.line,
			Props:  make(map[string]string),
			byName: make(map[string]*Pin),
		}
		for name, list := range s.cellProps {
			list.advanceTo(cs.line)
			if e, ok := list.takeBelow(bound); ok {
				cell.Props[name] = e.value
			}
		}

		s.pinStarts.advanceTo(cs.line)
		for {
			ps, ok := s.pinStarts.takeBelow(bound)
			if !ok {
				break
			}
			s.pinStarts.idx++
			pinBound := bound
			if next, ok := s.pinStarts.takeBelow(bound); ok && next.line < pinBound {
				pinBound = next.line
			}
			pin := &Pin{Name: ps.value, Line: ps.line, Props: make(map[string]string)}
			for name, list := range s.pinProps {
				list.advanceTo(ps.line)
				if e, ok := list.takeBelow(pinBound); ok {
					pin.Props[name] = e.value
				}
			}
			cell.Pins = append(cell.Pins, pin)
			cell.byName[strings.ToUpper(pin.Name)] = pin
		}

		f.Cells = append(f.Cells, cell)
		f.byName[strings.ToUpper(cell.Name)] = cell
	}
	return f
}
