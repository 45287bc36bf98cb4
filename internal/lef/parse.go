package lef

import (
	"fmt"
	"strconv"
	"strings"

	"lefcheck/internal/diag"
	"lefcheck/internal/source"
)

// Parse строит модель документа поверх строчного курсора. Восстановимые
// нарушения попадают в ctx.Ledger; фатальным является только текст, который
// не распознаётся ни одной продукцией там, где продукция обязана быть, —
// тогда разбор всего документа прерывается.
func Parse(f *source.File, ctx *Context) (*Library, error) {
	p := &parser{
		cur: source.NewCursor(f),
		ctx: ctx,
	}
	return p.parseLibrary()
}

type parser struct {
	cur *source.Cursor
	ctx *Context
}

func (p *parser) fatalf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", p.cur.Path(), p.cur.LineNo(), fmt.Sprintf(format, args...))
}

// fixSemicolon rewrites a line whose content touches the terminal semicolon
// and logs the original under the semicolon category. The check runs at
// every nesting level. Строка без нарушения возвращается как есть, вместе
// с хвостовыми пробелами: заголовок и PROPERTYDEFINITIONS сохраняются
// дословно.
func (p *parser) fixSemicolon(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	if n := len(trimmed); n >= 2 && trimmed[n-1] == ';' {
		prev := trimmed[n-2]
		if prev != ' ' && prev != '\t' {
			p.ctx.Ledger.Append(diag.SemicolonSpacing,
				fmt.Sprintf("line %d: %s", p.cur.LineNo(), strings.TrimSpace(line)))
			return trimmed[:n-1] + " ;"
		}
	}
	return line
}

func isCellStart(fields []string) bool {
	return len(fields) >= 2 && fields[0] == "MACRO"
}

func isEndLibrary(fields []string) bool {
	return len(fields) >= 2 && fields[0] == "END" && fields[1] == "LIBRARY"
}

func (p *parser) parseLibrary() (*Library, error) {
	lib := &Library{}

	// Заголовок: всё до PROPERTYDEFINITIONS или первой ячейки, как есть.
	sawPropDefs := false
	for {
		line, ok := p.cur.Current()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if isCellStart(fields) || isEndLibrary(fields) {
			break
		}
		if len(fields) > 0 && fields[0] == "PROPERTYDEFINITIONS" {
			sawPropDefs = true
			p.parsePropertyDefinitions(lib)
			break
		}
		lib.Header = append(lib.Header, p.fixSemicolon(line))
		p.cur.Advance()
	}
	if !sawPropDefs {
		p.ctx.Ledger.Append(diag.MissingPropertyDefinitions,
			"no PROPERTYDEFINITIONS block before the first cell")
	}

	for {
		line, ok := p.cur.Current()
		if !ok {
			p.ctx.Ledger.Append(diag.MissingEndLibrary, "END LIBRARY not found")
			break
		}
		fields := strings.Fields(line)
		switch {
		case isEndLibrary(fields):
			lib.EndLine = strings.TrimSpace(line)
			p.cur.Advance()
		case isCellStart(fields):
			cell, err := p.parseCell()
			if err != nil {
				return nil, err
			}
			lib.addCell(cell)
			continue
		default:
			return nil, p.fatalf("unexpected line %q where a cell start was expected", strings.TrimSpace(line))
		}
		break
	}
	return lib, nil
}

func (p *parser) parsePropertyDefinitions(lib *Library) {
	for {
		line, ok := p.cur.Current()
		if !ok {
			return
		}
		fixed := p.fixSemicolon(line)
		lib.PropertyDefinitions = append(lib.PropertyDefinitions, fixed)
		fields := strings.Fields(line)
		p.cur.Advance()
		if len(fields) >= 2 && fields[0] == "END" && fields[1] == "PROPERTYDEFINITIONS" {
			return
		}
	}
}

func (p *parser) parseCell() (*Cell, error) {
	startLine, _ := p.cur.Current()
	fields := strings.Fields(startLine)
	cell := &Cell{Name: fields[1], Line: p.cur.LineNo()}
	seen := map[string]bool{}
	p.cur.Advance()

	closed := false
loop:
	for {
		line, ok := p.cur.Current()
		if !ok {
			break
		}
		tokens := strings.Fields(line)
		switch tokens[0] {
		case "END":
			if len(tokens) < 2 || tokens[1] != cell.Name {
				p.ctx.Ledger.Append(diag.MangledCellEnd,
					fmt.Sprintf("line %d: cell %s ends with %q", p.cur.LineNo(), cell.Name, strings.TrimSpace(line)))
			}
			closed = true
			p.cur.Advance()
			break loop
		case "MACRO":
			// Сосед начался без END текущей ячейки.
			break loop
		case "PIN":
			pin, err := p.parsePin(cell.Name)
			if err != nil {
				return nil, err
			}
			cell.addPin(pin)
		case "OBS":
			set, err := p.parseLayerSet()
			if err != nil {
				return nil, err
			}
			cell.Obs = set
		case "PROPERTY":
			cell.Keyword = append(cell.Keyword, Property{
				Keyword: "PROPERTY",
				Text:    strings.TrimSpace(p.fixSemicolon(line)),
				Line:    p.cur.LineNo(),
			})
			p.cur.Advance()
		default:
			p.cellProperty(cell, line, tokens, seen)
			p.cur.Advance()
		}
	}
	if !closed {
		p.ctx.Ledger.Append(diag.MissingCellEnd, fmt.Sprintf("cell %s has no END line", cell.Name))
	}

	for _, check := range []struct {
		keyword string
		cat     diag.Category
	}{
		{"ORIGIN", diag.MissingOrigin},
		{"CLASS", diag.MissingClass},
		{"SIZE", diag.MissingSize},
		{"SYMMETRY", diag.MissingSymmetry},
		{"SITE", diag.MissingSite},
	} {
		if !seen[check.keyword] {
			p.ctx.Ledger.Append(check.cat, fmt.Sprintf("cell %s", cell.Name))
		}
	}
	return cell, nil
}

// cellProperty consumes one simple property line of a cell.
func (p *parser) cellProperty(cell *Cell, line string, tokens []string, seen map[string]bool) {
	keyword := tokens[0]
	fixed := strings.TrimSpace(p.fixSemicolon(line))
	if !knownKey(CellPropertyOrder, keyword) {
		p.ctx.Ledger.Append(diag.UnknownCellProperty,
			fmt.Sprintf("line %d: cell %s: %s", p.cur.LineNo(), cell.Name, fixed))
	}
	seen[keyword] = true

	value := propertyValueOf(fixed, keyword)
	switch keyword {
	case "ORIGIN":
		if !isZeroPair(tokens[1:]) {
			p.ctx.Ledger.Append(diag.StrangeOrigin,
				fmt.Sprintf("line %d: cell %s: ORIGIN %s", p.cur.LineNo(), cell.Name, value))
		}
	case "FOREIGN":
		// FOREIGN <name> [<x> <y>]: ненулевое смещение подозрительно, но не
		// исправляется.
		if len(tokens) >= 4 && !isZeroPair(tokens[2:4]) {
			p.ctx.Ledger.Append(diag.StrangeOrigin,
				fmt.Sprintf("line %d: cell %s: FOREIGN offset %s %s", p.cur.LineNo(), cell.Name, tokens[2], tokens[3]))
		}
	case "CLASS", "SYMMETRY", "SITE":
		p.ctx.Stats.Record(keyword, value)
	}
	cell.Simple = append(cell.Simple, Property{Keyword: keyword, Text: fixed, Line: p.cur.LineNo()})
}

func propertyValueOf(fixed, keyword string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(fixed, keyword))
	return strings.TrimSpace(strings.TrimSuffix(rest, ";"))
}

// isZeroPair reports whether the first two tokens are both numerically zero.
// ";" and missing tokens do not count as zero.
func isZeroPair(tokens []string) bool {
	nums := make([]float64, 0, 2)
	for _, tok := range tokens {
		if tok == ";" {
			break
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return false
		}
		nums = append(nums, v)
		if len(nums) == 2 {
			break
		}
	}
	if len(nums) != 2 {
		return false
	}
	return nums[0] == 0 && nums[1] == 0
}

func (p *parser) parsePin(cellName string) (*Pin, error) {
	startLine, _ := p.cur.Current()
	fields := strings.Fields(startLine)
	pin := &Pin{Name: fields[1], Line: p.cur.LineNo()}
	seen := map[string]bool{}
	p.cur.Advance()

loop:
	for {
		line, ok := p.cur.Current()
		if !ok {
			break
		}
		tokens := strings.Fields(line)
		switch tokens[0] {
		case "END":
			p.cur.Advance()
			break loop
		case "PORT":
			set, err := p.parseLayerSet()
			if err != nil {
				return nil, err
			}
			pin.Ports = append(pin.Ports, set)
		case "PROPERTY":
			pin.Keyword = append(pin.Keyword, Property{
				Keyword: "PROPERTY",
				Text:    strings.TrimSpace(p.fixSemicolon(line)),
				Line:    p.cur.LineNo(),
			})
			p.cur.Advance()
		default:
			keyword := tokens[0]
			fixed := strings.TrimSpace(p.fixSemicolon(line))
			if !knownKey(PinPropertyOrder, keyword) {
				p.ctx.Ledger.Append(diag.UnknownPinProperty,
					fmt.Sprintf("line %d: cell %s pin %s: %s", p.cur.LineNo(), cellName, pin.Name, fixed))
			}
			seen[keyword] = true
			if keyword == "DIRECTION" || keyword == "USE" {
				p.ctx.Stats.Record(keyword, propertyValueOf(fixed, keyword))
			}
			pin.Simple = append(pin.Simple, Property{Keyword: keyword, Text: fixed, Line: p.cur.LineNo()})
			p.cur.Advance()
		}
	}

	if !seen["DIRECTION"] {
		p.ctx.Ledger.Append(diag.MissingDirection, fmt.Sprintf("cell %s pin %s", cellName, pin.Name))
	}
	if !seen["USE"] {
		p.ctx.Ledger.Append(diag.MissingUse, fmt.Sprintf("cell %s pin %s", cellName, pin.Name))
	}
	return pin, nil
}

// parseLayerSet reads an OBS or PORT body: consecutive LAYER blocks followed
// by the closing END of the set.
func (p *parser) parseLayerSet() (*LayerSet, error) {
	startLine, _ := p.cur.Current()
	set := &LayerSet{StartText: strings.TrimSpace(startLine)}
	p.cur.Advance()

	for {
		line, ok := p.cur.Current()
		if !ok {
			return set, nil
		}
		tokens := strings.Fields(line)
		switch tokens[0] {
		case "LAYER":
			layer, err := p.parseLayer()
			if err != nil {
				return nil, err
			}
			set.addLayer(layer)
		case "END":
			set.EndText = "END"
			p.cur.Advance()
			return set, nil
		default:
			return nil, p.fatalf("unexpected line %q inside %s", strings.TrimSpace(line), set.StartText)
		}
	}
}

func (p *parser) parseLayer() (*Layer, error) {
	startLine, _ := p.cur.Current()
	tokens := strings.Fields(startLine)
	if len(tokens) < 2 {
		return nil, p.fatalf("LAYER line without a name")
	}
	name := tokens[1]
	if !p.ctx.Tech.HasLayer(name) {
		p.ctx.Ledger.Append(diag.UnknownLayer,
			fmt.Sprintf("line %d: layer %s is not in the technology layer list", p.cur.LineNo(), name))
	}
	layer := &Layer{
		Name:      name,
		StartText: strings.TrimSpace(p.fixSemicolon(startLine)),
	}
	p.cur.Advance()

	for {
		line, ok := p.cur.Current()
		if !ok {
			return layer, nil
		}
		tokens := strings.Fields(line)
		if tokens[0] == "LAYER" || tokens[0] == "END" {
			return layer, nil
		}
		fixed := strings.TrimSpace(p.fixSemicolon(line))
		layer.Coords = append(layer.Coords, normalizeCoord(fixed))
		layer.SourceLines = append(layer.SourceLines, p.cur.LineNo())
		p.cur.Advance()
	}
}

// normalizeCoord reformats every numeric field to fixed 3-decimal precision.
// Поля с большей точностью в исходнике не трогаем.
func normalizeCoord(line string) string {
	fields := strings.Fields(line)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		if decimalsOf(f) > 3 {
			continue
		}
		fields[i] = strconv.FormatFloat(v, 'f', 3, 64)
	}
	return strings.Join(fields, " ")
}

func decimalsOf(tok string) int {
	idx := strings.IndexByte(tok, '.')
	if idx < 0 {
		return 0
	}
	return len(tok) - idx - 1
}
