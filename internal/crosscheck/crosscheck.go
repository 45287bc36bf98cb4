// Package crosscheck reconciles a parsed LEF library against parsed Liberty
// records: cell and pin existence in both directions, area, direction and
// clock/use classification.
package crosscheck

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lefcheck/internal/diag"
	"lefcheck/internal/lef"
	"lefcheck/internal/liberty"
)

const areaEps = 1e-6

// Check запускает обе стороны сверки. Ничего не возвращает: все находки
// попадают в ctx.Ledger, сверка никогда не фатальна.
func Check(lib *lef.Library, libs []*liberty.File, ctx *lef.Context) {
	if len(libs) == 0 {
		return
	}
	forward(lib, libs, ctx)
	reverse(lib, libs, ctx)
}

// forward walks LEF cells and pins and checks them against every Liberty
// file.
func forward(lib *lef.Library, libs []*liberty.File, ctx *lef.Context) {
	for _, cell := range lib.Cells() {
		var cellMissingFrom []string
		pinMissingFrom := map[string][]string{}

		for _, lf := range libs {
			lc := lf.Cell(cell.Name)
			if lc == nil {
				cellMissingFrom = append(cellMissingFrom, lf.Path)
				continue
			}
			checkArea(cell, lc, lf.Path, ctx)
			for _, pin := range cell.Pins() {
				lp := lc.Pin(pin.Name)
				if lp == nil {
					pinMissingFrom[pin.Name] = append(pinMissingFrom[pin.Name], lf.Path)
					continue
				}
				checkDirection(cell.Name, pin, lp, lf.Path, ctx)
				checkClock(cell.Name, pin, lp, lf.Path, ctx)
			}
		}

		if len(cellMissingFrom) > 0 {
			ctx.Ledger.Append(diag.LibMissingCell,
				fmt.Sprintf("cell %s: missing from %s", cell.Name, strings.Join(cellMissingFrom, ", ")))
		}
		for _, pinName := range cell.PinNames() {
			if files := pinMissingFrom[pinName]; len(files) > 0 {
				ctx.Ledger.Append(diag.LibMissingPin,
					fmt.Sprintf("cell %s pin %s: missing from %s", cell.Name, pinName, strings.Join(files, ", ")))
			}
		}
	}
}

// checkArea compares LEF SIZE width x height with the Liberty area value.
// Отсутствие любой из сторон — тоже расхождение.
func checkArea(cell *lef.Cell, lc *liberty.Cell, libPath string, ctx *lef.Context) {
	sizeText := cell.SimpleValue("SIZE")
	areaText := lc.Area()
	lefArea, lefOK := parseSizeArea(sizeText)
	libArea, libErr := strconv.ParseFloat(areaText, 64)
	libOK := areaText != "" && libErr == nil

	if lefOK && libOK && math.Abs(lefArea-libArea) <= areaEps {
		return
	}
	lefDesc := "missing"
	if lefOK {
		lefDesc = fmt.Sprintf("SIZE %s (area %s)", sizeText, trimFloat(lefArea))
	}
	libDesc := "missing"
	if libOK {
		libDesc = fmt.Sprintf("area %s", areaText)
	}
	ctx.Ledger.Append(diag.AreaMismatch,
		fmt.Sprintf("cell %s: LEF %s vs %s %s", cell.Name, lefDesc, libPath, libDesc))
}

// parseSizeArea parses a "W BY H" SIZE value into W*H.
func parseSizeArea(size string) (float64, bool) {
	fields := strings.Fields(size)
	if len(fields) != 3 || !strings.EqualFold(fields[1], "BY") {
		return 0, false
	}
	w, errW := strconv.ParseFloat(fields[0], 64)
	h, errH := strconv.ParseFloat(fields[2], 64)
	if errW != nil || errH != nil {
		return 0, false
	}
	return w * h, true
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// checkDirection requires exact case-insensitive equality when both sides
// define a direction.
func checkDirection(cellName string, pin *lef.Pin, lp *liberty.Pin, libPath string, ctx *lef.Context) {
	lefDir := strings.TrimSpace(pin.SimpleValue("DIRECTION"))
	libDir := strings.TrimSpace(lp.Props["direction"])
	if lefDir == "" || libDir == "" {
		return
	}
	if strings.EqualFold(lefDir, libDir) {
		return
	}
	ctx.Ledger.Append(diag.PinPropertyMismatch,
		fmt.Sprintf("cell %s pin %s: DIRECTION %s (LEF) vs %s (%s)",
			cellName, pin.Name, strings.ToUpper(lefDir), strings.ToUpper(libDir), libPath))
}

// checkClock: clock=true requires USE CLOCK or SIGNAL, clock=false forbids
// USE CLOCK.
func checkClock(cellName string, pin *lef.Pin, lp *liberty.Pin, libPath string, ctx *lef.Context) {
	use := strings.ToUpper(strings.TrimSpace(pin.SimpleValue("USE")))
	if lp.Clock() {
		if use == "CLOCK" || use == "SIGNAL" {
			return
		}
		ctx.Ledger.Append(diag.PinPropertyMismatch,
			fmt.Sprintf("cell %s pin %s: clock true (%s) vs USE %s (LEF)", cellName, pin.Name, libPath, use))
		return
	}
	if use == "CLOCK" {
		ctx.Ledger.Append(diag.PinPropertyMismatch,
			fmt.Sprintf("cell %s pin %s: clock false (%s) vs USE CLOCK (LEF)", cellName, pin.Name, libPath))
	}
}

// reverse records Liberty cells and pins that the LEF document does not
// have.
func reverse(lib *lef.Library, libs []*liberty.File, ctx *lef.Context) {
	lefCells := map[string]*lef.Cell{}
	for _, cell := range lib.Cells() {
		lefCells[strings.ToUpper(cell.Name)] = cell
	}
	for _, lf := range libs {
		for _, name := range lf.CellNames() {
			cell, ok := lefCells[strings.ToUpper(name)]
			if !ok {
				ctx.Ledger.Append(diag.LefMissingCell,
					fmt.Sprintf("cell %s: in %s but not in the LEF document", name, lf.Path))
				continue
			}
			lc := lf.Cell(name)
			for _, pinName := range lc.PinNames() {
				if cell.Pin(pinName) == nil {
					ctx.Ledger.Append(diag.LefMissingPin,
						fmt.Sprintf("cell %s pin %s: in %s but not in the LEF document", name, pinName, lf.Path))
				}
			}
		}
	}
}
