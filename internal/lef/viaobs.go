package lef

import (
	"fmt"

	"lefcheck/internal/diag"
)

// CheckViaObs — пост-проход по всей библиотеке: каждое попадание
// CUT-слоя в геометрию PORT должно быть закрыто записью того же слоя в OBS.
// Проверка глобальная, а не по-ячеечная: таблица слоёв должна быть полностью
// загружена до неё.
func CheckViaObs(lib *Library, ctx *Context) {
	for _, cell := range lib.Cells() {
		checkCellViaObs(cell, ctx)
	}
}

type cutUse struct {
	pin   string
	layer string
	count int
}

func checkCellViaObs(cell *Cell, ctx *Context) {
	var uses []cutUse
	for _, pin := range cell.Pins() {
		perLayer := map[string]int{}
		var order []string
		for _, port := range pin.Ports {
			for _, name := range port.LayerNames() {
				if !ctx.Tech.IsCut(name) {
					continue
				}
				if _, ok := perLayer[name]; !ok {
					order = append(order, name)
				}
				perLayer[name] += len(port.Layer(name).Coords)
			}
		}
		for _, name := range order {
			uses = append(uses, cutUse{pin: pin.Name, layer: name, count: perLayer[name]})
		}
	}
	if len(uses) == 0 {
		return
	}

	for _, use := range uses {
		if cell.Obs != nil && cell.Obs.HasLayer(use.layer) {
			continue
		}
		ctx.Ledger.Append(diag.MissingViaObs,
			fmt.Sprintf("cell %s: pin %s uses cut layer %s in PORT geometry %d time(s) with no OBS entry",
				cell.Name, use.pin, use.layer, use.count))
	}
}
