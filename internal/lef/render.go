package lef

import "strings"

// Render превращает модель в канонический текст. Заголовок и блок
// PROPERTYDEFINITIONS выводятся дословно (с уже применёнными исправлениями
// точек с запятой), всё остальное — в каноническом порядке с фиксированными
// отступами.
func Render(lib *Library, ctx *Context) string {
	var b strings.Builder
	for _, line := range lib.Header {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, line := range lib.PropertyDefinitions {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, cell := range lib.Cells() {
		b.WriteByte('\n')
		renderCell(&b, cell, ctx)
	}
	b.WriteByte('\n')
	if lib.EndLine != "" {
		b.WriteString(lib.EndLine)
	} else {
		b.WriteString("END LIBRARY")
	}
	b.WriteByte('\n')
	return b.String()
}

func renderCell(b *strings.Builder, cell *Cell, ctx *Context) {
	b.WriteString("MACRO ")
	b.WriteString(cell.Name)
	b.WriteByte('\n')
	for _, prop := range cell.Simple {
		writeIndented(b, 2, prop.Text)
	}
	for _, prop := range cell.Keyword {
		writeIndented(b, 2, prop.Text)
	}
	for _, pin := range cell.Pins() {
		renderPin(b, pin, ctx)
	}
	if cell.Obs != nil {
		writeIndented(b, 2, cell.Obs.StartText)
		renderLayers(b, cell.Obs, ctx, 4)
		writeIndented(b, 2, "END")
	}
	b.WriteString("END ")
	b.WriteString(cell.Name)
	b.WriteByte('\n')
}

func renderPin(b *strings.Builder, pin *Pin, ctx *Context) {
	writeIndented(b, 2, "PIN "+pin.Name)
	for _, prop := range pin.Simple {
		writeIndented(b, 4, prop.Text)
	}
	for _, prop := range pin.Keyword {
		writeIndented(b, 4, prop.Text)
	}
	for _, port := range pin.Ports {
		writeIndented(b, 4, port.StartText)
		renderLayers(b, port, ctx, 6)
		writeIndented(b, 4, "END")
	}
	writeIndented(b, 2, "END "+pin.Name)
}

func renderLayers(b *strings.Builder, set *LayerSet, ctx *Context, indent int) {
	for _, name := range sortedLayerNames(set, ctx) {
		layer := set.Layer(name)
		writeIndented(b, indent, layer.StartText)
		for _, coord := range layer.Coords {
			writeIndented(b, indent+2, coord)
		}
	}
}

func writeIndented(b *strings.Builder, indent int, text string) {
	for i := 0; i < indent; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(text)
	b.WriteByte('\n')
}
