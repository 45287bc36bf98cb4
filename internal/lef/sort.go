package lef

import (
	"sort"
	"strconv"
	"strings"

	"lefcheck/internal/tech"
)

// priorityLess сравнивает два ключа по позиции в списке известных ключей.
// Перечисленный ключ всегда раньше неперечисленного; два неперечисленных
// разрешает tie.
func priorityLess(list []string, a, b string, tie func() bool) bool {
	ia, ib := indexOf(list, a), indexOf(list, b)
	switch {
	case ia >= 0 && ib >= 0:
		if ia != ib {
			return ia < ib
		}
		return false
	case ia >= 0:
		return true
	case ib >= 0:
		return false
	default:
		return tie()
	}
}

func layerLess(t *tech.Table, a, b string) bool {
	ia, ib := t.LayerIndex(a), t.LayerIndex(b)
	switch {
	case ia >= 0 && ib >= 0:
		if ia != ib {
			return ia < ib
		}
		return false
	case ia >= 0:
		return true
	case ib >= 0:
		return false
	default:
		return a < b
	}
}

// CompareCoords задаёт тотальный порядок координатных операторов: сначала
// лексически по ведущему ключевому слову, затем каждое следующее поле как
// число с плавающей точкой, до первого различия.
func CompareCoords(a, b string) int {
	fa, fb := strings.Fields(a), strings.Fields(b)
	if len(fa) == 0 || len(fb) == 0 {
		return len(fa) - len(fb)
	}
	if fa[0] != fb[0] {
		if fa[0] < fb[0] {
			return -1
		}
		return 1
	}
	n := min(len(fa), len(fb))
	for i := 1; i < n; i++ {
		va, errA := strconv.ParseFloat(fa[i], 64)
		vb, errB := strconv.ParseFloat(fb[i], 64)
		if errA != nil || errB != nil {
			if fa[i] != fb[i] {
				if fa[i] < fb[i] {
					return -1
				}
				return 1
			}
			continue
		}
		if va != vb {
			if va < vb {
				return -1
			}
			return 1
		}
	}
	return len(fa) - len(fb)
}

// CompareLayers reuses the coordinate order: first by statement count, then
// element-wise.
func CompareLayers(a, b *Layer) int {
	if d := len(a.Coords) - len(b.Coords); d != 0 {
		return d
	}
	for i := range a.Coords {
		if d := CompareCoords(a.Coords[i], b.Coords[i]); d != 0 {
			return d
		}
	}
	return 0
}

// CompareLayerSets compares two OBS/PORT bodies: sorted key sets first, then
// the layers themselves in key order.
func CompareLayerSets(a, b *LayerSet) int {
	ka, kb := a.LayerNames(), b.LayerNames()
	if d := len(ka) - len(kb); d != 0 {
		return d
	}
	for i := range ka {
		if ka[i] != kb[i] {
			if ka[i] < kb[i] {
				return -1
			}
			return 1
		}
	}
	for _, name := range ka {
		if d := CompareLayers(a.Layer(name), b.Layer(name)); d != 0 {
			return d
		}
	}
	return 0
}

// Canonicalize пересортировывает все упорядоченные коллекции модели на
// месте. После вызова Render даёт воспроизводимый, диффуемый текст.
func Canonicalize(lib *Library, ctx *Context) {
	for _, cell := range lib.Cells() {
		sortProperties(cell.Simple, CellPropertyOrder)
		for _, pin := range cell.Pins() {
			sortProperties(pin.Simple, PinPropertyOrder)
			for _, port := range pin.Ports {
				sortLayerCoords(port)
			}
			sort.SliceStable(pin.Ports, func(i, j int) bool {
				return CompareLayerSets(pin.Ports[i], pin.Ports[j]) < 0
			})
		}
		if cell.Obs != nil {
			sortLayerCoords(cell.Obs)
		}
	}
}

func sortProperties(props []Property, order []string) {
	sort.SliceStable(props, func(i, j int) bool {
		return priorityLess(order, props[i].Keyword, props[j].Keyword, func() bool {
			return props[i].Text < props[j].Text
		})
	})
}

// sortLayerCoords sorts every layer's coordinate statements, carrying the
// parallel source line numbers through the same permutation.
func sortLayerCoords(set *LayerSet) {
	for _, name := range set.LayerNames() {
		layer := set.Layer(name)
		idx := make([]int, len(layer.Coords))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(i, j int) bool {
			return CompareCoords(layer.Coords[idx[i]], layer.Coords[idx[j]]) < 0
		})
		coords := make([]string, len(idx))
		for i, j := range idx {
			coords[i] = layer.Coords[j]
		}
		layer.Coords = coords
		// Линии либо отсутствуют, либо их столько же, сколько координат.
		if len(layer.SourceLines) == len(idx) {
			lines := make([]int, len(idx))
			for i, j := range idx {
				lines[i] = layer.SourceLines[j]
			}
			layer.SourceLines = lines
		}
	}
}

// sortedLayerNames returns the set's layer names in canonical order: the
// technology layer order first, lexical for layers outside it.
func sortedLayerNames(set *LayerSet, ctx *Context) []string {
	names := set.LayerNames()
	sort.SliceStable(names, func(i, j int) bool {
		return layerLess(ctx.Tech, names[i], names[j])
	})
	return names
}
