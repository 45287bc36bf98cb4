package lef

import "sort"

// CellPropertyOrder задаёт канонический порядок простых свойств ячейки.
// Ключ вне списка даёт диагностику "unknown cell property" и сортируется
// после всех перечисленных.
var CellPropertyOrder = []string{
	"ORIGIN",
	"CLASS",
	"SIZE",
	"SYMMETRY",
	"SITE",
	"SOURCE",
	"FOREIGN",
	"EEQ",
	"LEQ",
	"FIXEDMASK",
}

// PinPropertyOrder задаёт канонический порядок простых свойств пина.
var PinPropertyOrder = []string{
	"DIRECTION",
	"USE",
	"SHAPE",
	"TAPERRULE",
	"NETEXPR",
	"SUPPLYSENSITIVITY",
	"GROUNDSENSITIVITY",
	"MUSTJOIN",
	"ANTENNAGATEAREA",
	"ANTENNADIFFAREA",
	"ANTENNAMODEL",
	"ANTENNAPARTIALMETALAREA",
	"ANTENNAPARTIALMETALSIDEAREA",
	"ANTENNAPARTIALCUTAREA",
	"ANTENNAMAXAREACAR",
	"ANTENNAMAXSIDEAREACAR",
	"ANTENNAMAXCUTCAR",
}

func indexOf(list []string, key string) int {
	for i, k := range list {
		if k == key {
			return i
		}
	}
	return -1
}

func knownKey(list []string, key string) bool {
	return indexOf(list, key) >= 0
}

func sortStrings(s []string) {
	sort.Strings(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
