package tech

import "strings"

// ParseTLEF разбирает технологический LEF построчно: блоки
// LAYER <name> ... END <name>, внутри которых TYPE <value> ; задаёт роль.
// Комментарии после '#' отбрасываются.
func ParseTLEF(content string) *Table {
	t := NewTable()
	current := ""
	for _, raw := range strings.Split(content, "\n") {
		line := raw
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "LAYER":
			if len(fields) >= 2 {
				current = fields[1]
				t.Names = append(t.Names, current)
			}
		case "END":
			if len(fields) >= 2 && current != "" && fields[1] == current {
				current = ""
			}
		case "TYPE":
			if current == "" || len(fields) < 2 {
				continue
			}
			switch strings.ToUpper(strings.TrimSuffix(fields[1], ";")) {
			case "CUT":
				t.Insert(current, Cut)
			case "ROUTING":
				t.Insert(current, Routing)
			}
		}
	}
	return t
}
