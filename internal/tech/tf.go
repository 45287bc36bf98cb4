package tech

import (
	"regexp"
	"strings"
)

var techLayerLine = regexp.MustCompile(`^\s*\(\s*"?([A-Za-z][\w.]*)"?\s+\d+`)

// ParseTF разбирает технологический файл в скобочном формате. Имена слоёв
// берутся из секции techLayers(...), классификация — из блоков
// validLayers ( ( ... ) ). Нечитаемый ввод просто не даёт записей.
func ParseTF(content string) *Table {
	t := NewTable()
	lines := strings.Split(content, "\n")

	// techLayers: отслеживаем глубину скобок, внутри секции каждая строка
	// вида ( NAME NUMBER ... добавляет слой.
	depth := 0
	inSection := false
	for _, line := range lines {
		if !inSection {
			if idx := strings.Index(line, "techLayers"); idx >= 0 {
				inSection = true
				depth = 0
				line = line[idx:]
			} else {
				continue
			}
		}
		opens := strings.Count(line, "(")
		closes := strings.Count(line, ")")
		if depth > 0 {
			if m := techLayerLine.FindStringSubmatch(line); m != nil {
				t.Names = append(t.Names, m[1])
			}
		}
		depth += opens - closes
		if depth <= 0 && opens+closes > 0 && len(t.Names) > 0 {
			inSection = false
		}
	}

	// validLayers: каждый блок даёт пары "имя назначение", либо имена,
	// совпадающие с известными формами via/metal.
	for _, block := range validLayersBlocks(content) {
		classifyValidLayers(t, block)
	}

	// Второй проход: слои из techLayers, ещё не классифицированные, получают
	// роль по форме имени. Существующая классификация не переопределяется.
	for _, name := range t.Names {
		if _, ok := t.Lookup(name); ok {
			continue
		}
		upper := strings.ToUpper(name)
		switch {
		case cutShape.MatchString(upper):
			t.Insert(name, Cut)
		case routingShape.MatchString(upper):
			t.Insert(name, Routing)
		}
	}
	return t
}

// validLayersBlocks returns the parenthesized bodies of every
// validLayers ( ( ... ) ) occurrence.
func validLayersBlocks(content string) []string {
	var blocks []string
	rest := content
	for {
		idx := strings.Index(rest, "validLayers")
		if idx < 0 {
			return blocks
		}
		rest = rest[idx+len("validLayers"):]
		depth := 0
		start := -1
		for i, r := range rest {
			switch r {
			case '(':
				if depth == 0 {
					start = i + 1
				}
				depth++
			case ')':
				depth--
				if depth == 0 && start >= 0 {
					blocks = append(blocks, rest[start:i])
					rest = rest[i:]
					start = -2
				}
			}
			if start == -2 {
				break
			}
		}
		if start != -2 {
			return blocks
		}
	}
}

var purposeWords = map[string]bool{
	"drawing": true,
	"pin":     true,
	"net":     true,
}

func classifyValidLayers(t *Table, block string) {
	tokens := strings.FieldsFunc(block, func(r rune) bool {
		return r == '(' || r == ')' || r == '"' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	for i, tok := range tokens {
		named := false
		if i+1 < len(tokens) && purposeWords[strings.ToLower(tokens[i+1])] {
			named = true
		}
		upper := strings.ToUpper(tok)
		switch {
		case cutShape.MatchString(upper):
			t.Insert(tok, Cut)
		case routingShape.MatchString(upper):
			t.Insert(tok, Routing)
		case named:
			// Имя с назначением, но вне известных форм: роли не получает.
		}
	}
}
