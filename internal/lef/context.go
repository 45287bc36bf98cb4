package lef

import (
	"lefcheck/internal/diag"
	"lefcheck/internal/tech"
)

// Context — явное состояние одного прогона. Всё, что в исходной задаче было
// глобальным (таблица слоёв, частотные счётчики), живёт здесь и передаётся
// по ссылке; при обработке нескольких документов в одном процессе каждый
// получает свой Context.
type Context struct {
	Tech   *tech.Table
	Ledger *diag.Ledger
	Stats  *ValueStats
}

// NewContext builds a run context around the given layer table and ledger.
func NewContext(t *tech.Table, ledger *diag.Ledger) *Context {
	if t == nil {
		t = tech.Default()
	}
	if ledger == nil {
		ledger = diag.NewLedger()
	}
	return &Context{
		Tech:   t,
		Ledger: ledger,
		Stats:  NewValueStats(),
	}
}

// ValueStats accumulates how often each value of selected properties was
// seen. Write-only during parsing: no active check reads it today, the
// counters exist for a future uncommon-value analysis.
type ValueStats struct {
	counts map[string]map[string]int
}

// NewValueStats returns empty frequency tables.
func NewValueStats() *ValueStats {
	return &ValueStats{counts: make(map[string]map[string]int)}
}

// Record bumps the counter for a (property, value) pair.
func (s *ValueStats) Record(property, value string) {
	m := s.counts[property]
	if m == nil {
		m = make(map[string]int)
		s.counts[property] = m
	}
	m[value]++
}

// Count returns how often the (property, value) pair was recorded.
func (s *ValueStats) Count(property, value string) int {
	return s.counts[property][value]
}
