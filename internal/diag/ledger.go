package diag

// Ledger накапливает сообщения по категориям. Append-only: записи никогда не
// удаляются и не дедуплицируются, порядок внутри категории — порядок
// обнаружения. Один Ledger живёт весь прогон одного документа и передаётся
// по ссылке в каждый компонент, который умеет находить нарушения.
//
// Ledger не потокобезопасен: ядро строго последовательное, а драйвер,
// обрабатывающий файлы параллельно, держит по Ledger на файл и сливает их
// через Merge.
type Ledger struct {
	lines [numCategories][]string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records one message under the category.
func (l *Ledger) Append(c Category, msg string) {
	if c >= numCategories {
		return
	}
	l.lines[c] = append(l.lines[c], msg)
}

// Lines returns the messages recorded under the category, in the order they
// were appended. The returned slice is owned by the ledger; callers must not
// modify it.
func (l *Ledger) Lines(c Category) []string {
	if c >= numCategories {
		return nil
	}
	return l.lines[c]
}

// Count returns the number of messages under the category.
func (l *Ledger) Count(c Category) int {
	if c >= numCategories {
		return 0
	}
	return len(l.lines[c])
}

// Total returns the number of messages across every category.
func (l *Ledger) Total() int {
	n := 0
	for c := range l.lines {
		n += len(l.lines[c])
	}
	return n
}

// Empty reports whether no message was recorded at all.
func (l *Ledger) Empty() bool {
	return l.Total() == 0
}

// Dump returns a copy of every category's messages, indexed by category.
// Used by the disk cache to persist a ledger alongside a canonical render.
func (l *Ledger) Dump() [][]string {
	out := make([][]string, numCategories)
	for c := range l.lines {
		if len(l.lines[c]) == 0 {
			continue
		}
		out[c] = append([]string(nil), l.lines[c]...)
	}
	return out
}

// Restore rebuilds a ledger from a Dump. Входы с незнакомыми категориями
// (другая версия схемы) молча отбрасываются.
func Restore(data [][]string) *Ledger {
	l := NewLedger()
	for c, lines := range data {
		if c >= int(numCategories) {
			break
		}
		l.lines[c] = append([]string(nil), lines...)
	}
	return l
}

// Merge appends every message from other, category by category, after the
// messages already present. Порядок категорий фиксирован, поэтому слияние
// детерминировано.
func (l *Ledger) Merge(other *Ledger) {
	if other == nil {
		return
	}
	for c := range other.lines {
		l.lines[c] = append(l.lines[c], other.lines[c]...)
	}
}
