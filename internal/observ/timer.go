// Package observ carries the run's lightweight observability: phase timing
// for the --timings flag and its JSON form.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Span — одна открытая фаза прогона. Закрывается ровно один раз через End;
// повторный End ничего не делает.
type Span struct {
	timer *Timer
	idx   int
	done  bool
}

// End closes the span. The note lands next to the duration in the summary,
// "" is fine.
func (s *Span) End(note string) {
	if s == nil || s.done {
		return
	}
	s.done = true
	p := &s.timer.phases[s.idx]
	p.dur = time.Since(p.start)
	p.note = note
}

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer измеряет фазы прогона: таблица технологии, извлечение Liberty,
// разбор LEF, запись выводов. Не потокобезопасен: фазы открывает и
// закрывает только управляющая горутина драйвера.
type Timer struct {
	phases []phase
}

func NewTimer() *Timer {
	return &Timer{}
}

// Begin opens a named phase.
func (t *Timer) Begin(name string) *Span {
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return &Span{timer: t, idx: len(t.phases) - 1}
}

// Summary renders the phases for stderr.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&b, "  %-12s %8.2f ms", p.Name, p.Millis)
		if p.Note != "" {
			b.WriteString("  ")
			b.WriteString(p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %8.2f ms\n", "total", rep.TotalMillis)
	return b.String()
}

// PhaseReport is the serialized form of one closed phase.
type PhaseReport struct {
	Name   string  `json:"name"`
	Millis float64 `json:"millis"`
	Note   string  `json:"note,omitempty"`
}

// Report aggregates every phase recorded so far.
type Report struct {
	TotalMillis float64       `json:"total_millis"`
	Phases      []PhaseReport `json:"phases"`
}

// Report snapshots the timer. Открытые фазы попадают в срез с нулевой
// длительностью.
func (t *Timer) Report() Report {
	rep := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		rep.Phases = append(rep.Phases, PhaseReport{
			Name:   p.name,
			Millis: float64(p.dur) / float64(time.Millisecond),
			Note:   p.note,
		})
	}
	rep.TotalMillis = float64(total) / float64(time.Millisecond)
	return rep
}
