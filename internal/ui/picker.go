// Package ui implements the interactive workspace picker shown when
// lefcheck is started on a terminal without path arguments.
package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

type keymap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Here   key.Binding
	Parent key.Binding
	Quit   key.Binding
}

var keys = keymap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Enter:  key.NewBinding(key.WithKeys("enter", "right", "l")),
	Here:   key.NewBinding(key.WithKeys(".", " ")),
	Parent: key.NewBinding(key.WithKeys("left", "h", "backspace")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// pickerModel lets the user walk the filesystem and pick a workspace
// directory.
type pickerModel struct {
	dir      string
	entries  []string
	index    int
	width    int
	selected string
	aborted  bool
}

// NewPicker returns a Bubble Tea model rooted at dir.
func NewPicker(dir string) tea.Model {
	m := &pickerModel{dir: dir, width: 80}
	m.reload()
	return m
}

func (m *pickerModel) reload() {
	m.entries = m.entries[:0]
	m.index = 0
	items, err := os.ReadDir(m.dir)
	if err != nil {
		return
	}
	for _, it := range items {
		if it.IsDir() && !strings.HasPrefix(it.Name(), ".") {
			m.entries = append(m.entries, it.Name())
		}
	}
	sort.Strings(m.entries)
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.index > 0 {
				m.index--
			}
		case key.Matches(msg, keys.Down):
			if m.index < len(m.entries)-1 {
				m.index++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.entries) > 0 {
				m.dir = filepath.Join(m.dir, m.entries[m.index])
				m.reload()
			}
		case key.Matches(msg, keys.Parent):
			m.dir = filepath.Dir(m.dir)
			m.reload()
		case key.Matches(msg, keys.Here):
			m.selected = m.dir
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *pickerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("select a workspace"))
	b.WriteString("  ")
	b.WriteString(pathStyle.Render(runewidth.Truncate(m.dir, max(10, m.width-24), "…")))
	b.WriteString("\n\n")
	if len(m.entries) == 0 {
		b.WriteString(pathStyle.Render("  (no subdirectories)"))
		b.WriteString("\n")
	}
	for i, name := range m.entries {
		if i == m.index {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedStyle.Render(name))
		} else {
			b.WriteString("  ")
			b.WriteString(name)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(pathStyle.Render("enter: descend  ·  space: pick this directory  ·  q: cancel"))
	b.WriteString("\n")
	return b.String()
}

// PickDirectory runs the picker and returns the chosen directory. ok is
// false when the user cancelled.
func PickDirectory(start string) (dir string, ok bool, err error) {
	model := NewPicker(start)
	prog := tea.NewProgram(model)
	final, err := prog.Run()
	if err != nil {
		return "", false, err
	}
	pm, isPicker := final.(*pickerModel)
	if !isPicker || pm.aborted || pm.selected == "" {
		return "", false, nil
	}
	return pm.selected, true, nil
}
