// Package progress implements an optional live shot-progress display,
// driven by orchestrator.Observer. The engine never starts this itself;
// a caller wires a Model into its own tea.Program around an Engine.Run
// call.
package progress

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// ShotMsg is sent into the tea.Program each time a shot completes.
type ShotMsg struct {
	Idx, Total int
}

// Model is a bubbletea progress display fed by ShotMsg. It satisfies
// orchestrator.Observer via Feed, which a caller wires to Engine.AddObserver
// through its own tea.Program's Send.
type Model struct {
	idx, total int
	started    time.Time
	rates      []float64
	lastTick   time.Time
	quitting   bool
}

// NewModel returns a Model for a run of total shots.
func NewModel(total int) Model {
	now := time.Now()
	return Model{total: total, started: now, lastTick: now, rates: make([]float64, 0, 64)}
}

// Feed adapts Model to orchestrator.Observer; p is the *tea.Program driving
// this Model. It is safe to call from any worker goroutine — tea.Program.Send
// is the synchronization point.
type Feed struct {
	Program *tea.Program
}

func (f Feed) ShotCompleted(idx, total int) {
	f.Program.Send(ShotMsg{Idx: idx, Total: total})
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShotMsg:
		now := time.Now()
		elapsed := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		if elapsed > 0 {
			m.rates = append(m.rates, 1.0/elapsed)
			if len(m.rates) > 64 {
				m.rates = m.rates[1:]
			}
		}
		m.idx = msg.Idx + 1
		m.total = msg.Total
		if m.idx >= m.total {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.total == 0 {
		return headerStyle.Render("waiting for shots...") + "\n"
	}
	frac := float64(m.idx) / float64(m.total)
	elapsed := time.Since(m.started)

	var b strings.Builder
	b.WriteString(headerStyle.Render("wavefd — shot progress"))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(
		labelStyle.Render("shots:") + valueStyle.Render(fmt.Sprintf("%d / %d (%.0f%%)", m.idx, m.total, frac*100)) + "\n" +
			labelStyle.Render("elapsed:") + valueStyle.Render(elapsed.Round(time.Millisecond).String()),
	))
	b.WriteString("\n")
	if len(m.rates) > 1 {
		plot := asciigraph.Plot(m.rates, asciigraph.Height(8), asciigraph.Width(50), asciigraph.Caption("shots/sec"))
		b.WriteString(graphStyle.Render(plot))
		b.WriteString("\n")
	}
	if !m.quitting {
		b.WriteString(helpStyle.Render("q to detach (run continues in the background)"))
	}
	return b.String()
}
