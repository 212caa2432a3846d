package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ecosim/internal/census"
	"github.com/san-kum/ecosim/internal/sim"
)

const (
	historyCapacity = 120
	defaultFPS      = 10
)

type TickMsg time.Time

// Model drives a simulator from the Bubble Tea update loop.
type Model struct {
	sim      *sim.Simulator
	active   sim.Activity
	interval time.Duration
	maxSteps int
	running  bool
	stopped  bool
	theme    string
	history  []census.Census
}

// NewModel wraps a simulator that has already been reset. Steps stop once
// active reports false or, when maxSteps > 0, after maxSteps steps.
func NewModel(s *sim.Simulator, fps, maxSteps int, active sim.Activity) Model {
	if fps <= 0 {
		fps = defaultFPS
	}
	m := Model{
		sim:      s,
		active:   active,
		interval: time.Second / time.Duration(fps),
		maxSteps: maxSteps,
		running:  true,
		theme:    CurrentTheme.Name,
		history:  make([]census.Census, 0, historyCapacity),
	}
	m.record()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.stopped {
				m.running = !m.running
			}
		case "s":
			if !m.running {
				m.advance()
			}
		case "r":
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme)
			SetTheme(m.theme)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance performs one step unless the run is over.
func (m *Model) advance() {
	if m.stopped {
		return
	}
	if m.finished() {
		m.stopped = true
		m.running = false
		return
	}
	m.sim.Step()
	m.record()
	if m.finished() {
		m.stopped = true
		m.running = false
	}
}

func (m *Model) finished() bool {
	if m.maxSteps > 0 && m.sim.StepCount() >= m.maxSteps {
		return true
	}
	return m.active != nil && !m.active(m.sim.View())
}

func (m *Model) reset() {
	m.sim.Reset()
	m.history = m.history[:0]
	m.record()
	m.stopped = false
	m.running = true
}

func (m *Model) record() {
	m.history = append(m.history, census.Count(m.sim.View()))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m Model) status() string {
	switch {
	case m.stopped:
		return StatusStopped.Render("STOPPED")
	case m.running:
		return StatusRunning.Render("RUNNING")
	default:
		return StatusPaused.Render("PAUSED")
	}
}

// Chart plots the recorded fox and rabbit counts.
func (m Model) Chart() string {
	if len(m.history) == 0 {
		return ""
	}
	foxes := make([]float64, len(m.history))
	rabbits := make([]float64, len(m.history))
	for i, c := range m.history {
		foxes[i] = float64(c.Foxes)
		rabbits[i] = float64(c.Rabbits)
	}
	return asciigraph.PlotMany([][]float64{foxes, rabbits},
		asciigraph.Height(8),
		asciigraph.Width(30),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Orange),
		asciigraph.Caption("foxes / rabbits"))
}

// View renders the TUI interface.
func (m Model) View() string {
	t := CurrentTheme
	v := m.sim.View()
	c := m.history[len(m.history)-1]

	var stats strings.Builder
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	stats.WriteString(m.status() + "\n\n")
	row("Step", fmt.Sprintf("%d", c.Step))
	row("Seed", fmt.Sprintf("%d", m.sim.Seed()))
	row("Foxes", fmt.Sprintf("%d", c.Foxes))
	row("Rabbits", fmt.Sprintf("%d", c.Rabbits))
	row("Births", fmt.Sprintf("%d / %d", c.FoxBirths, c.RabbitBirths))
	row("Eaten", fmt.Sprintf("%d", c.Eaten))
	row("Starved", fmt.Sprintf("%d", c.Starved))
	row("Crowded out", fmt.Sprintf("%d", c.Overcrowded+c.Overwritten))
	row("Old age", fmt.Sprintf("%d", c.OldAge))
	stats.WriteString("\n" + Legend(t) + "\n")
	stats.WriteString(graphStyle.Render(m.Chart()))

	title := headerStyle.Foreground(t.Accent).
		Render(fmt.Sprintf("ECOSIM %dx%d", v.Depth(), v.Width()))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		fieldStyle.Render(RenderField(v, t)),
		statsStyle.Render(stats.String()))
	help := helpStyle.Render("space pause • s step • r reset • t theme • q quit")

	return title + "\n" + body + "\n" + help
}
