package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/metrics"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	trailLength     = 400
	maxSpeed        = 64
)

// Ticker advances a system by one tick.
type Ticker interface {
	Tick(dt int64, sys dynamo.System) (dynamo.System, error)
}

type TickMsg time.Time

// Model steps a system tick by tick and draws it. Each frame runs speed
// ticks; a tick error freezes the view on the last good state.
type Model struct {
	ticker   Ticker
	initial  dynamo.System
	sys      dynamo.System
	dt       int64
	tick     uint32
	limit    uint32
	speed    int
	fps      int
	running  bool
	err      error
	theme    Theme
	view     Viewport
	canvas   *Canvas
	trail    []dynamo.System
	energy   []float64
	showHelp bool
}

// NewModel starts a viewer for sys. limit stops the run after that many
// ticks; zero runs until quit.
func NewModel(t Ticker, sys dynamo.System, dt int64, limit uint32) Model {
	return Model{
		ticker:  t,
		initial: sys.Clone(),
		sys:     sys.Clone(),
		dt:      dt,
		limit:   limit,
		speed:   4,
		fps:     60,
		running: true,
		theme:   Themes[0],
		view:    Fit(sys),
		canvas:  NewCanvas(width, height),
		trail:   make([]dynamo.System, 0, trailLength),
		energy:  make([]float64, 0, historyCapacity),
	}
}

// WithFPS sets the frame rate.
func (m Model) WithFPS(fps int) Model {
	if fps > 0 {
		m.fps = fps
	}
	return m
}

func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

func (m Model) System() dynamo.System { return m.sys }
func (m Model) Ticks() uint32         { return m.tick }
func (m Model) Err() error            { return m.err }

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.frame()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "f":
			m.view = Fit(m.path()...)
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.frame()
	}
	return m, nil
}

// advance runs one frame worth of ticks.
func (m *Model) advance() {
	for i := 0; i < m.speed; i++ {
		if m.err != nil || (m.limit > 0 && m.tick >= m.limit) {
			m.running = false
			return
		}

		next, err := m.ticker.Tick(m.dt, m.sys)
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.sys = next
		m.tick++

		m.trail = append(m.trail, next)
		if len(m.trail) > trailLength {
			m.trail = m.trail[1:]
		}
	}

	m.energy = append(m.energy, metrics.Energy(m.sys))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

func (m *Model) reset() {
	m.sys = m.initial.Clone()
	m.tick = 0
	m.err = nil
	m.running = true
	m.trail = m.trail[:0]
	m.energy = m.energy[:0]
	m.view = Fit(m.sys)
}

// path is the trail followed by the current system.
func (m Model) path() []dynamo.System {
	out := make([]dynamo.System, 0, len(m.trail)+1)
	out = append(out, m.trail...)
	return append(out, m.sys)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return m.theme.Failure().Render("FAILED")
	case m.limit > 0 && m.tick >= m.limit:
		return StatusPaused.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

// View renders the TUI interface.
func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawTrajectory(m.view, m.path())
	canvasView := m.theme.Canvas().Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(Title.Render("RKFALL") + "  " + m.status() + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy"))
		s.WriteString(m.theme.Accented().Render(chart) + "\n\n")
	}

	s.WriteString(Metric("Tick", fmt.Sprintf("%d", m.tick)) + "\n")
	if m.limit > 0 {
		s.WriteString(Metric("Progress", "") + ProgressBar(float64(m.tick)/float64(m.limit), 20) + "\n")
	}
	s.WriteString(Metric("Bodies", fmt.Sprintf("%d", len(m.sys))) + "\n")
	s.WriteString(Metric("Speed", fmt.Sprintf("%d ticks/frame", m.speed)) + "\n")
	if len(m.energy) > 0 {
		s.WriteString(Metric("Energy", fmt.Sprintf("%.6f", m.energy[len(m.energy)-1])) + "\n")
	}
	px, py := metrics.Momentum(m.sys)
	s.WriteString(Metric("Momentum", fmt.Sprintf("(%.6f, %.6f)", px, py)) + "\n")
	if m.err != nil {
		s.WriteString("\n" + m.theme.Failure().Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause R:Reset Q:Quit\n+/-:Speed F:Fit T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, Panel.Render(s.String()))
	if m.showHelp {
		return Panel.Render(help) + "\n\n" + mainView
	}
	return mainView
}

const help = `KEYBOARD SHORTCUTS

Space  pause/resume
R      reset to the initial system
+ / -  double/halve ticks per frame
F      refit the view to the trail
T      cycle themes
Q      quit
?      toggle this help`
