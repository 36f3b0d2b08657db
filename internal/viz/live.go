package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/skoram/emgrid/internal/fdtd"
	"github.com/skoram/emgrid/internal/field"
)

const historyCapacity = 600

type TickMsg time.Time

// Model steps a grid at the frame rate and renders a field cross-section
// next to a rolling amplitude history.
type Model struct {
	grid      *fdtd.Grid
	sliceZ    int
	frameRate int
	running   bool
	history   []float64
	showHelp  bool
}

// NewModel wraps a configured grid for live viewing. The cross-section is
// taken at the middle z plane.
func NewModel(g *fdtd.Grid, frameRate int) Model {
	if frameRate < 1 {
		frameRate = 30
	}
	_, _, nz := g.Shape()
	return Model{
		grid:      g,
		sliceZ:    nz / 2,
		frameRate: frameRate,
		running:   true,
		history:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.grid.Reset()
			m.history = m.history[:0]
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.grid.Step()
			m.history = append(m.history, m.peak())
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// peak returns the largest |E_z| over the viewed slice.
func (m Model) peak() float64 {
	nx, ny, _ := m.grid.Shape()
	max := 0.0
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			v := m.grid.EAt(x, y, m.sliceZ, field.Z)
			if v < 0 {
				v = -v
			}
			if v > max {
				max = v
			}
		}
	}
	return max
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("emgrid live — step %d", m.grid.TimestepsPassed()))

	section := RenderSlice(m.grid, m.sliceZ)

	graph := ""
	if len(m.history) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.history,
			asciigraph.Height(8),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("peak |E_z| in slice"),
		))
	}

	help := helpStyle.Render("space pause · r reset · q quit")
	if m.showHelp {
		help = helpStyle.Render("space: pause/resume  r: reset fields  ?: toggle help  q: quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, section, Summary(m.grid), graph, help)
}

// RunLive blocks in the live view until the user quits.
func RunLive(g *fdtd.Grid, frameRate int) error {
	p := tea.NewProgram(NewModel(g, frameRate))
	_, err := p.Run()
	return err
}
