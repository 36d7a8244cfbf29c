// Package viewer steps through the intermediate states of a generation run in
// the terminal.
//
// A Recorder is passed to generator.Generate as the pipeline observer and keeps
// a rendered snapshot after every step. Run then opens a bubbletea program
// that pages through them.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tilelayout/pkg/layout/pipeline"
	"tilelayout/pkg/layout/render"
	"tilelayout/pkg/layout/state"
)

// Snapshot is the layout as it looked right after one step.
type Snapshot struct {
	Priority pipeline.Priority
	Step     string
	Map      string
	Rooms    int
	Halls    int
	Items    int
	Problems []string
}

// Recorder collects snapshots from a pipeline run.
type Recorder struct {
	printer   *render.Printer
	Snapshots []Snapshot
}

// NewRecorder creates a recorder that renders with printer.
func NewRecorder(printer *render.Printer) *Recorder {
	return &Recorder{printer: printer}
}

// Observe records a snapshot. It has the shape of a pipeline observer.
func (r *Recorder) Observe(priority pipeline.Priority, step pipeline.Step[*state.Layout], l *state.Layout) {
	s := Snapshot{
		Priority: priority,
		Step:     StepName(step),
		Map:      r.printer.Map(l),
		Items:    l.Items().Size(),
		Problems: append([]string(nil), l.Problems...),
	}
	if plan := l.FloorPlan(); plan != nil {
		s.Rooms = plan.RoomCount()
		s.Halls = plan.HallCount()
	}
	r.Snapshots = append(r.Snapshots, s)
}

// StepName returns a short name for a step: its type without package path,
// pointer or type arguments.
func StepName(step any) string {
	name := fmt.Sprintf("%T", step)
	name = strings.TrimPrefix(name, "*")
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n", " "),
			key.WithHelp("→/n", "next step"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/p", "previous step"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) help() string {
	bindings := []key.Binding{k.Next, k.Prev, k.First, k.Last, k.Quit}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return strings.Join(parts, " · ")
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	stepStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	mapStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444"))
	statStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

// Model is the bubbletea model paging through snapshots.
type Model struct {
	title     string
	snapshots []Snapshot
	index     int
	keys      keyMap

	width  int
	height int
}

// NewModel creates a model that starts on the last snapshot, the finished
// layout.
func NewModel(title string, snapshots []Snapshot) Model {
	m := Model{title: title, snapshots: snapshots, keys: defaultKeyMap()}
	if len(snapshots) > 0 {
		m.index = len(snapshots) - 1
	}
	return m
}

// Index returns the position of the snapshot on screen.
func (m Model) Index() int {
	return m.index
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.index < len(m.snapshots)-1 {
				m.index++
			}
		case key.Matches(msg, m.keys.Prev):
			if m.index > 0 {
				m.index--
			}
		case key.Matches(msg, m.keys.First):
			m.index = 0
		case key.Matches(msg, m.keys.Last):
			m.index = max(0, len(m.snapshots)-1)
		}
	}
	return m, nil
}

func (m Model) View() string {
	header := titleStyle.Render(m.title)
	if len(m.snapshots) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, statStyle.Render("no steps recorded"), helpStyle.Render(m.keys.help()))
	}

	s := m.snapshots[m.index]
	step := stepStyle.Render(fmt.Sprintf("step %d/%d  %s %v", m.index+1, len(m.snapshots), s.Step, s.Priority))
	stats := statStyle.Render(fmt.Sprintf("rooms: %d  halls: %d  items: %d", s.Rooms, s.Halls, s.Items))

	sections := []string{header, step, mapStyle.Render(strings.TrimSuffix(s.Map, "\n")), stats}
	for _, msg := range s.Problems {
		sections = append(sections, problemStyle.Render("! "+msg))
	}
	sections = append(sections, helpStyle.Render(m.keys.help()))
	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 && m.height > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(view)
	}
	return view
}

// Run opens the viewer on the terminal and blocks until it is closed.
func Run(title string, snapshots []Snapshot) error {
	_, err := tea.NewProgram(NewModel(title, snapshots), tea.WithAltScreen()).Run()
	return err
}
