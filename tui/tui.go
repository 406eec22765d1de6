// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Dashboard, Network and Days tabs over the live store
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/opslog/app"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewGraph
)

// Tab selects the top-level page
type Tab int

const (
	TabDashboard Tab = iota
	TabNetwork
	TabDays
	tabCount
)

var tierFilters = []string{"all", "strategic", "key", "regular", "casual"}

// Model is the main bubbletea model
type Model struct {
	app      *app.App
	viewMode ViewMode
	tab      Tab

	// List view state
	selectedRow int
	search      textinput.Model
	searching   bool
	tierIndex   int

	// Detail view state
	selectedID string

	graphDOT string

	width  int
	height int
	err    error
}

// NewModel creates a new TUI model
func NewModel(a *app.App) Model {
	search := textinput.New()
	search.Placeholder = "name, company or industry"
	search.Prompt = "/ "
	search.CharLimit = 64

	return Model{
		app:      a,
		viewMode: ViewList,
		tab:      TabDashboard,
		search:   search,
		width:    80,
		height:   24,
	}
}

// Run starts the full-screen interface and blocks until it exits.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewGraph:
		return m.renderGraphView()
	}
	return m.renderListView()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	}
	return m.handleListKeys(msg)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
