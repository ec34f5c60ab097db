package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PhaseStatus represents a provisioning phase for display.
type PhaseStatus struct {
	Name   string
	Key    string
	Done   bool
	Active bool
	Detail string
	Err    error
}

// Model is the Bubble Tea model for the provisioning dashboard.
type Model struct {
	// Environment info
	ServiceName string
	Manifest    string

	// Provisioning phases (apply command)
	Phases    []PhaseStatus
	AllDone   bool
	StartTime time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// NewApplyModel creates a model for the apply command TUI.
// phaseNames are the pipeline phases in execution order; keys double as
// display names.
func NewApplyModel(serviceName, manifest string, phaseNames []string) Model {
	phases := make([]PhaseStatus, 0, len(phaseNames))
	for _, name := range phaseNames {
		phases = append(phases, PhaseStatus{Name: name, Key: name})
	}

	return Model{
		ServiceName: serviceName,
		Manifest:    manifest,
		StartTime:   time.Now(),
		Phases:      phases,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		for i := range m.Phases {
			if m.Phases[i].Active {
				m.Phases[i].Err = msg.Err
			}
		}
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Key == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Mark previous phases as done
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	if msg.Detail != "" {
		m.Phases[idx].Detail = msg.Detail
	}

	if msg.Done {
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
		if idx == len(m.Phases)-1 {
			m.AllDone = true
		}
	} else {
		m.Phases[idx].Active = true
	}

	if msg.Err != nil {
		m.Phases[idx].Err = msg.Err
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
