package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-insight/internal/types"
)

// Application states.
const (
	StateAssetInput = iota
	StateTimeframeSelect
	StateResults
)

// Model is the Bubble Tea model for the explore command.
type Model struct {
	ctx           context.Context
	analyzer      reportAnalyzer
	state         int
	assetInput    textinput.Model
	timeframeList list.Model
	resultTable   table.Model
	assets        []string
	timeframe     types.Timeframe
	results       map[string]AnalysisMsg
	pending       int
	width         int
	height        int
}

// NewModel creates a new Model with initial state.
func NewModel(ctx context.Context, analyzer reportAnalyzer) Model {
	return Model{
		ctx:           ctx,
		analyzer:      analyzer,
		state:         StateAssetInput,
		assetInput:    NewAssetInput(),
		timeframeList: NewTimeframeList(analyzer.SupportedTimeframes()),
		resultTable:   NewResultTable(),
		assets:        nil,
		timeframe:     "",
		results:       make(map[string]AnalysisMsg),
		pending:       0,
		width:         0,
		height:        0,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Only quit on 'q' if not in text input mode
			if m.state != StateAssetInput {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timeframeList.SetSize(msg.Width, msg.Height-4)
		m.resultTable.SetWidth(msg.Width)
		m.resultTable.SetHeight(msg.Height - 6)

		return m, nil

	case AnalysisMsg:
		m.results[msg.Asset] = msg
		if m.pending > 0 {
			m.pending--
		}

		m.resultTable = UpdateResultRows(m.resultTable, m.assets, m.results)

		return m, nil
	}

	switch m.state {
	case StateAssetInput:
		return m.updateAssetInput(msg)
	case StateTimeframeSelect:
		return m.updateTimeframeSelect(msg)
	case StateResults:
		return m.updateResults(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateTimeframeSelect:
		m.state = StateAssetInput
		m.assetInput.Focus()

		return m, textinput.Blink
	case StateResults:
		m.state = StateTimeframeSelect
		m.results = make(map[string]AnalysisMsg)
		m.pending = 0
	}

	return m, nil
}

func (m Model) updateAssetInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		assets := ParseAssets(m.assetInput.Value())
		if len(assets) > 0 {
			m.assets = assets
			m.state = StateTimeframeSelect
			m.assetInput.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.assetInput, cmd = m.assetInput.Update(msg)

	return m, cmd
}

func (m Model) updateTimeframeSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.timeframeList.SelectedItem().(listItem); ok {
			m.timeframe = types.Timeframe(item.name)
			m.state = StateResults

			return m.analyzeAll()
		}
	}

	var cmd tea.Cmd
	m.timeframeList, cmd = m.timeframeList.Update(msg)

	return m, cmd
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "r" && m.pending == 0 {
		return m.analyzeAll()
	}

	var cmd tea.Cmd
	m.resultTable, cmd = m.resultTable.Update(msg)

	return m, cmd
}

// analyzeAll starts one analysis command per asset.
func (m Model) analyzeAll() (tea.Model, tea.Cmd) {
	m.results = make(map[string]AnalysisMsg)
	m.pending = len(m.assets)
	m.resultTable = UpdateResultRows(m.resultTable, m.assets, m.results)

	cmds := make([]tea.Cmd, 0, len(m.assets))
	for _, asset := range m.assets {
		cmds = append(cmds, m.analyzeCmd(asset))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) analyzeCmd(asset string) tea.Cmd {
	ctx := m.ctx
	analyzer := m.analyzer
	timeframe := m.timeframe

	return func() tea.Msg {
		report, err := analyzer.Analyze(ctx, asset, timeframe)

		return AnalysisMsg{Asset: asset, Report: report, Err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateAssetInput:
		s.WriteString(TitleStyle.Render("Enter Assets"))
		s.WriteString("\n\n")
		s.WriteString("Enter comma-separated asset ids (e.g., btc,eth):\n\n")
		s.WriteString(m.assetInput.View())
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Ctrl+C to quit"))

	case StateTimeframeSelect:
		s.WriteString(m.timeframeList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, Esc to go back"))

	case StateResults:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Analysis (%s)", m.timeframe)))
		s.WriteString("\n\n")
		s.WriteString(m.resultTable.View())
		s.WriteString("\n")

		status := "r: refresh"
		if m.pending > 0 {
			status = fmt.Sprintf("analyzing %d of %d", m.pending, len(m.assets))
		}

		s.WriteString(HelpStyle.Render(fmt.Sprintf("q: quit | Esc: back | %s", status)))
	}

	return s.String()
}
