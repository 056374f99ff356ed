// Package tui renders a live transcript of a negotiation run.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/trade-game/internal/game"
)

type sessionState int

const (
	stateRunning sessionState = iota
	stateDone
	stateError
)

type model struct {
	state     sessionState
	g         *game.Game
	snapshots chan game.Snapshot
	viewport  viewport.Model
	log       string
	settings  game.Settings
	summary   *game.Summary
	lastTrade string
	err       error
	width     int
	height    int
}

var (
	roleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// NewModel wires a constructed game into the viewer. The game must not have
// been run yet.
func NewModel(g *game.Game) model {
	snapshots := make(chan game.Snapshot, 64)
	g.SetObserver(func(s game.Snapshot) {
		snapshots <- s
	})
	return model{
		state:     stateRunning,
		g:         g,
		snapshots: snapshots,
		settings:  g.Settings(),
	}
}

type snapshotMsg struct {
	snapshot game.Snapshot
}

type runFinishedMsg struct {
	err error
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.runGame(), m.waitForSnapshot())
}

func (m model) runGame() tea.Cmd {
	return func() tea.Msg {
		return runFinishedMsg{err: m.g.Run(context.Background())}
	}
}

func (m model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snapshot: <-m.snapshots}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * 0.75)
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, msg.Height-4)
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - 4
		}
		m.viewport.SetContent(m.log)

	case snapshotMsg:
		m.appendSnapshot(msg.snapshot)
		m.viewport.SetContent(m.log)
		m.viewport.GotoBottom()
		return m, m.waitForSnapshot()

	case runFinishedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.state = stateDone
		return m, nil
	}

	return m, nil
}

func (m *model) appendSnapshot(s game.Snapshot) {
	logWidth := m.viewport.Width
	if logWidth == 0 {
		logWidth = 80
	}

	switch s.Phase {
	case game.PhaseStart:
		header := messageStyle.Bold(true).Render(fmt.Sprintf(
			"Negotiating over %s for %s (%d iterations)",
			s.Settings.SupportSet.Names()[0], s.Settings.MoneyToken, s.Settings.Iterations))
		m.log += header + "\n\n"

	case game.PhaseTurn:
		header := roleStyle.Width(logWidth).Render(fmt.Sprintf("Turn %d — %s", s.Iteration, s.Turn))
		body := fmt.Sprintf("Answer: %s\nTrade: %s\n%s",
			s.Public.Answer, s.Public.Trade.String(), s.Public.Message)
		m.log += header + "\n" + messageStyle.Width(logWidth).Render(body) + "\n\n"
		if s.Public.Trade != nil {
			m.lastTrade = s.Public.Trade.String()
		}

	case game.PhaseEnd:
		m.summary = s.Summary
		if s.Summary == nil {
			m.log += messageStyle.Bold(true).Render("Game over: no completed proposal round.") + "\n"
			return
		}
		outcome := fmt.Sprintf("Game over: %s\nTrade: %s\n",
			s.Summary.FinalAnswer, s.Summary.Trade.String())
		for role, score := range s.Summary.Outcome {
			outcome += fmt.Sprintf("%s: %s (outcome %.2f)\n",
				role, s.Summary.FinalResources[role], score)
		}
		m.log += messageStyle.Bold(true).Width(logWidth).Render(outcome) + "\n"
	}
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateRunning, stateDone:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		help := helpStyle.Render("Press q to quit.")
		if m.state == stateRunning {
			help = helpStyle.Render("Negotiation in progress... press q to quit.")
		}
		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+help)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	players := titleStyle.Render("PLAYERS") + "\n"
	for _, p := range m.settings.Players {
		players += fmt.Sprintf("%s (%s)\n  holds %s\n", p.Role, p.Goal.Kind, p.InitialResources)
	}
	players += "\n"

	table := titleStyle.Render("ON THE TABLE") + "\n"
	if m.lastTrade == "" {
		table += "(no proposal yet)\n"
	} else {
		table += m.lastTrade + "\n"
	}
	table += "\n"

	budget := titleStyle.Render("BUDGET") + "\n"
	budget += fmt.Sprintf("Max proposals: %d\n", m.settings.MaxProposals)

	outcome := ""
	if m.summary != nil {
		outcome = "\n" + titleStyle.Render("OUTCOME") + "\n"
		for role, score := range m.summary.Outcome {
			outcome += fmt.Sprintf("%s: %.2f\n", role, score)
		}
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(players + table + budget + outcome)
}

// Run starts the viewer and plays the game to completion.
func Run(g *game.Game) error {
	p := tea.NewProgram(NewModel(g), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
