// Package livetui is the interactive contest screen: a countdown, the
// problem list and the running score, redrawn whenever the session changes.
package livetui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalstrings "github.com/amonks/contestsim/internal/strings"
	"github.com/amonks/contestsim/session"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Controller is the part of the session controller the screen drives.
type Controller interface {
	View() session.View
	Updates() <-chan struct{}
	Submit() error
	CheckNow(ctx context.Context) (int, error)
}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type model struct {
	ctx         context.Context
	ctrl        Controller
	width       int
	height      int
	view        session.View
	rows        viewport.Model
	status      string
	statusLevel statusLevel
	checking    bool
}

type updatedMsg struct{}

type submittedMsg struct{ err error }

type checkedMsg struct {
	added int
	err   error
}

// Run shows the contest screen until the user quits or ctx is done. Quitting
// leaves the contest running.
func Run(ctx context.Context, ctrl Controller) error {
	if ctrl == nil {
		return fmt.Errorf("session controller is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func newModel(ctx context.Context, ctrl Controller) model {
	m := model{
		ctx:  ctx,
		ctrl: ctrl,
		rows: viewport.New(0, 0),
	}
	if ctrl != nil {
		m.view = ctrl.View()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m model) waitForUpdate() tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	updates := m.ctrl.Updates()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-updates:
			return updatedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case updatedMsg:
		m.view = m.ctrl.View()
		if m.view.Phase == session.PhaseConfiguring {
			// The contest was reset from another command.
			return m, tea.Quit
		}
		m.refreshRows()
		return m, m.waitForUpdate()
	case submittedMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), statusError)
		} else {
			m.setStatus("contest submitted", statusInfo)
		}
		return m, nil
	case checkedMsg:
		m.checking = false
		switch {
		case msg.err != nil:
			m.setStatus(msg.err.Error(), statusError)
		case msg.added == 1:
			m.setStatus("1 new problem solved", statusInfo)
		case msg.added > 1:
			m.setStatus(fmt.Sprintf("%d new problems solved", msg.added), statusInfo)
		default:
			m.setStatus("no new solves", statusInfo)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "s":
		if m.view.Phase != session.PhaseActive {
			return m, nil
		}
		ctrl := m.ctrl
		return m, func() tea.Msg {
			return submittedMsg{err: ctrl.Submit()}
		}
	case "r":
		if m.view.Phase != session.PhaseActive || m.checking {
			return m, nil
		}
		m.checking = true
		m.setStatus("checking submissions...", statusNone)
		ctrl, ctx := m.ctrl, m.ctx
		return m, func() tea.Msg {
			added, err := ctrl.CheckNow(ctx)
			return checkedMsg{added: added, err: err}
		}
	}
	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m *model) resize() {
	m.rows.Width = max(m.width-4, 1)
	m.rows.Height = max(m.height-8, 1)
	m.refreshRows()
}

func (m *model) refreshRows() {
	m.rows.SetContent(renderRows(m.view, max(m.rows.Width-2, 10)))
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading contest..."
	}
	header := m.renderHeader()
	summary := m.renderSummary()
	pane := paneStyle.Width(max(m.width-2, 1)).Render(m.rows.View())
	lines := []string{header, summary, pane, m.renderHelpLine()}
	if status := m.renderStatusLine(); status != "" {
		lines = append(lines, status)
	}
	return strings.Join(lines, "\n")
}

func (m model) renderHeader() string {
	title := titleStyle.Render("contest")
	countdown := countdownStyle.Render(m.view.Countdown)
	if m.view.Urgent {
		countdown = urgentStyle.Render(m.view.Countdown)
	}
	var who string
	if m.view.Username != "" {
		who = valueMuted.Render(fmt.Sprintf(" %s · %s", m.view.Username, m.view.Mode))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, countdown, who)
}

func (m model) renderSummary() string {
	parts := []string{
		labelStyle.Render("Score ") + m.view.ScoreLine(),
		labelStyle.Render("Solved ") + fmt.Sprintf("%d/%d", m.view.Solved, len(m.view.Rows)),
		labelStyle.Render("Penalty time ") + fmt.Sprintf("%d min", m.view.EffectiveTime),
	}
	if m.view.Phase == session.PhaseFinished {
		parts = append(parts, labelStyle.Render("Verdict ")+solvedStyle.Render(string(m.view.Verdict)))
	}
	return " " + strings.Join(parts, "   ")
}

func renderRows(view session.View, width int) string {
	if len(view.Rows) == 0 {
		return valueMuted.Render("No contest in progress. Run `contest start`.")
	}
	var b strings.Builder
	for i, row := range view.Rows {
		marker := valueMuted.Render("[ ]")
		detail := valueMuted.Render(row.URL)
		if row.Solved {
			marker = solvedStyle.Render("[x]")
			detail = fmt.Sprintf("solved at %dm", row.TimeTaken)
			if row.Fails > 0 {
				detail += fmt.Sprintf(", %d failed", row.Fails)
			}
		}
		difficulty := string(row.Difficulty)
		if style, ok := difficultyStyles[difficulty]; ok {
			difficulty = style.Render(difficulty)
		}
		head := fmt.Sprintf("%s %d. %s (%s, %d pts)", marker, i+1, row.Title, difficulty, row.Points)
		b.WriteString(wordwrap.String(head, width))
		b.WriteString("\n    ")
		b.WriteString(detail)
		if i < len(view.Rows)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (m model) renderHelpLine() string {
	text := "s submit · r refresh · q quit (contest keeps running)"
	if m.view.Phase != session.PhaseActive {
		text = "q quit"
	}
	return helpBarStyle.Width(m.width).Render(text)
}

func (m model) renderStatusLine() string {
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(text)
}
