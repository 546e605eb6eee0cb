package pages

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgrizqy/ticketing-cli/simulator"
)

// actionResultMsg delivers the outcome of an approve/reject mutation.
type actionResultMsg struct {
	action simulator.Action
	err    error
}

// SimulatorModel is the developer drawer: type a transaction id, approve or
// reject it, then jump to its confirmation view.
type SimulatorModel struct {
	sim   *simulator.Simulator
	input textinput.Model

	notice   string
	viewID   string
	quitting bool
}

func NewSimulator(sim *simulator.Simulator) SimulatorModel {
	input := textinput.New()
	input.Placeholder = "Enter transaction UUID..."
	input.Focus()
	input.CharLimit = 64
	input.Width = 40

	return SimulatorModel{sim: sim, input: input}
}

func (m SimulatorModel) Init() tea.Cmd {
	return textinput.Blink
}

// ViewTransactionID is the id to open the confirmation page for, when the
// operator chose "view"; empty otherwise.
func (m SimulatorModel) ViewTransactionID() string { return m.viewID }

func (m SimulatorModel) apply(action simulator.Action) tea.Cmd {
	sim, id := m.sim, strings.TrimSpace(m.input.Value())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return actionResultMsg{action: action, err: sim.Apply(ctx, action, id)}
	}
}

func (m SimulatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionResultMsg:
		if msg.err != nil {
			m.notice = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.notice = noticeStyle.Render("Transaction successfully set to: " +
			strings.ToUpper(string(msg.action)))
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlA:
			return m, m.apply(simulator.ActionApprove)
		case tea.KeyCtrlR:
			return m, m.apply(simulator.ActionReject)
		case tea.KeyCtrlV:
			if id := m.sim.LastTransactionID(); id != "" {
				m.viewID = id
				m.quitting = true
				return m, tea.Quit
			}
			m.notice = errorStyle.Render("no transaction updated yet")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SimulatorModel) View() string {
	body := titleStyle.Render("Dev: Transaction Simulator") + "\n\n" +
		labelStyle.Render("Transaction Detail ID") + "\n" +
		m.input.View() + "\n\n" +
		"[ ctrl+a Approve ]   [ ctrl+r Reject ]"

	if id := m.sim.LastTransactionID(); id != "" {
		short := id
		if len(short) > 8 {
			short = short[:8] + "..."
		}
		body += "\n\n[ ctrl+v View Confirmation Page for #" + short + " ]"
	}

	out := cardStyle.Render(body) + "\n"
	if m.notice != "" {
		out += m.notice + "\n"
	}
	return out + helpStyle.Render("esc to close") + "\n"
}
