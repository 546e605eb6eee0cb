package pages

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgrizqy/ticketing-cli/apiclient"
)

// loginResultMsg delivers the outcome of the credential exchange.
type loginResultMsg struct {
	err error
}

// LoginModel is the sign-in form. On success the client's session store
// holds the bearer token.
type LoginModel struct {
	client *apiclient.Client

	email    textinput.Model
	password textinput.Model
	focused  int
	notice   string
	loggedIn bool
}

func NewLogin(client *apiclient.Client) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	email.Width = 36

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.Width = 36

	return LoginModel{client: client, email: email, password: password}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// LoggedIn reports whether the session was established before the page
// closed.
func (m LoginModel) LoggedIn() bool { return m.loggedIn }

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.err != nil {
			m.notice = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.loggedIn = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab:
			m.focused = (m.focused + 1) % 2
			if m.focused == 0 {
				m.email.Focus()
				m.password.Blur()
			} else {
				m.password.Focus()
				m.email.Blur()
			}
			return m, nil
		case tea.KeyEnter:
			client := m.client
			email, password := m.email.Value(), m.password.Value()
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return loginResultMsg{err: client.Login(ctx, email, password)}
			}
		}
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m LoginModel) View() string {
	body := titleStyle.Render("Sign In") + "\n\n" +
		labelStyle.Render("Email") + "\n" + m.email.View() + "\n" +
		labelStyle.Render("Password") + "\n" + m.password.View() + "\n\n" +
		"[ Sign In (enter) ]"

	out := cardStyle.Render(body) + "\n"
	if m.notice != "" {
		out += m.notice + "\n"
	}
	return out + helpStyle.Render("tab to switch field, esc to cancel") + "\n"
}
