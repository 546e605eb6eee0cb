// Package pages hosts the terminal renditions of the transaction flow's
// web pages. Each page is a bubbletea model: timer and input events
// interleave on one message loop per page instance, and teardown cancels
// anything still scheduled.
package pages

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/countdown"
	"github.com/mgrizqy/ticketing-cli/model"
	"github.com/mgrizqy/ticketing-cli/submission"
)

// paymentTickMsg drives the once-per-second countdown re-render.
type paymentTickMsg struct{}

// txLoadedMsg delivers the fetched transaction (or the fetch failure).
type txLoadedMsg struct {
	tx  *model.Transaction
	err error
}

// submitResultMsg delivers the outcome of a proof submission.
type submitResultMsg struct {
	err error
}

// paymentNavigateMsg fires the delayed return to the landing view after a
// successful submission.
type paymentNavigateMsg struct{}

// PaymentModel is the payment page: live countdown, proof selection, and
// the submission state machine, for one transaction.
type PaymentModel struct {
	client *apiclient.Client
	txnID  string

	tx       *model.Transaction
	timeLeft string
	machine  *submission.Machine
	proof    textinput.Model
	notice   string
	loadErr  error
	quitting bool
}

func NewPayment(client *apiclient.Client, txnID string) PaymentModel {
	proof := textinput.New()
	proof.Placeholder = "path or URL of your transfer receipt"
	proof.Focus()
	proof.CharLimit = 200
	proof.Width = 44

	return PaymentModel{
		client: client,
		txnID:  txnID,
		proof:  proof,
	}
}

func (m PaymentModel) Init() tea.Cmd {
	return m.loadTransaction
}

func (m PaymentModel) loadTransaction() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tx, err := m.client.GetTransaction(ctx, m.txnID)
	return txLoadedMsg{tx: tx, err: err}
}

func paymentTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return paymentTickMsg{} })
}

// expired is the shared gate between the countdown and the submission
// machine.
func (m *PaymentModel) expired() bool {
	return m.timeLeft == countdown.Expired
}

func (m PaymentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, tea.Quit
		}
		m.tx = msg.tx
		m.timeLeft = countdown.Display(m.tx.CreatedAt, time.Now())
		tx := m.tx
		expired := func() bool {
			return countdown.Display(tx.CreatedAt, time.Now()) == countdown.Expired
		}
		// navigation is scheduled through the message loop, not the
		// machine's own timer, so teardown cancels it for free
		m.machine = submission.NewMachine(submission.Config{
			TxnID:   m.tx.ID,
			Upload:  m.client.UploadProof,
			Session: m.client.Session,
			Expired: expired,
		})
		if m.expired() {
			return m, nil
		}
		return m, paymentTick()

	case paymentTickMsg:
		// stale ticks after teardown or expiry are dropped
		if m.quitting || m.tx == nil || m.expired() {
			return m, nil
		}
		m.timeLeft = countdown.Display(m.tx.CreatedAt, time.Now())
		if m.expired() {
			return m, nil
		}
		return m, paymentTick()

	case submitResultMsg:
		if msg.err != nil {
			m.notice = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.notice = noticeStyle.Render("Payment proof submitted! Awaiting organizer confirmation.")
		return m, tea.Tick(submission.NavigateDelay, func(time.Time) tea.Msg {
			return paymentNavigateMsg{}
		})

	case paymentNavigateMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			if m.machine != nil {
				m.machine.Close()
			}
			return m, tea.Quit
		case tea.KeyEnter:
			if m.machine == nil {
				return m, nil
			}
			m.machine.SelectArtifact(m.proof.Value())
			machine := m.machine
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return submitResultMsg{err: machine.Submit(ctx)}
			}
		}
	}

	var cmd tea.Cmd
	m.proof, cmd = m.proof.Update(msg)
	return m, cmd
}

func (m PaymentModel) buttonText() string {
	if m.machine == nil {
		return "Loading..."
	}
	switch m.machine.State() {
	case submission.StateSubmitting:
		return "Submitting..."
	case submission.StateDone:
		return "Submitted Successfully"
	default:
		if m.expired() {
			return "Payment Window Closed"
		}
		return "Submit Payment Proof (enter)"
	}
}

func (m PaymentModel) View() string {
	if m.loadErr != nil {
		return errorStyle.Render("Failed to fetch transaction details: "+m.loadErr.Error()) + "\n"
	}
	if m.tx == nil {
		return "Loading payment details...\n"
	}

	body := titleStyle.Render("Complete Your Payment") + "\n" +
		labelStyle.Render("For: "+m.tx.DetailEvent.Name) + "\n\n" +
		labelStyle.Render("Total Amount Due: ") + amountStyle.Render(formatIDR(m.tx.Amount)) + "\n" +
		labelStyle.Render("Time Remaining:   ") + timerStyle.Render(m.timeLeft) + "\n\n" +
		labelStyle.Render("Upload Your Receipt") + "\n" +
		m.proof.View() + "\n\n" +
		"[ " + m.buttonText() + " ]"

	out := cardStyle.Render(body) + "\n"
	if m.notice != "" {
		out += m.notice + "\n"
	}
	return out + helpStyle.Render("esc to go back") + "\n"
}
