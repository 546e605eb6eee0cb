package pages

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/confirmation"
)

// resolvedMsg delivers the confirmation resolution for the page.
type resolvedMsg struct {
	result confirmation.Result
	err    error
}

// ConfirmationModel is the terminal screen for a transaction's outcome:
// confirmed, rejected, or not found.
type ConfirmationModel struct {
	client *apiclient.Client
	txnID  string

	resolved bool
	result   confirmation.Result
	authErr  error
}

func NewConfirmation(client *apiclient.Client, txnID string) ConfirmationModel {
	return ConfirmationModel{client: client, txnID: txnID}
}

func (m ConfirmationModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		result, err := confirmation.Resolve(ctx, m.client, m.txnID)
		return resolvedMsg{result: result, err: err}
	}
}

// AuthErr reports whether resolution failed for lack of a session, so the
// caller can send the user to the login flow.
func (m ConfirmationModel) AuthErr() error { return m.authErr }

func (m ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg:
		if msg.err != nil {
			m.authErr = msg.err
			return m, tea.Quit
		}
		m.resolved = true
		m.result = msg.result
		return m, nil

	case tea.KeyMsg:
		return m, tea.Quit
	}
	return m, nil
}

// shortID mirrors the web page's order reference: the tail of the id,
// uppercased.
func shortID(id string) string {
	if len(id) > 12 {
		id = id[len(id)-12:]
	}
	return strings.ToUpper(id)
}

func (m ConfirmationModel) View() string {
	if !m.resolved {
		return "Loading confirmation...\n"
	}

	var body string
	switch m.result.Outcome {
	case confirmation.OutcomeConfirmed:
		tx := m.result.Transaction
		body = noticeStyle.Render("🎉 Payment Confirmed!") + "\n\n" +
			labelStyle.Render("Status for order "+shortID(tx.ID)) + "\n" +
			labelStyle.Render("Date:           ") + tx.CreatedAt.Format("02 Jan 2006") + "\n" +
			labelStyle.Render("Payment Method: ") + "Bank Transfer\n" +
			labelStyle.Render("Total Amount:   ") + amountStyle.Render(formatIDR(tx.Amount)) + "\n\n" +
			"Your e-tickets have been sent to your email. Enjoy the event!"

	case confirmation.OutcomeRejected:
		tx := m.result.Transaction
		body = errorStyle.Render("✗ Transaction Rejected") + "\n\n" +
			labelStyle.Render("Status for order "+shortID(tx.ID)) + "\n" +
			labelStyle.Render("Date:           ") + tx.CreatedAt.Format("02 Jan 2006") + "\n" +
			labelStyle.Render("Total Amount:   ") + amountStyle.Render(formatIDR(tx.Amount)) + "\n\n" +
			"Any points or vouchers used have been refunded to your account."

	default:
		body = errorStyle.Render("Transaction not found") + "\n\n" +
			"We couldn't find that transaction. Check the id and try again."
	}

	return cardStyle.Render(body) + "\n" + helpStyle.Render("press any key to close") + "\n"
}
