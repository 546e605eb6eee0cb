// Package submission governs the proof-of-payment upload lifecycle on the
// payment page: idle -> submitting -> done, with a retry path back to idle
// on remote failure.
package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/session"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

var (
	// ErrExpired means the payment window closed; submission stays blocked
	// at idle.
	ErrExpired = errors.New("payment window has expired")
	// ErrAlreadyDone means the proof was already submitted on this page
	// instance.
	ErrAlreadyDone = errors.New("payment proof already submitted")
)

// UploadFunc performs the proof submission call for a transaction.
type UploadFunc func(ctx context.Context, txnID, proofRef string) error

// NavigateDelay is how long the page lingers on the success notice before
// returning to the landing view.
const NavigateDelay = 3 * time.Second

// Machine is the page-scoped submission state machine. One instance per
// payment page visit; destroyed (Closed) on navigation away.
type Machine struct {
	mu       sync.Mutex
	state    State
	artifact string
	navTimer *time.Timer

	txnID    string
	upload   UploadFunc
	sess     session.Store
	expired  func() bool
	navigate func()
	navDelay time.Duration
}

// Config wires a Machine to its page. Expired is the shared gate with the
// countdown engine; Navigate fires once, NavigateDelay after a successful
// submission.
type Config struct {
	TxnID    string
	Upload   UploadFunc
	Session  session.Store
	Expired  func() bool
	Navigate func()
}

func NewMachine(cfg Config) *Machine {
	return &Machine{
		state:    StateIdle,
		txnID:    cfg.TxnID,
		upload:   cfg.Upload,
		sess:     cfg.Session,
		expired:  cfg.Expired,
		navigate: cfg.Navigate,
		navDelay: NavigateDelay,
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SelectArtifact records the proof file reference. Kept across failed
// submissions so a retry does not need re-selection.
func (m *Machine) SelectArtifact(ref string) {
	m.mu.Lock()
	m.artifact = ref
	m.mu.Unlock()
}

func (m *Machine) Artifact() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.artifact
}

// Submit runs the proof upload. Preconditions are checked before any state
// change or network traffic: an artifact must be selected, a session must
// be present, and the countdown must not have expired. A Submit while one
// is already in flight is a no-op, so rapid double-submits produce exactly
// one upload call.
func (m *Machine) Submit(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case StateDone:
		m.mu.Unlock()
		return ErrAlreadyDone
	case StateSubmitting:
		m.mu.Unlock()
		return nil
	}
	if m.expired != nil && m.expired() {
		m.mu.Unlock()
		return ErrExpired
	}
	if m.artifact == "" {
		m.mu.Unlock()
		return &apiclient.ValidationError{Msg: "no file selected"}
	}
	if m.sess.Token() == "" {
		m.mu.Unlock()
		return &apiclient.AuthError{Msg: "authentication session not found"}
	}

	m.state = StateSubmitting
	txnID, artifact := m.txnID, m.artifact
	m.mu.Unlock()

	err := m.upload(ctx, txnID, artifact)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		// back to idle, artifact preserved for retry
		m.state = StateIdle
		return err
	}

	m.state = StateDone
	if m.navigate != nil {
		m.navTimer = time.AfterFunc(m.navDelay, m.navigate)
	}
	return nil
}

// Close tears the machine down with its page: a scheduled post-submission
// navigation that has not fired yet is cancelled.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.navTimer != nil {
		m.navTimer.Stop()
		m.navTimer = nil
	}
}
