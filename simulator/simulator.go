// Package simulator is the developer-only control that flips a
// transaction's status out-of-band, standing in for the real payment
// gateway. It must never ship in a production build.
package simulator

import (
	"context"
	"fmt"
	"sync"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/session"
)

// Action is one of the two mutations the simulator can perform. It cannot
// set WAITING_CONFIRMATION or EXPIRED.
type Action string

const (
	ActionApprove Action = "approve" // sets PAID
	ActionReject  Action = "reject"  // sets REJECTED
)

// Mutator is the write side of the simulator endpoints.
type Mutator interface {
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

// Simulator applies approve/reject actions and remembers the last id it
// touched so the operator can jump straight to the confirmation view.
// The remembered id lives only as long as the Simulator itself.
type Simulator struct {
	mu     sync.Mutex
	client Mutator
	sess   session.Store
	lastID string
}

func New(client Mutator, sess session.Store) *Simulator {
	return &Simulator{client: client, sess: sess}
}

// Apply performs one status mutation. Local preconditions fail fast with no
// network call: the id must be non-empty and a session must be present.
func (s *Simulator) Apply(ctx context.Context, action Action, txnID string) error {
	if txnID == "" {
		return &apiclient.ValidationError{Msg: "please enter a transaction id"}
	}
	if s.sess.Token() == "" {
		return &apiclient.AuthError{Msg: "you must be logged in to perform this action"}
	}

	var err error
	switch action {
	case ActionApprove:
		err = s.client.Approve(ctx, txnID)
	case ActionReject:
		err = s.client.Reject(ctx, txnID)
	default:
		return &apiclient.ValidationError{Msg: fmt.Sprintf("unknown simulator action %q", action)}
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lastID = txnID
	s.mu.Unlock()
	return nil
}

// LastTransactionID returns the id of the most recent successful mutation,
// or empty if none happened yet.
func (s *Simulator) LastTransactionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastID
}

// ConfirmationRoute is the forward link to the confirmation view for the
// last mutated transaction. Empty until an action has succeeded.
func (s *Simulator) ConfirmationRoute() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastID == "" {
		return ""
	}
	return "/transaction/confirmation/" + s.lastID
}
