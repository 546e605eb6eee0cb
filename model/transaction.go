package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PaymentWindow is how long a transaction stays payable after creation.
const PaymentWindow = 2 * time.Hour

// Status is the closed set of transaction states. The client never invents
// one; it only parses what the transaction store returns.
type Status string

const (
	StatusPending             Status = "PENDING"
	StatusWaitingConfirmation Status = "WAITING_CONFIRMATION"
	StatusPaid                Status = "PAID"
	StatusRejected            Status = "REJECTED"
	StatusExpired             Status = "EXPIRED"
)

// ParseStatus maps a wire string onto the closed Status set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusWaitingConfirmation, StatusPaid, StatusRejected, StatusExpired:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown transaction status %q", s)
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusRejected || s == StatusExpired
}

// CanTransitionTo enforces the one-directional lifecycle:
// PENDING -> WAITING_CONFIRMATION -> {PAID, REJECTED}, with PENDING also
// allowed to jump straight to a terminal state (simulator action or window
// expiry before any proof was uploaded).
func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusWaitingConfirmation || next == StatusPaid ||
			next == StatusRejected || next == StatusExpired
	case StatusWaitingConfirmation:
		return next == StatusPaid || next == StatusRejected
	}
	return false
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DetailEvent carries the display fields of the event a transaction pays
// for. Read-only from the client's perspective.
type DetailEvent struct {
	Name string `json:"name"`
}

// Transaction mirrors the record owned by the external transaction store.
// Field names follow the store's JSON contract.
type Transaction struct {
	ID          string      `json:"id"`
	Amount      int64       `json:"amount"`
	Status      Status      `json:"transaction_status"`
	CreatedAt   time.Time   `json:"created_at"`
	DetailEvent DetailEvent `json:"detail_event"`
}

// ExpiresAt derives the payment deadline from the creation instant. Single
// derivation point; callers must not recompute it against their own clock.
func (t *Transaction) ExpiresAt() time.Time {
	return t.CreatedAt.Add(PaymentWindow)
}
