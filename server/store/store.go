// Package store keeps the dev server's transaction records in memory.
// There is no persistence by design; restarting the server starts a clean
// slate.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mgrizqy/ticketing-cli/model"
)

var (
	ErrNotFound          = errors.New("transaction not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Record is a stored transaction plus the server-side fields the client
// never reads back.
type Record struct {
	model.Transaction
	PaymentProof string `json:"payment_proof,omitempty"`
}

type TransactionStore struct {
	mu   sync.RWMutex
	txns map[string]*Record
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{txns: make(map[string]*Record)}
}

// Create inserts a fresh PENDING transaction and returns a copy of it.
func (s *TransactionStore) Create(eventName string, amount int64) Record {
	rec := &Record{
		Transaction: model.Transaction{
			ID:          uuid.NewString(),
			Amount:      amount,
			Status:      model.StatusPending,
			CreatedAt:   time.Now().UTC(),
			DetailEvent: model.DetailEvent{Name: eventName},
		},
	}

	s.mu.Lock()
	s.txns[rec.ID] = rec
	s.mu.Unlock()
	return *rec
}

// Get returns a copy of the record, so callers can't mutate the store
// behind the lock.
func (s *TransactionStore) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.txns[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// SetStatus applies one status transition, enforcing the lifecycle rules in
// a single place.
func (s *TransactionStore) SetStatus(id string, next model.Status) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.txns[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	if !rec.Status.CanTransitionTo(next) {
		return Record{}, ErrInvalidTransition
	}
	rec.Status = next
	return *rec, nil
}

// AttachProof records the proof reference and moves the transaction to
// WAITING_CONFIRMATION in one step.
func (s *TransactionStore) AttachProof(id, proofRef string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.txns[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	if !rec.Status.CanTransitionTo(model.StatusWaitingConfirmation) {
		return Record{}, ErrInvalidTransition
	}
	rec.PaymentProof = proofRef
	rec.Status = model.StatusWaitingConfirmation
	return *rec, nil
}
