package simulator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/session"
)

type stubMutator struct {
	approved []string
	rejected []string
	err      error
}

func (m *stubMutator) Approve(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.approved = append(m.approved, id)
	return nil
}

func (m *stubMutator) Reject(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.rejected = append(m.rejected, id)
	return nil
}

func loggedIn() session.Store {
	s := session.NewMemoryStore()
	s.Login("tok")
	return s
}

func TestApplyApprove(t *testing.T) {
	mut := &stubMutator{}
	sim := New(mut, loggedIn())

	require.NoError(t, sim.Apply(context.Background(), ActionApprove, "txn-123"))
	assert.Equal(t, []string{"txn-123"}, mut.approved)
	assert.Equal(t, "txn-123", sim.LastTransactionID())
	assert.Equal(t, "/transaction/confirmation/txn-123", sim.ConfirmationRoute())
}

func TestApplyReject(t *testing.T) {
	mut := &stubMutator{}
	sim := New(mut, loggedIn())

	require.NoError(t, sim.Apply(context.Background(), ActionReject, "txn-456"))
	assert.Equal(t, []string{"txn-456"}, mut.rejected)
	assert.Equal(t, "txn-456", sim.LastTransactionID())
}

func TestApplyEmptyID(t *testing.T) {
	mut := &stubMutator{}
	sim := New(mut, loggedIn())

	err := sim.Apply(context.Background(), ActionApprove, "")

	var ve *apiclient.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, mut.approved, "no network call on local validation failure")
	assert.Empty(t, sim.LastTransactionID())
}

func TestApplyNoSession(t *testing.T) {
	mut := &stubMutator{}
	sim := New(mut, session.NewMemoryStore())

	err := sim.Apply(context.Background(), ActionApprove, "txn-123")

	var ae *apiclient.AuthError
	assert.ErrorAs(t, err, &ae)
	assert.Empty(t, mut.approved)
}

func TestApplyFailureDoesNotRetainID(t *testing.T) {
	mut := &stubMutator{err: errors.New("backend down")}
	sim := New(mut, loggedIn())

	assert.Error(t, sim.Apply(context.Background(), ActionReject, "txn-123"))
	assert.Empty(t, sim.LastTransactionID())
	assert.Empty(t, sim.ConfirmationRoute())
}
