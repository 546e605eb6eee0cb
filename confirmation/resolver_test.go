package confirmation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/model"
)

type stubFetcher struct {
	tx  *model.Transaction
	err error
}

func (s stubFetcher) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return s.tx, s.err
}

func stubTx(status model.Status) *model.Transaction {
	return &model.Transaction{
		ID:        "txn-123",
		Amount:    150000,
		Status:    status,
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestResolvePaid(t *testing.T) {
	res, err := Resolve(context.Background(), stubFetcher{tx: stubTx(model.StatusPaid)}, "txn-123")
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, res.Outcome)
	assert.Equal(t, model.StatusPaid, res.Status)
	require.NotNil(t, res.Transaction)
}

func TestResolveNonSuccessStatuses(t *testing.T) {
	for _, status := range []model.Status{
		model.StatusRejected,
		model.StatusExpired,
		model.StatusWaitingConfirmation,
		model.StatusPending,
	} {
		t.Run(string(status), func(t *testing.T) {
			res, err := Resolve(context.Background(), stubFetcher{tx: stubTx(status)}, "txn-123")
			require.NoError(t, err)
			assert.Equal(t, OutcomeRejected, res.Outcome)
			assert.Equal(t, status, res.Status, "underlying status is preserved")
		})
	}
}

func TestResolveFetchFailure(t *testing.T) {
	for name, fetchErr := range map[string]error{
		"not found": &apiclient.NotFoundError{ID: "txn-123"},
		"transport": &apiclient.TransportError{Op: "fetch transaction", Err: errors.New("refused")},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := Resolve(context.Background(), stubFetcher{err: fetchErr}, "txn-123")
			require.NoError(t, err)
			assert.Equal(t, OutcomeNotFound, res.Outcome)
			assert.Nil(t, res.Transaction)
		})
	}
}

func TestResolveAuthErrorPropagates(t *testing.T) {
	_, err := Resolve(context.Background(),
		stubFetcher{err: &apiclient.AuthError{Msg: "no session"}}, "txn-123")

	var authErr *apiclient.AuthError
	assert.ErrorAs(t, err, &authErr)
}
