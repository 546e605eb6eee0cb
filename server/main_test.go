package main

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/confirmation"
	"github.com/mgrizqy/ticketing-cli/model"
	"github.com/mgrizqy/ticketing-cli/server/controller"
	"github.com/mgrizqy/ticketing-cli/server/store"
	"github.com/mgrizqy/ticketing-cli/session"
	"github.com/mgrizqy/ticketing-cli/simulator"
)

// Spins the dev server on a random port and exercises the whole flow with
// the real client: login, proof upload, simulator mutation, confirmation
// resolution.
func startServer(t *testing.T) (*apiclient.Client, *store.TransactionStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	txStore := store.NewTransactionStore()
	app := newApp("test-secret", txStore, []controller.Account{
		{ID: "user-1", Email: "eky@mail.com", PasswordHash: hash},
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)
	t.Cleanup(func() { _ = app.Shutdown() })

	client := apiclient.New("http://"+ln.Addr().String()+"/api", session.NewMemoryStore())
	require.NoError(t, client.Login(context.Background(), "eky@mail.com", "password123"))
	return client, txStore
}

func TestPaymentFlowEndToEnd(t *testing.T) {
	client, txStore := startServer(t)
	ctx := context.Background()
	rec := txStore.Create("Jakarta Jazz Festival", 150000)

	tx, err := client.GetTransaction(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, tx.Status)

	require.NoError(t, client.UploadProof(ctx, rec.ID, "https://files.example/receipt.png"))

	tx, err = client.GetTransaction(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaitingConfirmation, tx.Status)
}

func TestSimulatorDrivesConfirmationEndToEnd(t *testing.T) {
	client, txStore := startServer(t)
	ctx := context.Background()
	sim := simulator.New(client, client.Session)

	approved := txStore.Create("Indie Night", 90000)
	require.NoError(t, sim.Apply(ctx, simulator.ActionApprove, approved.ID))
	assert.Equal(t, "/transaction/confirmation/"+approved.ID, sim.ConfirmationRoute())

	res, err := confirmation.Resolve(ctx, client, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, confirmation.OutcomeConfirmed, res.Outcome)

	rejected := txStore.Create("Indie Night", 90000)
	require.NoError(t, sim.Apply(ctx, simulator.ActionReject, rejected.ID))

	res, err = confirmation.Resolve(ctx, client, rejected.ID)
	require.NoError(t, err)
	assert.Equal(t, confirmation.OutcomeRejected, res.Outcome)
	assert.Equal(t, model.StatusRejected, res.Status)

	res, err = confirmation.Resolve(ctx, client, "missing-id")
	require.NoError(t, err)
	assert.Equal(t, confirmation.OutcomeNotFound, res.Outcome)
}
