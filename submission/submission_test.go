package submission

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/session"
)

func loggedIn() session.Store {
	s := session.NewMemoryStore()
	s.Login("tok")
	return s
}

func TestSubmitSuccess(t *testing.T) {
	var gotTxn, gotProof string
	m := NewMachine(Config{
		TxnID:   "txn-123",
		Session: loggedIn(),
		Upload: func(ctx context.Context, txnID, proofRef string) error {
			gotTxn, gotProof = txnID, proofRef
			return nil
		},
	})
	defer m.Close()

	m.SelectArtifact("receipt.png")
	require.NoError(t, m.Submit(context.Background()))

	assert.Equal(t, StateDone, m.State())
	assert.Equal(t, "txn-123", gotTxn)
	assert.Equal(t, "receipt.png", gotProof)
}

func TestSubmitNoArtifact(t *testing.T) {
	calls := 0
	m := NewMachine(Config{
		TxnID:   "txn-123",
		Session: loggedIn(),
		Upload: func(ctx context.Context, _, _ string) error {
			calls++
			return nil
		},
	})
	defer m.Close()

	err := m.Submit(context.Background())

	var ve *apiclient.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, StateIdle, m.State())
	assert.Zero(t, calls, "no network call without an artifact")
}

func TestSubmitNoSession(t *testing.T) {
	calls := 0
	m := NewMachine(Config{
		TxnID:   "txn-123",
		Session: session.NewMemoryStore(),
		Upload: func(ctx context.Context, _, _ string) error {
			calls++
			return nil
		},
	})
	defer m.Close()

	m.SelectArtifact("receipt.png")
	err := m.Submit(context.Background())

	var ae *apiclient.AuthError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, StateIdle, m.State())
	assert.Zero(t, calls)
}

func TestSubmitBlockedAfterExpiry(t *testing.T) {
	calls := 0
	m := NewMachine(Config{
		TxnID:   "txn-123",
		Session: loggedIn(),
		Expired: func() bool { return true },
		Upload: func(ctx context.Context, _, _ string) error {
			calls++
			return nil
		},
	})
	defer m.Close()

	m.SelectArtifact("receipt.png")
	err := m.Submit(context.Background())

	assert.ErrorIs(t, err, ErrExpired)
	assert.Equal(t, StateIdle, m.State())
	assert.Zero(t, calls)
}

func TestSubmitRemoteFailureRevertsAndKeepsArtifact(t *testing.T) {
	fail := true
	m := NewMachine(Config{
		TxnID:   "txn-123",
		Session: loggedIn(),
		Upload: func(ctx context.Context, _, _ string) error {
			if fail {
				return &apiclient.TransportError{Op: "submit proof", Err: errors.New("backend down")}
			}
			return nil
		},
	})
	defer m.Close()

	m.SelectArtifact("receipt.png")

	var te *apiclient.TransportError
	err := m.Submit(context.Background())
	require.ErrorAs(t, err, &te)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, "receipt.png", m.Artifact(), "retry must not require re-selecting the file")

	fail = false
	require.NoError(t, m.Submit(context.Background()))
	assert.Equal(t, StateDone, m.State())
}

func TestSubmitDoneIsTerminal(t *testing.T) {
	calls := 0
	m := NewMachine(Config{
		TxnID:   "txn-123",
		Session: loggedIn(),
		Upload: func(ctx context.Context, _, _ string) error {
			calls++
			return nil
		},
	})
	defer m.Close()

	m.SelectArtifact("receipt.png")
	require.NoError(t, m.Submit(context.Background()))

	assert.ErrorIs(t, m.Submit(context.Background()), ErrAlreadyDone)
	assert.Equal(t, StateDone, m.State())
	assert.Equal(t, 1, calls)
}

func TestSubmitIdempotentWhileInFlight(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	m := NewMachine(Config{
		TxnID:   "txn-123",
		Session: loggedIn(),
		Upload: func(ctx context.Context, _, _ string) error {
			calls.Add(1)
			<-release
			return nil
		},
	})
	defer m.Close()

	m.SelectArtifact("receipt.png")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Submit(context.Background())
	}()

	// wait for the first submit to be in flight, then submit again
	require.Eventually(t, func() bool { return m.State() == StateSubmitting },
		2*time.Second, 5*time.Millisecond)
	require.NoError(t, m.Submit(context.Background()), "second submit is a no-op")

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "exactly one upload call")
	assert.Equal(t, StateDone, m.State())
}

func TestNavigationScheduledOnceAndCancellable(t *testing.T) {
	navigated := make(chan struct{}, 1)
	m := NewMachine(Config{
		TxnID:    "txn-123",
		Session:  loggedIn(),
		Upload:   func(ctx context.Context, _, _ string) error { return nil },
		Navigate: func() { navigated <- struct{}{} },
	})
	m.navDelay = 10 * time.Millisecond

	m.SelectArtifact("receipt.png")
	require.NoError(t, m.Submit(context.Background()))

	select {
	case <-navigated:
	case <-time.After(2 * time.Second):
		t.Fatal("post-submission navigation never fired")
	}

	// tearing down after the timer fired is fine
	m.Close()
}

func TestCloseCancelsPendingNavigation(t *testing.T) {
	navigated := make(chan struct{}, 1)
	m := NewMachine(Config{
		TxnID:    "txn-123",
		Session:  loggedIn(),
		Upload:   func(ctx context.Context, _, _ string) error { return nil },
		Navigate: func() { navigated <- struct{}{} },
	})
	m.navDelay = 50 * time.Millisecond

	m.SelectArtifact("receipt.png")
	require.NoError(t, m.Submit(context.Background()))
	m.Close()

	select {
	case <-navigated:
		t.Fatal("navigation fired after teardown")
	case <-time.After(150 * time.Millisecond):
	}
}
