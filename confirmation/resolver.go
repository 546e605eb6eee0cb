// Package confirmation classifies a transaction's terminal status for the
// confirmation view.
package confirmation

import (
	"context"
	"errors"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/model"
)

// Outcome is what the confirmation view renders.
type Outcome int

const (
	// OutcomeConfirmed is the success branch: payment accepted, tickets
	// issued.
	OutcomeConfirmed Outcome = iota
	// OutcomeRejected is the failure branch. Rejected, expired, and
	// still-unconfirmed transactions all land here; the distinction is
	// preserved in Result.Status.
	OutcomeRejected
	// OutcomeNotFound is the dedicated terminal screen for a record that
	// could not be retrieved.
	OutcomeNotFound
)

// Result is the resolved confirmation state. Transaction is nil for
// OutcomeNotFound.
type Result struct {
	Outcome     Outcome
	Status      model.Status
	Transaction *model.Transaction
}

// Fetcher is the read side of the transaction API.
type Fetcher interface {
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
}

// Resolve fetches the transaction and classifies it. Only a missing or
// rejected credential comes back as an error, so the caller can redirect to
// login; any other failure renders the not-found terminal screen instead of
// crashing the page.
func Resolve(ctx context.Context, f Fetcher, id string) (Result, error) {
	tx, err := f.GetTransaction(ctx, id)
	if err != nil {
		var authErr *apiclient.AuthError
		if errors.As(err, &authErr) {
			return Result{}, err
		}
		return Result{Outcome: OutcomeNotFound}, nil
	}

	// Exhaustive over the closed status set. Anything that is not PAID
	// renders the failure branch; the underlying status rides along so a
	// future view can tell a rejection from an expiry.
	switch tx.Status {
	case model.StatusPaid:
		return Result{Outcome: OutcomeConfirmed, Status: tx.Status, Transaction: tx}, nil
	case model.StatusRejected, model.StatusExpired,
		model.StatusWaitingConfirmation, model.StatusPending:
		return Result{Outcome: OutcomeRejected, Status: tx.Status, Transaction: tx}, nil
	default:
		// unreachable with a parsed Status; treat as unresolvable
		return Result{Outcome: OutcomeNotFound}, nil
	}
}
