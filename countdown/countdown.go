// Package countdown derives the remaining payment time for a transaction
// and drives the once-per-second tick behind the payment page.
package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mgrizqy/ticketing-cli/model"
)

// Expired is the terminal display value. Emitted exactly once; after that
// the engine stops ticking.
const Expired = "Expired"

var ErrInvalidCreatedAt = errors.New("countdown: created_at must be a valid past instant")

// Remaining returns the time left in the payment window, floored to whole
// seconds. Zero or negative means the window has closed.
func Remaining(createdAt, now time.Time) time.Duration {
	left := createdAt.Add(model.PaymentWindow).Sub(now)
	return left.Truncate(time.Second)
}

// Format renders a non-negative duration as HH:MM:SS.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Display is the single decision point for what the payment page shows:
// HH:MM:SS while the window is open (sub-second remainders floor, so the
// display never reads 00:00:00 a full second early), Expired once
// now >= created_at + window.
func Display(createdAt, now time.Time) string {
	left := createdAt.Add(model.PaymentWindow).Sub(now)
	if left <= 0 {
		return Expired
	}
	return Format(left.Truncate(time.Second))
}

// Engine re-evaluates the display once per second and pushes each value to
// the emit callback. It stops itself after emitting Expired; Stop is the
// cancellation handle for teardown and is safe to call more than once.
type Engine struct {
	createdAt time.Time
	interval  time.Duration
	now       func() time.Time
	emit      func(string)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewEngine validates the creation instant and prepares a ticker. A zero or
// future created_at is rejected up front so no garbage reaches formatting.
func NewEngine(createdAt time.Time, emit func(string)) (*Engine, error) {
	return newEngine(createdAt, emit, time.Second, time.Now)
}

func newEngine(createdAt time.Time, emit func(string), interval time.Duration, now func() time.Time) (*Engine, error) {
	if createdAt.IsZero() || createdAt.After(now()) {
		return nil, ErrInvalidCreatedAt
	}
	return &Engine{
		createdAt: createdAt,
		interval:  interval,
		now:       now,
		emit:      emit,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Start emits the current value immediately, then once per tick until the
// window closes or Stop is called.
func (e *Engine) Start() {
	go func() {
		defer close(e.done)

		if e.step() {
			return
		}
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-e.stop:
				return
			case <-ticker.C:
				if e.step() {
					return
				}
			}
		}
	}()
}

// step emits one value and reports whether the engine should stop.
func (e *Engine) step() bool {
	value := Display(e.createdAt, e.now())
	e.emit(value)
	return value == Expired
}

// Stop cancels ticking. Idempotent; also safe after the engine stopped
// itself at expiry.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// Done is closed once the tick loop has exited, whether by expiry or Stop.
func (e *Engine) Done() <-chan struct{} { return e.done }
