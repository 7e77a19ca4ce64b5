package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/utils"
)

// DefaultPollInterval is the wait between repeated status checks.
const DefaultPollInterval = 3 * time.Second

// ErrOrderNotFound is returned by OrderFetcher implementations when the
// order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderFetcher loads the current state of an order. Implementations must be
// safe to call repeatedly; the watcher issues one fetch per tick.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, id string) (*models.Order, error)
}

// Watcher polls an order on a fixed interval until its payment status
// reports paid, then fires its callback exactly once and stops. It never
// writes order state; the backend is the sole writer of payment_status.
//
// A Watcher watches a single order and is not reusable after Stop.
type Watcher struct {
	orders   OrderFetcher
	interval time.Duration
	onPaid   func(*models.Order)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	paidOnce sync.Once
}

// NewWatcher creates a watcher. A non-positive interval falls back to
// DefaultPollInterval.
func NewWatcher(orders OrderFetcher, interval time.Duration, onPaid func(*models.Order)) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		orders:   orders,
		interval: interval,
		onPaid:   onPaid,
	}
}

// Start issues an immediate fetch of the order. If the order is already paid
// the callback fires and no polling starts. If the initial fetch fails the
// error is returned and no polling starts. Otherwise a background loop polls
// until Stop, ctx cancellation, or paid detection.
func (w *Watcher) Start(ctx context.Context, orderID string) error {
	order, err := w.orders.FetchOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.IsPaid() {
		w.fire(order)
		return nil
	}

	pollCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	w.mu.Lock()
	w.cancel = cancel
	w.done = done
	w.mu.Unlock()

	go w.poll(pollCtx, orderID, done)
	return nil
}

func (w *Watcher) poll(ctx context.Context, orderID string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			order, err := w.orders.FetchOrder(ctx, orderID)
			if err != nil {
				// A failed fetch looks the same as not-yet-paid; the
				// next tick retries.
				utils.LogDebug("payment watcher: fetch failed for order %s: %v", orderID, err)
				continue
			}
			if order.IsPaid() {
				w.fire(order)
				return
			}
		}
	}
}

func (w *Watcher) fire(order *models.Order) {
	w.paidOnce.Do(func() {
		if w.onPaid != nil {
			w.onPaid(order)
		}
	})
}

// Stop cancels polling and waits for the loop to exit. Safe to call more
// than once, or on a watcher that never started polling.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
