package payment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhtran-03/shopsphere/models"
)

// scriptedFetcher plays back a fixed sequence of order states. paidAfter is
// the number of fetches that report unpaid before the order flips to paid;
// a negative value means the order never pays.
type scriptedFetcher struct {
	mu        sync.Mutex
	calls     int
	paidAfter int
	failCalls map[int]bool
	notFound  bool
}

func (f *scriptedFetcher) FetchOrder(ctx context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.notFound {
		return nil, ErrOrderNotFound
	}
	if f.failCalls[f.calls] {
		return nil, errors.New("connection reset")
	}
	status := models.PaymentStatusUnpaid
	if f.paidAfter >= 0 && f.calls > f.paidAfter {
		status = models.PaymentStatusPaid
	}
	return &models.Order{ID: id, PaymentStatus: status, Total: 150000}, nil
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const testInterval = 5 * time.Millisecond

func TestWatcherFiresExactlyOnceOnPaid(t *testing.T) {
	fetcher := &scriptedFetcher{paidAfter: 3}
	var fired atomic.Int32
	w := NewWatcher(fetcher, testInterval, func(o *models.Order) {
		assert.True(t, o.IsPaid())
		fired.Add(1)
	})

	require.NoError(t, w.Start(context.Background(), "order-1"))
	defer w.Stop()

	require.Eventually(t, func() bool { return fired.Load() == 1 }, 2*time.Second, 2*time.Millisecond)

	time.Sleep(10 * testInterval)
	assert.Equal(t, int32(1), fired.Load())
}

func TestWatcherNoActionWhileUnpaid(t *testing.T) {
	fetcher := &scriptedFetcher{paidAfter: -1}
	var fired atomic.Int32
	w := NewWatcher(fetcher, testInterval, func(*models.Order) { fired.Add(1) })

	require.NoError(t, w.Start(context.Background(), "order-1"))

	time.Sleep(12 * testInterval)
	w.Stop()

	assert.Zero(t, fired.Load())
	assert.GreaterOrEqual(t, fetcher.callCount(), 2)
}

func TestWatcherStopHaltsFetches(t *testing.T) {
	fetcher := &scriptedFetcher{paidAfter: -1}
	w := NewWatcher(fetcher, testInterval, nil)

	require.NoError(t, w.Start(context.Background(), "order-1"))

	require.Eventually(t, func() bool { return fetcher.callCount() >= 3 }, 2*time.Second, 2*time.Millisecond)
	w.Stop()

	after := fetcher.callCount()
	time.Sleep(10 * testInterval)
	assert.Equal(t, after, fetcher.callCount())
}

func TestWatcherAlreadyPaidSkipsPolling(t *testing.T) {
	fetcher := &scriptedFetcher{paidAfter: 0}
	var fired atomic.Int32
	w := NewWatcher(fetcher, testInterval, func(*models.Order) { fired.Add(1) })

	require.NoError(t, w.Start(context.Background(), "order-1"))

	assert.Equal(t, int32(1), fired.Load())
	time.Sleep(5 * testInterval)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestWatcherInitialNotFound(t *testing.T) {
	fetcher := &scriptedFetcher{notFound: true}
	var fired atomic.Int32
	w := NewWatcher(fetcher, testInterval, func(*models.Order) { fired.Add(1) })

	err := w.Start(context.Background(), "missing")
	require.ErrorIs(t, err, ErrOrderNotFound)

	time.Sleep(5 * testInterval)
	assert.Zero(t, fired.Load())
	assert.Equal(t, 1, fetcher.callCount())
}

func TestWatcherToleratesTickFailures(t *testing.T) {
	// Initial fetch succeeds unpaid, the next two ticks fail, then paid.
	fetcher := &scriptedFetcher{paidAfter: 3, failCalls: map[int]bool{2: true, 3: true}}
	var fired atomic.Int32
	w := NewWatcher(fetcher, testInterval, func(*models.Order) { fired.Add(1) })

	require.NoError(t, w.Start(context.Background(), "order-1"))
	defer w.Stop()

	require.Eventually(t, func() bool { return fired.Load() == 1 }, 2*time.Second, 2*time.Millisecond)
}

func TestWatcherContextCancellation(t *testing.T) {
	fetcher := &scriptedFetcher{paidAfter: -1}
	w := NewWatcher(fetcher, testInterval, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, "order-1"))

	cancel()
	w.Stop()

	after := fetcher.callCount()
	time.Sleep(10 * testInterval)
	assert.Equal(t, after, fetcher.callCount())
}
