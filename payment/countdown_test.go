package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     string
	}{
		{"ninety seconds", now.Add(90 * time.Second), "1:30"},
		{"one second", now.Add(1 * time.Second), "0:01"},
		{"just over a minute", now.Add(61 * time.Second), "1:01"},
		{"quarter hour", now.Add(15 * time.Minute), "15:00"},
		{"exactly now", now, Expired},
		{"in the past", now.Add(-1 * time.Second), Expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRemaining(tt.deadline, now))
		})
	}
}

func TestCountdownNilDeadlineDoesNothing(t *testing.T) {
	cd := NewCountdown(nil)

	emitted := 0
	done := make(chan struct{})
	go func() {
		cd.Run(context.Background(), func(string) { emitted++ })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return for a nil deadline")
	}
	assert.Zero(t, emitted)
}

func TestCountdownEmitsRemaining(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deadline := base.Add(90 * time.Second)
	cd := NewCountdown(&deadline)
	cd.interval = 5 * time.Millisecond
	cd.now = func() time.Time { return base }

	var mu sync.Mutex
	var values []string

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go cd.Run(ctx, func(s string) {
		mu.Lock()
		values = append(values, s)
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(values) >= 3
	}, 2*time.Second, 2*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, v := range values {
		assert.Equal(t, "1:30", v)
	}
}

func TestCountdownKeepsTickingAfterExpiry(t *testing.T) {
	deadline := time.Now().Add(-time.Minute)
	cd := NewCountdown(&deadline)
	cd.interval = 5 * time.Millisecond

	var mu sync.Mutex
	var values []string

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go cd.Run(ctx, func(s string) {
		mu.Lock()
		values = append(values, s)
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(values) >= 3
	}, 2*time.Second, 2*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, v := range values {
		assert.Equal(t, Expired, v)
	}
}
