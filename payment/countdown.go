package payment

import (
	"context"
	"fmt"
	"time"
)

// Expired is rendered once the payment deadline has passed.
const Expired = "EXPIRED"

// FormatRemaining renders the time left until deadline as "m:ss" with
// zero-padded seconds. A deadline at or before now renders as Expired.
func FormatRemaining(deadline, now time.Time) string {
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return Expired
	}
	secs := int(remaining.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Countdown ticks once per second and reports the time remaining until a
// payment deadline. A nil deadline disables it entirely: Run returns without
// starting a timer. The countdown is independent of payment detection; an
// expired deadline keeps emitting Expired until the caller cancels.
type Countdown struct {
	deadline *time.Time
	interval time.Duration
	now      func() time.Time
}

// NewCountdown returns a countdown for an optional deadline.
func NewCountdown(deadline *time.Time) *Countdown {
	return &Countdown{
		deadline: deadline,
		interval: time.Second,
		now:      time.Now,
	}
}

// Run emits the rendered remaining time immediately and then once per tick
// until ctx is cancelled.
func (cd *Countdown) Run(ctx context.Context, emit func(string)) {
	if cd.deadline == nil {
		return
	}

	emit(FormatRemaining(*cd.deadline, cd.now()))

	ticker := time.NewTicker(cd.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			emit(FormatRemaining(*cd.deadline, cd.now()))
		}
	}
}
