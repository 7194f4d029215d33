package eligibility

import (
	"context"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
)

// DefaultInterval re-checks twice a minute, often enough for both the
// minute-granular window and the cooldown countdown.
const DefaultInterval = 30 * time.Second

type Evaluator interface {
	Eligibility(ctx context.Context, submitter domain.Submitter) (domain.Decision, error)
}

// Watcher re-evaluates a guest's eligibility on a clock and reports changes.
type Watcher struct {
	eval     Evaluator
	clock    clockwork.Clock
	interval time.Duration
	logger   logger.Logger
}

func NewWatcher(eval Evaluator, clock clockwork.Clock, interval time.Duration, logger logger.Logger) *Watcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{eval: eval, clock: clock, interval: interval, logger: logger}
}

// Run emits the current decision right away and then every time it changes,
// until ctx is done. Evaluation failures are logged and retried on the next
// tick.
func (w *Watcher) Run(ctx context.Context, submitter domain.Submitter, emit func(domain.Decision)) error {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	var (
		last    domain.Decision
		emitted bool
	)
	check := func() {
		d, err := w.eval.Eligibility(ctx, submitter)
		if err != nil {
			if ctx.Err() == nil {
				w.logger.Warn("eligibility_check_failed", "Eligibility refresh failed", "", map[string]interface{}{
					"submitter": submitter.Key(),
					"reason":    err.Error(),
				})
			}
			return
		}
		if emitted && sameDecision(last, d) {
			return
		}
		last, emitted = d, true
		emit(d)
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			check()
		}
	}
}

func sameDecision(a, b domain.Decision) bool {
	return a.Allowed == b.Allowed &&
		a.Enabled == b.Enabled &&
		a.WithinWindow == b.WithinWindow &&
		a.Window == b.Window &&
		a.Cooldown == b.Cooldown &&
		slices.Equal(a.Rejections, b.Rejections)
}
