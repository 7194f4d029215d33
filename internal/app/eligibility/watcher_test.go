package eligibility

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
)

type step struct {
	decision domain.Decision
	err      error
}

type scriptedEvaluator struct {
	mu    sync.Mutex
	steps []step
	calls int
}

func (e *scriptedEvaluator) Eligibility(context.Context, domain.Submitter) (domain.Decision, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.steps[len(e.steps)-1]
	if e.calls < len(e.steps) {
		s = e.steps[e.calls]
	}
	e.calls++
	return s.decision, s.err
}

func (e *scriptedEvaluator) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func cooling(minutes int) domain.Decision {
	return domain.Decision{
		Enabled: true, WithinWindow: true,
		Cooldown:   domain.Cooldown{MinutesRemaining: minutes},
		Rejections: []domain.Rejection{{Reason: domain.ReasonCooldown, Message: "wait"}},
	}
}

var allowed = domain.Decision{Allowed: true, Enabled: true, WithinWindow: true, Cooldown: domain.Cooldown{Eligible: true}}

func TestWatcherEmitsOnlyChanges(t *testing.T) {
	eval := &scriptedEvaluator{steps: []step{
		{decision: cooling(2)},
		{decision: cooling(2)},
		{err: errors.New("store down")},
		{decision: cooling(1)},
		{decision: allowed},
	}}
	clock := clockwork.NewFakeClock()
	w := NewWatcher(eval, clock, 30*time.Second, logger.Nop())

	emits := make(chan domain.Decision, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, domain.AnonymousDevice("d1"), func(d domain.Decision) { emits <- d })
	}()

	assert.Equal(t, cooling(2), <-emits)

	for want := 2; want <= 5; want++ {
		clock.Advance(30 * time.Second)
		require.Eventually(t, func() bool { return eval.callCount() == want }, time.Second, time.Millisecond)
	}

	assert.Equal(t, cooling(1), <-emits)
	assert.Equal(t, allowed, <-emits)
	assert.Empty(t, emits)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestSameDecision(t *testing.T) {
	assert.True(t, sameDecision(cooling(3), cooling(3)))
	assert.False(t, sameDecision(cooling(3), cooling(2)))
	assert.False(t, sameDecision(cooling(3), allowed))
}
