package feed

import (
	"context"
	"sync"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
)

// hub keeps the live subscriptions of one feed. Each subscription reloads its
// snapshot with its own loader when woken.
type hub[T any] struct {
	logger logger.Logger

	mu   sync.Mutex
	subs map[uint64]*subscription[T]
	next uint64
}

type subscription[T any] struct {
	load    func(ctx context.Context) (T, error)
	handler func(T)
	wake    chan struct{}
}

func newHub[T any](logger logger.Logger) *hub[T] {
	return &hub[T]{logger: logger, subs: make(map[uint64]*subscription[T])}
}

// subscribe runs load once up front, so a failing store is reported to the
// caller, then delivers snapshots from a goroutine owned by the subscription.
// Deliveries for one subscription never overlap.
func (h *hub[T]) subscribe(ctx context.Context, load func(ctx context.Context) (T, error), handler func(T)) (func(), error) {
	initial, err := load(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &subscription[T]{load: load, handler: handler, wake: make(chan struct{}, 1)}

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = sub
	h.mu.Unlock()

	go h.run(ctx, id, sub, initial)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			h.remove(id)
		})
	}, nil
}

// notify wakes every subscription. Wake-ups coalesce: a subscription that is
// busy delivering reloads once more when it is done.
func (h *hub[T]) notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		select {
		case sub.wake <- struct{}{}:
		default:
		}
	}
}

func (h *hub[T]) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *hub[T]) run(ctx context.Context, id uint64, sub *subscription[T], initial T) {
	defer h.remove(id)

	sub.handler(initial)
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.wake:
			if ctx.Err() != nil {
				return
			}
			snapshot, err := sub.load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				h.logger.Error("feed_query_failed", "Failed to refresh subscription", "", nil, err)
				continue
			}
			sub.handler(snapshot)
		}
	}
}

func (h *hub[T]) remove(id uint64) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}
