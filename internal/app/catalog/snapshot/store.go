package snapshot

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// ErrClosed is returned by Apply once the store has been closed.
var ErrClosed = errors.New("snapshot: store closed")

type request struct {
	mutations []Mutation
	done      chan struct{}
}

// Store is the single owner of the mirror. Mutations from any goroutine are
// queued and applied one batch at a time by the store goroutine; readers get
// the last published State without locking.
type Store struct {
	log *zap.Logger

	queue     chan request
	stop      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	current atomic.Pointer[State]
	tokens  atomic.Uint64

	subsMu sync.Mutex
	subs   map[chan State]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore starts a store holding an empty collection in StatusIdle.
func NewStore(opts ...Option) *Store {
	s := &Store{
		log:     zap.NewNop(),
		queue:   make(chan request),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
		subs:    make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.current.Store(&State{Products: []domain.Product{}, Status: StatusIdle})
	go s.run()
	return s
}

// NextLoadToken issues a monotonically increasing list-fetch token.
func (s *Store) NextLoadToken() uint64 {
	return s.tokens.Add(1)
}

// Apply queues the mutations as one batch and waits until it has been applied.
// ctx only bounds the wait for a queue slot; an accepted batch always runs.
func (s *Store) Apply(ctx context.Context, mutations ...Mutation) error {
	if len(mutations) == 0 {
		return nil
	}

	req := request{mutations: mutations, done: make(chan struct{})}
	select {
	case s.queue <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stop:
		return ErrClosed
	}

	<-req.done
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	return s.current.Load().Clone()
}

// Subscribe returns a channel receiving the state after each change. Slow
// readers only see the latest state. cancel releases the subscription.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, ch)
			s.subsMu.Unlock()
		})
	}
	return ch, cancel
}

// Close stops the store goroutine. Pending Apply calls return ErrClosed.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.stopped
	})
}

func (s *Store) run() {
	defer close(s.stopped)
	for {
		select {
		case req := <-s.queue:
			s.applyBatch(req.mutations)
			close(req.done)
		case <-s.stop:
			return
		}
	}
}

func (s *Store) applyBatch(mutations []Mutation) {
	cur := s.current.Load()
	next := *cur
	next.Products = slices.Clone(cur.Products)

	changed := false
	for _, m := range mutations {
		if m.apply(&next) {
			changed = true
			continue
		}
		s.log.Debug("snapshot mutation skipped",
			zap.String("mutation", describe(m)),
			zap.Uint64("load_token", next.loadToken),
			zap.String("status", string(next.Status)),
		)
	}
	if !changed {
		return
	}

	next.Version = cur.Version + 1
	s.current.Store(&next)
	s.publish(next)
}

func (s *Store) publish(st State) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for ch := range s.subs {
		// Drop the stale value, if any, so the latest state always fits.
		select {
		case <-ch:
		default:
		}
		ch <- st.Clone()
	}
}

func describe(m Mutation) string {
	switch m.(type) {
	case beginLoad:
		return "begin_load"
	case completeLoad:
		return "complete_load"
	case failLoad:
		return "fail_load"
	case insert:
		return "insert"
	case replace:
		return "replace"
	case remove:
		return "remove"
	default:
		return "unknown"
	}
}
