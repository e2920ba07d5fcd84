// Package state holds the per-screen reactive stores. Each store owns one
// immutable state snapshot and one command-loop goroutine; commands are
// closures executed strictly in dispatch order, so there is never more than
// one writer per snapshot. Readers take atomic copies via State or receive
// replacement snapshots via Subscribe.
package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vecopay/vecopay/internal/result"
)

const commandQueueSize = 64

// fold runs exactly one of the three handlers for its variant. It is the
// side-effect flavor of result.Fold used by the store command bodies.
func fold[T any](r result.Result[T], onSuccess func(T), onError func(message string), onLoading func()) {
	result.Fold(r,
		func(value T) result.Unit { onSuccess(value); return result.Unit{} },
		func(_ error, message string) result.Unit { onError(message); return result.Unit{} },
		func() result.Unit { onLoading(); return result.Unit{} },
	)
}

type command struct {
	name string
	run  func(ctx context.Context)
}

// Store is the single-writer core embedded by every screen store.
type Store[S any] struct {
	mu    sync.RWMutex
	state S
	subs  []chan S

	cmds  chan command
	log   zerolog.Logger
	onCmd func(name string)
}

// NewStore creates a store seeded with the initial snapshot. onCommand, when
// non-nil, is invoked with the command name before each command runs; the
// composition root uses it to feed the command counter metric.
func NewStore[S any](initial S, log zerolog.Logger, onCommand func(name string)) *Store[S] {
	return &Store[S]{
		state: initial,
		cmds:  make(chan command, commandQueueSize),
		log:   log,
		onCmd: onCommand,
	}
}

// Start launches the command loop. The loop exits when ctx is cancelled;
// queued commands are abandoned at that point.
func (s *Store[S]) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case cmd := <-s.cmds:
				if s.onCmd != nil {
					s.onCmd(cmd.name)
				}
				s.log.Debug().Str("command", cmd.name).Msg("store command")
				cmd.run(ctx)
			}
		}
	}()
}

// State returns the current snapshot.
func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a latest-wins snapshot channel. A slow receiver never
// blocks the writer; it simply skips intermediate snapshots.
func (s *Store[S]) Subscribe() <-chan S {
	ch := make(chan S, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Flush blocks until every command dispatched before it has finished.
// The CLI and the tests use it to read snapshots deterministically.
func (s *Store[S]) Flush() {
	done := make(chan struct{})
	s.cmds <- command{name: "flush", run: func(context.Context) { close(done) }}
	<-done
}

func (s *Store[S]) dispatch(name string, run func(ctx context.Context)) {
	s.cmds <- command{name: name, run: run}
}

// update replaces the snapshot and broadcasts it. Only the command loop
// calls update, so mutate functions never race with each other.
func (s *Store[S]) update(mutate func(S) S) {
	s.mu.Lock()
	s.state = mutate(s.state)
	next := s.state
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next:
		default:
		}
	}
	s.mu.Unlock()
}
