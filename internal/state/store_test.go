package state

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestStoreRunsCommandsInDispatchOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore(0, zerolog.Nop(), nil)
	store.Start(ctx)

	for i := 1; i <= 9; i++ {
		n := i
		store.dispatch("append", func(context.Context) {
			store.update(func(s int) int { return s*10 + n })
		})
	}
	store.Flush()

	// Each command appends its digit; any reordering changes the number.
	if got := store.State(); got != 123456789 {
		t.Errorf("state = %d, want 123456789", got)
	}
}

func TestStoreFlushWaitsForQueuedCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore("", zerolog.Nop(), nil)
	store.Start(ctx)

	store.dispatch("slow", func(context.Context) {
		time.Sleep(20 * time.Millisecond)
		store.update(func(string) string { return "done" })
	})
	store.Flush()

	if got := store.State(); got != "done" {
		t.Errorf("state = %q, want the slow command applied before Flush returns", got)
	}
}

func TestStoreSubscribeKeepsLatestSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore(0, zerolog.Nop(), nil)
	sub := store.Subscribe()
	store.Start(ctx)

	// Nobody reads sub while these run; older snapshots must be displaced.
	for i := 1; i <= 5; i++ {
		n := i
		store.dispatch("set", func(context.Context) {
			store.update(func(int) int { return n })
		})
	}
	store.Flush()

	select {
	case got := <-sub:
		if got != 5 {
			t.Errorf("snapshot = %d, want the latest value 5", got)
		}
	default:
		t.Fatal("expected a buffered snapshot")
	}

	select {
	case got := <-sub:
		t.Errorf("unexpected second snapshot %d", got)
	default:
	}
}

func TestStoreReportsCommandNames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var names []string
	store := NewStore(0, zerolog.Nop(), func(name string) {
		names = append(names, name)
	})
	store.Start(ctx)

	store.dispatch("first", func(context.Context) {})
	store.dispatch("second", func(context.Context) {})
	store.Flush()

	// The hook runs on the command goroutine, so after Flush the slice is
	// safe to read.
	if len(names) != 3 || names[0] != "first" || names[1] != "second" || names[2] != "flush" {
		t.Errorf("names = %v", names)
	}
}
