package loop

import (
	"context"
	stderrors "errors"
	"testing"
	"time"
)

func TestFuture_ResolveOnce(t *testing.T) {
	l := New()
	f := NewFuture(l)
	first := stderrors.New("first")

	if !f.Resolve(first) {
		t.Fatal("first Resolve should return true")
	}
	if f.Resolve(nil) {
		t.Error("second Resolve should return false")
	}
	if f.Err() != first {
		t.Errorf("Err() = %v, want %v", f.Err(), first)
	}
}

func TestFuture_ThenRunsOnLoop(t *testing.T) {
	l := New()
	f := NewFuture(l)
	called := false
	f.Then(func(error) { called = true })

	f.Resolve(nil)
	if called {
		t.Fatal("continuation should not run inline")
	}
	l.Drain()
	if !called {
		t.Error("continuation should run after Drain")
	}
}

func TestFuture_ThenAfterResolve(t *testing.T) {
	l := New()
	f := Resolved(l, nil)
	var got error = stderrors.New("unset")
	f.Then(func(err error) { got = err })

	if l.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", l.Pending())
	}
	l.Drain()
	if got != nil {
		t.Errorf("err = %v, want nil", got)
	}
}

func TestFuture_ContinuationsKeepRegistrationOrder(t *testing.T) {
	l := New()
	f := NewFuture(l)
	var order []int
	for i := 0; i < 3; i++ {
		f.Then(func(error) { order = append(order, i) })
	}
	f.Resolve(nil)
	l.Drain()
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want [0 1 2]", order)
		}
	}
}

func TestFuture_Wait(t *testing.T) {
	l := New()
	f := NewFuture(l)
	go func() {
		time.Sleep(10 * time.Millisecond)
		f.Resolve(nil)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := f.Wait(ctx); err != nil {
		t.Errorf("Wait() = %v, want nil", err)
	}
	select {
	case <-f.Done():
	default:
		t.Error("Done() should be closed after resolve")
	}
}

func TestFuture_WaitContextEnds(t *testing.T) {
	f := NewFuture(New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.Wait(ctx); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
	if f.Settled() {
		t.Error("future should still be unresolved")
	}
}
