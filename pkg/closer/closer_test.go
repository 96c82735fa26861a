package closer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCloseRunsFuncsInLIFOOrder(t *testing.T) {
	c := NewCloser(time.Second)

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 3; i++ {
		i := i
		c.Add(func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{2, 1, 0}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("wrong close order: %v", order)
		}
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	c := NewCloser(time.Second)

	c.Add(func(ctx context.Context) error { return nil })
	c.Add(func(ctx context.Context) error { return errors.New("redis close failed") })

	err := c.Close(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
}

func TestCloseOnlyOnce(t *testing.T) {
	c := NewCloser(time.Second)

	var calls int
	c.Add(func(ctx context.Context) error {
		calls++
		return nil
	})

	c.Close(context.Background())
	c.Close(context.Background())

	if calls != 1 {
		t.Errorf("close funcs ran %d times", calls)
	}
}

func TestCloseForcedAfterContextCancel(t *testing.T) {
	c := NewCloser(500 * time.Millisecond)

	var forcedRan bool
	c.Add(func(ctx context.Context) error {
		forcedRan = true
		return nil
	})
	c.Add(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	if err == nil {
		t.Fatal("expected interrupted shutdown error")
	}
	if !forcedRan {
		t.Error("remaining funcs not force-closed")
	}
}
