package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPool_StartStop(t *testing.T) {
	var processed atomic.Int64

	pool := NewPool(2, 10)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	for i := 0; i < 5; i++ {
		pool.Submit(func(ctx context.Context) {
			processed.Add(1)
		})
	}

	time.Sleep(50 * time.Millisecond)

	cancel()
	pool.Stop()

	if processed.Load() != 5 {
		t.Errorf("expected 5 tasks processed, got %d", processed.Load())
	}
}

func TestPool_ConcurrentSubmit(t *testing.T) {
	var processed atomic.Int64

	pool := NewPool(4, 100)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	for i := 0; i < 100; i++ {
		go pool.Submit(func(ctx context.Context) {
			processed.Add(1)
		})
	}

	time.Sleep(100 * time.Millisecond)

	cancel()
	pool.Stop()

	if processed.Load() != 100 {
		t.Errorf("expected 100 tasks processed, got %d", processed.Load())
	}
}

func TestPool_GracefulShutdown(t *testing.T) {
	var processed atomic.Int64

	pool := NewPool(2, 50)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	for i := 0; i < 20; i++ {
		pool.Submit(func(ctx context.Context) {
			time.Sleep(10 * time.Millisecond)
			processed.Add(1)
		})
	}

	cancel()

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		// Good
	case <-time.After(5 * time.Second):
		t.Fatal("pool.Stop() timed out")
	}

	t.Logf("processed %d tasks before shutdown", processed.Load())
}

func TestPool_TaskSeesContextCancellation(t *testing.T) {
	started := make(chan struct{})
	observed := make(chan error, 1)

	pool := NewPool(1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	pool.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		observed <- ctx.Err()
	})

	<-started
	cancel()

	select {
	case err := <-observed:
		if err == nil {
			t.Error("expected non-nil ctx.Err() after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("task never observed cancellation")
	}

	pool.Stop()
}
