package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSubmit(t *testing.T) {
	w := New(context.Background(), 2, nil)

	ran := int32(0)
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		w.Submit(func() {
			atomic.AddInt32(&ran, 1)
			wg.Done()
		})
	}
	wg.Wait()
	w.Stop()

	if ran != 8 {
		t.Errorf("Expecting 8 runs, got %d", ran)
	}
}

func TestCancelledPoolDiscardsWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := New(ctx, 1, nil)
	cancel()
	w.Stop()

	// Must not block even though every worker is gone.
	w.Submit(func() {
		t.Error("Work submitted after cancellation should not run")
	})
}
