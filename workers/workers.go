package workers

import (
	"context"
	"sync"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/mylog"
)

// WorkerPool is a pool of workers running submitted functions concurrently.
type WorkerPool struct {
	ctx      context.Context
	stop     chan struct{}  // Close this channel to stop all workers
	submit   chan func()    // Send work to this channel, one of the workers will run it
	workerg  sync.WaitGroup // To wait completion of all workers
	nbWorker int            // The number of concurrent workers
	log      *mylog.MyLog
}

// New creates a worker pool with nbWorker running workers
func New(ctx context.Context, nbWorker int, log *mylog.MyLog) *WorkerPool {
	if nbWorker < 1 {
		nbWorker = 1
	}
	w := &WorkerPool{
		ctx:      ctx,
		stop:     make(chan struct{}),
		submit:   make(chan func()),
		nbWorker: nbWorker,
		log:      log,
	}
	for i := 0; i < w.nbWorker; i++ {
		w.workerg.Add(1)
		go w.newWorker(i)
	}
	return w
}

// Stop stops all running workers, waits them to finish and then leaves the pool.
func (w *WorkerPool) Stop() {
	close(w.stop)
	w.workerg.Wait()
	w.log.Debug().Printf("[WORKERS] pool is ended")
}

// Submit a function to the worker pool. It blocks until a worker is free or
// the context is cancelled, in which case the function is discarded.
func (w *WorkerPool) Submit(fn func()) {
	select {
	case <-w.ctx.Done():
	case w.submit <- fn:
	}
}

// newWorker runs submitted functions until the pool is stopped
func (w *WorkerPool) newWorker(id int) {
	defer w.workerg.Done()
	w.log.Debug().Printf("[WORKERS] worker %d initialized", id)
	for {
		select {
		case <-w.ctx.Done():
			w.log.Debug().Printf("[WORKERS] worker %d cancelled", id)
			return
		case <-w.stop:
			w.log.Debug().Printf("[WORKERS] worker %d is ended", id)
			return
		case fn := <-w.submit:
			fn()
		}
	}
}
