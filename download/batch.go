package download

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/myhttp"
)

// Counter counts completed tasks across a batch run. It is shared with
// the caller and advanced once per settled batch.
type Counter struct {
	n int64
}

func (c *Counter) add(n int) {
	atomic.AddInt64(&c.n, int64(n))
}

// Count returns the number of completed tasks so far
func (c *Counter) Count() int64 {
	return atomic.LoadInt64(&c.n)
}

// Batch processes the task list in chunks of the configured size. All
// tasks of a chunk run concurrently and the next chunk waits for every
// one of them to settle. Task failures are logged and collected, they
// never abort the run; the counter advances once per chunk by the
// number of completed tasks. Link mode transfers nothing and prints the
// URLs one by one instead.
func Batch(ctx context.Context, tasks []Task, counter *Counter, conf ...ConfigurationFunction) []Result {
	cfg := newConfiguration(conf...)
	if cfg.getter == nil {
		cfg.getter = myhttp.DefaultClient
	}
	if cfg.linkWriter != nil {
		return writeLinks(cfg, tasks, counter)
	}

	results := make([]Result, 0, len(tasks))
	for start := 0; start < len(tasks); start += cfg.chunkSize {
		end := start + cfg.chunkSize
		if end > len(tasks) {
			end = len(tasks)
		}
		batch := tasks[start:end]
		rr := make([]Result, len(batch))

		wg := sync.WaitGroup{}
		for i, t := range batch {
			wg.Add(1)
			go func(i int, t Task) {
				defer wg.Done()
				rr[i] = Result{Task: t, Err: runTask(ctx, cfg, t)}
			}(i, t)
		}
		wg.Wait()

		completed := 0
		for _, r := range rr {
			if r.Err != nil {
				cfg.log.Error().Printf("[DOWNLOAD] %s: %s", r.Task.Name, r.Err)
				continue
			}
			completed++
		}
		if counter != nil {
			counter.add(completed)
		}
		if cfg.batchDone != nil {
			cfg.batchDone(completed, len(batch))
		}
		results = append(results, rr...)
	}
	return results
}

func runTask(ctx context.Context, cfg *Configuration, t Task) error {
	var prg Progresser
	if cfg.progress != nil {
		prg = cfg.progress(t)
	}
	return download(ctx, cfg.getter, t, prg)
}

// writeLinks prints the source URL of every task on the configured
// writer. The writer is shared, so link mode stays sequential and keeps
// the listing order.
func writeLinks(cfg *Configuration, tasks []Task, counter *Counter) []Result {
	results := make([]Result, 0, len(tasks))
	for _, t := range tasks {
		_, err := fmt.Fprintln(cfg.linkWriter, t.URL)
		if err != nil {
			cfg.log.Error().Printf("[DOWNLOAD] %s: %s", t.Name, err)
		} else if counter != nil {
			counter.add(1)
		}
		results = append(results, Result{Task: t, Err: err})
	}
	return results
}
