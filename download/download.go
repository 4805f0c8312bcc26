// The download package transfers resolved clip sources to local files.
// Tasks are processed in fixed size batches: every task of a batch runs
// concurrently and the next batch starts only once the whole batch has
// settled. A failing task never stops its siblings.

package download

import (
	"context"
	"errors"
	"io"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/mylog"
)

// ErrTransfer reports a download task that could not complete
var ErrTransfer = errors.New("transfer failed")

// DefaultChunkSize is the number of simultaneous transfers in a batch
const DefaultChunkSize = 10

type getter interface {
	Get(ctx context.Context, u string) (io.ReadCloser, int64, error)
}

// Progresser receives transfer progression, the caller decides how to
// render it.
type Progresser interface {
	Init(total int64)
	Update(count int64, total int64)
}

// Task is one transfer: a resolved source URL and its destination file
type Task struct {
	URL  string
	Path string
	Name string // Display name, the clip slug
}

// Result is the outcome of one task
type Result struct {
	Task Task
	Err  error
}

// Configuration of a batch run
type Configuration struct {
	log        *mylog.MyLog
	getter     getter
	chunkSize  int
	linkWriter io.Writer                   // When set, URLs are printed instead of transferred
	progress   func(t Task) Progresser     // Per task progression, may return nil
	batchDone  func(completed, total int)  // Called after each settled batch
}

type ConfigurationFunction func(c *Configuration)

func WithLogger(log *mylog.MyLog) ConfigurationFunction {
	return func(c *Configuration) {
		c.log = log
	}
}

func WithGetter(g getter) ConfigurationFunction {
	return func(c *Configuration) {
		c.getter = g
	}
}

// WithChunkSize bounds the number of simultaneous transfers
func WithChunkSize(n int) ConfigurationFunction {
	return func(c *Configuration) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithLinkWriter turns the run into link-only mode: each task's source
// URL is written to w and no byte is transferred
func WithLinkWriter(w io.Writer) ConfigurationFunction {
	return func(c *Configuration) {
		c.linkWriter = w
	}
}

// WithProgress installs a per task progression factory
func WithProgress(fn func(t Task) Progresser) ConfigurationFunction {
	return func(c *Configuration) {
		c.progress = fn
	}
}

// WithBatchDone installs a callback invoked once per settled batch with
// the number of completed tasks of the batch
func WithBatchDone(fn func(completed, total int)) ConfigurationFunction {
	return func(c *Configuration) {
		c.batchDone = fn
	}
}

func newConfiguration(conf ...ConfigurationFunction) *Configuration {
	c := &Configuration{
		chunkSize: DefaultChunkSize,
	}
	for _, fn := range conf {
		fn(c)
	}
	return c
}
