package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeGetter serves an in-memory body and records call ordering
type fakeGetter struct {
	mu     sync.Mutex
	events []string
	fail   map[string]bool // URLs answering with a request error
	body   string
}

func (g *fakeGetter) record(e string) {
	g.mu.Lock()
	g.events = append(g.events, e)
	g.mu.Unlock()
}

func (g *fakeGetter) Get(ctx context.Context, u string) (io.ReadCloser, int64, error) {
	g.record("start " + u)
	time.Sleep(5 * time.Millisecond)
	g.record("end " + u)
	if g.fail[u] {
		return nil, 0, errors.New("remote said no")
	}
	return io.NopCloser(strings.NewReader(g.body)), int64(len(g.body)), nil
}

func (g *fakeGetter) indexOf(t *testing.T, e string) int {
	t.Helper()
	for i, ev := range g.events {
		if ev == e {
			return i
		}
	}
	t.Fatalf("Event %q not recorded", e)
	return -1
}

func makeTasks(dir string, n int) []Task {
	tt := make([]Task, n)
	for i := range tt {
		name := "clip" + string(rune('1'+i))
		tt[i] = Task{
			URL:  "https://clips.example.com/" + name,
			Path: filepath.Join(dir, name+".mp4"),
			Name: name,
		}
	}
	return tt
}

func TestBatchFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	tasks := makeTasks(dir, 5)
	g := &fakeGetter{
		body: "clip bytes",
		fail: map[string]bool{tasks[2].URL: true},
	}

	counter := &Counter{}
	results := Batch(context.Background(), tasks, counter, WithGetter(g), WithChunkSize(5))

	if len(results) != 5 {
		t.Fatalf("Expecting 5 results, got %d", len(results))
	}
	for i, r := range results {
		wantErr := i == 2
		if (r.Err != nil) != wantErr {
			t.Errorf("Task %d: unexpected outcome %v", i+1, r.Err)
		}
		if wantErr && !errors.Is(r.Err, ErrTransfer) {
			t.Errorf("Task %d: expecting ErrTransfer, got %v", i+1, r.Err)
		}
	}
	if counter.Count() != 4 {
		t.Errorf("Expecting 4 completed tasks, got %d", counter.Count())
	}

	for i, task := range tasks {
		_, err := os.Stat(task.Path)
		if i == 2 {
			if err == nil {
				t.Errorf("Task 3 failed before any write, no file expected")
			}
			continue
		}
		if err != nil {
			t.Errorf("Task %d: missing destination file: %s", i+1, err)
		}
	}
}

func TestBatchBoundary(t *testing.T) {
	dir := t.TempDir()
	tasks := makeTasks(dir, 5)
	g := &fakeGetter{body: "clip bytes"}

	Batch(context.Background(), tasks, nil, WithGetter(g), WithChunkSize(2))

	// No task of batch 2 may start before every task of batch 1 settled
	for _, first := range []string{"end " + tasks[0].URL, "end " + tasks[1].URL} {
		for _, then := range []string{"start " + tasks[2].URL, "start " + tasks[3].URL, "start " + tasks[4].URL} {
			if g.indexOf(t, first) > g.indexOf(t, then) {
				t.Errorf("%q happened before %q", then, first)
			}
		}
	}
}

func TestBatchProgressPerBatch(t *testing.T) {
	dir := t.TempDir()
	tasks := makeTasks(dir, 5)
	g := &fakeGetter{body: "clip bytes"}

	var batches [][2]int
	counter := &Counter{}
	Batch(context.Background(), tasks, counter,
		WithGetter(g),
		WithChunkSize(2),
		WithBatchDone(func(completed, total int) {
			batches = append(batches, [2]int{completed, total})
		}),
	)

	want := [][2]int{{2, 2}, {2, 2}, {1, 1}}
	if len(batches) != len(want) {
		t.Fatalf("Expecting %d batches, got %d", len(want), len(batches))
	}
	for i := range want {
		if batches[i] != want[i] {
			t.Errorf("Batch %d: expecting %v, got %v", i+1, want[i], batches[i])
		}
	}
	if counter.Count() != 5 {
		t.Errorf("Expecting counter at 5, got %d", counter.Count())
	}
}

func TestBatchLinkOnly(t *testing.T) {
	dir := t.TempDir()
	tasks := makeTasks(dir, 5)
	g := &fakeGetter{body: "clip bytes"}

	// The chunk size would allow several tasks at once, the URLs must
	// still come out whole and in listing order on the shared writer
	links := bytes.Buffer{}
	counter := &Counter{}
	Batch(context.Background(), tasks, counter,
		WithGetter(g),
		WithChunkSize(2),
		WithLinkWriter(&links),
	)

	want := ""
	for _, task := range tasks {
		want += task.URL + "\n"
	}
	if links.String() != want {
		t.Errorf("Expecting links %q, got %q", want, links.String())
	}
	if counter.Count() != 5 {
		t.Errorf("Expecting counter at 5, got %d", counter.Count())
	}
	if len(g.events) != 0 {
		t.Errorf("Link mode must not transfer, got %d events", len(g.events))
	}
	for _, task := range tasks {
		if _, err := os.Stat(task.Path); err == nil {
			t.Errorf("Link mode must not create %q", task.Path)
		}
	}
}

// brokenReader fails after a first chunk of payload
type brokenReader struct {
	sent bool
}

func (r *brokenReader) Read(b []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(b, []byte("partial ")), nil
	}
	return 0, errors.New("stream interrupted")
}

func (r *brokenReader) Close() error { return nil }

type brokenGetter struct{}

func (g brokenGetter) Get(ctx context.Context, u string) (io.ReadCloser, int64, error) {
	return &brokenReader{}, 1024, nil
}

func TestDownloadPartialWrite(t *testing.T) {
	dir := t.TempDir()
	task := Task{
		URL:  "https://clips.example.com/truncated",
		Path: filepath.Join(dir, "truncated.mp4"),
		Name: "truncated",
	}

	err := download(context.Background(), brokenGetter{}, task, nil)
	if !errors.Is(err, ErrTransfer) {
		t.Fatalf("Expecting ErrTransfer, got %v", err)
	}

	// The truncated file stays behind, no cleanup is performed
	b, err := os.ReadFile(task.Path)
	if err != nil {
		t.Fatalf("Expecting a truncated file: %s", err)
	}
	if string(b) != "partial " {
		t.Errorf("Unexpected file content %q", b)
	}
}

type countingProgresser struct {
	inits   int
	updates int
	last    int64
	total   int64
}

func (p *countingProgresser) Init(total int64) {
	p.inits++
	p.total = total
}

func (p *countingProgresser) Update(count, total int64) {
	p.updates++
	p.last = count
}

func TestDownloadProgress(t *testing.T) {
	dir := t.TempDir()
	g := &fakeGetter{body: "0123456789"}
	task := Task{
		URL:  "https://clips.example.com/progress",
		Path: filepath.Join(dir, "progress.mp4"),
		Name: "progress",
	}

	prg := &countingProgresser{}
	err := download(context.Background(), g, task, prg)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if prg.inits != 1 {
		t.Errorf("Expecting one Init, got %d", prg.inits)
	}
	if prg.last != 10 || prg.total != 10 {
		t.Errorf("Expecting 10/10 reported, got %d/%d", prg.last, prg.total)
	}
}
