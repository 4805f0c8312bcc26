package main

import (
	"context"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/download"
)

func left(s string, l int) string {
	if len(s) > l {
		return s[:l]
	}
	return s
}

// progress renders one counter bar for the whole run plus one transfer
// bar per active task
type progress struct {
	pc      *mpb.Progress
	counter *mpb.Bar
	done    int64

	mu   sync.Mutex
	bars []*taskBar
}

func newProgress(ctx context.Context, name string, total int) *progress {
	pc := mpb.NewWithContext(ctx, mpb.WithWidth(64))
	counter := pc.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(left(name, 20), decor.WC{W: 20 + 1, C: decor.DidentRight}),
			decor.CountersNoUnit(" %3d/%3d", decor.WC{W: 5 + 1, C: decor.DidentRight}),
		))
	return &progress{pc: pc, counter: counter}
}

// Task returns the transfer bar of one task
func (p *progress) Task(t download.Task) download.Progresser {
	b := &taskBar{
		bar: p.pc.AddBar(100*1024*1024*1024,
			mpb.BarWidth(3),
			mpb.PrependDecorators(
				decor.Spinner([]string{"●∙∙", "∙●∙", "∙∙●", "∙●∙"}, decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.AverageSpeed(decor.UnitKB, " %.1f", decor.WC{W: 15, C: decor.DidentRight}),
				decor.Name(t.Name),
			),
			mpb.BarRemoveOnComplete(),
		),
		start: time.Now(),
	}
	p.mu.Lock()
	p.bars = append(p.bars, b)
	p.mu.Unlock()
	return b
}

// BatchDone advances the counter bar by the completed tasks of the batch
func (p *progress) BatchDone(completed, total int) {
	p.done += int64(completed)
	p.counter.IncrInt64(int64(completed))
}

// Wait completes the remaining bars and gives the terminal back. Bars of
// failed transfers never complete on their own, the container would wait
// on them forever.
func (p *progress) Wait() {
	p.mu.Lock()
	for _, b := range p.bars {
		b.finish()
	}
	p.mu.Unlock()
	p.counter.SetTotal(p.done, true)
	p.pc.Wait()
}

// taskBar reports the progression of one transfer on its mpb bar
type taskBar struct {
	bar   *mpb.Bar
	start time.Time
	count int64
}

func (b *taskBar) Init(total int64) {
	if total > 0 {
		b.bar.SetTotal(total, false)
	}
}

func (b *taskBar) Update(count, total int64) {
	b.bar.IncrInt64(count-b.count, time.Since(b.start))
	b.count = count
}

func (b *taskBar) finish() {
	b.bar.SetTotal(b.count, true)
}
