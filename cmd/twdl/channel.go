package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/daterange"
	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/download"
	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/twitch"
	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/workers"
)

type channelOptions struct {
	output           string
	credentialsFile  string
	broadcasterID    string
	broadcasterLogin string
	start            string
	end              string
	pageSize         int
	concurrent       int
	chunkSize        int
	partitions       int
	partitionEvery   time.Duration
	link             bool
	metadata         bool
	headless         bool
}

func newChannelCommand(a *app) *cobra.Command {
	o := channelOptions{}

	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Download every clip of a channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChannel(cmd, a, o)
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", ".", "Destination directory.")
	cmd.Flags().StringVarP(&o.credentialsFile, "credentials", "c", "credentials.json", "Twitch application credentials file.")
	cmd.Flags().StringVar(&o.broadcasterID, "broadcaster-id", "", "Numeric channel identifier.")
	cmd.Flags().StringVar(&o.broadcasterLogin, "broadcaster-login", "", "Channel login name.")
	cmd.Flags().StringVar(&o.start, "start", "", "Keep clips created after this date.")
	cmd.Flags().StringVar(&o.end, "end", "", "Keep clips created before this date. Defaults to one week after the start date.")
	cmd.Flags().IntVar(&o.pageSize, "page-size", twitch.DefaultPageSize, "Listing page size.")
	cmd.Flags().IntVar(&o.concurrent, "concurrent", runtime.NumCPU(), "Maximum concurrent listing and resolution calls.")
	cmd.Flags().IntVar(&o.chunkSize, "chunk-size", download.DefaultChunkSize, "Number of simultaneous downloads.")
	cmd.Flags().IntVar(&o.partitions, "partitions", 0, "Split the date range in that many windows fetched concurrently.")
	cmd.Flags().DurationVar(&o.partitionEvery, "partition-every", 0, "Split the date range in windows of that duration.")
	cmd.Flags().BoolVarP(&o.link, "link", "L", false, "Print the resolved source URLs instead of downloading.")
	cmd.Flags().BoolVarP(&o.metadata, "metadata", "m", false, "Write a JSON metadata file next to each clip.")
	cmd.Flags().BoolVar(&o.headless, "headless", false, "Headless mode. Progression bars are not displayed.")
	return cmd
}

func runChannel(cmd *cobra.Command, a *app, o channelOptions) error {
	ctx := cmd.Context()
	if o.link {
		a.quiet()
	}

	if o.broadcasterID == "" && o.broadcasterLogin == "" {
		return errors.New("one of --broadcaster-id or --broadcaster-login is required")
	}
	if o.broadcasterID != "" && o.broadcasterLogin != "" {
		return errors.New("--broadcaster-id and --broadcaster-login are exclusive")
	}
	if o.partitions > 0 && o.partitionEvery > 0 {
		return errors.New("--partitions and --partition-every are exclusive")
	}

	window, err := interpretRange(o.start, o.end)
	if err != nil {
		return err
	}
	if window.IsZero() && (o.partitions > 0 || o.partitionEvery > 0) {
		return errors.New("partitioning requires --start")
	}

	creds, err := ReadCredentials(o.credentialsFile)
	if err != nil {
		return err
	}

	p := twitch.New(twitch.WithLogger(a.log))
	if err := p.Authenticate(ctx, creds.ClientID, creds.ClientSecret); err != nil {
		return err
	}

	id := o.broadcasterID
	if id == "" {
		id, err = p.GetBroadcasterID(ctx, o.broadcasterLogin)
		if err != nil {
			return err
		}
		a.log.Debug().Printf("[CHANNEL] %s resolves to broadcaster %s", o.broadcasterLogin, id)
	}

	clips := fetchClips(ctx, a, p, id, window, o)
	if len(clips) == 0 {
		a.log.Info().Printf("[CHANNEL] No clip found")
		return nil
	}
	a.log.Info().Printf("[CHANNEL] %d clips to process", len(clips))

	if !o.link {
		if err := os.MkdirAll(o.output, 0777); err != nil {
			return err
		}
	}

	tasks := resolveTasks(ctx, a, p, clips, o)
	if len(tasks) == 0 {
		return errors.New("no clip could be resolved")
	}

	counter := &download.Counter{}
	confs := []download.ConfigurationFunction{
		download.WithLogger(a.log),
		download.WithChunkSize(o.chunkSize),
	}
	var prg *progress
	switch {
	case o.link:
		confs = append(confs, download.WithLinkWriter(cmd.OutOrStdout()))
	case o.headless:
		total := len(tasks)
		confs = append(confs, download.WithBatchDone(func(completed, _ int) {
			a.log.Info().Printf("[CHANNEL] %d/%d clips downloaded", counter.Count(), total)
		}))
	default:
		prg = newProgress(ctx, "clips", len(tasks))
		confs = append(confs,
			download.WithProgress(prg.Task),
			download.WithBatchDone(prg.BatchDone),
		)
	}

	results := download.Batch(ctx, tasks, counter, confs...)
	if prg != nil {
		prg.Wait()
	}
	if o.link {
		return nil
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	a.log.Info().Printf("[CHANNEL] %d/%d clips downloaded", counter.Count(), len(tasks))
	if failed > 0 {
		a.log.Error().Printf("[CHANNEL] %d clips failed", failed)
	}
	return nil
}

// interpretRange turns the start and end strings into a creation window.
// Both empty means no window at all, a start alone opens a one week
// window, an end alone is refused.
func interpretRange(start, end string) (daterange.Range, error) {
	if start == "" && end == "" {
		return daterange.Range{}, nil
	}
	if start == "" {
		return daterange.Range{}, errors.New("--end requires --start")
	}

	s, err := dateparse.ParseAny(start)
	if err != nil {
		return daterange.Range{}, fmt.Errorf("can't interpret start date %q: %w", start, err)
	}
	e := s.Add(7 * 24 * time.Hour)
	if end != "" {
		e, err = dateparse.ParseAny(end)
		if err != nil {
			return daterange.Range{}, fmt.Errorf("can't interpret end date %q: %w", end, err)
		}
	}
	if !s.Before(e) {
		return daterange.Range{}, errors.New("the start date must precede the end date")
	}
	return daterange.Range{Start: s, End: e}, nil
}

// fetchClips lists the clips of every window in parallel. A failing
// window is logged and skipped, the remaining windows still contribute
// their clips.
func fetchClips(ctx context.Context, a *app, p *twitch.Twitch, id string, window daterange.Range, o channelOptions) []twitch.Clip {
	windows := []daterange.Range{window}
	if o.partitionEvery > 0 {
		windows = window.SplitEvery(o.partitionEvery)
	} else if o.partitions > 1 {
		windows = window.SplitCount(o.partitions)
	}
	a.log.Debug().Printf("[CHANNEL] Listing %d window(s)", len(windows))

	pool := workers.New(ctx, o.concurrent, a.log)
	defer pool.Stop()

	perWindow := make([][]twitch.Clip, len(windows))
	wg := sync.WaitGroup{}
	for i := range windows {
		i := i
		w := windows[i]
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			cc, err := p.GetClips(ctx, twitch.ClipsRequest{
				BroadcasterID: id,
				Window:        w,
				PageSize:      o.pageSize,
			})
			if err != nil {
				a.log.Error().Printf("[CHANNEL] Listing window %d: %s", i+1, err)
				return
			}
			perWindow[i] = cc
		})
	}
	if ctx.Err() == nil {
		wg.Wait()
	}

	// Windows share their bounds, a clip created right on one can come
	// out twice
	seen := map[string]bool{}
	clips := []twitch.Clip{}
	for _, cc := range perWindow {
		for _, c := range cc {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			clips = append(clips, c)
		}
	}
	return clips
}

// resolveTasks resolves the source URL of every clip in parallel and
// keeps the listing order. Clips without a usable source are logged and
// dropped.
func resolveTasks(ctx context.Context, a *app, p *twitch.Twitch, clips []twitch.Clip, o channelOptions) []download.Task {
	pool := workers.New(ctx, o.concurrent, a.log)
	defer pool.Stop()

	resolved := make([]download.Task, len(clips))
	ok := make([]bool, len(clips))
	wg := sync.WaitGroup{}
	for i := range clips {
		i := i
		c := clips[i]
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			ss, err := p.GetSourceFiles(ctx, c.ID)
			if err != nil {
				a.log.Error().Printf("[CHANNEL] %s: %s", c.ID, err)
				return
			}
			best, err := twitch.BestSource(ss)
			if err != nil {
				a.log.Error().Printf("[CHANNEL] %s: %s", c.ID, err)
				return
			}
			t := download.Task{
				URL:  best.URL,
				Path: filepath.Join(o.output, c.ID+".mp4"),
				Name: c.ID,
			}
			if o.metadata && !o.link {
				if err := writeMetadata(t.Path, &c); err != nil {
					a.log.Error().Printf("[CHANNEL] %s: can't write metadata: %s", c.ID, err)
				}
			}
			resolved[i] = t
			ok[i] = true
		})
	}
	if ctx.Err() == nil {
		wg.Wait()
	}

	tasks := []download.Task{}
	for i := range resolved {
		if ok[i] {
			tasks = append(tasks, resolved[i])
		}
	}
	return tasks
}
