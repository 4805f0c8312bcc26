package daterange

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func checkCoverage(t *testing.T, r Range, rr []Range) {
	t.Helper()
	if len(rr) == 0 {
		t.Fatal("Expecting at least one chunk")
	}
	if !rr[0].Start.Equal(r.Start) {
		t.Errorf("First chunk starts at %s, expecting %s", rr[0].Start, r.Start)
	}
	if !rr[len(rr)-1].End.Equal(r.End) {
		t.Errorf("Last chunk ends at %s, expecting %s", rr[len(rr)-1].End, r.End)
	}
	for i := 1; i < len(rr); i++ {
		if !rr[i].Start.Equal(rr[i-1].End) {
			t.Errorf("Gap or overlap between chunk %d and %d: %s / %s", i-1, i, rr[i-1].End, rr[i].Start)
		}
	}
}

func TestSplitCount(t *testing.T) {
	cc := []struct {
		name  string
		r     Range
		count int
		want  int
	}{
		{
			"one week in 7 days",
			Range{date("2024-01-01T00:00:00Z"), date("2024-01-08T00:00:00Z")},
			7,
			7,
		},
		{
			"single chunk",
			Range{date("2024-01-01T00:00:00Z"), date("2024-01-08T00:00:00Z")},
			1,
			1,
		},
		{
			"non divisible span",
			Range{date("2024-01-01T00:00:00Z"), date("2024-01-01T00:00:10Z")},
			3,
			3,
		},
	}

	for _, c := range cc {
		t.Run(c.name, func(t *testing.T) {
			rr := c.r.SplitCount(c.count)
			if len(rr) != c.want {
				t.Fatalf("Expecting %d chunks, got %d", c.want, len(rr))
			}
			checkCoverage(t, c.r, rr)
		})
	}
}

func TestSplitCountDaily(t *testing.T) {
	r := Range{date("2024-01-01T00:00:00Z"), date("2024-01-08T00:00:00Z")}
	rr := r.SplitCount(7)
	for i, c := range rr {
		if c.Duration() != 24*time.Hour {
			t.Errorf("Chunk %d lasts %s, expecting 24h", i, c.Duration())
		}
	}
}

func TestSplitCountEmpty(t *testing.T) {
	cc := []struct {
		name string
		r    Range
	}{
		{"start equals end", Range{date("2024-01-01T00:00:00Z"), date("2024-01-01T00:00:00Z")}},
		{"inverted", Range{date("2024-01-08T00:00:00Z"), date("2024-01-01T00:00:00Z")}},
	}
	for _, c := range cc {
		t.Run(c.name, func(t *testing.T) {
			if rr := c.r.SplitCount(3); rr != nil {
				t.Errorf("Expecting no chunk, got %d", len(rr))
			}
		})
	}
}

func TestSplitEvery(t *testing.T) {
	cc := []struct {
		name string
		r    Range
		d    time.Duration
		want int
	}{
		{
			"exact days",
			Range{date("2024-01-01T00:00:00Z"), date("2024-01-08T00:00:00Z")},
			24 * time.Hour,
			7,
		},
		{
			"clamped last chunk",
			Range{date("2024-01-01T00:00:00Z"), date("2024-01-08T12:00:00Z")},
			24 * time.Hour,
			8,
		},
		{
			"chunk larger than range",
			Range{date("2024-01-01T00:00:00Z"), date("2024-01-02T00:00:00Z")},
			7 * 24 * time.Hour,
			1,
		},
	}

	for _, c := range cc {
		t.Run(c.name, func(t *testing.T) {
			rr := c.r.SplitEvery(c.d)
			if len(rr) != c.want {
				t.Fatalf("Expecting %d chunks, got %d", c.want, len(rr))
			}
			checkCoverage(t, c.r, rr)
		})
	}
}

func TestSplitEveryEmpty(t *testing.T) {
	r := Range{date("2024-01-01T00:00:00Z"), date("2024-01-01T00:00:00Z")}
	if rr := r.SplitEvery(time.Hour); rr != nil {
		t.Errorf("Expecting no chunk, got %d", len(rr))
	}
}
