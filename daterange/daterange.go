// The daterange package splits a wall clock interval into contiguous
// sub-ranges so that a large clip listing window can be fetched with
// several independent requests.

package daterange

import "time"

// Range is a half-open time interval [Start, End)
type Range struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether both bounds are unset
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Duration of the range
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// SplitEvery cuts the range in chunks of duration d. Chunks are contiguous,
// non-overlapping, and the last one is clamped to End. An empty or inverted
// range yields no chunk.
func (r Range) SplitEvery(d time.Duration) []Range {
	if d <= 0 || !r.Start.Before(r.End) {
		return nil
	}
	var rr []Range
	for s := r.Start; s.Before(r.End); s = s.Add(d) {
		e := s.Add(d)
		if e.After(r.End) {
			e = r.End
		}
		rr = append(rr, Range{Start: s, End: e})
	}
	return rr
}

// SplitCount cuts the range in count chunks of equal duration, except the
// last one which is clamped to End. An empty or inverted range yields no
// chunk.
func (r Range) SplitCount(count int) []Range {
	if count <= 0 || !r.Start.Before(r.End) {
		return nil
	}
	d := r.Duration() / time.Duration(count)
	if d <= 0 {
		// More chunks asked than nanoseconds in the range
		return []Range{r}
	}
	rr := make([]Range, 0, count)
	s := r.Start
	for i := 0; i < count; i++ {
		e := s.Add(d)
		if i == count-1 || e.After(r.End) {
			e = r.End
		}
		rr = append(rr, Range{Start: s, End: e})
		if !e.Before(r.End) {
			break
		}
		s = e
	}
	return rr
}
