package main

import (
	"testing"
	"time"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/daterange"
)

func TestExtractSlug(t *testing.T) {
	cc := []struct {
		name string
		arg  string
		want string
		good bool
	}{
		{
			"bare slug",
			"AwkwardHelplessSalamanderSwiftRage",
			"AwkwardHelplessSalamanderSwiftRage",
			true,
		},
		{
			"clips subdomain",
			"https://clips.twitch.tv/AwkwardHelplessSalamanderSwiftRage",
			"AwkwardHelplessSalamanderSwiftRage",
			true,
		},
		{
			"channel page",
			"https://www.twitch.tv/somechannel/clip/AwkwardHelplessSalamanderSwiftRage",
			"AwkwardHelplessSalamanderSwiftRage",
			true,
		},
		{
			"channel page without www",
			"https://twitch.tv/somechannel/clip/Awkward-Helpless_123",
			"Awkward-Helpless_123",
			true,
		},
		{
			"trailing query",
			"https://clips.twitch.tv/AwkwardClip?filter=clips&range=7d",
			"AwkwardClip",
			true,
		},
		{
			"empty",
			"",
			"",
			false,
		},
		{
			"unrelated url",
			"https://example.com/watch?v=dQw4w9WgXcQ",
			"",
			false,
		},
	}

	for _, c := range cc {
		t.Run(c.name, func(t *testing.T) {
			got, err := extractSlug(c.arg)
			if (err == nil) != c.good {
				t.Errorf("Expecting error:%v, got error %v", !c.good, err)
			}
			if got != c.want {
				t.Errorf("Expecting slug %q, got %q", c.want, got)
			}
		})
	}
}

func mkDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInterpretRange(t *testing.T) {
	cc := []struct {
		name  string
		start string
		end   string
		want  daterange.Range
		good  bool
	}{
		{
			"no bound",
			"", "",
			daterange.Range{},
			true,
		},
		{
			"both bounds",
			"2023-01-01", "2023-02-01",
			daterange.Range{Start: mkDate(2023, 1, 1), End: mkDate(2023, 2, 1)},
			true,
		},
		{
			"start alone opens one week",
			"2023-01-01", "",
			daterange.Range{Start: mkDate(2023, 1, 1), End: mkDate(2023, 1, 8)},
			true,
		},
		{
			"end alone",
			"", "2023-02-01",
			daterange.Range{},
			false,
		},
		{
			"inverted bounds",
			"2023-02-01", "2023-01-01",
			daterange.Range{},
			false,
		},
		{
			"not a date",
			"someday", "",
			daterange.Range{},
			false,
		},
	}

	for _, c := range cc {
		t.Run(c.name, func(t *testing.T) {
			got, err := interpretRange(c.start, c.end)
			if (err == nil) != c.good {
				t.Fatalf("Expecting error:%v, got error %v", !c.good, err)
			}
			if !got.Start.Equal(c.want.Start) || !got.End.Equal(c.want.End) {
				t.Errorf("Expecting %v, got %v", c.want, got)
			}
		})
	}
}
