// Package telemetry loads DJI SRT telemetry tracks and aligns frame
// timestamps with their records.
package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

// Interval is one telemetry record's validity window, inclusive on both
// ends, relative to the track origin. Text is the record's raw payload.
type Interval struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Contains reports whether ts falls inside the interval.
func (i Interval) Contains(ts time.Duration) bool {
	return i.Start <= ts && ts <= i.End
}

// Track is the ordered list of telemetry intervals of one video. It is
// built once per run and read-only afterwards.
type Track struct {
	Prefix    string
	Intervals []Interval
}

// Load parses an SRT subtitle file into a track. Record order follows the
// file; DJI writes entries ascending by start time.
func Load(path, prefix string) (*Track, error) {
	subs, err := astisub.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	track := &Track{
		Prefix:    prefix,
		Intervals: make([]Interval, 0, len(subs.Items)),
	}
	for _, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, l := range item.Lines {
			lines = append(lines, l.String())
		}

		track.Intervals = append(track.Intervals, Interval{
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  strings.Join(lines, "\n"),
		})
	}

	return track, nil
}

// At returns the first interval containing ts, scanning in ascending start
// order. Overlapping intervals (malformed track) resolve to the earliest
// match. A miss is an expected outcome: frames before takeoff or after
// landing fall outside all recorded telemetry.
func (t *Track) At(ts time.Duration) (Interval, bool) {
	for _, iv := range t.Intervals {
		if iv.Contains(ts) {
			return iv, true
		}
	}
	return Interval{}, false
}
