package processor

import (
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/donwrightdesigns/dji-srt-geotag/internal/config"
	"github.com/donwrightdesigns/dji-srt-geotag/internal/metadata"
	"github.com/donwrightdesigns/dji-srt-geotag/internal/telemetry"
)

// Summary aggregates per-frame outcomes across a run. Misses (no telemetry
// coverage, unparsable record) are expected; failures are real faults.
type Summary struct {
	Tagged int
	Missed int
	Failed int
	Total  int
}

func (s *Summary) add(o Summary) {
	s.Tagged += o.Tagged
	s.Missed += o.Missed
	s.Failed += o.Failed
	s.Total += o.Total
}

// Run resolves and tags every frame of every group sequentially. Per-frame
// problems are logged and tallied, never fatal; a group whose track cannot
// be loaded is skipped whole.
func Run(cfg config.Config, groups []Group) Summary {
	var total Summary

	for _, group := range groups {
		log.Info().
			Str("prefix", group.Prefix).
			Int("frames", len(group.Frames)).
			Str("srt", filepath.Base(group.SRTPath)).
			Msg("Processing group")

		track, err := telemetry.Load(group.SRTPath, group.Prefix)
		if err != nil {
			log.Error().Err(err).Str("prefix", group.Prefix).Msg("Failed to load telemetry track")
			continue
		}

		summary := runGroup(cfg, group, track)
		log.Info().
			Str("prefix", group.Prefix).
			Int("tagged", summary.Tagged).
			Int("of", summary.Total).
			Msg("Group done")

		total.add(summary)
	}

	return total
}

func runGroup(cfg config.Config, group Group, track *telemetry.Track) Summary {
	var s Summary

	for _, frame := range group.Frames {
		s.Total++
		file := filepath.Base(frame.Path)

		ts := telemetry.FrameTime(frame.Index, cfg.ExtractionFPS)

		interval, ok := track.At(ts)
		if !ok {
			log.Warn().
				Str("file", file).
				Int("frame", frame.Index).
				Dur("time", ts).
				Msg("No telemetry coverage for frame")
			s.Missed++
			continue
		}

		sample, ok := telemetry.ParseSample(interval.Text)
		if !ok {
			log.Warn().
				Str("file", file).
				Str("text", interval.Text).
				Msg("Could not parse GPS data from telemetry record")
			s.Missed++
			continue
		}

		if err := metadata.WriteGPS(frame.Path, metadata.NewGPSTag(sample)); err != nil {
			log.Error().Err(err).Str("file", file).Msg("Failed to write GPS tag")
			s.Failed++
			continue
		}

		event := log.Info().
			Str("file", file).
			Int("frame", frame.Index).
			Float64("lat", sample.Lat).
			Float64("lon", sample.Lon).
			Float64("abs_alt", sample.AbsAlt)
		if sample.RelAlt != nil {
			event = event.Float64("rel_alt", *sample.RelAlt)
		}
		event.Msg("Tagged")

		s.Tagged++
	}

	return s
}
