// Package processor drives the per-frame geotagging pipeline.
package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Frame identifies one extracted image by its path and 1-based ordinal
// within the source video.
type Frame struct {
	Path  string
	Index int
}

// Group pairs one video's telemetry track with its extracted frames,
// matched through the shared DJI_NNNN prefix.
type Group struct {
	Prefix  string
	SRTPath string
	Frames  []Frame
}

// DJI frame filenames come in two shapes: DJI_0609_SE_000001.jpg and
// DJI_0609_000001.jpg. The _SE_ variant is tried first.
var (
	seFrameRe    = regexp.MustCompile(`^(DJI_\d+)_SE_(\d+)\.(?i:jpg)$`)
	plainFrameRe = regexp.MustCompile(`^(DJI_\d+)_(\d+)\.(?i:jpg)$`)
)

// SplitFrameName extracts the video prefix and frame number from a frame
// filename, or reports false for names outside the DJI conventions.
func SplitFrameName(name string) (prefix string, index int, ok bool) {
	m := seFrameRe.FindStringSubmatch(name)
	if m == nil {
		m = plainFrameRe.FindStringSubmatch(name)
	}
	if m == nil {
		return "", 0, false
	}

	index, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}

	return m[1], index, true
}

// ScanDir enumerates dir and pairs DJI frame images with their SRT tracks
// by video prefix. Frames within a group are sorted by index. Prefixes with
// only one side of the pair are logged and skipped.
func ScanDir(dir string) ([]Group, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	srtFiles := make(map[string]string)
	frames := make(map[string][]Frame)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()

		if strings.HasPrefix(name, "DJI_") && strings.EqualFold(filepath.Ext(name), ".srt") {
			prefix := strings.TrimSuffix(name, filepath.Ext(name))
			srtFiles[prefix] = filepath.Join(dir, name)
			continue
		}

		if prefix, index, ok := SplitFrameName(name); ok {
			frames[prefix] = append(frames[prefix], Frame{
				Path:  filepath.Join(dir, name),
				Index: index,
			})
		}
	}

	prefixes := make([]string, 0, len(srtFiles))
	for prefix := range srtFiles {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	groups := make([]Group, 0, len(prefixes))
	for _, prefix := range prefixes {
		group := Group{
			Prefix:  prefix,
			SRTPath: srtFiles[prefix],
			Frames:  frames[prefix],
		}
		if len(group.Frames) == 0 {
			log.Warn().Str("prefix", prefix).Msg("SRT track has no matching frames")
			continue
		}

		sort.Slice(group.Frames, func(i, j int) bool {
			return group.Frames[i].Index < group.Frames[j].Index
		})
		groups = append(groups, group)
	}

	for prefix, f := range frames {
		if _, ok := srtFiles[prefix]; !ok {
			log.Warn().
				Str("prefix", prefix).
				Int("frames", len(f)).
				Msg("Frames have no matching SRT track")
		}
	}

	return groups, nil
}
