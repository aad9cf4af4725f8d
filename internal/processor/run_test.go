package processor

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donwrightdesigns/dji-srt-geotag/internal/config"
	"github.com/donwrightdesigns/dji-srt-geotag/internal/metadata"
)

const scenarioSRT = `1
00:00:00,000 --> 00:00:00,900
[latitude: 40.000] [longitude: -74.000] [rel_alt: 9.0 abs_alt: 49.0]

2
00:00:01,000 --> 00:00:01,200
[latitude: 40.123] [longitude: -74.456] [rel_alt: 10.0 abs_alt: 50.25]

3
00:00:01,300 --> 00:00:01,600
[latitude: garbled] [longitude: -74.456] [abs_alt: 50.25]
`

func writeFrameJPEG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 64, A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "DJI_0042.SRT"), []byte(scenarioSRT), 0o644))

	// Frame 6 at 5 fps sits at 1000 ms, inside the second record.
	tagged := filepath.Join(dir, "DJI_0042_SE_000006.jpg")
	writeFrameJPEG(t, tagged)

	// Frame 7 sits at 1200 ms, covered but not a valid JPEG.
	corrupt := filepath.Join(dir, "DJI_0042_SE_000007.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("broken"), 0o644))

	// Frame 8 sits at 1400 ms, covered by a record without parsable GPS.
	garbled := filepath.Join(dir, "DJI_0042_SE_000008.jpg")
	writeFrameJPEG(t, garbled)

	// Frame 26 sits at 5000 ms, outside all telemetry coverage.
	uncovered := filepath.Join(dir, "DJI_0042_SE_000026.jpg")
	writeFrameJPEG(t, uncovered)

	groups, err := ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	cfg := config.Config{Dir: dir, SourceFPS: 29.97, ExtractionFPS: 5}
	summary := Run(cfg, groups)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.Tagged)
	assert.Equal(t, 2, summary.Missed)
	assert.Equal(t, 1, summary.Failed)

	lat, lon, alt, err := metadata.ReadGPS(tagged)
	require.NoError(t, err)
	assert.InDelta(t, 40.123, lat, 1e-5)
	assert.InDelta(t, -74.456, lon, 1e-5)
	assert.InDelta(t, 50.25, alt, 0.01)

	// The uncovered frame was skipped, not tagged.
	_, _, _, err = metadata.ReadGPS(uncovered)
	assert.Error(t, err)
}

func TestRunSkipsGroupWithUnloadableTrack(t *testing.T) {
	dir := t.TempDir()
	srtPath := filepath.Join(dir, "DJI_0001.SRT")
	require.NoError(t, os.WriteFile(srtPath, []byte(scenarioSRT), 0o644))
	writeFrameJPEG(t, filepath.Join(dir, "DJI_0001_000001.jpg"))

	groups, err := ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	// Track vanishes between scan and run; the group is skipped whole.
	require.NoError(t, os.Remove(srtPath))

	summary := Run(config.Default(), groups)
	assert.Equal(t, Summary{}, summary)
}

func TestRunFirstFrameAtTrackOrigin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "DJI_0042.SRT"), []byte(scenarioSRT), 0o644))

	first := filepath.Join(dir, "DJI_0042_SE_000001.jpg")
	writeFrameJPEG(t, first)

	groups, err := ScanDir(dir)
	require.NoError(t, err)

	summary := Run(config.Config{Dir: dir, SourceFPS: 29.97, ExtractionFPS: 5}, groups)
	require.Equal(t, 1, summary.Tagged)

	lat, lon, _, err := metadata.ReadGPS(first)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, lat, 1e-5)
	assert.InDelta(t, -74.0, lon, 1e-5)
}
