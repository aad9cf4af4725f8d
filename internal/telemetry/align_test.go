package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTimeFirstFrameIsOrigin(t *testing.T) {
	for _, fps := range []float64{1, 5, 29.97, 60} {
		assert.Equal(t, time.Duration(0), FrameTime(1, fps), "fps %v", fps)
	}
}

func TestFrameTime(t *testing.T) {
	ntsc := 29.97
	tests := []struct {
		index int
		fps   float64
		want  time.Duration
	}{
		{6, 5, time.Second},
		{2, 2, 500 * time.Millisecond},
		{11, 5, 2 * time.Second},
		{26, 5, 5 * time.Second},
		{31, ntsc, time.Duration(float64(30) / ntsc * float64(time.Second))},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FrameTime(tt.index, tt.fps),
			"frame %d at %v fps", tt.index, tt.fps)
	}
}
