package telemetry

import "time"

// FrameTime computes the capture timestamp of the 1-based frame index.
// Timing is governed entirely by the extraction rate the frames were
// sampled at; the video's native rate plays no part.
func FrameTime(index int, extractionFPS float64) time.Duration {
	return time.Duration(float64(index-1) / extractionFPS * float64(time.Second))
}
