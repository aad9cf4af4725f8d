// Package metadata merges resolved GPS positions into JPEG EXIF blocks.
package metadata

import (
	"math"

	"github.com/donwrightdesigns/dji-srt-geotag/internal/geo"
	"github.com/donwrightdesigns/dji-srt-geotag/internal/telemetry"
)

// GPSTag is the encoded GPS record written to an image. The altitude
// reference is fixed at "above sea level"; the EXIF rational is unsigned,
// so a negative absolute altitude is written by magnitude.
type GPSTag struct {
	Lat      geo.DMS
	Lon      geo.DMS
	Altitude geo.Rational
}

// NewGPSTag encodes a telemetry sample for the EXIF GPS IFD. Latitude maps
// to N/S, longitude to E/W; altitude is kept at two decimal places.
func NewGPSTag(s telemetry.Sample) GPSTag {
	return GPSTag{
		Lat:      geo.ToDMS(s.Lat, "N", "S"),
		Lon:      geo.ToDMS(s.Lon, "E", "W"),
		Altitude: geo.NewRational(math.Abs(s.AbsAlt), geo.AltitudeScale),
	}
}

// Decode recovers the signed decimal coordinates and altitude from the tag.
func (t GPSTag) Decode() (lat, lon, alt float64) {
	lat = t.Lat.Decimal()
	if t.Lat.Ref == "S" {
		lat = -lat
	}
	lon = t.Lon.Decimal()
	if t.Lon.Ref == "W" {
		lon = -lon
	}
	return lat, lon, t.Altitude.Float()
}
