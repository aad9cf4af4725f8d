package metadata

import (
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// ReadGPS extracts the decoded GPS position from an image's EXIF block.
// Used to verify written tags; the tagging pipeline itself never reads.
func ReadGPS(path string) (lat, lon, alt float64, err error) {
	rawExif, err := exif.SearchFileAndExtractExif(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("extract exif from %s: %w", path, err)
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("decode exif from %s: %w", path, err)
	}

	gps := make(map[string]interface{})
	for _, tag := range tags {
		if tag.IfdPath == gpsIfdPath {
			gps[tag.TagName] = tag.Value
		}
	}

	lat, err = decodeAngle(gps, "GPSLatitude", "GPSLatitudeRef", "S")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	lon, err = decodeAngle(gps, "GPSLongitude", "GPSLongitudeRef", "W")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", path, err)
	}

	if raw, ok := gps["GPSAltitude"].([]exifcommon.Rational); ok && len(raw) == 1 {
		alt = float64(raw[0].Numerator) / float64(raw[0].Denominator)
	}

	return lat, lon, alt, nil
}

func decodeAngle(gps map[string]interface{}, tagName, refName, negativeRef string) (float64, error) {
	raw, ok := gps[tagName].([]exifcommon.Rational)
	if !ok || len(raw) != 3 {
		return 0, fmt.Errorf("missing or malformed %s", tagName)
	}

	value := float64(raw[0].Numerator)/float64(raw[0].Denominator) +
		float64(raw[1].Numerator)/float64(raw[1].Denominator)/60 +
		float64(raw[2].Numerator)/float64(raw[2].Denominator)/3600

	if ref, ok := gps[refName].(string); ok && ref == negativeRef {
		value = -value
	}

	return value, nil
}
