package telemetry

import (
	"regexp"
	"strconv"
)

// DJI embeds position data as bracketed key-value tokens in the record
// text, in no fixed order. rel_alt shares a bracket with abs_alt, so its
// value is not terminated by "]".
var (
	latRe    = regexp.MustCompile(`\[latitude:\s*([-\d.]+)\]`)
	lonRe    = regexp.MustCompile(`\[longitude:\s*([-\d.]+)\]`)
	relAltRe = regexp.MustCompile(`\[rel_alt:\s*([-\d.]+)`)
	absAltRe = regexp.MustCompile(`abs_alt:\s*([-\d.]+)\]`)
)

// Sample is the position parsed out of one telemetry record. RelAlt is nil
// when the record carries no relative altitude.
type Sample struct {
	Lat    float64
	Lon    float64
	AbsAlt float64
	RelAlt *float64
}

// ParseSample extracts a position from a record's text. It returns false
// unless latitude, longitude and absolute altitude are all present and
// numeric: partial GPS data is worse than none and is never produced.
func ParseSample(text string) (Sample, bool) {
	lat, ok := matchFloat(latRe, text)
	if !ok {
		return Sample{}, false
	}
	lon, ok := matchFloat(lonRe, text)
	if !ok {
		return Sample{}, false
	}
	absAlt, ok := matchFloat(absAltRe, text)
	if !ok {
		return Sample{}, false
	}

	s := Sample{Lat: lat, Lon: lon, AbsAlt: absAlt}
	if relAlt, ok := matchFloat(relAltRe, text); ok {
		s.RelAlt = &relAlt
	}

	return s, true
}

func matchFloat(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
