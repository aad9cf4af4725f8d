// Package geo handles coordinate conversions and geographic data structures.
package geo

import "math"

// Seconds are encoded at five decimal places, altitude at two. Both are
// fixed by the EXIF GPS rational layout.
const (
	SecondsScale  = 100000
	AltitudeScale = 100
)

// DMS is a degrees/minutes/seconds decomposition of an angle. The
// components are always non-negative; the sign of the source value is
// carried solely by Ref.
type DMS struct {
	Degrees uint32
	Minutes uint32
	Seconds float64
	Ref     string
}

// ToDMS decomposes a signed decimal-degree value. Ref is primary for
// positive values, secondary for negative, and primary for exactly zero.
// Seconds are rounded half-away-from-zero to five decimal places.
func ToDMS(value float64, primary, secondary string) DMS {
	ref := primary
	if value < 0 {
		ref = secondary
	}

	abs := math.Abs(value)
	deg := math.Floor(abs)
	t := (abs - deg) * 60
	min := math.Floor(t)
	sec := math.Round((t-min)*60*SecondsScale) / SecondsScale

	return DMS{
		Degrees: uint32(deg),
		Minutes: uint32(min),
		Seconds: sec,
		Ref:     ref,
	}
}

// Decimal reconstructs the magnitude of the angle in decimal degrees.
// The Ref sign is intentionally not applied; callers that need a signed
// value know which ref is the negative one.
func (d DMS) Decimal() float64 {
	return float64(d.Degrees) + float64(d.Minutes)/60 + d.Seconds/3600
}

// Rational is a fixed-point (numerator, denominator) encoding of a decimal
// value, used because the target metadata format has no float field.
type Rational struct {
	Num int64
	Den int64
}

// NewRational encodes value at the given scale, rounding half-away-from-zero.
// The precision loss is the encoding's defined behavior: the result is
// within 0.5/scale of the input.
func NewRational(value float64, scale int64) Rational {
	return Rational{
		Num: int64(math.Round(value * float64(scale))),
		Den: scale,
	}
}

// Float decodes the rational back to a decimal value.
func (r Rational) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}
