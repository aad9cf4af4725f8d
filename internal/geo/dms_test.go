package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDMSRef(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"positive latitude", 40.123, "N"},
		{"negative latitude", -40.123, "S"},
		{"equator defaults to primary", 0, "N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDMS(tt.value, "N", "S").Ref)
		})
	}
}

func TestToDMSDecomposition(t *testing.T) {
	d := ToDMS(40.123, "N", "S")

	assert.Equal(t, uint32(40), d.Degrees)
	assert.Equal(t, uint32(7), d.Minutes)
	assert.InDelta(t, 22.8, d.Seconds, 1e-9)
}

func TestToDMSComponentsNonNegative(t *testing.T) {
	d := ToDMS(-74.456, "E", "W")

	assert.Equal(t, "W", d.Ref)
	assert.Equal(t, uint32(74), d.Degrees)
	assert.GreaterOrEqual(t, d.Seconds, 0.0)
}

func TestToDMSRoundTrip(t *testing.T) {
	values := []float64{0.00001, 1.5, 40.123, 74.456, 89.99999, 12.345678, 0.5}

	for _, v := range values {
		d := ToDMS(v, "N", "S")
		assert.InDelta(t, v, d.Decimal(), 1e-5, "value %v", v)

		d = ToDMS(-v, "N", "S")
		assert.Equal(t, "S", d.Ref)
		assert.InDelta(t, v, d.Decimal(), 1e-5, "value %v", -v)
	}
}

func TestToDMSSecondsPrecision(t *testing.T) {
	// Seconds carry at most five decimal places.
	for _, v := range []float64{40.123456789, 1.000000001, 73.9999999} {
		d := ToDMS(v, "N", "S")
		scaled := d.Seconds * SecondsScale
		assert.InDelta(t, math.Round(scaled), scaled, 1e-6, "value %v", v)
	}
}

func TestToDMSSecondsHalfRoundsAwayFromZero(t *testing.T) {
	// 2^-10 degrees is exactly 3.515625 seconds; both the value and its
	// scaled form 351562.5 are dyadic, so the rounding input sits exactly
	// on the boundary. Half-away-from-zero yields …63, half-to-even …62.
	d := ToDMS(0.0009765625, "N", "S")

	assert.Equal(t, uint32(0), d.Degrees)
	assert.Equal(t, uint32(0), d.Minutes)
	assert.InDelta(t, 3.51563, d.Seconds, 1e-9)
}

func TestNewRational(t *testing.T) {
	r := NewRational(50.25, AltitudeScale)

	require.Equal(t, int64(5025), r.Num)
	require.Equal(t, int64(AltitudeScale), r.Den)
	assert.InDelta(t, 50.25, r.Float(), 1e-9)
}

func TestNewRationalHalfRoundsAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(3), NewRational(2.5, 1).Num)
	assert.Equal(t, int64(-3), NewRational(-2.5, 1).Num)
}

func TestNewRationalApproximation(t *testing.T) {
	tests := []struct {
		value float64
		scale int64
	}{
		{22.8, SecondsScale},
		{0.000004, SecondsScale},
		{50.249, AltitudeScale},
		{-12.3456, AltitudeScale},
	}

	for _, tt := range tests {
		r := NewRational(tt.value, tt.scale)
		assert.InDelta(t, tt.value, r.Float(), 0.5/float64(tt.scale),
			"value %v scale %d", tt.value, tt.scale)
	}
}
