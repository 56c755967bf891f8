package joint

import "math"

// Pulse width limits and center of an SSC-32U channel, in microseconds.
const (
	PulseWidthMin    = 500
	PulseWidthMax    = 2500
	PulseWidthCenter = 1500
)

// scale maps radians to microseconds: a swing of ±π/2 rad covers the
// ±1000 µs around center.
const scale = 2000.0 / math.Pi

// AngleToPulseWidth converts an angle in radians to a raw pulse width in
// microseconds. The result is not yet clamped or inverted.
func AngleToPulseWidth(angle, offset float64) int {
	return int(math.Round(scale*(angle-offset) + PulseWidthCenter))
}

// PulseWidthToAngle is the exact inverse of AngleToPulseWidth. Readings from
// an inverted joint must be un-inverted before calling.
func PulseWidthToAngle(pw int, offset float64) float64 {
	return (float64(pw)-PulseWidthCenter)/scale + offset
}

// ClampPulseWidth limits a pulse width to the valid output range.
func ClampPulseWidth(pw int) int {
	if pw < PulseWidthMin {
		return PulseWidthMin
	}
	if pw > PulseWidthMax {
		return PulseWidthMax
	}
	return pw
}

// InvertPulseWidth reflects a pulse width around the center, compensating
// for a reversed mechanical mounting. It is its own inverse.
func InvertPulseWidth(pw int) int {
	return 2*PulseWidthCenter - pw
}

// VelocityToSpeed converts an angular velocity in rad/s to the controller's
// speed unit, µs/s.
func VelocityToSpeed(velocity float64) float64 {
	return scale * velocity
}

// PulseWidth runs the full forward conversion for the joint: scale the angle,
// clamp, then invert if the joint is mounted reversed. Clamping happens
// before inversion so the reflection always operates on an in-range value.
func (j Joint) PulseWidth(angle float64) int {
	pw := ClampPulseWidth(AngleToPulseWidth(angle, j.OffsetAngle))
	if j.Invert {
		pw = InvertPulseWidth(pw)
	}
	return pw
}

// Angle recovers the joint angle from a measured pulse width, undoing
// inversion first when the joint is mounted reversed.
func (j Joint) Angle(pw int) float64 {
	if j.Invert {
		pw = InvertPulseWidth(pw)
	}
	return PulseWidthToAngle(pw, j.OffsetAngle)
}
