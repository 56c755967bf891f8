package joint

// Sample is one reconstructed joint angle.
type Sample struct {
	Name  string
	Angle float64 // radians
}

// TranslateState converts measured pulse widths back into joint angles.
// joints and pulseWidths are parallel, in the order the pulse width query
// was built. A reading of zero or less means the controller had no value for
// that channel; the joint is omitted from the result rather than reported as
// an error.
func TranslateState(joints []Joint, pulseWidths []int) []Sample {
	samples := make([]Sample, 0, len(joints))
	for i, j := range joints {
		if i >= len(pulseWidths) {
			break
		}
		pw := pulseWidths[i]
		if pw <= 0 {
			continue
		}
		samples = append(samples, Sample{Name: j.Name, Angle: j.Angle(pw)})
	}
	return samples
}
