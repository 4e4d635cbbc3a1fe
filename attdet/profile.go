package attdet

import "go.viam.com/attdet/alglin"

// BuildProfile returns the attitude profile matrix B, the weighted sum of
// outer(measure, reference) over all sensors, along with the sum of the weights.
// The sum of the weights is the initial estimate of the largest eigenvalue in Quest.
func BuildProfile(sensors ...Sensor) (alglin.Matrix3, float64) {
	var b alglin.Matrix3
	var lambda0 float64
	for _, s := range sensors {
		b = b.Add(s.Measure.Outer(s.Reference).Scale(s.Weight))
		lambda0 += s.Weight
	}
	return b, lambda0
}
