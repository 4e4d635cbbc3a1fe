// Package attdet determines the attitude of a rigid body from pairs of vector
// observations, each seen both in the body frame and in a known reference frame.
//
// Two solvers are provided. Quest computes the optimal quaternion for any number of
// weighted observations. Triad computes a direction cosine matrix from exactly two.
// Both return rotations from the reference frame to the body frame, so that
// measure = DCM * reference.
package attdet

import "go.viam.com/attdet/alglin"

// Precision is the tolerance used when comparing attitude results. It is looser than
// the kernel default since the solvers accumulate more rounding error.
const Precision = 1e-6

// Sensor is a single vector observation: Measure in the body frame, Reference in the
// reference frame and a non-negative Weight giving its relative confidence.
type Sensor struct {
	Measure   alglin.Vec3
	Reference alglin.Vec3
	Weight    float64
}

// NewSensor returns a Sensor.
func NewSensor(measure, reference alglin.Vec3, weight float64) Sensor {
	return Sensor{Measure: measure, Reference: reference, Weight: weight}
}

// BlockMatrix returns the matrix whose rows are a, b and c.
func BlockMatrix(a, b, c alglin.Vec3) alglin.Matrix3 {
	return alglin.Matrix3FromRows(a, b, c)
}

// IsZeroQuat reports whether q is the zero quaternion Quest returns for insufficient data.
func IsZeroQuat(q alglin.Quat) bool {
	return q == alglin.Quat{}
}

// QuatEqual compares two quaternions within Precision.
func QuatEqual(q1, q2 alglin.Quat) bool {
	return q1.Equal(q2, Precision)
}

// DCMEqual compares two direction cosine matrices within Precision.
func DCMEqual(a, b alglin.Matrix3) bool {
	return a.Equal(b, Precision)
}
