package attdet

import "go.viam.com/attdet/alglin"

// Triad returns the direction cosine matrix rotating the reference frame onto the body
// frame, built from two observations. s1 is trusted fully and s2 only fixes the
// rotation about s1. The triads are not normalized, so the result is a proper rotation
// only when the measures and references are unit vectors.
func Triad(s1, s2 Sensor) alglin.Matrix3 {
	t1b := s1.Measure
	t2b := s1.Measure.Cross(s2.Measure)
	t3b := t1b.Cross(t2b)

	t1i := s1.Reference
	t2i := s1.Reference.Cross(s2.Reference)
	t3i := t1i.Cross(t2i)

	bbar := BlockMatrix(t1b, t2b, t3b)
	n := BlockMatrix(t1i, t2i, t3i)
	return bbar.Transpose().Mul(n)
}
