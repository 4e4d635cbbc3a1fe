package attdet

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/attdet/alglin"
	"go.viam.com/attdet/utils"
)

// DCM2Euler returns the Euler angles [phi, theta, psi] in degrees of a direction cosine
// matrix of the form Rx(phi) Ry(theta) Rz(psi). Arguments of asin and acos are not
// clamped, so a matrix that is not quite orthonormal may produce NaN.
func DCM2Euler(a alglin.Matrix3) alglin.Vec3 {
	theta := math.Asin(a[0][2])
	psi := math.Acos(a[0][0] / math.Cos(theta))
	phi := math.Asin(-a[1][2] / math.Cos(theta))
	return alglin.Vec3{utils.RadToDeg(phi), utils.RadToDeg(theta), utils.RadToDeg(psi)}
}

// Quat2Euler returns the Euler angles [phi, theta, psi] in degrees of a unit quaternion
// laid out as [x, y, z, w]. The asin argument is not clamped.
func Quat2Euler(q alglin.Quat) alglin.Vec3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	phi := math.Atan2(2*(w*x-y*z), 1-2*(x*x+y*y))
	theta := math.Asin(2 * (w*y + z*x))
	psi := math.Atan2(2*(w*z-x*y), 1-2*(y*y+z*z))
	return alglin.Vec3{utils.RadToDeg(phi), utils.RadToDeg(theta), utils.RadToDeg(psi)}
}

// QuatToDCM returns the direction cosine matrix of a unit quaternion, using the same
// convention as Quest and Triad: measure = DCM * reference. Column j is reference axis j
// seen from the body, q* e_j q.
func QuatToDCM(q alglin.Quat) alglin.Matrix3 {
	n := QuatToNumber(q)
	var a alglin.Matrix3
	for j, axis := range [3]quat.Number{{Imag: 1}, {Jmag: 1}, {Kmag: 1}} {
		v := quat.Mul(quat.Mul(quat.Conj(n), axis), n)
		a[0][j], a[1][j], a[2][j] = v.Imag, v.Jmag, v.Kmag
	}
	return a
}

// DCMToQuat is the inverse of QuatToDCM. It uses Shepperd's method, dividing by the
// largest of the four quaternion components so the result stays accurate for any
// rotation. The returned quaternion is normalized.
func DCMToQuat(a alglin.Matrix3) alglin.Quat {
	tr := a.Trace()
	var q alglin.Quat
	switch {
	case tr >= a[0][0] && tr >= a[1][1] && tr >= a[2][2]:
		w := 0.5 * math.Sqrt(1+tr)
		q = alglin.Quat{(a[1][2] - a[2][1]) / (4 * w), (a[2][0] - a[0][2]) / (4 * w), (a[0][1] - a[1][0]) / (4 * w), w}
	case a[0][0] >= a[1][1] && a[0][0] >= a[2][2]:
		x := 0.5 * math.Sqrt(1+a[0][0]-a[1][1]-a[2][2])
		q = alglin.Quat{x, (a[0][1] + a[1][0]) / (4 * x), (a[0][2] + a[2][0]) / (4 * x), (a[1][2] - a[2][1]) / (4 * x)}
	case a[1][1] >= a[2][2]:
		y := 0.5 * math.Sqrt(1-a[0][0]+a[1][1]-a[2][2])
		q = alglin.Quat{(a[0][1] + a[1][0]) / (4 * y), y, (a[1][2] + a[2][1]) / (4 * y), (a[2][0] - a[0][2]) / (4 * y)}
	default:
		z := 0.5 * math.Sqrt(1-a[0][0]-a[1][1]+a[2][2])
		q = alglin.Quat{(a[0][2] + a[2][0]) / (4 * z), (a[1][2] + a[2][1]) / (4 * z), z, (a[0][1] - a[1][0]) / (4 * z)}
	}
	return q.Normalize()
}

// QuatToNumber converts q to gonum's scalar-first quaternion.
func QuatToNumber(q alglin.Quat) quat.Number {
	return quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
}
