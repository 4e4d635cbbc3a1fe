// Package alglin implements the small fixed-size linear algebra needed by the attitude
// determination algorithms.
//
// Every vector and matrix is a plain Go array, so values live on the stack, copy on
// assignment and never change shape. Determinants and inverses are only defined for
// Matrix2 and Matrix3 and the adjugate only for Matrix3; Matrix4 deliberately has none
// of these methods, so asking for them does not compile.
package alglin

import (
	"math"

	"github.com/golang/geo/r3"
)

// DefaultPrecision is the tolerance used by ApproxEqual.
const DefaultPrecision = 1e-14

// Vec2 is a row vector with two elements.
type Vec2 [2]float64

// Vec3 is a row vector with three elements.
type Vec3 [3]float64

// Vec4 is a row vector with four elements.
type Vec4 [4]float64

// Quat is a quaternion laid out as [x, y, z, w]: vector part first, scalar last.
type Quat = Vec4

// Vec3FromR3 converts an r3.Vector.
func Vec3FromR3(v r3.Vector) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// R3 converts v to an r3.Vector.
func (v Vec3) R3() r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Add returns v + u.
func (v Vec2) Add(u Vec2) Vec2 {
	for i := range v {
		v[i] += u[i]
	}
	return v
}

// Sub returns v - u.
func (v Vec2) Sub(u Vec2) Vec2 {
	for i := range v {
		v[i] -= u[i]
	}
	return v
}

// Scale returns a * v.
func (v Vec2) Scale(a float64) Vec2 {
	for i := range v {
		v[i] *= a
	}
	return v
}

// Dot returns the inner product of v and u.
func (v Vec2) Dot(u Vec2) float64 {
	return v[0]*u[0] + v[1]*u[1]
}

// Norm returns the euclidean length of v.
func (v Vec2) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector has no direction and
// yields NaNs.
func (v Vec2) Normalize() Vec2 {
	return v.Scale(1 / math.Sqrt(v.Dot(v)))
}

// Outer returns the tensor product v^T u.
func (v Vec2) Outer(u Vec2) Matrix2 {
	var out Matrix2
	for i := range v {
		for j := range u {
			out[i][j] = v[i] * u[j]
		}
	}
	return out
}

// Equal reports whether every element of v is within eps of u.
func (v Vec2) Equal(u Vec2, eps float64) bool {
	for i := range v {
		if math.Abs(v[i]-u[i]) > eps {
			return false
		}
	}
	return true
}

// ApproxEqual is Equal with DefaultPrecision.
func (v Vec2) ApproxEqual(u Vec2) bool {
	return v.Equal(u, DefaultPrecision)
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	for i := range v {
		v[i] += u[i]
	}
	return v
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	for i := range v {
		v[i] -= u[i]
	}
	return v
}

// Scale returns a * v.
func (v Vec3) Scale(a float64) Vec3 {
	for i := range v {
		v[i] *= a
	}
	return v
}

// Dot returns the inner product of v and u.
func (v Vec3) Dot(u Vec3) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * u[i]
	}
	return sum
}

// Norm returns the euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector has no direction and
// yields NaNs; callers must not normalize it.
func (v Vec3) Normalize() Vec3 {
	return v.Scale(1 / math.Sqrt(v.Dot(v)))
}

// Cross returns the cross product v x u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Outer returns the tensor product v^T u, i.e. out[i][j] = v[i]*u[j].
func (v Vec3) Outer(u Vec3) Matrix3 {
	var out Matrix3
	for i := range v {
		for j := range u {
			out[i][j] = v[i] * u[j]
		}
	}
	return out
}

// MulMatrix returns the row vector v * m.
func (v Vec3) MulMatrix(m Matrix3) Vec3 {
	var out Vec3
	for j := 0; j < 3; j++ {
		for k := 0; k < 3; k++ {
			out[j] += v[k] * m[k][j]
		}
	}
	return out
}

// Equal reports whether every element of v is within eps of u.
func (v Vec3) Equal(u Vec3, eps float64) bool {
	for i := range v {
		if math.Abs(v[i]-u[i]) > eps {
			return false
		}
	}
	return true
}

// ApproxEqual is Equal with DefaultPrecision.
func (v Vec3) ApproxEqual(u Vec3) bool {
	return v.Equal(u, DefaultPrecision)
}

// Add returns v + u.
func (v Vec4) Add(u Vec4) Vec4 {
	for i := range v {
		v[i] += u[i]
	}
	return v
}

// Sub returns v - u.
func (v Vec4) Sub(u Vec4) Vec4 {
	for i := range v {
		v[i] -= u[i]
	}
	return v
}

// Scale returns a * v.
func (v Vec4) Scale(a float64) Vec4 {
	for i := range v {
		v[i] *= a
	}
	return v
}

// Dot returns the inner product of v and u.
func (v Vec4) Dot(u Vec4) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * u[i]
	}
	return sum
}

// Norm returns the euclidean length of v.
func (v Vec4) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector yields NaNs.
func (v Vec4) Normalize() Vec4 {
	return v.Scale(1 / math.Sqrt(v.Dot(v)))
}

// Outer returns the tensor product v^T u.
func (v Vec4) Outer(u Vec4) Matrix4 {
	var out Matrix4
	for i := range v {
		for j := range u {
			out[i][j] = v[i] * u[j]
		}
	}
	return out
}

// Equal reports whether every element of v is within eps of u.
func (v Vec4) Equal(u Vec4, eps float64) bool {
	for i := range v {
		if math.Abs(v[i]-u[i]) > eps {
			return false
		}
	}
	return true
}

// ApproxEqual is Equal with DefaultPrecision.
func (v Vec4) ApproxEqual(u Vec4) bool {
	return v.Equal(u, DefaultPrecision)
}
