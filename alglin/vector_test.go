package alglin

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func randomUnit(r *rand.Rand) Vec3 {
	for {
		v := Vec3{2*r.Float64() - 1, 2*r.Float64() - 1, 2*r.Float64() - 1}
		if n := v.Norm(); n > 1e-3 {
			return v.Scale(1 / n)
		}
	}
}

func TestCross(t *testing.T) {
	u := Vec3{1.4, 0, 1}
	v := Vec3{0.333, 2, 7}
	test.That(t, u.Cross(v).ApproxEqual(Vec3{-2, -9.467, 2.8}), test.ShouldBeTrue)
	test.That(t, v.Cross(u).ApproxEqual(Vec3{2, 9.467, -2.8}), test.ShouldBeTrue)
	test.That(t, u.Cross(u), test.ShouldResemble, Vec3{})

	x, y, z := Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}
	test.That(t, x.Cross(y), test.ShouldResemble, z)
	test.That(t, y.Cross(z), test.ShouldResemble, x)
	test.That(t, z.Cross(x), test.ShouldResemble, y)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a, b := randomUnit(r), randomUnit(r)
		c := a.Cross(b)
		test.That(t, c.Norm(), test.ShouldBeLessThanOrEqualTo, 1+1e-15)
		test.That(t, c.Dot(a), test.ShouldAlmostEqual, 0, 1e-14)
		test.That(t, c.Dot(b), test.ShouldAlmostEqual, 0, 1e-14)
	}
}

func TestOuter(t *testing.T) {
	u := Vec3{1.4, 0, 1}
	v := Vec3{0.333, 2, 7}
	expected := Matrix3{{0.4662, 2.8, 9.8}, {0, 0, 0}, {0.333, 2, 7}}
	test.That(t, u.Outer(v).ApproxEqual(expected), test.ShouldBeTrue)
	test.That(t, v.Outer(u).ApproxEqual(expected.Transpose()), test.ShouldBeTrue)

	test.That(t, Vec2{1, 2}.Outer(Vec2{3, 4}), test.ShouldResemble, Matrix2{{3, 4}, {6, 8}})

	q := Vec4{0, 0, 0, 1}
	o := q.Outer(q)
	test.That(t, o.Trace(), test.ShouldEqual, 1.)
	test.That(t, o[3][3], test.ShouldEqual, 1.)
}

func TestDotNormalize(t *testing.T) {
	test.That(t, Vec3{1, 0, 1}.Dot(Vec3{2, 3, 7}), test.ShouldEqual, 9.)
	test.That(t, Vec2{1, 2}.Dot(Vec2{3, 4}), test.ShouldEqual, 11.)

	n := Vec3{1.4, 0, 1}.Normalize()
	test.That(t, n.ApproxEqual(Vec3{0.813733471206735, 0, 0.581238193719096}), test.ShouldBeTrue)
	test.That(t, n.Norm(), test.ShouldAlmostEqual, 1, 1e-15)

	test.That(t, Vec2{3, 4}.Normalize().ApproxEqual(Vec2{0.6, 0.8}), test.ShouldBeTrue)
	test.That(t, Vec4{2, 0, 0, 0}.Normalize(), test.ShouldResemble, Vec4{1, 0, 0, 0})

	zero := Vec3{}.Normalize()
	test.That(t, math.IsNaN(zero[0]), test.ShouldBeTrue)
}

func TestVectorArithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	test.That(t, a.Add(b), test.ShouldResemble, Vec3{5, 7, 9})
	test.That(t, b.Sub(a), test.ShouldResemble, Vec3{3, 3, 3})
	test.That(t, a.Scale(-2), test.ShouldResemble, Vec3{-2, -4, -6})
	test.That(t, a, test.ShouldResemble, Vec3{1, 2, 3})

	q := Quat{1, 2, 3, 4}
	test.That(t, q.Add(q).Sub(q), test.ShouldResemble, q)
	test.That(t, q.Dot(q), test.ShouldEqual, 30.)
	test.That(t, q.Equal(Quat{1, 2, 3, 4.5}, 0.5), test.ShouldBeTrue)
	test.That(t, q.ApproxEqual(Quat{1, 2, 3, 4.5}), test.ShouldBeFalse)

	test.That(t, Vec2{1, 1}.Scale(2).Add(Vec2{1, 0}).Sub(Vec2{0, 1}), test.ShouldResemble, Vec2{3, 1})
	test.That(t, Vec2{3, 4}.Norm(), test.ShouldEqual, 5.)
}

func TestR3Conversion(t *testing.T) {
	v := Vec3{0.1, -2, 30}
	test.That(t, Vec3FromR3(v.R3()), test.ShouldResemble, v)
	test.That(t, v.R3().Cross(Vec3{1, 0, 0}.R3()), test.ShouldResemble, v.Cross(Vec3{1, 0, 0}).R3())
	test.That(t, Vec3FromR3(r3.Vector{X: 1, Y: 2, Z: 3}), test.ShouldResemble, Vec3{1, 2, 3})
}
