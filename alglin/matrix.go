package alglin

import "math"

// Matrix2 is a 2x2 matrix indexed [row][col].
type Matrix2 [2][2]float64

// Matrix3 is a 3x3 matrix indexed [row][col].
type Matrix3 [3][3]float64

// Matrix4 is a 4x4 matrix indexed [row][col]. It supports the elementwise and product
// operations only.
type Matrix4 [4][4]float64

// Identity2 returns the 2x2 identity.
func Identity2() Matrix2 {
	return Matrix2{{1, 0}, {0, 1}}
}

// Identity3 returns the 3x3 identity.
func Identity3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Identity4 returns the 4x4 identity.
func Identity4() Matrix4 {
	var out Matrix4
	for i := range out {
		out[i][i] = 1
	}
	return out
}

// Add returns m + n.
func (m Matrix2) Add(n Matrix2) Matrix2 {
	for i := range m {
		for j := range m[i] {
			m[i][j] += n[i][j]
		}
	}
	return m
}

// Sub returns m - n.
func (m Matrix2) Sub(n Matrix2) Matrix2 {
	return m.Add(n.Scale(-1))
}

// Scale returns a * m.
func (m Matrix2) Scale(a float64) Matrix2 {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= a
		}
	}
	return m
}

// Mul returns the matrix product m * n.
func (m Matrix2) Mul(n Matrix2) Matrix2 {
	var out Matrix2
	for row := range m {
		for col := range n[0] {
			for inn := range n {
				out[row][col] += m[row][inn] * n[inn][col]
			}
		}
	}
	return out
}

// MulVec returns m * v with v taken as a column.
func (m Matrix2) MulVec(v Vec2) Vec2 {
	var out Vec2
	for i := range m {
		for k := range v {
			out[i] += m[i][k] * v[k]
		}
	}
	return out
}

// Transpose returns m^T.
func (m Matrix2) Transpose() Matrix2 {
	m[0][1], m[1][0] = m[1][0], m[0][1]
	return m
}

// Trace returns the sum of the diagonal.
func (m Matrix2) Trace() float64 {
	return m[0][0] + m[1][1]
}

// Equal reports whether every element of m is within eps of n.
func (m Matrix2) Equal(n Matrix2, eps float64) bool {
	for i := range m {
		for j := range m[i] {
			if math.Abs(m[i][j]-n[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// ApproxEqual is Equal with DefaultPrecision.
func (m Matrix2) ApproxEqual(n Matrix2) bool {
	return m.Equal(n, DefaultPrecision)
}

// Matrix3FromRows builds a matrix whose rows are r0, r1 and r2.
func Matrix3FromRows(r0, r1, r2 Vec3) Matrix3 {
	return Matrix3{r0, r1, r2}
}

// Row returns row i.
func (m Matrix3) Row(i int) Vec3 {
	return m[i]
}

// Col returns column j.
func (m Matrix3) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// Add returns m + n.
func (m Matrix3) Add(n Matrix3) Matrix3 {
	for i := range m {
		for j := range m[i] {
			m[i][j] += n[i][j]
		}
	}
	return m
}

// Sub returns m - n.
func (m Matrix3) Sub(n Matrix3) Matrix3 {
	return m.Add(n.Scale(-1))
}

// Scale returns a * m.
func (m Matrix3) Scale(a float64) Matrix3 {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= a
		}
	}
	return m
}

// Mul returns the matrix product m * n.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	var out Matrix3
	for row := range m {
		for col := range n[0] {
			for inn := range n {
				out[row][col] += m[row][inn] * n[inn][col]
			}
		}
	}
	return out
}

// MulVec returns m * v with v taken as a column.
func (m Matrix3) MulVec(v Vec3) Vec3 {
	var out Vec3
	for i := range m {
		for k := range v {
			out[i] += m[i][k] * v[k]
		}
	}
	return out
}

// Transpose returns m^T.
func (m Matrix3) Transpose() Matrix3 {
	for i := range m {
		for j := 0; j < i; j++ {
			m[i][j], m[j][i] = m[j][i], m[i][j]
		}
	}
	return m
}

// Trace returns the sum of the diagonal.
func (m Matrix3) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// Equal reports whether every element of m is within eps of n.
func (m Matrix3) Equal(n Matrix3, eps float64) bool {
	for i := range m {
		for j := range m[i] {
			if math.Abs(m[i][j]-n[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// ApproxEqual is Equal with DefaultPrecision.
func (m Matrix3) ApproxEqual(n Matrix3) bool {
	return m.Equal(n, DefaultPrecision)
}

// Add returns m + n.
func (m Matrix4) Add(n Matrix4) Matrix4 {
	for i := range m {
		for j := range m[i] {
			m[i][j] += n[i][j]
		}
	}
	return m
}

// Sub returns m - n.
func (m Matrix4) Sub(n Matrix4) Matrix4 {
	return m.Add(n.Scale(-1))
}

// Scale returns a * m.
func (m Matrix4) Scale(a float64) Matrix4 {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= a
		}
	}
	return m
}

// Mul returns the matrix product m * n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	for row := range m {
		for col := range n[0] {
			for inn := range n {
				out[row][col] += m[row][inn] * n[inn][col]
			}
		}
	}
	return out
}

// MulVec returns m * v with v taken as a column.
func (m Matrix4) MulVec(v Vec4) Vec4 {
	var out Vec4
	for i := range m {
		for k := range v {
			out[i] += m[i][k] * v[k]
		}
	}
	return out
}

// Transpose returns m^T.
func (m Matrix4) Transpose() Matrix4 {
	for i := range m {
		for j := 0; j < i; j++ {
			m[i][j], m[j][i] = m[j][i], m[i][j]
		}
	}
	return m
}

// Trace returns the sum of the diagonal.
func (m Matrix4) Trace() float64 {
	var sum float64
	for i := range m {
		sum += m[i][i]
	}
	return sum
}

// Equal reports whether every element of m is within eps of n.
func (m Matrix4) Equal(n Matrix4, eps float64) bool {
	for i := range m {
		for j := range m[i] {
			if math.Abs(m[i][j]-n[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// ApproxEqual is Equal with DefaultPrecision.
func (m Matrix4) ApproxEqual(n Matrix4) bool {
	return m.Equal(n, DefaultPrecision)
}
