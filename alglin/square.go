package alglin

// Det returns ad - bc.
func (m Matrix2) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Inverse returns m^-1, or the zero matrix when the determinant is exactly zero.
func (m Matrix2) Inverse() Matrix2 {
	d := m.Det()
	if d == 0 {
		return Matrix2{}
	}
	m[0][0], m[1][1] = m[1][1], m[0][0]
	m[0][1] = -m[0][1]
	m[1][0] = -m[1][0]
	return m.Scale(1 / d)
}

// Det returns the determinant by cofactor expansion along the first row.
func (m Matrix3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) +
		m[0][1]*(m[1][2]*m[2][0]-m[1][0]*m[2][2]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Minor returns the 2x2 matrix left after deleting row i and column j.
func (m Matrix3) Minor(i, j int) Matrix2 {
	var out Matrix2
	u := 0
	for r := 0; r < 3; r++ {
		if r == i {
			continue
		}
		v := 0
		for c := 0; c < 3; c++ {
			if c == j {
				continue
			}
			out[u][v] = m[r][c]
			v++
		}
		u++
	}
	return out
}

// Cofactor returns (-1)^(i+j) times the determinant of Minor(i, j).
func (m Matrix3) Cofactor(i, j int) float64 {
	d := m.Minor(i, j).Det()
	if (i+j)%2 == 1 {
		return -d
	}
	return d
}

// Adjugate returns the matrix whose (i, j) element is Cofactor(i, j). Inverse
// transposes it before dividing by the determinant. Since the trace is invariant under
// transposition, trace(Adjugate) is the sum of the principal 2x2 minors.
func (m Matrix3) Adjugate() Matrix3 {
	var out Matrix3
	for i := range out {
		for j := range out[i] {
			out[i][j] = m.Cofactor(i, j)
		}
	}
	return out
}

// Inverse returns m^-1, or the zero matrix when the determinant is exactly zero.
// Callers must treat a zero result as "singular, no solution".
func (m Matrix3) Inverse() Matrix3 {
	d := m.Det()
	if d == 0 {
		return Matrix3{}
	}
	return m.Adjugate().Transpose().Scale(1 / d)
}
