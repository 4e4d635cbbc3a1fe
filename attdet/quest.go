package attdet

import (
	"math"

	"go.viam.com/attdet/alglin"
)

// Rotation identifies the frame pre-rotation applied to B before a QUEST candidate is
// solved. Each rotation moves the singularity of the Rodrigues solve to a different
// attitude.
type Rotation int

// The four candidate rotations, in evaluation order.
const (
	RotationX Rotation = iota
	RotationY
	RotationZ
	RotationNone
)

func (r Rotation) String() string {
	switch r {
	case RotationX:
		return "x"
	case RotationY:
		return "y"
	case RotationZ:
		return "z"
	case RotationNone:
		return "none"
	default:
		return "unknown"
	}
}

// rotationVariant pairs the columns of B negated by a 180 degree pre-rotation with
// the permutation that takes the resulting quaternion back to the unrotated frame.
type rotationVariant struct {
	rotation Rotation
	flip     []int
	unrotate func(q alglin.Quat) alglin.Quat
}

var rotationVariants = [...]rotationVariant{
	{
		rotation: RotationX,
		flip:     []int{1, 2},
		unrotate: func(q alglin.Quat) alglin.Quat { return alglin.Quat{q[3], -q[2], q[1], -q[0]} },
	},
	{
		rotation: RotationY,
		flip:     []int{0, 2},
		unrotate: func(q alglin.Quat) alglin.Quat { return alglin.Quat{q[2], q[3], -q[0], -q[1]} },
	},
	{
		rotation: RotationZ,
		flip:     []int{0, 1},
		unrotate: func(q alglin.Quat) alglin.Quat { return alglin.Quat{-q[1], q[0], q[3], -q[2]} },
	},
	{
		rotation: RotationNone,
		unrotate: func(q alglin.Quat) alglin.Quat { return q },
	},
}

func (v rotationVariant) apply(b alglin.Matrix3) alglin.Matrix3 {
	for _, col := range v.flip {
		for row := range b {
			b[row][col] = -b[row][col]
		}
	}
	return b
}

// Candidate is the solution of one pre-rotated QUEST problem, already expressed in the
// unrotated frame. Score is det(Y); the larger it is, the further the candidate is from
// the singular configuration.
type Candidate struct {
	Rotation   Rotation
	Quaternion alglin.Quat
	Score      float64
	Lambda     float64
}

// QuestResult is the full output of QuestCandidates.
type QuestResult struct {
	// Quaternion is the normalized quaternion of the selected candidate, or the zero
	// quaternion when fewer than two sensors were given.
	Quaternion alglin.Quat
	Selected   Rotation
	Candidates [len(rotationVariants)]Candidate
}

// Quest returns the quaternion [x, y, z, w] that best rotates the sensors' reference
// vectors onto their measured vectors, in the weighted least squares sense. It needs at
// least two sensors and returns the zero quaternion otherwise.
func Quest(sensors ...Sensor) alglin.Quat {
	return QuestCandidates(sensors...).Quaternion
}

// QuestCandidates runs Quest and reports every candidate alongside the selected one.
func QuestCandidates(sensors ...Sensor) QuestResult {
	var res QuestResult
	if len(sensors) < 2 {
		return res
	}

	b, lambda0 := BuildProfile(sensors...)
	best := -1
	for i, v := range rotationVariants {
		res.Candidates[i] = solveCandidate(v, b, lambda0)
		if math.IsNaN(res.Candidates[i].Score) {
			continue
		}
		if best < 0 || res.Candidates[i].Score > res.Candidates[best].Score {
			best = i
		}
	}
	if best < 0 {
		best = len(rotationVariants) - 1
	}
	res.Selected = res.Candidates[best].Rotation
	res.Quaternion = res.Candidates[best].Quaternion.Normalize()
	return res
}

func solveCandidate(v rotationVariant, b alglin.Matrix3, lambda0 float64) Candidate {
	b = v.apply(b)
	s := b.Add(b.Transpose())
	sigma := b.Trace()
	z := alglin.Vec3{b[1][2] - b[2][1], b[2][0] - b[0][2], b[0][1] - b[1][0]}

	kappa := s.Adjugate().Trace()
	delta := s.Det()
	sz := s.MulVec(z)
	ca := sigma*sigma - kappa
	cb := sigma*sigma + z.Dot(z)
	cc := delta + z.Dot(sz)
	cd := z.Dot(s.MulVec(sz))

	// a single Newton step from the sum of the weights
	f := ((lambda0*lambda0-(ca+cb))*lambda0-cc)*lambda0 + (ca*cb + cc*sigma - cd)
	df := (4*lambda0*lambda0-2*(ca+cb))*lambda0 - cc
	lambda := lambda0 - f/df

	y := alglin.Identity3().Scale(lambda + sigma).Sub(s)
	p := y.Inverse().MulVec(z)
	w := 1 / math.Sqrt(p.Dot(p)+1)
	q := alglin.Quat{w * p[0], w * p[1], w * p[2], w}

	return Candidate{
		Rotation:   v.rotation,
		Quaternion: v.unrotate(q),
		Score:      y.Det(),
		Lambda:     lambda,
	}
}
