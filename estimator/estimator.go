// Package estimator turns raw accelerometer and magnetometer samples into an attitude, using the
// configured reference vectors and solver.
package estimator

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/attdet/alglin"
	"go.viam.com/attdet/attdet"
	"go.viam.com/attdet/config"
	"go.viam.com/attdet/logging"
	"go.viam.com/attdet/utils"
)

var (
	// ErrZeroVector is returned when a sample has no direction and cannot be used as an
	// observation.
	ErrZeroVector = errors.New("zero vector cannot be normalized")
	// ErrInsufficientData is returned when the solver could not produce an attitude.
	ErrInsufficientData = errors.New("insufficient data to determine attitude")
)

// Attitude is the orientation of the body relative to the reference frame, in every
// representation the solvers produce.
type Attitude struct {
	Solver     config.Solver
	Quaternion alglin.Quat
	// DCM rotates reference vectors into the body frame.
	DCM alglin.Matrix3
	// Euler holds [phi, theta, psi] in degrees.
	Euler alglin.Vec3
}

// Orientation returns the attitude as a gonum quaternion.
func (a Attitude) Orientation() quat.Number {
	return attdet.QuatToNumber(a.Quaternion)
}

// Heading returns psi wrapped into [0, 360) degrees.
func (a Attitude) Heading() float64 {
	return utils.ModAngDeg(a.Euler[2])
}

// parallelTolerance is the smallest sine of the angle between the two samples that still fixes
// the rotation about them.
const parallelTolerance = 1e-9

// An Estimator solves for the attitude of each accelerometer and magnetometer sample pair. It
// holds no mutable state and may be shared between goroutines.
type Estimator struct {
	solver   config.Solver
	gravity  alglin.Vec3
	magnetic alglin.Vec3
	wGravity float64
	wMag     float64
	logger   logging.Logger
}

// New returns an Estimator for the given configuration.
func New(cfg *config.Config, logger logging.Logger) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{
		solver:   cfg.Solver,
		gravity:  cfg.Gravity.Vector.Normalize(),
		magnetic: cfg.Magnetic.Vector.Normalize(),
		wGravity: cfg.Gravity.Weight,
		wMag:     cfg.Magnetic.Weight,
		logger:   logger,
	}, nil
}

// Sensors returns the observations of one sample pair, gravity first. The measured vectors are
// normalized so both solvers see unit vectors.
func (e *Estimator) Sensors(acc, mag alglin.Vec3) ([]attdet.Sensor, error) {
	if acc == (alglin.Vec3{}) {
		return nil, errors.Wrap(ErrZeroVector, "accelerometer")
	}
	if mag == (alglin.Vec3{}) {
		return nil, errors.Wrap(ErrZeroVector, "magnetometer")
	}
	acc, mag = acc.Normalize(), mag.Normalize()
	if acc.Cross(mag).Norm() < parallelTolerance {
		return nil, errors.Wrap(ErrInsufficientData, "accelerometer and magnetometer are parallel")
	}
	return []attdet.Sensor{
		attdet.NewSensor(acc, e.gravity, e.wGravity),
		attdet.NewSensor(mag, e.magnetic, e.wMag),
	}, nil
}

// Estimate returns the attitude for one accelerometer and magnetometer sample pair.
func (e *Estimator) Estimate(acc, mag alglin.Vec3) (Attitude, error) {
	sensors, err := e.Sensors(acc, mag)
	if err != nil {
		return Attitude{}, err
	}

	att := Attitude{Solver: e.solver}
	switch e.solver {
	case config.SolverTriad:
		// gravity is the better known direction, so it anchors the triad
		att.DCM = attdet.Triad(sensors[0], perpendicularTo(sensors[0], sensors[1]))
		att.Quaternion = attdet.DCMToQuat(att.DCM)
	case config.SolverQuest:
		res := attdet.QuestCandidates(sensors...)
		if attdet.IsZeroQuat(res.Quaternion) {
			return Attitude{}, ErrInsufficientData
		}
		e.logger.Debugw("quest solved", "rotation", res.Selected, "score", res.Candidates[res.Selected].Score)
		att.Quaternion = res.Quaternion
		att.DCM = attdet.QuatToDCM(res.Quaternion)
	default:
		return Attitude{}, errors.Errorf("unknown solver %q", e.solver)
	}
	att.Euler = attdet.Quat2Euler(att.Quaternion)

	if hasNaN(att.Quaternion) {
		e.logger.Warnw("degenerate sample", "acc", acc, "mag", mag)
		return Attitude{}, ErrInsufficientData
	}
	return att, nil
}

func hasNaN(q alglin.Quat) bool {
	for _, v := range q {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// perpendicularTo returns secondary with its measure and reference replaced by their unit
// components perpendicular to primary's. Triad only returns an orthonormal matrix for
// perpendicular unit observations; the plane the two observations span is unchanged.
func perpendicularTo(primary, secondary attdet.Sensor) attdet.Sensor {
	reject := func(a, b alglin.Vec3) alglin.Vec3 {
		return a.Cross(b).Cross(a).Normalize()
	}
	return attdet.NewSensor(
		reject(primary.Measure, secondary.Measure),
		reject(primary.Reference, secondary.Reference),
		secondary.Weight,
	)
}
