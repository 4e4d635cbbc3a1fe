// Package config defines the attdet estimator configuration and how it is read from disk.
package config

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/attdet/alglin"
	"go.viam.com/attdet/logging"
)

// Solver names the attitude determination algorithm the estimator runs.
type Solver string

// The supported solvers.
const (
	SolverQuest Solver = "quest"
	SolverTriad Solver = "triad"
)

// A Config describes the reference vectors observed by a MARG board, how much each is
// trusted, and where the board's samples come from.
type Config struct {
	Gravity  Reference `json:"gravity"`
	Magnetic Reference `json:"magnetic"`
	Solver   Solver    `json:"solver"`
	Serial   Serial    `json:"serial"`
	LogLevel string    `json:"log_level"`

	ConfigFilePath string `json:"-"`
}

// Reference is the value a sensor would measure in the reference frame, with its weight.
// The vector does not need to be normalized.
type Reference struct {
	Vector alglin.Vec3 `json:"vector"`
	Weight float64     `json:"weight"`
}

// Serial describes the serial port samples are read from.
type Serial struct {
	Path     string `json:"path"`
	BaudRate int    `json:"baud_rate"`
}

// Default returns the configuration used when no file is given: the gravity and magnetic field
// of the bench the reference boards were calibrated on.
func Default() *Config {
	return &Config{
		Gravity:  Reference{Vector: alglin.Vec3{0.16, -0.4, -9.4}, Weight: 0.6},
		Magnetic: Reference{Vector: alglin.Vec3{-4, -18, -20}, Weight: 0.4},
		Solver:   SolverQuest,
		Serial:   Serial{Path: "/dev/ttyUSB0", BaudRate: 115200},
		LogLevel: "info",
	}
}

// Validate ensures all parts of the config are valid. Every problem found is returned.
func (c *Config) Validate() error {
	var errs error
	if err := c.Gravity.Validate("gravity"); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := c.Magnetic.Validate("magnetic"); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := c.Gravity.colinear(c.Magnetic); err != nil {
		errs = multierr.Append(errs, err)
	}
	switch c.Solver {
	case SolverQuest, SolverTriad:
	case "":
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError("config", "solver"))
	default:
		errs = multierr.Append(errs, utils.NewConfigValidationError("solver",
			errors.Errorf("unknown solver %q, expected %q or %q", c.Solver, SolverQuest, SolverTriad)))
	}
	if err := c.Serial.Validate("serial"); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.LogLevel != "" {
		if _, err := logging.LevelFromString(c.LogLevel); err != nil {
			errs = multierr.Append(errs, utils.NewConfigValidationError("log_level", err))
		}
	}
	return errs
}

// Validate ensures the reference is usable.
func (r *Reference) Validate(path string) error {
	if r.Vector == (alglin.Vec3{}) {
		return utils.NewConfigValidationFieldRequiredError(path, "vector")
	}
	if r.Weight <= 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("weight must be positive, got %v", r.Weight))
	}
	return nil
}

// colinear rejects references with no angle between them; the rotation about their shared
// axis would be unobservable.
func (r *Reference) colinear(other Reference) error {
	if r.Vector == (alglin.Vec3{}) || other.Vector == (alglin.Vec3{}) {
		return nil
	}
	if r.Vector.Normalize().Cross(other.Vector.Normalize()).Norm() < 1e-6 {
		return errors.New("gravity and magnetic references must not be parallel")
	}
	return nil
}

// Validate ensures the serial settings are usable. An empty path means samples are not read
// from a serial port.
func (s *Serial) Validate(path string) error {
	if s.Path != "" && s.BaudRate <= 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("baud_rate must be positive, got %d", s.BaudRate))
	}
	return nil
}
