package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/attdet/alglin"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Solver, test.ShouldEqual, SolverQuest)
	test.That(t, cfg.Gravity.Weight+cfg.Magnetic.Weight, test.ShouldAlmostEqual, 1)
}

func TestFromReader(t *testing.T) {
	cfg, err := FromReader("inline", strings.NewReader(`{
		// only the solver and the magnetic field differ from the defaults
		solver: "triad",
		magnetic: {vector: [0.2, 0, -0.4], weight: 0.5,},
		serial: {path: "/dev/ttyACM0", baud_rate: 9600},
	}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "inline")
	test.That(t, cfg.Solver, test.ShouldEqual, SolverTriad)
	test.That(t, cfg.Magnetic, test.ShouldResemble, Reference{Vector: alglin.Vec3{0.2, 0, -0.4}, Weight: 0.5})
	test.That(t, cfg.Gravity, test.ShouldResemble, Default().Gravity)
	test.That(t, cfg.Serial, test.ShouldResemble, Serial{Path: "/dev/ttyACM0", BaudRate: 9600})
	test.That(t, cfg.LogLevel, test.ShouldEqual, "info")

	_, err = FromReader("broken", strings.NewReader(`{solver: `))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "decode")
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attdet.json5")
	test.That(t, os.WriteFile(path, []byte(`{log_level: "debug"}`), 0o600), test.ShouldBeNil)

	cfg, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.LogLevel, test.ShouldEqual, "debug")
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)

	_, err = Read(filepath.Join(t.TempDir(), "missing.json5"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot open config")
}

func TestValidate(t *testing.T) {
	t.Run("all problems reported", func(t *testing.T) {
		cfg := Default()
		cfg.Gravity.Vector = alglin.Vec3{}
		cfg.Magnetic.Weight = -1
		cfg.Solver = "kalman"
		cfg.Serial.BaudRate = 0
		cfg.LogLevel = "loud"

		err := cfg.Validate()
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, multierr.Errors(err), test.ShouldHaveLength, 5)
		test.That(t, err.Error(), test.ShouldContainSubstring, "vector")
		test.That(t, err.Error(), test.ShouldContainSubstring, "weight must be positive")
		test.That(t, err.Error(), test.ShouldContainSubstring, "kalman")
		test.That(t, err.Error(), test.ShouldContainSubstring, "baud_rate")
		test.That(t, err.Error(), test.ShouldContainSubstring, "loud")
	})
	t.Run("missing solver", func(t *testing.T) {
		cfg := Default()
		cfg.Solver = ""
		err := cfg.Validate()
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "solver")
	})
	t.Run("parallel references", func(t *testing.T) {
		cfg := Default()
		cfg.Magnetic.Vector = cfg.Gravity.Vector.Scale(-3)
		err := cfg.Validate()
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "parallel")
	})
	t.Run("no serial port", func(t *testing.T) {
		cfg := Default()
		cfg.Serial = Serial{}
		test.That(t, cfg.Validate(), test.ShouldBeNil)
	})
}
