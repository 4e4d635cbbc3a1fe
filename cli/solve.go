package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/attdet/alglin"
	"go.viam.com/attdet/attdet"
	"go.viam.com/attdet/logging"
)

// runner holds what the Before hook sets up for the actions.
type runner struct {
	logger logging.Logger
}

func (r *runner) before(c *cli.Context) error {
	level, err := logging.LevelFromString(c.String(logLevelFlag))
	if err != nil {
		return err
	}
	r.logger = logging.NewWriterLogger("attdet", level, c.App.ErrWriter)
	return nil
}

// parseSensor parses "mx my mz rx ry rz w". Both vectors are normalized.
func parseSensor(s string) (attdet.Sensor, error) {
	fields := strings.Fields(s)
	if len(fields) != 7 {
		return attdet.Sensor{}, errors.Errorf("sensor %q: expected 7 numbers, got %d", s, len(fields))
	}
	var values [7]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return attdet.Sensor{}, errors.Wrapf(err, "sensor %q", s)
		}
		values[i] = v
	}
	measure := alglin.Vec3{values[0], values[1], values[2]}
	reference := alglin.Vec3{values[3], values[4], values[5]}
	if measure == (alglin.Vec3{}) || reference == (alglin.Vec3{}) {
		return attdet.Sensor{}, errors.Errorf("sensor %q: vectors must not be zero", s)
	}
	if values[6] <= 0 {
		return attdet.Sensor{}, errors.Errorf("sensor %q: weight must be positive", s)
	}
	return attdet.NewSensor(measure.Normalize(), reference.Normalize(), values[6]), nil
}

func parseSensors(c *cli.Context) ([]attdet.Sensor, error) {
	var sensors []attdet.Sensor
	for _, s := range c.StringSlice(sensorFlag) {
		sensor, err := parseSensor(s)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, sensor)
	}
	return sensors, nil
}

func (r *runner) solveAction(c *cli.Context) error {
	sensors, err := parseSensors(c)
	if err != nil {
		return err
	}
	if len(sensors) < 2 {
		return errors.Errorf("QUEST needs at least 2 sensors, got %d", len(sensors))
	}

	res := attdet.QuestCandidates(sensors...)
	for _, cand := range res.Candidates {
		r.logger.Debugw("candidate", "rotation", cand.Rotation, "score", cand.Score, "lambda", cand.Lambda)
	}

	out := c.App.Writer
	printVec(out, "quaternion", res.Quaternion[:]...)
	fmt.Fprintf(out, "rotation: %s\n", res.Selected)
	euler := attdet.Quat2Euler(res.Quaternion)
	printVec(out, "euler", euler[:]...)
	return nil
}

func (r *runner) triadAction(c *cli.Context) error {
	sensors, err := parseSensors(c)
	if err != nil {
		return err
	}
	if len(sensors) != 2 {
		return errors.Errorf("TRIAD needs exactly 2 sensors, got %d", len(sensors))
	}
	if sensors[0].Measure.Cross(sensors[1].Measure).Norm() < attdet.Precision {
		r.logger.Warn("measured vectors are nearly parallel, the result is not a rotation")
	}

	dcm := attdet.Triad(sensors[0], sensors[1])
	out := c.App.Writer
	fmt.Fprintln(out, "dcm:")
	for i := 0; i < 3; i++ {
		row := dcm.Row(i)
		fmt.Fprintf(out, "  %s\n", formatValues(row[:]...))
	}
	euler := attdet.Quat2Euler(attdet.DCMToQuat(dcm))
	printVec(out, "euler", euler[:]...)
	return nil
}

func formatValues(values ...float64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.FormatFloat(v, 'f', 6, 64))
	}
	return strings.Join(parts, " ")
}

func printVec(out io.Writer, label string, values ...float64) {
	fmt.Fprintf(out, "%s: %s\n", label, formatValues(values...))
}
