// Package marg reads a MARG (magnetic, angular rate and gravity) board over a serial line and
// estimates the board's attitude from each sample.
package marg

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/attdet/alglin"
)

// ErrMalformedLine is returned by ParseLine for lines that are not a sample.
var ErrMalformedLine = errors.New("malformed sample line")

// Reading is one sample of the board: accelerometer, gyroscope and magnetometer, each in the
// board's own units.
type Reading struct {
	Acc  alglin.Vec3
	Gyro alglin.Vec3
	Mag  alglin.Vec3
}

// LinearAcceleration returns the accelerometer sample.
func (r Reading) LinearAcceleration() r3.Vector {
	return r.Acc.R3()
}

// AngularVelocity returns the gyroscope sample.
func (r Reading) AngularVelocity() r3.Vector {
	return r.Gyro.R3()
}

// MagneticField returns the magnetometer sample.
func (r Reading) MagneticField() r3.Vector {
	return r.Mag.R3()
}

const numberPattern = `(-?\d+\.\d+)`

// nine decimal numbers, then whatever line terminator the firmware sends
var linePattern = regexp.MustCompile(`^` + numberPattern + strings.Repeat(`,`+numberPattern, 8) + `\D*$`)

// ParseLine parses a line of nine comma separated decimal numbers: acceleration, angular rate
// and magnetic field, three axes each. Every number needs a decimal point.
func ParseLine(line string) (Reading, error) {
	match := linePattern.FindStringSubmatch(line)
	if match == nil {
		return Reading{}, errors.Wrapf(ErrMalformedLine, "%q", line)
	}

	var values [9]float64
	for i, s := range match[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Reading{}, errors.Wrapf(ErrMalformedLine, "%q: %v", line, err)
		}
		values[i] = v
	}
	return Reading{
		Acc:  alglin.Vec3{values[0], values[1], values[2]},
		Gyro: alglin.Vec3{values[3], values[4], values[5]},
		Mag:  alglin.Vec3{values[6], values[7], values[8]},
	}, nil
}
