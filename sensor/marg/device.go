package marg

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/attdet/estimator"
	"go.viam.com/attdet/logging"
	"go.viam.com/attdet/sensor"
	"go.viam.com/attdet/serial"
	"go.viam.com/attdet/utils"
)

// Type is the sensor type of a MARG board.
const Type = sensor.Type("marg")

// ErrNoAttitude is returned before the first sample has been solved.
var ErrNoAttitude = errors.New("no attitude estimated yet")

// Handler is called from the device's read loop for every sample that was solved.
type Handler func(Reading, estimator.Attitude)

// Device is a MARG board streaming samples over a serial line. A background loop parses every
// line, estimates the attitude and keeps the latest result.
type Device struct {
	rwc     io.ReadCloser
	path    string
	est     *estimator.Estimator
	logger  logging.Logger
	handler Handler
	workers *utils.StoppableWorkers

	attitude    atomic.Pointer[estimator.Attitude]
	reading     atomic.Pointer[Reading]
	samples     atomic.Int64
	badReadings atomic.Int64

	closing   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

var _ sensor.Sensor = (*Device)(nil)

// Open opens the serial port at path and starts reading samples from it.
func Open(
	path string,
	options serial.Options,
	est *estimator.Estimator,
	logger logging.Logger,
	handler Handler,
) (*Device, error) {
	rwc, err := serial.Open(path, options)
	if err != nil {
		return nil, err
	}
	d := NewDevice(rwc, est, logger, handler)
	d.path = path
	return d, nil
}

// NewDevice starts reading samples from rwc. The device owns rwc and closes it on Close. The
// handler may be nil.
func NewDevice(rwc io.ReadCloser, est *estimator.Estimator, logger logging.Logger, handler Handler) *Device {
	d := &Device{
		rwc:     rwc,
		est:     est,
		logger:  logger,
		handler: handler,
		done:    make(chan struct{}),
	}
	d.workers = utils.NewStoppableWorkers(context.Background(), d.readLoop)
	return d
}

func (d *Device) readLoop(ctx context.Context) {
	defer close(d.done)

	buf := bufio.NewReader(d.rwc)
	for {
		line, err := buf.ReadString('\n')
		if line != "" {
			d.handleLine(line)
		}
		if err != nil {
			if ctx.Err() == nil && !d.closing.Load() && !errors.Is(err, io.EOF) {
				d.logger.Errorw("error reading samples", "error", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (d *Device) handleLine(line string) {
	reading, err := ParseLine(line)
	if err != nil {
		d.badReadings.Inc()
		d.logger.Debugw("skipping line", "error", err)
		return
	}
	d.reading.Store(&reading)

	att, err := d.est.Estimate(reading.Acc, reading.Mag)
	if err != nil {
		d.badReadings.Inc()
		d.logger.Debugw("cannot estimate attitude", "error", err)
		return
	}
	d.attitude.Store(&att)
	d.samples.Inc()
	if d.handler != nil {
		d.handler(reading, att)
	}
}

// Attitude returns the attitude of the latest solved sample.
func (d *Device) Attitude(ctx context.Context) (estimator.Attitude, error) {
	att := d.attitude.Load()
	if att == nil {
		return estimator.Attitude{}, ErrNoAttitude
	}
	return *att, nil
}

// Reading returns the latest well formed sample.
func (d *Device) Reading(ctx context.Context) (Reading, error) {
	reading := d.reading.Load()
	if reading == nil {
		return Reading{}, ErrNoAttitude
	}
	return *reading, nil
}

// Readings returns the latest attitude and sample along with the sample counters.
func (d *Device) Readings(ctx context.Context) (map[string]interface{}, error) {
	att, err := d.Attitude(ctx)
	if err != nil {
		return nil, err
	}
	readings := map[string]interface{}{
		"orientation":  att.Orientation(),
		"quaternion":   att.Quaternion,
		"euler":        att.Euler,
		"heading":      att.Heading(),
		"samples":      d.samples.Load(),
		"bad_readings": d.badReadings.Load(),
	}
	if reading, err := d.Reading(ctx); err == nil {
		readings["linear_acceleration"] = reading.LinearAcceleration()
		readings["angular_velocity"] = reading.AngularVelocity()
		readings["magnetic_field"] = reading.MagneticField()
	}
	return readings, nil
}

// Desc returns a description of the device.
func (d *Device) Desc() sensor.Description {
	return sensor.Description{Type: Type, Path: d.path}
}

// Samples returns how many samples have been solved.
func (d *Device) Samples() int64 {
	return d.samples.Load()
}

// BadReadings returns how many lines could not be parsed or solved.
func (d *Device) BadReadings() int64 {
	return d.badReadings.Load()
}

// Done is closed once the read loop has stopped, either after Close or at the end of the input.
func (d *Device) Done() <-chan struct{} {
	return d.done
}

// Close stops the read loop and closes the underlying device. It is safe to call more than once.
func (d *Device) Close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		// closing first unblocks a pending read
		d.closing.Store(true)
		d.closeErr = d.rwc.Close()
		d.workers.Stop()
	})
	return d.closeErr
}
