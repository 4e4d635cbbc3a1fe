package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/attdet/config"
	"go.viam.com/attdet/estimator"
	"go.viam.com/attdet/logging"
	"go.viam.com/attdet/sensor/marg"
	"go.viam.com/attdet/serial"
)

func (r *runner) loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String(configFlag); path != "" {
		var err error
		if cfg, err = config.Read(path); err != nil {
			return nil, err
		}
	}
	if solver := c.String(solverFlag); solver != "" {
		cfg.Solver = config.Solver(solver)
	}
	if !c.IsSet(logLevelFlag) && cfg.LogLevel != "" {
		level, err := logging.LevelFromString(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		r.logger.SetLevel(level)
	}
	return cfg, nil
}

func (r *runner) streamAction(c *cli.Context) (err error) {
	cfg, err := r.loadConfig(c)
	if err != nil {
		return err
	}
	r.logger.Debugw("config loaded", "path", cfg.ConfigFilePath, "solver", cfg.Solver)
	est, err := estimator.New(cfg, r.logger.Sublogger("estimator"))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out := c.App.Writer
	limit := c.Int(limitFlag)
	var solved int
	// runs on the device's read loop only
	handler := func(reading marg.Reading, att estimator.Attitude) {
		solved++
		if limit > 0 && solved > limit {
			return
		}
		fmt.Fprintf(out, "%d\t%s\t%s\theading=%.3f\n",
			solved, formatValues(att.Quaternion[:]...), formatValues(att.Euler[:]...), att.Heading())
		if solved == limit {
			cancel()
		}
	}

	deviceLogger := r.logger.Sublogger("marg")
	var device *marg.Device
	switch input := c.String(inputFlag); input {
	case "":
		if cfg.Serial.Path == "" {
			return errors.New("no serial port configured, use --input to read samples from a file")
		}
		options := serial.DefaultOptions()
		options.BaudRate = cfg.Serial.BaudRate
		r.logger.Infow("opening serial port", "path", cfg.Serial.Path, "baud_rate", options.BaudRate)
		if device, err = marg.Open(cfg.Serial.Path, options, est, deviceLogger, handler); err != nil {
			return err
		}
	case "-":
		stdin, ok := c.App.Reader.(io.ReadCloser)
		if !ok {
			stdin = io.NopCloser(c.App.Reader)
		}
		device = marg.NewDevice(stdin, est, deviceLogger, handler)
	default:
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		device = marg.NewDevice(f, est, deviceLogger, handler)
	}
	defer func() {
		err = multierr.Combine(err, device.Close(context.Background()), r.logger.Sync())
	}()

	select {
	case <-device.Done():
	case <-ctx.Done():
	}
	r.logger.Infow("stream finished", "samples", device.Samples(), "bad_readings", device.BadReadings())
	return nil
}
