// Package serial opens the serial ports MARG boards stream their samples over.
package serial

import (
	"io"

	goserial "github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

// Options to be passed to Open(), closely mirrors goserial.OpenOptions.
type Options struct {
	BaudRate          int
	DataBits          int
	StopBits          StopBits
	RTSCTSFlowControl bool
	Parity            Parity
}

// DefaultOptions returns 8N1 at 115200 baud, the setting of the boards we read from.
func DefaultOptions() Options {
	return Options{BaudRate: 115200, DataBits: 8, StopBits: OneStopBit}
}

// Parity describes a serial port parity setting.
type Parity int

const (
	// NoParity disable parity control (default).
	NoParity Parity = iota
	// OddParity enable odd-parity check.
	OddParity
	// EvenParity enable even-parity check.
	EvenParity
)

// StopBits describe a serial port stop bits setting.
type StopBits int

const (
	// OneStopBit sets 1 stop bit (default).
	OneStopBit StopBits = iota
	// TwoStopBits sets 2 stop bits.
	TwoStopBits
)

func (options Options) goserial(devicePath string) (goserial.OpenOptions, error) {
	if options.BaudRate <= 0 {
		return goserial.OpenOptions{}, errors.Errorf("invalid baud rate %d", options.BaudRate)
	}
	dataBits := options.DataBits
	if dataBits == 0 {
		dataBits = 8
	}
	stopBits := uint(1)
	if options.StopBits == TwoStopBits {
		stopBits = 2
	}
	parity := goserial.PARITY_NONE
	switch options.Parity {
	case OddParity:
		parity = goserial.PARITY_ODD
	case EvenParity:
		parity = goserial.PARITY_EVEN
	case NoParity:
	default:
		return goserial.OpenOptions{}, errors.Errorf("invalid parity %d", options.Parity)
	}
	return goserial.OpenOptions{
		PortName:          devicePath,
		BaudRate:          uint(options.BaudRate),
		DataBits:          uint(dataBits),
		StopBits:          stopBits,
		ParityMode:        parity,
		RTSCTSFlowControl: options.RTSCTSFlowControl,
		MinimumReadSize:   1,
	}, nil
}

// Open attempts to open a serial device on the given path. It's a variable
// in case you need to override it during tests.
var Open = func(devicePath string, options Options) (io.ReadWriteCloser, error) {
	openOptions, err := options.goserial(devicePath)
	if err != nil {
		return nil, err
	}
	device, err := goserial.Open(openOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open serial port %q", devicePath)
	}
	return device, nil
}
