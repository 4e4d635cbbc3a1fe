// Package sensor defines an abstract sensing device that can provide measurement readings.
package sensor

import (
	"context"
)

// A Sensor represents a general purpose sensor that can give arbitrary readings
// of some thing that it is sensing.
type Sensor interface {
	// Readings return data specific to the type of sensor, keyed by name.
	Readings(ctx context.Context) (map[string]interface{}, error)

	// Desc returns a description of this sensor.
	Desc() Description

	// Close stops the sensor and releases the underlying device.
	Close(ctx context.Context) error
}

// Type specifies the type of sensor.
type Type string

// Description describes information about the device.
type Description struct {
	Type Type

	// Path is some universal descriptor of how to find the device.
	Path string
}
