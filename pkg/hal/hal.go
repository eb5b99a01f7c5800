// Hardware abstraction for the ReefControl board
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package hal isolates the control kernel from the physical board. The
// kernel only ever talks to the Board interface; the gpio backend drives
// real lines and the sim backend backs tests and the reef-sim binary.
package hal

import (
	"time"

	"github.com/IM-Lab-france/ReefControl/pkg/clock"
)

// Probe indices into the temperature cache.
const (
	ProbeWater = iota
	ProbeAir
	ProbeAuxMin
	ProbeAuxMax
	NumProbes
)

// Heater channel indices.
const (
	HeaterWater = iota
	HeaterReserve
	NumHeaters
)

// NumAxes is the number of dosing pump channels.
const NumAxes = 4

// InvalidTempC is the sentinel cached for a probe that failed to read.
// Matches the DS18B20 disconnected value so hosts see the familiar
// figure.
const InvalidTempC = -127.0

// ServoMinAngle and ServoMaxAngle bound the feed servo's mechanical
// range in degrees.
const (
	ServoMinAngle = 0
	ServoMaxAngle = 180
)

// Board is the set of hardware operations the control kernel needs.
// All calls must return quickly except Sleep, which is only used by the
// blocking feed macro and the boot sequence.
type Board interface {
	// Micros returns the free-running microsecond counter.
	Micros() clock.Micros

	// SetStep drives one axis step line.
	SetStep(axis int, high bool)

	// SetDirection drives one axis direction line. forward follows the
	// sign of the requested step count.
	SetDirection(axis int, forward bool)

	// SetMotorEnable powers the stepper drivers on or off.
	SetMotorEnable(on bool)

	// SetHeater drives one heater relay.
	SetHeater(ch int, on bool)

	// SetFan drives the cooling fan at 0-255.
	SetFan(level uint8)

	// SetServo positions the feed servo. The angle must already be
	// clamped to the servo range.
	SetServo(angle int)

	// Levels reads the three level switches. true means asserted; the
	// physical inputs are active-low and the backend hides the polarity.
	Levels() (low, high, alert bool)

	// StartConversion asks every temperature probe to begin a
	// conversion. Results become available after the conversion
	// latency and are fetched with ReadProbe.
	StartConversion()

	// ReadProbe returns the latest Celsius reading for one probe, or
	// InvalidTempC when the probe failed.
	ReadProbe(probe int) float64

	// ReadPH returns the pH front-end ADC value and its voltage.
	ReadPH() (raw int, volts float64)

	// Sleep blocks for the given duration. Only the feed macro and the
	// boot sequence may call it.
	Sleep(d time.Duration)
}
