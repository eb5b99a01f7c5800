// Simulated board for tests and the reef-sim binary
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package hal

import (
	"sync"
	"time"

	"github.com/IM-Lab-france/ReefControl/pkg/clock"
)

// Sim is an in-memory Board. By default it carries a manual clock that
// tests advance explicitly; NewRealtimeSim attaches the host monotonic
// clock instead for interactive use.
type Sim struct {
	mu sync.Mutex

	wall   *clock.Wall // nil when the clock is manual
	now    clock.Micros
	asleep time.Duration // accumulated Sleep time (manual clock)

	stepHigh   [NumAxes]bool
	Pulses     [NumAxes]int // rising edges seen per axis
	dirForward [NumAxes]bool
	motorsOn   bool
	heaterOn   [NumHeaters]bool
	fanLevel   uint8
	servoAngle int

	// Inputs, settable by tests. Level switches default released.
	LevelLow   bool
	LevelHigh  bool
	LevelAlert bool
	probeTemp  [NumProbes]float64
	phRaw      int

	conversions int // StartConversion calls
}

// NewSim creates a simulated board with a manual clock at zero and all
// probes reading 25 C.
func NewSim() *Sim {
	s := &Sim{phRaw: 512}
	for i := range s.probeTemp {
		s.probeTemp[i] = 25.0
	}
	return s
}

// NewRealtimeSim creates a simulated board whose clock follows the host
// monotonic clock.
func NewRealtimeSim() *Sim {
	s := NewSim()
	s.wall = clock.NewWall()
	return s
}

// Advance moves the manual clock forward. No-op on a realtime sim.
func (s *Sim) Advance(us uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now += us
}

// Micros implements Board.
func (s *Sim) Micros() clock.Micros {
	if s.wall != nil {
		return s.wall.Micros()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// SetStep implements Board. Rising edges are counted so tests can check
// exact pulse totals.
func (s *Sim) SetStep(axis int, high bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if high && !s.stepHigh[axis] {
		s.Pulses[axis]++
	}
	s.stepHigh[axis] = high
}

// SetDirection implements Board.
func (s *Sim) SetDirection(axis int, forward bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirForward[axis] = forward
}

// Direction reports the last direction driven on an axis.
func (s *Sim) Direction(axis int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirForward[axis]
}

// SetMotorEnable implements Board.
func (s *Sim) SetMotorEnable(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motorsOn = on
}

// MotorsOn reports the driver power state.
func (s *Sim) MotorsOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.motorsOn
}

// SetHeater implements Board.
func (s *Sim) SetHeater(ch int, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heaterOn[ch] = on
}

// HeaterOn reports one heater relay state.
func (s *Sim) HeaterOn(ch int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heaterOn[ch]
}

// SetFan implements Board.
func (s *Sim) SetFan(level uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fanLevel = level
}

// FanLevel reports the last fan drive value.
func (s *Sim) FanLevel() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fanLevel
}

// SetServo implements Board.
func (s *Sim) SetServo(angle int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.servoAngle = angle
}

// ServoAngle reports the last servo position.
func (s *Sim) ServoAngle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.servoAngle
}

// Levels implements Board.
func (s *Sim) Levels() (low, high, alert bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LevelLow, s.LevelHigh, s.LevelAlert
}

// SetLevels sets the simulated level switches.
func (s *Sim) SetLevels(low, high, alert bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LevelLow, s.LevelHigh, s.LevelAlert = low, high, alert
}

// StartConversion implements Board.
func (s *Sim) StartConversion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversions++
}

// Conversions reports how many conversion rounds were requested.
func (s *Sim) Conversions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversions
}

// ReadProbe implements Board.
func (s *Sim) ReadProbe(probe int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.probeTemp[probe]
}

// SetProbe sets one simulated probe temperature. Use InvalidTempC to
// simulate a disconnected probe.
func (s *Sim) SetProbe(probe int, tempC float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probeTemp[probe] = tempC
}

// ReadPH implements Board. Voltage is the 10-bit raw value at 5 V full
// scale, like the board's ADC.
func (s *Sim) ReadPH() (int, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phRaw, float64(s.phRaw) * 5.0 / 1023.0
}

// SetPHRaw sets the simulated pH ADC value.
func (s *Sim) SetPHRaw(raw int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phRaw = raw
}

// Sleep implements Board. With a manual clock the sleep advances the
// counter instead of blocking, so feed-macro tests run instantly.
func (s *Sim) Sleep(d time.Duration) {
	if s.wall != nil {
		time.Sleep(d)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now += clock.Micros(d.Microseconds())
	s.asleep += d
}

// SleptFor reports the total time spent in Sleep on a manual clock.
func (s *Sim) SleptFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asleep
}
