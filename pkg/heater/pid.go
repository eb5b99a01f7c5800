// PID heater control
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package heater runs the two water-heater control loops. The control
// law is a standard PID, but the actuator is a relay: any positive
// output closes it fully, zero opens it. The continuous law driving a
// binary actuator is the board's long-standing observable behavior and
// is kept as-is.
package heater

import (
	"math"

	"github.com/IM-Lab-france/ReefControl/pkg/clock"
	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
	"github.com/IM-Lab-france/ReefControl/pkg/sensors"
)

const (
	// outputMax bounds the control output like an 8-bit PWM would.
	outputMax = 255.0

	// firstTickDt is the elapsed time assumed on the first tick after
	// a reset, when no previous tick time exists.
	firstTickDt = 0.1

	// maxTargetC caps any requested setpoint.
	maxTargetC = 40.0
)

// Channel is one heater control loop.
type Channel struct {
	board  hal.Board
	poller *sensors.Poller

	relay int // hal heater index
	probe int // hal probe index feeding this loop

	targetC  float64
	kp       float64
	ki       float64
	kd       float64
	minValid float64
	maxValid float64

	integral  float64
	prevError float64
	lastTick  clock.Micros
	fresh     bool // no tick since the last reset
	fault     bool

	lastOutput float64
}

// NewChannel creates one loop bound to a relay and a probe.
func NewChannel(board hal.Board, poller *sensors.Poller, relay, probe int, cfg *config.PIDConfig) *Channel {
	c := &Channel{
		board:    board,
		poller:   poller,
		relay:    relay,
		probe:    probe,
		kp:       cfg.Kp,
		ki:       cfg.Ki,
		kd:       cfg.Kd,
		minValid: cfg.MinValid,
		maxValid: cfg.MaxValid,
		fresh:    true,
	}
	c.SetTarget(cfg.TargetC)
	return c
}

// SetTarget sets the setpoint, clamped to [0, maxTargetC], and resets
// the loop state. A target of zero (or below) idles the channel.
func (c *Channel) SetTarget(tempC float64) {
	if tempC < 0 {
		tempC = 0
	} else if tempC > maxTargetC {
		tempC = maxTargetC
	}
	c.targetC = tempC
	c.Reset()
}

// SetGains replaces the PID gains and resets the loop state.
func (c *Channel) SetGains(kp, ki, kd float64) {
	c.kp, c.ki, c.kd = kp, ki, kd
	c.Reset()
}

// Reset zeroes the integrator and previous error. The next tick starts
// from the default elapsed time.
func (c *Channel) Reset() {
	c.integral = 0
	c.prevError = 0
	c.fresh = true
}

// Target returns the current setpoint.
func (c *Channel) Target() float64 {
	return c.targetC
}

// Gains returns the current PID gains.
func (c *Channel) Gains() (kp, ki, kd float64) {
	return c.kp, c.ki, c.kd
}

// Fault reports whether the last tick saw an unusable sensor reading.
// The flag is only ever cleared by a subsequent valid reading.
func (c *Channel) Fault() bool {
	return c.fault
}

// Output returns the last computed control output (0..255).
func (c *Channel) Output() float64 {
	return c.lastOutput
}

// Tick runs one control step and drives the relay. With a target at or
// below zero the channel idles: its state stays zeroed and the relay
// opens. An invalid reading trips the fault flag and opens the relay
// without touching the integrator.
func (c *Channel) Tick(now clock.Micros) {
	if c.targetC <= 0 {
		c.integral = 0
		c.prevError = 0
		c.apply(0)
		return
	}

	measured := c.poller.Temp(c.probe)
	if !c.poller.Valid(c.probe) || measured < c.minValid-1 || measured > c.maxValid+5 {
		c.fault = true
		c.apply(0)
		return
	}
	c.fault = false

	dt := firstTickDt
	if !c.fresh {
		dt = float64(now-c.lastTick) / 1e6
		if dt <= 0 {
			dt = firstTickDt
		}
	}
	c.fresh = false
	c.lastTick = now

	err := c.targetC - measured
	c.integral += err * dt
	deriv := (err - c.prevError) / dt
	out := c.kp*err + c.ki*c.integral + c.kd*deriv
	out = math.Max(0, math.Min(outputMax, out))
	c.prevError = err

	c.apply(out)
}

// apply records the output and drives the relay: strictly positive
// output closes it, anything else opens it.
func (c *Channel) apply(out float64) {
	c.lastOutput = out
	c.board.SetHeater(c.relay, out > 0)
}
