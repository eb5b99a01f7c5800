// Dosing pump pulse scheduler
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package axis generates step pulse trains for the four dosing pumps.
// Each channel is a non-blocking pulse generator: every tick compares
// deadlines against the free-running microsecond counter and drives at
// most one edge per channel. Rising edges are spaced two half-periods
// apart, with the falling edge a few microseconds after each rise.
package axis

import (
	"github.com/IM-Lab-france/ReefControl/pkg/clock"
	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/errors"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
	"github.com/IM-Lab-france/ReefControl/pkg/level"
)

// Names lists the axis identifiers in channel order.
var Names = [hal.NumAxes]string{"X", "Y", "Z", "E"}

// Index resolves an axis identifier to its channel index, or -1.
func Index(name string) int {
	for i, n := range Names {
		if n == name {
			return i
		}
	}
	return -1
}

// channel is one axis pulse generator. remaining only decreases while
// active; at most one motion is in flight per channel.
type channel struct {
	active      bool
	forward     bool
	remaining   uint32
	halfPeriod  uint32
	nextEdge    clock.Micros
	pulseHigh   bool // high edge driven, low edge pending
	lowDeadline clock.Micros
}

// Scheduler owns the four channels and the global motor state.
type Scheduler struct {
	board     hal.Board
	interlock *level.Interlock

	minHalfPeriod uint32
	stepPulse     uint32

	channels [hal.NumAxes]channel
	enabled  bool
	abort    bool
}

// NewScheduler creates the scheduler with all channels idle and the
// drivers off.
func NewScheduler(board hal.Board, interlock *level.Interlock, cfg *config.MotionConfig) *Scheduler {
	return &Scheduler{
		board:         board,
		interlock:     interlock,
		minHalfPeriod: cfg.MinHalfPeriodUs,
		stepPulse:     cfg.StepPulseUs,
	}
}

// Start begins a dosing motion. Direction follows the sign of steps;
// the half-period is floor-clamped to the platform minimum. Zero steps
// succeeds without activating the channel.
func (s *Scheduler) Start(axisName string, steps int, halfPeriodUs uint32) error {
	if s.interlock.DosingBlocked() {
		return errors.PumpLevelError()
	}
	idx := Index(axisName)
	if idx < 0 {
		return errors.PumpAxisError(axisName)
	}
	ch := &s.channels[idx]
	if ch.active {
		return errors.PumpBusyError(axisName)
	}
	if steps == 0 {
		return nil
	}

	if halfPeriodUs < s.minHalfPeriod {
		halfPeriodUs = s.minHalfPeriod
	}

	ch.forward = steps > 0
	if steps < 0 {
		steps = -steps
	}
	ch.remaining = uint32(steps)
	ch.halfPeriod = halfPeriodUs
	ch.nextEdge = s.board.Micros()
	ch.pulseHigh = false
	ch.active = true

	s.board.SetDirection(idx, ch.forward)
	s.Enable()
	return nil
}

// Enable powers the stepper drivers and clears any pending abort.
func (s *Scheduler) Enable() {
	s.enabled = true
	s.abort = false
	s.board.SetMotorEnable(true)
}

// Disable cuts driver power and flags every channel for abort; the
// next tick deactivates them regardless of remaining count.
func (s *Scheduler) Disable() {
	s.enabled = false
	s.abort = true
	s.board.SetMotorEnable(false)
}

// Enabled reports whether the drivers are powered.
func (s *Scheduler) Enabled() bool {
	return s.enabled
}

// Active reports whether an axis has a motion in flight.
func (s *Scheduler) Active(idx int) bool {
	return s.channels[idx].active
}

// Remaining returns the steps left on an axis.
func (s *Scheduler) Remaining(idx int) uint32 {
	return s.channels[idx].remaining
}

// Tick advances every channel by at most one edge. All deadline
// comparisons are wraparound-safe.
func (s *Scheduler) Tick(now clock.Micros) {
	for i := range s.channels {
		ch := &s.channels[i]

		if ch.pulseHigh && clock.Reached(now, ch.lowDeadline) {
			s.board.SetStep(i, false)
			ch.pulseHigh = false
		}

		if !ch.active {
			continue
		}

		if s.abort {
			ch.active = false
			ch.remaining = 0
			if ch.pulseHigh {
				s.board.SetStep(i, false)
				ch.pulseHigh = false
			}
			continue
		}

		if clock.Reached(now, ch.nextEdge) {
			s.board.SetStep(i, true)
			ch.pulseHigh = true
			ch.lowDeadline = clock.After(now, s.stepPulse)
			ch.remaining--
			if ch.remaining == 0 {
				ch.active = false
			} else {
				// Rising edges land two half-periods apart.
				ch.nextEdge = clock.After(ch.nextEdge, 2*ch.halfPeriod)
			}
		}
	}
	if s.abort {
		s.abort = false
	}
}
