// Feeding servo actuator
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package feeder

import (
	"time"

	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
)

// Actuator positions the feed servo. Apart from the feed macro every
// operation returns immediately.
type Actuator struct {
	board hal.Board
	cfg   config.FeederConfig
	angle int
}

// NewActuator creates the actuator without moving the servo.
func NewActuator(board hal.Board, cfg *config.FeederConfig) *Actuator {
	return &Actuator{board: board, cfg: *cfg, angle: cfg.BootAngle}
}

// SetAngle clamps the angle to the servo's mechanical range and applies
// it.
func (a *Actuator) SetAngle(angle int) {
	if angle < hal.ServoMinAngle {
		angle = hal.ServoMinAngle
	} else if angle > hal.ServoMaxAngle {
		angle = hal.ServoMaxAngle
	}
	a.angle = angle
	a.board.SetServo(angle)
}

// Angle returns the last applied position.
func (a *Actuator) Angle() int {
	return a.angle
}

// Feed runs the feed macro: open/close cycles with blocking waits, then
// a return to the previous position. This is the one deliberate
// exception to the non-blocking contract: the whole control loop stalls
// for roughly two seconds while food drops.
func (a *Actuator) Feed() {
	prev := a.angle
	for i := 0; i < a.cfg.Cycles; i++ {
		a.board.SetServo(a.cfg.OpenAngle)
		a.board.Sleep(time.Duration(a.cfg.OpenDelayMs) * time.Millisecond)
		a.board.SetServo(a.cfg.CloseAngle)
		a.board.Sleep(time.Duration(a.cfg.CloseDelayMs) * time.Millisecond)
	}
	a.board.SetServo(prev)
}
