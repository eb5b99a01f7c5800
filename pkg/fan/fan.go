// Cooling fan with manual and autocool drive
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package fan

import (
	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
	"github.com/IM-Lab-france/ReefControl/pkg/sensors"
)

// ManualOff is the manual-level sentinel meaning automatic control.
const ManualOff = -1

// Controller drives the fan either at a fixed manual level or
// proportionally to the air temperature above the autocool threshold.
type Controller struct {
	board   hal.Board
	sensors *sensors.Poller

	manualLevel int // ManualOff = automatic
	thresholdC  float64
	rampBandC   float64

	lastLevel uint8
}

// NewController creates the fan controller in automatic mode.
func NewController(board hal.Board, poller *sensors.Poller, cfg *config.FanConfig) *Controller {
	return &Controller{
		board:       board,
		sensors:     poller,
		manualLevel: ManualOff,
		thresholdC:  cfg.AutocoolThresholdC,
		rampBandC:   cfg.RampBandC,
	}
}

// SetManual fixes the fan at the given level. A negative level returns
// the controller to automatic mode.
func (c *Controller) SetManual(level int) {
	if level < 0 {
		c.manualLevel = ManualOff
		return
	}
	if level > 255 {
		level = 255
	}
	c.manualLevel = level
}

// SetThreshold sets the autocool threshold, clamped to a sane band,
// and forces automatic mode.
func (c *Controller) SetThreshold(tempC float64) {
	if tempC < 5.0 {
		tempC = 5.0
	} else if tempC > 60.0 {
		tempC = 60.0
	}
	c.thresholdC = tempC
	c.manualLevel = ManualOff
}

// Threshold returns the current autocool threshold.
func (c *Controller) Threshold() float64 {
	return c.thresholdC
}

// Manual reports whether the fan is manually driven, and at what level.
func (c *Controller) Manual() (bool, int) {
	return c.manualLevel != ManualOff, c.manualLevel
}

// Level returns the last value driven to the fan.
func (c *Controller) Level() uint8 {
	return c.lastLevel
}

// Tick computes and applies the fan drive. In automatic mode the drive
// ramps linearly from 0 at the threshold to full scale one ramp band
// above it; an invalid air reading forces the fan off.
func (c *Controller) Tick() {
	var out uint8

	if c.manualLevel != ManualOff {
		out = uint8(c.manualLevel)
	} else if c.sensors.Valid(hal.ProbeAir) {
		t := c.sensors.Temp(hal.ProbeAir)
		if t > c.thresholdC {
			v := (t - c.thresholdC) / c.rampBandC * 255.0
			if v > 255.0 {
				v = 255.0
			}
			out = uint8(v)
		}
	}

	c.lastLevel = out
	c.board.SetFan(out)
}
