// Command dispatch
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package controller

import (
	"github.com/IM-Lab-france/ReefControl/pkg/errors"
	"github.com/IM-Lab-france/ReefControl/pkg/protocol"
)

// Dispatch executes one normalized command line and returns the single
// reply line. It never panics and never blocks, with the one exception
// of SERVOFEED's deliberate stall. All state changes happen on the loop
// goroutine, so no locking is needed.
func (c *Controller) Dispatch(line string) string {
	fields := protocol.Fields(line)
	if len(fields) == 0 {
		return protocol.FormatError(errors.UnknownCommand(line))
	}

	switch fields[0] {
	case "HELLO?":
		return c.helloLine()
	case "STATUS?":
		return c.statusLine()
	case "TEMP?":
		return c.tempLine()
	case "PH?":
		return c.phLine()
	case "LEVEL?":
		return c.levelLine()

	case "MTR":
		return c.cmdMotor(arg(fields, 1))
	case "FAN":
		c.fan.SetManual(protocol.AtoiLoose(arg(fields, 1)))
		return protocol.ReplyOK
	case "AUTOCOOL":
		c.fan.SetThreshold(protocol.AtofLoose(arg(fields, 1)))
		return protocol.ReplyOK
	case "HEATW":
		c.water.SetTarget(protocol.AtofLoose(arg(fields, 1)))
		return protocol.ReplyOK
	case "HEATR":
		c.reserve.SetTarget(protocol.AtofLoose(arg(fields, 1)))
		return protocol.ReplyOK
	case "PIDW":
		return c.cmdGains(errors.ErrPIDWater, arg(fields, 1))
	case "PIDR":
		return c.cmdGains(errors.ErrPIDReserve, arg(fields, 1))
	case "SERVO":
		c.feeder.SetAngle(protocol.AtoiLoose(arg(fields, 1)))
		return protocol.ReplyOK
	case "SERVOFEED":
		c.logger.Info("feed macro start")
		c.feeder.Feed()
		c.logger.Info("feed macro done")
		return protocol.ReplyOK
	case "PUMP":
		return c.cmdPump(fields)
	}

	c.logger.Debug("unknown command: %s", line)
	return protocol.FormatError(errors.UnknownCommand(line))
}

// cmdMotor handles MTR ON / MTR OFF. OFF also aborts all axis motion.
func (c *Controller) cmdMotor(mode string) string {
	switch mode {
	case "ON":
		c.axes.Enable()
		return protocol.ReplyOK
	case "OFF":
		c.axes.Disable()
		return protocol.ReplyOK
	}
	return protocol.FormatError(errors.UnknownCommand("MTR " + mode))
}

// cmdGains handles PIDW/PIDR tuning strings.
func (c *Controller) cmdGains(code errors.Code, text string) string {
	kp, ki, kd, ok := protocol.ParsePIDGains(text)
	if !ok {
		return protocol.FormatError(errors.PIDParseError(code, text))
	}
	if code == errors.ErrPIDWater {
		c.water.SetGains(kp, ki, kd)
	} else {
		c.reserve.SetGains(kp, ki, kd)
	}
	return protocol.ReplyOK
}

// cmdPump handles PUMP <axis> <steps> <half_period_us>.
func (c *Controller) cmdPump(fields []string) string {
	if len(fields) < 4 {
		return protocol.FormatError(errors.PumpArgsError("expected PUMP <axis> <steps> <half_period_us>"))
	}
	steps := protocol.AtoiLoose(fields[2])
	half := protocol.AtoiLoose(fields[3])
	if half <= 0 {
		return protocol.FormatError(errors.PumpArgsError("half period must be positive"))
	}
	if err := c.axes.Start(fields[1], steps, uint32(half)); err != nil {
		c.logger.Warn("pump rejected: %v", err)
		return protocol.FormatError(err)
	}
	return protocol.ReplyOK
}

// arg returns the i-th token or "", leaving missing arguments to the
// board's loose zero-conversion semantics.
func arg(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
