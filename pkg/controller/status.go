// Telemetry reply formatting
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package controller

import (
	"github.com/IM-Lab-france/ReefControl/pkg/axis"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
	"github.com/IM-Lab-france/ReefControl/pkg/protocol"
)

// helloLine identifies the firmware build.
func (c *Controller) helloLine() string {
	return protocol.NewKVBuilder("HELLO OK").
		Add("FW", c.cfg.Identity.FirmwareVersion).
		Add("BOARD", c.cfg.Identity.BoardID).
		String()
}

// statusLine is the one-line machine-parseable state snapshot.
func (c *Controller) statusLine() string {
	lv := c.interlock.Read()
	b := protocol.NewKVBuilder("STATUS").
		Add("MTR", protocol.Bool01(c.axes.Enabled())).
		Addf("FAN_VAL", "%d", c.fan.Level()).
		Addf("AUTO_THRESH", "%.2f", c.fan.Threshold()).
		Addf("PIDW_TGT", "%.2f", c.water.Target()).
		Addf("PIDR_TGT", "%.2f", c.reserve.Target()).
		Add("PIDW_FLT", protocol.Bool01(c.water.Fault())).
		Add("PIDR_FLT", protocol.Bool01(c.reserve.Fault())).
		Add("LEVEL_LOW", protocol.Bool01(lv.Low)).
		Add("LEVEL_HIGH", protocol.Bool01(lv.High)).
		Add("LEVEL_ALERT", protocol.Bool01(lv.Alert)).
		Addf("TEMPW", "%.1f", c.sensors.Temp(hal.ProbeWater)).
		Addf("TEMPA", "%.1f", c.sensors.Temp(hal.ProbeAir)).
		Addf("TEMPAUX", "%.1f", c.sensors.Temp(hal.ProbeAuxMin)).
		Addf("SERVO", "%d", c.feeder.Angle())

	for i, name := range axis.Names {
		b.Addf("AX_"+name, "%d", c.axes.Remaining(i))
	}
	return b.String()
}

// tempLine reports every probe; invalid probes carry the -127.0
// sentinel.
func (c *Controller) tempLine() string {
	return protocol.NewPipeBuilder("").
		Addf("T_WATER:%.1fC", c.sensors.Temp(hal.ProbeWater)).
		Addf("T_AIR:%.1fC", c.sensors.Temp(hal.ProbeAir)).
		Addf("T_AUX:%.1fC", c.sensors.Temp(hal.ProbeAuxMin)).
		Addf("T_AUXMAX:%.1fC", c.sensors.Temp(hal.ProbeAuxMax)).
		String()
}

// phLine reports the pH front-end raw sample and its voltage.
func (c *Controller) phLine() string {
	raw, volts := c.board.ReadPH()
	return protocol.NewPipeBuilder("PH").
		Addf("RAW:%d", raw).
		Addf("V:%.3f", volts).
		String()
}

// levelLine reports the three level switches, read on demand.
func (c *Controller) levelLine() string {
	lv := c.interlock.Read()
	return protocol.NewPipeBuilder("LEVEL").
		Addf("LOW=%s", protocol.Bool01(lv.Low)).
		Addf("HIGH=%s", protocol.Bool01(lv.High)).
		Addf("ALERT=%s", protocol.Bool01(lv.Alert)).
		String()
}
