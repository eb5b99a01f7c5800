// Superloop control kernel
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package controller ties the firmware components into one cooperative
// superloop. There is exactly one logical thread of control: every
// iteration ticks each component once in a fixed order, then dispatches
// at most one completed command line. No component tick may block; the
// feed macro and the boot sequence are the two designed exceptions.
package controller

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/IM-Lab-france/ReefControl/pkg/axis"
	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/fan"
	"github.com/IM-Lab-france/ReefControl/pkg/feeder"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
	"github.com/IM-Lab-france/ReefControl/pkg/heater"
	"github.com/IM-Lab-france/ReefControl/pkg/level"
	"github.com/IM-Lab-france/ReefControl/pkg/log"
	"github.com/IM-Lab-france/ReefControl/pkg/metrics"
	"github.com/IM-Lab-france/ReefControl/pkg/protocol"
	"github.com/IM-Lab-france/ReefControl/pkg/sensors"
)

// loopIdle is the pause between loop iterations when nothing is due.
// Short enough that a 50 us half-period pulse train never starves.
const loopIdle = 50 * time.Microsecond

// inputBufferBytes bounds the raw byte queue between the transport
// goroutine and the loop.
const inputBufferBytes = 1024

// Controller is the aggregate owning every component. It is built once
// at start-up; all mutation goes through ticks and dispatch on the loop
// goroutine.
type Controller struct {
	cfg    *config.Config
	board  hal.Board
	logger *log.Logger

	sensors   *sensors.Poller
	interlock *level.Interlock
	axes      *axis.Scheduler
	water     *heater.Channel
	reserve   *heater.Channel
	fan       *fan.Controller
	feeder    *feeder.Actuator

	lineBuf *protocol.LineBuffer
	input   chan byte
	out     io.Writer

	registry   *metrics.Registry
	iterations *metrics.Counter
	commands   *metrics.Counter
	cmdErrors  *metrics.Counter
}

// New wires the components over the given board. Replies are written to
// out, one CRLF-terminated line per command.
func New(cfg *config.Config, board hal.Board, out io.Writer) *Controller {
	logger := log.New("controller")
	poller := sensors.NewPoller(board, &cfg.Sensors)
	interlock := level.NewInterlock(board)
	registry := metrics.NewRegistry()

	return &Controller{
		cfg:       cfg,
		board:     board,
		logger:    logger,
		sensors:   poller,
		interlock: interlock,
		axes:      axis.NewScheduler(board, interlock, &cfg.Motion),
		water:     heater.NewChannel(board, poller, hal.HeaterWater, hal.ProbeWater, &cfg.Heat.Water),
		reserve:   heater.NewChannel(board, poller, hal.HeaterReserve, hal.ProbeAuxMin, &cfg.Heat.Reserve),
		fan:       fan.NewController(board, poller, &cfg.Fan),
		feeder:    feeder.NewActuator(board, &cfg.Feeder),
		lineBuf:   protocol.NewLineBuffer(cfg.Link.LineBufferSize),
		input:     make(chan byte, inputBufferBytes),
		out:       out,

		registry:   registry,
		iterations: registry.Counter("loop_iterations_total"),
		commands:   registry.Counter("commands_total"),
		cmdErrors:  registry.Counter("command_errors_total"),
	}
}

// Metrics returns the runtime counter registry.
func (c *Controller) Metrics() *metrics.Registry {
	return c.registry
}

// Boot runs the one-time blocking start-up sequence: drivers off, servo
// parked, heaters open, and one primed conversion round so the first
// loop iteration already has temperature readings.
func (c *Controller) Boot() {
	c.logger.Info("boot fw=%s board=%s", c.cfg.Identity.FirmwareVersion, c.cfg.Identity.BoardID)
	c.board.SetMotorEnable(false)
	for ch := 0; ch < hal.NumHeaters; ch++ {
		c.board.SetHeater(ch, false)
	}
	c.board.SetFan(0)
	c.feeder.SetAngle(c.cfg.Feeder.BootAngle)
	c.sensors.PrimeBlocking()
	c.logger.Info("boot complete")
}

// Feed queues raw bytes from the command link. Bytes beyond the queue
// bound are dropped; the transport never blocks the loop.
func (c *Controller) Feed(data []byte) {
	for _, b := range data {
		select {
		case c.input <- b:
		default:
			return
		}
	}
}

// TickOnce runs one loop iteration: sensor tick, all axis ticks, both
// heater ticks, fan tick, then at most one command dispatch.
func (c *Controller) TickOnce() {
	now := c.board.Micros()
	c.iterations.Inc()
	c.sensors.Tick(now)
	c.axes.Tick(now)
	c.water.Tick(now)
	c.reserve.Tick(now)
	c.fan.Tick()

	if line, ok := c.drainLine(); ok {
		c.commands.Inc()
		reply := c.Dispatch(line)
		if strings.HasPrefix(reply, "ERR|") {
			c.cmdErrors.Inc()
		}
		c.reply(reply)
	}
}

// drainLine pulls queued input bytes into the line buffer, stopping as
// soon as one full line is available so a burst of input cannot starve
// the real-time services.
func (c *Controller) drainLine() (string, bool) {
	for {
		select {
		case b := <-c.input:
			if line, ok := c.lineBuf.Feed(b); ok {
				return line, true
			}
		default:
			return "", false
		}
	}
}

func (c *Controller) reply(line string) {
	if c.out == nil {
		return
	}
	if _, err := io.WriteString(c.out, line+"\r\n"); err != nil {
		c.logger.Error("reply write failed: %v", err)
	}
}

// Run loops until the context is canceled. Boot must have been called.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("control loop stopped")
			return
		default:
		}
		c.TickOnce()
		time.Sleep(loopIdle)
	}
}
