// Temperature probe polling state machine
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package sensors cycles the four temperature probes without ever
// blocking the control loop. One conversion round covers all probes:
// request, wait out the conversion latency, read, pause, repeat.
package sensors

import (
	"time"

	"github.com/IM-Lab-france/ReefControl/pkg/clock"
	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
)

// Probes accepted range. Readings outside are cached as the invalid
// sentinel; the DS18B20 cannot produce them except through a bus fault.
const (
	minAcceptC = -55.0
	maxAcceptC = 125.0
)

type pollState int

const (
	stateRequesting pollState = iota
	stateWaiting
)

// Poller owns the cached Celsius readings for every probe.
type Poller struct {
	board hal.Board

	conversionUs uint32
	pauseUs      uint32

	state    pollState
	deadline clock.Micros // conversion-ready or next-request deadline
	cache    [hal.NumProbes]float64
}

// NewPoller creates the poller. The cache starts invalid until the
// first round completes.
func NewPoller(board hal.Board, cfg *config.SensorConfig) *Poller {
	p := &Poller{
		board:        board,
		conversionUs: cfg.ConversionMs * 1000,
		pauseUs:      cfg.PauseMs * 1000,
		state:        stateRequesting,
	}
	for i := range p.cache {
		p.cache[i] = hal.InvalidTempC
	}
	return p
}

// Tick advances the state machine. Bounded time: at most one
// conversion request or one read round per call.
func (p *Poller) Tick(now clock.Micros) {
	switch p.state {
	case stateRequesting:
		if !clock.Reached(now, p.deadline) {
			return
		}
		p.board.StartConversion()
		p.deadline = clock.After(now, p.conversionUs)
		p.state = stateWaiting
	case stateWaiting:
		if !clock.Reached(now, p.deadline) {
			return
		}
		for i := 0; i < hal.NumProbes; i++ {
			v := p.board.ReadProbe(i)
			if v > minAcceptC && v < maxAcceptC {
				p.cache[i] = v
			} else {
				p.cache[i] = hal.InvalidTempC
			}
		}
		p.deadline = clock.After(now, p.pauseUs)
		p.state = stateRequesting
	}
}

// Temp returns the cached reading for one probe, or InvalidTempC.
func (p *Poller) Temp(probe int) float64 {
	return p.cache[probe]
}

// Valid reports whether the cached reading for a probe is usable.
func (p *Poller) Valid(probe int) bool {
	return p.cache[probe] != hal.InvalidTempC
}

// PrimeBlocking runs one full conversion round with a blocking wait.
// Only the boot sequence calls it, so the first loop iteration already
// has readings.
func (p *Poller) PrimeBlocking() {
	p.board.StartConversion()
	p.board.Sleep(time.Duration(p.conversionUs) * time.Microsecond)
	now := p.board.Micros()
	p.deadline = now // force the read branch
	p.state = stateWaiting
	p.Tick(now)
}
