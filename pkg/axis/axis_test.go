// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package axis

import (
	"testing"

	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/errors"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
	"github.com/IM-Lab-france/ReefControl/pkg/level"
)

func newTestScheduler() (*Scheduler, *hal.Sim) {
	sim := hal.NewSim()
	cfg := config.Default()
	s := NewScheduler(sim, level.NewInterlock(sim), &cfg.Motion)
	return s, sim
}

// run ticks the scheduler over a span of simulated time, one tick per
// microsecond like a fast superloop.
func run(s *Scheduler, sim *hal.Sim, us uint32) {
	for i := uint32(0); i < us; i++ {
		s.Tick(sim.Micros())
		sim.Advance(1)
	}
}

func TestIndex(t *testing.T) {
	for i, name := range Names {
		if Index(name) != i {
			t.Errorf("Index(%q) = %d, want %d", name, Index(name), i)
		}
	}
	if Index("Q") != -1 {
		t.Errorf("Index(Q) = %d, want -1", Index("Q"))
	}
}

func TestStartZeroStepsIsNoop(t *testing.T) {
	s, sim := newTestScheduler()
	if err := s.Start("X", 0, 500); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Active(0) {
		t.Fatal("channel active after zero-step start")
	}
	run(s, sim, 5000)
	if sim.Pulses[0] != 0 {
		t.Fatalf("pulses = %d, want 0", sim.Pulses[0])
	}
}

func TestExactPulseCount(t *testing.T) {
	s, sim := newTestScheduler()
	if err := s.Start("Y", 10, 500); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !sim.MotorsOn() {
		t.Fatal("motors off after start")
	}
	// 10 rising edges at 1000 us spacing fit well inside 20 ms.
	run(s, sim, 20000)
	if sim.Pulses[1] != 10 {
		t.Fatalf("pulses = %d, want 10", sim.Pulses[1])
	}
	if s.Active(1) {
		t.Fatal("channel still active after last step")
	}
	if s.Remaining(1) != 0 {
		t.Fatalf("remaining = %d, want 0", s.Remaining(1))
	}
}

func TestPulseSpacing(t *testing.T) {
	s, sim := newTestScheduler()
	if err := s.Start("X", 3, 500); err != nil {
		t.Fatalf("Start: %v", err)
	}
	var edges []uint32
	for us := uint32(0); us < 5000; us++ {
		before := sim.Pulses[0]
		s.Tick(sim.Micros())
		if sim.Pulses[0] > before {
			edges = append(edges, us)
		}
		sim.Advance(1)
	}
	want := []uint32{0, 1000, 2000}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Fatalf("edges = %v, want %v", edges, want)
		}
	}
}

func TestDirectionFollowsSign(t *testing.T) {
	s, sim := newTestScheduler()
	if err := s.Start("Z", -4, 500); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sim.Direction(2) {
		t.Fatal("direction forward for negative steps")
	}
	run(s, sim, 10000)
	if sim.Pulses[2] != 4 {
		t.Fatalf("pulses = %d, want 4", sim.Pulses[2])
	}
}

func TestHalfPeriodClamped(t *testing.T) {
	s, sim := newTestScheduler()
	// Requested spacing below the floor: edges land at 2*50 us instead.
	if err := s.Start("X", 2, 10); err != nil {
		t.Fatalf("Start: %v", err)
	}
	run(s, sim, 99)
	if sim.Pulses[0] != 1 {
		t.Fatalf("pulses before 100 us = %d, want 1", sim.Pulses[0])
	}
	run(s, sim, 2)
	if sim.Pulses[0] != 2 {
		t.Fatalf("pulses after 100 us = %d, want 2", sim.Pulses[0])
	}
}

func TestInterlockBlocksStart(t *testing.T) {
	s, sim := newTestScheduler()
	sim.SetLevels(true, false, false)
	err := s.Start("X", 10, 500)
	if !errors.Is(err, errors.ErrPumpLevel) {
		t.Fatalf("err = %v, want PUMP_LEVEL", err)
	}
	run(s, sim, 5000)
	if sim.Pulses[0] != 0 {
		t.Fatalf("pulses = %d, want 0", sim.Pulses[0])
	}
}

func TestUnknownAxis(t *testing.T) {
	s, _ := newTestScheduler()
	err := s.Start("W", 10, 500)
	if !errors.Is(err, errors.ErrPumpAxis) {
		t.Fatalf("err = %v, want PUMP_AXIS", err)
	}
}

func TestBusyAxisRefused(t *testing.T) {
	s, sim := newTestScheduler()
	if err := s.Start("E", 100, 500); err != nil {
		t.Fatalf("Start: %v", err)
	}
	err := s.Start("E", 5, 500)
	if !errors.Is(err, errors.ErrPumpBusy) {
		t.Fatalf("err = %v, want PUMP_BUSY", err)
	}
	// A different axis is still free.
	if err := s.Start("X", 5, 500); err != nil {
		t.Fatalf("Start on free axis: %v", err)
	}
	_ = sim
}

func TestDisableAbortsWithinOneTick(t *testing.T) {
	s, sim := newTestScheduler()
	if err := s.Start("X", 1000, 500); err != nil {
		t.Fatalf("Start: %v", err)
	}
	run(s, sim, 3000)
	if sim.Pulses[0] == 0 {
		t.Fatal("no pulses before abort")
	}
	got := sim.Pulses[0]

	s.Disable()
	if sim.MotorsOn() {
		t.Fatal("motors still on after Disable")
	}
	s.Tick(sim.Micros())
	if s.Active(0) {
		t.Fatal("axis still active after abort tick")
	}
	if s.Remaining(0) != 0 {
		t.Fatalf("remaining = %d, want 0", s.Remaining(0))
	}
	run(s, sim, 5000)
	if sim.Pulses[0] != got {
		t.Fatalf("pulses after abort = %d, want %d", sim.Pulses[0], got)
	}
}

func TestEnableClearsAbort(t *testing.T) {
	s, sim := newTestScheduler()
	s.Disable()
	if err := s.Start("X", 2, 500); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Enabled() {
		t.Fatal("drivers off after start")
	}
	run(s, sim, 5000)
	if sim.Pulses[0] != 2 {
		t.Fatalf("pulses = %d, want 2", sim.Pulses[0])
	}
}
