// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package feeder

import (
	"testing"
	"time"

	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
)

func newTestActuator() (*Actuator, *hal.Sim) {
	sim := hal.NewSim()
	cfg := config.Default()
	return NewActuator(sim, &cfg.Feeder), sim
}

func TestSetAngleClamped(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{90, 90},
		{180, 180},
		{270, 180},
	}
	a, sim := newTestActuator()
	for _, tc := range tests {
		a.SetAngle(tc.in)
		if a.Angle() != tc.want {
			t.Errorf("SetAngle(%d): Angle() = %d, want %d", tc.in, a.Angle(), tc.want)
		}
		if sim.ServoAngle() != tc.want {
			t.Errorf("SetAngle(%d): servo = %d, want %d", tc.in, sim.ServoAngle(), tc.want)
		}
	}
}

func TestFeedReturnsToPreviousAngle(t *testing.T) {
	a, sim := newTestActuator()
	a.SetAngle(30)
	a.Feed()
	if sim.ServoAngle() != 30 {
		t.Fatalf("servo = %d, want 30 after feed", sim.ServoAngle())
	}
	if a.Angle() != 30 {
		t.Fatalf("Angle() = %d, want 30", a.Angle())
	}
}

func TestFeedBlocksForMacroDuration(t *testing.T) {
	a, sim := newTestActuator()
	a.Feed()
	// Two cycles of 600 ms open plus 400 ms close.
	want := 2 * (600 + 400) * time.Millisecond
	if sim.SleptFor() != want {
		t.Fatalf("slept %v, want %v", sim.SleptFor(), want)
	}
}
