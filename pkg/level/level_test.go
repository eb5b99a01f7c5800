// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package level

import (
	"testing"

	"github.com/IM-Lab-france/ReefControl/pkg/hal"
)

func TestReadReflectsSwitches(t *testing.T) {
	sim := hal.NewSim()
	il := NewInterlock(sim)

	st := il.Read()
	if st.Low || st.High || st.Alert {
		t.Fatalf("state = %+v, want all released", st)
	}

	sim.SetLevels(true, false, true)
	st = il.Read()
	if !st.Low || st.High || !st.Alert {
		t.Fatalf("state = %+v, want low+alert", st)
	}
}

func TestDosingBlockedByLowSwitch(t *testing.T) {
	sim := hal.NewSim()
	il := NewInterlock(sim)

	if il.DosingBlocked() {
		t.Fatal("blocked with all switches released")
	}

	// High and alert levels do not gate dosing.
	sim.SetLevels(false, true, true)
	if il.DosingBlocked() {
		t.Fatal("blocked without the low switch")
	}

	sim.SetLevels(true, false, false)
	if !il.DosingBlocked() {
		t.Fatal("not blocked with the low switch active")
	}
}
