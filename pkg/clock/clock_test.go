// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package clock

import "testing"

func TestReached(t *testing.T) {
	tests := []struct {
		name     string
		now      Micros
		deadline Micros
		want     bool
	}{
		{"exactly at deadline", 1000, 1000, true},
		{"past deadline", 1001, 1000, true},
		{"before deadline", 999, 1000, false},
		{"deadline just after wrap", 0xFFFFFFF0, 0x00000010, false},
		{"now just after wrap, deadline before", 0x00000010, 0xFFFFFFF0, true},
		{"half range ahead is not reached", 0, 0x7FFFFFFF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reached(tt.now, tt.deadline); got != tt.want {
				t.Errorf("Reached(%#x, %#x) = %v, want %v", tt.now, tt.deadline, got, tt.want)
			}
		})
	}
}

func TestUntil(t *testing.T) {
	if got := Until(100, 250); got != 150 {
		t.Errorf("Until = %d, want 150", got)
	}
	if got := Until(250, 100); got != -150 {
		t.Errorf("Until past deadline = %d, want -150", got)
	}
	// Deadline scheduled across the counter wrap.
	if got := Until(0xFFFFFF00, 0x00000100); got != 512 {
		t.Errorf("Until across wrap = %d, want 512", got)
	}
}

func TestAfterWraps(t *testing.T) {
	d := After(0xFFFFFFFF, 2)
	if d != 1 {
		t.Errorf("After(max, 2) = %d, want 1", d)
	}
	if !Reached(2, d) {
		t.Errorf("deadline after wrap should be reached at 2")
	}
}
