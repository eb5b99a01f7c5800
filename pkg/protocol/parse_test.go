// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package protocol

import "testing"

func TestAtoiLoose(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"123", 123},
		{"-45", -45},
		{"+7", 7},
		{"12ab", 12},
		{"ab", 0},
		{"", 0},
		{"-", 0},
		{"3.7", 3},
	}
	for _, tt := range tests {
		if got := AtoiLoose(tt.in); got != tt.want {
			t.Errorf("AtoiLoose(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAtofLoose(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"25.5", 25.5},
		{"-3.25", -3.25},
		{"28", 28},
		{"28.5C", 28.5},
		{"abc", 0},
		{"", 0},
		{"1.2.3", 1.2},
	}
	for _, tt := range tests {
		if got := AtofLoose(tt.in); got != tt.want {
			t.Errorf("AtofLoose(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePIDGains(t *testing.T) {
	kp, ki, kd, ok := ParsePIDGains("P1I2D3")
	if !ok || kp != 1 || ki != 2 || kd != 3 {
		t.Fatalf("ParsePIDGains(P1I2D3) = %v %v %v ok=%v", kp, ki, kd, ok)
	}

	kp, ki, kd, ok = ParsePIDGains("P12.0I0.4D60.0")
	if !ok || kp != 12.0 || ki != 0.4 || kd != 60.0 {
		t.Fatalf("ParsePIDGains(P12.0I0.4D60.0) = %v %v %v ok=%v", kp, ki, kd, ok)
	}

	for _, bad := range []string{"", "P1I2", "1I2D3", "PxIyDz", "P1 I2 D3", "P1I2D3X"} {
		if _, _, _, ok := ParsePIDGains(bad); ok {
			t.Errorf("ParsePIDGains(%q) accepted, want reject", bad)
		}
	}
}

func TestFields(t *testing.T) {
	got := Fields("PUMP  X   100 500")
	want := []string{"PUMP", "X", "100", "500"}
	if len(got) != len(want) {
		t.Fatalf("Fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Fields = %v, want %v", got, want)
		}
	}
}
