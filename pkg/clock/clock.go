// Wraparound-safe microsecond deadline arithmetic
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package clock provides deadline comparisons over a free-running 32-bit
// microsecond counter. The counter wraps roughly every 71 minutes, so
// deadlines must never be compared with plain < or >; Reached and Until
// stay correct across the wrap as long as deadlines are scheduled less
// than half the counter range ahead.
package clock

import "time"

// Micros is a point on the free-running microsecond counter.
type Micros = uint32

// Reached reports whether the deadline has passed at time now.
func Reached(now, deadline Micros) bool {
	return int32(now-deadline) >= 0
}

// Until returns the number of microseconds from now until deadline.
// Negative if the deadline has already passed.
func Until(now, deadline Micros) int32 {
	return int32(deadline - now)
}

// After returns the deadline d microseconds after now.
func After(now Micros, d uint32) Micros {
	return now + d
}

// Wall is a microsecond counter backed by the host monotonic clock.
// Hardware boards expose their own counter through the HAL; Wall serves
// board backends that have no hardware timer of their own.
type Wall struct {
	start time.Time
}

// NewWall creates a counter starting near zero.
func NewWall() *Wall {
	return &Wall{start: time.Now()}
}

// Micros returns the current counter value, truncated to 32 bits.
func (w *Wall) Micros() Micros {
	return Micros(time.Since(w.start).Microseconds())
}
