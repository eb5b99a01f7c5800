// Liquid level safety interlock
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package level

import "github.com/IM-Lab-france/ReefControl/pkg/hal"

// State is one snapshot of the three level switches. It is computed on
// demand and never cached, so consumers can never act on stale inputs.
type State struct {
	Low   bool
	High  bool
	Alert bool
}

// Interlock reads the level switches through the board.
type Interlock struct {
	board hal.Board
}

// NewInterlock creates the interlock over the given board.
func NewInterlock(board hal.Board) *Interlock {
	return &Interlock{board: board}
}

// Read returns the current switch states.
func (i *Interlock) Read() State {
	low, high, alert := i.board.Levels()
	return State{Low: low, High: high, Alert: alert}
}

// DosingBlocked reports whether dosing starts must be refused. The low
// switch gates every axis: an empty reservoir must never be pumped.
func (i *Interlock) DosingBlocked() bool {
	low, _, _ := i.board.Levels()
	return low
}
