// Command line framing
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package protocol implements the line-oriented command link: framing,
// tokenizing, the board's loose numeric conversions, and reply
// formatting. It holds no component state; dispatch lives with the
// controller.
package protocol

import "strings"

// LineBuffer accumulates input bytes until a CR or LF terminator.
// Bytes past the bound are dropped; the line still terminates and
// dispatches on what fit. Truncation over rejection keeps hosts that
// never overflow byte-compatible with the original board.
type LineBuffer struct {
	buf []byte
	max int
}

// NewLineBuffer creates a buffer bounded at max bytes.
func NewLineBuffer(max int) *LineBuffer {
	return &LineBuffer{buf: make([]byte, 0, max), max: max}
}

// Feed consumes one input byte. When the byte completes a non-empty
// line, the normalized line is returned with ok true. Bare CR/LF
// (including the LF of a CRLF pair) produce no line.
func (l *LineBuffer) Feed(b byte) (line string, ok bool) {
	if b == '\r' || b == '\n' {
		if len(l.buf) == 0 {
			return "", false
		}
		line = Normalize(string(l.buf))
		l.buf = l.buf[:0]
		if line == "" {
			return "", false
		}
		return line, true
	}
	if len(l.buf) < l.max {
		l.buf = append(l.buf, b)
	}
	return "", false
}

// Pending returns the number of buffered bytes of the unterminated
// line.
func (l *LineBuffer) Pending() int {
	return len(l.buf)
}

// Normalize trims surrounding whitespace and upper-cases the line, the
// only form dispatch ever sees.
func Normalize(line string) string {
	return strings.ToUpper(strings.TrimSpace(line))
}
