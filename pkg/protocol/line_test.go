// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package protocol

import "testing"

func feedString(lb *LineBuffer, s string) (lines []string) {
	for i := 0; i < len(s); i++ {
		if line, ok := lb.Feed(s[i]); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestLineBufferCRLF(t *testing.T) {
	lb := NewLineBuffer(96)
	lines := feedString(lb, "hello?\r\nstatus?\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if lines[0] != "HELLO?" || lines[1] != "STATUS?" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestLineBufferNormalizes(t *testing.T) {
	lb := NewLineBuffer(96)
	lines := feedString(lb, "  pump x 100 500  \n")
	if len(lines) != 1 || lines[0] != "PUMP X 100 500" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestLineBufferSkipsBlankLines(t *testing.T) {
	lb := NewLineBuffer(96)
	lines := feedString(lb, "\r\n\n\r   \nMTR ON\n")
	if len(lines) != 1 || lines[0] != "MTR ON" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestLineBufferTruncatesOverflow(t *testing.T) {
	lb := NewLineBuffer(8)
	lines := feedString(lb, "ABCDEFGHIJKLMNOP\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	// Bytes past the bound are dropped; the line still terminates.
	if lines[0] != "ABCDEFGH" {
		t.Fatalf("line = %q, want truncation to 8 bytes", lines[0])
	}
	if lb.Pending() != 0 {
		t.Fatalf("pending = %d after terminator, want 0", lb.Pending())
	}
}
