// Command tokenizing and loose numeric conversion
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package protocol

import (
	"regexp"
	"strconv"
	"strings"
)

// Fields splits a normalized command line on runs of spaces.
func Fields(line string) []string {
	return strings.Fields(line)
}

// AtoiLoose converts text to an integer with the board's conversion
// semantics: an optional sign followed by leading digits, anything else
// contributing zero. "12ab" is 12, "ab" is 0.
func AtoiLoose(s string) int {
	i, neg := 0, false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// AtofLoose converts text to a float the same way: optional sign,
// leading digits, at most one decimal point. Unparsable text is zero.
func AtofLoose(s string) float64 {
	end, dot := 0, false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for ; end < len(s); end++ {
		if s[end] >= '0' && s[end] <= '9' {
			continue
		}
		if s[end] == '.' && !dot {
			dot = true
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

var pidGainsRe = regexp.MustCompile(`^P(-?[0-9]+(?:\.[0-9]+)?)I(-?[0-9]+(?:\.[0-9]+)?)D(-?[0-9]+(?:\.[0-9]+)?)$`)

// ParsePIDGains parses a tuning string of the form P<f>I<f>D<f>.
// ok is false for any deviation from that shape.
func ParsePIDGains(s string) (kp, ki, kd float64, ok bool) {
	m := pidGainsRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	kp, _ = strconv.ParseFloat(m[1], 64)
	ki, _ = strconv.ParseFloat(m[2], 64)
	kd, _ = strconv.ParseFloat(m[3], 64)
	return kp, ki, kd, true
}
