// Reply formatting
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package protocol

import (
	"fmt"
	"strings"

	"github.com/IM-Lab-france/ReefControl/pkg/errors"
)

// ReplyOK is the single-line success reply.
const ReplyOK = "OK"

// FormatError renders a command failure as an ERR reply line.
func FormatError(err error) string {
	code := errors.CodeOf(err)
	msg := ""
	if ce, ok := err.(*errors.CommandError); ok {
		msg = ce.Message
	} else {
		msg = err.Error()
	}
	return fmt.Sprintf("ERR|%s|%s", code, msg)
}

// KVBuilder assembles a semicolon-delimited KEY=VALUE reply line, like
// the STATUS response.
type KVBuilder struct {
	sb strings.Builder
}

// NewKVBuilder starts a reply with the given head token.
func NewKVBuilder(head string) *KVBuilder {
	b := &KVBuilder{}
	b.sb.WriteString(head)
	return b
}

// Add appends one KEY=VALUE pair.
func (b *KVBuilder) Add(key, value string) *KVBuilder {
	b.sb.WriteString(";")
	b.sb.WriteString(key)
	b.sb.WriteString("=")
	b.sb.WriteString(value)
	return b
}

// Addf appends one pair with a formatted value.
func (b *KVBuilder) Addf(key, format string, args ...interface{}) *KVBuilder {
	return b.Add(key, fmt.Sprintf(format, args...))
}

// String returns the assembled line.
func (b *KVBuilder) String() string {
	return b.sb.String()
}

// PipeBuilder assembles a pipe-delimited reply line, like the TEMP and
// LEVEL responses.
type PipeBuilder struct {
	parts []string
}

// NewPipeBuilder starts a reply, optionally with a head token.
func NewPipeBuilder(head string) *PipeBuilder {
	b := &PipeBuilder{}
	if head != "" {
		b.parts = append(b.parts, head)
	}
	return b
}

// Add appends one field.
func (b *PipeBuilder) Add(field string) *PipeBuilder {
	b.parts = append(b.parts, field)
	return b
}

// Addf appends one formatted field.
func (b *PipeBuilder) Addf(format string, args ...interface{}) *PipeBuilder {
	return b.Add(fmt.Sprintf(format, args...))
}

// String returns the assembled line.
func (b *PipeBuilder) String() string {
	return strings.Join(b.parts, "|")
}

// Bool01 renders a boolean the way the wire protocol does.
func Bool01(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
