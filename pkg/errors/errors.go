// Unified error handling for the ReefControl firmware core
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import "fmt"

// Code identifies the error category reported on the command link.
// Codes are part of the wire protocol: a failed command replies with
// a single line of the form ERR|<code>|<message>.
type Code string

const (
	// Command dispatch errors
	ErrUnknownCmd Code = "UNKNOWN_CMD"

	// Dosing (PUMP) errors
	ErrPumpLevel Code = "PUMP_LEVEL"
	ErrPumpAxis  Code = "PUMP_AXIS"
	ErrPumpArgs  Code = "PUMP_ARGS"
	ErrPumpBusy  Code = "PUMP_BUSY"

	// Malformed PID tuning strings
	ErrPIDWater   Code = "PIDW"
	ErrPIDReserve Code = "PIDR"
)

// CommandError is the error type for every protocol-level failure.
// It never represents a sensor or control fault: those degrade
// component state and are only visible through status queries.
type CommandError struct {
	// Code is the error category.
	Code Code

	// Message is the human-readable detail appended to the reply.
	Message string

	// Err wraps an underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// New creates a new CommandError.
func New(code Code, message string) *CommandError {
	return &CommandError{Code: code, Message: message}
}

// Newf creates a new CommandError with a formatted message.
func Newf(code Code, format string, args ...interface{}) *CommandError {
	return &CommandError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a protocol code.
func Wrap(err error, code Code, message string) *CommandError {
	return &CommandError{Code: code, Message: message, Err: err}
}

// UnknownCommand creates the reply error for an unrecognized input line.
// The original text is echoed back so the host can log what it sent.
func UnknownCommand(line string) *CommandError {
	return New(ErrUnknownCmd, line)
}

// PumpLevelError reports a dosing start blocked by the low-level interlock.
func PumpLevelError() *CommandError {
	return New(ErrPumpLevel, "low level interlock active")
}

// PumpAxisError reports an unrecognized axis identifier.
func PumpAxisError(axis string) *CommandError {
	return Newf(ErrPumpAxis, "unknown axis '%s'", axis)
}

// PumpArgsError reports missing or unusable dosing arguments.
func PumpArgsError(detail string) *CommandError {
	return New(ErrPumpArgs, detail)
}

// PumpBusyError reports an axis with a motion already in flight.
func PumpBusyError(axis string) *CommandError {
	return Newf(ErrPumpBusy, "axis %s busy", axis)
}

// PIDParseError reports a malformed P..I..D.. tuning string. The code
// names the channel the command addressed (PIDW or PIDR).
func PIDParseError(code Code, text string) *CommandError {
	return Newf(code, "bad gains '%s'", text)
}

// Is checks whether err is a CommandError with the given code.
func Is(err error, code Code) bool {
	if ce, ok := err.(*CommandError); ok {
		return ce.Code == code
	}
	return false
}

// CodeOf returns the protocol code of err, or ErrUnknownCmd when err is
// not a CommandError. Dispatch uses it to format the reply line.
func CodeOf(err error) Code {
	if ce, ok := err.(*CommandError); ok {
		return ce.Code
	}
	return ErrUnknownCmd
}
