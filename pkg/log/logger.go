// Structured logging for the ReefControl firmware core
//
// Provides leveled, per-component loggers with structured fields and
// text or JSON output. On the real board everything goes to stderr so
// the command link on stdout/serial stays clean.
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown strings map to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Fields is a map of structured logging fields.
type Fields map[string]interface{}

// Logger writes leveled messages for one component.
type Logger struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
	level  Level
	json   bool
}

// New creates a logger with the given component prefix, writing to
// stderr at INFO level.
func New(prefix string) *Logger {
	l := &Logger{
		prefix: prefix,
		writer: os.Stderr,
		level:  INFO,
	}
	l.configureFromEnv()
	return l
}

// configureFromEnv applies REEF_LOG_LEVEL and REEF_LOG_FORMAT.
func (l *Logger) configureFromEnv() {
	if s := os.Getenv("REEF_LOG_LEVEL"); s != "" {
		l.level = ParseLevel(s)
	}
	if strings.EqualFold(os.Getenv("REEF_LOG_FORMAT"), "json") {
		l.json = true
	}
}

// SetLevel sets the minimum level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetWriter sets the output writer (used by tests).
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// WithPrefix returns a new logger sharing settings but with another
// component prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		prefix: prefix,
		writer: l.writer,
		level:  l.level,
		json:   l.json,
	}
}

type jsonEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Logger    string                 `json:"logger"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

func (l *Logger) write(level Level, msg string, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	if l.json {
		e := jsonEntry{
			Timestamp: time.Now().Format(time.RFC3339Nano),
			Level:     level.String(),
			Logger:    l.prefix,
			Message:   msg,
		}
		if len(fields) > 0 {
			e.Fields = fields
		}
		data, err := json.Marshal(e)
		if err != nil {
			fmt.Fprintf(l.writer, `{"error":%q}`+"\n", err.Error())
			return
		}
		fmt.Fprintf(l.writer, "%s\n", data)
		return
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(&sb, " [%-5s] %s: %s", level.String(), l.prefix, msg)
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s=%v", k, fields[k])
		}
		sb.WriteString("}")
	}
	sb.WriteString("\n")
	fmt.Fprint(l.writer, sb.String())
}

// Debug logs a formatted message at DEBUG level.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.write(DEBUG, sprintf(msg, args), nil)
}

// Info logs a formatted message at INFO level.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.write(INFO, sprintf(msg, args), nil)
}

// Warn logs a formatted message at WARN level.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write(WARN, sprintf(msg, args), nil)
}

// Error logs a formatted message at ERROR level.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.write(ERROR, sprintf(msg, args), nil)
}

// WithFields logs a message with structured fields at the given level.
func (l *Logger) WithFields(level Level, msg string, fields Fields) {
	l.write(level, msg, fields)
}

func sprintf(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
