// Package plog is pegomancy's structured logging layer: a thin wrapper
// around logrus that gives cmd/pegomancy a leveled Logger interface instead
// of a bare *logrus.Logger, the way
// open-policy-agent-opa/internal/logging/logging.go and
// open-policy-agent-opa/logging/logging.go wrap it for opa's CLI and
// plugins.
package plog

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level mirrors open-policy-agent-opa/logging's exported Level constants.
type Level int

const (
	Error Level = iota
	Warn
	Info
	Debug
)

// GetLevel parses a --log-level flag value, defaulting unset/empty to Info.
func GetLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return Debug, nil
	case "", "info":
		return Info, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Info, fmt.Errorf("plog: invalid log level: %v", level)
	}
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Debug:
		return logrus.DebugLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger is the leveled logging interface that StandardLogger and
// NoOpLogger implement. cmd/pegomancy logs through it; codegen does not
// log.
type Logger interface {
	Debug(fmt string, args ...interface{})
	Info(fmt string, args ...interface{})
	Warn(fmt string, args ...interface{})
	Error(fmt string, args ...interface{})
	WithFields(fields map[string]interface{}) Logger
	SetLevel(Level)
	GetLevel() Level
}

// StandardLogger is the default Logger, a *logrus.Entry underneath.
type StandardLogger struct {
	entry *logrus.Entry
	level Level
}

// New returns a StandardLogger writing JSON to stderr at Info level, the
// same defaults open-policy-agent-opa/internal/logging.GetFormatter falls
// back to when no --log-format flag is given.
func New() *StandardLogger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(GetFormatter("json", ""))
	return &StandardLogger{entry: logrus.NewEntry(l), level: Info}
}

func (l *StandardLogger) Debug(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *StandardLogger) Info(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *StandardLogger) Warn(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *StandardLogger) Error(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *StandardLogger) WithFields(fields map[string]interface{}) Logger {
	return &StandardLogger{entry: l.entry.WithFields(fields), level: l.level}
}

func (l *StandardLogger) SetLevel(level Level) {
	l.level = level
	l.entry.Logger.SetLevel(level.logrusLevel())
}

func (l *StandardLogger) GetLevel() Level { return l.level }

// SetFormat switches between "json", "json-pretty" and "text" output, the
// same three formats open-policy-agent-opa's CLI exposes via --log-format.
func (l *StandardLogger) SetFormat(format string) {
	l.entry.Logger.SetFormatter(GetFormatter(format, ""))
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (*NoOpLogger) Debug(string, ...interface{})            {}
func (*NoOpLogger) Info(string, ...interface{})             {}
func (*NoOpLogger) Warn(string, ...interface{})             {}
func (*NoOpLogger) Error(string, ...interface{})            {}
func (n *NoOpLogger) WithFields(map[string]interface{}) Logger { return n }
func (*NoOpLogger) SetLevel(Level)                          {}
func (*NoOpLogger) GetLevel() Level                         { return Info }
