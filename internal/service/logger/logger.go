package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logging interface used across the service.
type Logger interface {
	Debug(message string, fields map[string]interface{})
	Info(message string, fields map[string]interface{})
	Warn(message string, fields map[string]interface{})
	Error(message string, err error, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

// Config controls level, format and the base service field.
type Config struct {
	Level       string
	Format      string // json or text
	ServiceName string
}

type structuredLogger struct {
	entry *logrus.Entry
}

// New creates a logrus-backed structured logger.
func New(config Config) Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if config.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}
	l.SetOutput(os.Stdout)

	return &structuredLogger{
		entry: l.WithField("service", config.ServiceName),
	}
}

func (l *structuredLogger) Debug(message string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(message)
}

func (l *structuredLogger) Info(message string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(message)
}

func (l *structuredLogger) Warn(message string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(message)
}

func (l *structuredLogger) Error(message string, err error, fields map[string]interface{}) {
	entry := l.entry.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
}

func (l *structuredLogger) WithFields(fields map[string]interface{}) Logger {
	return &structuredLogger{entry: l.entry.WithFields(fields)}
}
