// Package logging wires up the process-wide zerolog logger: console output for
// operators plus an optional rolling log file.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the root logger. Components derive their own loggers from it with
// a "component" field.
func New(level, logPath string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}}
	if logPath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}

	return zerolog.New(io.MultiWriter(writers...)).Level(lvl).With().Timestamp().Logger()
}
