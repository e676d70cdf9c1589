// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package logger builds the structured logger shared by every command.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the logger.
type Options struct {
	// Verbose enables debug level
	Verbose bool

	// Quiet discards everything below error level
	Quiet bool

	// Output receives log lines (default: stderr)
	Output io.Writer

	// JSON switches from the console encoder to JSON lines
	JSON bool
}

// New creates a logger writing human readable lines to opts.Output.
func New(opts Options) *zap.Logger {
	level := zapcore.WarnLevel
	switch {
	case opts.Quiet:
		level = zapcore.ErrorLevel
	case opts.Verbose:
		level = zapcore.DebugLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

// Close flushes buffered entries.
func Close(l *zap.Logger) {
	if l != nil {
		_ = l.Sync()
	}
}
