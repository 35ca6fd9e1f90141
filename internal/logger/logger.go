// Package logger builds the zap loggers used by the server, the batch runner and the CLI.
package logger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FieldJobPostingID is the structured log field key for a job posting id.
	FieldJobPostingID = "job_posting_id"
	// FieldCandidateID is the structured log field key for a candidate id.
	FieldCandidateID = "candidate_id"
)

// New builds a console or JSON logger writing to stdout.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	return cfg.Build()
}

// WithFields attaches fields to logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// PairFields returns the fields identifying one (job posting, candidate) pair.
// A nil id is omitted.
func PairFields(jobPostingID, candidateID uuid.UUID) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if jobPostingID != uuid.Nil {
		fields = append(fields, zap.String(FieldJobPostingID, jobPostingID.String()))
	}
	if candidateID != uuid.Nil {
		fields = append(fields, zap.String(FieldCandidateID, candidateID.String()))
	}
	return fields
}
