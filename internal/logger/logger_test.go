package logger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	log, err := New(true, false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(false, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])

	fallback := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, fallback)
	assert.NotPanics(t, func() { fallback.Info("another log") })
}

func TestPairFields(t *testing.T) {
	jobID, candidateID := uuid.New(), uuid.New()

	fields := PairFields(jobID, candidateID)
	require.Len(t, fields, 2)
	assert.Equal(t, FieldJobPostingID, fields[0].Key)
	assert.Equal(t, jobID.String(), fields[0].String)
	assert.Equal(t, FieldCandidateID, fields[1].Key)

	assert.Len(t, PairFields(uuid.Nil, candidateID), 1)
	assert.Empty(t, PairFields(uuid.Nil, uuid.Nil))
}
