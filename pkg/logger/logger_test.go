package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	lggr, err := New("warn")
	require.NoError(t, err)
	assert.Equal(t, "web", lggr.Named("web").Name())

	_, err = New("loud")
	require.Error(t, err)
}

func TestObservedNamed(t *testing.T) {
	lggr, logs := TestObserved(t, zapcore.InfoLevel)
	named := lggr.Named("trainer")
	assert.Equal(t, "trainer", named.Name())

	named.Debugw("hidden")
	named.Infow("Model trained", "accuracy", 0.95)

	entries := logs.FilterMessage("Model trained").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "trainer", entries[0].LoggerName)
	assert.Equal(t, 0.95, entries[0].ContextMap()["accuracy"])
	assert.Zero(t, logs.FilterMessage("hidden").Len())
}

func TestNop(t *testing.T) {
	lggr := Nop()
	lggr.Errorw("dropped", "k", "v")
	assert.NoError(t, lggr.Sync())
}
