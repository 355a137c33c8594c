package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	t.Run("debug level passes debug records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(&buf, "debug")
		log.Debug("visible")

		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("warn level filters info records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(&buf, "warn")
		log.Info("hidden")
		log.Warn("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(&buf, "chatty")
		log.Debug("hidden")
		log.Info("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "info")
	log.Info("structured message", "queue", "recompute-stats", "depth", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "structured message", record["msg"])
	assert.Equal(t, "recompute-stats", record["queue"])
	assert.Equal(t, float64(3), record["depth"])
}
