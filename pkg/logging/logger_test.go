package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/roster/pkg/logging"
)

func TestLoggerFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("Default returns global logger", func(t *testing.T) {
		assert.NotNil(t, logging.Default())
	})

	t.Run("SetDefault sets global logger", func(t *testing.T) {
		var buf bytes.Buffer
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))

		logging.Info().Msg("test with new default")
		assert.Contains(t, buf.String(), "test with new default")
	})

	t.Run("New creates JSON logger", func(t *testing.T) {
		var buf bytes.Buffer
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger := logging.New(&buf)
		logger.Info().Msg("json test")

		assert.Contains(t, buf.String(), "json test")
		assert.Contains(t, buf.String(), `"level":"info"`)
	})

	t.Run("Err adds error to event", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.ErrorLevel))

		logging.Err(assert.AnError).Msg("error test")

		assert.Contains(t, buf.String(), "error test")
		assert.Contains(t, buf.String(), assert.AnError.Error())
	})

	t.Run("capture helper installs and restores default", func(t *testing.T) {
		var captured *logging.TestLogger
		t.Run("inner", func(t *testing.T) {
			captured = logging.CaptureLoggingForTest(t)
			logging.Warn().Msg("captured warning")
		})
		assert.True(t, captured.Contains("captured warning"))
		assert.NotSame(t, captured.Logger, logging.Default())
	})

	t.Run("NewNopLogger discards", func(t *testing.T) {
		logger := logging.NewNopLogger()
		logger.Error().Msg("dropped")
	})
}
