package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		logger, err := New(false)
		require.NoError(t, err)
		assert.False(t, logger.Desugar().Core().Enabled(zap.DebugLevel))
		assert.True(t, logger.Desugar().Core().Enabled(zap.InfoLevel))
	})

	t.Run("debug", func(t *testing.T) {
		logger, err := New(true)
		require.NoError(t, err)
		assert.True(t, logger.Desugar().Core().Enabled(zap.DebugLevel))
	})
}
