package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestRun(t *testing.T) {
	l := Run("warn")
	assert.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))

	l = Run("nonsense")
	assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestLog(t *testing.T) {
	t.Run("should return the logger from context", func(t *testing.T) {
		l := zap.NewNop().Sugar()
		ctx := WithLogger(context.Background(), l)
		assert.Same(t, l, Log(ctx))
	})

	t.Run("should fall back to the global logger", func(t *testing.T) {
		assert.NotNil(t, Log(context.Background()))
	})
}
