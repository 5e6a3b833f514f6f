package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/landxfer/internal/core/effects"
)

type strayEffect struct{}

func (strayEffect) EffectType() string { return "stray" }

func TestEffectExecutor_CompositeRunsInOrder(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	exec := NewEffectExecutor(NewAuditWriter(), zap.New(core))

	err := exec.Execute(context.Background(), EffectScope{}, []effects.Effect{
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.LogEffect{Level: "warn", Message: "first", Fields: map[string]any{"case_id": "APP-0001"}},
			effects.CompositeEffect{Effects: []effects.Effect{
				effects.LogEffect{Message: "second"},
			}},
		}},
		effects.LogEffect{Level: "loud", Message: "third"},
	})
	require.NoError(t, err)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "APP-0001", entries[0].ContextMap()["case_id"])
	assert.Equal(t, "second", entries[1].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "third", entries[2].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
}

func TestEffectExecutor_LogRespectsLoggerLevel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	exec := NewEffectExecutor(NewAuditWriter(), zap.New(core))

	err := exec.Execute(context.Background(), EffectScope{}, []effects.Effect{
		effects.LogEffect{Level: "debug", Message: "quiet"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Len())
}

func TestEffectExecutor_UnknownEffect(t *testing.T) {
	exec := NewEffectExecutor(NewAuditWriter(), nil)

	err := exec.Execute(context.Background(), EffectScope{}, []effects.Effect{
		effects.CompositeEffect{Effects: []effects.Effect{strayEffect{}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown effect type")
	assert.Contains(t, err.Error(), "failed to execute composite effect")
}
