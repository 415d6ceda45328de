package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/webcalc/internal/config"
	"github.com/davidbz/webcalc/internal/observability"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, observability.GetTraceID(ctx))
	require.Empty(t, observability.GetOperator(ctx))

	ctx = observability.WithTraceID(ctx, "trace")
	ctx = observability.WithSpanID(ctx, "span")
	ctx = observability.WithRequestID(ctx, "req")
	ctx = observability.WithOperator(ctx, "sqrt")

	require.Equal(t, "trace", observability.GetTraceID(ctx))
	require.Equal(t, "span", observability.GetSpanID(ctx))
	require.Equal(t, "req", observability.GetRequestID(ctx))
	require.Equal(t, "sqrt", observability.GetOperator(ctx))
}

func TestGenerateIDs(t *testing.T) {
	require.Len(t, observability.GenerateTraceID(), 32)
	require.Len(t, observability.GenerateSpanID(), 16)
	require.NotEqual(t, observability.GenerateRequestID(), observability.GenerateRequestID())
}

func TestFromContext_AddsFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(nil) })

	ctx := observability.WithRequestID(context.Background(), "req-1")
	ctx = observability.WithOperator(ctx, "+")

	observability.FromContext(ctx).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "+", fields["operator"])
	require.NotContains(t, fields, "trace_id")
}

func TestEventBus_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	bus := observability.NewEventBus(zap.New(core))

	ctx := observability.WithRequestID(context.Background(), "req-2")
	bus.Publish(ctx, "calculation.completed", map[string]interface{}{
		"operator": "+",
		"result":   5.0,
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "calculation.completed", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "calculation.completed", fields["event"])
	require.Equal(t, "+", fields["operator"])
	require.InDelta(t, 5.0, fields["result"], 1e-12)
	require.Equal(t, "req-2", fields["request_id"])

	// A bus without a logger is a no-op.
	observability.NewEventBus(nil).Publish(ctx, "ignored", nil)
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { observability.SetLogger(nil) })

	logger, err := observability.InitLogger(&config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = observability.InitLogger(&config.LogConfig{Level: "loud"})
	require.Error(t, err)
}
