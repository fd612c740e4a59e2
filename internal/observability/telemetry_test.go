package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/jonathan/jobpilot/internal/config"
)

func TestInitTracer_RequiresEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), &config.Config{ServiceName: "jobpilot"})

	assert.Error(t, err)
	assert.Nil(t, shutdown)
}

func TestInitTracer_UnreachableCollectorDoesNotBlock(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	cfg := &config.Config{ServiceName: "jobpilot", OTLPEndpoint: "127.0.0.1:1"}
	shutdown, err := InitTracer(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.NotEqual(t, previous, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = shutdown(ctx)
	assert.NoError(t, ctx.Err(), "shutdown should not wait for the collector")
}
