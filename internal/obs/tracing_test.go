package obs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/noah-isme/timecost/internal/obs"
)

func TestNewTracerProviderTagsResource(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp, err := obs.NewTracerProvider(context.Background(), obs.TracingConfig{
		Environment:   "staging",
		SamplingRatio: 0,
	}, sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "sweep")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	attrs := map[string]string{}
	for _, kv := range ended[0].Resource().Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, obs.DefaultServiceName, attrs[string(semconv.ServiceNameKey)])
	require.Equal(t, "staging", attrs[string(semconv.DeploymentEnvironmentKey)])
}

func TestInitTracerInstallsGlobalProvider(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
		ServiceName: "timecost-test",
		Environment: "test",
		Endpoint:    "http://127.0.0.1:4318",
	})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok)
	require.NoError(t, shutdown(context.Background()))
}
