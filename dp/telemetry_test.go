package dp_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/katalvlaran/dypro/dp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetrics_SolveCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := dp.NewMetrics(reg)
	require.NoError(t, err)

	_, err = dp.Solve(context.Background(), ringProblem(), 3, dp.WithMetrics(m))
	require.NoError(t, err)
	_, err = dp.Solve(context.Background(), ringProblem(), -1, dp.WithMetrics(m))
	require.Error(t, err, "argument errors are rejected before any metric is recorded")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dp.Solve(ctx, ringProblem(), 3, dp.WithMetrics(m))
	require.ErrorIs(t, err, context.Canceled)

	expected := `
# HELP dypro_solves_total Backward-induction runs by mode and outcome.
# TYPE dypro_solves_total counter
dypro_solves_total{mode="deterministic",status="error"} 1
dypro_solves_total{mode="deterministic",status="ok"} 1
# HELP dypro_states_evaluated_total States evaluated across all stages.
# TYPE dypro_states_evaluated_total counter
dypro_states_evaluated_total{mode="deterministic"} 15
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"dypro_solves_total", "dypro_states_evaluated_total"))

	n, err := testutil.GatherAndCount(reg, "dypro_stage_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_ReuseRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := dp.NewMetrics(reg)
	require.NoError(t, err)
	b, err := dp.NewMetrics(reg)
	require.NoError(t, err, "second registration reuses the collectors")

	_, err = dp.SolveStochastic(context.Background(), oneStage(t, func(int) float64 { return 0 }), 1, dp.WithMetrics(a))
	require.NoError(t, err)
	_, err = dp.SolveStochastic(context.Background(), oneStage(t, func(int) float64 { return 0 }), 1, dp.WithMetrics(b))
	require.NoError(t, err)

	expected := `
# HELP dypro_solves_total Backward-induction runs by mode and outcome.
# TYPE dypro_solves_total counter
dypro_solves_total{mode="stochastic",status="ok"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "dypro_solves_total"))
}

func TestMetrics_NilSafe(t *testing.T) {
	m, err := dp.NewMetrics(nil)
	require.NoError(t, err)
	_, err = dp.Solve(context.Background(), ringProblem(), 2, dp.WithMetrics(m))
	assert.NoError(t, err)
	_, err = dp.Solve(context.Background(), ringProblem(), 2, dp.WithMetrics(nil))
	assert.NoError(t, err)
}

func TestTracing_Spans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, err := dp.Solve(context.Background(), ringProblem(), 3, dp.WithTracer(tp.Tracer("test")))
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 4)
	names := map[string]int{}
	for _, s := range spans {
		names[s.Name()]++
	}
	assert.Equal(t, 3, names["dp.Stage"])
	assert.Equal(t, 1, names["dp.Solve"])

	root := spans[len(spans)-1]
	assert.Equal(t, "dp.Solve", root.Name())
	assert.Equal(t, codes.Ok, root.Status().Code)
	for _, s := range spans[:3] {
		assert.Equal(t, root.SpanContext().SpanID(), s.Parent().SpanID())
	}
}

// TestTracing_StdoutExportsInfiniteSentinel exports through the JSON stdout
// exporter with the default +Inf sentinel; the root span must survive encoding.
func TestTracing_StdoutExportsInfiniteSentinel(t *testing.T) {
	var buf bytes.Buffer
	exp, err := stdouttrace.New(stdouttrace.WithWriter(&buf))
	require.NoError(t, err)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))

	_, err = dp.Solve(context.Background(), ringProblem(), 2, dp.WithTracer(tp.Tracer("test")))
	require.NoError(t, err)
	require.NoError(t, tp.Shutdown(context.Background()))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"Name":"dp.Solve"`))
	assert.Equal(t, 2, strings.Count(out, `"Name":"dp.Stage"`))
	assert.Contains(t, out, `"Value":"+Inf"`)
}

func TestTracing_ErrorStatus(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	p := oneStage(t, func(int) float64 { return 0 })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dp.SolveStochastic(ctx, p, 1, dp.WithTracer(tp.Tracer("test")))
	require.ErrorIs(t, err, context.Canceled)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "dp.SolveStochastic", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestLogging_StageLines(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, err := dp.Solve(context.Background(), ringProblem(), 4, dp.WithLogger(zap.New(core)))
	require.NoError(t, err)

	stages := logs.FilterMessage("stage solved").All()
	require.Len(t, stages, 4)
	assert.Equal(t, int64(3), stages[0].ContextMap()["stage"])
	assert.Equal(t, int64(0), stages[3].ContextMap()["stage"])
	assert.Equal(t, "deterministic", stages[0].ContextMap()["mode"])
	assert.Equal(t, 1, logs.FilterMessage("solve finished").Len())
}

func TestLogging_FailureWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dp.SolveStochastic(ctx, oneStage(t, func(int) float64 { return 0 }), 1, dp.WithLogger(zap.New(core)))
	require.Error(t, err)

	failed := logs.FilterMessage("solve failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "stochastic", failed[0].ContextMap()["mode"])
	assert.Zero(t, logs.FilterMessage("stage solved").Len(), "debug lines are below the level")
}
