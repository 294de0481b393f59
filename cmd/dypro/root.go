// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/katalvlaran/dypro/dp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	verbose     bool
	trace       bool
	metricsAddr string

	out    io.Writer
	errOut io.Writer

	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *dp.Metrics
	tracer   *sdktrace.TracerProvider
	server   *http.Server
}

// execute runs one invocation. Whatever setup acquired is released on every
// path; cobra skips post-run hooks when a subcommand fails.
func execute(ctx context.Context, args []string, out, errOut io.Writer) (err error) {
	cmd, a := newRootCommand(out, errOut)
	cmd.SetArgs(args)
	defer func() { err = errors.Join(err, a.teardown(ctx)) }()

	return cmd.ExecuteContext(ctx)
}

func newRootCommand(out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{out: out, errOut: errOut, log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "dypro",
		Short:         "Finite-horizon dynamic programming by backward induction",
		Long:          "dypro solves production planning and hydroelectric scheduling scenarios described in YAML files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every stage at debug level")
	cmd.PersistentFlags().BoolVar(&a.trace, "trace", false, "print solver spans to stderr")
	cmd.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running, e.g. :9090")

	cmd.AddCommand(newRunCmd(a), newSweepCmd(a))

	return cmd, a
}

func (a *app) setup() error {
	a.log = newLogger(a.errOut, a.verbose)

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector())
	m, err := dp.NewMetrics(a.registry)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	a.metrics = m

	if a.trace {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(a.errOut), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("trace exporter: %w", err)
		}
		a.tracer = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	}

	if a.metricsAddr != "" {
		ln, err := net.Listen("tcp", a.metricsAddr)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		a.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error("metrics server stopped", zap.Error(err))
			}
		}()
		a.log.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	}

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if a.server != nil {
		errs = append(errs, a.server.Shutdown(ctx))
	}
	if a.tracer != nil {
		errs = append(errs, a.tracer.Shutdown(ctx))
	}
	_ = a.log.Sync()

	return errors.Join(errs...)
}

// options are the engine options every subcommand passes to scenario.Run.
func (a *app) options() []dp.Option {
	opts := []dp.Option{dp.WithLogger(a.log), dp.WithMetrics(a.metrics)}
	if a.tracer != nil {
		opts = append(opts, dp.WithTracer(a.tracer.Tracer(dp.TracerName)))
	}

	return opts
}

// newLogger writes JSON at info level, or console output at debug level
// when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	level := zapcore.InfoLevel
	if verbose {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}
