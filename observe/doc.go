// Package observe provides observability for health monitors.
//
// It wires OpenTelemetry tracing and metrics plus a structured JSON logger
// into a health.Diagnostics sink. It performs no health checks itself.
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "orders",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	diag, err := observe.NewDiagnostics(obs)
//	reg := health.NewRegistry(info, "orders-001", health.WithDiagnostics(diag))
package observe
