// Package health exposes a service health status derived from the statuses
// of its registered components.
//
// # Core Concepts
//
// A Registry owns the service record. Each monitor registered on it is a
// component entry keyed by "<component_name>:<measurement_name>" together
// with an Aggregator that applies updates to that entry. A Status is one of
// pass, warn or fail, ordered by severity.
//
// Updates that degrade a component are applied to the service status
// directly; fail is never downgraded to warn this way. Updates that report
// pass rescan every component, so the service only recovers when nothing
// else is still failing or warning.
//
// # Basic Usage
//
//	reg := health.NewRegistry(health.ServiceInfo{Version: "1.4.0"}, "orders")
//
//	// Manual monitor, updated from request handlers
//	calls := reg.CreateMonitor(health.DynamicComponentDetails{
//	    ComponentDetails: health.ComponentDetails{
//	        ComponentName:   "api",
//	        MeasurementName: "calls",
//	    },
//	}, nil, 0)
//	calls.Trigger(ctx, 42)
//
//	// Periodic monitor driven by a Checker
//	health.Monitor(reg, health.DynamicComponentDetails{}, health.NewMemoryChecker(health.MemoryCheckerConfig{}), 10*time.Second)
//
//	defer reg.StopMonitor()
//
// # Probes
//
// A probe calls its CollectFunc, stores the returned value on the component,
// then sleeps for its period. Stop is observed after the sleep, so a probe
// may run at most one more period after StopMonitor. A collect error or panic
// stops that probe only and is reported to the registry's Diagnostics.
//
// # HTTP Endpoints
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, reg)
//
// GET /healthcheck serves the health document; pass and warn map to 200 and
// fail maps to 503.
package health
