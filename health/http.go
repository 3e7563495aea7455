package health

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ContentType is the media type of the health document.
const ContentType = "application/health+json"

// LivenessHandler returns an HTTP handler for liveness probes.
// This is a simple check that the service is running.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ReadinessHandler returns an HTTP handler that reports only the service
// status as plain text.
func ReadinessHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := reg.Status()

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(HTTPStatusCode(status))
		_, _ = w.Write([]byte(status.String()))
	}
}

// DetailedHandler returns an HTTP handler that serves the full health
// document as of the last update. It never runs checks itself.
func DetailedHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := NewDocument(reg.ServiceInfo())

		w.Header().Set("Content-Type", ContentType)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(HTTPStatusCode(doc.Status))
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// StopHandler returns an HTTP handler that stops every probe of reg.
// Only POST is accepted.
func StopHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		reg.StopMonitor()

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// RegisterHandlers registers all health handlers on the given mux, each
// wrapped with OpenTelemetry HTTP instrumentation.
func RegisterHandlers(mux *http.ServeMux, reg *Registry) {
	mux.Handle("/healthz", otelhttp.NewHandler(LivenessHandler(), "healthz"))
	mux.Handle("/readyz", otelhttp.NewHandler(ReadinessHandler(reg), "readyz"))
	mux.Handle("/healthcheck", otelhttp.NewHandler(DetailedHandler(reg), "healthcheck"))
	mux.Handle("/healthcheck/stop", otelhttp.NewHandler(StopHandler(reg), "healthcheck.stop"))
}
