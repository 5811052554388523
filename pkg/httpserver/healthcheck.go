package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Check probes one dependency.
type Check func(context.Context) error

// LivenessHandler always answers 200 {"ok":true}.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// ReadinessHandler runs every check with a shared timeout. It answers 200
// {"ok":true,"checks":{...}} when all pass and 503 with ok=false otherwise.
// Failures are logged; responses only say "ok" or "error" per check.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		ok := true
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				ok = false
				results[name] = "error"
				log.ErrorContext(ctx, "readiness check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
				continue
			}
			results[name] = "ok"
		}

		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, status, map[string]any{"ok": ok, "checks": results})
	}
}

func writeHealth(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
