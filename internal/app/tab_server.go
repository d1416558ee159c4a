package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"toggl-sherpa/internal/ingest"
)

// TabServer returns a configured http.Server that receives active-tab
// observations from the browser extension. Call ListenAndServe on the
// returned server and Shutdown it on exit.
func (a *App) TabServer(addr string) *http.Server {
	ing := a.Ingestor()
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/v1/active_tab", func(w http.ResponseWriter, r *http.Request) {
		// Simple CORS for the extension.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		switch r.Method {
		case http.MethodOptions:
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "content-type")
			w.WriteHeader(http.StatusNoContent)
			return
		case http.MethodPost:
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			return
		}

		var payload ingest.Payload
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		if err := dec.Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			return
		}
		if ua := r.Header.Get("User-Agent"); ua != "" {
			payload.UserAgent = &ua
		}

		red, err := ing.Ingest(r.Context(), payload)
		if err != nil {
			a.Log.Error("tab ingest failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"ok":             true,
			"allowed":        red.Allowed,
			"url_redacted":   red.URLRedacted,
			"title_redacted": red.TitleRedacted,
		})
	})

	srv := &http.Server{Addr: addr, Handler: loggingMiddleware(a.Log, mux)}
	a.Log.Info("tab ingest server configured", slog.String("addr", addr))
	return srv
}

func writeJSON(w http.ResponseWriter, status int, obj map[string]any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(obj)
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}
