package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// RouterConfig carries the serving-layer wiring for NewRouter.
type RouterConfig struct {
	API            *APIHandler
	Live           *LiveHandler
	Version        string
	DashboardPath  string
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter builds the HTTP routing table with request-ID, access-log and
// CORS middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","version":"%s"}`, cfg.Version)
	}).Methods("GET")

	r.HandleFunc("/api/snapshot", cfg.API.HandleSnapshot).Methods("GET")
	r.HandleFunc("/api/snapshot.csv", cfg.API.HandleSnapshotCSV).Methods("GET")
	r.HandleFunc("/api/zones", cfg.API.HandleZones).Methods("GET")
	r.HandleFunc("/api/history", cfg.API.HandleHistory).Methods("GET")
	r.HandleFunc("/api/insights", cfg.API.HandleInsights).Methods("GET")
	r.HandleFunc("/api/forecast", cfg.API.HandleForecast).Methods("POST")
	r.HandleFunc("/api/roi", cfg.API.HandleROI).Methods("POST")
	r.HandleFunc("/api/refresh", cfg.API.HandleRefresh).Methods("POST")
	r.HandleFunc("/api/cache", cfg.API.HandleCacheStats).Methods("GET")

	if cfg.Live != nil {
		r.HandleFunc("/live", cfg.Live.ServeHTTP)
	}

	// Serve static dashboard for exact root path only
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		cfg.Logger.Debug().Str("path", req.URL.Path).Msg("Serving dashboard")
		http.ServeFile(w, req, cfg.DashboardPath)
	}).Methods("GET")

	var handler http.Handler = r
	handler = requestIDMiddleware(handler)
	handler = handlers.LoggingHandler(accessLogWriter{cfg.Logger}, handler)
	if len(cfg.AllowedOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST"}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(handler)
	}
	return handler
}

// requestIDMiddleware tags every response with an X-Request-ID so log lines
// can be tied to a request.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// accessLogWriter adapts zerolog to the io.Writer the gorilla logging
// middleware expects.
type accessLogWriter struct {
	logger zerolog.Logger
}

func (w accessLogWriter) Write(p []byte) (int, error) {
	n := len(p)
	// Trim the trailing newline the Apache-style formatter appends.
	for n > 0 && (p[n-1] == '\n' || p[n-1] == '\r') {
		n--
	}
	w.logger.Info().Str("access", string(p[:n])).Msg("HTTP request")
	return len(p), nil
}
