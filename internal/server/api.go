package server

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/prithvisense/thermal-monitor/internal/forecast"
	"github.com/prithvisense/thermal-monitor/internal/insights"
	"github.com/prithvisense/thermal-monitor/internal/models"
	"github.com/prithvisense/thermal-monitor/internal/roi"
)

// APIHandler handles HTTP API requests for the dashboard
type APIHandler struct {
	cache   *SnapshotCache
	catalog models.Catalog
	// model is the optional externally trained artifact; nil means every
	// forecast uses the heuristic fallback.
	model  forecast.Forecaster
	logger zerolog.Logger
}

// NewAPIHandler creates a new API handler. model may be nil.
func NewAPIHandler(cache *SnapshotCache, catalog models.Catalog, model forecast.Forecaster, logger zerolog.Logger) *APIHandler {
	return &APIHandler{
		cache:   cache,
		catalog: catalog,
		model:   model,
		logger:  logger,
	}
}

// HandleSnapshot returns the current classified snapshot set, catalog order.
func (api *APIHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	result := api.cache.Get()
	writeJSON(w, result)
}

// HandleSnapshotCSV serializes the snapshot set for download, one row per
// zone with empty cells for absent fields.
func (api *APIHandler) HandleSnapshotCSV(w http.ResponseWriter, r *http.Request) {
	result := api.cache.Get()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="latest_snapshot.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"zone", "temp", "uv", "timestamp", "status"})
	for _, s := range result.Snapshots {
		row := []string{string(s.Zone), "", "", "", ""}
		if s.HasData() {
			row[1] = strconv.FormatFloat(*s.Temperature, 'f', -1, 64)
			row[2] = strconv.FormatFloat(*s.UVIndex, 'f', -1, 64)
			row[3] = s.Timestamp.Format(time.RFC3339)
			row[4] = string(s.Status)
		}
		cw.Write(row)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		api.logger.Error().Err(err).Msg("Failed to write snapshot CSV")
	}
}

// HandleZones returns the zone catalog in canonical order.
func (api *APIHandler) HandleZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.catalog)
}

// HandleHistory returns recent readings for one zone, oldest first.
func (api *APIHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	zone := models.Zone(r.URL.Query().Get("zone"))
	if !api.catalog.Contains(zone) {
		http.Error(w, "Unknown zone", http.StatusBadRequest)
		return
	}

	limit := 72 // default chart window
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	result := api.cache.Get()
	history := make([]models.Reading, 0, limit)
	for _, reading := range result.Series {
		if reading.Zone == zone {
			history = append(history, reading)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	writeJSON(w, history)
}

// HandleInsights returns the risk summary and per-zone series statistics.
func (api *APIHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	result := api.cache.Get()

	response := struct {
		Summary insights.Summary     `json:"summary"`
		Stats   []insights.ZoneStats `json:"stats"`
	}{
		Summary: insights.Summarize(result.Snapshots),
		Stats:   insights.SeriesStats(result.Series, api.catalog),
	}
	writeJSON(w, response)
}

// ForecastRequest is the POST body for a point forecast.
type ForecastRequest struct {
	Zone models.Zone `json:"zone"`
	// Timestamp is optional RFC3339; defaults to one hour from now.
	Timestamp string `json:"timestamp,omitempty"`
}

// ForecastResponse carries the prediction plus which backend produced it.
type ForecastResponse struct {
	Zone       models.Zone         `json:"zone"`
	Timestamp  time.Time           `json:"timestamp"`
	Prediction forecast.Prediction `json:"prediction"`
	Backend    string              `json:"backend"`
}

// HandleForecast runs the model artifact when present, falling back to the
// last-known-value heuristic when it is absent or errors.
func (api *APIHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !api.catalog.Contains(req.Zone) {
		http.Error(w, "Unknown zone", http.StatusBadRequest)
		return
	}

	ts := time.Now().Add(time.Hour)
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			http.Error(w, "Invalid timestamp, want RFC3339", http.StatusBadRequest)
			return
		}
		ts = parsed
	}

	features := forecast.FeaturesAt(ts, req.Zone)
	backend := "model"
	var prediction forecast.Prediction
	var err error

	if api.model != nil {
		prediction, err = api.model.Predict(features)
		if err != nil {
			api.logger.Warn().Err(err).Str("zone", string(req.Zone)).Msg("Model predict failed, using heuristic")
		}
	}
	if api.model == nil || err != nil {
		backend = "heuristic"
		result := api.cache.Get()
		prediction, err = forecast.NewHeuristic(result.Snapshots).Predict(features)
		if err != nil {
			http.Error(w, fmt.Sprintf("Forecast unavailable: %v", err), http.StatusNotFound)
			return
		}
	}

	writeJSON(w, ForecastResponse{
		Zone:       req.Zone,
		Timestamp:  ts,
		Prediction: prediction,
		Backend:    backend,
	})
}

// HandleROI computes the return-on-investment estimate from user numbers.
func (api *APIHandler) HandleROI(w http.ResponseWriter, r *http.Request) {
	var input roi.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	estimate, err := roi.Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, estimate)
}

// HandleRefresh invalidates the snapshot cache so the next read reloads the
// source.
func (api *APIHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	api.cache.Invalidate()
	api.logger.Info().Msg("Snapshot cache invalidated")
	writeJSON(w, map[string]string{"status": "ok"})
}

// HandleCacheStats returns statistics about the snapshot cache.
func (api *APIHandler) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.cache.Stats())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
