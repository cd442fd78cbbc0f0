package forecast

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/prithvisense/thermal-monitor/internal/models"
)

// linearHead is one regression output: intercept plus one weight per feature.
type linearHead struct {
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// LinearModel is an externally trained regression artifact exported as JSON
// coefficients. Weights align with Features.Vector over the artifact's own
// catalog, so a model trained against an older catalog stays consistent.
type LinearModel struct {
	Catalog     models.Catalog `json:"catalog"`
	Temperature linearHead     `json:"temperature"`
	UV          linearHead     `json:"uv"`
}

// LoadArtifact reads a regression artifact from disk. Callers treat a load
// error as "no model" and fall back to the heuristic; the error is only for
// logging.
func LoadArtifact(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var model LinearModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if err := model.validate(); err != nil {
		return nil, fmt.Errorf("invalid artifact: %w", err)
	}
	return &model, nil
}

func (m *LinearModel) validate() error {
	if len(m.Catalog) == 0 {
		return fmt.Errorf("empty catalog")
	}
	want := 3 + len(m.Catalog)
	if len(m.Temperature.Weights) != want {
		return fmt.Errorf("temperature head has %d weights, want %d", len(m.Temperature.Weights), want)
	}
	if len(m.UV.Weights) != want {
		return fmt.Errorf("uv head has %d weights, want %d", len(m.UV.Weights), want)
	}
	return nil
}

// Predict evaluates both regression heads for the feature set. Zones unknown
// to the artifact's catalog are rejected so the caller can fall back.
func (m *LinearModel) Predict(f Features) (Prediction, error) {
	if !m.Catalog.Contains(f.Zone) {
		return Prediction{}, fmt.Errorf("zone %q not in model catalog", f.Zone)
	}

	vec := f.Vector(m.Catalog)
	return Prediction{
		Temperature: m.Temperature.eval(vec),
		UVIndex:     math.Max(0, m.UV.eval(vec)),
	}, nil
}

func (h linearHead) eval(vec []float64) float64 {
	sum := h.Intercept
	for i, w := range h.Weights {
		sum += w * vec[i]
	}
	return sum
}
