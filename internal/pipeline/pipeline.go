package pipeline

import (
	"time"

	"github.com/prithvisense/thermal-monitor/internal/models"
	"github.com/rs/zerolog"
)

// SourceKind names which source produced a result's series.
type SourceKind string

const (
	SourceFile      SourceKind = "file"
	SourceSynthetic SourceKind = "synthetic"
)

// Result is one complete pipeline pass: the classified snapshot set, the
// series it was derived from, and where that series came from.
type Result struct {
	Snapshots   []models.ZoneSnapshot `json:"snapshots"`
	Series      []models.Reading      `json:"-"`
	Source      SourceKind            `json:"source"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// Pipeline converts a raw reading source into a complete, classified, ordered
// snapshot. Each Run is a single synchronous pass with no state carried
// between runs; any caching belongs to the calling layer.
type Pipeline struct {
	catalog       models.Catalog
	sourcePath    string
	fallbackHours int
	logger        zerolog.Logger
	now           func() time.Time
}

// New creates a pipeline reading from sourcePath, falling back to a synthetic
// series of fallbackHours hourly points per zone.
func New(catalog models.Catalog, sourcePath string, fallbackHours int, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		catalog:       catalog,
		sourcePath:    sourcePath,
		fallbackHours: fallbackHours,
		logger:        logger,
		now:           time.Now,
	}
}

// Catalog returns the zone catalog the pipeline derives snapshots for.
func (p *Pipeline) Catalog() models.Catalog {
	return p.catalog
}

// SourcePath returns the identity of the configured reading source.
func (p *Pipeline) SourcePath() string {
	return p.sourcePath
}

// Run performs one load → fallback-if-unavailable → derive pass. It cannot
// fail: an unavailable source is absorbed by switching to generation, so the
// dashboard always has a complete snapshot to render.
func (p *Pipeline) Run() Result {
	now := p.now()

	load := LoadSeries(p.sourcePath)
	if load.Available() {
		if load.RowsDropped > 0 {
			p.logger.Warn().
				Str("path", p.sourcePath).
				Int("dropped", load.RowsDropped).
				Int("kept", len(load.Readings)).
				Msg("Dropped malformed rows from data source")
		}
		p.logger.Debug().
			Str("path", p.sourcePath).
			Int("readings", len(load.Readings)).
			Msg("Data source loaded")
		return Result{
			Snapshots:   DeriveSnapshot(load.Readings, p.catalog),
			Series:      load.Readings,
			Source:      SourceFile,
			GeneratedAt: now,
		}
	}

	p.logger.Warn().
		Str("path", p.sourcePath).
		Str("reason", load.Status.String()).
		Err(load.Err).
		Msg("Data source unavailable, generating synthetic series")

	series := GenerateFallbackSeries(p.catalog, p.fallbackHours, now)
	return Result{
		Snapshots:   DeriveSnapshot(series, p.catalog),
		Series:      series,
		Source:      SourceSynthetic,
		GeneratedAt: now,
	}
}
