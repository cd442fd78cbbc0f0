package server

import (
	"github.com/prithvisense/thermal-monitor/internal/pipeline"
)

// SnapshotRunner produces a fresh pipeline result on demand.
// pipeline.Pipeline implements this interface.
type SnapshotRunner interface {
	Run() pipeline.Result
}
