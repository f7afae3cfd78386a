// Package dashboard orchestrates the periodic fetch-parse-aggregate cycle
// and holds the chart snapshots the HTTP API serves.
package dashboard

import (
	"time"

	"github.com/tricountyrescue/rescue-dashboard/internal/domain"
)

// Snapshot is one chart's aggregation result at a point in time.
type Snapshot struct {
	Chart       domain.Chart `json:"chart"`
	SourceFile  string       `json:"source_file"`
	RefreshedAt time.Time    `json:"refreshed_at"`
}
