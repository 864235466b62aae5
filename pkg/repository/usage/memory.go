package usage

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"palette_api/pkg/metrics"
	"palette_api/pkg/models"
)

// MemoryRepository is an in-memory Repository implementation for
// deployments without a Mongo backend and for tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []models.UsageRecord
	reg     *metrics.Registry
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository(reg *metrics.Registry) *MemoryRepository {
	return &MemoryRepository{reg: reg}
}

// Save appends a copy of the record.
func (r *MemoryRepository) Save(ctx context.Context, rec models.UsageRecord) error {
	r.mu.Lock()
	r.records = append(r.records, rec)
	total := len(r.records)
	r.mu.Unlock()

	log.Ctx(ctx).Info().
		Str("session_id", rec.SessionID).
		Str("region", rec.Region).
		Str("personal_color", rec.PersonalColor).
		Int("stored", total).
		Msg("usage record saved to memory")
	if r.reg != nil {
		r.reg.Inc(ctx, "usage_records_saved_total", map[string]string{"sink": "memory"}, 1)
	}
	return nil
}

// Stats counts records by personal-color outcome and by region.
func (r *MemoryRepository) Stats(ctx context.Context) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		Total:    int64(len(r.records)),
		ByResult: make(map[string]int64),
		ByRegion: make(map[string]int64),
	}
	for i := range r.records {
		result := r.records[i].PersonalColor
		if result == "" {
			result = "unknown"
		}
		region := r.records[i].Region
		if region == "" {
			region = "unknown"
		}
		stats.ByResult[result]++
		stats.ByRegion[region]++
	}
	return stats, nil
}
