package usage

import (
	"context"

	"palette_api/pkg/models"
)

// Stats are read-only aggregates over the stored records.
type Stats struct {
	Total    int64
	ByResult map[string]int64
	ByRegion map[string]int64
}

// Repository is the append-only sink for anonymized usage records.
// Save is called fire-and-forget after the HTTP response has been
// sent; failures are logged by the caller and never reach the client.
type Repository interface {
	// Save appends one record. There is no update or delete path.
	Save(ctx context.Context, rec models.UsageRecord) error
	// Stats returns counts grouped by diagnosis outcome and region.
	Stats(ctx context.Context) (Stats, error)
}
