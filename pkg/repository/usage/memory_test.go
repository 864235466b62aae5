package usage_test

import (
	"context"
	"testing"
	"time"

	"palette_api/pkg/models"
	"palette_api/pkg/repository/usage"

	"github.com/stretchr/testify/require"
)

func record(color, region string) models.UsageRecord {
	return models.UsageRecord{
		SessionID:     "s-" + color + "-" + region,
		CreatedAt:     time.Now(),
		Region:        region,
		PersonalColor: color,
	}
}

func TestMemorySaveAndStats(t *testing.T) {
	repo := usage.NewMemoryRepository(nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, record("Spring Light", "Asia")))
	require.NoError(t, repo.Save(ctx, record("Spring Light", "Europe")))
	require.NoError(t, repo.Save(ctx, record("Winter Deep", "Asia")))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Total)
	require.Equal(t, int64(2), stats.ByResult["Spring Light"])
	require.Equal(t, int64(1), stats.ByResult["Winter Deep"])
	require.Equal(t, int64(2), stats.ByRegion["Asia"])
	require.Equal(t, int64(1), stats.ByRegion["Europe"])
}

func TestMemoryStatsEmpty(t *testing.T) {
	repo := usage.NewMemoryRepository(nil)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.Total)
	require.Empty(t, stats.ByResult)
	require.Empty(t, stats.ByRegion)
}

func TestMemoryStatsBucketsMissingFields(t *testing.T) {
	repo := usage.NewMemoryRepository(nil)
	require.NoError(t, repo.Save(context.Background(), models.UsageRecord{SessionID: "bare"}))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.ByResult["unknown"])
	require.Equal(t, int64(1), stats.ByRegion["unknown"])
}
