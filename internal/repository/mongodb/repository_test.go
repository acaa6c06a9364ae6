package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/repository/mongodb"
)

// Runs against a real server only when MONGODB_TEST_URI is set.
func newRepo(t *testing.T) *mongodb.MongoDBRepository {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := mongodb.NewMongoDBRepository(ctx, uri, fmt.Sprintf("anjo_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(context.Background()) })
	return repo
}

func TestSaveWeeklySnapshotUpsertsPerWeek(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	week := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	first := models.WeeklySnapshot{From: week, To: week.AddDate(0, 0, 6), CostEntries: 1}
	require.NoError(t, repo.SaveWeeklySnapshot(ctx, first))

	first.CostEntries = 5
	require.NoError(t, repo.SaveWeeklySnapshot(ctx, first))

	next := models.WeeklySnapshot{From: week.AddDate(0, 0, 7), To: week.AddDate(0, 0, 13), CostEntries: 2}
	require.NoError(t, repo.SaveWeeklySnapshot(ctx, next))

	got, err := repo.LatestSnapshots(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].CostEntries)
	assert.Equal(t, 5, got[1].CostEntries)
	assert.False(t, got[1].CreatedAt.IsZero())

	limited, err := repo.LatestSnapshots(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
