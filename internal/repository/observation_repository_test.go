package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/geotrace-go/internal/database"
	"github.com/jengzang/geotrace-go/internal/models"
)

func newTestRepository(t *testing.T) *ObservationRepository {
	t.Helper()
	conn, err := database.Open(filepath.Join(t.TempDir(), "geotrace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.MigrateUp(conn))
	return NewObservationRepository(conn)
}

func sampleBatch() []models.Observation {
	return []models.Observation{
		models.NewObservation("img-3", 17.3850, 78.4867, "2024:03:01 08:00:00"),
		models.NewObservation("img-1", 17.3851, 78.4868, ""),
		{ID: "img-2", Timestamp: "2024-03-01T09:00:00"},
	}
}

func ids(obs []models.Observation) []string {
	out := make([]string, 0, len(obs))
	for _, o := range obs {
		out = append(out, o.ID)
	}
	return out
}

func TestInsertAndListPreservesOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.InsertBatch(ctx, "b1", sampleBatch()))

	got, total, err := repo.ListByBatch(ctx, models.ObservationFilter{BatchID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, sampleBatch(), got)
}

func TestListByBatchFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.InsertBatch(ctx, "b1", sampleBatch()))
	require.NoError(t, repo.InsertBatch(ctx, "b2", sampleBatch()[:1]))

	yes, no := true, false
	tests := []struct {
		name   string
		filter models.ObservationFilter
		want   []string
		total  int64
	}{
		{"with timestamp", models.ObservationFilter{BatchID: "b1", HasTimestamp: &yes}, []string{"img-3", "img-2"}, 2},
		{"without timestamp", models.ObservationFilter{BatchID: "b1", HasTimestamp: &no}, []string{"img-1"}, 1},
		{"with location", models.ObservationFilter{BatchID: "b1", HasLocation: &yes}, []string{"img-3", "img-1"}, 2},
		{"without location", models.ObservationFilter{BatchID: "b1", HasLocation: &no}, []string{"img-2"}, 1},
		{"second page", models.ObservationFilter{BatchID: "b1", Page: 2, PageSize: 2}, []string{"img-2"}, 3},
		{"other batch", models.ObservationFilter{BatchID: "b2"}, []string{"img-3"}, 1},
		{"missing batch", models.ObservationFilter{BatchID: "nope"}, []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := repo.ListByBatch(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestInsertBatchReplacesDuplicateIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.InsertBatch(ctx, "b1", sampleBatch()))
	require.NoError(t, repo.InsertBatch(ctx, "b1", []models.Observation{models.NewObservation("img-1", 1, 2, "")}))

	count, err := repo.CountByBatch(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	got, _, err := repo.ListByBatch(ctx, models.ObservationFilter{BatchID: "b1", HasTimestamp: new(bool)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, *got[0].Lat)
}

func TestInsertBatchLargerThanChunk(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	obs := make([]models.Observation, insertChunkSize*2+7)
	for i := range obs {
		obs[i] = models.NewObservation(time.Duration(i).String(), float64(i%90), 0, "")
	}
	require.NoError(t, repo.InsertBatch(ctx, "big", obs))

	count, err := repo.CountByBatch(ctx, "big")
	require.NoError(t, err)
	assert.Equal(t, int64(len(obs)), count)

	got, _, err := repo.ListByBatch(ctx, models.ObservationFilter{BatchID: "big"})
	require.NoError(t, err)
	assert.Equal(t, ids(obs), ids(got))
}

func TestListAndDeleteBatches(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	repo.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }
	require.NoError(t, repo.InsertBatch(ctx, "old", sampleBatch()))
	repo.now = func() time.Time { return time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC) }
	require.NoError(t, repo.InsertBatch(ctx, "new", sampleBatch()[:2]))

	batches, err := repo.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "new", batches[0].BatchID)
	assert.Equal(t, int64(2), batches[0].ObservationCount)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), batches[0].CreatedAt)
	assert.Equal(t, "old", batches[1].BatchID)

	deleted, err := repo.DeleteBatch(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	count, err := repo.CountByBatch(ctx, "old")
	require.NoError(t, err)
	assert.Zero(t, count)

	deleted, err = repo.DeleteBatch(ctx, "old")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
