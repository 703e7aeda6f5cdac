package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/geotrace-go/internal/models"
)

var base = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func at(id string, clusterID int, offset time.Duration) models.ClusteredObservation {
	t := base.Add(offset)
	return models.ClusteredObservation{ID: id, ClusterID: clusterID, Timestamp: t.Format(time.RFC3339), Time: &t}
}

func untimed(id string, clusterID int) models.ClusteredObservation {
	return models.ClusteredObservation{ID: id, ClusterID: clusterID}
}

func TestDwell_SplitsVisitsOnGap(t *testing.T) {
	points := []models.ClusteredObservation{
		at("a1", 0, 8*time.Hour),
		at("a2", 0, 8*time.Hour+30*time.Minute),
		at("a3", 0, 9*time.Hour), // 30 minutes after a2: same visit
		at("a4", 0, 18*time.Hour),
		at("a5", 0, 18*time.Hour+20*time.Minute),
		at("b1", 1, 12*time.Hour),
		at("noise", models.NoiseClusterID, 13*time.Hour),
		untimed("a-untimed", 0),
	}

	got := Dwell(points, DefaultVisitGapSeconds)

	want := []models.DwellRecord{
		{
			ClusterID:         0,
			TotalDwellSeconds: 3600 + 1200,
			TotalDwellHuman:   "1h 20m 0s",
			VisitCount:        2,
			PointCount:        5,
			FirstSeen:         "2024-03-01T08:00:00",
			LastSeen:          "2024-03-01T18:20:00",
		},
		{
			ClusterID:         1,
			TotalDwellSeconds: 0,
			TotalDwellHuman:   "0s",
			VisitCount:        1,
			PointCount:        1,
			FirstSeen:         "2024-03-01T12:00:00",
			LastSeen:          "2024-03-01T12:00:00",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dwell mismatch (-want +got):\n%s", diff)
	}
}

func TestDwell_GapEqualToThresholdContinuesVisit(t *testing.T) {
	got := Dwell([]models.ClusteredObservation{
		at("a", 3, 0),
		at("b", 3, time.Hour),
	}, 3600)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].VisitCount)
	assert.Equal(t, 3600.0, got[0].TotalDwellSeconds)
}

func TestDwell_IgnoresUntimedAndNoise(t *testing.T) {
	got := Dwell([]models.ClusteredObservation{
		untimed("a", 0),
		at("n", models.NoiseClusterID, time.Hour),
	}, DefaultVisitGapSeconds)

	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestDwell_VisitCountGrowsAsGapShrinks(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	var points []models.ClusteredObservation
	for i := 0; i < 200; i++ {
		offset := time.Duration(rng.Int63n(int64(72 * time.Hour)))
		points = append(points, at("p", rng.Intn(4), offset))
	}

	visits := func(gap float64) int {
		total := 0
		for _, r := range Dwell(points, gap) {
			total += r.VisitCount
		}
		return total
	}

	prev := visits(86400)
	for _, gap := range []float64{14400, 3600, 1800, 600, 60, 1} {
		curr := visits(gap)
		assert.GreaterOrEqual(t, curr, prev, "gap=%v", gap)
		prev = curr
	}
}

func segment(from, to int, km float64) models.Segment {
	return models.Segment{
		From:       models.SegmentPoint{ClusterID: from},
		To:         models.SegmentPoint{ClusterID: to},
		DistanceKm: km,
	}
}

func TestCorridors(t *testing.T) {
	got := Corridors([]models.Segment{
		segment(0, 1, 10),
		segment(1, 0, 9),
		segment(2, 3, 4),
		segment(0, 1, 12),
		segment(1, 1, 0.1),                   // same cluster
		segment(models.NoiseClusterID, 1, 3), // from noise
		segment(2, models.NoiseClusterID, 2), // to noise
		segment(2, 3, 5),
		segment(1, 0, 11),
		segment(0, 1, 11),
	})

	want := []models.CorridorRecord{
		{Corridor: "0 -> 1", OriginCluster: 0, DestinationCluster: 1, TripCount: 3, AvgDistanceKm: 11, MinDistanceKm: 10, MaxDistanceKm: 12},
		{Corridor: "1 -> 0", OriginCluster: 1, DestinationCluster: 0, TripCount: 2, AvgDistanceKm: 10, MinDistanceKm: 9, MaxDistanceKm: 11},
		{Corridor: "2 -> 3", OriginCluster: 2, DestinationCluster: 3, TripCount: 2, AvgDistanceKm: 4.5, MinDistanceKm: 4, MaxDistanceKm: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("corridors mismatch (-want +got):\n%s", diff)
	}
}

func TestCorridors_Empty(t *testing.T) {
	got := Corridors(nil)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestClusterDistances(t *testing.T) {
	clusters := []models.Cluster{
		{ClusterID: 0, CentroidLat: 0, CentroidLon: 0, Label: "Cluster 0"},
		{ClusterID: 1, CentroidLat: 0, CentroidLon: 1, Label: "Cluster 1"},
		{ClusterID: 2, CentroidLat: 0, CentroidLon: 0.5, Label: "Cluster 2"},
	}

	got := ClusterDistances(clusters)

	require.Len(t, got, 3)
	// 0-2 and 1-2 are equally far; generation order breaks the tie
	assert.Equal(t, [2]int{0, 2}, [2]int{got[0].ClusterA, got[0].ClusterB})
	assert.Equal(t, [2]int{1, 2}, [2]int{got[1].ClusterA, got[1].ClusterB})
	assert.Equal(t, [2]int{0, 1}, [2]int{got[2].ClusterA, got[2].ClusterB})
	assert.Equal(t, "Cluster 0", got[0].ClusterALabel)
	assert.Equal(t, "Cluster 2", got[0].ClusterBLabel)
	assert.InDelta(t, 111.1949, got[2].DistanceKm, 0.001)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].DistanceKm, got[i].DistanceKm)
	}
}

func TestClusterDistances_FewerThanTwoClusters(t *testing.T) {
	assert.Empty(t, ClusterDistances(nil))
	assert.Empty(t, ClusterDistances([]models.Cluster{{ClusterID: 0}}))
}

func TestTimeOfDay(t *testing.T) {
	points := []models.ClusteredObservation{
		at("night-early", 0, 4*time.Hour+59*time.Minute),
		at("morning-start", 0, 5*time.Hour),
		at("morning-end", 0, 11*time.Hour+59*time.Minute),
		at("afternoon", 0, 12*time.Hour),
		at("evening", 0, 17*time.Hour),
		at("evening-end", 0, 20*time.Hour+59*time.Minute),
		at("night", 0, 21*time.Hour),
		untimed("skip", 0),
	}

	got := TimeOfDay(points)

	want := models.TimeOfDayProfile{
		Morning:   models.TimeBucket{Count: 2, Percentage: 28.6},
		Afternoon: models.TimeBucket{Count: 1, Percentage: 14.3},
		Evening:   models.TimeBucket{Count: 2, Percentage: 28.6},
		Night:     models.TimeBucket{Count: 2, Percentage: 28.6},
	}
	assert.Equal(t, want, got)
}

func TestTimeOfDay_NoTimestamps(t *testing.T) {
	assert.Equal(t, models.TimeOfDayProfile{}, TimeOfDay([]models.ClusteredObservation{untimed("a", 0)}))
}
