package clustering

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/spatial"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClusterer(t *testing.T, p Params) *Clusterer {
	t.Helper()
	c, err := NewClusterer(p)
	require.NoError(t, err)
	return c
}

// kmNorth returns the latitude offset in degrees for a northward move of km
func kmNorth(km float64) float64 {
	return km / spatial.EarthRadiusKm * 180 / math.Pi
}

func TestNewClusterer_RejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"zero eps", Params{EpsKm: 0, MinSamples: 3}},
		{"negative eps", Params{EpsKm: -1, MinSamples: 3}},
		{"nan eps", Params{EpsKm: math.NaN(), MinSamples: 3}},
		{"zero min samples", Params{EpsKm: 0.5, MinSamples: 0}},
		{"negative min samples", Params{EpsKm: 0.5, MinSamples: -2}},
		{"negative workers", Params{EpsKm: 0.5, MinSamples: 3, Workers: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClusterer(tt.params)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, ErrInvalidParams))
		})
	}
}

func TestCluster_ThreeNearbyPointsFormOneCluster(t *testing.T) {
	c := newTestClusterer(t, DefaultParams())

	res := c.Cluster([]models.Observation{
		models.NewObservation("a", 17.3850, 78.4867, ""),
		models.NewObservation("b", 17.3851, 78.4868, ""),
		models.NewObservation("c", 17.3849, 78.4866, ""),
	})

	require.Len(t, res.Clusters, 1)
	assert.Equal(t, 0, res.NoisePoints)
	assert.Equal(t, 3, res.Clusters[0].VisitCount)
	assert.Equal(t, 0, res.Clusters[0].ClusterID)
	assert.Equal(t, "Cluster 0", res.Clusters[0].Label)
	assert.InDelta(t, 17.385, res.Clusters[0].CentroidLat, 1e-9)
	assert.InDelta(t, 78.4867, res.Clusters[0].CentroidLon, 1e-9)
	assert.Zero(t, res.MovementRadiusKm)
	for _, p := range res.Points {
		assert.Equal(t, 0, p.ClusterID)
	}
}

func TestCluster_FewerThanMinSamplesIsAllNoise(t *testing.T) {
	c := newTestClusterer(t, DefaultParams())

	res := c.Cluster([]models.Observation{
		models.NewObservation("a", 17.3850, 78.4867, ""),
		models.NewObservation("b", 17.3851, 78.4868, ""),
	})

	assert.Empty(t, res.Clusters)
	assert.Equal(t, 2, res.NoisePoints)
	for _, p := range res.Points {
		assert.True(t, p.IsNoise())
	}
}

func TestCluster_EmptyInput(t *testing.T) {
	c := newTestClusterer(t, DefaultParams())

	for _, in := range [][]models.Observation{nil, {}} {
		res := c.Cluster(in)
		assert.Empty(t, res.Points)
		assert.Empty(t, res.Clusters)
		assert.Empty(t, res.Exclusions)
		assert.NotNil(t, res.Clusters)
		assert.Zero(t, res.NoisePoints)
		assert.Zero(t, res.MovementRadiusKm)
	}
}

func TestCluster_ExcludesInvalidCoordinates(t *testing.T) {
	c := newTestClusterer(t, DefaultParams())

	lat := 10.0
	res := c.Cluster([]models.Observation{
		{ID: "no-lat", Lon: &lat},
		{ID: "no-lon", Lat: &lat},
		models.NewObservation("bad-lat", 91, 0, ""),
		models.NewObservation("bad-lon", 0, 181, ""),
		models.NewObservation("nan", math.NaN(), 0, ""),
		models.NewObservation("ok", 10, 10, ""),
	})

	want := []models.Exclusion{
		{ID: "no-lat", Reason: models.ExclusionMissingCoordinates},
		{ID: "no-lon", Reason: models.ExclusionMissingCoordinates},
		{ID: "bad-lat", Reason: models.ExclusionOutOfRange},
		{ID: "bad-lon", Reason: models.ExclusionOutOfRange},
		{ID: "nan", Reason: models.ExclusionOutOfRange},
	}
	if diff := cmp.Diff(want, res.Exclusions); diff != "" {
		t.Errorf("exclusions mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, res.Points, 1)
	assert.Equal(t, "ok", res.Points[0].ID)
}

func TestCluster_ParsesTimestamps(t *testing.T) {
	c := newTestClusterer(t, DefaultParams())

	res := c.Cluster([]models.Observation{
		models.NewObservation("exif", 1, 1, "2024:03:01 08:00:00"),
		models.NewObservation("garbage", 1, 1, "yesterday-ish"),
		models.NewObservation("none", 1, 1, ""),
	})

	require.Len(t, res.Points, 3)
	assert.True(t, res.Points[0].HasTime())
	assert.False(t, res.Points[1].HasTime())
	assert.False(t, res.Points[2].HasTime())
	assert.Equal(t, "yesterday-ish", res.Points[1].Timestamp)
	assert.Equal(t, 1, res.UnparseableTimestamps)
}

func TestCluster_ChainsCoresAtEpsDistance(t *testing.T) {
	c := newTestClusterer(t, DefaultParams())

	// a and b are eps apart; m sits halfway so every point has three neighbours
	step := kmNorth(0.25)
	res := c.Cluster([]models.Observation{
		models.NewObservation("a", 0, 0, ""),
		models.NewObservation("m", step, 0, ""),
		models.NewObservation("b", 2*step, 0, ""),
	})

	require.Len(t, res.Clusters, 1)
	assert.Equal(t, res.Points[0].ClusterID, res.Points[2].ClusterID)
	assert.Equal(t, 0, res.NoisePoints)
}

func TestCluster_SeparatesDistantPlaces(t *testing.T) {
	c := newTestClusterer(t, DefaultParams())

	var obs []models.Observation
	add := func(prefix string, lat, lon float64) {
		for i := 0; i < 4; i++ {
			obs = append(obs, models.NewObservation(prefix+string(rune('0'+i)), lat+float64(i)*0.0001, lon, ""))
		}
	}
	add("home", 17.3850, 78.4867)
	add("work", 17.4500, 78.3800)
	obs = append(obs, models.NewObservation("lonely", 18.0, 79.0, ""))

	res := c.Cluster(obs)

	require.Len(t, res.Clusters, 2)
	assert.Equal(t, 1, res.NoisePoints)
	assert.Equal(t, 0, res.Points[0].ClusterID, "first discovered place gets id 0")
	assert.Equal(t, 1, res.Points[4].ClusterID)
	assert.Equal(t, models.NoiseClusterID, res.Points[8].ClusterID)

	home := spatial.Point{Lat: res.Clusters[0].CentroidLat, Lon: res.Clusters[0].CentroidLon}
	work := spatial.Point{Lat: res.Clusters[1].CentroidLat, Lon: res.Clusters[1].CentroidLon}
	assert.InDelta(t, spatial.DistanceKm(home, work), res.MovementRadiusKm, 0.006)
}

func TestCluster_BorderPointJoinsFirstExpandingCluster(t *testing.T) {
	c := newTestClusterer(t, Params{EpsKm: 0.5, MinSamples: 4})

	// "border" reaches one core from each group but has only three neighbours itself
	res := c.Cluster([]models.Observation{
		models.NewObservation("w1", kmNorth(-0.40), 0, ""),
		models.NewObservation("w2", kmNorth(-0.55), 0, ""),
		models.NewObservation("w3", kmNorth(-0.60), 0, ""),
		models.NewObservation("w4", kmNorth(-0.65), 0, ""),
		models.NewObservation("border", 0, 0, ""),
		models.NewObservation("e1", kmNorth(0.40), 0, ""),
		models.NewObservation("e2", kmNorth(0.55), 0, ""),
		models.NewObservation("e3", kmNorth(0.60), 0, ""),
		models.NewObservation("e4", kmNorth(0.65), 0, ""),
	})

	require.Len(t, res.Clusters, 2)
	assert.Equal(t, 0, res.Points[4].ClusterID)
	assert.Equal(t, 5, res.Clusters[0].VisitCount)
	assert.Equal(t, 4, res.Clusters[1].VisitCount)
	assert.Zero(t, res.NoisePoints)
}

func randomBatch(rng *rand.Rand, n int) []models.Observation {
	centres := []spatial.Point{{Lat: 17.385, Lon: 78.4867}, {Lat: 17.41, Lon: 78.45}, {Lat: 17.30, Lon: 78.55}}
	obs := make([]models.Observation, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('A'+i%26)) + string(rune('a'+(i/26)%26)) + string(rune('0'+i/676))
		switch {
		case i%17 == 0:
			obs = append(obs, models.Observation{ID: id})
		case i%5 == 0:
			obs = append(obs, models.NewObservation(id, 17+rng.Float64(), 78+rng.Float64(), ""))
		default:
			ctr := centres[i%len(centres)]
			obs = append(obs, models.NewObservation(id,
				ctr.Lat+(rng.Float64()-0.5)*0.006,
				ctr.Lon+(rng.Float64()-0.5)*0.006, ""))
		}
	}
	return obs
}

func TestCluster_PreservesIdsAndVisitCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	obs := randomBatch(rng, 400)

	res := newTestClusterer(t, DefaultParams()).Cluster(obs)

	var wantIDs []string
	for _, o := range obs {
		if o.Lat != nil && o.Lon != nil {
			wantIDs = append(wantIDs, o.ID)
		}
	}
	var gotIDs []string
	counts := map[int]int{}
	for _, p := range res.Points {
		gotIDs = append(gotIDs, p.ID)
		counts[p.ClusterID]++
	}
	sort.Strings(wantIDs)
	sort.Strings(gotIDs)
	assert.Equal(t, wantIDs, gotIDs)
	assert.Equal(t, len(obs)-len(wantIDs), len(res.Exclusions))

	for i, cl := range res.Clusters {
		assert.Equal(t, i, cl.ClusterID)
		assert.Equal(t, counts[cl.ClusterID], cl.VisitCount)
	}
	assert.Equal(t, counts[models.NoiseClusterID], res.NoisePoints)
}

func TestCluster_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	obs := randomBatch(rng, 600)

	seq := newTestClusterer(t, Params{EpsKm: 0.5, MinSamples: 3, Workers: 1}).Cluster(obs)
	par := newTestClusterer(t, Params{EpsKm: 0.5, MinSamples: 3, Workers: 8}).Cluster(obs)

	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel clustering differs (-seq +par):\n%s", diff)
	}
}
