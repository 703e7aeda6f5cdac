package clustering

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/spatial"
	"github.com/jengzang/geotrace-go/internal/stats"
	"github.com/jengzang/geotrace-go/internal/timeutil"
)

// ErrInvalidParams is returned by NewClusterer for unusable parameters
var ErrInvalidParams = errors.New("invalid clustering parameters")

// Params contains parameters for the DBSCAN clustering algorithm
type Params struct {
	EpsKm      float64 // Neighborhood radius in kilometers
	MinSamples int     // Minimum points, self included, to form a core
	Workers    int     // Parallel neighbor queries; 0 uses GOMAXPROCS
}

// DefaultParams returns the default clustering parameters
func DefaultParams() Params {
	return Params{EpsKm: 0.5, MinSamples: 3}
}

// Result holds the clustering output for one batch
type Result struct {
	Points                []models.ClusteredObservation // Valid observations, input order
	Clusters              []models.Cluster              // Ascending cluster id
	Exclusions            []models.Exclusion
	NoisePoints           int
	MovementRadiusKm      float64 // Largest centroid-to-centroid distance
	UnparseableTimestamps int
}

// Clusterer groups observations into places with DBSCAN over great-circle distance
type Clusterer struct {
	params Params
}

// NewClusterer validates params and builds a clusterer
func NewClusterer(params Params) (*Clusterer, error) {
	if !(params.EpsKm > 0) {
		return nil, fmt.Errorf("%w: eps must be positive, got %v", ErrInvalidParams, params.EpsKm)
	}
	if params.MinSamples < 1 {
		return nil, fmt.Errorf("%w: min samples must be at least 1, got %d", ErrInvalidParams, params.MinSamples)
	}
	if params.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidParams, params.Workers)
	}
	return &Clusterer{params: params}, nil
}

// Params returns the clusterer's parameters
func (c *Clusterer) Params() Params {
	return c.params
}

// Cluster filters, clusters and summarises a batch of observations.
// It never fails: invalid records become exclusions and unparseable timestamps are treated as absent.
func (c *Clusterer) Cluster(observations []models.Observation) *Result {
	res := &Result{
		Points:     make([]models.ClusteredObservation, 0, len(observations)),
		Clusters:   []models.Cluster{},
		Exclusions: []models.Exclusion{},
	}

	points := make([]spatial.Point, 0, len(observations))
	for _, o := range observations {
		if o.Lat == nil || o.Lon == nil {
			res.Exclusions = append(res.Exclusions, models.Exclusion{ID: o.ID, Reason: models.ExclusionMissingCoordinates})
			continue
		}
		p := spatial.Point{Lat: *o.Lat, Lon: *o.Lon}
		if !p.Valid() {
			res.Exclusions = append(res.Exclusions, models.Exclusion{ID: o.ID, Reason: models.ExclusionOutOfRange})
			continue
		}

		co := models.ClusteredObservation{
			ID:        o.ID,
			Lat:       p.Lat,
			Lon:       p.Lon,
			Timestamp: o.Timestamp,
			ClusterID: models.NoiseClusterID,
		}
		if o.Timestamp != "" {
			if t, ok := timeutil.ParseTimestamp(o.Timestamp); ok {
				co.Time = &t
			} else {
				res.UnparseableTimestamps++
			}
		}
		res.Points = append(res.Points, co)
		points = append(points, p)
	}

	if len(points) == 0 {
		return res
	}

	neighbors := c.neighborhoods(points)
	labels, clusterCount := dbscan(neighbors, c.params.MinSamples)

	// Labels are 1-based during expansion; published ids start at 0
	members := make([][]spatial.Point, clusterCount)
	for i, label := range labels {
		if label <= 0 {
			res.NoisePoints++
			continue
		}
		id := label - 1
		res.Points[i].ClusterID = id
		members[id] = append(members[id], points[i])
	}

	centroids := make([]spatial.Point, 0, clusterCount)
	for id, pts := range members {
		center := spatial.Centroid(pts)
		res.Clusters = append(res.Clusters, models.Cluster{
			ClusterID:   id,
			CentroidLat: stats.Round(center.Lat, 6),
			CentroidLon: stats.Round(center.Lon, 6),
			VisitCount:  len(pts),
			RadiusKm:    stats.Round(spatial.RadiusOfGyrationKm(pts), 4),
			Label:       models.ClusterLabel(id),
		})
		centroids = append(centroids, spatial.Point{Lat: stats.Round(center.Lat, 6), Lon: stats.Round(center.Lon, 6)})
	}
	res.MovementRadiusKm = stats.Round(spatial.MaxPairwiseDistanceKm(centroids), 2)

	return res
}

// neighborhoods precomputes every point's eps-neighborhood.
// Each query writes only its own slot, so the fan-out cannot change the result.
func (c *Clusterer) neighborhoods(points []spatial.Point) [][]int {
	idx := spatial.NewCellIndex(points, c.params.EpsKm)
	out := make([][]int, len(points))

	workers := c.params.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(points) < 64 {
		for i := range points {
			out[i] = idx.Within(i, c.params.EpsKm)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(workers)
	chunk := (len(points) + workers - 1) / workers
	for start := 0; start < len(points); start += chunk {
		end := min(start+chunk, len(points))
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = idx.Within(i, c.params.EpsKm)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return out
}

// dbscan labels points from precomputed neighborhoods.
// Labels: 0=unvisited, -1=noise, >0=cluster. Returns labels and the number of clusters.
func dbscan(neighbors [][]int, minSamples int) ([]int, int) {
	labels := make([]int, len(neighbors))
	clusterID := 0

	for i := range neighbors {
		if labels[i] != 0 {
			continue // Already processed
		}
		if len(neighbors[i]) < minSamples {
			labels[i] = -1 // Mark as noise, may become a border point later
			continue
		}

		clusterID++
		expandCluster(neighbors, labels, i, clusterID, minSamples)
	}

	return labels, clusterID
}

// expandCluster grows a cluster from a core point, breadth first
func expandCluster(neighbors [][]int, labels []int, seed, clusterID, minSamples int) {
	labels[seed] = clusterID
	queue := append([]int(nil), neighbors[seed]...)

	for j := 0; j < len(queue); j++ {
		idx := queue[j]

		if labels[idx] == -1 {
			labels[idx] = clusterID // Noise becomes border point
			continue
		}
		if labels[idx] != 0 {
			continue // Claimed earlier, keeps its first cluster
		}

		labels[idx] = clusterID
		if len(neighbors[idx]) >= minSamples {
			queue = append(queue, neighbors[idx]...)
		}
	}
}
