package stats

import (
	"sort"

	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/spatial"
	agg "github.com/jengzang/geotrace-go/internal/stats"
)

// ClusterDistances returns the centroid distance of every unordered pair of clusters,
// nearest first. Equal distances keep pair generation order.
func ClusterDistances(clusters []models.Cluster) []models.ClusterDistance {
	n := len(clusters)
	out := make([]models.ClusterDistance, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		a := clusters[i]
		for j := i + 1; j < n; j++ {
			b := clusters[j]
			d := spatial.DistanceKm(
				spatial.Point{Lat: a.CentroidLat, Lon: a.CentroidLon},
				spatial.Point{Lat: b.CentroidLat, Lon: b.CentroidLon},
			)
			out = append(out, models.ClusterDistance{
				ClusterA:      a.ClusterID,
				ClusterB:      b.ClusterID,
				ClusterALabel: a.Label,
				ClusterBLabel: b.Label,
				DistanceKm:    agg.Round(d, 4),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})

	return out
}
