package stats

import (
	"fmt"
	"sort"

	"github.com/jengzang/geotrace-go/internal/models"
	agg "github.com/jengzang/geotrace-go/internal/stats"
)

// corridorKey identifies a directed cluster transition
type corridorKey struct {
	origin      int
	destination int
}

// Corridors counts directed transitions between distinct clusters.
// Segments touching noise or staying inside one cluster are ignored.
// Output is sorted by descending trip count; ties keep first-seen order.
func Corridors(segments []models.Segment) []models.CorridorRecord {
	distances := make(map[corridorKey][]float64)
	var order []corridorKey

	for _, seg := range segments {
		from, to := seg.From.ClusterID, seg.To.ClusterID
		if from == models.NoiseClusterID || to == models.NoiseClusterID || from == to {
			continue
		}

		key := corridorKey{origin: from, destination: to}
		if _, seen := distances[key]; !seen {
			order = append(order, key)
		}
		distances[key] = append(distances[key], seg.DistanceKm)
	}

	records := make([]models.CorridorRecord, 0, len(order))
	for _, key := range order {
		d := distances[key]
		records = append(records, models.CorridorRecord{
			Corridor:           fmt.Sprintf("%d -> %d", key.origin, key.destination),
			OriginCluster:      key.origin,
			DestinationCluster: key.destination,
			TripCount:          len(d),
			AvgDistanceKm:      agg.Round(agg.Mean(d), 4),
			MinDistanceKm:      agg.Round(agg.Min(d), 4),
			MaxDistanceKm:      agg.Round(agg.Max(d), 4),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TripCount > records[j].TripCount
	})

	return records
}
