package stats

import (
	"sort"
	"time"

	"github.com/jengzang/geotrace-go/internal/models"
	agg "github.com/jengzang/geotrace-go/internal/stats"
	"github.com/jengzang/geotrace-go/internal/timeutil"
)

// DefaultVisitGapSeconds ends a visit when consecutive timestamps at a cluster are further apart
const DefaultVisitGapSeconds = 3600.0

// visit is one uninterrupted stay at a cluster
type visit struct {
	start time.Time
	end   time.Time
}

// Dwell aggregates time spent per cluster.
// Only clustered observations with a parsed timestamp contribute; a gap longer than
// visitGapSeconds between consecutive timestamps starts a new visit.
// Records are ordered by ascending cluster id.
func Dwell(points []models.ClusteredObservation, visitGapSeconds float64) []models.DwellRecord {
	byCluster := make(map[int][]time.Time)
	for _, p := range points {
		if p.IsNoise() || !p.HasTime() {
			continue
		}
		byCluster[p.ClusterID] = append(byCluster[p.ClusterID], *p.Time)
	}

	clusterIDs := make([]int, 0, len(byCluster))
	for id := range byCluster {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Ints(clusterIDs)

	records := make([]models.DwellRecord, 0, len(clusterIDs))
	for _, id := range clusterIDs {
		times := byCluster[id]
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

		visits := splitVisits(times, visitGapSeconds)
		total := 0.0
		for _, v := range visits {
			total += v.end.Sub(v.start).Seconds()
		}
		total = agg.Round(total, 1)

		records = append(records, models.DwellRecord{
			ClusterID:         id,
			TotalDwellSeconds: total,
			TotalDwellHuman:   timeutil.FormatDuration(total),
			VisitCount:        len(visits),
			PointCount:        len(times),
			FirstSeen:         timeutil.FormatISO(times[0]),
			LastSeen:          timeutil.FormatISO(times[len(times)-1]),
		})
	}

	return records
}

// splitVisits groups sorted timestamps into visits
func splitVisits(times []time.Time, gapSeconds float64) []visit {
	if len(times) == 0 {
		return nil
	}

	var visits []visit
	current := visit{start: times[0], end: times[0]}
	for _, t := range times[1:] {
		if t.Sub(current.end).Seconds() > gapSeconds {
			visits = append(visits, current)
			current = visit{start: t, end: t}
			continue
		}
		current.end = t
	}
	visits = append(visits, current)

	return visits
}
