package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/stats"
)

// dateLayout renders calendar days in date ranges
const dateLayout = "2006-01-02"

// RoutineInput carries the stage outputs routine inference reads
type RoutineInput struct {
	Points          []models.ClusteredObservation
	Clusters        []models.Cluster
	Dwell           []models.DwellRecord
	TimeOfDay       models.TimeOfDayProfile
	TotalDistanceKm float64
	NoisePoints     int
}

// Routine infers home, work, busiest hour and day, and per-point confidence.
// Ties go to the lower cluster id, or for hours and days to the one seen first.
func Routine(in RoutineInput) models.RoutineProfile {
	r := models.RoutineProfile{
		MostActiveHour:    models.NotAvailable,
		MostActiveDay:     models.NotAvailable,
		DateRange:         models.NotAvailable,
		NightMovementPct:  in.TimeOfDay.Night.Percentage,
		AnomaliesDetected: in.NoisePoints,
		PointConfidence:   confidence(in.Points, in.Clusters),
	}

	clusters := make(map[int]models.Cluster, len(in.Clusters))
	for _, c := range in.Clusters {
		clusters[c.ClusterID] = c
	}
	dwell := make(map[int]float64, len(in.Dwell))
	for _, d := range in.Dwell {
		dwell[d.ClusterID] = d.TotalDwellSeconds
	}
	place := func(id int) *models.RoutinePlace {
		c, ok := clusters[id]
		label := models.ClusterLabel(id)
		if ok && c.Label != "" {
			label = c.Label
		}
		return &models.RoutinePlace{
			ClusterID:         id,
			Label:             label,
			Center:            [2]float64{c.CentroidLat, c.CentroidLon},
			Visits:            c.VisitCount,
			TotalDwellSeconds: dwell[id],
		}
	}

	ranked := make([]models.DwellRecord, len(in.Dwell))
	copy(ranked, in.Dwell)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalDwellSeconds != ranked[j].TotalDwellSeconds {
			return ranked[i].TotalDwellSeconds > ranked[j].TotalDwellSeconds
		}
		return ranked[i].ClusterID < ranked[j].ClusterID
	})
	if len(ranked) > 0 {
		r.InferredHome = place(ranked[0].ClusterID)
	}
	if len(ranked) > 1 {
		r.InferredWork = place(ranked[1].ClusterID)
	}

	if top, ok := mostVisited(in.Clusters); ok {
		r.MostVisitedPlace = place(top.ClusterID)
	}

	timestamped := make([]models.ClusteredObservation, 0, len(in.Points))
	for _, p := range in.Points {
		if p.HasTime() {
			timestamped = append(timestamped, p)
		}
	}
	sort.SliceStable(timestamped, func(i, j int) bool { return timestamped[i].Time.Before(*timestamped[j].Time) })

	days := 0
	if len(timestamped) > 0 {
		hour := mode(timestamped, func(p models.ClusteredObservation) int { return p.Time.Hour() })
		r.MostActiveHour = fmt.Sprintf("%02d:00 - %02d:59", hour, hour)
		day := mode(timestamped, func(p models.ClusteredObservation) int { return int(p.Time.Weekday()) })
		r.MostActiveDay = time.Weekday(day).String()

		seen := make(map[string]struct{})
		for _, p := range timestamped {
			seen[p.Time.Format(dateLayout)] = struct{}{}
		}
		days = len(seen)
		r.DateRange = fmt.Sprintf("%s - %s",
			timestamped[0].Time.Format(dateLayout), timestamped[len(timestamped)-1].Time.Format(dateLayout))
	}
	r.AvgDailyDistanceKm = stats.Round(in.TotalDistanceKm/float64(max(1, days)), 2)

	return r
}

// mostVisited returns the cluster with the most members
func mostVisited(clusters []models.Cluster) (models.Cluster, bool) {
	var (
		top   models.Cluster
		found bool
	)
	for _, c := range clusters {
		if !found || c.VisitCount > top.VisitCount ||
			(c.VisitCount == top.VisitCount && c.ClusterID < top.ClusterID) {
			top, found = c, true
		}
	}
	return top, found
}

// mode returns the most frequent key over chronologically sorted points,
// preferring the key that occurred first on ties
func mode(points []models.ClusteredObservation, key func(models.ClusteredObservation) int) int {
	counts := make(map[int]int)
	var order []int
	for _, p := range points {
		k := key(p)
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

// confidence grades each clustered point: noise is LOW, members of the most
// visited cluster (or clusters tied with it) are HIGH, other members MEDIUM
func confidence(points []models.ClusteredObservation, clusters []models.Cluster) []models.PointConfidence {
	visits := make(map[int]int, len(clusters))
	top := 0
	for _, c := range clusters {
		visits[c.ClusterID] = c.VisitCount
		top = max(top, c.VisitCount)
	}

	out := make([]models.PointConfidence, 0, len(points))
	for _, p := range points {
		level := models.ConfidenceMedium
		switch {
		case p.IsNoise():
			level = models.ConfidenceLow
		case top > 0 && visits[p.ClusterID] == top:
			level = models.ConfidenceHigh
		}
		out = append(out, models.PointConfidence{ID: p.ID, ClusterID: p.ClusterID, Confidence: level})
	}
	return out
}
