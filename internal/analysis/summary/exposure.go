package summary

import "github.com/jengzang/geotrace-go/internal/models"

// Exposure rationales
const (
	RationaleNoData = "No data"
	RationaleHigh   = "Home/work clusters likely identifiable"
	RationaleMedium = "Some routine patterns visible"
	RationaleLow    = "Limited routine patterns visible"
)

// ExposureInput holds the quantities the exposure score depends on
type ExposureInput struct {
	TotalObservations int // Observations with valid coordinates
	DistinctClusters  int // Non-noise clusters
	NoisePoints       int
}

// Score computes the bounded routine-exposure heuristic.
// The score never decreases when observations or clusters increase, or when noise drops to zero.
func Score(in ExposureInput) models.ExposureScore {
	if in.TotalObservations <= 0 {
		return models.ExposureScore{Score: 0, Label: models.ExposureLow, Rationale: RationaleNoData, BarPct: 0}
	}

	score := 3
	if in.TotalObservations >= 10 {
		score += 2
	}
	if in.DistinctClusters >= 2 {
		score += 2
	}
	if in.DistinctClusters >= 3 {
		score++
	}
	if in.NoisePoints == 0 {
		score++
	}
	score = max(0, min(10, score))

	out := models.ExposureScore{Score: score, BarPct: min(100, score*10)}
	switch {
	case score >= 7:
		out.Label, out.Rationale = models.ExposureHigh, RationaleHigh
	case score >= 4:
		out.Label, out.Rationale = models.ExposureMedium, RationaleMedium
	default:
		out.Label, out.Rationale = models.ExposureLow, RationaleLow
	}
	return out
}
