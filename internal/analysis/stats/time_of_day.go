package stats

import (
	"github.com/jengzang/geotrace-go/internal/models"
	agg "github.com/jengzang/geotrace-go/internal/stats"
)

// TimeOfDay buckets timestamped observations by local wall-clock hour:
// morning 05-12, afternoon 12-17, evening 17-21, night otherwise.
func TimeOfDay(points []models.ClusteredObservation) models.TimeOfDayProfile {
	var morning, afternoon, evening, night, total int

	for _, p := range points {
		if !p.HasTime() {
			continue
		}
		total++

		hour := p.Time.Hour()
		switch {
		case hour >= 5 && hour < 12:
			morning++
		case hour >= 12 && hour < 17:
			afternoon++
		case hour >= 17 && hour < 21:
			evening++
		default:
			night++
		}
	}

	bucket := func(count int) models.TimeBucket {
		pct := 0.0
		if total > 0 {
			pct = agg.Round(float64(count)/float64(total)*100, 1)
		}
		return models.TimeBucket{Count: count, Percentage: pct}
	}

	return models.TimeOfDayProfile{
		Morning:   bucket(morning),
		Afternoon: bucket(afternoon),
		Evening:   bucket(evening),
		Night:     bucket(night),
	}
}
