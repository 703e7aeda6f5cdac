package models

import "time"

// ReportMeta describes how and when a report was generated
type ReportMeta struct {
	ReportID    string    `json:"report_id"`
	GeneratedBy string    `json:"generated_by"`
	GeneratedAt time.Time `json:"generated_at"`
	Description string    `json:"description"`
	Version     string    `json:"version"`
}

// IntelligenceReport is the movement intelligence document handed to renderers
type IntelligenceReport struct {
	Meta             ReportMeta        `json:"meta"`
	Summary          Summary           `json:"summary"`
	Exposure         ExposureScore     `json:"exposure"`
	MovementSegments []Segment         `json:"movement_segments"`
	ClusterDistances []ClusterDistance `json:"cluster_distances"`
	DwellTimes       []DwellRecord     `json:"dwell_times"`
	TimeOfDayProfile TimeOfDayProfile  `json:"time_of_day_profile"`
	Corridors        []CorridorRecord  `json:"movement_corridors"`
	Routine          RoutineProfile    `json:"routine"`
}
