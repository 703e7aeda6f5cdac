package models

import "time"

// ObservationFilter represents filter parameters for querying stored observations
type ObservationFilter struct {
	BatchID      string `form:"-"`
	HasTimestamp *bool  `form:"hasTimestamp"`
	HasLocation  *bool  `form:"hasLocation"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"` // 0 returns the whole batch
}

// BatchInfo describes a stored observation batch
type BatchInfo struct {
	BatchID          string    `json:"batch_id"`
	ObservationCount int64     `json:"observation_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// ObservationsResponse represents a paginated observation listing
type ObservationsResponse struct {
	Data       []Observation `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// BatchCreated is returned after a batch has been stored
type BatchCreated struct {
	BatchID string `json:"batch_id"`
	Stored  int    `json:"stored"`
}
