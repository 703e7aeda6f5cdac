package service

import "errors"

// Service errors
var (
	ErrEmptyBatch     = errors.New("batch contains no observations")
	ErrBatchTooLarge  = errors.New("batch exceeds the maximum size")
	ErrDuplicateID    = errors.New("duplicate observation id in batch")
	ErrBatchNotFound  = errors.New("batch not found")
	ErrReportNotFound = errors.New("report not found")
)
