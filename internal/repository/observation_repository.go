package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jengzang/geotrace-go/internal/database"
	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/timeutil"
)

// insertChunkSize keeps multi-row inserts well under sqlite's bound parameter limit
const insertChunkSize = 500

// createdAtLayout is how created_at is stored
const createdAtLayout = "2006-01-02 15:04:05"

// psql builds sqlite statements with ? placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ObservationRepository handles database operations for observation batches
type ObservationRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{db: db, now: time.Now}
}

// InsertBatch stores observations under batchID in input order.
// An observation whose id already exists in the batch replaces the stored one.
func (r *ObservationRepository) InsertBatch(ctx context.Context, batchID string, observations []models.Observation) error {
	createdAt := r.now().UTC().Format(createdAtLayout)

	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		for start := 0; start < len(observations); start += insertChunkSize {
			end := min(start+insertChunkSize, len(observations))

			insert := psql.Insert("observations").
				Options("OR REPLACE").
				Columns("batch_id", "seq", "image_id", "lat", "lon", "timestamp", "created_at")
			for i := start; i < end; i++ {
				o := observations[i]
				insert = insert.Values(batchID, i, o.ID, nullFloat(o.Lat), nullFloat(o.Lon), nullString(o.Timestamp), createdAt)
			}

			query, args, err := insert.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to insert observations: %w", err)
			}
		}

		log.Printf("[ObservationRepository] Stored %d observations in batch %s", len(observations), batchID)
		return nil
	})
}

// ListByBatch retrieves a batch's observations in stored order with filtering and pagination
func (r *ObservationRepository) ListByBatch(ctx context.Context, filter models.ObservationFilter) ([]models.Observation, int64, error) {
	where := sq.And{sq.Eq{"batch_id": filter.BatchID}}
	if filter.HasTimestamp != nil {
		if *filter.HasTimestamp {
			where = append(where, sq.NotEq{"timestamp": nil})
		} else {
			where = append(where, sq.Eq{"timestamp": nil})
		}
	}
	if filter.HasLocation != nil {
		if *filter.HasLocation {
			where = append(where, sq.NotEq{"lat": nil}, sq.NotEq{"lon": nil})
		} else {
			where = append(where, sq.Or{sq.Eq{"lat": nil}, sq.Eq{"lon": nil}})
		}
	}

	// Get total count
	countQuery, countArgs, err := psql.Select("COUNT(*)").From("observations").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count observations: %w", err)
	}

	sel := psql.Select("image_id", "lat", "lon", "timestamp").
		From("observations").
		Where(where).
		OrderBy("seq ASC")

	// Add pagination
	if filter.PageSize > 0 {
		if filter.Page < 1 {
			filter.Page = 1
		}
		sel = sel.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	observations := []models.Observation{}
	for rows.Next() {
		var (
			o        models.Observation
			lat, lon sql.NullFloat64
			ts       sql.NullString
		)
		if err := rows.Scan(&o.ID, &lat, &lon, &ts); err != nil {
			return nil, 0, fmt.Errorf("failed to scan observation: %w", err)
		}
		if lat.Valid {
			o.Lat = &lat.Float64
		}
		if lon.Valid {
			o.Lon = &lon.Float64
		}
		o.Timestamp = ts.String
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate observations: %w", err)
	}

	return observations, total, nil
}

// CountByBatch returns the number of observations stored under batchID
func (r *ObservationRepository) CountByBatch(ctx context.Context, batchID string) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").From("observations").Where(sq.Eq{"batch_id": batchID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count batch: %w", err)
	}
	return count, nil
}

// ListBatches returns every stored batch, newest first
func (r *ObservationRepository) ListBatches(ctx context.Context) ([]models.BatchInfo, error) {
	query, args, err := psql.Select("batch_id", "COUNT(*)", "MIN(created_at)").
		From("observations").
		GroupBy("batch_id").
		OrderBy("MIN(created_at) DESC", "batch_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	batches := []models.BatchInfo{}
	for rows.Next() {
		var (
			info      models.BatchInfo
			createdAt string
		)
		if err := rows.Scan(&info.BatchID, &info.ObservationCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		if t, ok := timeutil.ParseTimestamp(createdAt); ok {
			info.CreatedAt = t
		}
		batches = append(batches, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batches: %w", err)
	}

	return batches, nil
}

// DeleteBatch removes a batch and returns the number of deleted observations
func (r *ObservationRepository) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	query, args, err := psql.Delete("observations").Where(sq.Eq{"batch_id": batchID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete batch: %w", err)
	}
	return result.RowsAffected()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
