package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
)

func (r *Repository) GetSeriesBySlot(organizationID, postID int64, slotNumber int32) (*domain.Series, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return getSeriesBySlot(ctx, r.dbpool, organizationID, postID, slotNumber)
}

// querier lets the series lookup run either on the pool or inside a
// transaction script.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getSeriesBySlot(ctx context.Context, q querier, organizationID, postID int64, slotNumber int32) (*domain.Series, error) {
	query := `
		SELECT id, pattern_code, work_days, rest_days, start_position, start_date, is_rotating, counterpart_post_id, counterpart_slot, start_shift, guard_id, created_at, version
		FROM assignment_series
		WHERE organization_id = $1 AND post_id = $2 AND slot_number = $3
	`

	series := &domain.Series{
		OrganizationID: organizationID,
		PostID:         postID,
		SlotNumber:     slotNumber,
	}

	dst := []any{
		&series.ID,
		&series.PatternCode,
		&series.WorkDays,
		&series.RestDays,
		&series.StartPosition,
		&series.StartDate,
		&series.IsRotating,
		&series.CounterpartPostID,
		&series.CounterpartSlot,
		&series.StartShift,
		&series.GuardID,
		&series.CreatedAt,
		&series.Version,
	}
	if err := q.QueryRowContext(ctx, query, organizationID, postID, slotNumber).Scan(dst...); err != nil {
		return nil, err
	}

	return series, nil
}

func upsertSeries(ctx context.Context, tx *sql.Tx, series *domain.Series) error {
	query := `
		INSERT INTO assignment_series (organization_id, post_id, slot_number, pattern_code, work_days, rest_days, start_position, start_date, is_rotating, counterpart_post_id, counterpart_slot, start_shift, guard_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (organization_id, post_id, slot_number) DO UPDATE
		SET
			pattern_code = EXCLUDED.pattern_code,
			work_days = EXCLUDED.work_days,
			rest_days = EXCLUDED.rest_days,
			start_position = EXCLUDED.start_position,
			start_date = EXCLUDED.start_date,
			is_rotating = EXCLUDED.is_rotating,
			counterpart_post_id = EXCLUDED.counterpart_post_id,
			counterpart_slot = EXCLUDED.counterpart_slot,
			start_shift = EXCLUDED.start_shift,
			guard_id = EXCLUDED.guard_id,
			version = assignment_series.version + 1
		RETURNING id, created_at, version
	`

	args := []any{
		series.OrganizationID,
		series.PostID,
		series.SlotNumber,
		series.PatternCode,
		series.WorkDays,
		series.RestDays,
		series.StartPosition,
		series.StartDate,
		series.IsRotating,
		series.CounterpartPostID,
		series.CounterpartSlot,
		series.StartShift,
		series.GuardID,
	}
	return tx.QueryRowContext(ctx, query, args...).Scan(&series.ID, &series.CreatedAt, &series.Version)
}

func activeGuardForSlot(ctx context.Context, tx *sql.Tx, organizationID, postID int64, slotNumber int32) (*int64, error) {
	query := `
		SELECT guard_id FROM assignments
		WHERE organization_id = $1 AND post_id = $2 AND slot_number = $3 AND is_active
	`

	var guardID int64
	if err := tx.QueryRowContext(ctx, query, organizationID, postID, slotNumber).Scan(&guardID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &guardID, nil
}
