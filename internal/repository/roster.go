package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
	"github.com/serviguard/roster/backend/internal/roster"
)

type PaintSeriesParams struct {
	OrganizationID  int64
	Post            *domain.Post
	SlotNumber      int32
	Pattern         roster.Pattern
	Window          roster.MonthWindow
	Rotation        *roster.Rotation
	CounterpartPost *domain.Post // required when Rotation is set
}

type PaintSeriesResult struct {
	Series           *domain.Series
	CellsPainted     int
	CounterpartCells int
}

// PaintSeries projects the pattern onto the slot's cells for the month
// window and records the pattern as the slot's active series, all in one
// transaction. Cells are written only for days the post operates. Work
// cells receive the slot's currently assigned guard; for a rotating pair
// the counterpart slot is painted with the complementary leg in the same
// transaction so the pair never drifts.
func (r *Repository) PaintSeries(params PaintSeriesParams) (*PaintSeriesResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	guardID, err := activeGuardForSlot(ctx, tx, params.OrganizationID, params.Post.ID, params.SlotNumber)
	if err != nil {
		return nil, err
	}

	series := &domain.Series{
		OrganizationID: params.OrganizationID,
		PostID:         params.Post.ID,
		SlotNumber:     params.SlotNumber,
		PatternCode:    params.Pattern.Code,
		WorkDays:       params.Pattern.WorkDays,
		RestDays:       params.Pattern.RestDays,
		StartPosition:  params.Pattern.StartPosition,
		StartDate:      roster.DateOnly(params.Pattern.StartDate),
		GuardID:        guardID,
	}
	if params.Rotation != nil {
		series.IsRotating = true
		series.CounterpartPostID = &params.Rotation.CounterpartPostID
		series.CounterpartSlot = &params.Rotation.CounterpartSlot
		series.StartShift = params.Rotation.StartShift
	}
	if err := upsertSeries(ctx, tx, series); err != nil {
		return nil, err
	}

	primary, counterpart := params.Pattern.Project(params.Window, params.Rotation)
	primary = operatingCells(params.Post, primary)

	if err := upsertProjectedCells(ctx, tx, params.OrganizationID, params.Post.ID, params.SlotNumber, primary, guardID); err != nil {
		return nil, err
	}

	result := &PaintSeriesResult{Series: series, CellsPainted: len(primary)}

	if params.Rotation != nil {
		counterpart = operatingCells(params.CounterpartPost, counterpart)

		counterpartGuard, err := activeGuardForSlot(ctx, tx, params.OrganizationID, params.Rotation.CounterpartPostID, params.Rotation.CounterpartSlot)
		if err != nil {
			return nil, err
		}
		if err := upsertProjectedCells(ctx, tx, params.OrganizationID, params.Rotation.CounterpartPostID, params.Rotation.CounterpartSlot, counterpart, counterpartGuard); err != nil {
			return nil, err
		}
		result.CounterpartCells = len(counterpart)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

// operatingCells keeps only the days the post actually operates, so a
// projection never mints cells outside the weekday mask or the active
// window.
func operatingCells(post *domain.Post, cells []roster.ProjectedCell) []roster.ProjectedCell {
	kept := make([]roster.ProjectedCell, 0, len(cells))
	for _, cell := range cells {
		if post.OperatesOn(cell.Day) {
			kept = append(kept, cell)
		}
	}
	return kept
}

// cellArrays flattens projected cells into the parallel arrays the bulk
// upsert statement unnests.
func cellArrays(cells []roster.ProjectedCell) (days, codes []string) {
	days = make([]string, len(cells))
	codes = make([]string, len(cells))
	for i, cell := range cells {
		days[i] = cell.Day.Format(time.DateOnly)
		codes[i] = cell.Code
	}
	return days, codes
}

// upsertProjectedCells writes one month of computed cells in a single
// statement. Repainting the same range with the same pattern rewrites
// identical values, so re-runs are safe. The planned-guard reference is
// written only on work cells and only when the slot has a guard;
// otherwise whatever reference a cell already carries is preserved.
func upsertProjectedCells(ctx context.Context, tx *sql.Tx, organizationID, postID int64, slotNumber int32, cells []roster.ProjectedCell, guardID *int64) error {
	if len(cells) == 0 {
		return nil
	}

	query := `
		INSERT INTO roster_cells (organization_id, post_id, slot_number, day, shift_code, planned_guard_id)
		SELECT $1, $2, $3, d.day::date, d.code,
			CASE WHEN $6::bigint IS NOT NULL AND d.code IN ('work', 'day', 'night') THEN $6::bigint END
		FROM unnest($4::text[], $5::text[]) AS d(day, code)
		ON CONFLICT (organization_id, post_id, slot_number, day) DO UPDATE
		SET
			shift_code = EXCLUDED.shift_code,
			planned_guard_id = CASE
				WHEN $6::bigint IS NOT NULL AND EXCLUDED.shift_code IN ('work', 'day', 'night') THEN $6::bigint
				ELSE roster_cells.planned_guard_id
			END,
			updated_at = NOW()
	`

	days, codes := cellArrays(cells)
	_, err := tx.ExecContext(ctx, query, organizationID, postID, slotNumber, days, codes, guardID)
	return err
}

type GenerateGridResult struct {
	PostsProcessed int   `json:"postsProcessed"`
	CellsCreated   int64 `json:"cellsCreated"`
	CellsRepainted int64 `json:"cellsRepainted"`
}

// GenerateGrid makes sure every cell of the installation's active posts
// exists for the month. Without overwrite it only fills gaps with
// unplanned cells; with overwrite each slot that has an active series is
// repainted from it. Assignments are never created or closed here.
func (r *Repository) GenerateGrid(organizationID, installationID int64, window roster.MonthWindow, overwrite bool) (*GenerateGridResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	posts, err := r.GetActivePostsForInstallation(organizationID, installationID, window.First(), window.Last())
	if err != nil {
		return nil, err
	}

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result := &GenerateGridResult{PostsProcessed: len(posts)}

	postIndex := make(map[int64]*domain.Post, len(posts))
	for _, post := range posts {
		postIndex[post.ID] = post
	}

	for _, post := range posts {
		for slot := int32(1); slot <= post.RequiredGuards; slot++ {
			series, err := getSeriesBySlot(ctx, tx, organizationID, post.ID, slot)
			if err != nil && err != sql.ErrNoRows {
				return nil, err
			}

			if overwrite && series != nil {
				pattern := roster.Pattern{
					Code:          series.PatternCode,
					WorkDays:      series.WorkDays,
					RestDays:      series.RestDays,
					StartPosition: series.StartPosition,
					StartDate:     series.StartDate,
				}
				var rotation *roster.Rotation
				if series.IsRotating && series.CounterpartPostID != nil && series.CounterpartSlot != nil {
					rotation = &roster.Rotation{
						CounterpartPostID: *series.CounterpartPostID,
						CounterpartSlot:   *series.CounterpartSlot,
						StartShift:        series.StartShift,
					}
				}

				primary, counterpart := pattern.Project(window, rotation)
				primary = operatingCells(post, primary)
				if err := upsertProjectedCells(ctx, tx, organizationID, post.ID, slot, primary, series.GuardID); err != nil {
					return nil, err
				}
				result.CellsRepainted += int64(len(primary))

				// rotating pairs repaint their counterpart too, exactly
				// as paintSeries would
				if rotation != nil {
					counterpartPost := postIndex[rotation.CounterpartPostID]
					if counterpartPost == nil {
						// the pair may span installations
						counterpartPost, err = r.GetPostByID(organizationID, rotation.CounterpartPostID)
						if err != nil {
							return nil, err
						}
						postIndex[rotation.CounterpartPostID] = counterpartPost
					}
					counterpart = operatingCells(counterpartPost, counterpart)

					counterpartGuard, err := activeGuardForSlot(ctx, tx, organizationID, rotation.CounterpartPostID, rotation.CounterpartSlot)
					if err != nil {
						return nil, err
					}
					if err := upsertProjectedCells(ctx, tx, organizationID, rotation.CounterpartPostID, rotation.CounterpartSlot, counterpart, counterpartGuard); err != nil {
						return nil, err
					}
					result.CellsRepainted += int64(len(counterpart))
				}
				continue
			}

			created, err := fillMissingCells(ctx, tx, organizationID, post, slot, window)
			if err != nil {
				return nil, err
			}
			result.CellsCreated += created
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

// fillMissingCells inserts an unplanned cell for every operating day of
// the month that does not have one yet, as one bulk statement. Existing
// cells are left alone.
func fillMissingCells(ctx context.Context, tx *sql.Tx, organizationID int64, post *domain.Post, slotNumber int32, window roster.MonthWindow) (int64, error) {
	days := make([]string, 0, 31)
	for _, day := range window.Days() {
		if post.OperatesOn(day) {
			days = append(days, day.Format(time.DateOnly))
		}
	}
	if len(days) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO roster_cells (organization_id, post_id, slot_number, day, shift_code)
		SELECT $1, $2, $3, d::date, ''
		FROM unnest($4::text[]) AS d
		ON CONFLICT (organization_id, post_id, slot_number, day) DO NOTHING
	`

	res, err := tx.ExecContext(ctx, query, organizationID, post.ID, slotNumber, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpsertCell writes a single cell as given, including an explicit
// planned-guard reference or its absence. This is the manual-correction
// path (vacations, leaves, permits, notes).
func (r *Repository) UpsertCell(cell *domain.RosterCell) error {
	query := `
		INSERT INTO roster_cells (organization_id, post_id, slot_number, day, shift_code, planned_guard_id, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (organization_id, post_id, slot_number, day) DO UPDATE
		SET
			shift_code = EXCLUDED.shift_code,
			planned_guard_id = EXCLUDED.planned_guard_id,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		cell.OrganizationID,
		cell.PostID,
		cell.SlotNumber,
		cell.Day,
		cell.ShiftCode,
		cell.PlannedGuardID,
		cell.Status,
		cell.Notes,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&cell.UpdatedAt)
}

// GetMonthCells reads one post's cells for a month, every slot, ordered
// for grid rendering.
func (r *Repository) GetMonthCells(organizationID, postID int64, window roster.MonthWindow) ([]*domain.RosterCell, error) {
	query := `
		SELECT slot_number, day, shift_code, planned_guard_id, status, notes, updated_at
		FROM roster_cells
		WHERE organization_id = $1 AND post_id = $2 AND day >= $3 AND day <= $4
		ORDER BY slot_number, day
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, organizationID, postID, window.First(), window.Last())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cells := make([]*domain.RosterCell, 0)
	for rows.Next() {
		cell := &domain.RosterCell{
			OrganizationID: organizationID,
			PostID:         postID,
		}
		dst := []any{&cell.SlotNumber, &cell.Day, &cell.ShiftCode, &cell.PlannedGuardID, &cell.Status, &cell.Notes, &cell.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cells, nil
}
