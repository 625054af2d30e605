package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
	"github.com/serviguard/roster/backend/internal/roster"
)

type AssignParams struct {
	OrganizationID int64
	GuardID        int64
	PostID         int64
	SlotNumber     int32
	InstallationID int64
	StartDate      time.Time
	PreviousEnd    time.Time // closing date for the guard's previous assignment
	Reason         string
	CreatedBy      int64
}

type AssignResult struct {
	Assignment            *domain.Assignment
	ClosedPrevious        *domain.Assignment // guard's previous assignment, now closed
	Displaced             *domain.Assignment // assignment that held the target slot, now closed
	DisplacedGuardCleared bool               // displaced guard lost their current-installation pointer
}

// AssignGuard runs the whole assignment change as one transaction:
// close the guard's previous assignment, displace whoever holds the target
// slot, create the new record, repaint planned-guard references forward,
// repoint the slot's series and sync the guards' current installations.
// Readers never observe a partially applied state; the partial unique
// indexes on active assignments catch any race the row locks miss.
func (r *Repository) AssignGuard(params AssignParams) (*AssignResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result := &AssignResult{}

	// The guard's current assignment, wherever it is.
	prev, err := lockActiveAssignmentByGuard(ctx, tx, params.OrganizationID, params.GuardID)
	if err != nil {
		return nil, err
	}

	// Whoever currently holds the target slot gets displaced.
	displaced, err := lockActiveAssignmentBySlot(ctx, tx, params.OrganizationID, params.PostID, params.SlotNumber, params.GuardID)
	if err != nil {
		return nil, err
	}

	closePrev, closeDisplaced := roster.PlanAssign(domain.Assignment{
		PostID:     params.PostID,
		SlotNumber: params.SlotNumber,
		StartDate:  params.StartDate,
	}, prev, displaced, params.PreviousEnd)

	if prev != nil {
		if err := closeAssignment(ctx, tx, prev, closePrev.EndDate, closePrev.Reason); err != nil {
			return nil, err
		}
		if closePrev.Scrub {
			if err := clearPlannedGuardFrom(ctx, tx, params.OrganizationID, prev.PostID, prev.SlotNumber, prev.GuardID, closePrev.ScrubFrom); err != nil {
				return nil, err
			}
		}
		result.ClosedPrevious = prev
	}

	if displaced != nil {
		if err := closeAssignment(ctx, tx, displaced, closeDisplaced.EndDate, closeDisplaced.Reason); err != nil {
			return nil, err
		}
		if closeDisplaced.Scrub {
			if err := clearPlannedGuardFrom(ctx, tx, params.OrganizationID, params.PostID, params.SlotNumber, displaced.GuardID, closeDisplaced.ScrubFrom); err != nil {
				return nil, err
			}
		}
		result.Displaced = displaced
	}

	assignment := &domain.Assignment{
		OrganizationID: params.OrganizationID,
		GuardID:        params.GuardID,
		PostID:         params.PostID,
		SlotNumber:     params.SlotNumber,
		InstallationID: params.InstallationID,
		StartDate:      params.StartDate,
		IsActive:       true,
		Reason:         params.Reason,
		CreatedBy:      params.CreatedBy,
	}

	query := `
		INSERT INTO assignments (organization_id, guard_id, post_id, slot_number, installation_id, start_date, is_active, reason, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
		RETURNING id, created_at
	`
	args := []any{
		assignment.OrganizationID,
		assignment.GuardID,
		assignment.PostID,
		assignment.SlotNumber,
		assignment.InstallationID,
		assignment.StartDate,
		assignment.Reason,
		assignment.CreatedBy,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &assignment.CreatedAt); err != nil {
		return nil, err
	}
	result.Assignment = assignment

	// Project the new guard onto every work cell from the start date on.
	query = `
		UPDATE roster_cells
		SET planned_guard_id = $1, updated_at = NOW()
		WHERE organization_id = $2 AND post_id = $3 AND slot_number = $4
		  AND day >= $5 AND shift_code IN ('work', 'day', 'night')
	`
	if _, err := tx.ExecContext(ctx, query, params.GuardID, params.OrganizationID, params.PostID, params.SlotNumber, params.StartDate); err != nil {
		return nil, err
	}

	// Repoint the slot's active series, if one has been painted.
	query = `
		UPDATE assignment_series
		SET guard_id = $1, version = version + 1
		WHERE organization_id = $2 AND post_id = $3 AND slot_number = $4
	`
	if _, err := tx.ExecContext(ctx, query, params.GuardID, params.OrganizationID, params.PostID, params.SlotNumber); err != nil {
		return nil, err
	}

	query = `
		UPDATE guards SET current_installation_id = $1, version = version + 1
		WHERE organization_id = $2 AND id = $3
	`
	if _, err := tx.ExecContext(ctx, query, params.InstallationID, params.OrganizationID, params.GuardID); err != nil {
		return nil, err
	}

	if displaced != nil {
		cleared, err := clearInstallationIfIdle(ctx, tx, params.OrganizationID, displaced.GuardID)
		if err != nil {
			return nil, err
		}
		result.DisplacedGuardCleared = cleared
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

type UnassignResult struct {
	Assignment          *domain.Assignment
	InstallationCleared bool
}

// UnassignGuard closes an active assignment, scrubs the guard's planned
// cells from the end date forward and clears the guard's installation
// pointer when no other active assignment remains. Shift codes stay
// untouched.
func (r *Repository) UnassignGuard(organizationID, assignmentID int64, endDate time.Time, reason string) (*UnassignResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT guard_id, post_id, slot_number, installation_id, start_date, reason, created_by, created_at
		FROM assignments
		WHERE organization_id = $1 AND id = $2 AND is_active
		FOR UPDATE
	`

	assignment := &domain.Assignment{
		ID:             assignmentID,
		OrganizationID: organizationID,
		IsActive:       true,
	}
	dst := []any{&assignment.GuardID, &assignment.PostID, &assignment.SlotNumber, &assignment.InstallationID, &assignment.StartDate, &assignment.Reason, &assignment.CreatedBy, &assignment.CreatedAt}
	if err := tx.QueryRowContext(ctx, query, organizationID, assignmentID).Scan(dst...); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, err
	}

	endDate = roster.ClampEndDate(endDate, assignment.StartDate)

	if err := closeAssignment(ctx, tx, assignment, endDate, reason); err != nil {
		return nil, err
	}

	if err := clearPlannedGuardFrom(ctx, tx, organizationID, assignment.PostID, assignment.SlotNumber, assignment.GuardID, endDate); err != nil {
		return nil, err
	}

	// the slot's painted series no longer has a holder
	query = `
		UPDATE assignment_series
		SET guard_id = NULL, version = version + 1
		WHERE organization_id = $1 AND post_id = $2 AND slot_number = $3 AND guard_id = $4
	`
	if _, err := tx.ExecContext(ctx, query, organizationID, assignment.PostID, assignment.SlotNumber, assignment.GuardID); err != nil {
		return nil, err
	}

	cleared, err := clearInstallationIfIdle(ctx, tx, organizationID, assignment.GuardID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &UnassignResult{Assignment: assignment, InstallationCleared: cleared}, nil
}

func lockActiveAssignmentByGuard(ctx context.Context, tx *sql.Tx, organizationID, guardID int64) (*domain.Assignment, error) {
	query := `
		SELECT id, post_id, slot_number, installation_id, start_date, reason, created_by, created_at
		FROM assignments
		WHERE organization_id = $1 AND guard_id = $2 AND is_active
		FOR UPDATE
	`

	assignment := &domain.Assignment{
		OrganizationID: organizationID,
		GuardID:        guardID,
		IsActive:       true,
	}
	dst := []any{&assignment.ID, &assignment.PostID, &assignment.SlotNumber, &assignment.InstallationID, &assignment.StartDate, &assignment.Reason, &assignment.CreatedBy, &assignment.CreatedAt}
	if err := tx.QueryRowContext(ctx, query, organizationID, guardID).Scan(dst...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return assignment, nil
}

func lockActiveAssignmentBySlot(ctx context.Context, tx *sql.Tx, organizationID, postID int64, slotNumber int32, excludeGuardID int64) (*domain.Assignment, error) {
	query := `
		SELECT id, guard_id, installation_id, start_date, reason, created_by, created_at
		FROM assignments
		WHERE organization_id = $1 AND post_id = $2 AND slot_number = $3 AND is_active AND guard_id <> $4
		FOR UPDATE
	`

	assignment := &domain.Assignment{
		OrganizationID: organizationID,
		PostID:         postID,
		SlotNumber:     slotNumber,
		IsActive:       true,
	}
	dst := []any{&assignment.ID, &assignment.GuardID, &assignment.InstallationID, &assignment.StartDate, &assignment.Reason, &assignment.CreatedBy, &assignment.CreatedAt}
	if err := tx.QueryRowContext(ctx, query, organizationID, postID, slotNumber, excludeGuardID).Scan(dst...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return assignment, nil
}

func closeAssignment(ctx context.Context, tx *sql.Tx, assignment *domain.Assignment, endDate time.Time, reason string) error {
	query := `
		UPDATE assignments
		SET is_active = FALSE, end_date = $1, reason = $2
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, query, endDate, reason, assignment.ID); err != nil {
		return err
	}

	assignment.IsActive = false
	assignment.EndDate = &endDate
	assignment.Reason = reason
	return nil
}

// clearPlannedGuardFrom nulls the planned-guard reference on every cell of
// the slot from the given date forward, but only where it still points at
// the departing guard. One bulk statement, shift codes preserved.
func clearPlannedGuardFrom(ctx context.Context, tx *sql.Tx, organizationID, postID int64, slotNumber int32, guardID int64, from time.Time) error {
	query := `
		UPDATE roster_cells
		SET planned_guard_id = NULL, updated_at = NOW()
		WHERE organization_id = $1 AND post_id = $2 AND slot_number = $3
		  AND day >= $4 AND planned_guard_id = $5
	`
	_, err := tx.ExecContext(ctx, query, organizationID, postID, slotNumber, from, guardID)
	return err
}

func clearInstallationIfIdle(ctx context.Context, tx *sql.Tx, organizationID, guardID int64) (bool, error) {
	query := `
		UPDATE guards SET current_installation_id = NULL, version = version + 1
		WHERE organization_id = $1 AND id = $2
		  AND NOT EXISTS (
			SELECT 1 FROM assignments
			WHERE organization_id = $1 AND guard_id = $2 AND is_active
		  )
	`
	res, err := tx.ExecContext(ctx, query, organizationID, guardID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetActiveAssignmentInfoByGuard is the checkActive read: the guard's
// current assignment joined with post and installation summaries.
func (r *Repository) GetActiveAssignmentInfoByGuard(organizationID, guardID int64) (*domain.ActiveAssignmentInfo, error) {
	query := `
		SELECT a.id, a.post_id, p.name, a.slot_number, a.installation_id, i.name, i.account, a.start_date
		FROM assignments a
		JOIN posts p ON p.id = a.post_id
		JOIN installations i ON i.id = a.installation_id
		WHERE a.organization_id = $1 AND a.guard_id = $2 AND a.is_active
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	info := &domain.ActiveAssignmentInfo{}
	dst := []any{&info.AssignmentID, &info.PostID, &info.PostName, &info.SlotNumber, &info.InstallationID, &info.InstallationName, &info.Account, &info.StartDate}
	if err := r.dbpool.QueryRowContext(ctx, query, organizationID, guardID).Scan(dst...); err != nil {
		return nil, err
	}

	return info, nil
}

// ListAssignments is the ledger projection joined with guard, post and
// installation summaries, active records first, newest start date first.
func (r *Repository) ListAssignments(organizationID int64, filters domain.AssignmentFilters) ([]*domain.AssignmentListItem, error) {
	query := `
		SELECT
			a.id,
			a.guard_id,
			a.post_id,
			a.slot_number,
			a.installation_id,
			a.start_date,
			a.end_date,
			a.is_active,
			a.reason,
			a.created_by,
			a.created_at,
			g.full_name,
			p.name,
			i.name,
			i.account
		FROM assignments a
		JOIN guards g ON g.id = a.guard_id
		JOIN posts p ON p.id = a.post_id
		JOIN installations i ON i.id = a.installation_id
		WHERE a.organization_id = $1
		  AND ($2::bigint IS NULL OR a.installation_id = $2)
		  AND ($3::bigint IS NULL OR a.post_id = $3)
		  AND ($4::bigint IS NULL OR a.guard_id = $4)
		  AND (NOT $5 OR a.is_active)
		ORDER BY a.is_active DESC, a.start_date DESC, a.id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, organizationID, filters.InstallationID, filters.PostID, filters.GuardID, filters.ActiveOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.AssignmentListItem, 0)
	for rows.Next() {
		item := &domain.AssignmentListItem{}
		item.OrganizationID = organizationID
		dst := []any{
			&item.ID,
			&item.GuardID,
			&item.PostID,
			&item.SlotNumber,
			&item.InstallationID,
			&item.StartDate,
			&item.EndDate,
			&item.IsActive,
			&item.Reason,
			&item.CreatedBy,
			&item.CreatedAt,
			&item.GuardName,
			&item.PostName,
			&item.InstallationName,
			&item.Account,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
