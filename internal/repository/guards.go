package repository

import (
	"context"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
)

func (r *Repository) GetGuardByID(organizationID, id int64) (*domain.Guard, error) {
	query := `
		SELECT full_name, document_number, email, phone, status, blacklisted, current_installation_id, created_at, version
		FROM guards WHERE organization_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	guard := &domain.Guard{
		ID:             id,
		OrganizationID: organizationID,
	}

	dst := []any{&guard.FullName, &guard.DocumentNumber, &guard.Email, &guard.Phone, &guard.Status, &guard.Blacklisted, &guard.CurrentInstallationID, &guard.CreatedAt, &guard.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, organizationID, id).Scan(dst...); err != nil {
		return nil, err
	}

	return guard, nil
}

func (r *Repository) GetAllGuards(organizationID int64) ([]*domain.Guard, error) {
	query := `
		SELECT id, full_name, document_number, email, phone, status, blacklisted, current_installation_id, created_at, version
		FROM guards WHERE organization_id = $1
		ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guards := make([]*domain.Guard, 0)
	for rows.Next() {
		guard := &domain.Guard{OrganizationID: organizationID}
		dst := []any{&guard.ID, &guard.FullName, &guard.DocumentNumber, &guard.Email, &guard.Phone, &guard.Status, &guard.Blacklisted, &guard.CurrentInstallationID, &guard.CreatedAt, &guard.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		guards = append(guards, guard)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return guards, nil
}

func (r *Repository) CreateGuard(guard *domain.Guard) error {
	query := `
		INSERT INTO guards (organization_id, full_name, document_number, email, phone, status, blacklisted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{guard.OrganizationID, guard.FullName, guard.DocumentNumber, guard.Email, guard.Phone, guard.Status, guard.Blacklisted}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&guard.ID, &guard.CreatedAt, &guard.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateGuard(guard *domain.Guard) error {
	query := `
		UPDATE guards
		SET
			full_name = $1,
			email = $2,
			phone = $3,
			status = $4,
			blacklisted = $5,
			version = version + 1
		WHERE organization_id = $6 AND id = $7 AND version = $8
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{guard.FullName, guard.Email, guard.Phone, guard.Status, guard.Blacklisted, guard.OrganizationID, guard.ID, guard.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&guard.CreatedAt, &guard.Version); err != nil {
		return err
	}

	return nil
}
