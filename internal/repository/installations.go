package repository

import (
	"context"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
)

func (r *Repository) GetInstallationByID(organizationID, id int64) (*domain.Installation, error) {
	query := `
		SELECT name, account, address, created_at, version
		FROM installations WHERE organization_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	installation := &domain.Installation{
		ID:             id,
		OrganizationID: organizationID,
	}

	dst := []any{&installation.Name, &installation.Account, &installation.Address, &installation.CreatedAt, &installation.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, organizationID, id).Scan(dst...); err != nil {
		return nil, err
	}

	return installation, nil
}

func (r *Repository) GetAllInstallations(organizationID int64) ([]*domain.Installation, error) {
	query := `
		SELECT id, name, account, address, created_at, version
		FROM installations WHERE organization_id = $1
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	installations := make([]*domain.Installation, 0)
	for rows.Next() {
		installation := &domain.Installation{OrganizationID: organizationID}
		dst := []any{&installation.ID, &installation.Name, &installation.Account, &installation.Address, &installation.CreatedAt, &installation.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		installations = append(installations, installation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return installations, nil
}

func (r *Repository) CreateInstallation(installation *domain.Installation) error {
	query := `
		INSERT INTO installations (organization_id, name, account, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{installation.OrganizationID, installation.Name, installation.Account, installation.Address}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&installation.ID, &installation.CreatedAt, &installation.Version); err != nil {
		return err
	}

	return nil
}
