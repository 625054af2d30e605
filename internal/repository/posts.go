package repository

import (
	"context"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
)

func (r *Repository) GetPostByID(organizationID, id int64) (*domain.Post, error) {
	query := `
		SELECT installation_id, name, shift_start, shift_end, weekday_mask, required_guards, active_from, active_until, created_at, version
		FROM posts WHERE organization_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	post := &domain.Post{
		ID:             id,
		OrganizationID: organizationID,
	}

	var mask int32
	dst := []any{&post.InstallationID, &post.Name, &post.ShiftStart, &post.ShiftEnd, &mask, &post.RequiredGuards, &post.ActiveFrom, &post.ActiveUntil, &post.CreatedAt, &post.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, organizationID, id).Scan(dst...); err != nil {
		return nil, err
	}
	post.Weekdays = domain.WeekdaysFromMask(mask)

	return post, nil
}

func (r *Repository) GetAllPosts(organizationID int64, installationID *int64) ([]*domain.Post, error) {
	query := `
		SELECT id, installation_id, name, shift_start, shift_end, weekday_mask, required_guards, active_from, active_until, created_at, version
		FROM posts
		WHERE organization_id = $1 AND ($2::bigint IS NULL OR installation_id = $2)
		ORDER BY installation_id, name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, organizationID, installationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post := &domain.Post{OrganizationID: organizationID}
		var mask int32
		dst := []any{&post.ID, &post.InstallationID, &post.Name, &post.ShiftStart, &post.ShiftEnd, &mask, &post.RequiredGuards, &post.ActiveFrom, &post.ActiveUntil, &post.CreatedAt, &post.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		post.Weekdays = domain.WeekdaysFromMask(mask)
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetActivePostsForInstallation lists posts whose active window overlaps
// the given date range. Used by monthly grid generation.
func (r *Repository) GetActivePostsForInstallation(organizationID, installationID int64, from, until time.Time) ([]*domain.Post, error) {
	query := `
		SELECT id, installation_id, name, shift_start, shift_end, weekday_mask, required_guards, active_from, active_until, created_at, version
		FROM posts
		WHERE organization_id = $1
		  AND installation_id = $2
		  AND active_from <= $4
		  AND (active_until IS NULL OR active_until >= $3)
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, organizationID, installationID, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post := &domain.Post{OrganizationID: organizationID}
		var mask int32
		dst := []any{&post.ID, &post.InstallationID, &post.Name, &post.ShiftStart, &post.ShiftEnd, &mask, &post.RequiredGuards, &post.ActiveFrom, &post.ActiveUntil, &post.CreatedAt, &post.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		post.Weekdays = domain.WeekdaysFromMask(mask)
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *Repository) CreatePost(post *domain.Post) error {
	query := `
		INSERT INTO posts (organization_id, installation_id, name, shift_start, shift_end, weekday_mask, required_guards, active_from, active_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		post.OrganizationID,
		post.InstallationID,
		post.Name,
		post.ShiftStart,
		post.ShiftEnd,
		domain.WeekdayMask(post.Weekdays),
		post.RequiredGuards,
		post.ActiveFrom,
		post.ActiveUntil,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&post.ID, &post.CreatedAt, &post.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdatePost(post *domain.Post) error {
	query := `
		UPDATE posts
		SET
			name = $1,
			shift_start = $2,
			shift_end = $3,
			weekday_mask = $4,
			required_guards = $5,
			active_from = $6,
			active_until = $7,
			version = version + 1
		WHERE organization_id = $8 AND id = $9 AND version = $10
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		post.Name,
		post.ShiftStart,
		post.ShiftEnd,
		domain.WeekdayMask(post.Weekdays),
		post.RequiredGuards,
		post.ActiveFrom,
		post.ActiveUntil,
		post.OrganizationID,
		post.ID,
		post.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&post.CreatedAt, &post.Version); err != nil {
		return err
	}

	return nil
}
