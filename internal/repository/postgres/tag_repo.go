package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"
)

type tagRepository struct {
	DB *sql.DB
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) List(ctx context.Context) ([]*domain.EventTag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, created_at FROM event_tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.EventTag
	for rows.Next() {
		var tag domain.EventTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventTag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name, t.created_at FROM event_tags t
		 JOIN event_tag_relations rel ON rel.tag_id = t.id
		 WHERE rel.event_id = $1
		 ORDER BY t.name`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.EventTag
	for rows.Next() {
		var tag domain.EventTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) ReplaceEventTags(ctx context.Context, eventID string, tagIDs []string) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM event_tag_relations WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO event_tag_relations (event_id, tag_id) VALUES ($1, $2) ON CONFLICT (event_id, tag_id) DO NOTHING`,
			eventID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type categoryRepository struct {
	DB *sql.DB
}

// NewCategoryRepository returns a domain.CategoryRepository implemented with Postgres.
func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.EventCategory, error) {
	var cat domain.EventCategory
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM event_categories WHERE id = $1`, id).
		Scan(&cat.ID, &cat.Name, &desc, &cat.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if desc.Valid {
		cat.Description = &desc.String
	}
	return &cat, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.EventCategory, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM event_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := make([]*domain.EventCategory, 0)
	for rows.Next() {
		var cat domain.EventCategory
		var desc sql.NullString
		if err := rows.Scan(&cat.ID, &cat.Name, &desc, &cat.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			cat.Description = &desc.String
		}
		cats = append(cats, &cat)
	}
	return cats, rows.Err()
}
