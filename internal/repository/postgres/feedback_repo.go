package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"

	"github.com/lib/pq"
)

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(db *sql.DB) domain.FeedbackRepository {
	return &feedbackRepository{DB: db}
}

const feedbackColumns = `id, event_id, user_id, rating, comment, created_at`

func scanFeedback(row interface{ Scan(...any) error }) (*domain.Feedback, error) {
	fb := &domain.Feedback{}
	var comment sql.NullString
	err := row.Scan(&fb.ID, &fb.EventID, &fb.UserID, &fb.Rating, &comment, &fb.CreatedAt)
	if err != nil {
		return nil, err
	}
	if comment.Valid {
		fb.Comment = &comment.String
	}
	return fb, nil
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO feedback (event_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		fb.EventID, fb.UserID, fb.Rating, fb.Comment, fb.CreatedAt,
	).Scan(&fb.ID)
	if err != nil {
		// Unique (event_id, user_id) backs the one-feedback-per-event rule.
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrAlreadySubmitted
		}
		return err
	}
	return nil
}

func (r *feedbackRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE event_id = $1 AND user_id = $2`
	fb, err := scanFeedback(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return fb, nil
}

func (r *feedbackRepository) listFeedback(ctx context.Context, query string, args ...any) ([]*domain.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.Feedback, 0)
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}

func (r *feedbackRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Feedback, error) {
	return r.listFeedback(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE event_id = $1 ORDER BY created_at DESC`,
		eventID)
}

func (r *feedbackRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Feedback, error) {
	return r.listFeedback(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (r *feedbackRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Feedback, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		return nil, 0, err
	}
	items, err := r.listFeedback(ctx,
		`SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
