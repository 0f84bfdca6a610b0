package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"
)

type organizerApprovalRepository struct {
	DB *sql.DB
}

func NewOrganizerApprovalRepository(db *sql.DB) domain.OrganizerApprovalRepository {
	return &organizerApprovalRepository{DB: db}
}

const approvalColumns = `id, user_id, status, admin_id, reason, created_at, updated_at`

func scanApproval(row interface{ Scan(...any) error }) (*domain.OrganizerApproval, error) {
	a := &domain.OrganizerApproval{}
	var adminID, reason sql.NullString
	err := row.Scan(&a.ID, &a.UserID, &a.Status, &adminID, &reason, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if adminID.Valid {
		a.AdminID = &adminID.String
	}
	if reason.Valid {
		a.Reason = &reason.String
	}
	return a, nil
}

func (r *organizerApprovalRepository) Create(ctx context.Context, appr *domain.OrganizerApproval) error {
	query := `
		INSERT INTO organizer_approvals (user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		appr.UserID, appr.Status, appr.CreatedAt, appr.UpdatedAt,
	).Scan(&appr.ID)
}

func (r *organizerApprovalRepository) GetByID(ctx context.Context, id string) (*domain.OrganizerApproval, error) {
	a, err := scanApproval(r.DB.QueryRowContext(ctx,
		`SELECT `+approvalColumns+` FROM organizer_approvals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *organizerApprovalRepository) GetPendingByUserID(ctx context.Context, userID string) (*domain.OrganizerApproval, error) {
	a, err := scanApproval(r.DB.QueryRowContext(ctx,
		`SELECT `+approvalColumns+` FROM organizer_approvals WHERE user_id = $1 AND status = 'pending'`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *organizerApprovalRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.OrganizerApproval, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+approvalColumns+` FROM organizer_approvals WHERE status = $1 ORDER BY created_at`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apprs := make([]*domain.OrganizerApproval, 0)
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, err
		}
		apprs = append(apprs, a)
	}
	return apprs, rows.Err()
}

func (r *organizerApprovalRepository) SetStatus(ctx context.Context, id string, status domain.ApprovalStatus, adminID string, reason *string) (*domain.OrganizerApproval, error) {
	query := `
		UPDATE organizer_approvals
		SET status = $2, admin_id = $3, reason = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + approvalColumns
	a, err := scanApproval(r.DB.QueryRowContext(ctx, query, id, status, adminID, reason))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
