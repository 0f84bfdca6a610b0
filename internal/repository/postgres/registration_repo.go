package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

const registrationColumns = `id, event_id, user_id, status, registered_at, check_in_time`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var checkIn sql.NullTime
	err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt, &checkIn)
	if err != nil {
		return nil, err
	}
	if checkIn.Valid {
		reg.CheckInTime = &checkIn.Time
	}
	return reg, nil
}

// Register admits userID inside a single transaction. The event row is locked
// with SELECT ... FOR UPDATE so concurrent attempts serialize on the same
// event: each one re-reads the duplicate flag and the active count under the
// lock before inserting, which keeps the active count at or below capacity.
func (r *registrationRepository) Register(ctx context.Context, eventID, userID string, now time.Time) (reg *domain.Registration, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var capacity int
	var deadline sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT capacity, registration_deadline FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity, &deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if deadline.Valid && deadline.Time.Before(now) {
		return nil, domain.ErrDeadlinePassed
	}

	var dupCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_registrations
		 WHERE event_id = $1 AND user_id = $2 AND status IN ('registered', 'attended')`,
		eventID, userID,
	).Scan(&dupCount)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if dupCount > 0 {
		return nil, domain.ErrAlreadyRegistered
	}

	var activeCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_registrations
		 WHERE event_id = $1 AND status IN ('registered', 'attended')`,
		eventID,
	).Scan(&activeCount)
	if err != nil {
		return nil, fmt.Errorf("count active registrations: %w", err)
	}
	if activeCount >= capacity {
		return nil, domain.ErrEventFull
	}

	reg = &domain.Registration{
		EventID:      eventID,
		UserID:       userID,
		Status:       domain.StatusRegistered,
		RegisteredAt: now,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO event_registrations (event_id, user_id, status, registered_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		reg.EventID, reg.UserID, reg.Status, reg.RegisteredAt,
	).Scan(&reg.ID)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2 AND status IN ('registered', 'attended')
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM event_registrations WHERE id = $1`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) listRegistrations(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.listRegistrations(ctx,
		`SELECT `+registrationColumns+` FROM event_registrations WHERE event_id = $1 ORDER BY registered_at`,
		eventID)
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return r.listRegistrations(ctx,
		`SELECT `+registrationColumns+` FROM event_registrations WHERE user_id = $1 ORDER BY registered_at DESC`,
		userID)
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus, checkInTime *time.Time) (*domain.Registration, error) {
	query := `
		UPDATE event_registrations
		SET status = $2, check_in_time = COALESCE($3, check_in_time)
		WHERE id = $1
		RETURNING ` + registrationColumns
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id, status, checkInTime))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}
