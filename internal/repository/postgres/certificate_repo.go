package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"

	"github.com/lib/pq"
)

type certificateRepository struct {
	DB *sql.DB
}

func NewCertificateRepository(db *sql.DB) domain.CertificateRepository {
	return &certificateRepository{DB: db}
}

const certificateColumns = `id, event_id, student_id, issued_by, code, issued_at`

func scanCertificate(row interface{ Scan(...any) error }) (*domain.Certificate, error) {
	c := &domain.Certificate{}
	err := row.Scan(&c.ID, &c.EventID, &c.StudentID, &c.IssuedBy, &c.Code, &c.IssuedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *certificateRepository) Create(ctx context.Context, cert *domain.Certificate) error {
	query := `
		INSERT INTO certificates (event_id, student_id, issued_by, code, issued_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		cert.EventID, cert.StudentID, cert.IssuedBy, cert.Code, cert.IssuedAt,
	).Scan(&cert.ID)
	if err != nil {
		// Unique (event_id, student_id) backs the one-certificate rule.
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrCertificateIssued
		}
		return err
	}
	return nil
}

func (r *certificateRepository) GetByEventAndStudent(ctx context.Context, eventID, studentID string) (*domain.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE event_id = $1 AND student_id = $2`
	cert, err := scanCertificate(r.DB.QueryRowContext(ctx, query, eventID, studentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return cert, nil
}

func (r *certificateRepository) listCertificates(ctx context.Context, query string, args ...any) ([]*domain.Certificate, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	certs := make([]*domain.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

func (r *certificateRepository) ListByStudentID(ctx context.Context, studentID string) ([]*domain.Certificate, error) {
	return r.listCertificates(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE student_id = $1 ORDER BY issued_at DESC`,
		studentID)
}

func (r *certificateRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Certificate, error) {
	return r.listCertificates(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE event_id = $1 ORDER BY issued_at`,
		eventID)
}
