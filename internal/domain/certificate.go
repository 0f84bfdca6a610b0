package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCertificateIssued is returned when a certificate already exists for the
// (event, student) pair.
var ErrCertificateIssued = errors.New("certificate already issued")

// ErrNotAttended is returned when issuing a certificate for a registration that
// is not marked attended.
var ErrNotAttended = errors.New("attendance not recorded for this event")

// Certificate is an attendance certificate issued to a student for an event.
// Code is an app-generated verification code printed on the certificate.
// swagger:model Certificate
type Certificate struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	StudentID string    `json:"student_id"`
	IssuedBy  string    `json:"issued_by"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
}

// CertificateWithEvent bundles a certificate with its event.
type CertificateWithEvent struct {
	Certificate *Certificate `json:"certificate"`
	Event       *Event       `json:"event"`
}

// CertificateRepository defines storage operations for certificates.
type CertificateRepository interface {
	Create(ctx context.Context, cert *Certificate) error
	GetByEventAndStudent(ctx context.Context, eventID, studentID string) (*Certificate, error)
	ListByStudentID(ctx context.Context, studentID string) ([]*Certificate, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Certificate, error)
}

// CertificateService defines certificate issuance and retrieval.
type CertificateService interface {
	// Issue creates a certificate for an attendee with recorded attendance. The
	// caller must be the event's organizer or an admin. At most one certificate
	// exists per (event, student).
	Issue(ctx context.Context, eventID, studentID, callerID string, callerRole Role) (*Certificate, error)
	ListMine(ctx context.Context, studentID string) ([]*CertificateWithEvent, error)
	ListByEvent(ctx context.Context, eventID, callerID string, callerRole Role) ([]*Certificate, error)
}
