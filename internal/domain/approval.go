package domain

import (
	"context"
	"errors"
	"time"
)

// ErrApplicationPending rejects a new organizer application while an earlier
// one is still awaiting review.
var ErrApplicationPending = errors.New("organizer application already pending")

// OrganizerApproval is an application by a user to act as an event organizer.
// swagger:model OrganizerApproval
type OrganizerApproval struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Status    ApprovalStatus `json:"status"`
	AdminID   *string        `json:"admin_id,omitempty"`
	Reason    *string        `json:"reason,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// OrganizerApprovalRepository defines storage for organizer applications.
type OrganizerApprovalRepository interface {
	Create(ctx context.Context, appr *OrganizerApproval) error
	GetByID(ctx context.Context, id string) (*OrganizerApproval, error)
	GetPendingByUserID(ctx context.Context, userID string) (*OrganizerApproval, error)
	ListByStatus(ctx context.Context, status ApprovalStatus) ([]*OrganizerApproval, error)
	SetStatus(ctx context.Context, id string, status ApprovalStatus, adminID string, reason *string) (*OrganizerApproval, error)
}

// OrganizerApprovalService defines organizer applications and their admin review.
type OrganizerApprovalService interface {
	// Apply opens a pending organizer application for the user. Rejects users who
	// already hold the organizer or admin role and users with a pending application.
	Apply(ctx context.Context, userID string) (*OrganizerApproval, error)
	ListPending(ctx context.Context) ([]*OrganizerApproval, error)
	// Decide approves or rejects a pending application. Approval promotes the
	// applicant to the organizer role.
	Decide(ctx context.Context, approvalID, adminID string, status ApprovalStatus, reason *string) (*OrganizerApproval, error)
}
