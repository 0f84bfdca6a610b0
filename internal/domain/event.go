package domain

import (
	"context"
	"time"
)

// ApprovalStatus is the review state of an event or an organizer application.
// New records start pending; only admins move them to approved or rejected.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Event represents a campus event.
// swagger:model Event
type Event struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Location             string         `json:"location"`
	StartTime            time.Time      `json:"start_time"`
	EndTime              time.Time      `json:"end_time"`
	Capacity             int            `json:"capacity"`
	OrganizerID          string         `json:"organizer_id"`
	ApprovalStatus       ApprovalStatus `json:"approval_status"`
	CategoryID           *string        `json:"category_id,omitempty"`
	ImageURL             *string        `json:"image_url,omitempty"`
	RegistrationDeadline *time.Time     `json:"registration_deadline,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// Approved reports whether the event is publicly visible and registerable.
func (e *Event) Approved() bool {
	return e.ApprovalStatus == ApprovalApproved
}

// Ended reports whether the event's end time is before now.
func (e *Event) Ended(now time.Time) bool {
	return e.EndTime.Before(now)
}

// EventUpdate holds the mutable event fields; nil means unchanged.
type EventUpdate struct {
	Title                *string
	Description          *string
	Location             *string
	StartTime            *time.Time
	EndTime              *time.Time
	Capacity             *int
	CategoryID           *string
	ImageURL             *string
	RegistrationDeadline *time.Time
}

// EventFilter narrows event listings.
type EventFilter struct {
	CategoryID *string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListApproved(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	ListByApprovalStatus(ctx context.Context, status ApprovalStatus) ([]*Event, error)
	Update(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	SetApprovalStatus(ctx context.Context, eventID string, status ApprovalStatus) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// AnnouncementResult reports the outcome of an announcement email batch.
type AnnouncementResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// EventService defines event lifecycle operations across roles.
type EventService interface {
	// CreateEvent creates a pending event for the organizer. When the request
	// omits a registration deadline it defaults to one hour before start.
	CreateEvent(ctx context.Context, event *Event) error
	// GetEvent returns the event when it is approved, or when the viewer is its
	// organizer or an admin. viewerID may be empty for anonymous access.
	GetEvent(ctx context.Context, eventID, viewerID string, viewerRole Role) (*Event, error)
	ListApprovedEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListMyEvents(ctx context.Context, organizerID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, callerID string, callerRole Role, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string, callerRole Role) error

	// Admin review.
	ListPendingEvents(ctx context.Context) ([]*Event, error)
	// SetEventApproval moves a pending event to approved or rejected. Approved is
	// terminal. Approval triggers the announcement batch; its result is returned
	// alongside the event and per-recipient failures never fail the approval.
	SetEventApproval(ctx context.Context, eventID string, status ApprovalStatus) (*Event, *AnnouncementResult, error)

	// Tags.
	SetEventTags(ctx context.Context, eventID, callerID string, callerRole Role, tagIDs []string) error
	ListEventTags(ctx context.Context, eventID string) ([]*EventTag, error)
}
