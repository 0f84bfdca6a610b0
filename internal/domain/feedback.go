package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for feedback submission.
var (
	ErrNotEligible      = errors.New("not eligible to submit feedback")
	ErrAlreadySubmitted = errors.New("feedback already submitted for this event")
)

// Feedback is a student's post-event rating and optional comment.
// swagger:model Feedback
type Feedback struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackWithEvent bundles feedback with its event for moderation views.
type FeedbackWithEvent struct {
	Feedback *Feedback `json:"feedback"`
	Event    *Event    `json:"event"`
}

// FeedbackRepository defines storage operations for feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *Feedback) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Feedback, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Feedback, error)
	ListByUserID(ctx context.Context, userID string) ([]*Feedback, error)
	List(ctx context.Context, params PaginationParams) ([]*Feedback, int, error)
	Delete(ctx context.Context, id string) error
}

// FeedbackService defines feedback submission and moderation.
type FeedbackService interface {
	// Submit requires a non-cancelled registration for the event, the event's end
	// time in the past, and no prior feedback from this user for this event.
	Submit(ctx context.Context, eventID, userID string, rating int, comment *string) (*Feedback, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Feedback, error)
	ListMine(ctx context.Context, userID string) ([]*Feedback, error)

	// Moderation (admin).
	ListAll(ctx context.Context, params PaginationParams) ([]*Feedback, int, error)
	Delete(ctx context.Context, feedbackID string) error
}
