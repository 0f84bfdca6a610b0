package domain

import (
	"context"
	"time"
)

// EventCategory is a fixed grouping events may belong to.
// swagger:model EventCategory
type EventCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventTag is a free-form label attached to events via a relation table.
// swagger:model EventTag
type EventTag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRepository defines storage for event categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*EventCategory, error)
	List(ctx context.Context) ([]*EventCategory, error)
}

// TagRepository defines storage for tags and their event relations.
type TagRepository interface {
	List(ctx context.Context) ([]*EventTag, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventTag, error)
	// ReplaceEventTags replaces the event's tag set with tagIDs.
	ReplaceEventTags(ctx context.Context, eventID string, tagIDs []string) error
}
