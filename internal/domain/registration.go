package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for registration admission.
var (
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event is at maximum capacity")
	ErrDeadlinePassed    = errors.New("registration deadline has passed")
	ErrNotRegistered     = errors.New("not registered for this event")
)

// RegistrationStatus is the lifecycle state of a registration row.
// Rows are never deleted; cancellation and attendance are status transitions.
type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusCancelled  RegistrationStatus = "cancelled"
	StatusAttended   RegistrationStatus = "attended"
)

// Registration represents one (event, user) registration row.
// swagger:model Registration
type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id"`
	UserID       string             `json:"user_id"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registered_at"`
	CheckInTime  *time.Time         `json:"check_in_time,omitempty"`
}

// Active reports whether the registration counts against event capacity.
// Cancelled rows do not; registered and attended rows do.
func (r *Registration) Active() bool {
	return r.Status == StatusRegistered || r.Status == StatusAttended
}

// CapacitySnapshot is a derived view of an event's occupancy. Registered is the
// number of active registrations; callers must never cache it as authoritative.
// swagger:model CapacitySnapshot
type CapacitySnapshot struct {
	Capacity   int `json:"capacity"`
	Registered int `json:"registered"`
}

// ActiveCount is the canonical occupancy accessor: the number of ledger rows
// that count against capacity. Every capacity decision goes through here.
func ActiveCount(ledger []*Registration) int {
	n := 0
	for _, r := range ledger {
		if r.Active() {
			n++
		}
	}
	return n
}

// Snapshot derives the capacity view of an event from its current ledger.
func Snapshot(event *Event, ledger []*Registration) CapacitySnapshot {
	return CapacitySnapshot{
		Capacity:   event.Capacity,
		Registered: ActiveCount(ledger),
	}
}

// AttemptRegister decides whether userID may register for the event given the
// current ledger, and returns the new row to persist. It is a pure decision
// over a snapshot: the caller is responsible for persisting the row, and for
// doing so under whatever exclusivity the store provides, since two concurrent
// callers can both be admitted against the same snapshot.
func AttemptRegister(event *Event, ledger []*Registration, userID string, now time.Time) (*Registration, error) {
	for _, r := range ledger {
		if r.UserID == userID && r.Active() {
			return nil, ErrAlreadyRegistered
		}
	}
	if event.RegistrationDeadline != nil && event.RegistrationDeadline.Before(now) {
		return nil, ErrDeadlinePassed
	}
	if ActiveCount(ledger) >= event.Capacity {
		return nil, ErrEventFull
	}
	return &Registration{
		EventID:      event.ID,
		UserID:       userID,
		Status:       StatusRegistered,
		RegisteredAt: now,
	}, nil
}

// CancelRegistration transitions userID's active registration for eventID to
// cancelled and returns the mutated row for the caller to persist.
func CancelRegistration(ledger []*Registration, eventID, userID string) (*Registration, error) {
	for _, r := range ledger {
		if r.EventID == eventID && r.UserID == userID && r.Active() {
			r.Status = StatusCancelled
			return r, nil
		}
	}
	return nil, ErrNotRegistered
}

// MarkAttended transitions a registered row to attended. Re-marking an already
// attended row is a no-op. Cancelled or unknown rows fail with ErrNotRegistered.
func MarkAttended(ledger []*Registration, registrationID string, now time.Time) (*Registration, error) {
	for _, r := range ledger {
		if r.ID != registrationID {
			continue
		}
		switch r.Status {
		case StatusRegistered:
			r.Status = StatusAttended
			r.CheckInTime = &now
			return r, nil
		case StatusAttended:
			return r, nil
		}
		return nil, ErrNotRegistered
	}
	return nil, ErrNotRegistered
}

// RegistrationWithEvent bundles a registration with its related event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// RegistrationWithUser bundles a registration with the registrant, for
// organizer-facing attendee lists.
type RegistrationWithUser struct {
	Registration *Registration `json:"registration"`
	User         *User         `json:"user"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Register admits userID atomically: the duplicate, deadline, and capacity
	// checks and the insert happen in one transaction holding a lock on the
	// event row, so concurrent attempts can never overshoot capacity.
	Register(ctx context.Context, eventID, userID string, now time.Time) (*Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	GetByID(ctx context.Context, id string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	UpdateStatus(ctx context.Context, id string, status RegistrationStatus, checkInTime *time.Time) (*Registration, error)
}

// AttendeeService defines attendee-facing registration operations plus the
// organizer-side attendance bookkeeping over the same ledger.
type AttendeeService interface {
	RegisterForEvent(ctx context.Context, eventID, userID string) (*Registration, error)
	CancelRegistration(ctx context.Context, eventID, userID string) (*Registration, error)
	ListMyRegistrations(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
	GetCapacity(ctx context.Context, eventID string) (*CapacitySnapshot, error)

	// Organizer/admin side.
	ListAttendees(ctx context.Context, eventID, callerID string, callerRole Role) ([]*RegistrationWithUser, error)
	MarkAttendance(ctx context.Context, eventID, registrationID, callerID string, callerRole Role) (*Registration, error)
}
