package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type attendeeService struct {
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	contextTimeout   time.Duration
}

func NewAttendeeService(
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		contextTimeout:   timeout,
	}
}

// registrationSentinel reports whether err is one of the admission sentinels
// that callers map to client responses unchanged.
func registrationSentinel(err error) bool {
	return errors.Is(err, domain.ErrAlreadyRegistered) ||
		errors.Is(err, domain.ErrEventFull) ||
		errors.Is(err, domain.ErrDeadlinePassed) ||
		errors.Is(err, domain.ErrNotRegistered)
}

func (s *attendeeService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.Approved() {
		// Unapproved events do not exist as far as attendees are concerned.
		return nil, domain.ErrNotFound
	}

	now := time.Now()

	// Fast path over a snapshot of the ledger. This rejects the common failure
	// modes without opening a transaction; the admitted case is re-checked
	// under the event row lock inside Register.
	ledger, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if _, err := domain.AttemptRegister(event, ledger, userID, now); err != nil {
		return nil, err
	}

	reg, err := s.registrationRepo.Register(ctx, eventID, userID, now)
	if err != nil {
		if registrationSentinel(err) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return reg, nil
}

func (s *attendeeService) CancelRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ledger, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	reg, err := domain.CancelRegistration(ledger, eventID, userID)
	if err != nil {
		return nil, err
	}
	updated, err := s.registrationRepo.UpdateStatus(ctx, reg.ID, domain.StatusCancelled, nil)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, fmt.Errorf("update registration status: %w", err)
	}
	return updated, nil
}

func (s *attendeeService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	eventsByID := make(map[string]*domain.Event)
	out := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		event, ok := eventsByID[reg.EventID]
		if !ok {
			event, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted since registration; skip the orphan row.
					continue
				}
				return nil, fmt.Errorf("get event %s: %w", reg.EventID, err)
			}
			eventsByID[reg.EventID] = event
		}
		out = append(out, &domain.RegistrationWithEvent{Registration: reg, Event: event})
	}
	return out, nil
}

func (s *attendeeService) GetCapacity(ctx context.Context, eventID string) (*domain.CapacitySnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.Approved() {
		return nil, domain.ErrNotFound
	}
	ledger, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	snapshot := domain.Snapshot(event, ledger)
	return &snapshot, nil
}

func (s *attendeeService) ListAttendees(ctx context.Context, eventID, callerID string, callerRole domain.Role) ([]*domain.RegistrationWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !canManage(event, callerID, callerRole) {
		return nil, domain.ErrForbidden
	}

	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	out := make([]*domain.RegistrationWithUser, 0, len(regs))
	for _, reg := range regs {
		if !reg.Active() {
			continue
		}
		user, err := s.userRepo.GetByID(ctx, reg.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, fmt.Errorf("get user %s: %w", reg.UserID, err)
		}
		out = append(out, &domain.RegistrationWithUser{Registration: reg, User: user})
	}
	return out, nil
}

func (s *attendeeService) MarkAttendance(ctx context.Context, eventID, registrationID, callerID string, callerRole domain.Role) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !canManage(event, callerID, callerRole) {
		return nil, domain.ErrForbidden
	}

	ledger, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	now := time.Now()
	reg, err := domain.MarkAttended(ledger, registrationID, now)
	if err != nil {
		return nil, err
	}
	updated, err := s.registrationRepo.UpdateStatus(ctx, reg.ID, domain.StatusAttended, reg.CheckInTime)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, fmt.Errorf("update registration status: %w", err)
	}
	return updated, nil
}
