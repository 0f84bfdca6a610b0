package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campusevents/internal/domain"
)

// defaultDeadlineBeforeStart is applied when an event is created without an
// explicit registration deadline.
const defaultDeadlineBeforeStart = time.Hour

type eventService struct {
	eventRepo        domain.EventRepository
	categoryRepo     domain.CategoryRepository
	tagRepo          domain.TagRepository
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
	emailService     domain.EmailService
	baseURL          string
	contextTimeout   time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	categoryRepo domain.CategoryRepository,
	tagRepo domain.TagRepository,
	userRepo domain.UserRepository,
	notificationRepo domain.NotificationRepository,
	emailService domain.EmailService,
	baseURL string,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		categoryRepo:     categoryRepo,
		tagRepo:          tagRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		baseURL:          strings.TrimSuffix(baseURL, "/"),
		contextTimeout:   timeout,
	}
}

func validateEventTimes(start, end time.Time, deadline *time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	if deadline != nil && deadline.After(start) {
		return fmt.Errorf("%w: registration deadline must not be after start time", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(event.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	if event.OrganizerID == "" {
		return fmt.Errorf("%w: organizer is required", domain.ErrInvalidInput)
	}
	if event.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be a positive integer", domain.ErrInvalidInput)
	}
	if err := validateEventTimes(event.StartTime, event.EndTime, event.RegistrationDeadline); err != nil {
		return err
	}
	if event.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *event.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: unknown category", domain.ErrInvalidInput)
			}
			return fmt.Errorf("get category: %w", err)
		}
	}

	if event.RegistrationDeadline == nil {
		d := event.StartTime.Add(-defaultDeadlineBeforeStart)
		event.RegistrationDeadline = &d
	}

	event.ApprovalStatus = domain.ApprovalPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID, viewerID string, viewerRole domain.Role) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Approved() {
		return event, nil
	}
	// Unapproved events are visible only to their organizer and admins.
	if viewerRole == domain.RoleAdmin || (viewerID != "" && viewerID == event.OrganizerID) {
		return event, nil
	}
	return nil, domain.ErrNotFound
}

func (s *eventService) ListApprovedEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListApproved(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list approved events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events by organizer: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// canManage reports whether the caller may mutate the event.
func canManage(event *domain.Event, callerID string, callerRole domain.Role) bool {
	return callerRole == domain.RoleAdmin || event.OrganizerID == callerID
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID string, callerRole domain.Role, upd domain.EventUpdate) (*domain.Event, error) {
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

	newStart := event.StartTime
	if upd.StartTime != nil {
		newStart = *upd.StartTime
	}
	newEnd := event.EndTime
	if upd.EndTime != nil {
		newEnd = *upd.EndTime
	}
	newDeadline := event.RegistrationDeadline
	if upd.RegistrationDeadline != nil {
		newDeadline = upd.RegistrationDeadline
	}
	if err := validateEventTimes(newStart, newEnd, newDeadline); err != nil {
		return nil, err
	}
	if upd.Capacity != nil && *upd.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", domain.ErrInvalidInput)
	}
	if upd.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *upd.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown category", domain.ErrInvalidInput)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string, callerRole domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !canManage(event, callerID, callerRole) {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ListPendingEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByApprovalStatus(ctx, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) SetEventApproval(ctx context.Context, eventID string, status domain.ApprovalStatus) (*domain.Event, *domain.AnnouncementResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.ApprovalApproved && status != domain.ApprovalRejected {
		return nil, nil, fmt.Errorf("%w: status must be approved or rejected", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	// Approved is terminal.
	if event.Approved() {
		return nil, nil, fmt.Errorf("%w: event is already approved", domain.ErrInvalidInput)
	}

	updated, err := s.eventRepo.SetApprovalStatus(ctx, eventID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("set approval status: %w", err)
	}

	if status != domain.ApprovalApproved {
		return updated, nil, nil
	}
	result := s.announce(ctx, updated)
	return updated, result, nil
}

// announce sends the new-event email to every active user and records an
// in-app notification. Per-recipient failures are logged and counted; they
// never abort the batch or fail the approval.
func (s *eventService) announce(ctx context.Context, event *domain.Event) *domain.AnnouncementResult {
	result := &domain.AnnouncementResult{}

	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		log.Printf("[ANNOUNCE] list recipients for event %s failed: %v", event.ID, err)
		return result
	}

	imageURL := ""
	if event.ImageURL != nil {
		imageURL = *event.ImageURL
	}
	for _, user := range users {
		if user.Email == "" {
			continue
		}
		data := &domain.EventAnnouncementEmailData{
			Email:       user.Email,
			Title:       event.Title,
			Description: event.Description,
			StartTime:   event.StartTime.Format("Monday, January 2, 2006 at 3:04 PM"),
			EndTime:     event.EndTime.Format("Monday, January 2, 2006 at 3:04 PM"),
			Location:    event.Location,
			Capacity:    event.Capacity,
			ImageURL:    imageURL,
			EventURL:    fmt.Sprintf("%s/events/%s", s.baseURL, event.ID),
		}
		if err := s.emailService.SendEventAnnouncement(ctx, data); err != nil {
			log.Printf("[ANNOUNCE] email to %s failed: %v", user.Email, err)
			result.Failed++
			continue
		}
		n := &domain.Notification{
			UserID:    user.ID,
			Title:     "New event: " + event.Title,
			Message:   fmt.Sprintf("%s at %s on %s", event.Title, event.Location, event.StartTime.Format("Jan 2, 2006")),
			CreatedAt: time.Now(),
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			log.Printf("[ANNOUNCE] notification for %s failed: %v", user.ID, err)
		}
		result.Sent++
	}
	return result
}

func (s *eventService) SetEventTags(ctx context.Context, eventID, callerID string, callerRole domain.Role, tagIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !canManage(event, callerID, callerRole) {
		return domain.ErrForbidden
	}
	if err := s.tagRepo.ReplaceEventTags(ctx, eventID, tagIDs); err != nil {
		return fmt.Errorf("replace event tags: %w", err)
	}
	return nil
}

func (s *eventService) ListEventTags(ctx context.Context, eventID string) ([]*domain.EventTag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tags, err := s.tagRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event tags: %w", err)
	}
	if tags == nil {
		tags = []*domain.EventTag{}
	}
	return tags, nil
}
