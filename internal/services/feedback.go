package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type feedbackService struct {
	feedbackRepo     domain.FeedbackRepository
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	contextTimeout   time.Duration
}

func NewFeedbackService(
	feedbackRepo domain.FeedbackRepository,
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	timeout time.Duration,
) domain.FeedbackService {
	return &feedbackService{
		feedbackRepo:     feedbackRepo,
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		contextTimeout:   timeout,
	}
}

func (s *feedbackService) Submit(ctx context.Context, eventID, userID string, rating int, comment *string) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.Ended(time.Now()) {
		return nil, domain.ErrNotEligible
	}

	if _, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotEligible
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	if _, err := s.feedbackRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, domain.ErrAlreadySubmitted
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	fb := &domain.Feedback{
		EventID:   eventID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		if errors.Is(err, domain.ErrAlreadySubmitted) {
			return nil, domain.ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return fb, nil
}

func (s *feedbackService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.feedbackRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list feedback by event: %w", err)
	}
	if list == nil {
		list = []*domain.Feedback{}
	}
	return list, nil
}

func (s *feedbackService) ListMine(ctx context.Context, userID string) ([]*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.feedbackRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list feedback by user: %w", err)
	}
	if list == nil {
		list = []*domain.Feedback{}
	}
	return list, nil
}

func (s *feedbackService) ListAll(ctx context.Context, params domain.PaginationParams) ([]*domain.Feedback, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, total, err := s.feedbackRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}
	if list == nil {
		list = []*domain.Feedback{}
	}
	return list, total, nil
}

func (s *feedbackService) Delete(ctx context.Context, feedbackID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.feedbackRepo.Delete(ctx, feedbackID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
