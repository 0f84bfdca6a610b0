package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"campusevents/internal/domain"
)

type organizerApprovalService struct {
	approvalRepo     domain.OrganizerApprovalRepository
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
	contextTimeout   time.Duration
}

func NewOrganizerApprovalService(
	approvalRepo domain.OrganizerApprovalRepository,
	userRepo domain.UserRepository,
	notificationRepo domain.NotificationRepository,
	timeout time.Duration,
) domain.OrganizerApprovalService {
	return &organizerApprovalService{
		approvalRepo:     approvalRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		contextTimeout:   timeout,
	}
}

func (s *organizerApprovalService) Apply(ctx context.Context, userID string) (*domain.OrganizerApproval, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Role == domain.RoleOrganizer || user.Role == domain.RoleAdmin {
		return nil, fmt.Errorf("%w: account already holds the %s role", domain.ErrInvalidInput, user.Role)
	}

	if _, err := s.approvalRepo.GetPendingByUserID(ctx, userID); err == nil {
		return nil, domain.ErrApplicationPending
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check pending application: %w", err)
	}

	now := time.Now()
	appr := &domain.OrganizerApproval{
		UserID:    userID,
		Status:    domain.ApprovalPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.approvalRepo.Create(ctx, appr); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return appr, nil
}

func (s *organizerApprovalService) ListPending(ctx context.Context) ([]*domain.OrganizerApproval, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.approvalRepo.ListByStatus(ctx, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("list pending approvals: %w", err)
	}
	if list == nil {
		list = []*domain.OrganizerApproval{}
	}
	return list, nil
}

func (s *organizerApprovalService) Decide(ctx context.Context, approvalID, adminID string, status domain.ApprovalStatus, reason *string) (*domain.OrganizerApproval, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.ApprovalApproved && status != domain.ApprovalRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", domain.ErrInvalidInput)
	}

	appr, err := s.approvalRepo.GetByID(ctx, approvalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get approval: %w", err)
	}
	if appr.Status != domain.ApprovalPending {
		return nil, fmt.Errorf("%w: application has already been decided", domain.ErrInvalidInput)
	}

	updated, err := s.approvalRepo.SetStatus(ctx, approvalID, status, adminID, reason)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set approval status: %w", err)
	}

	message := "Your organizer application was rejected."
	if status == domain.ApprovalApproved {
		if err := s.userRepo.SetRole(ctx, appr.UserID, domain.RoleOrganizer); err != nil {
			return nil, fmt.Errorf("promote user to organizer: %w", err)
		}
		message = "Your organizer application was approved. You can now create events."
	}

	n := &domain.Notification{
		UserID:    appr.UserID,
		Title:     "Organizer application update",
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("[APPROVAL] notification for %s failed: %v", appr.UserID, err)
	}
	return updated, nil
}
