package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

type certificateService struct {
	certificateRepo  domain.CertificateRepository
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	contextTimeout   time.Duration
}

func NewCertificateService(
	certificateRepo domain.CertificateRepository,
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	timeout time.Duration,
) domain.CertificateService {
	return &certificateService{
		certificateRepo:  certificateRepo,
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		contextTimeout:   timeout,
	}
}

func (s *certificateService) Issue(ctx context.Context, eventID, studentID, callerID string, callerRole domain.Role) (*domain.Certificate, error) {
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

	reg, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotAttended
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if reg.Status != domain.StatusAttended {
		return nil, domain.ErrNotAttended
	}

	if _, err := s.certificateRepo.GetByEventAndStudent(ctx, eventID, studentID); err == nil {
		return nil, domain.ErrCertificateIssued
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get certificate: %w", err)
	}

	cert := &domain.Certificate{
		EventID:   eventID,
		StudentID: studentID,
		IssuedBy:  callerID,
		Code:      uuid.New().String(),
		IssuedAt:  time.Now(),
	}
	if err := s.certificateRepo.Create(ctx, cert); err != nil {
		if errors.Is(err, domain.ErrCertificateIssued) {
			return nil, domain.ErrCertificateIssued
		}
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	return cert, nil
}

func (s *certificateService) ListMine(ctx context.Context, studentID string) ([]*domain.CertificateWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	certs, err := s.certificateRepo.ListByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}

	out := make([]*domain.CertificateWithEvent, 0, len(certs))
	for _, cert := range certs {
		event, err := s.eventRepo.GetByID(ctx, cert.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get event %s: %w", cert.EventID, err)
		}
		out = append(out, &domain.CertificateWithEvent{Certificate: cert, Event: event})
	}
	return out, nil
}

func (s *certificateService) ListByEvent(ctx context.Context, eventID, callerID string, callerRole domain.Role) ([]*domain.Certificate, error) {
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

	certs, err := s.certificateRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list certificates by event: %w", err)
	}
	if certs == nil {
		certs = []*domain.Certificate{}
	}
	return certs, nil
}
