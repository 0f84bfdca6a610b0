package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusevents/internal/domain"
)

func endedEvent(id string) *domain.Event {
	ev := approvedEvent(id, 10)
	ev.StartTime = time.Now().Add(-4 * time.Hour)
	ev.EndTime = time.Now().Add(-2 * time.Hour)
	return ev
}

func TestFeedbackService_Submit(t *testing.T) {
	comment := "great talk"

	tests := []struct {
		name         string
		event        *domain.Event
		regRepo      *mockRegistrationRepository
		feedbackRepo *mockFeedbackRepository
		rating       int
		wantErr      error
	}{
		{
			name:  "success",
			event: endedEvent("e1"),
			regRepo: &mockRegistrationRepository{
				regsByEvent: map[string][]*domain.Registration{
					"e1": {{ID: "r1", EventID: "e1", UserID: "u1", Status: domain.StatusAttended}},
				},
			},
			feedbackRepo: &mockFeedbackRepository{},
			rating:       5,
		},
		{
			name:  "registered but not attended is still eligible",
			event: endedEvent("e1"),
			regRepo: &mockRegistrationRepository{
				regsByEvent: map[string][]*domain.Registration{
					"e1": {{ID: "r1", EventID: "e1", UserID: "u1", Status: domain.StatusRegistered}},
				},
			},
			feedbackRepo: &mockFeedbackRepository{},
			rating:       3,
		},
		{
			name:         "event not ended",
			event:        approvedEvent("e1", 10),
			regRepo:      &mockRegistrationRepository{},
			feedbackRepo: &mockFeedbackRepository{},
			rating:       5,
			wantErr:      domain.ErrNotEligible,
		},
		{
			name:         "never registered",
			event:        endedEvent("e1"),
			regRepo:      &mockRegistrationRepository{},
			feedbackRepo: &mockFeedbackRepository{},
			rating:       5,
			wantErr:      domain.ErrNotEligible,
		},
		{
			name:  "cancelled registration is not eligible",
			event: endedEvent("e1"),
			regRepo: &mockRegistrationRepository{
				regsByEvent: map[string][]*domain.Registration{
					"e1": {{ID: "r1", EventID: "e1", UserID: "u1", Status: domain.StatusCancelled}},
				},
			},
			feedbackRepo: &mockFeedbackRepository{},
			rating:       5,
			wantErr:      domain.ErrNotEligible,
		},
		{
			name:  "already submitted",
			event: endedEvent("e1"),
			regRepo: &mockRegistrationRepository{
				regsByEvent: map[string][]*domain.Registration{
					"e1": {{ID: "r1", EventID: "e1", UserID: "u1", Status: domain.StatusAttended}},
				},
			},
			feedbackRepo: &mockFeedbackRepository{
				byEventAndUser: map[string]*domain.Feedback{
					"e1:u1": {ID: "f1", EventID: "e1", UserID: "u1", Rating: 4},
				},
			},
			rating:  5,
			wantErr: domain.ErrAlreadySubmitted,
		},
		{
			name:         "rating too low",
			event:        endedEvent("e1"),
			regRepo:      &mockRegistrationRepository{},
			feedbackRepo: &mockFeedbackRepository{},
			rating:       0,
			wantErr:      domain.ErrInvalidInput,
		},
		{
			name:         "rating too high",
			event:        endedEvent("e1"),
			regRepo:      &mockRegistrationRepository{},
			feedbackRepo: &mockFeedbackRepository{},
			rating:       6,
			wantErr:      domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": tt.event}}
			svc := NewFeedbackService(tt.feedbackRepo, tt.regRepo, eventRepo, 2*time.Second)

			fb, err := svc.Submit(context.Background(), "e1", "u1", tt.rating, &comment)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fb.Rating != tt.rating {
				t.Fatalf("expected rating %d, got %d", tt.rating, fb.Rating)
			}
			if fb.Comment == nil || *fb.Comment != comment {
				t.Fatalf("comment not carried: %v", fb.Comment)
			}
		})
	}
}

func TestFeedbackService_Submit_EventNotFound(t *testing.T) {
	svc := NewFeedbackService(&mockFeedbackRepository{}, &mockRegistrationRepository{}, &mockEventRepository{events: map[string]*domain.Event{}}, 2*time.Second)

	_, err := svc.Submit(context.Background(), "missing", "u1", 5, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
