package domain

import (
	"errors"
	"testing"
	"time"
)

func testEvent(capacity int, deadline *time.Time) *Event {
	return &Event{
		ID:                   "e1",
		Title:                "Tech Talk",
		Capacity:             capacity,
		ApprovalStatus:       ApprovalApproved,
		RegistrationDeadline: deadline,
	}
}

func activeReg(id, userID string) *Registration {
	return &Registration{ID: id, EventID: "e1", UserID: userID, Status: StatusRegistered}
}

func TestAttemptRegister(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		event   *Event
		ledger  []*Registration
		userID  string
		wantErr error
	}{
		{
			name:   "admits into empty ledger",
			event:  testEvent(2, nil),
			userID: "u1",
		},
		{
			name:    "rejects duplicate active registration",
			event:   testEvent(10, nil),
			ledger:  []*Registration{activeReg("r1", "u1")},
			userID:  "u1",
			wantErr: ErrAlreadyRegistered,
		},
		{
			name:  "admits after own cancellation",
			event: testEvent(10, nil),
			ledger: []*Registration{
				{ID: "r1", EventID: "e1", UserID: "u1", Status: StatusCancelled},
			},
			userID: "u1",
		},
		{
			name:    "attended row still counts as registered for duplicates",
			event:   testEvent(10, nil),
			ledger:  []*Registration{{ID: "r1", EventID: "e1", UserID: "u1", Status: StatusAttended}},
			userID:  "u1",
			wantErr: ErrAlreadyRegistered,
		},
		{
			name:    "rejects past deadline regardless of capacity",
			event:   testEvent(100, &past),
			userID:  "u1",
			wantErr: ErrDeadlinePassed,
		},
		{
			name:   "admits before deadline",
			event:  testEvent(100, &future),
			userID: "u1",
		},
		{
			name:    "rejects when full",
			event:   testEvent(2, nil),
			ledger:  []*Registration{activeReg("r1", "a"), activeReg("r2", "b")},
			userID:  "c",
			wantErr: ErrEventFull,
		},
		{
			name:  "attended rows count against capacity",
			event: testEvent(2, nil),
			ledger: []*Registration{
				activeReg("r1", "a"),
				{ID: "r2", EventID: "e1", UserID: "b", Status: StatusAttended},
			},
			userID:  "c",
			wantErr: ErrEventFull,
		},
		{
			name:  "cancelled rows free capacity",
			event: testEvent(2, nil),
			ledger: []*Registration{
				activeReg("r1", "a"),
				{ID: "r2", EventID: "e1", UserID: "b", Status: StatusCancelled},
			},
			userID: "c",
		},
		{
			name:    "duplicate check runs before deadline check",
			event:   testEvent(10, &past),
			ledger:  []*Registration{activeReg("r1", "u1")},
			userID:  "u1",
			wantErr: ErrAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := AttemptRegister(tt.event, tt.ledger, tt.userID, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reg.Status != StatusRegistered {
				t.Errorf("expected status registered, got %s", reg.Status)
			}
			if reg.EventID != tt.event.ID || reg.UserID != tt.userID {
				t.Errorf("row references wrong event/user: %+v", reg)
			}
			if !reg.RegisteredAt.Equal(now) {
				t.Errorf("expected RegisteredAt=%v, got %v", now, reg.RegisteredAt)
			}
		})
	}
}

// Capacity 2, no deadline: A and B register, C is rejected, A cancels, C gets in.
func TestAttemptRegister_CapacityScenario(t *testing.T) {
	now := time.Now()
	event := testEvent(2, nil)
	var ledger []*Registration

	admit := func(user string) *Registration {
		t.Helper()
		reg, err := AttemptRegister(event, ledger, user, now)
		if err != nil {
			t.Fatalf("register %s: %v", user, err)
		}
		reg.ID = "r-" + user
		ledger = append(ledger, reg)
		return reg
	}

	admit("A")
	if got := Snapshot(event, ledger).Registered; got != 1 {
		t.Fatalf("after A: registered=%d, want 1", got)
	}
	admit("B")
	if got := Snapshot(event, ledger).Registered; got != 2 {
		t.Fatalf("after B: registered=%d, want 2", got)
	}
	if _, err := AttemptRegister(event, ledger, "C", now); !errors.Is(err, ErrEventFull) {
		t.Fatalf("expected ErrEventFull for C, got %v", err)
	}
	if _, err := CancelRegistration(ledger, event.ID, "A"); err != nil {
		t.Fatalf("cancel A: %v", err)
	}
	if got := Snapshot(event, ledger).Registered; got != 1 {
		t.Fatalf("after cancel: registered=%d, want 1", got)
	}
	admit("C")
	if got := Snapshot(event, ledger).Registered; got != 2 {
		t.Fatalf("after C: registered=%d, want 2", got)
	}
}

func TestCancelRegistration(t *testing.T) {
	tests := []struct {
		name    string
		ledger  []*Registration
		userID  string
		wantErr error
	}{
		{
			name:   "cancels active registration",
			ledger: []*Registration{activeReg("r1", "u1")},
			userID: "u1",
		},
		{
			name:    "no registration",
			ledger:  nil,
			userID:  "u1",
			wantErr: ErrNotRegistered,
		},
		{
			name: "already cancelled",
			ledger: []*Registration{
				{ID: "r1", EventID: "e1", UserID: "u1", Status: StatusCancelled},
			},
			userID:  "u1",
			wantErr: ErrNotRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := CancelRegistration(tt.ledger, "e1", tt.userID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reg.Status != StatusCancelled {
				t.Errorf("expected status cancelled, got %s", reg.Status)
			}
		})
	}
}

func TestMarkAttended(t *testing.T) {
	now := time.Now()

	t.Run("registered becomes attended with check-in time", func(t *testing.T) {
		ledger := []*Registration{activeReg("r1", "u1")}
		reg, err := MarkAttended(ledger, "r1", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reg.Status != StatusAttended {
			t.Errorf("expected attended, got %s", reg.Status)
		}
		if reg.CheckInTime == nil || !reg.CheckInTime.Equal(now) {
			t.Errorf("expected check-in time %v, got %v", now, reg.CheckInTime)
		}
	})

	t.Run("re-marking attended is a no-op", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		ledger := []*Registration{
			{ID: "r1", EventID: "e1", UserID: "u1", Status: StatusAttended, CheckInTime: &earlier},
		}
		reg, err := MarkAttended(ledger, "r1", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reg.CheckInTime.Equal(earlier) {
			t.Errorf("check-in time changed on re-mark: %v", reg.CheckInTime)
		}
	})

	t.Run("cancelled row fails", func(t *testing.T) {
		ledger := []*Registration{
			{ID: "r1", EventID: "e1", UserID: "u1", Status: StatusCancelled},
		}
		if _, err := MarkAttended(ledger, "r1", now); !errors.Is(err, ErrNotRegistered) {
			t.Fatalf("expected ErrNotRegistered, got %v", err)
		}
	})

	t.Run("unknown id fails", func(t *testing.T) {
		if _, err := MarkAttended(nil, "r-missing", now); !errors.Is(err, ErrNotRegistered) {
			t.Fatalf("expected ErrNotRegistered, got %v", err)
		}
	})
}

func TestSnapshot(t *testing.T) {
	event := testEvent(5, nil)
	ledger := []*Registration{
		activeReg("r1", "a"),
		{ID: "r2", EventID: "e1", UserID: "b", Status: StatusAttended},
		{ID: "r3", EventID: "e1", UserID: "c", Status: StatusCancelled},
	}
	snap := Snapshot(event, ledger)
	if snap.Capacity != 5 {
		t.Errorf("capacity=%d, want 5", snap.Capacity)
	}
	if snap.Registered != 2 {
		t.Errorf("registered=%d, want 2", snap.Registered)
	}
}
