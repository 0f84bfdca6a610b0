package services

import (
	"context"
	"strconv"
	"time"

	"campusevents/internal/domain"
)

type mockUserRepository struct {
	users            map[string]*domain.User
	usersByEmail     map[string]*domain.User
	roles            map[string]domain.Role
	pendingApprovals []*domain.OrganizerApproval
	err              error
	createErr        error
	approvalErr      error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.usersByEmail != nil {
		if _, ok := m.usersByEmail[user.Email]; ok {
			return domain.ErrDuplicateEmail
		}
	}
	user.ID = "u-" + strconv.Itoa(len(m.users)+1)
	return nil
}

// CreateWithPendingApproval mirrors the repo's atomicity: on failure neither
// the user nor the approval is recorded.
func (m *mockUserRepository) CreateWithPendingApproval(ctx context.Context, user *domain.User, appr *domain.OrganizerApproval) error {
	if m.approvalErr != nil {
		return m.approvalErr
	}
	if err := m.Create(ctx, user); err != nil {
		return err
	}
	appr.ID = "a-" + strconv.Itoa(len(m.pendingApprovals)+1)
	appr.UserID = user.ID
	m.pendingApprovals = append(m.pendingApprovals, appr)
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) SetRole(ctx context.Context, userID string, role domain.Role) error {
	if m.err != nil {
		return m.err
	}
	if m.roles == nil {
		m.roles = map[string]domain.Role{}
	}
	m.roles[userID] = role
	return nil
}

func (m *mockUserRepository) SetActive(ctx context.Context, userID string, active bool) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.User, int, error) {
	return nil, 0, m.err
}

func (m *mockUserRepository) ListActive(ctx context.Context) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.User
	for _, u := range m.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "e-new"
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) ListApproved(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		if ev.Approved() {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		if ev.OrganizerID == organizerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListByApprovalStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		if ev.ApprovalStatus == status {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		ev.Title = *upd.Title
	}
	if upd.Capacity != nil {
		ev.Capacity = *upd.Capacity
	}
	return ev, nil
}

func (m *mockEventRepository) SetApprovalStatus(ctx context.Context, eventID string, status domain.ApprovalStatus) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ev.ApprovalStatus = status
	return ev, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

type mockRegistrationRepository struct {
	regsByEvent map[string][]*domain.Registration
	regsByUser  map[string][]*domain.Registration
	registerErr error
	err         error
}

func (m *mockRegistrationRepository) Register(ctx context.Context, eventID, userID string, now time.Time) (*domain.Registration, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return &domain.Registration{
		ID:           "r-new",
		EventID:      eventID,
		UserID:       userID,
		Status:       domain.StatusRegistered,
		RegisteredAt: now,
	}, nil
}

func (m *mockRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.regsByEvent[eventID] {
		if r.UserID == userID && r.Active() {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, regs := range m.regsByEvent {
		for _, r := range regs {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.regsByEvent[eventID], nil
}

func (m *mockRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.regsByUser[userID], nil
}

func (m *mockRegistrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus, checkInTime *time.Time) (*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, regs := range m.regsByEvent {
		for _, r := range regs {
			if r.ID == id {
				r.Status = status
				if checkInTime != nil {
					r.CheckInTime = checkInTime
				}
				return r, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

type mockFeedbackRepository struct {
	byEventAndUser map[string]*domain.Feedback
	createErr      error
	err            error
}

func (m *mockFeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	if m.createErr != nil {
		return m.createErr
	}
	fb.ID = "f-new"
	return nil
}

func (m *mockFeedbackRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Feedback, error) {
	if m.err != nil {
		return nil, m.err
	}
	if fb, ok := m.byEventAndUser[eventID+":"+userID]; ok {
		return fb, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockFeedbackRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Feedback, error) {
	return nil, m.err
}

func (m *mockFeedbackRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Feedback, error) {
	return nil, m.err
}

func (m *mockFeedbackRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Feedback, int, error) {
	return nil, 0, m.err
}

func (m *mockFeedbackRepository) Delete(ctx context.Context, id string) error {
	return m.err
}

type mockCertificateRepository struct {
	byEventAndStudent map[string]*domain.Certificate
	byStudent         map[string][]*domain.Certificate
	createErr         error
	err               error
}

func (m *mockCertificateRepository) Create(ctx context.Context, cert *domain.Certificate) error {
	if m.createErr != nil {
		return m.createErr
	}
	cert.ID = "c-new"
	return nil
}

func (m *mockCertificateRepository) GetByEventAndStudent(ctx context.Context, eventID, studentID string) (*domain.Certificate, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.byEventAndStudent[eventID+":"+studentID]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockCertificateRepository) ListByStudentID(ctx context.Context, studentID string) ([]*domain.Certificate, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byStudent[studentID], nil
}

func (m *mockCertificateRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Certificate, error) {
	return nil, m.err
}

type mockOrganizerApprovalRepository struct {
	approvals map[string]*domain.OrganizerApproval
	created   []*domain.OrganizerApproval
	err       error
}

func (m *mockOrganizerApprovalRepository) Create(ctx context.Context, appr *domain.OrganizerApproval) error {
	if m.err != nil {
		return m.err
	}
	appr.ID = "a-" + strconv.Itoa(len(m.created)+1)
	m.created = append(m.created, appr)
	return nil
}

func (m *mockOrganizerApprovalRepository) GetByID(ctx context.Context, id string) (*domain.OrganizerApproval, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.approvals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockOrganizerApprovalRepository) GetPendingByUserID(ctx context.Context, userID string) (*domain.OrganizerApproval, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.approvals {
		if a.UserID == userID && a.Status == domain.ApprovalPending {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockOrganizerApprovalRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.OrganizerApproval, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.OrganizerApproval
	for _, a := range m.approvals {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockOrganizerApprovalRepository) SetStatus(ctx context.Context, id string, status domain.ApprovalStatus, adminID string, reason *string) (*domain.OrganizerApproval, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.approvals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Status = status
	a.AdminID = &adminID
	a.Reason = reason
	return a, nil
}

type mockNotificationRepository struct {
	created []*domain.Notification
	err     error
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return nil, m.err
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	return m.err
}

type mockCategoryRepository struct {
	categories map[string]*domain.EventCategory
	err        error
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.EventCategory, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.EventCategory, error) {
	return nil, m.err
}

type mockTagRepository struct {
	tagsByEvent map[string][]*domain.EventTag
	replaced    map[string][]string
	err         error
}

func (m *mockTagRepository) List(ctx context.Context) ([]*domain.EventTag, error) {
	return nil, m.err
}

func (m *mockTagRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventTag, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tagsByEvent[eventID], nil
}

func (m *mockTagRepository) ReplaceEventTags(ctx context.Context, eventID string, tagIDs []string) error {
	if m.err != nil {
		return m.err
	}
	if m.replaced == nil {
		m.replaced = map[string][]string{}
	}
	m.replaced[eventID] = tagIDs
	return nil
}

type mockEmailService struct {
	welcomeSent       int
	announcementsSent int
	err               error
}

func (m *mockEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.welcomeSent++
	return nil
}

func (m *mockEmailService) SendEventAnnouncement(ctx context.Context, data *domain.EventAnnouncementEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.announcementsSent++
	return nil
}

type mockHasher struct {
	compareErr error
}

func (m *mockHasher) GenerateSalt() (string, error) { return "salt", nil }

func (m *mockHasher) Hash(salt, password string) (string, error) { return "hash:" + password, nil }

func (m *mockHasher) Compare(hash, salt, password string) error { return m.compareErr }

type mockTokenIssuer struct {
	err error
}

func (m *mockTokenIssuer) Issue(userID, email string, role domain.Role, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-" + userID, nil
}
