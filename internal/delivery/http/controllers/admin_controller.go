package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// DecisionRequest is the request body for admin approval endpoints.
type DecisionRequest struct {
	Status string  `json:"status"` // "approved" or "rejected"
	Reason *string `json:"reason"`
}

// Validate implements Validator.
func (d DecisionRequest) Validate() []string {
	var errs []string
	status := strings.TrimSpace(strings.ToLower(d.Status))
	if status != "approved" && status != "rejected" {
		errs = append(errs, "status must be \"approved\" or \"rejected\"")
	}
	return errs
}

// SetUserActiveRequest is the request body for POST /admin/users/{userID}/active.
type SetUserActiveRequest struct {
	Active bool `json:"active"`
}

// EventApprovalResponse is the response body for POST /admin/events/{eventID}/approval.
type EventApprovalResponse struct {
	Event        *domain.Event              `json:"event"`
	Announcement *domain.AnnouncementResult `json:"announcement,omitempty"`
}

// UserListResponse is the paginated response body for GET /admin/users.
type UserListResponse struct {
	Users      []*domain.User   `json:"users"`
	Pagination h.PaginationMeta `json:"pagination"`
}

type AdminController struct {
	Logger    *slog.Logger
	Events    domain.EventService
	Approvals domain.OrganizerApprovalService
	Users     domain.UserService
}

func NewAdminController(logger *slog.Logger, events domain.EventService, approvals domain.OrganizerApprovalService, users domain.UserService) *AdminController {
	return &AdminController{
		Logger:    logger,
		Events:    events,
		Approvals: approvals,
		Users:     users,
	}
}

// ListPendingEvents godoc
// @Summary List events awaiting review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the pending events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/pending [get]
func (c *AdminController) ListPendingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.ListPendingEvents(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// SetEventApproval godoc
// @Summary Approve or reject an event
// @Description Moves a pending event to approved or rejected. Approved is terminal. On approval, the announcement email batch runs and its sent/failed counts are returned alongside the event.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body DecisionRequest true "Decision"
// @Success 200 {object} helpers.APIResponse "data contains the event and announcement counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/approval [post]
func (c *AdminController) SetEventApproval(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req DecisionRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	status := domain.ApprovalStatus(strings.TrimSpace(strings.ToLower(req.Status)))
	event, announcement, err := c.Events.SetEventApproval(r.Context(), eventID, status)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, EventApprovalResponse{
		Event:        event,
		Announcement: announcement,
	})
}

// ListOrganizerApprovals godoc
// @Summary List pending organizer applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the pending applications"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/organizer-approvals [get]
func (c *AdminController) ListOrganizerApprovals(w http.ResponseWriter, r *http.Request) {
	list, err := c.Approvals.ListPending(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, list)
}

// DecideOrganizerApproval godoc
// @Summary Approve or reject an organizer application
// @Description Approval promotes the applicant to the organizer role and notifies them.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param approvalID path string true "Application ID (UUID)"
// @Param body body DecisionRequest true "Decision"
// @Success 200 {object} helpers.APIResponse "data contains the decided application"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/organizer-approvals/{approvalID} [post]
func (c *AdminController) DecideOrganizerApproval(w http.ResponseWriter, r *http.Request) {
	approvalID, ok := pathUUID(w, r, "approvalID")
	if !ok {
		return
	}
	var req DecisionRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	adminID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	status := domain.ApprovalStatus(strings.TrimSpace(strings.ToLower(req.Status)))
	appr, err := c.Approvals.Decide(r.Context(), approvalID, adminID, status, req.Reason)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, appr)
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains users and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePagination(r)
	users, total, err := c.Users.ListUsers(r.Context(), params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, UserListResponse{
		Users:      users,
		Pagination: h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// SetUserActive godoc
// @Summary Activate or deactivate a user
// @Description Deactivated users cannot log in.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body SetUserActiveRequest true "Active flag"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{userID}/active [post]
func (c *AdminController) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	var req SetUserActiveRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Users.SetUserActive(r.Context(), userID, req.Active)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}
