package controllers

import (
	"log/slog"
	"net/http"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// SubmitFeedbackRequest is the request body for POST /events/{eventID}/feedback.
type SubmitFeedbackRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// Validate implements Validator.
func (s SubmitFeedbackRequest) Validate() []string {
	var errs []string
	if s.Rating < 1 || s.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	return errs
}

// FeedbackListResponse is the paginated response body for GET /admin/feedback.
type FeedbackListResponse struct {
	Feedback   []*domain.Feedback `json:"feedback"`
	Pagination h.PaginationMeta   `json:"pagination"`
}

type FeedbackController struct {
	Logger  *slog.Logger
	Service domain.FeedbackService
}

func NewFeedbackController(logger *slog.Logger, svc domain.FeedbackService) *FeedbackController {
	return &FeedbackController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Submit feedback for an event
// @Description The caller must hold a non-cancelled registration for the event, the event must have ended, and feedback can be submitted at most once per event.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body SubmitFeedbackRequest true "Rating (1-5) and optional comment"
// @Success 201 {object} helpers.APIResponse "data contains the feedback"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/feedback [post]
func (c *FeedbackController) Submit(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req SubmitFeedbackRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	fb, err := c.Service.Submit(r.Context(), eventID, userID, req.Rating, req.Comment)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, fb)
}

// ListByEvent godoc
// @Summary List feedback for an event
// @Tags feedback
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the feedback"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/feedback [get]
func (c *FeedbackController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	list, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, list)
}

// ListMine godoc
// @Summary List the authenticated user's feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the feedback"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendee/feedback [get]
func (c *FeedbackController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	list, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, list)
}

// ListAll godoc
// @Summary List all feedback (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains feedback and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/feedback [get]
func (c *FeedbackController) ListAll(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePagination(r)
	list, total, err := c.Service.ListAll(r.Context(), params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, FeedbackListResponse{
		Feedback:   list,
		Pagination: h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Delete godoc
// @Summary Delete feedback (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param feedbackID path string true "Feedback ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/feedback/{feedbackID} [delete]
func (c *FeedbackController) Delete(w http.ResponseWriter, r *http.Request) {
	feedbackID, ok := pathUUID(w, r, "feedbackID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), feedbackID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
