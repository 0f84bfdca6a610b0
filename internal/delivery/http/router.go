package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// Controllers bundles the controllers the router wires up.
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Event       *controllers.EventController
	Attendee    *controllers.AttendeeController
	Feedback    *controllers.FeedbackController
	Certificate *controllers.CertificateController
	Admin       *controllers.AdminController
	Catalog     *controllers.CatalogController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	optional := middleware.OptionalAuth(verifier)
	organizer := middleware.RequireRole(domain.RoleOrganizer, domain.RoleAdmin)
	admin := middleware.RequireRole(domain.RoleAdmin)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Profile and notifications
	mux.HandleFunc("GET /me", auth(c.User.Me))
	mux.HandleFunc("PATCH /me", auth(c.User.UpdateMe))
	mux.HandleFunc("GET /me/notifications", auth(c.User.ListNotifications))
	mux.HandleFunc("POST /me/notifications/{notificationID}/read", auth(c.User.MarkNotificationRead))
	mux.HandleFunc("POST /me/organizer-application", auth(c.User.ApplyOrganizer))

	// Events: public reads, organizer writes
	mux.HandleFunc("GET /events", c.Event.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", optional(c.Event.GetEvent))
	mux.HandleFunc("POST /events", auth(organizer(c.Event.CreateEvent)))
	mux.HandleFunc("PATCH /events/{eventID}", auth(organizer(c.Event.UpdateEvent)))
	mux.HandleFunc("DELETE /events/{eventID}", auth(organizer(c.Event.DeleteEvent)))
	mux.HandleFunc("GET /organizer/events", auth(organizer(c.Event.ListMyEvents)))

	// Tags and categories
	mux.HandleFunc("GET /categories", c.Catalog.ListCategories)
	mux.HandleFunc("GET /tags", c.Catalog.ListTags)
	mux.HandleFunc("GET /events/{eventID}/tags", c.Event.ListEventTags)
	mux.HandleFunc("PUT /events/{eventID}/tags", auth(organizer(c.Event.SetEventTags)))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(c.Attendee.Register))
	mux.HandleFunc("DELETE /events/{eventID}/registrations", auth(c.Attendee.Cancel))
	mux.HandleFunc("GET /attendee/events", auth(c.Attendee.ListMyRegistrations))
	mux.HandleFunc("GET /events/{eventID}/capacity", c.Attendee.GetCapacity)
	mux.HandleFunc("GET /events/{eventID}/attendees", auth(organizer(c.Attendee.ListAttendees)))
	mux.HandleFunc("POST /events/{eventID}/attendees/{registrationID}/attendance", auth(organizer(c.Attendee.MarkAttendance)))

	// Feedback
	mux.HandleFunc("POST /events/{eventID}/feedback", auth(c.Feedback.Submit))
	mux.HandleFunc("GET /events/{eventID}/feedback", c.Feedback.ListByEvent)
	mux.HandleFunc("GET /attendee/feedback", auth(c.Feedback.ListMine))

	// Certificates
	mux.HandleFunc("POST /events/{eventID}/certificates", auth(organizer(c.Certificate.Issue)))
	mux.HandleFunc("GET /events/{eventID}/certificates", auth(organizer(c.Certificate.ListByEvent)))
	mux.HandleFunc("GET /attendee/certificates", auth(c.Certificate.ListMine))

	// Admin
	mux.HandleFunc("GET /admin/events/pending", auth(admin(c.Admin.ListPendingEvents)))
	mux.HandleFunc("POST /admin/events/{eventID}/approval", auth(admin(c.Admin.SetEventApproval)))
	mux.HandleFunc("GET /admin/organizer-approvals", auth(admin(c.Admin.ListOrganizerApprovals)))
	mux.HandleFunc("POST /admin/organizer-approvals/{approvalID}", auth(admin(c.Admin.DecideOrganizerApproval)))
	mux.HandleFunc("GET /admin/users", auth(admin(c.Admin.ListUsers)))
	mux.HandleFunc("POST /admin/users/{userID}/active", auth(admin(c.Admin.SetUserActive)))
	mux.HandleFunc("GET /admin/feedback", auth(admin(c.Feedback.ListAll)))
	mux.HandleFunc("DELETE /admin/feedback/{feedbackID}", auth(admin(c.Feedback.Delete)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
