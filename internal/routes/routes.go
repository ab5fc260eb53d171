package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tourkita/tourkita-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Public app routes (the mobile app hits these)
	r.Post("/api/feedback", handlers.SubmitFeedback)
	r.Get("/api/markers", handlers.GetMarkers)
	r.Get("/api/events", handlers.GetEvents)
	r.Get("/api/content/{slug}", handlers.GetContent)

	// Admin auth routes (signup removed - admin accounts must be created directly in database)
	r.Post("/api/admin/signin", handlers.AdminSignin)
	r.Post("/api/admin/signout", handlers.AdminSignout)
	r.Get("/api/admin/me", handlers.AdminMe)

	// User management
	r.Get("/api/admin/users", handlers.GetUsers)
	r.Get("/api/admin/guests", handlers.GetGuests)
	r.Put("/api/admin/users/{id}/archive", handlers.ArchiveUser)
	r.Put("/api/admin/users/{id}/restore", handlers.RestoreUser)
	r.Delete("/api/admin/users/{id}", handlers.DeleteUser)
	r.Get("/api/admin/users/export/csv", handlers.ExportUsersCSV)
	r.Get("/api/admin/users/export/pdf", handlers.ExportUsersPDF)

	// Feedback review
	r.Get("/api/admin/feedbacks", handlers.GetFeedbacks)
	r.Delete("/api/admin/feedbacks/{id}", handlers.DeleteFeedback)
	r.Post("/api/admin/feedbacks/{id}/reply", handlers.ReplyFeedback)
	r.Get("/api/admin/feedbacks/{id}/replies", handlers.GetFeedbackReplies)

	// Analysis reports (time-bucketed drill-down over feedback)
	r.Get("/api/admin/reports/summary", handlers.GetReportSummary)
	r.Get("/api/admin/reports/summary/pdf", handlers.ExportReportPDF)
	r.Get("/api/admin/reports/drilldown", handlers.GetReportDrilldown)

	// Map markers and events
	r.Post("/api/admin/markers", handlers.CreateMarker)
	r.Put("/api/admin/markers/{id}", handlers.UpdateMarker)
	r.Delete("/api/admin/markers/{id}", handlers.DeleteMarker)
	r.Post("/api/admin/events", handlers.CreateEvent)
	r.Put("/api/admin/events/{id}", handlers.UpdateEvent)
	r.Delete("/api/admin/events/{id}", handlers.DeleteEvent)

	// Notifications
	r.Get("/api/admin/notifications", handlers.GetNotifications)
	r.Post("/api/admin/notifications", handlers.CreateNotification)
	r.Put("/api/admin/notifications/{id}", handlers.UpdateNotification)
	r.Post("/api/admin/notifications/{id}/send", handlers.SendNotification)
	r.Delete("/api/admin/notifications/{id}", handlers.DeleteNotification)

	// Content editor
	r.Put("/api/admin/content/{slug}", handlers.UpdateContent)

	// Uploads and geocoding
	r.Post("/api/admin/upload", handlers.UploadImage)
	r.Get("/api/admin/geocode/reverse", handlers.ReverseGeocode)

	// Activity insights
	r.Post("/api/admin/activity", handlers.RecordActivity)
	r.Get("/api/admin/insights", handlers.GetInsights)

	// WebSocket endpoint for the live dashboard feed
	r.Get("/ws/feed", handlers.FeedWebSocket)
}
