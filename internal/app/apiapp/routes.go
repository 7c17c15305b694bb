package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Sankalptw/incu-meta/internal/config"
	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
	chatbotsvc "github.com/Sankalptw/incu-meta/internal/services/chatbot"
	dashboardsvc "github.com/Sankalptw/incu-meta/internal/services/dashboard"
	eventsvc "github.com/Sankalptw/incu-meta/internal/services/events"
	matchingsvc "github.com/Sankalptw/incu-meta/internal/services/matching"
	mediasvc "github.com/Sankalptw/incu-meta/internal/services/media"
	meetingsvc "github.com/Sankalptw/incu-meta/internal/services/meetings"
	startupsvc "github.com/Sankalptw/incu-meta/internal/services/startups"
	"github.com/Sankalptw/incu-meta/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService      *authsvc.Service
	JWTManager       *authsvc.JWTManager
	StartupService   *startupsvc.Service
	MatchingService  *matchingsvc.Service
	ChatbotService   *chatbotsvc.Service
	MediaService     *mediasvc.Service
	DashboardService *dashboardsvc.Service
	EventsService    *eventsvc.Service
	MeetingsService  *meetingsvc.Service
	Logger           *zap.Logger
	Config           config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	startupHandler := handlers.NewStartupHandler(deps.StartupService)
	matchingHandler := handlers.NewMatchingHandler(deps.MatchingService)
	chatbotHandler := handlers.NewChatbotHandler(deps.ChatbotService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService, deps.StartupService)
	dashboardHandler := handlers.NewDashboardHandler(deps.DashboardService)
	eventsHandler := handlers.NewEventsHandler(deps.EventsService)
	meetingsHandler := handlers.NewMeetingsHandler(deps.MeetingsService)

	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)
	startupRoleMW := RequireRole(enums.RoleStartup)
	incubatorRoleMW := RequireRole(enums.RoleIncubator)
	adminRoleMW := RequireRole(enums.RoleAdmin)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/startup/register", authHandler.RegisterStartup)
		r.Post("/startup/login", authHandler.LoginStartup)
		r.Post("/account/register", authHandler.RegisterAccount)
		r.Post("/account/login", authHandler.LoginAccount)
	})

	r.Route("/api/startup", func(r chi.Router) {
		r.Use(authMW, startupRoleMW)
		r.Get("/profile", startupHandler.Profile)
		r.Put("/profile", startupHandler.UpdateAll)
		r.Put("/profile/basic", startupHandler.UpdateBasic)
		r.Put("/profile/problem-solution", startupHandler.UpdateProblemSolution)
		r.Put("/profile/team", startupHandler.UpdateTeam)
		r.Put("/profile/traction", startupHandler.UpdateTraction)
		r.Put("/profile/financials", startupHandler.UpdateFinancials)
		r.Put("/profile/funding", startupHandler.UpdateFunding)
		r.Put("/profile/visibility", startupHandler.UpdateVisibility)
		r.Post("/logo", mediaHandler.UploadLogo)
		r.Post("/documents/{slot}", mediaHandler.UploadDocument)
		r.Get("/documents/{slot}", mediaHandler.DownloadDocument)
		r.Get("/dashboard", dashboardHandler.StartupOverview)
		r.Get("/meetings", meetingsHandler.ListMine)
	})

	r.Route("/api/matching", func(r chi.Router) {
		r.Use(authMW)
		r.With(startupRoleMW).Post("/requests", matchingHandler.Create)
		r.With(startupRoleMW).Get("/requests", matchingHandler.ListForStartup)
		r.With(startupRoleMW).Post("/requests/{requestID}/select", matchingHandler.Select)
		r.With(startupRoleMW).Get("/requests/{requestID}/interested", matchingHandler.InterestedIncubators)
		r.With(incubatorRoleMW).Get("/incoming", matchingHandler.ListForIncubator)
		r.With(incubatorRoleMW).Get("/requests/{requestID}", matchingHandler.Detail)
		r.With(incubatorRoleMW).Post("/requests/{requestID}/respond", matchingHandler.Respond)
	})

	r.Route("/api/legal", func(r chi.Router) {
		r.Use(authMW)
		r.Post("/chat", chatbotHandler.Chat)
		r.Get("/chat-history", chatbotHandler.History)
		r.Delete("/chat-history", chatbotHandler.ClearHistory)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMW, adminRoleMW)
		r.Get("/dashboard", dashboardHandler.AdminOverview)
		r.Get("/startups", startupHandler.List)
		r.Get("/startups/{startupID}", startupHandler.GetByID)
		r.Post("/startups/{startupID}/approve", startupHandler.Approve)
		r.Post("/events", eventsHandler.CreateEvent)
		r.Get("/events", eventsHandler.ListEvents)
		r.Delete("/events/{eventID}", eventsHandler.DeleteEvent)
		r.Post("/announcements", eventsHandler.CreateAnnouncement)
		r.Get("/announcements", eventsHandler.ListAnnouncements)
		r.Delete("/announcements/{announcementID}", eventsHandler.DeleteAnnouncement)
		r.Post("/meetings", meetingsHandler.Schedule)
		r.Get("/meetings", meetingsHandler.List)
		r.Delete("/meetings/{meetingID}", meetingsHandler.Cancel)
	})

	// community surfaces readable by any signed-in account
	r.Route("/api/community", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/events", eventsHandler.ListEvents)
		r.Get("/announcements", eventsHandler.ListAnnouncements)
		r.Get("/startups/{startupID}", startupHandler.PublicProfile)
	})
}
