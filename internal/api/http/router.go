package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mabat-platform/support-service/internal/api/http/handlers"
	"github.com/mabat-platform/support-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Notifications  *handlers.NotificationsHandler
	Hotels         *handlers.HotelsHandler
	Users          *handlers.UsersHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	app.Get("/categories", cfg.AuthMiddleware.Handle, cfg.Tickets.ListCategories)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", auth.RequireCapability(auth.CapCreateTicket), cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/responses", auth.RequireCapability(auth.CapRespond), cfg.Tickets.AddResponse)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/assign", auth.RequireCapability(auth.CapAssign), cfg.Tickets.AssignTicket)
	tickets.Post("/:id/rating", auth.RequireCapability(auth.CapRateTicket), cfg.Tickets.RateTicket)

	notifications := app.Group("/notifications", cfg.AuthMiddleware.Handle)
	notifications.Get("", cfg.Notifications.ListNotifications)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle)
	admin.Get("/dashboard", auth.RequireCapability(auth.CapViewDashboard), cfg.Dashboard.Dashboard)

	hotels := admin.Group("/hotels", auth.RequireCapability(auth.CapManageHotels))
	hotels.Post("", cfg.Hotels.CreateHotel)
	hotels.Get("", cfg.Hotels.ListHotels)
	hotels.Put("/:id", cfg.Hotels.UpdateHotel)

	users := admin.Group("/users", auth.RequireCapability(auth.CapManageUsers))
	users.Post("", cfg.Users.CreateUser)
	users.Get("", cfg.Users.ListUsers)
	users.Patch("/:id/active", cfg.Users.SetUserActive)
}
