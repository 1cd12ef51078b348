package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/landgov/backend/api/handler"
	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/internal/middleware"
)

type Handlers struct {
	Auth         *apiHandler.AuthHandler
	Application  *apiHandler.ApplicationHandler
	Plot         *apiHandler.PlotHandler
	Notification *apiHandler.NotificationHandler
	Admin        *apiHandler.AdminHandler
	Health       *apiHandler.HealthHandler
}

type mw = func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New wires the route table. Role guards mirror the workflow contract:
// citizens file and pay, officers and admins review, admins reset.
func New(handlers Handlers, auth mw) *router.Router {
	r := router.New()

	citizen := middleware.RequireRoles(domain.RoleCitizen)
	reviewer := middleware.RequireRoles(domain.RoleOfficer, domain.RoleAdmin)
	anyRole := middleware.RequireRoles(domain.RoleCitizen, domain.RoleOfficer, domain.RoleAdmin)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)

	// Application workflow
	r.POST("/api/v1/applications", auth(citizen(handlers.Application.Submit)))
	r.GET("/api/v1/applications", auth(anyRole(handlers.Application.List)))
	r.GET("/api/v1/applications/{id}", auth(anyRole(handlers.Application.Get)))
	r.PUT("/api/v1/applications/{id}/status", auth(reviewer(handlers.Application.UpdateStatus)))
	r.POST("/api/v1/applications/{id}/payment", auth(citizen(handlers.Application.CompletePayment)))

	// Plot registry
	r.GET("/api/v1/plots", auth(anyRole(handlers.Plot.List)))
	r.GET("/api/v1/plots/{id}", auth(anyRole(handlers.Plot.Get)))

	// Notifications
	r.GET("/api/v1/notifications", auth(anyRole(handlers.Notification.List)))

	// Administration
	r.POST("/api/v1/admin/reset", auth(adminOnly(handlers.Admin.Reset)))

	return r
}
