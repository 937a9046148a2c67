package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/HIMU202508/TicketingSystem/internal/interfaces/http/handlers/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/interfaces/http/middleware"
	"github.com/HIMU202508/TicketingSystem/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	// RateLimiter guards the public submission endpoint. Nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/api/tickets")
	{
		// Submission is open to the public form
		submit := []gin.HandlerFunc{}
		if config.RateLimiter != nil {
			submit = append(submit, config.RateLimiter.Limit("ticket-submit"))
		}
		submit = append(submit, config.TicketHandler.CreateTicket)
		tickets.POST("", submit...)
		tickets.GET("/number", config.TicketHandler.GenerateTicketNumber)

		authed := tickets.Group("", config.AuthMiddleware.RequireAuth())
		authed.GET("",
			config.TicketHandler.ListTickets)
		authed.GET("/:id",
			config.TicketHandler.GetTicket)
		authed.PATCH("/:id",
			config.PermissionMiddleware.RequirePermission(authorization.ResourceTickets, authorization.ActionUpdate),
			config.TicketHandler.UpdateTicket)
		authed.DELETE("/:id",
			config.PermissionMiddleware.RequirePermission(authorization.ResourceTickets, authorization.ActionDelete),
			config.TicketHandler.DeleteTicket)
	}
}
