package routes

import (
	"github.com/gin-gonic/gin"

	declinehandlers "github.com/HIMU202508/TicketingSystem/internal/interfaces/http/handlers/declinerecord"
	"github.com/HIMU202508/TicketingSystem/internal/interfaces/http/middleware"
	"github.com/HIMU202508/TicketingSystem/internal/shared/authorization"
)

type DeclineRouteConfig struct {
	DeclineHandler       *declinehandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupDeclineRoutes(engine *gin.Engine, config *DeclineRouteConfig) {
	declines := engine.Group("/api/declined-tickets")
	declines.Use(
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequirePermission(authorization.ResourceDeclines, authorization.ActionRead),
	)
	{
		declines.GET("", config.DeclineHandler.List)
		declines.GET("/stats", config.DeclineHandler.Stats)
		declines.POST("", config.DeclineHandler.Action)
	}
}
