package main

import (
	"github.com/gin-gonic/gin"
	"startup-platform.backend/internal/interfaces/http/handlers"
	"startup-platform.backend/internal/interfaces/http/middleware"
	"startup-platform.backend/pkg/jwt"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	userHandler      *handlers.UserHandler
	startupHandler   *handlers.StartupHandler
	mentorHandler    *handlers.MentorHandler
	analyticsHandler *handlers.AnalyticsHandler
	webhookHandler   *handlers.WebhookHandler
	healthHandler    *handlers.HealthHandler
	jwtService       *jwt.JWTService
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	requireAuth := middleware.AuthMiddleware(d.jwtService)
	optionalAuth := middleware.OptionalAuthMiddleware(d.jwtService)

	api := r.Group("/api")
	{
		api.GET("/health", d.healthHandler.Health)

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", requireAuth, d.authHandler.Me)
		}

		// Telegram account linking
		user := api.Group("/user")
		{
			user.POST("/telegram/link", requireAuth, d.userHandler.LinkTelegram)
			// Called by the bot after the user messages it, no user auth
			user.POST("/telegram/confirm", d.userHandler.ConfirmTelegram)
		}

		// Startup catalog and engagement
		startups := api.Group("/startups")
		{
			startups.GET("", optionalAuth, d.startupHandler.List)
			startups.POST("", requireAuth, middleware.IdempotencyMiddleware(), d.startupHandler.Create)
			startups.GET("/:id", optionalAuth, d.startupHandler.Get)
			startups.POST("/:id/like", requireAuth, d.startupHandler.ToggleLike)
			startups.GET("/:id/comments", d.startupHandler.ListComments)
			startups.POST("/:id/comments", requireAuth, d.startupHandler.CreateComment)
			startups.POST("/:id/contact", requireAuth, d.startupHandler.Contact)
		}

		// Mentor directory (public) and mentorship lifecycle (protected)
		api.GET("/mentors", d.mentorHandler.ListMentors)
		mentorship := api.Group("/mentorship")
		mentorship.Use(requireAuth)
		{
			mentorship.POST("/request", d.mentorHandler.CreateRequest)
			mentorship.POST("/requests/:id/respond", d.mentorHandler.Respond)
			mentorship.POST("/requests/:id/complete", d.mentorHandler.Complete)
		}

		// Owner analytics and cached matches
		api.GET("/analytics/startup/:id", requireAuth, d.analyticsHandler.StartupAnalytics)
		api.GET("/ai/matching/startup/:id", requireAuth, d.analyticsHandler.StartupMatches)

		// Inbound bot updates
		api.POST("/webhook/telegram", d.webhookHandler.Telegram)
	}
}
