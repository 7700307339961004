package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/interfaces/http/handlers"
	"firmdesk.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	onboardingHandler *handlers.OnboardingHandler
	documentHandler   *handlers.DocumentHandler
	messageHandler    *handlers.MessageHandler
	adminHandler      *handlers.AdminHandler
	authMiddleware    gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", d.authHandler.Login)
		auth.POST("/refresh", d.authHandler.Refresh)
		auth.POST("/logout", d.authHandler.Logout)
	}

	v1.POST("/onboarding/register", d.onboardingHandler.Register)

	authed := v1.Group("")
	authed.Use(d.authMiddleware)
	{
		authed.GET("/auth/me", d.authHandler.Me)
		authed.POST("/auth/logout-all", d.authHandler.LogoutAll)
		authed.POST("/auth/change-password", d.authHandler.ChangePassword)

		onboarding := authed.Group("/onboarding")
		{
			onboarding.GET("/status", d.onboardingHandler.Status)
			onboarding.GET("/kyc", d.onboardingHandler.MyKYCDocuments)
			onboarding.POST("/kyc", middleware.IdempotencyMiddleware(), d.onboardingHandler.UploadKYC)
			onboarding.GET("/payments", d.onboardingHandler.MyPayments)
			onboarding.POST("/payments", middleware.IdempotencyMiddleware(), d.onboardingHandler.UploadPayment)
		}

		documents := authed.Group("/documents")
		{
			documents.GET("", d.documentHandler.List)
			documents.GET("/:id/download", d.documentHandler.Download)
			documents.POST("", middleware.IdempotencyMiddleware(), d.documentHandler.Upload)
		}

		messages := authed.Group("/messages")
		{
			messages.POST("", d.messageHandler.Send)
			messages.GET("/inbox", d.messageHandler.Inbox)
			messages.GET("/sent", d.messageHandler.Sent)
			messages.GET("/conversation/:userId", d.messageHandler.Conversation)
			messages.PATCH("/:id/read", d.messageHandler.MarkRead)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireStaff())
		{
			admin.GET("/registrations", d.onboardingHandler.PendingRegistrations)
			admin.POST("/registrations/:id/verify", d.onboardingHandler.VerifyRegistration)
			admin.GET("/clients/:id", d.onboardingHandler.ClientDetail)
			admin.POST("/clients/:id/activate", d.onboardingHandler.ActivateClient)
			admin.GET("/kyc/pending", d.onboardingHandler.PendingKYC)
			admin.POST("/kyc/:id/verify", d.onboardingHandler.VerifyKYC)
			admin.GET("/payments/pending", d.onboardingHandler.PendingPayments)
			admin.POST("/payments/:id/verify", d.onboardingHandler.VerifyPayment)
			admin.GET("/managers", d.adminHandler.ManagerCandidates)
			admin.GET("/stats", d.adminHandler.DashboardStats)

			users := admin.Group("/users")
			users.Use(middleware.RequireAdmin())
			{
				users.GET("", d.adminHandler.ListUsers)
				users.POST("", d.adminHandler.CreateUser)
				users.PATCH("/:id/active", d.adminHandler.SetUserActive)
				users.POST("/:id/reset-password", d.adminHandler.ResetUserPassword)
			}
		}
	}
}
