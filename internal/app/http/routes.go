package routes

import (
	adminapi "membership-app/internal/api/admin"
	authapi "membership-app/internal/api/auth"
	billingapi "membership-app/internal/api/billing"
	crewapi "membership-app/internal/api/crew"
	financeapi "membership-app/internal/api/finance"
	institutionapi "membership-app/internal/api/institution"
	meapi "membership-app/internal/api/me"
	stripewebhooks "membership-app/internal/api/stripewebhook"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public, with input sanitization on mutating JSON bodies.
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/login", authapi.Login)
	public.POST("/claim-account", authapi.ClaimAccount)
	public.POST("/verify-otp", authapi.VerifyOTP)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated but not route-gated: the SPA needs these while the
	// account is still pending or rejected.
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", meapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	// Everything under /api passes the two-layer gate: status first,
	// then role, against the logical dashboard path.
	gated := r.Group("/api")
	gated.Use(middleware.AuthMiddleware(), middleware.AccessGate(access.DefaultRoutes))

	// Status pages: reachable exactly by the status that owns them.
	gated.GET("/pending", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "pending", "message": "Your account is awaiting review by your regional admin."})
	})
	gated.GET("/rejected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "rejected", "message": "Your account was rejected. Contact your regional admin to appeal."})
	})
	gated.GET("/403", func(c *gin.Context) {
		// Terminal page: the payload carries no onward redirect target.
		c.JSON(403, gin.H{"status": "forbidden", "message": "You do not have access to that area."})
	})

	// Member area
	gated.GET("/media-dashboard/institution", institutionapi.GetProfile)
	gated.PUT("/media-dashboard/institution", institutionapi.UpdateProfile)
	gated.POST("/media-dashboard/institution/level", institutionapi.ClaimLevel)

	crewHandler := crewapi.NewHandler()
	gated.GET("/media-dashboard/crew", crewHandler.List)
	gated.POST("/media-dashboard/crew", crewHandler.Add)
	gated.PUT("/media-dashboard/crew/:id/role", crewHandler.ChangeRole)
	gated.DELETE("/media-dashboard/crew/:id", crewHandler.Delete)

	gated.POST("/media-dashboard/payment/checkout", billingapi.CreateCheckoutSession)
	gated.POST("/media-dashboard/payment/transfer", billingapi.SubmitTransfer)

	// Regional admin area
	gated.GET("/regional-dashboard/claims", adminapi.ListPendingProfiles)
	gated.POST("/regional-dashboard/claims/:id/decision", adminapi.DecideProfile)

	// Central admin area
	gated.GET("/dashboard/institutions", adminapi.ListInstitutions)
	gated.GET("/dashboard/claims", adminapi.ListPendingProfiles)
	gated.PUT("/dashboard/settings/price", adminapi.UpdateActivationPrice)
	gated.GET("/admin/regional/:id", adminapi.RegionalDetail)

	gated.GET("/finance/payments", financeapi.ListPayments)
	gated.POST("/finance/payments/:id/verify", financeapi.VerifyTransfer)
}
