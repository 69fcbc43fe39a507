package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	"github.com/glowbook/salon-api/internal/cache"
	"github.com/glowbook/salon-api/internal/config"
	"github.com/glowbook/salon-api/internal/handlers"
	infraRepo "github.com/glowbook/salon-api/internal/infra/repository"
	"github.com/glowbook/salon-api/internal/logger"
	"github.com/glowbook/salon-api/internal/mailer"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/notify"
	"github.com/glowbook/salon-api/internal/paystack"
	"github.com/glowbook/salon-api/internal/sms"
	"github.com/glowbook/salon-api/internal/storage"
	ucAmendment "github.com/glowbook/salon-api/internal/usecase/amendment"
	ucInvoice "github.com/glowbook/salon-api/internal/usecase/invoice"
	ucVerification "github.com/glowbook/salon-api/internal/usecase/verification"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	verificationRepo := infraRepo.NewVerificationGormRepository(db)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(db)
	amendmentRepo := infraRepo.NewAmendmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mailClient := mailer.NewClient(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	notifyDispatcher := notify.NewDispatcher(db, mailClient)

	smsClient := sms.NewClient(cfg.SMSAPIURL, cfg.SMSAPIToken)
	paystackClient := paystack.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey)
	store := storage.New(cfg)

	statsCache, err := cache.NewFromURL(cfg.RedisURL)
	if err != nil {
		// Stats fall back to live counts when redis is unreachable.
		logger.Warn("redis unavailable, stats cache disabled", zap.Error(err))
		statsCache = nil
	}

	// ======================================================
	// 🧠 USE CASES — VERIFICATION
	// ======================================================
	getOrCreateChecklistUC := ucVerification.NewGetOrCreateChecklist(
		verificationRepo,
	)

	setChecklistItemUC := ucVerification.NewSetChecklistItem(
		verificationRepo,
		auditDispatcher,
	)

	grantFinalApprovalUC := ucVerification.NewGrantFinalApproval(
		verificationRepo,
		notifyDispatcher,
		auditDispatcher,
	)

	setProfileStatusUC := ucVerification.NewSetProfileStatus(
		verificationRepo,
		notifyDispatcher,
		auditDispatcher,
	)

	// ======================================================
	// 🧠 USE CASES — INVOICES & AMENDMENTS
	// ======================================================
	generateInvoiceUC := ucInvoice.NewGenerateInvoice(invoiceRepo)

	requestAmendmentUC := ucAmendment.NewRequestAmendment(
		amendmentRepo,
		auditDispatcher,
	)

	resolveAmendmentUC := ucAmendment.NewResolveAmendment(
		amendmentRepo,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	publicHandler := handlers.NewPublicHandler(db)

	businessHandler := handlers.NewBusinessHandler(db, setProfileStatusUC)
	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	bookingHandler := handlers.NewBookingHandler(db, smsClient)
	paymentHandler := handlers.NewPaymentHandler(db, paystackClient)
	uploadHandler := handlers.NewUploadHandler(db, store)

	verificationHandler := handlers.NewVerificationHandler(
		db,
		getOrCreateChecklistUC,
		setChecklistItemUC,
		grantFinalApprovalUC,
		setProfileStatusUC,
	)

	paymentSettingHandler := handlers.NewPaymentSettingHandler(db, statsCache)
	amendmentHandler := handlers.NewAmendmentHandler(db, requestAmendmentUC, resolveAmendmentUC)
	invoiceHandler := handlers.NewInvoiceHandler(generateInvoiceUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/salons", publicHandler.ListSalons)
			publicAPI.GET("/salons/:slug", publicHandler.GetSalon)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.RegisterCustomer)
		api.POST("/auth/register-business", authHandler.RegisterBusiness)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// CUSTOMER BOOKINGS
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.ListMine)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

			secured.POST("/bookings/:id/pay", paymentHandler.Initialize)
			secured.GET("/payments/verify/:reference", paymentHandler.Verify)

			// ------------------------------
			// BUSINESS (OWNER + STYLIST)
			// ------------------------------
			business := secured.Group("/business")
			business.Use(middleware.RequireRoles(models.RoleOwner, models.RoleStylist))
			{
				business.GET("", businessHandler.GetMyBusiness)
				business.PATCH("", businessHandler.UpdateMyBusiness)
				business.POST("/submit-for-review", businessHandler.SubmitForReview)

				business.GET("/services", serviceHandler.List)
				business.POST("/services", serviceHandler.Create)
				business.PATCH("/services/:id", serviceHandler.Update)

				business.GET("/staff", staffHandler.List)
				business.POST("/staff", staffHandler.Create)
				business.PATCH("/staff/:id", staffHandler.Update)
				business.DELETE("/staff/:id", staffHandler.Remove)

				business.GET("/bookings", bookingHandler.ListByMonth)
				business.PATCH("/bookings/:id/complete", bookingHandler.Complete)
				business.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

				business.POST("/avatar", uploadHandler.UploadAvatar)
				business.POST("/banner", uploadHandler.UploadBanner)
				business.POST("/documents", uploadHandler.UploadDocument)
				business.GET("/documents", uploadHandler.ListDocuments)
			}

			// ------------------------------
			// 🛡️ ADMIN CONSOLE (EMPLOYEE + SUPER)
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleEmployee, models.RoleSuper))
			{
				admin.GET("/businesses", verificationHandler.ListBusinesses)
				admin.GET("/businesses/:id", verificationHandler.GetBusiness)
				admin.GET("/businesses/:id/checklist", verificationHandler.GetChecklist)
				admin.PATCH("/checklists/:checklistId/items", verificationHandler.SetChecklistItem)
				admin.POST("/checklists/:checklistId/final-approval", verificationHandler.GrantFinalApproval)
				admin.PATCH("/businesses/:id/status", verificationHandler.SetStatus)
				admin.GET("/businesses/:id/email-logs", verificationHandler.ListEmailLogs)

				admin.GET("/businesses/:id/documents", uploadHandler.ListDocumentsAdmin)
				admin.GET("/documents/:docId/download", uploadHandler.DownloadDocument)

				admin.GET("/businesses/:id/payment-settings", paymentSettingHandler.Get)
				admin.PUT("/businesses/:id/payment-settings", paymentSettingHandler.Upsert)
				admin.GET("/payment-stats", paymentSettingHandler.Stats)

				admin.POST("/businesses/:id/amendments", amendmentHandler.Create)
				admin.GET("/amendments", amendmentHandler.List)
				admin.POST("/amendments/:id/resolve", amendmentHandler.Resolve)

				admin.GET("/hairdressers/:id/invoice", invoiceHandler.Generate)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
