package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devlaunch/academy-api/config"
	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/handlers"
	admin_handlers "github.com/devlaunch/academy-api/handlers/admin"
	announcement_handlers "github.com/devlaunch/academy-api/handlers/announcement"
	auth_handlers "github.com/devlaunch/academy-api/handlers/auth"
	blog_handlers "github.com/devlaunch/academy-api/handlers/blog"
	contact_handlers "github.com/devlaunch/academy-api/handlers/contact"
	course_handlers "github.com/devlaunch/academy-api/handlers/course"
	notification_handlers "github.com/devlaunch/academy-api/handlers/notification"
	payment_handlers "github.com/devlaunch/academy-api/handlers/payment"
	video_handlers "github.com/devlaunch/academy-api/handlers/video"
	"github.com/devlaunch/academy-api/services/razorpay"
	"github.com/devlaunch/academy-api/services/storage"
	"github.com/devlaunch/academy-api/utils"
	"github.com/devlaunch/academy-api/utils/auth"
	"github.com/devlaunch/academy-api/utils/cache"
	"github.com/devlaunch/academy-api/utils/middleware"
)

// SetupRoutes wires every endpoint. All collaborators are constructed here,
// once, from the injected store and environment.
func SetupRoutes(app *fiber.App, store database.Storage, getEnv *config.EnviornmentVariable) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "devlaunch-academy-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:     getEnv.JWT_SECRET,
		Issuer:     jwtIssuer,
		AccessTTL:  24 * time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	})

	db := store.DB()

	// Redis cache for brute force protection
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Razorpay gateway client. Nil when credentials are absent: order
	// creation and enrollment then fail fast instead of half-working.
	var gateway *razorpay.Client
	if getEnv.RAZORPAY_KEY_ID != "" && getEnv.RAZORPAY_KEY_SECRET != "" {
		gateway = razorpay.NewClient(razorpay.Config{
			KeyID:     getEnv.RAZORPAY_KEY_ID,
			KeySecret: getEnv.RAZORPAY_KEY_SECRET,
		})
	} else {
		log.Println("Warning: Razorpay credentials not configured. Payment endpoints will reject requests.")
	}

	// Object storage for admin media uploads
	var spaces *storage.SpacesClient
	if getEnv.SPACES_KEY != "" && getEnv.SPACES_SECRET != "" {
		spaces, err = storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: getEnv.SPACES_KEY,
			SecretKey: getEnv.SPACES_SECRET,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			CDNURL:    getEnv.SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize object storage: %v. Uploads will be disabled.", err)
		}
	}

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	courseHandler := course_handlers.NewCourseHandler(db)
	blogHandler := blog_handlers.NewBlogHandler(db)
	videoHandler := video_handlers.NewVideoHandler(db)
	announcementHandler := announcement_handlers.NewAnnouncementHandler(db)
	contactHandler := contact_handlers.NewContactHandler(db)
	notificationHandler := notification_handlers.NewNotificationHandler(db)
	paymentHandler := payment_handlers.NewPaymentHandler(db, gateway, getEnv.RAZORPAY_KEY_SECRET)
	uploadHandler := admin_handlers.NewUploadHandler(spaces)

	// Security middleware
	allowedOrigins := getEnv.ALLOWED_ORIGINS
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	api := app.Group("/api")

	// Payment flow. Order creation and the standalone verify are reachable
	// pre-login (the checkout widget runs on the public page); enrollment
	// itself requires the caller to be signed in.
	api.Post("/razorpay/order", paymentHandler.CreateOrder)
	api.Post("/razorpay/verify", paymentHandler.Verify)
	api.Post("/enroll", authMiddleware.Required(), paymentHandler.Enroll)

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Course catalog. All public: listing, detail by id or slug, and the
	// price endpoint the checkout widget reads.
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Get("/:id/price", courseHandler.GetCoursePrice)

	// Blogs (public read)
	blogs := api.Group("/blogs")
	blogs.Get("/", blogHandler.ListBlogs)
	blogs.Get("/:slug", blogHandler.GetBlog)

	// Announcements (public read)
	api.Get("/announcements", announcementHandler.ListAnnouncements)

	// Course videos (enrolled students only; checked in the handler)
	videos := api.Group("/videos", authMiddleware.Required())
	videos.Get("/", videoHandler.ListVideos)
	videos.Get("/:id", videoHandler.GetVideo)

	// Notifications (protected)
	notifications := api.Group("/notifications", authMiddleware.Required())
	notifications.Get("/", notificationHandler.ListNotifications)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Contact form (public submit)
	api.Post("/contact", contactHandler.Submit)

	// Public settings (logo, toggles)
	api.Get("/settings", utils.MakeHTTPHandleFunc(admin_handlers.GetPublicSettings, store))

	// ==================== Admin back office ====================

	adminGroup := api.Group("/admin", authMiddleware.RequireAdmin())

	// Students
	adminGroup.Get("/students", utils.MakeHTTPHandleFunc(admin_handlers.ListStudents, store))
	adminGroup.Get("/students/:id", utils.MakeHTTPHandleFunc(admin_handlers.GetStudent, store))
	adminGroup.Put("/students/:id/enrollment",
		middleware.AdminAuditLog(store, "force_enroll", "users"),
		utils.MakeHTTPHandleFunc(admin_handlers.ForceEnroll, store))
	adminGroup.Delete("/students/:id",
		middleware.AdminAuditLog(store, "delete_student", "users"),
		utils.MakeHTTPHandleFunc(admin_handlers.DeleteStudent, store))

	// Course management
	adminGroup.Post("/courses",
		middleware.AdminAuditLog(store, "create_course", "courses"),
		courseHandler.CreateCourse)
	adminGroup.Put("/courses/:id",
		middleware.AdminAuditLog(store, "update_course", "courses"),
		courseHandler.UpdateCourse)
	adminGroup.Delete("/courses/:id",
		middleware.AdminAuditLog(store, "delete_course", "courses"),
		courseHandler.DeleteCourse)
	adminGroup.Put("/courses/:id/price",
		middleware.AdminAuditLog(store, "course_price_update", "courses"),
		courseHandler.UpdatePrice)
	adminGroup.Get("/courses/:id/price-history", courseHandler.GetPriceHistory)

	// Content management
	adminGroup.Post("/blogs", blogHandler.CreateBlog)
	adminGroup.Put("/blogs/:id", blogHandler.UpdateBlog)
	adminGroup.Delete("/blogs/:id", blogHandler.DeleteBlog)
	adminGroup.Post("/videos", videoHandler.CreateVideo)
	adminGroup.Put("/videos/:id", videoHandler.UpdateVideo)
	adminGroup.Delete("/videos/:id", videoHandler.DeleteVideo)
	adminGroup.Post("/announcements", announcementHandler.CreateAnnouncement)
	adminGroup.Delete("/announcements/:id", announcementHandler.DeactivateAnnouncement)

	// Contact inbox
	adminGroup.Get("/contact", contactHandler.ListMessages)
	adminGroup.Put("/contact/:id/read", contactHandler.MarkRead)
	adminGroup.Delete("/contact/:id",
		middleware.AdminAuditLog(store, "delete_contact_message", "contact"),
		contactHandler.DeleteMessage)

	// Stats & payments
	adminGroup.Get("/stats", utils.MakeHTTPHandleFunc(admin_handlers.GetDashboardStats, store))
	adminGroup.Post("/stats/reset-revenue",
		middleware.AdminAuditLog(store, "revenue_reset", "payments"),
		utils.MakeHTTPHandleFunc(admin_handlers.ResetRevenue, store))
	adminGroup.Get("/payments", utils.MakeHTTPHandleFunc(admin_handlers.ListPayments, store))

	// Settings
	adminGroup.Get("/settings", utils.MakeHTTPHandleFunc(admin_handlers.ListSettings, store))
	adminGroup.Get("/settings/:key", utils.MakeHTTPHandleFunc(admin_handlers.GetSetting, store))
	adminGroup.Put("/settings/:key",
		middleware.AdminAuditLog(store, "update_setting", "settings"),
		utils.MakeHTTPHandleFunc(admin_handlers.UpdateSetting, store))
	adminGroup.Delete("/settings/:key",
		middleware.AdminAuditLog(store, "delete_setting", "settings"),
		utils.MakeHTTPHandleFunc(admin_handlers.DeleteSetting, store))

	// Audit trails
	adminGroup.Get("/audit", utils.MakeHTTPHandleFunc(admin_handlers.ListAuditLogs, store))
	adminGroup.Get("/cron-logs", utils.MakeHTTPHandleFunc(admin_handlers.ListCronLogs, store))

	// Media uploads
	adminGroup.Post("/uploads", uploadHandler.UploadImage)
}
