package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/educhain/educhain-server/internal/config"
	"github.com/educhain/educhain-server/internal/handler"
	"github.com/educhain/educhain-server/internal/middleware"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/response"
	"github.com/educhain/educhain-server/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Student      *handler.StudentHandler
	Faculty      *handler.FacultyHandler
	Course       *handler.CourseHandler
	Grade        *handler.GradeHandler
	Attendance   *handler.AttendanceHandler
	Notification *handler.NotificationHandler
	Dashboard    *handler.DashboardHandler
	Media        *handler.MediaHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so every response carries metadata, then metrics.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Metrics())

	// Locally stored avatars (demo mode) are served statically with
	// aggressive caching; filenames are content-unique UUIDs.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check and Prometheus metrics.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/register", handlers.Auth.Register)

		// Authenticated profile routes
		authed := auth.Group("")
		authed.Use(
			middleware.RequireAuth(authService),
			middleware.CheckActiveSession(authService),
		)
		{
			authed.GET("/me", handlers.Auth.GetProfile)
			authed.PUT("/profile", handlers.Auth.UpdateProfile)
			authed.POST("/logout", handlers.Auth.Logout)
		}
	}

	// ─── 2. API Group (JWT + Active Session) ───────────────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		manage := middleware.RequireRoles(model.RoleAdmin, model.RoleTeacher)

		// Student registry
		api.GET("/students", handlers.Student.List)
		api.GET("/students/at-risk", manage, handlers.Student.AtRisk)
		api.GET("/students/export", manage, handlers.Student.Export)
		api.POST("/students", manage, handlers.Student.Save)
		api.DELETE("/students/:id", middleware.RequireAdmin(), handlers.Student.Delete)

		// Faculty directory
		api.GET("/faculty", handlers.Faculty.List)
		api.GET("/faculty/export", manage, handlers.Faculty.Export)
		api.POST("/faculty", middleware.RequireAdmin(), handlers.Faculty.Save)
		api.DELETE("/faculty/:id", middleware.RequireAdmin(), handlers.Faculty.Delete)

		// Curriculum
		api.GET("/courses", handlers.Course.List)
		api.POST("/courses", manage, handlers.Course.Save)
		api.DELETE("/courses/:id", middleware.RequireAdmin(), handlers.Course.Delete)

		// Academic records
		api.GET("/grades", handlers.Grade.List)
		api.GET("/grades/export", manage, handlers.Grade.Export)
		api.GET("/grades/student/:studentId", handlers.Grade.ListForStudent)
		api.POST("/grades", manage, handlers.Grade.Save)
		api.DELETE("/grades/:id", middleware.RequireAdmin(), handlers.Grade.Delete)

		// Attendance
		api.GET("/attendance", handlers.Attendance.Roster)
		api.GET("/attendance/summary", handlers.Attendance.Summary)
		api.GET("/attendance/export", manage, handlers.Attendance.Export)
		api.POST("/attendance", manage, handlers.Attendance.Mark)
		api.POST("/attendance/bulk", manage, handlers.Attendance.BulkMark)
		api.POST("/attendance/notify-absent", manage, handlers.Attendance.NotifyAbsentees)

		// Notifications
		api.GET("/notifications", handlers.Notification.List)
		api.PATCH("/notifications/:id/read", handlers.Notification.MarkRead)

		// Dashboard and insights
		api.GET("/dashboard/stats", handlers.Dashboard.Stats)
		api.POST("/insights/generate", handlers.Dashboard.Insight)

		// Media
		api.POST("/media/avatar", handlers.Media.UploadAvatar)
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/notifications", handlers.WS.NotificationStream)
	}

	return router
}
