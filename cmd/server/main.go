package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/educhain/educhain-server/internal/config"
	"github.com/educhain/educhain-server/internal/database"
	"github.com/educhain/educhain-server/internal/gemini"
	"github.com/educhain/educhain-server/internal/handler"
	"github.com/educhain/educhain-server/internal/logger"
	"github.com/educhain/educhain-server/internal/repository"
	"github.com/educhain/educhain-server/internal/router"
	"github.com/educhain/educhain-server/internal/service"
	"github.com/educhain/educhain-server/internal/validator"
	"github.com/educhain/educhain-server/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EduChain Server")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	facultyRepo := repository.NewFacultyRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo)
	studentService := service.NewStudentService(studentRepo, authService)
	facultyService := service.NewFacultyService(facultyRepo, authService)
	courseService := service.NewCourseService(courseRepo)
	gradeService := service.NewGradeService(gradeRepo, studentRepo, courseRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, rdb)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, rdb, log)
	dashboardService := service.NewDashboardService(dashboardRepo, studentRepo, attendanceRepo)
	insightService := service.NewInsightService(gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel), dashboardService)
	mediaService := service.NewMediaService(cfg, log)

	if !insightService.Configured() {
		log.Warn().Msg("Gemini API key missing, insight generation disabled")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, notificationService),
		Student:      handler.NewStudentHandler(studentService),
		Faculty:      handler.NewFacultyHandler(facultyService),
		Course:       handler.NewCourseHandler(courseService),
		Grade:        handler.NewGradeHandler(gradeService),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Notification: handler.NewNotificationHandler(notificationService),
		Dashboard:    handler.NewDashboardHandler(dashboardService, insightService),
		Media:        handler.NewMediaHandler(mediaService, authService),
		WS:           handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	absenteeWorker := worker.NewAbsenteeWorker(rdb, notificationService, log)
	riskWorker := worker.NewRiskWorker(studentRepo, userRepo, notificationService, cfg.RiskSweepInterval, log)

	go absenteeWorker.Start(workerCtx)
	go riskWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the alert queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
