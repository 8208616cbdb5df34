package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
	"github.com/educhain/educhain-server/internal/service"
)

// RiskWorker periodically sweeps the registry for high-risk students and
// raises an academic alert for each one. Alerts are deduplicated per
// student within a rolling window so admins are not flooded.
type RiskWorker struct {
	studentRepo   *repository.StudentRepository
	userRepo      *repository.UserRepository
	notifications *service.NotificationService
	interval      time.Duration
	log           zerolog.Logger
}

// NewRiskWorker creates a new RiskWorker.
func NewRiskWorker(studentRepo *repository.StudentRepository, userRepo *repository.UserRepository, notifications *service.NotificationService, interval time.Duration, log zerolog.Logger) *RiskWorker {
	return &RiskWorker{
		studentRepo:   studentRepo,
		userRepo:      userRepo,
		notifications: notifications,
		interval:      interval,
		log:           log.With().Str("component", "risk_worker").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine. The first sweep runs
// immediately so a fresh deployment surfaces existing risks.
func (w *RiskWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RiskWorker) sweep(ctx context.Context) {
	students, err := w.studentRepo.ListAtRisk(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Risk sweep query failed")
		return
	}

	admins, err := w.userRepo.ListAdminUsernames(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Admin lookup failed")
		return
	}

	raised := 0
	for _, student := range students {
		if student.RiskLevel != model.RiskHigh {
			continue
		}
		for _, admin := range admins {
			exists, err := w.notifications.HasRecentRiskAlert(ctx, admin, student.StudentID)
			if err != nil {
				w.log.Error().Err(err).Str("student_id", student.StudentID).Msg("Dedupe check failed")
				continue
			}
			if exists {
				continue
			}

			n := &model.Notification{
				Recipient: admin,
				Title:     "High-risk student: " + student.StudentID,
				Message: fmt.Sprintf("%s (%s, semester %d) is flagged HIGH risk with success score %d.",
					student.FullName(), student.Major, student.Semester, student.SuccessScore),
				Type: model.NotificationAcademic,
			}
			if err := w.notifications.Notify(ctx, n); err != nil {
				w.log.Error().Err(err).Str("student_id", student.StudentID).Msg("Risk alert failed")
				continue
			}
			raised++
		}
	}

	if raised > 0 {
		w.log.Info().Int("alerts", raised).Msg("Risk sweep complete")
	}
}
