package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/educhain/educhain-server/internal/config"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/service"
)

// AbsenteeWorker consumes the absentee alert queue and turns each alert
// into a stored notification plus a live publish. The student's account
// username equals their institutional ID, so the alert is delivered
// straight to their notification channel.
type AbsenteeWorker struct {
	rdb           *redis.Client
	notifications *service.NotificationService
	log           zerolog.Logger
}

// NewAbsenteeWorker creates a new AbsenteeWorker.
func NewAbsenteeWorker(rdb *redis.Client, notifications *service.NotificationService, log zerolog.Logger) *AbsenteeWorker {
	return &AbsenteeWorker{
		rdb:           rdb,
		notifications: notifications,
		log:           log.With().Str("component", "absentee_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *AbsenteeWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AbsenteeWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.AbsenteeAlertQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if err := w.deliver(ctx, result[1]); err != nil {
		w.log.Error().Err(err).Msg("Deliver error, retrying in 5s")
		w.rdb.RPush(ctx, config.WorkerKey.AbsenteeAlertQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *AbsenteeWorker) deliver(ctx context.Context, raw string) error {
	var alert model.AbsenteeAlert
	if err := json.Unmarshal([]byte(raw), &alert); err != nil {
		// Malformed payloads are dropped, not retried.
		w.log.Error().Err(err).Str("data", raw).Msg("Discarding malformed alert")
		return nil
	}

	n := &model.Notification{
		Recipient: alert.StudentID,
		Title:     "Absence recorded",
		Message: fmt.Sprintf("You were marked absent on %s (%s, semester %d). Contact %s if this is incorrect.",
			alert.Date, alert.Branch, alert.Semester, alert.RaisedBy),
		Type: model.NotificationAcademic,
	}
	if err := w.notifications.Notify(ctx, n); err != nil {
		return err
	}

	w.log.Info().
		Str("student_id", alert.StudentID).
		Str("date", alert.Date).
		Msg("Absence notice delivered")
	return nil
}

// drain processes all remaining alerts before shutdown.
func (w *AbsenteeWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.AbsenteeAlertQueue).Result()
		if err != nil {
			break
		}
		if err := w.deliver(ctx, result); err != nil {
			w.log.Error().Err(err).Msg("Drain deliver error")
			w.rdb.RPush(ctx, config.WorkerKey.AbsenteeAlertQueue, result)
			break
		}
		drained++
	}
	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining alerts")
	}
}
