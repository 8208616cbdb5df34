package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/educhain/educhain-server/internal/config"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
)

// AttendanceService handles session roster logic.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	rdb            *redis.Client
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, rdb *redis.Client) *AttendanceService {
	return &AttendanceService{attendanceRepo: attendanceRepo, rdb: rdb}
}

// scopeBranch pins teachers to their own department.
func scopeBranch(claims *Claims, branch string) string {
	if claims.Role == model.RoleTeacher {
		return claims.Department
	}
	return branch
}

// Roster retrieves the merged session roster with the view filters
// applied and the summary computed over the full, unfiltered roster.
func (s *AttendanceService) Roster(ctx context.Context, claims *Claims, f model.AttendanceFilter) ([]model.AttendanceRecord, *model.AttendanceSummary, error) {
	f.Branch = scopeBranch(claims, f.Branch)

	records, err := s.attendanceRepo.ListRoster(ctx, f.Date, f.Branch, f.Semester)
	if err != nil {
		return nil, nil, err
	}

	summary := &model.AttendanceSummary{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case model.AttendancePresent:
			summary.Present++
		case model.AttendanceLate:
			summary.Late++
		default:
			summary.Absent++
		}
	}
	summary.Engagement = model.EngagementPercent(summary.Present, summary.Late, summary.Total)

	filtered := records[:0]
	for _, rec := range records {
		if f.Bucket != "" && rec.Status != f.Bucket {
			continue
		}
		if f.Search != "" && !matchesRoster(rec, f.Search) {
			continue
		}
		filtered = append(filtered, rec)
	}
	if filtered == nil {
		filtered = []model.AttendanceRecord{}
	}
	return filtered, summary, nil
}

func matchesRoster(rec model.AttendanceRecord, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(rec.StudentName), needle) ||
		strings.Contains(strings.ToLower(rec.StudentID), needle)
}

// Mark stores one student's status for a session date. The write is a
// full replacement for the (student, date) pair.
func (s *AttendanceService) Mark(ctx context.Context, claims *Claims, req model.MarkAttendanceRequest) (*model.AttendanceRecord, error) {
	branch := scopeBranch(claims, req.Branch)
	date := parseFlexibleDate(req.Date)

	id, err := s.attendanceRepo.Upsert(ctx, req.StudentID, date, req.Status, branch, req.Semester)
	if err != nil {
		return nil, err
	}
	return &model.AttendanceRecord{
		ID:        id,
		RecordKey: strconv.Itoa(id),
		StudentID: req.StudentID,
		Date:      date,
		Status:    req.Status,
		Branch:    branch,
		Semester:  req.Semester,
	}, nil
}

// BulkMark stamps the entire session roster with one status and returns
// the number of rows written.
func (s *AttendanceService) BulkMark(ctx context.Context, claims *Claims, req model.BulkMarkAttendanceRequest) (int, error) {
	branch := scopeBranch(claims, req.Branch)
	return s.attendanceRepo.BulkUpsert(ctx, parseFlexibleDate(req.Date), branch, req.Semester, req.Status)
}

// NotifyAbsentees enqueues an absentee alert for every ABSENT record in
// the session roster. The absentee worker drains the queue. Returns the
// number of alerts queued.
func (s *AttendanceService) NotifyAbsentees(ctx context.Context, claims *Claims, f model.AttendanceFilter) (int, error) {
	f.Branch = scopeBranch(claims, f.Branch)

	records, err := s.attendanceRepo.ListRoster(ctx, f.Date, f.Branch, f.Semester)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, rec := range records {
		if rec.Status != model.AttendanceAbsent {
			continue
		}
		alert := model.AbsenteeAlert{
			StudentID:   rec.StudentID,
			StudentName: rec.StudentName,
			Date:        f.Date.Format("2006-01-02"),
			Branch:      f.Branch,
			Semester:    f.Semester,
			RaisedBy:    claims.Username,
		}
		payload, err := json.Marshal(alert)
		if err != nil {
			return queued, err
		}
		if err := s.rdb.LPush(ctx, config.WorkerKey.AbsenteeAlertQueue, payload).Err(); err != nil {
			return queued, err
		}
		queued++
	}
	return queued, nil
}

// StudentEngagement computes a student's own engagement percentage from
// their stored rows.
func (s *AttendanceService) StudentEngagement(ctx context.Context, studentID string) (int, error) {
	present, late, total, err := s.attendanceRepo.CountByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return model.EngagementPercent(present, late, total), nil
}
