package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
)

const enrollmentWindowDays = 7

// DashboardService assembles the aggregate stats payload. The shared
// figures are the same for every caller; the role-specific slice is
// attached only for the matching role.
type DashboardService struct {
	dashboardRepo  *repository.DashboardRepository
	studentRepo    *repository.StudentRepository
	attendanceRepo *repository.AttendanceRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository, studentRepo *repository.StudentRepository, attendanceRepo *repository.AttendanceRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo:  dashboardRepo,
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Stats computes the dashboard payload for the caller's role.
func (s *DashboardService) Stats(ctx context.Context, claims *Claims) (*model.DashboardStats, error) {
	totalStudents, totalCourses, activeTeachers, averageGPA, err := s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}
	branches, err := s.dashboardRepo.GetBranchDistribution(ctx)
	if err != nil {
		return nil, err
	}
	risks, err := s.dashboardRepo.GetRiskDistribution(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.dashboardRepo.GetRecentEnrollments(ctx, enrollmentWindowDays)
	if err != nil {
		return nil, err
	}
	if branches == nil {
		branches = []model.BranchCount{}
	}

	stats := &model.DashboardStats{
		TotalStudents:      totalStudents,
		TotalCourses:       totalCourses,
		ActiveTeachers:     activeTeachers,
		AverageGPA:         averageGPA,
		RecentEnrollments:  enrollments,
		BranchDistribution: branches,
		RiskDistribution:   risks,
	}

	switch claims.Role {
	case model.RoleStudent:
		studentStats, err := s.studentStats(ctx, claims.Username)
		if err != nil {
			return nil, err
		}
		stats.StudentStats = studentStats
	case model.RoleTeacher:
		teacherStats, err := s.teacherStats(ctx, claims.Department)
		if err != nil {
			return nil, err
		}
		stats.TeacherStats = teacherStats
	}
	return stats, nil
}

func (s *DashboardService) studentStats(ctx context.Context, studentID string) (*model.StudentStats, error) {
	stats := &model.StudentStats{UpcomingDeadlines: []model.Deadline{}}

	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		// A student account without a registry row still gets the shared
		// figures, just with a zeroed personal slice.
		if errors.Is(err, pgx.ErrNoRows) {
			return stats, nil
		}
		return nil, err
	}
	stats.PersonalGPA = student.GPA

	present, late, total, err := s.attendanceRepo.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	stats.AttendanceRate = model.EngagementPercent(present, late, total)

	credits, err := s.dashboardRepo.GetCreditsEarned(ctx, studentID)
	if err != nil {
		return nil, err
	}
	stats.CreditsEarned = credits
	return stats, nil
}

func (s *DashboardService) teacherStats(ctx context.Context, department string) (*model.TeacherStats, error) {
	assigned, avgPerformance, err := s.dashboardRepo.GetDepartmentTeachingStats(ctx, department)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -enrollmentWindowDays)
	marked, err := s.attendanceRepo.CountMarkedDays(ctx, department, since)
	if err != nil {
		return nil, err
	}
	pending := weekdaysSince(since, time.Now()) - marked
	if pending < 0 {
		pending = 0
	}

	return &model.TeacherStats{
		AssignedCourses:     assigned,
		AvgClassPerformance: avgPerformance,
		PendingAttendance:   pending,
	}, nil
}

// weekdaysSince counts Monday-to-Friday days in (from, to].
func weekdaysSince(from, to time.Time) int {
	days := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
