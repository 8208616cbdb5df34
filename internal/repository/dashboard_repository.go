package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educhain/educhain-server/internal/model"
)

// DashboardRepository handles aggregate analytics queries.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalStudents, totalCourses, activeTeachers int, averageGPA float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM faculty WHERE status = $1),
			(SELECT COALESCE(ROUND(AVG(gpa)::numeric, 2), 0) FROM students)`,
		model.FacultyActive,
	).Scan(&totalStudents, &totalCourses, &activeTeachers, &averageGPA)
	return
}

// GetBranchDistribution tallies students per branch.
func (r *DashboardRepository) GetBranchDistribution(ctx context.Context) ([]model.BranchCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT major, COUNT(*) FROM students GROUP BY major ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dist []model.BranchCount
	for rows.Next() {
		var bc model.BranchCount
		if err := rows.Scan(&bc.Name, &bc.Count); err != nil {
			return nil, err
		}
		dist = append(dist, bc)
	}
	if dist == nil {
		dist = []model.BranchCount{}
	}
	return dist, rows.Err()
}

// GetRiskDistribution tallies students per server-assigned risk level.
func (r *DashboardRepository) GetRiskDistribution(ctx context.Context) (map[model.RiskLevel]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT risk_level, COUNT(*) FROM students GROUP BY risk_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[model.RiskLevel]int{
		model.RiskLow:    0,
		model.RiskMedium: 0,
		model.RiskHigh:   0,
	}
	for rows.Next() {
		var level model.RiskLevel
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		counts[level] = count
	}
	return counts, rows.Err()
}

// GetRecentEnrollments counts enrollments per day for the trailing week,
// oldest day first.
func (r *DashboardRepository) GetRecentEnrollments(ctx context.Context, days int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT d::date, COUNT(s.id)
		 FROM generate_series(CURRENT_DATE - ($1 - 1) * INTERVAL '1 day', CURRENT_DATE, INTERVAL '1 day') d
		 LEFT JOIN students s ON s.enrollment_date::date = d::date
		 GROUP BY d::date ORDER BY d::date`,
		days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []int
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	if counts == nil {
		counts = []int{}
	}
	return counts, rows.Err()
}

// GetCreditsEarned sums the credits of courses a student has passed
// (score at or above the lowest passing threshold).
func (r *DashboardRepository) GetCreditsEarned(ctx context.Context, studentID string) (int, error) {
	var credits int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(c.credits), 0)
		 FROM grades g JOIN courses c ON c.code = g.course_code
		 WHERE g.student_id = $1 AND g.score >= 50`,
		studentID,
	).Scan(&credits)
	return credits, err
}

// GetDepartmentTeachingStats returns the assigned course count and the
// mean grade score across a department's students.
func (r *DashboardRepository) GetDepartmentTeachingStats(ctx context.Context, department string) (assignedCourses, avgPerformance int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM courses WHERE department = $1),
			(SELECT COALESCE(ROUND(AVG(g.score)), 0)
			 FROM grades g JOIN students s ON s.student_id = g.student_id
			 WHERE s.major = $1)`,
		department,
	).Scan(&assignedCourses, &avgPerformance)
	return
}
