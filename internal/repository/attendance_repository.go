package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educhain/educhain-server/internal/model"
)

// AttendanceRepository handles presence data access. The roster query
// merges the student registry with stored rows so every matching student
// appears exactly once; students without a stored row for the date are
// reported as virtual ABSENT records (ID 0).
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// ListRoster retrieves the merged roster for one (date, branch, semester)
// session.
func (r *AttendanceRepository) ListRoster(ctx context.Context, date time.Time, branch string, semester int) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT COALESCE(a.id, 0), s.student_id, s.first_name || ' ' || s.last_name,
			COALESCE(a.status, $4), s.major, s.semester
		 FROM students s
		 LEFT JOIN attendance a ON a.student_id = s.student_id AND a.date = $1
		 WHERE s.major = $2 AND s.semester = $3
		 ORDER BY s.last_name, s.first_name`,
		date, branch, semester, model.AttendanceAbsent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		rec := model.AttendanceRecord{Date: date}
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.StudentName, &rec.Status, &rec.Branch, &rec.Semester); err != nil {
			return nil, err
		}
		if rec.ID == 0 {
			rec.RecordKey = "temp-" + rec.StudentID
		} else {
			rec.RecordKey = fmt.Sprintf("%d", rec.ID)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Upsert stores a student's status for a date. The (student, date) pair
// is unique, so a status change fully replaces the previous one.
func (r *AttendanceRepository) Upsert(ctx context.Context, studentID string, date time.Time, status model.AttendanceStatus, branch string, semester int) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, date, status, branch, semester)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (student_id, date)
		 DO UPDATE SET status = EXCLUDED.status, branch = EXCLUDED.branch,
			semester = EXCLUDED.semester, updated_at = CURRENT_TIMESTAMP
		 RETURNING id`,
		studentID, date, status, branch, semester,
	).Scan(&id)
	return id, err
}

// BulkUpsert marks the entire roster of a (branch, semester) for a date
// with one status and returns how many rows were written.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, date time.Time, branch string, semester int, status model.AttendanceStatus) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO attendance (student_id, date, status, branch, semester)
		 SELECT s.student_id, $1, $2, s.major, s.semester
		 FROM students s
		 WHERE s.major = $3 AND s.semester = $4
		 ON CONFLICT (student_id, date)
		 DO UPDATE SET status = EXCLUDED.status, updated_at = CURRENT_TIMESTAMP`,
		date, status, branch, semester)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// CountByStudent tallies a student's stored rows per status bucket.
func (r *AttendanceRepository) CountByStudent(ctx context.Context, studentID string) (present, late, total int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*)
		 FROM attendance WHERE student_id = $1`,
		studentID, model.AttendancePresent, model.AttendanceLate,
	).Scan(&present, &late, &total)
	return
}

// CountMarkedDays returns how many distinct session dates within the
// window carry at least one stored row for the branch.
func (r *AttendanceRepository) CountMarkedDays(ctx context.Context, branch string, since time.Time) (int, error) {
	var days int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT date) FROM attendance WHERE branch = $1 AND date >= $2`,
		branch, since,
	).Scan(&days)
	return days, err
}
