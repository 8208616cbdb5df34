package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educhain/educhain-server/internal/model"
)

// GradeRepository handles grade ledger data access. Grades reference
// students and courses by their institutional keys; listings join both
// tables to fill display fields.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

const gradeSelect = `
	SELECT g.id, g.student_id, s.first_name || ' ' || s.last_name,
		g.course_code, c.name, g.score, g.grade, g.semester, s.major,
		g.created_at, g.updated_at
	FROM grades g
	JOIN students s ON s.student_id = g.student_id
	JOIN courses c ON c.code = g.course_code`

func scanGrade(row interface{ Scan(...any) error }) (*model.GradeRecord, error) {
	g := &model.GradeRecord{}
	err := row.Scan(&g.ID, &g.StudentID, &g.StudentName, &g.CourseCode, &g.CourseName,
		&g.Score, &g.Grade, &g.Semester, &g.Department, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetByID retrieves one grade record.
func (r *GradeRepository) GetByID(ctx context.Context, id int) (*model.GradeRecord, error) {
	return scanGrade(r.pool.QueryRow(ctx, gradeSelect+` WHERE g.id = $1`, id))
}

// GetByStudentAndCourse retrieves the grade for a (student, course) pair.
func (r *GradeRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseCode string) (*model.GradeRecord, error) {
	return scanGrade(r.pool.QueryRow(ctx,
		gradeSelect+` WHERE g.student_id = $1 AND g.course_code = $2`, studentID, courseCode))
}

// List retrieves grade records, optionally scoped to one student or one
// department, newest first.
func (r *GradeRepository) List(ctx context.Context, studentID, department string) ([]model.GradeRecord, error) {
	query := gradeSelect + ` WHERE 1=1`
	var args []any
	idx := 1

	if studentID != "" {
		query += ` AND g.student_id = $` + strconv.Itoa(idx)
		args = append(args, studentID)
		idx++
	}
	if department != "" {
		query += ` AND s.major = $` + strconv.Itoa(idx)
		args = append(args, department)
		idx++
	}
	query += ` ORDER BY g.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []model.GradeRecord
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, *g)
	}
	return grades, rows.Err()
}

// Upsert stores a grade for a (student, course) pair, replacing any
// existing score and letter for that pair.
func (r *GradeRepository) Upsert(ctx context.Context, studentID, courseCode string, score float64, grade string, semester int) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO grades (student_id, course_code, score, grade, semester)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (student_id, course_code)
		 DO UPDATE SET score = EXCLUDED.score, grade = EXCLUDED.grade,
			semester = EXCLUDED.semester, updated_at = CURRENT_TIMESTAMP
		 RETURNING id`,
		studentID, courseCode, score, grade, semester,
	).Scan(&id)
	return id, err
}

// Delete removes a grade record.
func (r *GradeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	return err
}
