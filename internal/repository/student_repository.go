package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educhain/educhain-server/internal/model"
)

var ErrDuplicateStudent = errors.New("student with this ID or email already exists")

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, student_id, first_name, last_name, email, mobile_number, password_hash,
	enrollment_date, status, gpa, major, semester, success_score, risk_level, created_at, updated_at`

func scanStudent(row interface{ Scan(...any) error }) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Email, &s.MobileNumber,
		&s.PasswordHash, &s.EnrollmentDate, &s.Status, &s.GPA, &s.Major, &s.Semester,
		&s.SuccessScore, &s.RiskLevel, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a student by row ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

// GetByStudentID retrieves a student by institutional ID.
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1`, studentID))
}

// GetByEmail retrieves a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE email = $1`, email))
}

// buildStudentWhere translates a filter into a WHERE clause and args.
func buildStudentWhere(f model.StudentFilter) (string, []any) {
	where := ` WHERE 1=1`
	var args []any
	idx := 1

	if f.Search != "" {
		where += ` AND (first_name || ' ' || last_name ILIKE $` + strconv.Itoa(idx) +
			` OR student_id ILIKE $` + strconv.Itoa(idx) +
			` OR email ILIKE $` + strconv.Itoa(idx) + `)`
		args = append(args, "%"+f.Search+"%")
		idx++
	}
	if f.Branch != "" {
		where += ` AND major = $` + strconv.Itoa(idx)
		args = append(args, f.Branch)
		idx++
	}
	if f.Semester > 0 {
		where += ` AND semester = $` + strconv.Itoa(idx)
		args = append(args, f.Semester)
		idx++
	}
	if f.Status != "" {
		where += ` AND status = $` + strconv.Itoa(idx)
		args = append(args, f.Status)
		idx++
	}
	if f.OwnStudentID != "" {
		where += ` AND student_id = $` + strconv.Itoa(idx)
		args = append(args, f.OwnStudentID)
		idx++
	}
	return where, args
}

// ListPaginated retrieves students matching the filter with pagination.
func (r *StudentRepository) ListPaginated(ctx context.Context, f model.StudentFilter, limit, offset int) ([]model.Student, int, error) {
	where, args := buildStudentWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + studentColumns + ` FROM students` + where +
		` ORDER BY last_name, first_name LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *s)
	}
	return students, total, rows.Err()
}

// ListAll retrieves every student matching the filter, used for exports.
func (r *StudentRepository) ListAll(ctx context.Context, f model.StudentFilter) ([]model.Student, error) {
	where, args := buildStudentWhere(f)

	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students`+where+` ORDER BY last_name, first_name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// ListAtRisk retrieves students whose risk level is HIGH or MEDIUM,
// worst first.
func (r *StudentRepository) ListAtRisk(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE risk_level IN ($1, $2)
		 ORDER BY CASE risk_level WHEN $1 THEN 0 ELSE 1 END, success_score ASC`,
		model.RiskHigh, model.RiskMedium)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (student_id, first_name, last_name, email, mobile_number, password_hash,
			enrollment_date, status, gpa, major, semester, success_score, risk_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		s.StudentID, s.FirstName, s.LastName, s.Email, s.MobileNumber, s.PasswordHash,
		s.EnrollmentDate, s.Status, s.GPA, s.Major, s.Semester, s.SuccessScore, s.RiskLevel,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateStudent
		}
		return err
	}
	return nil
}

// Update replaces a student's record (password hash excluded).
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET student_id = $1, first_name = $2, last_name = $3, email = $4,
			mobile_number = $5, enrollment_date = $6, status = $7, gpa = $8, major = $9,
			semester = $10, success_score = $11, risk_level = $12, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $13`,
		s.StudentID, s.FirstName, s.LastName, s.Email, s.MobileNumber, s.EnrollmentDate,
		s.Status, s.GPA, s.Major, s.Semester, s.SuccessScore, s.RiskLevel, s.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateStudent
		}
		return err
	}
	return nil
}

// UpdatePassword updates a student's password hash.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id)
	return err
}

// Delete removes a student by row ID.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}
