package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educhain/educhain-server/internal/model"
)

var ErrDuplicateCourse = errors.New("course with this code already exists")

// CourseRepository handles curriculum data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, code, name, department, credits, instructor, student_count, capacity,
	semester, created_at, updated_at`

func scanCourse(row interface{ Scan(...any) error }) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Department, &c.Credits, &c.Instructor,
		&c.StudentCount, &c.Capacity, &c.Semester, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a course by row ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

// GetByCode retrieves a course by its unique code.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE code = $1`, code))
}

// ListPaginated retrieves courses matching the filter with pagination.
func (r *CourseRepository) ListPaginated(ctx context.Context, f model.CourseFilter, limit, offset int) ([]model.Course, int, error) {
	where := ` WHERE 1=1`
	var args []any
	idx := 1

	if f.Search != "" {
		where += ` AND (code ILIKE $` + strconv.Itoa(idx) +
			` OR name ILIKE $` + strconv.Itoa(idx) +
			` OR instructor ILIKE $` + strconv.Itoa(idx) + `)`
		args = append(args, "%"+f.Search+"%")
		idx++
	}
	if f.Branch != "" {
		where += ` AND department = $` + strconv.Itoa(idx)
		args = append(args, f.Branch)
		idx++
	}
	if f.Semester > 0 {
		where += ` AND semester = $` + strconv.Itoa(idx)
		args = append(args, f.Semester)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + courseColumns + ` FROM courses` + where +
		` ORDER BY code LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *c)
	}
	return courses, total, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (code, name, department, credits, instructor, student_count, capacity, semester)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		c.Code, c.Name, c.Department, c.Credits, c.Instructor, c.StudentCount, c.Capacity, c.Semester,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCourse
		}
		return err
	}
	return nil
}

// Update replaces a course record.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses SET code = $1, name = $2, department = $3, credits = $4, instructor = $5,
			student_count = $6, capacity = $7, semester = $8, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9`,
		c.Code, c.Name, c.Department, c.Credits, c.Instructor, c.StudentCount, c.Capacity, c.Semester, c.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCourse
		}
		return err
	}
	return nil
}

// Delete removes a course by row ID.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}
