package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educhain/educhain-server/internal/model"
)

var ErrDuplicateFaculty = errors.New("faculty with this employee ID or email already exists")

// FacultyRepository handles faculty data access.
type FacultyRepository struct {
	pool *pgxpool.Pool
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(pool *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{pool: pool}
}

const facultyColumns = `id, employee_id, first_name, last_name, email, mobile_number, password_hash,
	department, designation, status, joining_date, created_at, updated_at`

func scanFaculty(row interface{ Scan(...any) error }) (*model.Faculty, error) {
	f := &model.Faculty{}
	err := row.Scan(&f.ID, &f.EmployeeID, &f.FirstName, &f.LastName, &f.Email, &f.MobileNumber,
		&f.PasswordHash, &f.Department, &f.Designation, &f.Status, &f.JoiningDate,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// GetByID retrieves a faculty member by row ID.
func (r *FacultyRepository) GetByID(ctx context.Context, id int) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx,
		`SELECT `+facultyColumns+` FROM faculty WHERE id = $1`, id))
}

// GetByEmployeeID retrieves a faculty member by employee ID.
func (r *FacultyRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx,
		`SELECT `+facultyColumns+` FROM faculty WHERE employee_id = $1`, employeeID))
}

// GetByEmail retrieves a faculty member by email.
func (r *FacultyRepository) GetByEmail(ctx context.Context, email string) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx,
		`SELECT `+facultyColumns+` FROM faculty WHERE email = $1`, email))
}

// List retrieves faculty matching the filter, ordered by name.
func (r *FacultyRepository) List(ctx context.Context, f model.FacultyFilter) ([]model.Faculty, error) {
	query := `SELECT ` + facultyColumns + ` FROM faculty WHERE 1=1`
	var args []any
	idx := 1

	if f.Search != "" {
		query += ` AND (first_name || ' ' || last_name ILIKE $` + strconv.Itoa(idx) +
			` OR employee_id ILIKE $` + strconv.Itoa(idx) +
			` OR email ILIKE $` + strconv.Itoa(idx) + `)`
		args = append(args, "%"+f.Search+"%")
		idx++
	}
	if f.Department != "" {
		query += ` AND department = $` + strconv.Itoa(idx)
		args = append(args, f.Department)
		idx++
	}
	if f.Status != "" {
		query += ` AND status = $` + strconv.Itoa(idx)
		args = append(args, f.Status)
		idx++
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.Faculty
	for rows.Next() {
		m, err := scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// Create inserts a new faculty member.
func (r *FacultyRepository) Create(ctx context.Context, f *model.Faculty) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO faculty (employee_id, first_name, last_name, email, mobile_number, password_hash,
			department, designation, status, joining_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		f.EmployeeID, f.FirstName, f.LastName, f.Email, f.MobileNumber, f.PasswordHash,
		f.Department, f.Designation, f.Status, f.JoiningDate,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateFaculty
		}
		return err
	}
	return nil
}

// Update replaces a faculty record (password hash excluded).
func (r *FacultyRepository) Update(ctx context.Context, f *model.Faculty) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE faculty SET employee_id = $1, first_name = $2, last_name = $3, email = $4,
			mobile_number = $5, department = $6, designation = $7, status = $8,
			joining_date = $9, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $10`,
		f.EmployeeID, f.FirstName, f.LastName, f.Email, f.MobileNumber,
		f.Department, f.Designation, f.Status, f.JoiningDate, f.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateFaculty
		}
		return err
	}
	return nil
}

// UpdatePassword replaces a faculty member's password hash.
func (r *FacultyRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE faculty SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id)
	return err
}

// Delete removes a faculty member by row ID.
func (r *FacultyRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	return err
}
