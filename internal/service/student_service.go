package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
	"github.com/educhain/educhain-server/internal/response"
)

var (
	datePatternDMY = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	datePatternYMD = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// parseFlexibleDate accepts dd-mm-yyyy, yyyy-mm-dd and RFC3339 inputs,
// falling back to the current time for anything else.
func parseFlexibleDate(raw string) time.Time {
	switch {
	case datePatternDMY.MatchString(raw):
		day, _ := strconv.Atoi(raw[0:2])
		month, _ := strconv.Atoi(raw[3:5])
		year, _ := strconv.Atoi(raw[6:10])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	case datePatternYMD.MatchString(raw):
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	default:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}
	return time.Now()
}

// StudentService handles student registry logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
	authService *AuthService
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, authService *AuthService) *StudentService {
	return &StudentService{studentRepo: studentRepo, authService: authService}
}

// scopeFilter applies role visibility rules: teachers only see their own
// branch regardless of the requested filter, students only themselves.
func (s *StudentService) scopeFilter(claims *Claims, f model.StudentFilter) model.StudentFilter {
	switch claims.Role {
	case model.RoleTeacher:
		f.Branch = claims.Department
	case model.RoleStudent:
		f.OwnStudentID = claims.Username
	}
	return f
}

// List retrieves students visible to the caller with pagination.
func (s *StudentService) List(ctx context.Context, claims *Claims, f model.StudentFilter, page, perPage int) ([]model.Student, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	f = s.scopeFilter(claims, f)

	students, total, err := s.studentRepo.ListPaginated(ctx, f, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return students, pagination, nil
}

// ListForExport retrieves every student visible to the caller.
func (s *StudentService) ListForExport(ctx context.Context, claims *Claims, f model.StudentFilter) ([]model.Student, error) {
	students, err := s.studentRepo.ListAll(ctx, s.scopeFilter(claims, f))
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// ListAtRisk retrieves HIGH and MEDIUM risk students, worst first.
func (s *StudentService) ListAtRisk(ctx context.Context) ([]model.Student, error) {
	students, err := s.studentRepo.ListAtRisk(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// resolveExisting finds the record a save request refers to: by row ID
// first, then institutional ID, then email. Returns nil when the save
// should create a fresh record.
func (s *StudentService) resolveExisting(ctx context.Context, req model.SaveStudentRequest) (*model.Student, error) {
	if req.ID != 0 {
		student, err := s.studentRepo.GetByID(ctx, req.ID)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if req.StudentID != "" {
		student, err := s.studentRepo.GetByStudentID(ctx, req.StudentID)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if req.Email != "" {
		student, err := s.studentRepo.GetByEmail(ctx, req.Email)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return nil, nil
}

// Save upserts a student record, filling the original defaults for
// fields the request omits.
func (s *StudentService) Save(ctx context.Context, req model.SaveStudentRequest) (*model.Student, error) {
	existing, err := s.resolveExisting(ctx, req)
	if err != nil {
		return nil, err
	}

	student := existing
	if student == nil {
		student = &model.Student{}
	}

	student.StudentID = req.StudentID
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.MobileNumber = req.MobileNumber

	student.Status = req.Status
	if student.Status == "" {
		student.Status = model.StudentActive
	}
	student.GPA = 0
	if req.GPA != nil {
		student.GPA = *req.GPA
	} else if existing != nil {
		student.GPA = existing.GPA
	}
	student.Semester = 1
	if req.Semester != nil {
		student.Semester = *req.Semester
	} else if existing != nil && existing.Semester > 0 {
		student.Semester = existing.Semester
	}
	student.SuccessScore = 75
	if req.SuccessScore != nil {
		student.SuccessScore = *req.SuccessScore
	} else if existing != nil {
		student.SuccessScore = existing.SuccessScore
	}
	student.RiskLevel = req.RiskLevel
	if student.RiskLevel == "" {
		student.RiskLevel = model.RiskLow
		if existing != nil && existing.RiskLevel != "" {
			student.RiskLevel = existing.RiskLevel
		}
	}
	if req.Major != "" {
		student.Major = req.Major
	} else if student.Major == "" {
		student.Major = "Unassigned"
	}
	if req.EnrollmentDate != "" {
		student.EnrollmentDate = parseFlexibleDate(req.EnrollmentDate)
	} else if student.EnrollmentDate.IsZero() {
		student.EnrollmentDate = time.Now()
	}

	if existing == nil {
		if req.Password != "" {
			hash, err := s.authService.HashPassword(req.Password)
			if err != nil {
				return nil, err
			}
			student.PasswordHash = hash
		}
		if err := s.studentRepo.Create(ctx, student); err != nil {
			return nil, err
		}
		return student, nil
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	if req.Password != "" {
		hash, err := s.authService.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.studentRepo.UpdatePassword(ctx, student.ID, hash); err != nil {
			return nil, err
		}
	}
	return student, nil
}

// Delete removes a student by row ID.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.studentRepo.Delete(ctx, id)
}

// GetByID retrieves a student by row ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}
