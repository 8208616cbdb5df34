package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
)

// FacultyService handles faculty directory logic.
type FacultyService struct {
	facultyRepo *repository.FacultyRepository
	authService *AuthService
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(facultyRepo *repository.FacultyRepository, authService *AuthService) *FacultyService {
	return &FacultyService{facultyRepo: facultyRepo, authService: authService}
}

// List retrieves faculty matching the filter. Teachers are pinned to
// their own department.
func (s *FacultyService) List(ctx context.Context, claims *Claims, f model.FacultyFilter) ([]model.Faculty, error) {
	if claims.Role == model.RoleTeacher {
		f.Department = claims.Department
	}
	faculty, err := s.facultyRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if faculty == nil {
		faculty = []model.Faculty{}
	}
	return faculty, nil
}

// GetByID retrieves a faculty member by row ID.
func (s *FacultyService) GetByID(ctx context.Context, id int) (*model.Faculty, error) {
	return s.facultyRepo.GetByID(ctx, id)
}

func (s *FacultyService) resolveExisting(ctx context.Context, req model.SaveFacultyRequest) (*model.Faculty, error) {
	if req.ID != 0 {
		f, err := s.facultyRepo.GetByID(ctx, req.ID)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if req.EmployeeID != "" {
		f, err := s.facultyRepo.GetByEmployeeID(ctx, req.EmployeeID)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if req.Email != "" {
		f, err := s.facultyRepo.GetByEmail(ctx, req.Email)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return nil, nil
}

// Save upserts a faculty record, resolving an existing row by ID, then
// employee ID, then email.
func (s *FacultyService) Save(ctx context.Context, req model.SaveFacultyRequest) (*model.Faculty, error) {
	existing, err := s.resolveExisting(ctx, req)
	if err != nil {
		return nil, err
	}

	faculty := existing
	if faculty == nil {
		faculty = &model.Faculty{}
	}

	faculty.EmployeeID = req.EmployeeID
	faculty.FirstName = req.FirstName
	faculty.LastName = req.LastName
	faculty.Email = req.Email
	faculty.MobileNumber = req.MobileNumber
	faculty.Department = req.Department
	faculty.Designation = req.Designation

	faculty.Status = req.Status
	if faculty.Status == "" {
		faculty.Status = model.FacultyActive
		if existing != nil && existing.Status != "" {
			faculty.Status = existing.Status
		}
	}
	if req.JoiningDate != "" {
		faculty.JoiningDate = parseFlexibleDate(req.JoiningDate)
	} else if faculty.JoiningDate.IsZero() {
		faculty.JoiningDate = time.Now()
	}

	var passwordHash string
	if req.Password != "" {
		passwordHash, err = s.authService.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
	}

	if existing == nil {
		faculty.PasswordHash = passwordHash
		if err := s.facultyRepo.Create(ctx, faculty); err != nil {
			return nil, err
		}
		return faculty, nil
	}

	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		return nil, err
	}
	if passwordHash != "" {
		if err := s.facultyRepo.UpdatePassword(ctx, faculty.ID, passwordHash); err != nil {
			return nil, err
		}
	}
	return faculty, nil
}

// Delete removes a faculty member by row ID.
func (s *FacultyService) Delete(ctx context.Context, id int) error {
	return s.facultyRepo.Delete(ctx, id)
}
