package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
)

// Grade service errors.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrCourseNotFound  = errors.New("course not found")
)

// GradeService handles academic record logic.
type GradeService struct {
	gradeRepo   *repository.GradeRepository
	studentRepo *repository.StudentRepository
	courseRepo  *repository.CourseRepository
}

// NewGradeService creates a new GradeService.
func NewGradeService(gradeRepo *repository.GradeRepository, studentRepo *repository.StudentRepository, courseRepo *repository.CourseRepository) *GradeService {
	return &GradeService{gradeRepo: gradeRepo, studentRepo: studentRepo, courseRepo: courseRepo}
}

// List retrieves grade records visible to the caller. Students see only
// their own transcript, teachers only their department's records.
func (s *GradeService) List(ctx context.Context, claims *Claims) ([]model.GradeRecord, error) {
	var studentID, department string
	switch claims.Role {
	case model.RoleStudent:
		studentID = claims.Username
	case model.RoleTeacher:
		department = claims.Department
	}

	grades, err := s.gradeRepo.List(ctx, studentID, department)
	if err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []model.GradeRecord{}
	}
	return grades, nil
}

// ListForStudent retrieves one student's transcript. Students may only
// request their own.
func (s *GradeService) ListForStudent(ctx context.Context, claims *Claims, studentID string) ([]model.GradeRecord, error) {
	if claims.Role == model.RoleStudent {
		studentID = claims.Username
	}
	grades, err := s.gradeRepo.List(ctx, studentID, "")
	if err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []model.GradeRecord{}
	}
	return grades, nil
}

// Save upserts a grade record. The letter grade is derived from the
// score, never taken from the request. The referenced student and
// course must exist.
func (s *GradeService) Save(ctx context.Context, req model.SaveGradeRequest) (*model.GradeRecord, error) {
	if _, err := s.studentRepo.GetByStudentID(ctx, req.StudentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	course, err := s.courseRepo.GetByCode(ctx, req.CourseCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	semester := course.Semester
	if req.Semester != nil {
		semester = *req.Semester
	}

	letter := model.LetterGrade(req.Score)
	id, err := s.gradeRepo.Upsert(ctx, req.StudentID, req.CourseCode, req.Score, letter, semester)
	if err != nil {
		return nil, err
	}
	return s.gradeRepo.GetByID(ctx, id)
}

// Delete removes a grade record by row ID.
func (s *GradeService) Delete(ctx context.Context, id int) error {
	return s.gradeRepo.Delete(ctx, id)
}
