package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
	"github.com/educhain/educhain-server/internal/response"
)

// CourseService handles curriculum logic.
type CourseService struct {
	courseRepo *repository.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// decorate fills the derived utilization figures on a course.
func decorate(c *model.Course) {
	c.Utilization = model.UtilizationPercent(c.StudentCount, c.Capacity)
	c.UtilizationTier = model.TierForUtilization(c.Utilization)
}

// List retrieves courses with pagination. Teachers only see courses of
// their own department.
func (s *CourseService) List(ctx context.Context, claims *Claims, f model.CourseFilter, page, perPage int) ([]model.Course, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	if claims.Role == model.RoleTeacher {
		f.Branch = claims.Department
	}

	courses, total, err := s.courseRepo.ListPaginated(ctx, f, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	for i := range courses {
		decorate(&courses[i])
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return courses, pagination, nil
}

// GetByID retrieves a course by row ID.
func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	decorate(course)
	return course, nil
}

func (s *CourseService) resolveExisting(ctx context.Context, req model.SaveCourseRequest) (*model.Course, error) {
	if req.ID != 0 {
		c, err := s.courseRepo.GetByID(ctx, req.ID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if req.Code != "" {
		c, err := s.courseRepo.GetByCode(ctx, req.Code)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return nil, nil
}

// Save upserts a course, resolving an existing row by ID then by code.
func (s *CourseService) Save(ctx context.Context, req model.SaveCourseRequest) (*model.Course, error) {
	existing, err := s.resolveExisting(ctx, req)
	if err != nil {
		return nil, err
	}

	course := existing
	if course == nil {
		course = &model.Course{}
	}

	course.Code = req.Code
	course.Name = req.Name
	course.Department = req.Department
	course.Credits = req.Credits
	course.Instructor = req.Instructor

	course.Capacity = 60
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	} else if existing != nil && existing.Capacity > 0 {
		course.Capacity = existing.Capacity
	}
	course.Semester = 1
	if req.Semester != nil {
		course.Semester = *req.Semester
	} else if existing != nil && existing.Semester > 0 {
		course.Semester = existing.Semester
	}

	if existing == nil {
		err = s.courseRepo.Create(ctx, course)
	} else {
		err = s.courseRepo.Update(ctx, course)
	}
	if err != nil {
		return nil, err
	}
	decorate(course)
	return course, nil
}

// Delete removes a course by row ID.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.courseRepo.Delete(ctx, id)
}
