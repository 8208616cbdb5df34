package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/educhain/educhain-server/internal/middleware"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
	"github.com/educhain/educhain-server/internal/response"
	"github.com/educhain/educhain-server/internal/service"
	"github.com/educhain/educhain-server/internal/validator"
)

// CourseHandler handles curriculum endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// List godoc
// GET /api/v1/courses
// Returns courses with derived utilization figures, paginated.
func (h *CourseHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	f := model.CourseFilter{
		Search: c.Query("search"),
		Branch: c.Query("branch"),
	}
	if sem, err := strconv.Atoi(c.Query("semester")); err == nil {
		f.Semester = sem
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	courses, pagination, err := h.courseService.List(c.Request.Context(), claims, f, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, courses, pagination)
}

// Save godoc
// POST /api/v1/courses
// Creates or updates a course. Existing records are resolved by row ID,
// then course code.
func (h *CourseHandler) Save(c *gin.Context) {
	var req model.SaveCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Save(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCourse) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// Delete godoc
// DELETE /api/v1/courses/:id
// Removes a course. Admin only.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.courseService.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
