package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educhain/educhain-server/internal/csvutil"
	"github.com/educhain/educhain-server/internal/middleware"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/response"
	"github.com/educhain/educhain-server/internal/service"
	"github.com/educhain/educhain-server/internal/validator"
)

// GradeHandler handles academic record endpoints.
type GradeHandler struct {
	gradeService *service.GradeService
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(gradeService *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// List godoc
// GET /api/v1/grades
// Returns grade records visible to the caller's role.
func (h *GradeHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	grades, err := h.gradeService.List(c.Request.Context(), claims)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, grades)
}

// ListForStudent godoc
// GET /api/v1/grades/student/:studentId
// Returns one student's transcript. Students can only fetch their own.
func (h *GradeHandler) ListForStudent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	grades, err := h.gradeService.ListForStudent(c.Request.Context(), claims, c.Param("studentId"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, grades)
}

// Export godoc
// GET /api/v1/grades/export
// Streams the caller's visible grade records as a CSV attachment.
func (h *GradeHandler) Export(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	grades, err := h.gradeService.List(c.Request.Context(), claims)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	columns := []csvutil.Column{
		{Key: "student_id", Header: "Student ID"},
		{Key: "student_name", Header: "Student Name"},
		{Key: "course_code", Header: "Course Code"},
		{Key: "course_name", Header: "Course Name"},
		{Key: "score", Header: "Score"},
		{Key: "grade", Header: "Grade"},
		{Key: "semester", Header: "Semester"},
	}
	rows := make([]map[string]string, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, map[string]string{
			"student_id":   g.StudentID,
			"student_name": g.StudentName,
			"course_code":  g.CourseCode,
			"course_name":  g.CourseName,
			"score":        strconv.FormatFloat(g.Score, 'f', 1, 64),
			"grade":        g.Grade,
			"semester":     strconv.Itoa(g.Semester),
		})
	}

	filename := fmt.Sprintf("Grades_Export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvutil.Marshal(rows, columns)))
}

// Save godoc
// POST /api/v1/grades
// Creates or updates a grade record. The letter grade is recomputed
// from the score server-side.
func (h *GradeHandler) Save(c *gin.Context) {
	var req model.SaveGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.Save(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
		case errors.Is(err, service.ErrCourseNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, grade)
}

// Delete godoc
// DELETE /api/v1/grades/:id
// Removes a grade record. Admin only.
func (h *GradeHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if err := h.gradeService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
