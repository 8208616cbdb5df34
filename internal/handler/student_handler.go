package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/educhain/educhain-server/internal/csvutil"
	"github.com/educhain/educhain-server/internal/middleware"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
	"github.com/educhain/educhain-server/internal/response"
	"github.com/educhain/educhain-server/internal/service"
	"github.com/educhain/educhain-server/internal/validator"
)

// StudentHandler handles student registry endpoints.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func studentFilterFromQuery(c *gin.Context) model.StudentFilter {
	f := model.StudentFilter{
		Search: c.Query("search"),
		Branch: c.Query("branch"),
		Status: model.StudentStatus(c.Query("status")),
	}
	if sem, err := strconv.Atoi(c.Query("semester")); err == nil {
		f.Semester = sem
	}
	return f
}

// List godoc
// GET /api/v1/students
// Returns students visible to the caller, filtered and paginated.
func (h *StudentHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	students, pagination, err := h.studentService.List(c.Request.Context(), claims, studentFilterFromQuery(c), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, students, pagination)
}

// AtRisk godoc
// GET /api/v1/students/at-risk
// Returns HIGH and MEDIUM risk students, worst first.
func (h *StudentHandler) AtRisk(c *gin.Context) {
	students, err := h.studentService.ListAtRisk(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// Save godoc
// POST /api/v1/students
// Creates or updates a student. Existing records are resolved by row
// ID, then institutional ID, then email.
func (h *StudentHandler) Save(c *gin.Context) {
	var req model.SaveStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Save(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateStudent) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// Delete godoc
// DELETE /api/v1/students/:id
// Removes a student. Admin only.
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.studentService.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Export godoc
// GET /api/v1/students/export
// Streams the caller's visible students as a CSV attachment. The
// password column is always blank: credentials are write-only.
func (h *StudentHandler) Export(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	students, err := h.studentService.ListForExport(c.Request.Context(), claims, studentFilterFromQuery(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	columns := []csvutil.Column{
		{Key: "student_id", Header: "Student ID"},
		{Key: "first_name", Header: "First Name"},
		{Key: "last_name", Header: "Last Name"},
		{Key: "email", Header: "Email"},
		{Key: "mobile_number", Header: "Mobile"},
		{Key: "password", Header: "Password"},
		{Key: "major", Header: "Branch"},
		{Key: "semester", Header: "Semester"},
		{Key: "status", Header: "Status"},
		{Key: "gpa", Header: "GPA"},
		{Key: "enrollment_date", Header: "Enrollment Date"},
	}
	rows := make([]map[string]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, map[string]string{
			"student_id":      s.StudentID,
			"first_name":      s.FirstName,
			"last_name":       s.LastName,
			"email":           s.Email,
			"mobile_number":   s.MobileNumber,
			"password":        "",
			"major":           s.Major,
			"semester":        strconv.Itoa(s.Semester),
			"status":          string(s.Status),
			"gpa":             strconv.FormatFloat(s.GPA, 'f', 2, 64),
			"enrollment_date": s.EnrollmentDate.Format("2006-01-02"),
		})
	}

	filename := fmt.Sprintf("Students_Export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvutil.Marshal(rows, columns)))
}
