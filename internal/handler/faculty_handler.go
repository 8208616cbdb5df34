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

// FacultyHandler handles faculty directory endpoints.
type FacultyHandler struct {
	facultyService *service.FacultyService
}

// NewFacultyHandler creates a new FacultyHandler.
func NewFacultyHandler(facultyService *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultyService: facultyService}
}

// List godoc
// GET /api/v1/faculty
// Returns faculty matching the filter.
func (h *FacultyHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	f := model.FacultyFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Status:     model.FacultyStatus(c.Query("status")),
	}
	faculty, err := h.facultyService.List(c.Request.Context(), claims, f)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, faculty)
}

// Export godoc
// GET /api/v1/faculty/export
// Streams the faculty directory as a CSV attachment.
func (h *FacultyHandler) Export(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	f := model.FacultyFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Status:     model.FacultyStatus(c.Query("status")),
	}
	faculty, err := h.facultyService.List(c.Request.Context(), claims, f)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	columns := []csvutil.Column{
		{Key: "employee_id", Header: "Employee ID"},
		{Key: "first_name", Header: "First Name"},
		{Key: "last_name", Header: "Last Name"},
		{Key: "email", Header: "Email"},
		{Key: "mobile_number", Header: "Mobile"},
		{Key: "department", Header: "Department"},
		{Key: "designation", Header: "Designation"},
		{Key: "status", Header: "Status"},
		{Key: "joining_date", Header: "Joining Date"},
	}
	rows := make([]map[string]string, 0, len(faculty))
	for _, m := range faculty {
		rows = append(rows, map[string]string{
			"employee_id":   m.EmployeeID,
			"first_name":    m.FirstName,
			"last_name":     m.LastName,
			"email":         m.Email,
			"mobile_number": m.MobileNumber,
			"department":    m.Department,
			"designation":   m.Designation,
			"status":        string(m.Status),
			"joining_date":  m.JoiningDate.Format("2006-01-02"),
		})
	}

	filename := fmt.Sprintf("Faculty_Export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvutil.Marshal(rows, columns)))
}

// Save godoc
// POST /api/v1/faculty
// Creates or updates a faculty member. Existing records are resolved by
// row ID, then employee ID, then email.
func (h *FacultyHandler) Save(c *gin.Context) {
	var req model.SaveFacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	faculty, err := h.facultyService.Save(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFaculty) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, faculty)
}

// Delete godoc
// DELETE /api/v1/faculty/:id
// Removes a faculty member. Admin only.
func (h *FacultyHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.facultyService.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if err := h.facultyService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
