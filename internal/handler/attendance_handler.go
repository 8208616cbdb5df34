package handler

import (
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

// AttendanceHandler handles session roster endpoints.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func attendanceFilterFromQuery(c *gin.Context) (model.AttendanceFilter, bool) {
	f := model.AttendanceFilter{
		Branch: c.Query("branch"),
		Search: c.Query("search"),
		Bucket: model.AttendanceStatus(c.Query("status")),
	}
	if f.Bucket != "" && !f.Bucket.Valid() {
		return f, false
	}

	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return f, false
	}
	f.Date = date

	sem, err := strconv.Atoi(c.DefaultQuery("semester", "1"))
	if err != nil || sem < 1 {
		return f, false
	}
	f.Semester = sem
	return f, true
}

// Roster godoc
// GET /api/v1/attendance
// Returns the merged session roster plus the summary. Students without
// a stored row appear as virtual ABSENT records. The summary always
// covers the full roster even when a status or search filter is set.
func (h *AttendanceHandler) Roster(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	f, ok := attendanceFilterFromQuery(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	records, summary, err := h.attendanceService.Roster(c.Request.Context(), claims, f)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"records": records,
		"summary": summary,
	})
}

// Summary godoc
// GET /api/v1/attendance/summary
// Returns only the bucket totals and engagement for one session.
func (h *AttendanceHandler) Summary(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	f, ok := attendanceFilterFromQuery(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	f.Search = ""
	f.Bucket = ""

	_, summary, err := h.attendanceService.Roster(c.Request.Context(), claims, f)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// Mark godoc
// POST /api/v1/attendance
// Upserts one student's status for a session date.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.attendanceService.Mark(c.Request.Context(), claims, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// BulkMark godoc
// POST /api/v1/attendance/bulk
// Stamps the whole session roster with one status.
func (h *AttendanceHandler) BulkMark(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.BulkMarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	marked, err := h.attendanceService.BulkMark(c.Request.Context(), claims, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": marked})
}

// NotifyAbsentees godoc
// POST /api/v1/attendance/notify-absent
// Queues an absence notice for every ABSENT record in the session. The
// absentee worker persists and publishes the notifications.
func (h *AttendanceHandler) NotifyAbsentees(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	f, ok := attendanceFilterFromQuery(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	queued, err := h.attendanceService.NotifyAbsentees(c.Request.Context(), claims, f)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"queued": queued})
}

// Export godoc
// GET /api/v1/attendance/export
// Streams the session roster as a CSV attachment.
func (h *AttendanceHandler) Export(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	f, ok := attendanceFilterFromQuery(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	records, _, err := h.attendanceService.Roster(c.Request.Context(), claims, f)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	columns := []csvutil.Column{
		{Key: "date", Header: "Date"},
		{Key: "student_id", Header: "ID"},
		{Key: "student_name", Header: "Name"},
		{Key: "branch", Header: "Branch"},
		{Key: "semester", Header: "Semester"},
		{Key: "status", Header: "Status"},
	}
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, map[string]string{
			"date":         rec.Date.Format("2006-01-02"),
			"student_id":   rec.StudentID,
			"student_name": rec.StudentName,
			"branch":       rec.Branch,
			"semester":     strconv.Itoa(rec.Semester),
			"status":       string(rec.Status),
		})
	}

	filename := fmt.Sprintf("Attendance_%s_%s.csv", f.Branch, f.Date.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvutil.Marshal(rows, columns)))
}
