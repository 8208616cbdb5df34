package model

import (
	"math"
	"time"
)

// AttendanceStatus is the single status a student holds for a session
// date. Changing status is a full replacement, never an addition.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// Valid reports whether the status is one of the three buckets.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceLate
}

// AttendanceRecord is one row per (student, session date). Records with
// ID 0 are virtual: the student belongs to the roster but has no stored
// row yet, and is reported ABSENT by default.
type AttendanceRecord struct {
	ID          int              `json:"id"`
	RecordKey   string           `json:"record_key"` // "<id>" or "temp-<student_id>" for virtual rows
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
	Branch      string           `json:"branch"`
	Semester    int              `json:"semester"`
}

// AttendanceSummary aggregates one session's buckets.
type AttendanceSummary struct {
	Total      int `json:"total"`
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Late       int `json:"late"`
	Engagement int `json:"engagement"` // percent
}

// EngagementPercent returns round(100 * (present+late) / total), and 0
// when the roster is empty.
func EngagementPercent(present, late, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present+late) / float64(total) * 100))
}

// MarkAttendanceRequest upserts one student's status for a date.
type MarkAttendanceRequest struct {
	StudentID string           `json:"student_id" binding:"required,min=2,max=30"`
	Date      string           `json:"date" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE"`
	Branch    string           `json:"branch" binding:"required,max=60"`
	Semester  int              `json:"semester" binding:"required,gte=1,lte=8"`
}

// BulkMarkAttendanceRequest marks the whole roster for a session.
type BulkMarkAttendanceRequest struct {
	Date     string           `json:"date" binding:"required"`
	Branch   string           `json:"branch" binding:"required,max=60"`
	Semester int              `json:"semester" binding:"required,gte=1,lte=8"`
	Status   AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE"`
}

// AttendanceFilter selects one session's roster view.
type AttendanceFilter struct {
	Date     time.Time
	Branch   string
	Semester int
	// Search filters the merged roster by student name or ID.
	Search string
	// Bucket is the view-only status filter applied after the merge;
	// empty means all buckets.
	Bucket AttendanceStatus
}
