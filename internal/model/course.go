package model

import (
	"math"
	"time"
)

// UtilizationTier is the severity band of a course's seat utilization.
type UtilizationTier string

const (
	TierCritical UtilizationTier = "critical"
	TierWarning  UtilizationTier = "warning"
	TierNominal  UtilizationTier = "nominal"
)

// Course represents a curriculum entry.
type Course struct {
	ID           int       `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Department   string    `json:"department"`
	Credits      int       `json:"credits"`
	Instructor   string    `json:"instructor"`
	StudentCount int       `json:"student_count"`
	Capacity     int       `json:"capacity"`
	Semester     int       `json:"semester"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Derived, populated by the service layer before serialization.
	Utilization     int             `json:"utilization"`
	UtilizationTier UtilizationTier `json:"utilization_tier"`
}

// UtilizationPercent returns round(100 * enrolled / capacity).
// A zero capacity yields zero rather than a division error.
func UtilizationPercent(enrolled, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(enrolled) / float64(capacity) * 100))
}

// TierForUtilization maps a utilization percentage to its severity band:
// critical at 90% and above, warning at 70% and above, nominal below.
func TierForUtilization(percent int) UtilizationTier {
	switch {
	case percent >= 90:
		return TierCritical
	case percent >= 70:
		return TierWarning
	default:
		return TierNominal
	}
}

// SaveCourseRequest is the POST-as-upsert payload for courses. Existing
// records are resolved by ID, then by course code.
type SaveCourseRequest struct {
	ID         int    `json:"id" binding:"omitempty"`
	Code       string `json:"code" binding:"required,min=2,max=20"`
	Name       string `json:"name" binding:"required,min=2,max=120"`
	Department string `json:"department" binding:"required,max=60"`
	Credits    int    `json:"credits" binding:"required,gte=1,lte=10"`
	Instructor string `json:"instructor" binding:"omitempty,max=120"`
	Capacity   *int   `json:"capacity" binding:"omitempty,gte=1"`
	Semester   *int   `json:"semester" binding:"omitempty,gte=1,lte=8"`
}

// CourseFilter narrows course list queries.
type CourseFilter struct {
	Search   string
	Branch   string
	Semester int
}
