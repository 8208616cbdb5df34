package model

import "time"

// GradeRecord represents a (student, course) score with its derived
// letter grade.
type GradeRecord struct {
	ID          int       `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	CourseCode  string    `json:"course_code"`
	CourseName  string    `json:"course_name"`
	Score       float64   `json:"score"`
	Grade       string    `json:"grade"`
	Semester    int       `json:"semester"`
	Department  string    `json:"department,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LetterGrade maps a 0-100 score to its letter grade. Bounds are
// inclusive and checked in descending order.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// SaveGradeRequest is the POST-as-upsert payload for grades. An existing
// record is resolved by ID, then by the (student, course) pair. The
// letter grade is always recomputed from the score server-side.
type SaveGradeRequest struct {
	ID         int     `json:"id" binding:"omitempty"`
	StudentID  string  `json:"student_id" binding:"required,min=2,max=30"`
	CourseCode string  `json:"course_code" binding:"required,min=2,max=20"`
	Score      float64 `json:"score" binding:"gte=0,lte=100"`
	Semester   *int    `json:"semester" binding:"omitempty,gte=1,lte=8"`
}
