package model

import "time"

// StudentStatus represents a student's enrollment state.
type StudentStatus string

const (
	StudentActive    StudentStatus = "ACTIVE"
	StudentInactive  StudentStatus = "INACTIVE"
	StudentGraduated StudentStatus = "GRADUATED"
)

// RiskLevel is the server-assigned categorical label indicating
// likelihood of academic difficulty. It is stored, never computed here.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Student represents an enrolled student record.
type Student struct {
	ID             int           `json:"id"`
	StudentID      string        `json:"student_id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email"`
	MobileNumber   string        `json:"mobile_number,omitempty"`
	PasswordHash   string        `json:"-"`
	EnrollmentDate time.Time     `json:"enrollment_date"`
	Status         StudentStatus `json:"status"`
	GPA            float64       `json:"gpa"`
	Major          string        `json:"major"`
	Semester       int           `json:"semester"`
	SuccessScore   int           `json:"success_score"`
	RiskLevel      RiskLevel     `json:"risk_level"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// FullName returns the display name used in rosters and exports.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// SaveStudentRequest is the POST-as-upsert payload. An existing record
// is resolved by ID, then by student_id, then by email; otherwise a new
// record is created.
type SaveStudentRequest struct {
	ID             int           `json:"id" binding:"omitempty"`
	StudentID      string        `json:"student_id" binding:"required,min=2,max=30"`
	FirstName      string        `json:"first_name" binding:"required,min=1,max=60"`
	LastName       string        `json:"last_name" binding:"required,min=1,max=60"`
	Email          string        `json:"email" binding:"required,email"`
	MobileNumber   string        `json:"mobile_number" binding:"omitempty,max=20"`
	Password       string        `json:"password" binding:"omitempty,min=6,max=128"`
	EnrollmentDate string        `json:"enrollment_date" binding:"omitempty"`
	Status         StudentStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE GRADUATED"`
	GPA            *float64      `json:"gpa" binding:"omitempty,gte=0,lte=10"`
	Major          string        `json:"major" binding:"omitempty,max=60"`
	Semester       *int          `json:"semester" binding:"omitempty,gte=1,lte=8"`
	SuccessScore   *int          `json:"success_score" binding:"omitempty,gte=0,lte=100"`
	RiskLevel      RiskLevel     `json:"risk_level" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// StudentFilter narrows student list queries. A nil/empty field means
// "no constraint".
type StudentFilter struct {
	Search   string
	Branch   string
	Semester int
	Status   StudentStatus
	// OwnStudentID restricts the list to one student's own record
	// (applied for STUDENT-role sessions).
	OwnStudentID string
}
