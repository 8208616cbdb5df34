package model

import "time"

// FacultyStatus represents a faculty member's employment state.
type FacultyStatus string

const (
	FacultyActive   FacultyStatus = "ACTIVE"
	FacultyOnLeave  FacultyStatus = "ON_LEAVE"
	FacultyResigned FacultyStatus = "RESIGNED"
	FacultyInactive FacultyStatus = "INACTIVE"
)

// Faculty represents a faculty member record.
type Faculty struct {
	ID           int           `json:"id"`
	EmployeeID   string        `json:"employee_id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	MobileNumber string        `json:"mobile_number,omitempty"`
	PasswordHash string        `json:"-"`
	Department   string        `json:"department"`
	Designation  string        `json:"designation"`
	Status       FacultyStatus `json:"status"`
	JoiningDate  time.Time     `json:"joining_date"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// FullName returns the display name used in listings and exports.
func (f *Faculty) FullName() string {
	return f.FirstName + " " + f.LastName
}

// SaveFacultyRequest is the POST-as-upsert payload for faculty records.
type SaveFacultyRequest struct {
	ID           int           `json:"id" binding:"omitempty"`
	EmployeeID   string        `json:"employee_id" binding:"required,min=2,max=30"`
	FirstName    string        `json:"first_name" binding:"required,min=1,max=60"`
	LastName     string        `json:"last_name" binding:"required,min=1,max=60"`
	Email        string        `json:"email" binding:"required,email"`
	MobileNumber string        `json:"mobile_number" binding:"omitempty,max=20"`
	Password     string        `json:"password" binding:"omitempty,min=6,max=128"`
	Department   string        `json:"department" binding:"required,max=60"`
	Designation  string        `json:"designation" binding:"required,max=60"`
	Status       FacultyStatus `json:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE RESIGNED INACTIVE"`
	JoiningDate  string        `json:"joining_date" binding:"omitempty"`
}

// FacultyFilter narrows faculty list queries.
type FacultyFilter struct {
	Search     string
	Department string
	Status     FacultyStatus
}
