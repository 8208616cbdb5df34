package model

import "time"

// Role determines which records and actions are visible to a session.
// It is fixed for the lifetime of a token.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether the role is one of the three recognized values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher || r == RoleStudent
}

// CanManageRecords reports whether the role may create or update
// students, courses and grades. Students are read-only everywhere.
func (r Role) CanManageRecords() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// CanDeleteRecords reports whether the role may delete registry records.
func (r Role) CanDeleteRecords() bool {
	return r == RoleAdmin
}

// User represents an authenticated identity.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	Department   string    `json:"department,omitempty"` // Home branch for teachers
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProfileRequest merges profile changes into the current identity.
// All fields are optional; empty values are left untouched.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Avatar   string `json:"avatar" binding:"omitempty,url"`
}

// RegisterRequest is the payload for a self-service registration request.
// Accounts are not activated directly; an admin reviews the request.
type RegisterRequest struct {
	FirstName    string `json:"first_name" binding:"required,min=1,max=60"`
	LastName     string `json:"last_name" binding:"required,min=1,max=60"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobile_number" binding:"omitempty,min=6,max=20"`
	Role         Role   `json:"role" binding:"required,oneof=TEACHER STUDENT"`
}

// RegisterResponse mirrors the pending-verification contract of the
// original registration flow.
type RegisterResponse struct {
	Message     string `json:"message"`
	GeneratedID string `json:"generated_id"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`
	Mobile      string `json:"mobile"`
}
