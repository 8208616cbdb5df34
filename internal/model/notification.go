package model

import "time"

// NotificationType categorizes institutional alerts.
type NotificationType string

const (
	NotificationRegistration NotificationType = "REGISTRATION"
	NotificationSystem       NotificationType = "SYSTEM"
	NotificationAcademic     NotificationType = "ACADEMIC"
)

// Notification is an institutional alert with read/unread state.
type Notification struct {
	ID        int              `json:"id"`
	Recipient string           `json:"recipient"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// AbsenteeAlert is the queue payload produced when a teacher dispatches
// absence notices for a session. The absentee worker turns each alert
// into a stored notification and a live publish.
type AbsenteeAlert struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Date        string `json:"date"`
	Branch      string `json:"branch"`
	Semester    int    `json:"semester"`
	RaisedBy    string `json:"raised_by"`
}
