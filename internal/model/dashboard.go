package model

// BranchCount is one slice of the branch distribution chart.
type BranchCount struct {
	Name  string `json:"name"`
	Count int    `json:"val"`
}

// Deadline is an upcoming due date shown on the student dashboard.
type Deadline struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// StudentStats is the student-role slice of the dashboard.
type StudentStats struct {
	PersonalGPA       float64    `json:"personal_gpa"`
	AttendanceRate    int        `json:"attendance_rate"`
	CreditsEarned     int        `json:"credits_earned"`
	UpcomingDeadlines []Deadline `json:"upcoming_deadlines"`
}

// TeacherStats is the teacher-role slice of the dashboard.
type TeacherStats struct {
	AssignedCourses     int `json:"assigned_courses"`
	AvgClassPerformance int `json:"avg_class_performance"`
	PendingAttendance   int `json:"pending_attendance"`
}

// DashboardStats is the aggregate payload behind /dashboard/stats.
// StudentStats and TeacherStats are present only for the matching role.
type DashboardStats struct {
	TotalStudents      int               `json:"total_students"`
	TotalCourses       int               `json:"total_courses"`
	ActiveTeachers     int               `json:"active_teachers"`
	AverageGPA         float64           `json:"average_gpa"`
	RecentEnrollments  []int             `json:"recent_enrollments"`
	BranchDistribution []BranchCount     `json:"branch_distribution"`
	RiskDistribution   map[RiskLevel]int `json:"risk_distribution"`
	StudentStats       *StudentStats     `json:"student_stats,omitempty"`
	TeacherStats       *TeacherStats     `json:"teacher_stats,omitempty"`
}
