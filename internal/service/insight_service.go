package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/educhain/educhain-server/internal/gemini"
	"github.com/educhain/educhain-server/internal/model"
)

// InsightService generates AI dashboard insights. The prompt is built
// from live dashboard figures and a role context so each role gets
// recommendations it can act on.
type InsightService struct {
	gemini           *gemini.Client
	dashboardService *DashboardService
}

// NewInsightService creates a new InsightService.
func NewInsightService(client *gemini.Client, dashboardService *DashboardService) *InsightService {
	return &InsightService{gemini: client, dashboardService: dashboardService}
}

// Configured reports whether the generative backend is usable.
func (s *InsightService) Configured() bool {
	return s.gemini.Configured()
}

func roleContext(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "institutional administrator focusing on high-level growth and operational efficiency"
	case model.RoleTeacher:
		return "faculty member focusing on classroom engagement, student retention, and academic success"
	default:
		return "student seeking academic improvement and career readiness"
	}
}

// BuildPrompt renders the consultant prompt for a role from dashboard
// figures. Role-specific metric lines appear only for the matching role.
func BuildPrompt(role model.Role, stats *model.DashboardStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "As an educational AI consultant for a(n) %s, analyze these metrics and provide 3 tailored, actionable recommendations:\n", roleContext(role))
	fmt.Fprintf(&sb, "- Total Students: %d\n", stats.TotalStudents)
	fmt.Fprintf(&sb, "- Total Courses: %d\n", stats.TotalCourses)
	fmt.Fprintf(&sb, "- Active Faculty: %d\n", stats.ActiveTeachers)
	fmt.Fprintf(&sb, "- Average GPA: %.2f\n", stats.AverageGPA)
	if role == model.RoleStudent && stats.StudentStats != nil {
		fmt.Fprintf(&sb, "- Personal GPA: %.2f\n", stats.StudentStats.PersonalGPA)
	}
	if role == model.RoleTeacher && stats.TeacherStats != nil {
		fmt.Fprintf(&sb, "- Teacher Load: %d courses\n", stats.TeacherStats.AssignedCourses)
	}
	sb.WriteString("\nMaintain a highly professional, encouraging, and data-driven tone. Format in Markdown with bullet points.")
	return sb.String()
}

// Generate computes the caller's dashboard figures and asks the model
// for recommendations. Returns gemini.ErrNotConfigured when no usable
// API key is present.
func (s *InsightService) Generate(ctx context.Context, claims *Claims) (string, error) {
	stats, err := s.dashboardService.Stats(ctx, claims)
	if err != nil {
		return "", err
	}
	return s.gemini.GenerateContent(ctx, BuildPrompt(claims.Role, stats))
}
