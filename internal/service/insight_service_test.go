package service

import (
	"strings"
	"testing"

	"github.com/educhain/educhain-server/internal/model"
)

func baseStats() *model.DashboardStats {
	return &model.DashboardStats{
		TotalStudents:  120,
		TotalCourses:   14,
		ActiveTeachers: 9,
		AverageGPA:     7.25,
	}
}

func TestBuildPromptAdmin(t *testing.T) {
	prompt := BuildPrompt(model.RoleAdmin, baseStats())

	if !strings.Contains(prompt, "institutional administrator") {
		t.Errorf("admin prompt missing role context: %q", prompt)
	}
	for _, line := range []string{
		"- Total Students: 120",
		"- Total Courses: 14",
		"- Active Faculty: 9",
		"- Average GPA: 7.25",
	} {
		if !strings.Contains(prompt, line) {
			t.Errorf("prompt missing %q", line)
		}
	}
	if strings.Contains(prompt, "Personal GPA") || strings.Contains(prompt, "Teacher Load") {
		t.Error("admin prompt should not carry role-specific metric lines")
	}
	if !strings.HasSuffix(prompt, "Format in Markdown with bullet points.") {
		t.Errorf("prompt missing closing instruction: %q", prompt)
	}
}

func TestBuildPromptStudent(t *testing.T) {
	stats := baseStats()
	stats.StudentStats = &model.StudentStats{PersonalGPA: 8.4}
	prompt := BuildPrompt(model.RoleStudent, stats)

	if !strings.Contains(prompt, "student seeking academic improvement") {
		t.Errorf("student prompt missing role context: %q", prompt)
	}
	if !strings.Contains(prompt, "- Personal GPA: 8.40") {
		t.Errorf("student prompt missing personal GPA line: %q", prompt)
	}
	if strings.Contains(prompt, "Teacher Load") {
		t.Error("student prompt should not carry the teacher metric line")
	}
}

func TestBuildPromptTeacher(t *testing.T) {
	stats := baseStats()
	stats.TeacherStats = &model.TeacherStats{AssignedCourses: 3}
	prompt := BuildPrompt(model.RoleTeacher, stats)

	if !strings.Contains(prompt, "faculty member focusing on classroom engagement") {
		t.Errorf("teacher prompt missing role context: %q", prompt)
	}
	if !strings.Contains(prompt, "- Teacher Load: 3 courses") {
		t.Errorf("teacher prompt missing load line: %q", prompt)
	}
	if strings.Contains(prompt, "Personal GPA") {
		t.Error("teacher prompt should not carry the student metric line")
	}
}

func TestBuildPromptNilRoleSlices(t *testing.T) {
	// A role slice can be nil when the aggregate query had no rows.
	// The prompt must degrade to the shared metrics only.
	prompt := BuildPrompt(model.RoleStudent, baseStats())
	if strings.Contains(prompt, "Personal GPA") {
		t.Error("nil StudentStats must omit the personal GPA line")
	}
}
