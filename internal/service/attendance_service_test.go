package service

import (
	"testing"

	"github.com/educhain/educhain-server/internal/model"
)

func TestScopeBranch(t *testing.T) {
	teacher := &Claims{Role: model.RoleTeacher, Department: "Computer Science"}
	admin := &Claims{Role: model.RoleAdmin}

	if got := scopeBranch(teacher, "Electronics"); got != "Computer Science" {
		t.Errorf("teacher branch = %q, want own department", got)
	}
	if got := scopeBranch(admin, "Electronics"); got != "Electronics" {
		t.Errorf("admin branch = %q, want requested branch", got)
	}
}

func TestMatchesRoster(t *testing.T) {
	rec := model.AttendanceRecord{
		StudentID:   "EDU-2024-1005",
		StudentName: "Ananya Iyer",
	}
	tests := []struct {
		search string
		want   bool
	}{
		{"ananya", true},
		{"IYER", true},
		{"1005", true},
		{"edu-2024", true},
		{"rahul", false},
		{"9999", false},
	}
	for _, tt := range tests {
		if got := matchesRoster(rec, tt.search); got != tt.want {
			t.Errorf("matchesRoster(%q) = %v, want %v", tt.search, got, tt.want)
		}
	}
}
