package model

import "testing"

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role      Role
		canManage bool
		canDelete bool
	}{
		{RoleAdmin, true, true},
		{RoleTeacher, true, false},
		{RoleStudent, false, false},
	}
	for _, tt := range tests {
		if got := tt.role.CanManageRecords(); got != tt.canManage {
			t.Errorf("%s.CanManageRecords() = %v, want %v", tt.role, got, tt.canManage)
		}
		if got := tt.role.CanDeleteRecords(); got != tt.canDelete {
			t.Errorf("%s.CanDeleteRecords() = %v, want %v", tt.role, got, tt.canDelete)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleTeacher, RoleStudent} {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if Role("SUPERUSER").Valid() {
		t.Error("unknown role should be invalid")
	}
}
