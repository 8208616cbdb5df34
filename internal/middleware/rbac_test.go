package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performWithRole(role model.Role, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		c.Set(ContextKeyClaims, &service.Claims{Role: role})
	}
	handler(c)
	return w
}

func TestRequireRoles(t *testing.T) {
	manage := RequireRoles(model.RoleAdmin, model.RoleTeacher)

	tests := []struct {
		name string
		role model.Role
		want int
	}{
		{"admin allowed", model.RoleAdmin, http.StatusOK},
		{"teacher allowed", model.RoleTeacher, http.StatusOK},
		{"student forbidden", model.RoleStudent, http.StatusForbidden},
		{"missing claims unauthorized", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithRole(tt.role, manage)
			got := w.Code
			if got == http.StatusOK && tt.want == http.StatusOK {
				return
			}
			if got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := RequireAdmin()

	if w := performWithRole(model.RoleTeacher, admin); w.Code != http.StatusForbidden {
		t.Errorf("teacher status = %d, want 403", w.Code)
	}
	if w := performWithRole(model.RoleStudent, admin); w.Code != http.StatusForbidden {
		t.Errorf("student status = %d, want 403", w.Code)
	}
	if w := performWithRole("", admin); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", w.Code)
	}
	// Admin passes through without writing a response.
	if w := performWithRole(model.RoleAdmin, admin); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want passthrough 200", w.Code)
	}
}
