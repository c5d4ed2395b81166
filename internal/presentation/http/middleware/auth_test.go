package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

func runRoleGate(t *testing.T, gate gin.HandlerFunc, role enum.Role) (int, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		c.Set(identityKey, entity.Identity{Username: "tester", Role: role})
	}

	gate(c)
	return w.Code, c.IsAborted()
}

func TestRoleGates(t *testing.T) {
	tests := []struct {
		name      string
		gate      gin.HandlerFunc
		role      enum.Role
		wantAbort bool
	}{
		{"admin gate allows master", RequireAdmin(), enum.RoleMaster, false},
		{"admin gate allows admin", RequireAdmin(), enum.RoleAdmin, false},
		{"admin gate rejects user", RequireAdmin(), enum.RoleUser, true},
		{"master gate allows master", RequireMaster(), enum.RoleMaster, false},
		{"master gate rejects admin", RequireMaster(), enum.RoleAdmin, true},
		{"master gate rejects user", RequireMaster(), enum.RoleUser, true},
		{"admin gate rejects missing identity", RequireAdmin(), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, aborted := runRoleGate(t, tt.gate, tt.role)
			if aborted != tt.wantAbort {
				t.Fatalf("aborted = %v, want %v", aborted, tt.wantAbort)
			}
			if tt.wantAbort && code != http.StatusForbidden {
				t.Errorf("status = %d, want %d", code, http.StatusForbidden)
			}
		})
	}
}
