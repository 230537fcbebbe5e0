package rbac_test

import (
	"testing"

	"go-teamhub/internal/domain"
	"go-teamhub/internal/rbac"
	"go-teamhub/internal/rbac/infra"
	"go-teamhub/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	svc, err := rbac.NewService(enforcer, rbac.DefaultPolicy())
	require.NoError(t, err)
	return svc
}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"employee reads own attendance", user.RoleEmployee, rbac.ResourceAttendance, rbac.ActionSelf, true},
		{"employee cannot list everyone", user.RoleEmployee, rbac.ResourceAttendance, rbac.ActionReadAll, false},
		{"employee cannot deduct", user.RoleEmployee, rbac.ResourceSalary, rbac.ActionDeduct, false},
		{"hr deducts", user.RoleHR, rbac.ResourceSalary, rbac.ActionDeduct, true},
		{"hr inherits employee permissions", user.RoleHR, rbac.ResourceLeave, rbac.ActionApply, true},
		{"hr cannot run jobs", user.RoleHR, rbac.ResourceJob, rbac.ActionRun, false},
		{"admin inherits hr permissions", user.RoleAdmin, rbac.ResourceLeave, rbac.ActionDecide, true},
		{"admin runs jobs", user.RoleAdmin, rbac.ResourceJob, rbac.ActionRun, true},
		{"role is case insensitive", "admin", rbac.ResourceJob, rbac.ActionRun, true},
		{"unknown role", "GUEST", rbac.ResourceAttendance, rbac.ActionSelf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				UserID:   "u-1",
				Role:     tt.role,
				Resource: tt.resource,
				Action:   tt.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestService_ListRoles(t *testing.T) {
	svc := newService(t)

	roles, err := svc.ListRoles()
	require.NoError(t, err)

	byName := map[string]domain.RoleResponse{}
	for _, r := range roles {
		byName[r.Name] = r
	}
	assert.Contains(t, byName, user.RoleAdmin)
	assert.Contains(t, byName[user.RoleAdmin].Permissions, "job:run")
	assert.Contains(t, byName[user.RoleAdmin].Permissions, "attendance:self")
	assert.Equal(t, []string{user.RoleEmployee}, byName[user.RoleHR].Inherits)
}
