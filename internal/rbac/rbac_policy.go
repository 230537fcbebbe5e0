package rbac

import "go-teamhub/internal/user"

const (
	ResourceAttendance = "attendance"
	ResourceSalary     = "salary"
	ResourceLeave      = "leave"
	ResourceJob        = "job"
	ResourceRBAC       = "rbac"

	ActionSelf    = "self"
	ActionReadAll = "read_all"
	ActionManage  = "manage"
	ActionDeduct  = "deduct"
	ActionApply   = "apply"
	ActionDecide  = "decide"
	ActionRun     = "run"
	ActionRead    = "read"
)

type Permission struct {
	Resource string
	Action   string
}

// Policy maps a role to its own permissions and the roles it inherits.
type Policy struct {
	Permissions map[string][]Permission
	Inherits    map[string][]string
}

func DefaultPolicy() Policy {
	return Policy{
		Permissions: map[string][]Permission{
			user.RoleEmployee: {
				{ResourceAttendance, ActionSelf},
				{ResourceSalary, ActionSelf},
				{ResourceLeave, ActionApply},
				{ResourceLeave, ActionSelf},
			},
			user.RoleHR: {
				{ResourceAttendance, ActionReadAll},
				{ResourceSalary, ActionReadAll},
				{ResourceSalary, ActionDeduct},
				{ResourceLeave, ActionReadAll},
				{ResourceLeave, ActionDecide},
			},
			user.RoleAdmin: {
				{ResourceAttendance, ActionManage},
				{ResourceJob, ActionRun},
				{ResourceRBAC, ActionRead},
			},
		},
		Inherits: map[string][]string{
			user.RoleHR:    {user.RoleEmployee},
			user.RoleAdmin: {user.RoleHR},
		},
	}
}
