// Package policy holds every authorization rule in one place as pure
// functions over the caller's identity, the caller's own employee profile
// and the target resource. Handlers consult these instead of repeating role
// checks inline. All rules are allow-list: an identity with no recognized
// role, or a Manager/Employee whose profile cannot be resolved, is denied.
package policy

import (
	"github.com/talentforge/hcm/api/model"
)

// Decision is the outcome of a policy check. Reason is set on denials and is
// safe to log but not intended for the response body.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// ListScope narrows an employee listing for the caller. Callers apply it as
// a query filter, never by post-filtering in the handler.
type ListScope struct {
	Allowed bool
	Reason  string

	// Unrestricted short-circuits the remaining fields.
	Unrestricted bool
	// DepartmentID limits rows to one department when non-zero.
	DepartmentID uint
	// ExcludeAdmins removes admin-flagged rows.
	ExcludeAdmins bool
	// SelfEmail re-includes the caller's own row even when other filters
	// would hide it.
	SelfEmail string
}

// EmployeeListScope decides what slice of the employee directory the caller
// may list. caller is the caller's own employee profile, nil when the
// identity has no profile.
func EmployeeListScope(identity model.Identity, caller *model.Employee) ListScope {
	switch {
	case identity.IsHRAdmin():
		return ListScope{Allowed: true, Unrestricted: true}
	case identity.IsManager():
		if caller == nil {
			return ListScope{Reason: "manager has no employee profile"}
		}
		return ListScope{
			Allowed:       true,
			DepartmentID:  caller.DepartmentID,
			ExcludeAdmins: true,
		}
	case identity.IsEmployee():
		if caller == nil {
			return ListScope{Reason: "employee has no profile"}
		}
		return ListScope{
			Allowed:       true,
			DepartmentID:  caller.DepartmentID,
			ExcludeAdmins: true,
			SelfEmail:     caller.Email,
		}
	}
	return ListScope{Reason: "no recognized role"}
}

// CanViewEmployee decides whether the caller may read one employee record.
// Denials are uniformly forbidden, never a redirect, so that the behavior
// does not differ between endpoints.
func CanViewEmployee(identity model.Identity, caller *model.Employee, target *model.Employee) Decision {
	switch {
	case identity.IsHRAdmin():
		return allow()
	case identity.IsManager():
		if caller == nil {
			return deny("manager has no employee profile")
		}
		if target.DepartmentID != caller.DepartmentID {
			return deny("employee is outside the manager's department")
		}
		return allow()
	case identity.IsEmployee():
		if caller == nil {
			return deny("employee has no profile")
		}
		if target.Email != caller.Email {
			return deny("employees may only view their own record")
		}
		return allow()
	}
	return deny("no recognized role")
}

// CanEditEmployee decides whether the caller may mutate one employee record.
// The Employee role has no edit rights, not even over its own record.
func CanEditEmployee(identity model.Identity, caller *model.Employee, target *model.Employee) Decision {
	switch {
	case identity.IsHRAdmin():
		return allow()
	case identity.IsManager():
		if caller == nil {
			return deny("manager has no employee profile")
		}
		if target.DepartmentID != caller.DepartmentID {
			return deny("employee is outside the manager's department")
		}
		return allow()
	}
	return deny("only HR Admin and Manager may edit employees")
}

// CanCreateEmployee decides whether the caller may create employee records.
func CanCreateEmployee(identity model.Identity) Decision {
	if identity.IsHRAdmin() || identity.IsManager() {
		return allow()
	}
	return deny("only HR Admin and Manager may create employees")
}

// CanDeleteEmployee is reserved to HR Admin.
func CanDeleteEmployee(identity model.Identity) Decision {
	if identity.IsHRAdmin() {
		return allow()
	}
	return deny("only HR Admin may delete employees")
}

// CanChangeSalary follows the edit rule: salary mutations are edits.
func CanChangeSalary(identity model.Identity, caller *model.Employee, target *model.Employee) Decision {
	return CanEditEmployee(identity, caller, target)
}

// CanViewDepartments gates the department collection and its analytics.
func CanViewDepartments(identity model.Identity) Decision {
	if identity.IsHRAdmin() || identity.IsManager() {
		return allow()
	}
	return deny("only HR Admin and Manager may view departments")
}

// CanEditDepartment decides whether the caller may rename or otherwise
// mutate a department. Managers may only touch their own department.
func CanEditDepartment(identity model.Identity, caller *model.Employee, departmentID uint) Decision {
	switch {
	case identity.IsHRAdmin():
		return allow()
	case identity.IsManager():
		if caller == nil {
			return deny("manager has no employee profile")
		}
		if caller.DepartmentID != departmentID {
			return deny("managers may only edit their own department")
		}
		return allow()
	}
	return deny("only HR Admin and Manager may edit departments")
}

// CanCreateDepartment and CanDeleteDepartment are reserved to HR Admin.
func CanCreateDepartment(identity model.Identity) Decision {
	if identity.IsHRAdmin() {
		return allow()
	}
	return deny("only HR Admin may create departments")
}

func CanDeleteDepartment(identity model.Identity) Decision {
	if identity.IsHRAdmin() {
		return allow()
	}
	return deny("only HR Admin may delete departments")
}

// CanManageGrowthRecords gates department growth figures.
func CanManageGrowthRecords(identity model.Identity) Decision {
	if identity.IsHRAdmin() {
		return allow()
	}
	return deny("only HR Admin may manage growth records")
}

// SalaryHistoryScope decides which salary history rows the caller may list.
func SalaryHistoryScope(identity model.Identity, caller *model.Employee) ListScope {
	switch {
	case identity.IsHRAdmin():
		return ListScope{Allowed: true, Unrestricted: true}
	case identity.IsManager():
		if caller == nil {
			return ListScope{Reason: "manager has no employee profile"}
		}
		return ListScope{Allowed: true, DepartmentID: caller.DepartmentID}
	case identity.IsEmployee():
		if caller == nil {
			return ListScope{Reason: "employee has no profile"}
		}
		return ListScope{Allowed: true, SelfEmail: caller.Email}
	}
	return ListScope{Reason: "no recognized role"}
}
