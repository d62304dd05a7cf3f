package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/policy"
)

func hrAdmin() model.Identity {
	return model.Identity{Email: "hr@example.com", Roles: []string{model.RoleHRAdmin}}
}

func manager() model.Identity {
	return model.Identity{Email: "manager@example.com", Roles: []string{model.RoleManager}}
}

func employee() model.Identity {
	return model.Identity{Email: "worker@example.com", Roles: []string{model.RoleEmployee}}
}

func profile(email string, departmentID uint) *model.Employee {
	return &model.Employee{Email: email, DepartmentID: departmentID}
}

func TestEmployeeListScope(t *testing.T) {
	t.Run("hr admin is unrestricted", func(t *testing.T) {
		scope := policy.EmployeeListScope(hrAdmin(), nil)
		assert.True(t, scope.Allowed)
		assert.True(t, scope.Unrestricted)
	})

	t.Run("manager is limited to own department without admins", func(t *testing.T) {
		scope := policy.EmployeeListScope(manager(), profile("manager@example.com", 3))
		assert.True(t, scope.Allowed)
		assert.False(t, scope.Unrestricted)
		assert.EqualValues(t, 3, scope.DepartmentID)
		assert.True(t, scope.ExcludeAdmins)
		assert.Empty(t, scope.SelfEmail)
	})

	t.Run("manager without profile is denied", func(t *testing.T) {
		scope := policy.EmployeeListScope(manager(), nil)
		assert.False(t, scope.Allowed)
	})

	t.Run("employee keeps own row visible", func(t *testing.T) {
		scope := policy.EmployeeListScope(employee(), profile("worker@example.com", 3))
		assert.True(t, scope.Allowed)
		assert.EqualValues(t, 3, scope.DepartmentID)
		assert.True(t, scope.ExcludeAdmins)
		assert.Equal(t, "worker@example.com", scope.SelfEmail)
	})

	t.Run("no recognized role is denied", func(t *testing.T) {
		scope := policy.EmployeeListScope(model.Identity{Email: "x@example.com", Roles: []string{"Contractor"}}, nil)
		assert.False(t, scope.Allowed)
	})
}

func TestCanViewEmployee(t *testing.T) {
	other := profile("other@example.com", 7)

	t.Run("hr admin sees everyone", func(t *testing.T) {
		assert.True(t, policy.CanViewEmployee(hrAdmin(), nil, other).Allowed)
	})

	t.Run("manager sees own department only", func(t *testing.T) {
		caller := profile("manager@example.com", 7)
		assert.True(t, policy.CanViewEmployee(manager(), caller, other).Allowed)

		outside := profile("outside@example.com", 8)
		decision := policy.CanViewEmployee(manager(), caller, outside)
		assert.False(t, decision.Allowed)
		assert.NotEmpty(t, decision.Reason)
	})

	t.Run("employee sees only self", func(t *testing.T) {
		caller := profile("worker@example.com", 7)
		assert.True(t, policy.CanViewEmployee(employee(), caller, caller).Allowed)
		assert.False(t, policy.CanViewEmployee(employee(), caller, other).Allowed)
	})
}

func TestCanEditEmployee(t *testing.T) {
	target := profile("target@example.com", 7)

	t.Run("employee role never edits, not even self", func(t *testing.T) {
		caller := profile("worker@example.com", 7)
		assert.False(t, policy.CanEditEmployee(employee(), caller, caller).Allowed)
	})

	t.Run("manager edits within department", func(t *testing.T) {
		caller := profile("manager@example.com", 7)
		assert.True(t, policy.CanEditEmployee(manager(), caller, target).Allowed)
		assert.False(t, policy.CanEditEmployee(manager(), profile("manager@example.com", 8), target).Allowed)
	})

	t.Run("salary changes follow the edit rule", func(t *testing.T) {
		caller := profile("manager@example.com", 7)
		assert.True(t, policy.CanChangeSalary(manager(), caller, target).Allowed)
		assert.False(t, policy.CanChangeSalary(employee(), profile("worker@example.com", 7), target).Allowed)
	})
}

func TestDepartmentRules(t *testing.T) {
	t.Run("only hr admin creates and deletes", func(t *testing.T) {
		assert.True(t, policy.CanCreateDepartment(hrAdmin()).Allowed)
		assert.False(t, policy.CanCreateDepartment(manager()).Allowed)
		assert.True(t, policy.CanDeleteDepartment(hrAdmin()).Allowed)
		assert.False(t, policy.CanDeleteDepartment(manager()).Allowed)
	})

	t.Run("manager edits own department only", func(t *testing.T) {
		caller := profile("manager@example.com", 7)
		assert.True(t, policy.CanEditDepartment(manager(), caller, 7).Allowed)
		assert.False(t, policy.CanEditDepartment(manager(), caller, 8).Allowed)
	})

	t.Run("employee cannot view departments", func(t *testing.T) {
		assert.False(t, policy.CanViewDepartments(employee()).Allowed)
	})

	t.Run("growth records are hr admin only", func(t *testing.T) {
		assert.True(t, policy.CanManageGrowthRecords(hrAdmin()).Allowed)
		assert.False(t, policy.CanManageGrowthRecords(manager()).Allowed)
	})
}

func TestSalaryHistoryScope(t *testing.T) {
	t.Run("hr admin unrestricted", func(t *testing.T) {
		scope := policy.SalaryHistoryScope(hrAdmin(), nil)
		assert.True(t, scope.Allowed)
		assert.True(t, scope.Unrestricted)
	})

	t.Run("manager scoped to department", func(t *testing.T) {
		scope := policy.SalaryHistoryScope(manager(), profile("manager@example.com", 7))
		assert.True(t, scope.Allowed)
		assert.EqualValues(t, 7, scope.DepartmentID)
	})

	t.Run("employee scoped to self", func(t *testing.T) {
		scope := policy.SalaryHistoryScope(employee(), profile("worker@example.com", 7))
		assert.True(t, scope.Allowed)
		assert.Equal(t, "worker@example.com", scope.SelfEmail)
		assert.Zero(t, scope.DepartmentID)
	})
}
