package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	hcm_errors "github.com/talentforge/hcm/api/errors"
	"github.com/talentforge/hcm/api/model"
)

func newEmployee(departmentID uint, email string, salary int64) model.Employee {
	return model.Employee{
		FirstName:    "Alice",
		LastName:     "Johnson",
		Email:        email,
		JobTitle:     "Engineer",
		Salary:       decimal.NewFromInt(salary),
		DepartmentID: departmentID,
	}
}

func TestCreateEmployee_AllocatesSequentialNumbers(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")

	first, err := services.Employee.CreateEmployee(context.Background(), hrAdmin(), newEmployee(dept.ID, "alice@example.com", 60000))
	require.NoError(t, err)
	assert.Equal(t, "EMP-1001", first.EmployeeNumber)

	second, err := services.Employee.CreateEmployee(context.Background(), hrAdmin(), newEmployee(dept.ID, "bob@example.com", 55000))
	require.NoError(t, err)
	assert.Equal(t, "EMP-1002", second.EmployeeNumber)
}

func TestCreateEmployee_ExplicitNumberKept(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")

	employee := newEmployee(dept.ID, "alice@example.com", 60000)
	employee.EmployeeNumber = "EMP-2000"

	created, err := services.Employee.CreateEmployee(context.Background(), hrAdmin(), employee)
	require.NoError(t, err)
	assert.Equal(t, "EMP-2000", created.EmployeeNumber)

	// The allocator continues past the explicit number.
	next, err := services.Employee.CreateEmployee(context.Background(), hrAdmin(), newEmployee(dept.ID, "bob@example.com", 55000))
	require.NoError(t, err)
	assert.Equal(t, "EMP-2001", next.EmployeeNumber)
}

func TestCreateEmployee_RetriesAfterNumberCollision(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")

	// A competing writer grabs the freshly computed number just before the
	// first insert lands; the unique index rejects the insert and the
	// allocator must re-read and move on to the next number.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("steal_employee_number", func(tx *gorm.DB) {
		employee, ok := tx.Statement.Dest.(*model.Employee)
		if !ok || raced {
			return
		}
		raced = true
		rival := model.Employee{
			EmployeeNumber: employee.EmployeeNumber,
			FirstName:      "Riley",
			LastName:       "Vance",
			Email:          "rival@example.com",
			JobTitle:       "Engineer",
			Salary:         decimal.NewFromInt(50000),
			DepartmentID:   employee.DepartmentID,
		}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(&rival).Error; err != nil {
			tx.AddError(err)
		}
	})
	require.NoError(t, err)

	created, err := services.Employee.CreateEmployee(context.Background(), hrAdmin(), newEmployee(dept.ID, "alice@example.com", 60000))
	require.NoError(t, err)
	assert.True(t, raced)
	assert.Equal(t, "EMP-1002", created.EmployeeNumber)

	var numbers []string
	require.NoError(t, db.Model(&model.Employee{}).Order("employee_number").Pluck("employee_number", &numbers).Error)
	assert.Equal(t, []string{"EMP-1001", "EMP-1002"}, numbers)
}

func TestCreateEmployee_DuplicateEmailConflicts(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")

	_, err := services.Employee.CreateEmployee(context.Background(), hrAdmin(), newEmployee(dept.ID, "alice@example.com", 60000))
	require.NoError(t, err)

	_, err = services.Employee.CreateEmployee(context.Background(), hrAdmin(), newEmployee(dept.ID, "alice@example.com", 70000))
	assert.ErrorIs(t, err, hcm_errors.ErrEmployeeConflict)
}

func TestCreateEmployee_EmployeeRoleForbidden(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")
	seedEmployee(t, db, dept.ID, "EMP-1001", "worker@example.com", 50000)

	_, err := services.Employee.CreateEmployee(context.Background(), employeeIdentity("worker@example.com"), newEmployee(dept.ID, "new@example.com", 50000))
	assert.ErrorIs(t, err, hcm_errors.ErrForbidden)
}

func TestCreateEmployee_ManagerRestrictedToOwnDepartment(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	finance := seedDepartment(t, db, "Finance")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "manager@example.com", 80000)

	_, err := services.Employee.CreateEmployee(context.Background(), managerIdentity("manager@example.com"), newEmployee(finance.ID, "new@example.com", 50000))
	assert.ErrorIs(t, err, hcm_errors.ErrForbidden)

	created, err := services.Employee.CreateEmployee(context.Background(), managerIdentity("manager@example.com"), newEmployee(engineering.ID, "new@example.com", 50000))
	require.NoError(t, err)
	assert.Equal(t, engineering.ID, created.DepartmentID)
}

func TestGetEmployee_EmployeeSeesOnlySelf(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")
	self := seedEmployee(t, db, dept.ID, "EMP-1001", "worker@example.com", 50000)
	other := seedEmployee(t, db, dept.ID, "EMP-1002", "other@example.com", 55000)

	got, err := services.Employee.GetEmployee(context.Background(), employeeIdentity("worker@example.com"), self.ID)
	require.NoError(t, err)
	assert.Equal(t, "worker@example.com", got.Email)

	_, err = services.Employee.GetEmployee(context.Background(), employeeIdentity("worker@example.com"), other.ID)
	assert.ErrorIs(t, err, hcm_errors.ErrForbidden)
}

func TestListEmployees_ManagerDoesNotSeeOtherDepartments(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	finance := seedDepartment(t, db, "Finance")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "manager@example.com", 80000)
	seedEmployee(t, db, engineering.ID, "EMP-1002", "peer@example.com", 50000)
	seedEmployee(t, db, finance.ID, "EMP-1003", "outsider@example.com", 55000)

	employees, err := services.Employee.ListEmployees(context.Background(), managerIdentity("manager@example.com"), 0, 0)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	for _, e := range employees {
		assert.Equal(t, engineering.ID, e.DepartmentID)
	}
}

func TestUpdateEmployee_SalaryEditRecordsHistory(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")
	stored := seedEmployee(t, db, dept.ID, "EMP-1001", "alice@example.com", 50000)

	edit := *stored
	edit.Salary = decimal.NewFromInt(60000)
	updated, err := services.Employee.UpdateEmployee(context.Background(), hrAdmin(), edit)
	require.NoError(t, err)
	assert.True(t, updated.Salary.Equal(decimal.NewFromInt(60000)))

	var histories []model.SalaryHistory
	require.NoError(t, db.Where("employee_id = ?", stored.ID).Find(&histories).Error)
	require.Len(t, histories, 1)
	assert.True(t, histories[0].OldSalary.Equal(decimal.NewFromInt(50000)))
	// The actor had no employee profile, so the snapshot falls back to the
	// identity with a placeholder number.
	assert.Equal(t, "N/A", histories[0].ChangedByNumber)
	assert.Equal(t, "hr@example.com", histories[0].ChangedByEmail)
}

func TestUpdateEmployee_NumberImmutable(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")
	stored := seedEmployee(t, db, dept.ID, "EMP-1001", "alice@example.com", 50000)

	edit := *stored
	edit.EmployeeNumber = "EMP-9999"
	updated, err := services.Employee.UpdateEmployee(context.Background(), hrAdmin(), edit)
	require.NoError(t, err)
	assert.Equal(t, "EMP-1001", updated.EmployeeNumber)
}

func TestDeleteEmployee_ManagerForbidden(t *testing.T) {
	services, db := newTestServices(t)
	dept := seedDepartment(t, db, "Engineering")
	seedEmployee(t, db, dept.ID, "EMP-1001", "manager@example.com", 80000)
	target := seedEmployee(t, db, dept.ID, "EMP-1002", "alice@example.com", 50000)

	err := services.Employee.DeleteEmployee(context.Background(), managerIdentity("manager@example.com"), target.ID)
	assert.ErrorIs(t, err, hcm_errors.ErrForbidden)

	require.NoError(t, services.Employee.DeleteEmployee(context.Background(), hrAdmin(), target.ID))
}

func TestGetMyProfile_AutoProvisionsInSentinel(t *testing.T) {
	services, db := newTestServices(t)
	sentinel := seedDepartment(t, db, model.SentinelDepartmentName)

	identity := model.Identity{Email: "new.hire@example.com", Username: "New Hire", Roles: []string{model.RoleEmployee}}
	profile, err := services.Employee.GetMyProfile(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, sentinel.ID, profile.DepartmentID)
	assert.Equal(t, "EMP-1001", profile.EmployeeNumber)
	assert.Equal(t, "New", profile.FirstName)
	assert.Equal(t, "Hire", profile.LastName)
	assert.True(t, profile.Salary.IsZero())

	// A second call returns the same record instead of provisioning again.
	again, err := services.Employee.GetMyProfile(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestGetMyProfile_MissingSentinelFails(t *testing.T) {
	services, _ := newTestServices(t)

	_, err := services.Employee.GetMyProfile(context.Background(), employeeIdentity("new.hire@example.com"))
	assert.ErrorIs(t, err, hcm_errors.ErrSentinelDepartmentGone)
}

func TestEmployeeStatistics_Scoped(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	finance := seedDepartment(t, db, "Finance")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "manager@example.com", 80000)
	seedEmployee(t, db, engineering.ID, "EMP-1002", "peer@example.com", 50000)
	seedEmployee(t, db, finance.ID, "EMP-1003", "outsider@example.com", 55000)

	all, err := services.Employee.EmployeeStatistics(context.Background(), hrAdmin())
	require.NoError(t, err)
	assert.Equal(t, 3, all.EmployeeCount)

	scoped, err := services.Employee.EmployeeStatistics(context.Background(), managerIdentity("manager@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 2, scoped.EmployeeCount)

	_, err = services.Employee.EmployeeStatistics(context.Background(), employeeIdentity("peer@example.com"))
	assert.ErrorIs(t, err, hcm_errors.ErrForbidden)
}
