package dao_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/hcm/api/dao"
	hcm_errors "github.com/talentforge/hcm/api/errors"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/policy"
)

func TestCreateEmployee_DuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")
	seedEmployee(t, db, dept.ID, "EMP-1001", "first@example.com", 50000)

	_, err := employeeDAO.CreateEmployee(context.Background(), model.Employee{
		EmployeeNumber: "EMP-1001",
		FirstName:      "Second",
		LastName:       "Person",
		Email:          "second@example.com",
		JobTitle:       "Engineer",
		Salary:         decimal.NewFromInt(50000),
		DepartmentID:   dept.ID,
	}, "hr.admin@example.com")

	assert.ErrorIs(t, err, hcm_errors.ErrEmployeeConflict)
}

func TestGetEmployeeByEmail_MissingIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)

	employee, err := employeeDAO.GetEmployeeByEmail(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Nil(t, employee)
}

func TestUpdateEmployee_StaleVersionRejected(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")
	stored := seedEmployee(t, db, dept.ID, "EMP-1001", "alice@example.com", 50000)

	// First writer wins.
	edit := *stored
	edit.JobTitle = "Senior Engineer"
	_, err := employeeDAO.UpdateEmployee(context.Background(), edit, testActor())
	require.NoError(t, err)

	// Second writer still holds the old version.
	stale := *stored
	stale.JobTitle = "Staff Engineer"
	_, err = employeeDAO.UpdateEmployee(context.Background(), stale, testActor())

	assert.ErrorIs(t, err, hcm_errors.ErrEmployeeModified)
}

func TestUpdateEmployee_SalaryChangeWritesHistory(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")
	stored := seedEmployee(t, db, dept.ID, "EMP-1001", "alice@example.com", 50000)

	edit := *stored
	edit.Salary = decimal.NewFromInt(60000)
	updated, err := employeeDAO.UpdateEmployee(context.Background(), edit, testActor())
	require.NoError(t, err)
	assert.Equal(t, stored.Version+1, updated.Version)
	assert.True(t, updated.Salary.Equal(decimal.NewFromInt(60000)))

	var histories []model.SalaryHistory
	require.NoError(t, db.Where("employee_id = ?", stored.ID).Find(&histories).Error)
	require.Len(t, histories, 1)
	assert.True(t, histories[0].OldSalary.Equal(decimal.NewFromInt(50000)))
	assert.True(t, histories[0].NewSalary.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, "EMP-1001", histories[0].ChangedByNumber)
}

func TestUpdateEmployee_UnchangedSalaryWritesNoHistory(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")
	stored := seedEmployee(t, db, dept.ID, "EMP-1001", "alice@example.com", 50000)

	edit := *stored
	edit.JobTitle = "Senior Engineer"
	_, err := employeeDAO.UpdateEmployee(context.Background(), edit, testActor())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.SalaryHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteEmployee_RemovesHistories(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")
	stored := seedEmployee(t, db, dept.ID, "EMP-1001", "alice@example.com", 50000)

	edit := *stored
	edit.Salary = decimal.NewFromInt(55000)
	_, err := employeeDAO.UpdateEmployee(context.Background(), edit, testActor())
	require.NoError(t, err)

	require.NoError(t, employeeDAO.DeleteEmployee(context.Background(), stored.ID, "hr.admin@example.com"))

	var histories int64
	require.NoError(t, db.Model(&model.SalaryHistory{}).Count(&histories).Error)
	assert.Zero(t, histories)

	_, err = employeeDAO.GetEmployee(context.Background(), stored.ID)
	assert.ErrorIs(t, err, hcm_errors.ErrEmployeeNotFound)
}

func TestListEmployees_DepartmentScope(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)
	engineering := seedDepartment(t, db, "Engineering")
	finance := seedDepartment(t, db, "Finance")

	seedEmployee(t, db, engineering.ID, "EMP-1001", "alice@example.com", 50000)
	seedEmployee(t, db, finance.ID, "EMP-1002", "bob@example.com", 55000)
	admin := seedEmployee(t, db, engineering.ID, "EMP-1003", "admin@example.com", 90000)
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)

	scope := policy.ListScope{Allowed: true, DepartmentID: engineering.ID, ExcludeAdmins: true}
	employees, err := employeeDAO.ListEmployees(context.Background(), scope, 0, 0)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "alice@example.com", employees[0].Email)
}

func TestListEmployees_SelfAlwaysIncluded(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)
	engineering := seedDepartment(t, db, "Engineering")

	seedEmployee(t, db, engineering.ID, "EMP-1001", "alice@example.com", 50000)
	self := seedEmployee(t, db, engineering.ID, "EMP-1002", "me@example.com", 60000)
	require.NoError(t, db.Model(self).Update("is_admin", true).Error)

	// The caller is admin-flagged, but their own row must still appear.
	scope := policy.ListScope{
		Allowed:       true,
		DepartmentID:  engineering.ID,
		ExcludeAdmins: true,
		SelfEmail:     "me@example.com",
	}
	employees, err := employeeDAO.ListEmployees(context.Background(), scope, 0, 0)
	require.NoError(t, err)

	emails := make([]string, len(employees))
	for i, e := range employees {
		emails[i] = e.Email
	}
	assert.ElementsMatch(t, []string{"alice@example.com", "me@example.com"}, emails)
}

func TestCheckIntegrity_ReportsFindings(t *testing.T) {
	db := newTestDB(t)
	employeeDAO := dao.NewEmployeeDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")
	seedEmployee(t, db, dept.ID, "EMP-1001", "alice@example.com", 50000)

	report, err := employeeDAO.CheckIntegrity(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Clean())

	broken := seedEmployee(t, db, dept.ID, "EMP-1002", "bob@example.com", 50000)
	require.NoError(t, db.Model(broken).Update("employee_number", "").Error)

	report, err = employeeDAO.CheckIntegrity(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.EqualValues(t, 1, report.EmployeesWithoutNumber)
}
