package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcm_errors "github.com/talentforge/hcm/api/errors"
	"github.com/talentforge/hcm/api/model"
)

func TestListDepartments_ManagerSeesOnlyOwn(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	seedDepartment(t, db, "Finance")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "manager@example.com", 80000)

	summaries, err := services.Department.ListDepartments(context.Background(), managerIdentity("manager@example.com"), 0, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Engineering", summaries[0].Department.Name)

	all, err := services.Department.ListDepartments(context.Background(), hrAdmin(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListDepartments_SummariesExcludeAdmins(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "alice@example.com", 50000)
	seedEmployee(t, db, engineering.ID, "EMP-1002", "bob@example.com", 70000)
	admin := seedEmployee(t, db, engineering.ID, "EMP-1003", "admin@example.com", 250000)
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)

	summaries, err := services.Department.ListDepartments(context.Background(), hrAdmin(), 0, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].EmployeeCount)
	assert.True(t, summaries[0].AverageSalary.Equal(decimal.NewFromInt(60000)))
}

func TestDepartmentAnalytics_IncludesMedianAndGrowth(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "a@example.com", 50000)
	seedEmployee(t, db, engineering.ID, "EMP-1002", "b@example.com", 60000)
	seedEmployee(t, db, engineering.ID, "EMP-1003", "c@example.com", 70000)

	goal := decimal.NewFromInt(50000)
	_, err := services.Department.AddGrowthRecord(context.Background(), hrAdmin(), model.DepartmentGrowth{
		DepartmentID: engineering.ID,
		Year:         2024,
		Revenue:      decimal.NewFromInt(200000),
		Expenses:     decimal.NewFromInt(100000),
		Goal:         &goal,
	})
	require.NoError(t, err)

	analytics, err := services.Department.DepartmentAnalytics(context.Background(), hrAdmin(), engineering.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, analytics.Salaries.EmployeeCount)
	assert.True(t, analytics.Salaries.MedianSalary.Equal(decimal.NewFromInt(60000)))
	assert.True(t, analytics.Salaries.HighestSalary.Equal(decimal.NewFromInt(70000)))

	require.Len(t, analytics.Growth, 1)
	assert.True(t, analytics.Growth[0].NetProfit.Equal(decimal.NewFromInt(100000)))
	assert.True(t, analytics.Growth[0].ProfitMargin.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, analytics.Growth[0].GoalAchievement)
	assert.True(t, analytics.Growth[0].GoalAchievement.Equal(decimal.NewFromInt(200)))
}

func TestDepartmentAnalytics_ManagerForbiddenOutsideOwn(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	finance := seedDepartment(t, db, "Finance")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "manager@example.com", 80000)

	_, err := services.Department.DepartmentAnalytics(context.Background(), managerIdentity("manager@example.com"), finance.ID)
	assert.ErrorIs(t, err, hcm_errors.ErrForbidden)

	_, err = services.Department.DepartmentAnalytics(context.Background(), employeeIdentity("manager@example.com"), engineering.ID)
	assert.ErrorIs(t, err, hcm_errors.ErrForbidden)
}

func TestDeleteDepartment_MovesStaffToSentinel(t *testing.T) {
	services, db := newTestServices(t)
	sentinel := seedDepartment(t, db, model.SentinelDepartmentName)
	engineering := seedDepartment(t, db, "Engineering")
	employee := seedEmployee(t, db, engineering.ID, "EMP-1001", "alice@example.com", 50000)

	require.NoError(t, services.Department.DeleteDepartment(context.Background(), hrAdmin(), engineering.ID))

	var moved model.Employee
	require.NoError(t, db.First(&moved, employee.ID).Error)
	assert.Equal(t, sentinel.ID, moved.DepartmentID)
}

func TestAddGrowthRecord_ValidatesAndGates(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "manager@example.com", 80000)

	record := model.DepartmentGrowth{
		DepartmentID: engineering.ID,
		Year:         2024,
		Revenue:      decimal.NewFromInt(100000),
		Expenses:     decimal.NewFromInt(40000),
	}

	_, err := services.Department.AddGrowthRecord(context.Background(), managerIdentity("manager@example.com"), record)
	assert.ErrorIs(t, err, hcm_errors.ErrForbidden)

	bad := record
	bad.Year = 1999
	_, err = services.Department.AddGrowthRecord(context.Background(), hrAdmin(), bad)
	assert.ErrorIs(t, err, hcm_errors.ErrInvalidGrowthRecordData)

	_, err = services.Department.AddGrowthRecord(context.Background(), hrAdmin(), record)
	require.NoError(t, err)
}

func TestDepartmentStatistics_Overview(t *testing.T) {
	services, db := newTestServices(t)
	engineering := seedDepartment(t, db, "Engineering")
	finance := seedDepartment(t, db, "Finance")
	seedEmployee(t, db, engineering.ID, "EMP-1001", "a@example.com", 50000)
	seedEmployee(t, db, engineering.ID, "EMP-1002", "b@example.com", 60000)
	seedEmployee(t, db, finance.ID, "EMP-1003", "c@example.com", 55000)

	stats, err := services.Department.DepartmentStatistics(context.Background(), hrAdmin())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalDepartments)
	assert.Equal(t, 3, stats.TotalEmployees)
	require.Len(t, stats.Departments, 2)
	assert.Equal(t, "Engineering", stats.Departments[0].DepartmentName)
	assert.Equal(t, 2, stats.Departments[0].EmployeeCount)
}
