// test/mock/services.go
package mock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/service"
)

// MockEmployeeService is a mock implementation of service.IEmployeeService
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, identity model.Identity, employee model.Employee) (*model.Employee, error) {
	args := m.Called(ctx, identity, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) UpdateEmployee(ctx context.Context, identity model.Identity, employee model.Employee) (*model.Employee, error) {
	args := m.Called(ctx, identity, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) DeleteEmployee(ctx context.Context, identity model.Identity, employeeID uint) error {
	args := m.Called(ctx, identity, employeeID)
	return args.Error(0)
}

func (m *MockEmployeeService) GetEmployee(ctx context.Context, identity model.Identity, employeeID uint) (*model.Employee, error) {
	args := m.Called(ctx, identity, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context, identity model.Identity, limit, offset int) ([]*model.Employee, error) {
	args := m.Called(ctx, identity, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetMyProfile(ctx context.Context, identity model.Identity) (*model.Employee, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) EmployeeStatistics(ctx context.Context, identity model.Identity) (*service.EmployeeStatisticsResult, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EmployeeStatisticsResult), args.Error(1)
}

// MockDepartmentService is a mock implementation of service.IDepartmentService
type MockDepartmentService struct {
	mock.Mock
}

func (m *MockDepartmentService) CreateDepartment(ctx context.Context, identity model.Identity, department model.Department) (*model.Department, error) {
	args := m.Called(ctx, identity, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) UpdateDepartment(ctx context.Context, identity model.Identity, department model.Department) (*model.Department, error) {
	args := m.Called(ctx, identity, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) DeleteDepartment(ctx context.Context, identity model.Identity, departmentID uint) error {
	args := m.Called(ctx, identity, departmentID)
	return args.Error(0)
}

func (m *MockDepartmentService) GetDepartment(ctx context.Context, identity model.Identity, departmentID uint) (*model.Department, error) {
	args := m.Called(ctx, identity, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) ListDepartments(ctx context.Context, identity model.Identity, limit, offset int) ([]service.DepartmentSummary, error) {
	args := m.Called(ctx, identity, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DepartmentSummary), args.Error(1)
}

func (m *MockDepartmentService) DepartmentAnalytics(ctx context.Context, identity model.Identity, departmentID uint) (*service.DepartmentAnalytics, error) {
	args := m.Called(ctx, identity, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DepartmentAnalytics), args.Error(1)
}

func (m *MockDepartmentService) DepartmentStatistics(ctx context.Context, identity model.Identity) (*service.DepartmentStatisticsResult, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DepartmentStatisticsResult), args.Error(1)
}

func (m *MockDepartmentService) AddGrowthRecord(ctx context.Context, identity model.Identity, growth model.DepartmentGrowth) (*model.DepartmentGrowth, error) {
	args := m.Called(ctx, identity, growth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DepartmentGrowth), args.Error(1)
}

func (m *MockDepartmentService) ListGrowthRecords(ctx context.Context, identity model.Identity, departmentID uint) ([]service.GrowthFigures, error) {
	args := m.Called(ctx, identity, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.GrowthFigures), args.Error(1)
}

func (m *MockDepartmentService) DeleteGrowthRecord(ctx context.Context, identity model.Identity, departmentID uint, year int) error {
	args := m.Called(ctx, identity, departmentID, year)
	return args.Error(0)
}

// MockSalaryHistoryService is a mock implementation of service.ISalaryHistoryService
type MockSalaryHistoryService struct {
	mock.Mock
}

func (m *MockSalaryHistoryService) ChangeSalary(ctx context.Context, identity model.Identity, employeeID uint, newSalary decimal.Decimal) (*model.SalaryHistory, error) {
	args := m.Called(ctx, identity, employeeID, newSalary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalaryHistory), args.Error(1)
}

func (m *MockSalaryHistoryService) ListHistories(ctx context.Context, identity model.Identity, limit, offset int) ([]*model.SalaryHistory, error) {
	args := m.Called(ctx, identity, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SalaryHistory), args.Error(1)
}

func (m *MockSalaryHistoryService) MyHistory(ctx context.Context, identity model.Identity) ([]*model.SalaryHistory, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SalaryHistory), args.Error(1)
}
