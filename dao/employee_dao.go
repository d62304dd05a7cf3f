package dao

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talentforge/hcm/api/audit"
	hcm_errors "github.com/talentforge/hcm/api/errors"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/policy"
)

type EmployeeDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewEmployeeDAO(db *gorm.DB, auditService audit.Service) *EmployeeDAO {
	return &EmployeeDAO{DB: db, AuditService: auditService}
}

// CreateEmployee inserts a new employee. The caller must have assigned an
// employee number already; the unique index on the number column rejects
// collisions with ErrEmployeeConflict so the allocator can retry.
func (dao *EmployeeDAO) CreateEmployee(ctx context.Context, employee model.Employee, actorEmail string) (*model.Employee, error) {
	start := time.Now()

	err := dao.DB.WithContext(ctx).Create(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, hcm_errors.ErrEmployeeConflict
		}
		logger.Error("Failed to create employee",
			zap.Error(err),
			zap.String("employeeNumber", employee.EmployeeNumber),
			zap.Duration("duration", time.Since(start)))
		return nil, hcm_errors.ErrDatabaseOperation
	}

	logger.Info("Employee created successfully",
		zap.Uint("employeeID", employee.ID),
		zap.String("employeeNumber", employee.EmployeeNumber),
		zap.Duration("duration", time.Since(start)))

	dao.recordAudit(ctx, audit.ActionCreateEmployee, actorEmail, employee.EmployeeNumber, nil, &employee)
	return &employee, nil
}

// GetEmployee returns one employee with its department preloaded.
func (dao *EmployeeDAO) GetEmployee(ctx context.Context, employeeID uint) (*model.Employee, error) {
	var employee model.Employee
	err := dao.DB.WithContext(ctx).Preload("Department").First(&employee, employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hcm_errors.ErrEmployeeNotFound
		}
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return &employee, nil
}

// GetEmployeeByEmail resolves the employee profile for an identity account.
// A missing profile is a normal state, reported as (nil, nil).
func (dao *EmployeeDAO) GetEmployeeByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var employee model.Employee
	err := dao.DB.WithContext(ctx).Preload("Department").Where("email = ?", email).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return &employee, nil
}

// ListEmployees returns employees visible under the given scope. The scope
// is applied as a query filter so invisible rows never leave the store.
func (dao *EmployeeDAO) ListEmployees(ctx context.Context, scope policy.ListScope, limit, offset int) ([]*model.Employee, error) {
	query := applyEmployeeScope(dao.DB.WithContext(ctx).Model(&model.Employee{}), scope).
		Preload("Department").
		Order("id")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var employees []*model.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return employees, nil
}

func applyEmployeeScope(query *gorm.DB, scope policy.ListScope) *gorm.DB {
	if scope.Unrestricted {
		return query
	}
	if scope.SelfEmail != "" && scope.DepartmentID != 0 {
		if scope.ExcludeAdmins {
			return query.Where("(department_id = ? AND is_admin = ?) OR email = ?",
				scope.DepartmentID, false, scope.SelfEmail)
		}
		return query.Where("department_id = ? OR email = ?", scope.DepartmentID, scope.SelfEmail)
	}
	if scope.SelfEmail != "" {
		return query.Where("email = ?", scope.SelfEmail)
	}
	if scope.DepartmentID != 0 {
		query = query.Where("department_id = ?", scope.DepartmentID)
	}
	if scope.ExcludeAdmins {
		query = query.Where("is_admin = ?", false)
	}
	return query
}

// ListEmployeeNumbers returns every assigned employee number.
func (dao *EmployeeDAO) ListEmployeeNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := dao.DB.WithContext(ctx).Model(&model.Employee{}).Pluck("employee_number", &numbers).Error
	if err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return numbers, nil
}

// UpdateEmployee applies an edit in one transaction. The employee number is
// immutable and taken from the stored row. A salary difference additionally
// appends a salary history row inside the same transaction. The update is
// version-checked; a concurrent writer surfaces as ErrEmployeeModified.
func (dao *EmployeeDAO) UpdateEmployee(ctx context.Context, employee model.Employee, actor model.SalaryActor) (*model.Employee, error) {
	start := time.Now()
	var updated model.Employee
	var previous model.Employee

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&previous, employee.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return hcm_errors.ErrEmployeeNotFound
			}
			return hcm_errors.ErrDatabaseOperation
		}

		result := tx.Model(&model.Employee{}).
			Where("id = ? AND version = ?", employee.ID, employee.Version).
			Updates(map[string]interface{}{
				"first_name":    employee.FirstName,
				"last_name":     employee.LastName,
				"email":         employee.Email,
				"job_title":     employee.JobTitle,
				"salary":        employee.Salary,
				"department_id": employee.DepartmentID,
				"hire_date":     employee.HireDate,
				"is_admin":      employee.IsAdmin,
				"version":       employee.Version + 1,
			})
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return hcm_errors.ErrEmployeeConflict
			}
			return hcm_errors.ErrDatabaseOperation
		}
		if result.RowsAffected == 0 {
			return hcm_errors.ErrEmployeeModified
		}

		if !previous.Salary.Equal(employee.Salary) {
			history := model.SalaryHistory{
				EmployeeID:        employee.ID,
				OldSalary:         previous.Salary,
				NewSalary:         employee.Salary,
				ChangedOn:         time.Now().UTC(),
				ChangedBy:         actor.DisplayName,
				ChangedByNumber:   actor.EmployeeNumber,
				ChangedByFullName: actor.FullName,
				ChangedByEmail:    actor.Email,
			}
			if err := tx.Create(&history).Error; err != nil {
				return hcm_errors.ErrDatabaseOperation
			}
		}

		return tx.Preload("Department").First(&updated, employee.ID).Error
	})

	if err != nil {
		logger.Error("Failed to update employee",
			zap.Error(err),
			zap.Uint("employeeID", employee.ID),
			zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	logger.Info("Employee updated successfully",
		zap.Uint("employeeID", updated.ID),
		zap.Duration("duration", time.Since(start)))

	dao.recordAudit(ctx, audit.ActionUpdateEmployee, actor.Email, updated.EmployeeNumber, &previous, &updated)
	return &updated, nil
}

// DeleteEmployee removes an employee and, in the same transaction, the
// salary history rows that cascade with it.
func (dao *EmployeeDAO) DeleteEmployee(ctx context.Context, employeeID uint, actorEmail string) error {
	var removed model.Employee

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, employeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return hcm_errors.ErrEmployeeNotFound
			}
			return hcm_errors.ErrDatabaseOperation
		}
		if err := tx.Where("employee_id = ?", employeeID).Delete(&model.SalaryHistory{}).Error; err != nil {
			return hcm_errors.ErrDatabaseOperation
		}
		if err := tx.Delete(&model.Employee{}, employeeID).Error; err != nil {
			return hcm_errors.ErrDatabaseOperation
		}
		return nil
	})

	if err != nil {
		logger.Error("Failed to delete employee", zap.Error(err), zap.Uint("employeeID", employeeID))
		return err
	}

	logger.Info("Employee deleted successfully", zap.Uint("employeeID", employeeID))
	dao.recordAudit(ctx, audit.ActionDeleteEmployee, actorEmail, removed.EmployeeNumber, &removed, nil)
	return nil
}

// IntegrityReport summarizes the data-integrity signals the health surface
// exposes.
type IntegrityReport struct {
	EmployeesWithoutDepartment int64 `json:"employees_without_departments"`
	EmployeesWithoutNumber     int64 `json:"employees_without_numbers"`
	DuplicateEmployeeNumbers   int64 `json:"duplicate_employee_numbers"`
}

func (r IntegrityReport) Clean() bool {
	return r.EmployeesWithoutDepartment == 0 &&
		r.EmployeesWithoutNumber == 0 &&
		r.DuplicateEmployeeNumbers == 0
}

func (dao *EmployeeDAO) CheckIntegrity(ctx context.Context) (*IntegrityReport, error) {
	var report IntegrityReport
	db := dao.DB.WithContext(ctx)

	if err := db.Model(&model.Employee{}).Where("department_id IS NULL OR department_id = 0").
		Count(&report.EmployeesWithoutDepartment).Error; err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	if err := db.Model(&model.Employee{}).Where("employee_number IS NULL OR employee_number = ''").
		Count(&report.EmployeesWithoutNumber).Error; err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}

	var duplicates []string
	if err := db.Model(&model.Employee{}).
		Select("employee_number").
		Group("employee_number").
		Having("COUNT(*) > 1").
		Pluck("employee_number", &duplicates).Error; err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	report.DuplicateEmployeeNumbers = int64(len(duplicates))

	return &report, nil
}

func (dao *EmployeeDAO) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	if err := dao.DB.WithContext(ctx).Model(&model.Employee{}).Count(&count).Error; err != nil {
		return 0, hcm_errors.ErrDatabaseOperation
	}
	return count, nil
}

func (dao *EmployeeDAO) recordAudit(ctx context.Context, action, actorEmail, resourceID string, before, after *model.Employee) {
	if dao.AuditService == nil {
		return
	}
	entry := audit.Entry{
		Timestamp:     time.Now().UTC(),
		ActorEmail:    actorEmail,
		Action:        action,
		ResourceID:    resourceID,
		ChangeDetails: employeeChangeDetails(before, after),
	}
	if err := dao.AuditService.Record(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry", zap.Error(err), zap.String("action", action))
	}
}

func employeeChangeDetails(before, after *model.Employee) json.RawMessage {
	details, err := json.Marshal(map[string]*model.Employee{"before": before, "after": after})
	if err != nil {
		return nil
	}
	return details
}
