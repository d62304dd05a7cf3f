package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talentforge/hcm/api/audit"
	hcm_errors "github.com/talentforge/hcm/api/errors"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/policy"
)

type SalaryHistoryDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewSalaryHistoryDAO(db *gorm.DB, auditService audit.Service) *SalaryHistoryDAO {
	return &SalaryHistoryDAO{DB: db, AuditService: auditService}
}

// RecordChange applies a salary change atomically: the employee row is
// re-read inside the transaction, the new value is written with a version
// check, and exactly one history row is appended. Both writes commit
// together or not at all. The old salary is always the value the employee
// held immediately before this write, never a client-supplied figure.
func (dao *SalaryHistoryDAO) RecordChange(ctx context.Context, employeeID uint, newSalary decimal.Decimal, actor model.SalaryActor) (*model.SalaryHistory, error) {
	start := time.Now()
	var history model.SalaryHistory

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee model.Employee
		if err := tx.First(&employee, employeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return hcm_errors.ErrEmployeeNotFound
			}
			return hcm_errors.ErrDatabaseOperation
		}

		result := tx.Model(&model.Employee{}).
			Where("id = ? AND version = ?", employee.ID, employee.Version).
			Updates(map[string]interface{}{
				"salary":  newSalary,
				"version": employee.Version + 1,
			})
		if result.Error != nil {
			return hcm_errors.ErrDatabaseOperation
		}
		if result.RowsAffected == 0 {
			return hcm_errors.ErrEmployeeModified
		}

		history = model.SalaryHistory{
			EmployeeID:        employee.ID,
			OldSalary:         employee.Salary,
			NewSalary:         newSalary,
			ChangedOn:         time.Now().UTC(),
			ChangedBy:         actor.DisplayName,
			ChangedByNumber:   actor.EmployeeNumber,
			ChangedByFullName: actor.FullName,
			ChangedByEmail:    actor.Email,
		}
		if err := tx.Create(&history).Error; err != nil {
			return hcm_errors.ErrDatabaseOperation
		}
		return nil
	})

	if err != nil {
		logger.Error("Failed to record salary change",
			zap.Error(err),
			zap.Uint("employeeID", employeeID),
			zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	logger.Info("Salary change recorded",
		zap.Uint("employeeID", employeeID),
		zap.Uint("historyID", history.ID),
		zap.Duration("duration", time.Since(start)))

	dao.recordAudit(ctx, actor.Email, &history)
	return &history, nil
}

// ListHistories returns history rows visible under the given scope, newest
// first. A department scope matches the employee's current department; an
// email scope matches only the caller's own rows.
func (dao *SalaryHistoryDAO) ListHistories(ctx context.Context, scope policy.ListScope, limit, offset int) ([]*model.SalaryHistory, error) {
	query := dao.DB.WithContext(ctx).Model(&model.SalaryHistory{}).
		Joins("JOIN employees ON employees.id = salary_histories.employee_id")

	switch {
	case scope.Unrestricted:
	case scope.SelfEmail != "":
		query = query.Where("employees.email = ?", scope.SelfEmail)
	case scope.DepartmentID != 0:
		query = query.Where("employees.department_id = ?", scope.DepartmentID)
	}

	query = query.Preload("Employee").Order("salary_histories.changed_on DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var histories []*model.SalaryHistory
	if err := query.Find(&histories).Error; err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return histories, nil
}

// ListHistoriesByEmployee returns one employee's history, newest first.
func (dao *SalaryHistoryDAO) ListHistoriesByEmployee(ctx context.Context, employeeID uint) ([]*model.SalaryHistory, error) {
	var histories []*model.SalaryHistory
	err := dao.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("changed_on DESC").
		Find(&histories).Error
	if err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return histories, nil
}

func (dao *SalaryHistoryDAO) recordAudit(ctx context.Context, actorEmail string, history *model.SalaryHistory) {
	if dao.AuditService == nil {
		return
	}
	details, err := json.Marshal(history)
	if err != nil {
		details = nil
	}
	entry := audit.Entry{
		Timestamp:     time.Now().UTC(),
		ActorEmail:    actorEmail,
		Action:        audit.ActionChangeSalary,
		ResourceID:    fmt.Sprintf("employee:%d", history.EmployeeID),
		ChangeDetails: details,
	}
	if err := dao.AuditService.Record(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry", zap.Error(err), zap.String("action", audit.ActionChangeSalary))
	}
}
