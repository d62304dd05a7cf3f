package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talentforge/hcm/api/audit"
	hcm_errors "github.com/talentforge/hcm/api/errors"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
)

type DepartmentDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewDepartmentDAO(db *gorm.DB, auditService audit.Service) *DepartmentDAO {
	return &DepartmentDAO{DB: db, AuditService: auditService}
}

func (dao *DepartmentDAO) CreateDepartment(ctx context.Context, department model.Department, actorEmail string) (*model.Department, error) {
	err := dao.DB.WithContext(ctx).Create(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, hcm_errors.ErrDepartmentConflict
		}
		logger.Error("Failed to create department", zap.Error(err), zap.String("deptName", department.Name))
		return nil, hcm_errors.ErrDatabaseOperation
	}

	logger.Info("Department created successfully",
		zap.Uint("deptID", department.ID),
		zap.String("deptName", department.Name))

	dao.recordAudit(ctx, audit.ActionCreateDepartment, actorEmail, department.ID, nil, &department)
	return &department, nil
}

func (dao *DepartmentDAO) GetDepartment(ctx context.Context, departmentID uint) (*model.Department, error) {
	var department model.Department
	err := dao.DB.WithContext(ctx).First(&department, departmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hcm_errors.ErrDepartmentNotFound
		}
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return &department, nil
}

func (dao *DepartmentDAO) GetDepartmentByName(ctx context.Context, name string) (*model.Department, error) {
	var department model.Department
	err := dao.DB.WithContext(ctx).Where("name = ?", name).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hcm_errors.ErrDepartmentNotFound
		}
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return &department, nil
}

func (dao *DepartmentDAO) ListDepartments(ctx context.Context, limit, offset int) ([]*model.Department, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Department{}).Order("name")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var departments []*model.Department
	if err := query.Find(&departments).Error; err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return departments, nil
}

// UpdateDepartment renames a department. The sentinel department keeps its
// name so the reassignment logic can always find it.
func (dao *DepartmentDAO) UpdateDepartment(ctx context.Context, department model.Department, actorEmail string) (*model.Department, error) {
	previous, err := dao.GetDepartment(ctx, department.ID)
	if err != nil {
		return nil, err
	}
	if previous.IsSentinel() && department.Name != model.SentinelDepartmentName {
		return nil, hcm_errors.ErrSentinelDepartment
	}

	err = dao.DB.WithContext(ctx).Model(&model.Department{}).
		Where("id = ?", department.ID).
		Update("name", department.Name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, hcm_errors.ErrDepartmentConflict
		}
		logger.Error("Failed to update department", zap.Error(err), zap.Uint("deptID", department.ID))
		return nil, hcm_errors.ErrDatabaseOperation
	}

	updated, err := dao.GetDepartment(ctx, department.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Department updated successfully", zap.Uint("deptID", updated.ID))
	dao.recordAudit(ctx, audit.ActionUpdateDepartment, actorEmail, updated.ID, previous, updated)
	return updated, nil
}

// DeleteDepartment removes a department in one transaction: its employees
// move to the sentinel department, its growth records are removed, then the
// department itself. The sentinel department can never be deleted; a missing
// sentinel means bootstrap never ran and the delete is refused.
func (dao *DepartmentDAO) DeleteDepartment(ctx context.Context, departmentID uint, actorEmail string) error {
	var removed model.Department

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, departmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return hcm_errors.ErrDepartmentNotFound
			}
			return hcm_errors.ErrDatabaseOperation
		}
		if removed.IsSentinel() {
			return hcm_errors.ErrSentinelDepartment
		}

		var sentinel model.Department
		if err := tx.Where("name = ?", model.SentinelDepartmentName).First(&sentinel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return hcm_errors.ErrSentinelDepartmentGone
			}
			return hcm_errors.ErrDatabaseOperation
		}

		if err := tx.Model(&model.Employee{}).
			Where("department_id = ?", departmentID).
			Update("department_id", sentinel.ID).Error; err != nil {
			return hcm_errors.ErrDatabaseOperation
		}

		if err := tx.Where("department_id = ?", departmentID).
			Delete(&model.DepartmentGrowth{}).Error; err != nil {
			return hcm_errors.ErrDatabaseOperation
		}

		if err := tx.Delete(&model.Department{}, departmentID).Error; err != nil {
			return hcm_errors.ErrDatabaseOperation
		}
		return nil
	})

	if err != nil {
		logger.Error("Failed to delete department", zap.Error(err), zap.Uint("deptID", departmentID))
		return err
	}

	logger.Info("Department deleted successfully",
		zap.Uint("deptID", departmentID),
		zap.String("deptName", removed.Name))
	dao.recordAudit(ctx, audit.ActionDeleteDepartment, actorEmail, departmentID, &removed, nil)
	return nil
}

// ListEmployeesByDepartment returns the employees of one department,
// optionally excluding admin-flagged records.
func (dao *DepartmentDAO) ListEmployeesByDepartment(ctx context.Context, departmentID uint, excludeAdmins bool) ([]*model.Employee, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Employee{}).
		Where("department_id = ?", departmentID)
	if excludeAdmins {
		query = query.Where("is_admin = ?", false)
	}

	var employees []*model.Employee
	if err := query.Order("id").Find(&employees).Error; err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return employees, nil
}

func (dao *DepartmentDAO) CountDepartments(ctx context.Context) (int64, error) {
	var count int64
	if err := dao.DB.WithContext(ctx).Model(&model.Department{}).Count(&count).Error; err != nil {
		return 0, hcm_errors.ErrDatabaseOperation
	}
	return count, nil
}

func (dao *DepartmentDAO) recordAudit(ctx context.Context, action, actorEmail string, departmentID uint, before, after *model.Department) {
	if dao.AuditService == nil {
		return
	}
	details, err := json.Marshal(map[string]*model.Department{"before": before, "after": after})
	if err != nil {
		details = nil
	}
	entry := audit.Entry{
		Timestamp:     time.Now().UTC(),
		ActorEmail:    actorEmail,
		Action:        action,
		ResourceID:    fmt.Sprintf("department:%d", departmentID),
		ChangeDetails: details,
	}
	if err := dao.AuditService.Record(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry", zap.Error(err), zap.String("action", action))
	}
}
