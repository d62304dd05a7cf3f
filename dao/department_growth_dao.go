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

type DepartmentGrowthDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewDepartmentGrowthDAO(db *gorm.DB, auditService audit.Service) *DepartmentGrowthDAO {
	return &DepartmentGrowthDAO{DB: db, AuditService: auditService}
}

// CreateGrowthRecord inserts one (department, year) record. The composite
// unique index rejects a second record for the same pair.
func (dao *DepartmentGrowthDAO) CreateGrowthRecord(ctx context.Context, growth model.DepartmentGrowth, actorEmail string) (*model.DepartmentGrowth, error) {
	err := dao.DB.WithContext(ctx).Create(&growth).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, hcm_errors.ErrGrowthRecordConflict
		}
		logger.Error("Failed to create growth record",
			zap.Error(err),
			zap.Uint("deptID", growth.DepartmentID),
			zap.Int("year", growth.Year))
		return nil, hcm_errors.ErrDatabaseOperation
	}

	logger.Info("Growth record created",
		zap.Uint("deptID", growth.DepartmentID),
		zap.Int("year", growth.Year))

	dao.recordAudit(ctx, audit.ActionCreateGrowth, actorEmail, &growth)
	return &growth, nil
}

func (dao *DepartmentGrowthDAO) ListGrowthRecords(ctx context.Context, departmentID uint) ([]*model.DepartmentGrowth, error) {
	var records []*model.DepartmentGrowth
	err := dao.DB.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("year").
		Find(&records).Error
	if err != nil {
		return nil, hcm_errors.ErrDatabaseOperation
	}
	return records, nil
}

func (dao *DepartmentGrowthDAO) DeleteGrowthRecord(ctx context.Context, departmentID uint, year int, actorEmail string) error {
	var removed model.DepartmentGrowth
	err := dao.DB.WithContext(ctx).
		Where("department_id = ? AND year = ?", departmentID, year).
		First(&removed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hcm_errors.ErrGrowthRecordNotFound
		}
		return hcm_errors.ErrDatabaseOperation
	}

	if err := dao.DB.WithContext(ctx).Delete(&model.DepartmentGrowth{}, removed.ID).Error; err != nil {
		return hcm_errors.ErrDatabaseOperation
	}

	logger.Info("Growth record deleted", zap.Uint("deptID", departmentID), zap.Int("year", year))
	dao.recordAudit(ctx, audit.ActionDeleteGrowth, actorEmail, &removed)
	return nil
}

func (dao *DepartmentGrowthDAO) recordAudit(ctx context.Context, action, actorEmail string, growth *model.DepartmentGrowth) {
	if dao.AuditService == nil {
		return
	}
	details, err := json.Marshal(growth)
	if err != nil {
		details = nil
	}
	entry := audit.Entry{
		Timestamp:     time.Now().UTC(),
		ActorEmail:    actorEmail,
		Action:        action,
		ResourceID:    fmt.Sprintf("department:%d:growth:%d", growth.DepartmentID, growth.Year),
		ChangeDetails: details,
	}
	if err := dao.AuditService.Record(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry", zap.Error(err), zap.String("action", action))
	}
}
