// api/db/bootstrap.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
)

var defaultDepartments = []string{
	"Human Resources",
	"Finance",
	"Engineering",
	"Marketing",
	"IT Support",
}

// Bootstrap runs migrations and guarantees the sentinel department and the
// default departments exist before the server accepts traffic. Reassignment
// logic downstream assumes the sentinel is present and never creates it on
// the fly.
func Bootstrap(ctx context.Context, db *gorm.DB, seedDemoData bool) error {
	if err := Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err := ensureDepartment(ctx, db, model.SentinelDepartmentName); err != nil {
		return err
	}
	for _, name := range defaultDepartments {
		if err := ensureDepartment(ctx, db, name); err != nil {
			return err
		}
	}

	if seedDemoData {
		if err := seedDemoEmployees(ctx, db); err != nil {
			return err
		}
	}

	logger.Info("Database bootstrap complete")
	return nil
}

func ensureDepartment(ctx context.Context, db *gorm.DB, name string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Department{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check department %q: %w", name, err)
	}
	if count > 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(&model.Department{Name: name}).Error; err != nil {
		return fmt.Errorf("failed to create department %q: %w", name, err)
	}
	logger.Info("Seeded department", zap.String("name", name))
	return nil
}

func seedDemoEmployees(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var hr, it model.Department
	if err := db.WithContext(ctx).Where("name = ?", "Human Resources").First(&hr).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("name = ?", "IT Support").First(&it).Error; err != nil {
		return err
	}

	demo := []model.Employee{
		{
			EmployeeNumber: "EMP-1001",
			FirstName:      "Alice",
			LastName:       "Johnson",
			Email:          "alice.johnson@company.com",
			JobTitle:       "HR Specialist",
			Salary:         decimal.NewFromInt(60000),
			DepartmentID:   hr.ID,
			HireDate:       time.Now().UTC().AddDate(-2, 0, 0),
		},
		{
			EmployeeNumber: "EMP-1002",
			FirstName:      "Bob",
			LastName:       "Smith",
			Email:          "bob.smith@company.com",
			JobTitle:       "Support Engineer",
			Salary:         decimal.NewFromInt(55000),
			DepartmentID:   it.ID,
			HireDate:       time.Now().UTC().AddDate(-1, 0, 0),
		},
	}
	if err := db.WithContext(ctx).Create(&demo).Error; err != nil {
		return fmt.Errorf("failed to seed demo employees: %w", err)
	}
	logger.Info("Seeded demo employees", zap.Int("count", len(demo)))
	return nil
}
