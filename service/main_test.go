package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	hcm_db "github.com/talentforge/hcm/api/db"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/service"
	"github.com/talentforge/hcm/api/util"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

func newTestServices(t *testing.T) (*service.Services, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hcm.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, hcm_db.Migrate(db))

	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	eventBus.Start(ctx)

	services, err := service.InitializeServices(
		db,
		nil,
		util.NewValidationUtil(),
		util.NewCacheService(),
		util.NewNotificationService(),
		eventBus,
	)
	require.NoError(t, err)
	return services, db
}

func seedDepartment(t *testing.T, db *gorm.DB, name string) *model.Department {
	t.Helper()
	department := &model.Department{Name: name}
	require.NoError(t, db.Create(department).Error)
	return department
}

func seedEmployee(t *testing.T, db *gorm.DB, departmentID uint, number, email string, salary int64) *model.Employee {
	t.Helper()
	employee := &model.Employee{
		EmployeeNumber: number,
		FirstName:      "Test",
		LastName:       "Person",
		Email:          email,
		JobTitle:       "Engineer",
		Salary:         decimal.NewFromInt(salary),
		DepartmentID:   departmentID,
		HireDate:       time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func hrAdmin() model.Identity {
	return model.Identity{Email: "hr@example.com", Username: "HR Admin", Roles: []string{model.RoleHRAdmin}}
}

func managerIdentity(email string) model.Identity {
	return model.Identity{Email: email, Roles: []string{model.RoleManager}}
}

func employeeIdentity(email string) model.Identity {
	return model.Identity{Email: email, Roles: []string{model.RoleEmployee}}
}
