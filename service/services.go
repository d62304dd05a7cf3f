package service

import (
	"gorm.io/gorm"

	"github.com/talentforge/hcm/api/audit"
	"github.com/talentforge/hcm/api/dao"
	"github.com/talentforge/hcm/api/util"
)

type Services struct {
	Employee      IEmployeeService
	Department    IDepartmentService
	SalaryHistory ISalaryHistoryService

	EmployeeDAO   *dao.EmployeeDAO
	DepartmentDAO *dao.DepartmentDAO
}

func InitializeServices(
	db *gorm.DB,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	employeeDAO := dao.NewEmployeeDAO(db, auditService)
	departmentDAO := dao.NewDepartmentDAO(db, auditService)
	salaryHistoryDAO := dao.NewSalaryHistoryDAO(db, auditService)
	growthDAO := dao.NewDepartmentGrowthDAO(db, auditService)

	numberService := NewEmployeeNumberService(employeeDAO)

	services := &Services{
		Employee:      NewEmployeeService(employeeDAO, departmentDAO, numberService, validationUtil, cacheService, notificationSvc, eventBus),
		Department:    NewDepartmentService(departmentDAO, employeeDAO, growthDAO, validationUtil, cacheService, notificationSvc, eventBus),
		SalaryHistory: NewSalaryHistoryService(salaryHistoryDAO, employeeDAO, cacheService, notificationSvc, eventBus),
		EmployeeDAO:   employeeDAO,
		DepartmentDAO: departmentDAO,
	}

	return services, nil
}
