// api/controller/controllers.go
package controller

import "github.com/talentforge/hcm/api/service"

type Controllers struct {
	Employee      *EmployeeController
	Department    *DepartmentController
	SalaryHistory *SalaryHistoryController
	Health        *HealthController
}

func InitializeControllers(services *service.Services, health *HealthController) *Controllers {
	return &Controllers{
		Employee:      NewEmployeeController(services.Employee),
		Department:    NewDepartmentController(services.Department),
		SalaryHistory: NewSalaryHistoryController(services.SalaryHistory),
		Health:        health,
	}
}
