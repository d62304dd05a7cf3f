// api/util/validation_util.go

package util

import (
	"fmt"
	"strings"

	"github.com/talentforge/hcm/api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateEmployee(employee model.Employee) error {
	if employee.FirstName == "" {
		return fmt.Errorf("employee first name cannot be empty")
	}
	if employee.LastName == "" {
		return fmt.Errorf("employee last name cannot be empty")
	}
	if employee.Email == "" {
		return fmt.Errorf("employee email cannot be empty")
	}
	if !strings.Contains(employee.Email, "@") {
		return fmt.Errorf("employee email is not a valid address")
	}
	if employee.JobTitle == "" {
		return fmt.Errorf("employee job title cannot be empty")
	}
	if employee.Salary.Sign() < 0 {
		return fmt.Errorf("employee salary cannot be negative")
	}
	if employee.DepartmentID == 0 {
		return fmt.Errorf("employee must be assigned to a department")
	}
	return nil
}

func (v *ValidationUtil) ValidateDepartment(department model.Department) error {
	if department.Name == "" {
		return fmt.Errorf("department name cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateGrowthRecord(growth model.DepartmentGrowth) error {
	if growth.DepartmentID == 0 {
		return fmt.Errorf("growth record must reference a department")
	}
	if growth.Year < 2020 || growth.Year > 2030 {
		return fmt.Errorf("growth record year must be between 2020 and 2030")
	}
	if growth.Revenue.Sign() < 0 {
		return fmt.Errorf("growth record revenue cannot be negative")
	}
	if growth.Expenses.Sign() < 0 {
		return fmt.Errorf("growth record expenses cannot be negative")
	}
	return nil
}
