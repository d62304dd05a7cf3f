// api/controller/employee_controller.go
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	hcm_errors "github.com/talentforge/hcm/api/errors"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/service"
	"github.com/talentforge/hcm/api/util"
	helper_util "github.com/talentforge/hcm/api/util/helper"
)

type EmployeeController struct {
	employeeService service.IEmployeeService
}

func NewEmployeeController(employeeService service.IEmployeeService) *EmployeeController {
	return &EmployeeController{
		employeeService: employeeService,
	}
}

// RegisterRoutes registers the employee API routes
func (ec *EmployeeController) RegisterRoutes(r *gin.RouterGroup) {
	employees := r.Group("/employees")
	{
		employees.POST("", ec.CreateEmployee)
		employees.GET("", ec.ListEmployees)
		employees.GET("/statistics", ec.EmployeeStatistics)
		employees.GET("/me", ec.GetMyProfile)
		employees.GET("/:id", ec.GetEmployee)
		employees.PUT("/:id", ec.UpdateEmployee)
		employees.DELETE("/:id", ec.DeleteEmployee)
	}
}

// EmployeeRequest is the create/update payload. The employee number is
// optional on create (one is allocated) and ignored on update.
type EmployeeRequest struct {
	EmployeeNumber string          `json:"employee_number"`
	FirstName      string          `json:"first_name" binding:"required"`
	LastName       string          `json:"last_name" binding:"required"`
	Email          string          `json:"email" binding:"required,email"`
	JobTitle       string          `json:"job_title" binding:"required"`
	Salary         decimal.Decimal `json:"salary"`
	DepartmentID   uint            `json:"department_id" binding:"required"`
	HireDate       time.Time       `json:"hire_date"`
	IsAdmin        bool            `json:"is_admin"`
	Version        int             `json:"version"`
}

func (r EmployeeRequest) toModel() model.Employee {
	hireDate := r.HireDate
	if hireDate.IsZero() {
		hireDate = time.Now().UTC()
	}
	return model.Employee{
		EmployeeNumber: r.EmployeeNumber,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		JobTitle:       r.JobTitle,
		Salary:         r.Salary,
		DepartmentID:   r.DepartmentID,
		HireDate:       hireDate,
		IsAdmin:        r.IsAdmin,
		Version:        r.Version,
	}
}

// CreateEmployee endpoint
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid employee data", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	created, err := ec.employeeService.CreateEmployee(c, identity, req.toModel())
	if err != nil {
		switch err {
		case hcm_errors.ErrInvalidEmployeeData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid employee data", err)
		case hcm_errors.ErrForbidden:
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case hcm_errors.ErrDepartmentNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Department not found", err)
		case hcm_errors.ErrEmployeeConflict:
			util.RespondWithError(c, http.StatusConflict, "Employee already exists", err)
		case hcm_errors.ErrEmployeeNumberExhausted:
			util.RespondWithError(c, http.StatusConflict, "Could not allocate an employee number", err)
		case hcm_errors.ErrDatabaseOperation:
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee", hcm_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetEmployee endpoint
func (ec *EmployeeController) GetEmployee(c *gin.Context) {
	employeeID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid employee id", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	employee, err := ec.employeeService.GetEmployee(c, identity, employeeID)
	if err != nil {
		switch err {
		case hcm_errors.ErrEmployeeNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Employee not found", err)
		case hcm_errors.ErrForbidden:
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employee", err)
		}
		return
	}

	c.JSON(http.StatusOK, employee)
}

// ListEmployees endpoint
func (ec *EmployeeController) ListEmployees(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", hcm_errors.ErrInvalidPagination)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	employees, err := ec.employeeService.ListEmployees(c, identity, limit, offset)
	if err != nil {
		if err == hcm_errors.ErrForbidden {
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list employees", err)
		}
		return
	}

	c.JSON(http.StatusOK, employees)
}

// UpdateEmployee endpoint
func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	employeeID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid employee id", err)
		return
	}
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid employee data", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	employee := req.toModel()
	employee.ID = employeeID

	updated, err := ec.employeeService.UpdateEmployee(c, identity, employee)
	if err != nil {
		switch err {
		case hcm_errors.ErrInvalidEmployeeData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid employee data", err)
		case hcm_errors.ErrForbidden:
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case hcm_errors.ErrEmployeeNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Employee not found", err)
		case hcm_errors.ErrDepartmentNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Department not found", err)
		case hcm_errors.ErrEmployeeModified:
			util.RespondWithError(c, http.StatusConflict, "Employee was modified by another request, reload and retry", err)
		case hcm_errors.ErrEmployeeConflict:
			util.RespondWithError(c, http.StatusConflict, "Employee already exists", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteEmployee endpoint
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	employeeID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid employee id", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := ec.employeeService.DeleteEmployee(c, identity, employeeID); err != nil {
		switch err {
		case hcm_errors.ErrForbidden:
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case hcm_errors.ErrEmployeeNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Employee not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMyProfile endpoint
func (ec *EmployeeController) GetMyProfile(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	profile, err := ec.employeeService.GetMyProfile(c, identity)
	if err != nil {
		switch err {
		case hcm_errors.ErrUnauthorized:
			util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		case hcm_errors.ErrSentinelDepartmentGone:
			util.RespondWithError(c, http.StatusInternalServerError, "Profile provisioning unavailable", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve profile", err)
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// EmployeeStatistics endpoint
func (ec *EmployeeController) EmployeeStatistics(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	stats, err := ec.employeeService.EmployeeStatistics(c, identity)
	if err != nil {
		if err == hcm_errors.ErrForbidden {
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute statistics", err)
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
