// api/controller/salary_history_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	hcm_errors "github.com/talentforge/hcm/api/errors"
	"github.com/talentforge/hcm/api/service"
	"github.com/talentforge/hcm/api/util"
	helper_util "github.com/talentforge/hcm/api/util/helper"
)

type SalaryHistoryController struct {
	salaryHistoryService service.ISalaryHistoryService
}

func NewSalaryHistoryController(salaryHistoryService service.ISalaryHistoryService) *SalaryHistoryController {
	return &SalaryHistoryController{
		salaryHistoryService: salaryHistoryService,
	}
}

// RegisterRoutes registers the salary history API routes
func (sc *SalaryHistoryController) RegisterRoutes(r *gin.RouterGroup) {
	histories := r.Group("/salary-histories")
	{
		histories.POST("", sc.ChangeSalary)
		histories.GET("", sc.ListHistories)
		histories.GET("/my", sc.MyHistory)
	}
}

// SalaryChangeRequest names the employee and the new value; the old salary
// and the actor snapshot are computed server-side.
type SalaryChangeRequest struct {
	EmployeeID uint            `json:"employee_id" binding:"required"`
	NewSalary  decimal.Decimal `json:"new_salary"`
}

// ChangeSalary endpoint
func (sc *SalaryHistoryController) ChangeSalary(c *gin.Context) {
	var req SalaryChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid salary change data", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	history, err := sc.salaryHistoryService.ChangeSalary(c, identity, req.EmployeeID, req.NewSalary)
	if err != nil {
		switch err {
		case hcm_errors.ErrInvalidSalary:
			util.RespondWithError(c, http.StatusBadRequest, "Salary must be greater than zero", err)
		case hcm_errors.ErrForbidden:
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case hcm_errors.ErrEmployeeNotFound:
			util.RespondWithError(c, http.StatusNotFound, "Employee not found", err)
		case hcm_errors.ErrEmployeeModified:
			util.RespondWithError(c, http.StatusConflict, "Employee was modified by another request, reload and retry", err)
		case hcm_errors.ErrDatabaseOperation:
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to change salary", err)
		}
		return
	}

	c.JSON(http.StatusCreated, history)
}

// ListHistories endpoint
func (sc *SalaryHistoryController) ListHistories(c *gin.Context) {
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

	histories, err := sc.salaryHistoryService.ListHistories(c, identity, limit, offset)
	if err != nil {
		if err == hcm_errors.ErrForbidden {
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list salary histories", err)
		}
		return
	}

	c.JSON(http.StatusOK, histories)
}

// MyHistory endpoint
func (sc *SalaryHistoryController) MyHistory(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	histories, err := sc.salaryHistoryService.MyHistory(c, identity)
	if err != nil {
		if err == hcm_errors.ErrUnauthorized {
			util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list salary history", err)
		}
		return
	}

	c.JSON(http.StatusOK, histories)
}
