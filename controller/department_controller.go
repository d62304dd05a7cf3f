// api/controller/department_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	hcm_errors "github.com/talentforge/hcm/api/errors"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/service"
	"github.com/talentforge/hcm/api/util"
	helper_util "github.com/talentforge/hcm/api/util/helper"
)

type DepartmentController struct {
	departmentService service.IDepartmentService
}

func NewDepartmentController(departmentService service.IDepartmentService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
	}
}

// RegisterRoutes registers the department API routes
func (dc *DepartmentController) RegisterRoutes(r *gin.RouterGroup) {
	departments := r.Group("/departments")
	{
		departments.POST("", dc.CreateDepartment)
		departments.GET("", dc.ListDepartments)
		departments.GET("/statistics", dc.DepartmentStatistics)
		departments.GET("/:id", dc.GetDepartment)
		departments.PUT("/:id", dc.UpdateDepartment)
		departments.DELETE("/:id", dc.DeleteDepartment)
		departments.GET("/:id/analytics", dc.DepartmentAnalytics)
		departments.GET("/:id/growth", dc.ListGrowthRecords)
		departments.POST("/:id/growth", dc.AddGrowthRecord)
		departments.DELETE("/:id/growth/:year", dc.DeleteGrowthRecord)
	}
}

type DepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type GrowthRecordRequest struct {
	Year     int              `json:"year" binding:"required"`
	Revenue  decimal.Decimal  `json:"revenue"`
	Expenses decimal.Decimal  `json:"expenses"`
	Goal     *decimal.Decimal `json:"goal,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

// CreateDepartment endpoint
func (dc *DepartmentController) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department data", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	created, err := dc.departmentService.CreateDepartment(c, identity, model.Department{Name: req.Name})
	if err != nil {
		switch err {
		case hcm_errors.ErrInvalidDepartmentData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid department data", err)
		case hcm_errors.ErrForbidden:
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case hcm_errors.ErrDepartmentConflict:
			util.RespondWithError(c, http.StatusConflict, "Department already exists", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create department", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetDepartment endpoint
func (dc *DepartmentController) GetDepartment(c *gin.Context) {
	departmentID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department id", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	department, err := dc.departmentService.GetDepartment(c, identity, departmentID)
	if err != nil {
		dc.respondDepartmentError(c, err, "Failed to retrieve department")
		return
	}

	c.JSON(http.StatusOK, department)
}

// ListDepartments endpoint
func (dc *DepartmentController) ListDepartments(c *gin.Context) {
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

	departments, err := dc.departmentService.ListDepartments(c, identity, limit, offset)
	if err != nil {
		dc.respondDepartmentError(c, err, "Failed to list departments")
		return
	}

	c.JSON(http.StatusOK, departments)
}

// UpdateDepartment endpoint
func (dc *DepartmentController) UpdateDepartment(c *gin.Context) {
	departmentID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department id", err)
		return
	}
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department data", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := dc.departmentService.UpdateDepartment(c, identity, model.Department{ID: departmentID, Name: req.Name})
	if err != nil {
		switch err {
		case hcm_errors.ErrInvalidDepartmentData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid department data", err)
		case hcm_errors.ErrSentinelDepartment:
			util.RespondWithError(c, http.StatusConflict, "The Unassigned department cannot be renamed", err)
		case hcm_errors.ErrDepartmentConflict:
			util.RespondWithError(c, http.StatusConflict, "Department already exists", err)
		default:
			dc.respondDepartmentError(c, err, "Failed to update department")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteDepartment endpoint
func (dc *DepartmentController) DeleteDepartment(c *gin.Context) {
	departmentID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department id", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := dc.departmentService.DeleteDepartment(c, identity, departmentID); err != nil {
		switch err {
		case hcm_errors.ErrSentinelDepartment:
			util.RespondWithError(c, http.StatusConflict, "The Unassigned department cannot be deleted", err)
		case hcm_errors.ErrSentinelDepartmentGone:
			util.RespondWithError(c, http.StatusInternalServerError, "The Unassigned department is missing", err)
		default:
			dc.respondDepartmentError(c, err, "Failed to delete department")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DepartmentAnalytics endpoint
func (dc *DepartmentController) DepartmentAnalytics(c *gin.Context) {
	departmentID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department id", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	analytics, err := dc.departmentService.DepartmentAnalytics(c, identity, departmentID)
	if err != nil {
		dc.respondDepartmentError(c, err, "Failed to compute department analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// DepartmentStatistics endpoint
func (dc *DepartmentController) DepartmentStatistics(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	stats, err := dc.departmentService.DepartmentStatistics(c, identity)
	if err != nil {
		dc.respondDepartmentError(c, err, "Failed to compute department statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// AddGrowthRecord endpoint
func (dc *DepartmentController) AddGrowthRecord(c *gin.Context) {
	departmentID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department id", err)
		return
	}
	var req GrowthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid growth record data", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	growth := model.DepartmentGrowth{
		DepartmentID: departmentID,
		Year:         req.Year,
		Revenue:      req.Revenue,
		Expenses:     req.Expenses,
		Goal:         req.Goal,
		Notes:        req.Notes,
	}

	created, err := dc.departmentService.AddGrowthRecord(c, identity, growth)
	if err != nil {
		switch err {
		case hcm_errors.ErrInvalidGrowthRecordData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid growth record data", err)
		case hcm_errors.ErrGrowthRecordConflict:
			util.RespondWithError(c, http.StatusConflict, "Growth record already exists for that year", err)
		default:
			dc.respondDepartmentError(c, err, "Failed to create growth record")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListGrowthRecords endpoint
func (dc *DepartmentController) ListGrowthRecords(c *gin.Context) {
	departmentID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department id", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	records, err := dc.departmentService.ListGrowthRecords(c, identity, departmentID)
	if err != nil {
		dc.respondDepartmentError(c, err, "Failed to list growth records")
		return
	}

	c.JSON(http.StatusOK, records)
}

// DeleteGrowthRecord endpoint
func (dc *DepartmentController) DeleteGrowthRecord(c *gin.Context) {
	departmentID, err := parseIDParam(c, "id")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department id", err)
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid year", err)
		return
	}
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := dc.departmentService.DeleteGrowthRecord(c, identity, departmentID, year); err != nil {
		if err == hcm_errors.ErrGrowthRecordNotFound {
			util.RespondWithError(c, http.StatusNotFound, "Growth record not found", err)
		} else {
			dc.respondDepartmentError(c, err, "Failed to delete growth record")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (dc *DepartmentController) respondDepartmentError(c *gin.Context, err error, fallback string) {
	switch err {
	case hcm_errors.ErrForbidden:
		util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
	case hcm_errors.ErrDepartmentNotFound:
		util.RespondWithError(c, http.StatusNotFound, "Department not found", err)
	case hcm_errors.ErrDatabaseOperation:
		util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
