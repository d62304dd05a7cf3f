// api/controller/health_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talentforge/hcm/api/dao"
	logger "github.com/talentforge/hcm/api/logging"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

type HealthController struct {
	db            *gorm.DB
	employeeDAO   *dao.EmployeeDAO
	departmentDAO *dao.DepartmentDAO
}

func NewHealthController(db *gorm.DB, employeeDAO *dao.EmployeeDAO, departmentDAO *dao.DepartmentDAO) *HealthController {
	return &HealthController{
		db:            db,
		employeeDAO:   employeeDAO,
		departmentDAO: departmentDAO,
	}
}

// RegisterRoutes registers the health endpoint on the engine itself; it sits
// outside the authenticated API group.
func (hc *HealthController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", hc.Healthz)
}

// Healthz reports overall service health. An unreachable database is
// unhealthy (503); a reachable one with integrity findings is degraded but
// still serving (200).
func (hc *HealthController) Healthz(c *gin.Context) {
	start := time.Now()

	sqlDB, err := hc.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c)
	}
	if err != nil {
		logger.Error("Health check failed, database unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    StatusUnhealthy,
			"database":  gin.H{"connected": false},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	employees, err := hc.employeeDAO.CountEmployees(c)
	if err != nil {
		hc.respondDegraded(c, "employee count unavailable")
		return
	}
	departments, err := hc.departmentDAO.CountDepartments(c)
	if err != nil {
		hc.respondDegraded(c, "department count unavailable")
		return
	}
	integrity, err := hc.employeeDAO.CheckIntegrity(c)
	if err != nil {
		hc.respondDegraded(c, "integrity check unavailable")
		return
	}

	status := StatusHealthy
	if !integrity.Clean() {
		status = StatusDegraded
		logger.Warn("Health check found integrity issues",
			zap.Int64("withoutDepartment", integrity.EmployeesWithoutDepartment),
			zap.Int64("withoutNumber", integrity.EmployeesWithoutNumber),
			zap.Int64("duplicateNumbers", integrity.DuplicateEmployeeNumbers))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"database": gin.H{
			"connected":   true,
			"employees":   employees,
			"departments": departments,
		},
		"integrity": integrity,
		"duration":  time.Since(start).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (hc *HealthController) respondDegraded(c *gin.Context, reason string) {
	c.JSON(http.StatusOK, gin.H{
		"status":    StatusDegraded,
		"reason":    reason,
		"database":  gin.H{"connected": true},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
