// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentforge/hcm/api/controller"
	"github.com/talentforge/hcm/api/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	// Health stays outside the authenticated group so probes need no token.
	controllers.Health.RegisterRoutes(router)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth())

	controllers.Employee.RegisterRoutes(api)
	controllers.Department.RegisterRoutes(api)
	controllers.SalaryHistory.RegisterRoutes(api)

	return router
}
