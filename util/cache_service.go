// api/util/cache_service.go

package util

import (
	"context"

	"github.com/talentforge/hcm/api/db"
	"github.com/talentforge/hcm/api/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetEmployee(ctx context.Context, employeeID uint) (*model.Employee, error) {
	return db.GetCachedEmployee(ctx, employeeID)
}

func (c *CacheService) SetEmployee(ctx context.Context, employee model.Employee) error {
	return db.CacheEmployee(ctx, &employee)
}

func (c *CacheService) DeleteEmployee(ctx context.Context, employeeID uint) error {
	return db.DeleteCachedEmployee(ctx, employeeID)
}

func (c *CacheService) GetDepartment(ctx context.Context, departmentID uint) (*model.Department, error) {
	return db.GetCachedDepartment(ctx, departmentID)
}

func (c *CacheService) SetDepartment(ctx context.Context, department model.Department) error {
	return db.CacheDepartment(ctx, &department)
}

func (c *CacheService) DeleteDepartment(ctx context.Context, departmentID uint) error {
	return db.DeleteCachedDepartment(ctx, departmentID)
}
