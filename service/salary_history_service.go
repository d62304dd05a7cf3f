package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/talentforge/hcm/api/dao"
	hcm_errors "github.com/talentforge/hcm/api/errors"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/policy"
	"github.com/talentforge/hcm/api/util"
)

// ISalaryHistoryService defines the interface for salary change operations
type ISalaryHistoryService interface {
	ChangeSalary(ctx context.Context, identity model.Identity, employeeID uint, newSalary decimal.Decimal) (*model.SalaryHistory, error)
	ListHistories(ctx context.Context, identity model.Identity, limit, offset int) ([]*model.SalaryHistory, error)
	MyHistory(ctx context.Context, identity model.Identity) ([]*model.SalaryHistory, error)
}

// SalaryHistoryService handles business logic for salary changes
type SalaryHistoryService struct {
	salaryHistoryDAO *dao.SalaryHistoryDAO
	employeeDAO      *dao.EmployeeDAO
	cacheService     *util.CacheService
	notificationSvc  *util.NotificationService
	eventBus         *util.EventBus
}

var _ ISalaryHistoryService = &SalaryHistoryService{}

func NewSalaryHistoryService(
	salaryHistoryDAO *dao.SalaryHistoryDAO,
	employeeDAO *dao.EmployeeDAO,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *SalaryHistoryService {
	service := &SalaryHistoryService{
		salaryHistoryDAO: salaryHistoryDAO,
		employeeDAO:      employeeDAO,
		cacheService:     cacheService,
		notificationSvc:  notificationSvc,
		eventBus:         eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("salary.changed", service.handleSalaryChanged)

	return service
}

func (s *SalaryHistoryService) handleSalaryChanged(ctx context.Context, event util.Event) error {
	history := event.Payload.(model.SalaryHistory)
	logger.Info("Salary changed event received",
		zap.Uint("employeeID", history.EmployeeID),
		zap.Uint("historyID", history.ID))

	// The employee row changed underneath the cache; drop it.
	if err := s.cacheService.DeleteEmployee(ctx, history.EmployeeID); err != nil {
		logger.Warn("Failed to evict employee cache", zap.Error(err), zap.Uint("employeeID", history.EmployeeID))
	}
	if err := s.notificationSvc.NotifySalaryChange(ctx, history); err != nil {
		logger.Warn("Failed to send salary change notification", zap.Error(err))
	}
	return nil
}

func (s *SalaryHistoryService) resolveCaller(ctx context.Context, identity model.Identity) (*model.Employee, error) {
	if identity.Email == "" {
		return nil, nil
	}
	return s.employeeDAO.GetEmployeeByEmail(ctx, identity.Email)
}

func (s *SalaryHistoryService) resolveActor(identity model.Identity, caller *model.Employee) model.SalaryActor {
	actor := model.SalaryActor{
		DisplayName:    identity.DisplayName(),
		EmployeeNumber: "N/A",
		FullName:       identity.DisplayName(),
		Email:          identity.Email,
	}
	if caller != nil {
		actor.EmployeeNumber = caller.EmployeeNumber
		actor.FullName = caller.FullName()
	}
	return actor
}

// ChangeSalary applies a salary change to one employee. The old salary and
// the actor snapshot are resolved server-side; the client only names the
// employee and the new value.
func (s *SalaryHistoryService) ChangeSalary(ctx context.Context, identity model.Identity, employeeID uint, newSalary decimal.Decimal) (*model.SalaryHistory, error) {
	if newSalary.Sign() <= 0 {
		return nil, hcm_errors.ErrInvalidSalary
	}

	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	target, err := s.employeeDAO.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if decision := policy.CanChangeSalary(identity, caller, target); !decision.Allowed {
		logger.Warn("Salary change denied",
			zap.String("reason", decision.Reason),
			zap.String("actor", identity.Email),
			zap.Uint("employeeID", employeeID))
		return nil, hcm_errors.ErrForbidden
	}

	history, err := s.salaryHistoryDAO.RecordChange(ctx, employeeID, newSalary, s.resolveActor(identity, caller))
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "salary.changed", *history)
	return history, nil
}

// ListHistories returns salary history rows under the caller's scope,
// newest first.
func (s *SalaryHistoryService) ListHistories(ctx context.Context, identity model.Identity, limit, offset int) ([]*model.SalaryHistory, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}

	scope := policy.SalaryHistoryScope(identity, caller)
	if !scope.Allowed {
		logger.Warn("Salary history listing denied", zap.String("reason", scope.Reason), zap.String("actor", identity.Email))
		return nil, hcm_errors.ErrForbidden
	}
	return s.salaryHistoryDAO.ListHistories(ctx, scope, limit, offset)
}

// MyHistory returns the caller's own salary history; an identity without a
// profile simply has none yet.
func (s *SalaryHistoryService) MyHistory(ctx context.Context, identity model.Identity) ([]*model.SalaryHistory, error) {
	if identity.Email == "" {
		return nil, hcm_errors.ErrUnauthorized
	}
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return []*model.SalaryHistory{}, nil
	}
	return s.salaryHistoryDAO.ListHistoriesByEmployee(ctx, caller.ID)
}
