package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shopspring/decimal"

	"github.com/talentforge/hcm/api/dao"
	hcm_errors "github.com/talentforge/hcm/api/errors"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/policy"
	"github.com/talentforge/hcm/api/util"
)

// allocation attempts before giving up on a unique employee number
const maxNumberAllocationAttempts = 3

// EmployeeStatisticsResult is the payload of the employee statistics
// endpoint, computed over the rows the caller may see.
type EmployeeStatisticsResult struct {
	SalarySummary
	JobTitles   []JobTitleStats   `json:"job_titles"`
	Departments []DepartmentStats `json:"departments"`
}

// IEmployeeService defines the interface for employee operations
type IEmployeeService interface {
	CreateEmployee(ctx context.Context, identity model.Identity, employee model.Employee) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, identity model.Identity, employee model.Employee) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, identity model.Identity, employeeID uint) error
	GetEmployee(ctx context.Context, identity model.Identity, employeeID uint) (*model.Employee, error)
	ListEmployees(ctx context.Context, identity model.Identity, limit, offset int) ([]*model.Employee, error)
	GetMyProfile(ctx context.Context, identity model.Identity) (*model.Employee, error)
	EmployeeStatistics(ctx context.Context, identity model.Identity) (*EmployeeStatisticsResult, error)
}

// EmployeeService handles business logic for employee operations
type EmployeeService struct {
	employeeDAO     *dao.EmployeeDAO
	departmentDAO   *dao.DepartmentDAO
	numberService   *EmployeeNumberService
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IEmployeeService = &EmployeeService{}

func NewEmployeeService(
	employeeDAO *dao.EmployeeDAO,
	departmentDAO *dao.DepartmentDAO,
	numberService *EmployeeNumberService,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *EmployeeService {
	service := &EmployeeService{
		employeeDAO:     employeeDAO,
		departmentDAO:   departmentDAO,
		numberService:   numberService,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("employee.created", service.handleEmployeeCreated)
	eventBus.Subscribe("employee.updated", service.handleEmployeeUpdated)
	eventBus.Subscribe("employee.deleted", service.handleEmployeeDeleted)

	return service
}

func (s *EmployeeService) handleEmployeeCreated(ctx context.Context, event util.Event) error {
	employee := event.Payload.(model.Employee)
	logger.Info("Employee created event received",
		zap.Uint("employeeID", employee.ID),
		zap.String("employeeNumber", employee.EmployeeNumber))

	if err := s.cacheService.SetEmployee(ctx, employee); err != nil {
		logger.Warn("Failed to cache employee", zap.Error(err), zap.Uint("employeeID", employee.ID))
	}
	if err := s.notificationSvc.NotifyEmployeeChange(ctx, "created", employee); err != nil {
		logger.Warn("Failed to send employee creation notification", zap.Error(err))
	}
	return nil
}

func (s *EmployeeService) handleEmployeeUpdated(ctx context.Context, event util.Event) error {
	payload := event.Payload.(map[string]model.Employee)
	newEmployee := payload["new"]

	logger.Info("Employee updated event received", zap.Uint("employeeID", newEmployee.ID))

	if err := s.cacheService.SetEmployee(ctx, newEmployee); err != nil {
		logger.Warn("Failed to refresh employee cache", zap.Error(err), zap.Uint("employeeID", newEmployee.ID))
	}
	if err := s.notificationSvc.NotifyEmployeeChange(ctx, "updated", newEmployee); err != nil {
		logger.Warn("Failed to send employee update notification", zap.Error(err))
	}
	return nil
}

func (s *EmployeeService) handleEmployeeDeleted(ctx context.Context, event util.Event) error {
	employee := event.Payload.(model.Employee)
	logger.Info("Employee deleted event received", zap.Uint("employeeID", employee.ID))

	if err := s.cacheService.DeleteEmployee(ctx, employee.ID); err != nil {
		logger.Warn("Failed to evict employee cache", zap.Error(err), zap.Uint("employeeID", employee.ID))
	}
	if err := s.notificationSvc.NotifyEmployeeChange(ctx, "deleted", employee); err != nil {
		logger.Warn("Failed to send employee deletion notification", zap.Error(err))
	}
	return nil
}

// resolveCaller looks up the caller's own employee profile by the identity's
// email. A missing profile is (nil, nil); policy decides what that means.
func (s *EmployeeService) resolveCaller(ctx context.Context, identity model.Identity) (*model.Employee, error) {
	if identity.Email == "" {
		return nil, nil
	}
	return s.employeeDAO.GetEmployeeByEmail(ctx, identity.Email)
}

// resolveActor builds the actor snapshot stored on salary history rows. The
// profile's number and full name are preferred; an identity without a
// profile still leaves a traceable record via its email.
func (s *EmployeeService) resolveActor(identity model.Identity, caller *model.Employee) model.SalaryActor {
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

// CreateEmployee creates a new employee record. When no employee number is
// supplied one is allocated; an allocation race loses to the unique index
// and is retried with fresh data, bounded by maxNumberAllocationAttempts.
func (s *EmployeeService) CreateEmployee(ctx context.Context, identity model.Identity, employee model.Employee) (*model.Employee, error) {
	start := time.Now()

	if err := s.validationUtil.ValidateEmployee(employee); err != nil {
		return nil, hcm_errors.ErrInvalidEmployeeData
	}

	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if decision := policy.CanCreateEmployee(identity); !decision.Allowed {
		logger.Warn("Employee creation denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
		return nil, hcm_errors.ErrForbidden
	}
	// Managers may only place new employees in their own department.
	if !identity.IsHRAdmin() {
		if decision := policy.CanEditEmployee(identity, caller, &employee); !decision.Allowed {
			logger.Warn("Employee creation denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
			return nil, hcm_errors.ErrForbidden
		}
	}

	if _, err := s.departmentDAO.GetDepartment(ctx, employee.DepartmentID); err != nil {
		return nil, err
	}

	// A duplicate email would also trip the unique indexes; reject it up
	// front so a create conflict below can only mean a number collision.
	existing, err := s.employeeDAO.GetEmployeeByEmail(ctx, employee.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, hcm_errors.ErrEmployeeConflict
	}

	created, err := s.createWithAllocation(ctx, employee, identity.Email)
	if err != nil {
		return nil, err
	}

	logger.Info("Employee created",
		zap.Uint("employeeID", created.ID),
		zap.String("employeeNumber", created.EmployeeNumber),
		zap.Duration("duration", time.Since(start)))

	s.eventBus.Publish(ctx, "employee.created", *created)
	return created, nil
}

func (s *EmployeeService) createWithAllocation(ctx context.Context, employee model.Employee, actorEmail string) (*model.Employee, error) {
	allocated := employee.EmployeeNumber == ""

	for attempt := 1; attempt <= maxNumberAllocationAttempts; attempt++ {
		if allocated {
			number, err := s.numberService.Generate(ctx)
			if err != nil {
				return nil, err
			}
			employee.EmployeeNumber = number
		}

		created, err := s.employeeDAO.CreateEmployee(ctx, employee, actorEmail)
		if err == nil {
			return created, nil
		}
		if err != hcm_errors.ErrEmployeeConflict || !allocated {
			return nil, err
		}

		logger.Warn("Employee number collision, re-allocating",
			zap.String("employeeNumber", employee.EmployeeNumber),
			zap.Int("attempt", attempt))
	}
	return nil, hcm_errors.ErrEmployeeNumberExhausted
}

func (s *EmployeeService) GetEmployee(ctx context.Context, identity model.Identity, employeeID uint) (*model.Employee, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}

	employee, cacheErr := s.cacheService.GetEmployee(ctx, employeeID)
	if cacheErr != nil || employee == nil {
		employee, err = s.employeeDAO.GetEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}
	}

	if decision := policy.CanViewEmployee(identity, caller, employee); !decision.Allowed {
		logger.Warn("Employee view denied",
			zap.String("reason", decision.Reason),
			zap.String("actor", identity.Email),
			zap.Uint("employeeID", employeeID))
		return nil, hcm_errors.ErrForbidden
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, identity model.Identity, limit, offset int) ([]*model.Employee, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}

	scope := policy.EmployeeListScope(identity, caller)
	if !scope.Allowed {
		logger.Warn("Employee listing denied", zap.String("reason", scope.Reason), zap.String("actor", identity.Email))
		return nil, hcm_errors.ErrForbidden
	}
	return s.employeeDAO.ListEmployees(ctx, scope, limit, offset)
}

// UpdateEmployee applies an edit. The employee number is immutable; a salary
// difference is recorded to history inside the same transaction as the
// update itself.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, identity model.Identity, employee model.Employee) (*model.Employee, error) {
	if err := s.validationUtil.ValidateEmployee(employee); err != nil {
		return nil, hcm_errors.ErrInvalidEmployeeData
	}

	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}

	target, err := s.employeeDAO.GetEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	if decision := policy.CanEditEmployee(identity, caller, target); !decision.Allowed {
		logger.Warn("Employee edit denied",
			zap.String("reason", decision.Reason),
			zap.String("actor", identity.Email),
			zap.Uint("employeeID", employee.ID))
		return nil, hcm_errors.ErrForbidden
	}
	// A Manager cannot transfer an employee out of their own department.
	if !identity.IsHRAdmin() {
		if decision := policy.CanEditEmployee(identity, caller, &employee); !decision.Allowed {
			logger.Warn("Employee transfer denied",
				zap.String("reason", decision.Reason),
				zap.String("actor", identity.Email),
				zap.Uint("employeeID", employee.ID))
			return nil, hcm_errors.ErrForbidden
		}
	}

	if employee.DepartmentID != target.DepartmentID {
		if _, err := s.departmentDAO.GetDepartment(ctx, employee.DepartmentID); err != nil {
			return nil, err
		}
	}
	employee.EmployeeNumber = target.EmployeeNumber

	updated, err := s.employeeDAO.UpdateEmployee(ctx, employee, s.resolveActor(identity, caller))
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "employee.updated", map[string]model.Employee{"old": *target, "new": *updated})
	return updated, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, identity model.Identity, employeeID uint) error {
	if decision := policy.CanDeleteEmployee(identity); !decision.Allowed {
		logger.Warn("Employee deletion denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
		return hcm_errors.ErrForbidden
	}

	removed, err := s.employeeDAO.GetEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if err := s.employeeDAO.DeleteEmployee(ctx, employeeID, identity.Email); err != nil {
		return err
	}

	s.eventBus.Publish(ctx, "employee.deleted", *removed)
	return nil
}

// GetMyProfile returns the caller's own employee record, creating a minimal
// one in the sentinel department on first call. Auto-provisioned records are
// the only employee records created outside CanCreateEmployee; they carry no
// salary and stay invisible to departmental reporting until HR assigns a
// real department.
func (s *EmployeeService) GetMyProfile(ctx context.Context, identity model.Identity) (*model.Employee, error) {
	if identity.Email == "" {
		return nil, hcm_errors.ErrUnauthorized
	}

	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if caller != nil {
		return caller, nil
	}

	sentinel, err := s.departmentDAO.GetDepartmentByName(ctx, model.SentinelDepartmentName)
	if err != nil {
		if err == hcm_errors.ErrDepartmentNotFound {
			return nil, hcm_errors.ErrSentinelDepartmentGone
		}
		return nil, err
	}

	firstName, lastName := splitDisplayName(identity)
	profile := model.Employee{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        identity.Email,
		JobTitle:     "Not Specified",
		Salary:       decimal.Zero,
		DepartmentID: sentinel.ID,
		HireDate:     time.Now().UTC(),
	}

	created, err := s.createWithAllocation(ctx, profile, identity.Email)
	if err != nil {
		return nil, err
	}

	logger.Info("Employee profile auto-provisioned",
		zap.Uint("employeeID", created.ID),
		zap.String("email", identity.Email))

	s.eventBus.Publish(ctx, "employee.created", *created)
	return s.employeeDAO.GetEmployee(ctx, created.ID)
}

func splitDisplayName(identity model.Identity) (string, string) {
	name := identity.Username
	if name == "" {
		name = identity.Email
		if at := strings.Index(name, "@"); at > 0 {
			name = name[:at]
		}
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name, ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// EmployeeStatistics aggregates over the caller's visible slice of the
// directory. The Employee role has no statistics view.
func (s *EmployeeService) EmployeeStatistics(ctx context.Context, identity model.Identity) (*EmployeeStatisticsResult, error) {
	if identity.IsEmployee() && !identity.IsHRAdmin() && !identity.IsManager() {
		return nil, hcm_errors.ErrForbidden
	}

	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}

	scope := policy.EmployeeListScope(identity, caller)
	if !scope.Allowed {
		return nil, hcm_errors.ErrForbidden
	}

	employees, err := s.employeeDAO.ListEmployees(ctx, scope, 0, 0)
	if err != nil {
		return nil, err
	}

	return &EmployeeStatisticsResult{
		SalarySummary: SummarizeSalaries(employees),
		JobTitles:     JobTitleDistribution(employees),
		Departments:   DepartmentBreakdown(employees),
	}, nil
}
