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

// DepartmentSummary is a directory row: the department plus the headline
// figures of its non-admin staff.
type DepartmentSummary struct {
	Department    model.Department `json:"department"`
	EmployeeCount int              `json:"employee_count"`
	AverageSalary decimal.Decimal  `json:"average_salary"`
}

// GrowthFigures is one year of financials with the derived ratios computed.
type GrowthFigures struct {
	Year            int              `json:"year"`
	Revenue         decimal.Decimal  `json:"revenue"`
	Expenses        decimal.Decimal  `json:"expenses"`
	NetProfit       decimal.Decimal  `json:"net_profit"`
	ProfitMargin    decimal.Decimal  `json:"profit_margin"`
	Goal            *decimal.Decimal `json:"goal,omitempty"`
	GoalAchievement *decimal.Decimal `json:"goal_achievement,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// DepartmentAnalytics is the payload of the per-department analytics
// endpoint: salary figures over non-admin staff plus the growth history.
type DepartmentAnalytics struct {
	Department model.Department `json:"department"`
	Salaries   SalarySummary    `json:"salaries"`
	Growth     []GrowthFigures  `json:"growth"`
}

// DepartmentStatisticsResult is the payload of the department statistics
// endpoint: the org-wide breakdown plus the job title distribution.
type DepartmentStatisticsResult struct {
	TotalDepartments int64             `json:"total_departments"`
	TotalEmployees   int               `json:"total_employees"`
	Departments      []DepartmentStats `json:"departments"`
	JobTitles        []JobTitleStats   `json:"job_titles"`
}

// IDepartmentService defines the interface for department operations
type IDepartmentService interface {
	CreateDepartment(ctx context.Context, identity model.Identity, department model.Department) (*model.Department, error)
	UpdateDepartment(ctx context.Context, identity model.Identity, department model.Department) (*model.Department, error)
	DeleteDepartment(ctx context.Context, identity model.Identity, departmentID uint) error
	GetDepartment(ctx context.Context, identity model.Identity, departmentID uint) (*model.Department, error)
	ListDepartments(ctx context.Context, identity model.Identity, limit, offset int) ([]DepartmentSummary, error)
	DepartmentAnalytics(ctx context.Context, identity model.Identity, departmentID uint) (*DepartmentAnalytics, error)
	DepartmentStatistics(ctx context.Context, identity model.Identity) (*DepartmentStatisticsResult, error)
	AddGrowthRecord(ctx context.Context, identity model.Identity, growth model.DepartmentGrowth) (*model.DepartmentGrowth, error)
	ListGrowthRecords(ctx context.Context, identity model.Identity, departmentID uint) ([]GrowthFigures, error)
	DeleteGrowthRecord(ctx context.Context, identity model.Identity, departmentID uint, year int) error
}

// DepartmentService handles business logic for department operations
type DepartmentService struct {
	departmentDAO   *dao.DepartmentDAO
	employeeDAO     *dao.EmployeeDAO
	growthDAO       *dao.DepartmentGrowthDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IDepartmentService = &DepartmentService{}

func NewDepartmentService(
	departmentDAO *dao.DepartmentDAO,
	employeeDAO *dao.EmployeeDAO,
	growthDAO *dao.DepartmentGrowthDAO,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *DepartmentService {
	service := &DepartmentService{
		departmentDAO:   departmentDAO,
		employeeDAO:     employeeDAO,
		growthDAO:       growthDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("department.created", service.handleDepartmentCreated)
	eventBus.Subscribe("department.updated", service.handleDepartmentUpdated)
	eventBus.Subscribe("department.deleted", service.handleDepartmentDeleted)

	return service
}

func (s *DepartmentService) handleDepartmentCreated(ctx context.Context, event util.Event) error {
	department := event.Payload.(model.Department)
	logger.Info("Department created event received", zap.Uint("deptID", department.ID))

	if err := s.cacheService.SetDepartment(ctx, department); err != nil {
		logger.Warn("Failed to cache department", zap.Error(err), zap.Uint("deptID", department.ID))
	}
	if err := s.notificationSvc.NotifyDepartmentChange(ctx, "created", department); err != nil {
		logger.Warn("Failed to send department creation notification", zap.Error(err))
	}
	return nil
}

func (s *DepartmentService) handleDepartmentUpdated(ctx context.Context, event util.Event) error {
	department := event.Payload.(model.Department)
	logger.Info("Department updated event received", zap.Uint("deptID", department.ID))

	if err := s.cacheService.SetDepartment(ctx, department); err != nil {
		logger.Warn("Failed to refresh department cache", zap.Error(err), zap.Uint("deptID", department.ID))
	}
	if err := s.notificationSvc.NotifyDepartmentChange(ctx, "updated", department); err != nil {
		logger.Warn("Failed to send department update notification", zap.Error(err))
	}
	return nil
}

func (s *DepartmentService) handleDepartmentDeleted(ctx context.Context, event util.Event) error {
	department := event.Payload.(model.Department)
	logger.Info("Department deleted event received", zap.Uint("deptID", department.ID))

	if err := s.cacheService.DeleteDepartment(ctx, department.ID); err != nil {
		logger.Warn("Failed to evict department cache", zap.Error(err), zap.Uint("deptID", department.ID))
	}
	if err := s.notificationSvc.NotifyDepartmentChange(ctx, "deleted", department); err != nil {
		logger.Warn("Failed to send department deletion notification", zap.Error(err))
	}
	return nil
}

func (s *DepartmentService) resolveCaller(ctx context.Context, identity model.Identity) (*model.Employee, error) {
	if identity.Email == "" {
		return nil, nil
	}
	return s.employeeDAO.GetEmployeeByEmail(ctx, identity.Email)
}

// checkDepartmentView gates read access to one department: HR Admin sees
// all, a Manager only their own.
func (s *DepartmentService) checkDepartmentView(ctx context.Context, identity model.Identity, departmentID uint) error {
	if decision := policy.CanViewDepartments(identity); !decision.Allowed {
		logger.Warn("Department view denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
		return hcm_errors.ErrForbidden
	}
	if identity.IsHRAdmin() {
		return nil
	}
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return err
	}
	if caller == nil || caller.DepartmentID != departmentID {
		logger.Warn("Department view denied",
			zap.String("reason", "managers may only view their own department"),
			zap.String("actor", identity.Email),
			zap.Uint("deptID", departmentID))
		return hcm_errors.ErrForbidden
	}
	return nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, identity model.Identity, department model.Department) (*model.Department, error) {
	if err := s.validationUtil.ValidateDepartment(department); err != nil {
		return nil, hcm_errors.ErrInvalidDepartmentData
	}
	if decision := policy.CanCreateDepartment(identity); !decision.Allowed {
		logger.Warn("Department creation denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
		return nil, hcm_errors.ErrForbidden
	}

	created, err := s.departmentDAO.CreateDepartment(ctx, department, identity.Email)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "department.created", *created)
	return created, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, identity model.Identity, department model.Department) (*model.Department, error) {
	if err := s.validationUtil.ValidateDepartment(department); err != nil {
		return nil, hcm_errors.ErrInvalidDepartmentData
	}

	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	if decision := policy.CanEditDepartment(identity, caller, department.ID); !decision.Allowed {
		logger.Warn("Department edit denied",
			zap.String("reason", decision.Reason),
			zap.String("actor", identity.Email),
			zap.Uint("deptID", department.ID))
		return nil, hcm_errors.ErrForbidden
	}

	updated, err := s.departmentDAO.UpdateDepartment(ctx, department, identity.Email)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "department.updated", *updated)
	return updated, nil
}

// DeleteDepartment removes a department; its employees move to the sentinel
// department and its growth records go with it, all in one transaction.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, identity model.Identity, departmentID uint) error {
	if decision := policy.CanDeleteDepartment(identity); !decision.Allowed {
		logger.Warn("Department deletion denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
		return hcm_errors.ErrForbidden
	}

	removed, err := s.departmentDAO.GetDepartment(ctx, departmentID)
	if err != nil {
		return err
	}
	if err := s.departmentDAO.DeleteDepartment(ctx, departmentID, identity.Email); err != nil {
		return err
	}

	s.eventBus.Publish(ctx, "department.deleted", *removed)
	return nil
}

func (s *DepartmentService) GetDepartment(ctx context.Context, identity model.Identity, departmentID uint) (*model.Department, error) {
	if err := s.checkDepartmentView(ctx, identity, departmentID); err != nil {
		return nil, err
	}

	department, cacheErr := s.cacheService.GetDepartment(ctx, departmentID)
	if cacheErr == nil && department != nil {
		return department, nil
	}
	return s.departmentDAO.GetDepartment(ctx, departmentID)
}

// ListDepartments returns the directory the caller may see, each row with
// headcount and average salary over non-admin staff. A Manager's directory
// is just their own department.
func (s *DepartmentService) ListDepartments(ctx context.Context, identity model.Identity, limit, offset int) ([]DepartmentSummary, error) {
	if decision := policy.CanViewDepartments(identity); !decision.Allowed {
		logger.Warn("Department listing denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
		return nil, hcm_errors.ErrForbidden
	}

	var departments []*model.Department
	if identity.IsHRAdmin() {
		var err error
		departments, err = s.departmentDAO.ListDepartments(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
	} else {
		caller, err := s.resolveCaller(ctx, identity)
		if err != nil {
			return nil, err
		}
		if caller == nil {
			return nil, hcm_errors.ErrForbidden
		}
		own, err := s.departmentDAO.GetDepartment(ctx, caller.DepartmentID)
		if err != nil {
			return nil, err
		}
		departments = []*model.Department{own}
	}

	summaries := make([]DepartmentSummary, 0, len(departments))
	for _, department := range departments {
		staff, err := s.departmentDAO.ListEmployeesByDepartment(ctx, department.ID, true)
		if err != nil {
			return nil, err
		}
		salaries := Salaries(staff)
		summaries = append(summaries, DepartmentSummary{
			Department:    *department,
			EmployeeCount: len(staff),
			AverageSalary: AverageSalary(salaries),
		})
	}
	return summaries, nil
}

// DepartmentAnalytics computes the salary figures of one department's
// non-admin staff plus its growth history with derived ratios.
func (s *DepartmentService) DepartmentAnalytics(ctx context.Context, identity model.Identity, departmentID uint) (*DepartmentAnalytics, error) {
	if err := s.checkDepartmentView(ctx, identity, departmentID); err != nil {
		return nil, err
	}

	department, err := s.departmentDAO.GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	staff, err := s.departmentDAO.ListEmployeesByDepartment(ctx, departmentID, true)
	if err != nil {
		return nil, err
	}
	records, err := s.growthDAO.ListGrowthRecords(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	return &DepartmentAnalytics{
		Department: *department,
		Salaries:   SummarizeSalaries(staff),
		Growth:     growthFigures(records),
	}, nil
}

func growthFigures(records []*model.DepartmentGrowth) []GrowthFigures {
	figures := make([]GrowthFigures, len(records))
	for i, record := range records {
		figures[i] = GrowthFigures{
			Year:            record.Year,
			Revenue:         record.Revenue,
			Expenses:        record.Expenses,
			NetProfit:       record.NetProfit(),
			ProfitMargin:    record.ProfitMargin(),
			Goal:            record.Goal,
			GoalAchievement: record.GoalAchievement(),
			Notes:           record.Notes,
		}
	}
	return figures
}

// DepartmentStatistics is the org-wide overview, scoped like the employee
// directory: HR Admin sees every department, a Manager their own.
func (s *DepartmentService) DepartmentStatistics(ctx context.Context, identity model.Identity) (*DepartmentStatisticsResult, error) {
	if decision := policy.CanViewDepartments(identity); !decision.Allowed {
		logger.Warn("Department statistics denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
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
	totalDepartments, err := s.departmentDAO.CountDepartments(ctx)
	if err != nil {
		return nil, err
	}

	return &DepartmentStatisticsResult{
		TotalDepartments: totalDepartments,
		TotalEmployees:   len(employees),
		Departments:      DepartmentBreakdown(employees),
		JobTitles:        JobTitleDistribution(employees),
	}, nil
}

func (s *DepartmentService) AddGrowthRecord(ctx context.Context, identity model.Identity, growth model.DepartmentGrowth) (*model.DepartmentGrowth, error) {
	if decision := policy.CanManageGrowthRecords(identity); !decision.Allowed {
		logger.Warn("Growth record creation denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
		return nil, hcm_errors.ErrForbidden
	}
	if err := s.validationUtil.ValidateGrowthRecord(growth); err != nil {
		return nil, hcm_errors.ErrInvalidGrowthRecordData
	}
	if _, err := s.departmentDAO.GetDepartment(ctx, growth.DepartmentID); err != nil {
		return nil, err
	}
	return s.growthDAO.CreateGrowthRecord(ctx, growth, identity.Email)
}

func (s *DepartmentService) ListGrowthRecords(ctx context.Context, identity model.Identity, departmentID uint) ([]GrowthFigures, error) {
	if err := s.checkDepartmentView(ctx, identity, departmentID); err != nil {
		return nil, err
	}
	if _, err := s.departmentDAO.GetDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	records, err := s.growthDAO.ListGrowthRecords(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return growthFigures(records), nil
}

func (s *DepartmentService) DeleteGrowthRecord(ctx context.Context, identity model.Identity, departmentID uint, year int) error {
	if decision := policy.CanManageGrowthRecords(identity); !decision.Allowed {
		logger.Warn("Growth record deletion denied", zap.String("reason", decision.Reason), zap.String("actor", identity.Email))
		return hcm_errors.ErrForbidden
	}
	return s.growthDAO.DeleteGrowthRecord(ctx, departmentID, year, identity.Email)
}
