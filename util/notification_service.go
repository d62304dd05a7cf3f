// api/util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyEmployeeChange(ctx context.Context, changeType string, employee model.Employee) error {
	switch changeType {
	case "created", "updated", "deleted":
		logger.Info("NOTIFICATION: Employee "+changeType,
			zap.Uint("employeeID", employee.ID),
			zap.String("employeeNumber", employee.EmployeeNumber))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifyDepartmentChange(ctx context.Context, changeType string, dept model.Department) error {
	logger.Info("Notifying department change",
		zap.String("changeType", changeType),
		zap.Uint("deptID", dept.ID),
		zap.String("deptName", dept.Name))
	return nil
}

// NotifySalaryChange informs downstream systems (payroll export, HR inbox)
// that a salary changed. Currently a structured log line.
func (n *NotificationService) NotifySalaryChange(ctx context.Context, history model.SalaryHistory) error {
	logger.Info("NOTIFICATION: Salary changed",
		zap.Uint("employeeID", history.EmployeeID),
		zap.String("changedBy", history.ChangedBy))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}
