package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryHistory is an append-only audit row written in the same transaction
// as the salary change it records. Rows are never updated after creation and
// are removed only by the cascade when their employee is deleted.
type SalaryHistory struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	EmployeeID uint            `json:"employee_id" gorm:"index;not null"`
	Employee   *Employee       `json:"employee,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	OldSalary  decimal.Decimal `json:"old_salary" gorm:"type:decimal(18,2);not null"`
	NewSalary  decimal.Decimal `json:"new_salary" gorm:"type:decimal(18,2);not null"`
	ChangedOn  time.Time       `json:"changed_on"`
	// Actor identity as resolved at write time. ChangedBy falls back to the
	// identity account's email when the actor has no employee profile.
	ChangedBy         string `json:"changed_by"`
	ChangedByNumber   string `json:"changed_by_number"`
	ChangedByFullName string `json:"changed_by_full_name"`
	ChangedByEmail    string `json:"changed_by_email"`
}

// SalaryActor is the resolved identity of whoever performs a salary-changing
// write, captured into the history row at write time.
type SalaryActor struct {
	DisplayName    string
	EmployeeNumber string
	FullName       string
	Email          string
}

// SalaryChange is the signed delta of this change.
func (h *SalaryHistory) SalaryChange() decimal.Decimal {
	return h.NewSalary.Sub(h.OldSalary)
}

// ChangePercentage is the relative change, 0 when the old salary was 0.
func (h *SalaryHistory) ChangePercentage() decimal.Decimal {
	if h.OldSalary.Sign() <= 0 {
		return decimal.Zero
	}
	return h.SalaryChange().Div(h.OldSalary).Mul(decimal.NewFromInt(100))
}
