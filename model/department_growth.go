package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepartmentGrowth holds one department's financial figures for one year.
// Unique on (DepartmentID, Year).
type DepartmentGrowth struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	DepartmentID uint             `json:"department_id" gorm:"uniqueIndex:idx_growth_dept_year;not null"`
	Department   *Department      `json:"department,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Year         int              `json:"year" gorm:"uniqueIndex:idx_growth_dept_year;not null"`
	Revenue      decimal.Decimal  `json:"revenue" gorm:"type:decimal(18,2);not null"`
	Expenses     decimal.Decimal  `json:"expenses" gorm:"type:decimal(18,2);not null"`
	Goal         *decimal.Decimal `json:"goal,omitempty" gorm:"type:decimal(18,2)"`
	Notes        *string          `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (g *DepartmentGrowth) NetProfit() decimal.Decimal {
	return g.Revenue.Sub(g.Expenses)
}

// ProfitMargin is net profit as a percentage of revenue, 0 when revenue is 0.
func (g *DepartmentGrowth) ProfitMargin() decimal.Decimal {
	if g.Revenue.Sign() <= 0 {
		return decimal.Zero
	}
	return g.NetProfit().Div(g.Revenue).Mul(decimal.NewFromInt(100))
}

// GoalAchievement is net profit as a percentage of the goal, nil when no
// positive goal was set.
func (g *DepartmentGrowth) GoalAchievement() *decimal.Decimal {
	if g.Goal == nil || g.Goal.Sign() <= 0 {
		return nil
	}
	v := g.NetProfit().Div(*g.Goal).Mul(decimal.NewFromInt(100))
	return &v
}
