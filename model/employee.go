package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a staff record. EmployeeNumber is immutable once assigned and
// unique across the company; Email is the join key to the identity provider.
type Employee struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	EmployeeNumber string          `json:"employee_number" gorm:"uniqueIndex;size:32"`
	FirstName      string          `json:"first_name" gorm:"not null"`
	LastName       string          `json:"last_name" gorm:"not null"`
	Email          string          `json:"email" gorm:"uniqueIndex;size:191;not null"`
	JobTitle       string          `json:"job_title" gorm:"not null"`
	Salary         decimal.Decimal `json:"salary" gorm:"type:decimal(18,2);not null"`
	DepartmentID   uint            `json:"department_id" gorm:"not null"`
	Department     *Department     `json:"department,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	HireDate       time.Time       `json:"hire_date"`
	IsAdmin        bool            `json:"is_admin"`
	// Version is the optimistic concurrency token; every successful update
	// increments it, and writers must present the value they read.
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns "First Last" with no surrounding whitespace when either
// part is empty.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// YearsOfService is continuous elapsed time since the hire date, in years.
func (e *Employee) YearsOfService() float64 {
	return e.YearsOfServiceAt(time.Now().UTC())
}

func (e *Employee) YearsOfServiceAt(now time.Time) float64 {
	return now.Sub(e.HireDate).Hours() / 24 / 365.25
}
