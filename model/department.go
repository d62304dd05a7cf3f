package model

import "time"

// SentinelDepartmentName is the department that holds employees without a
// real assignment. Bootstrap guarantees it exists; it can never be deleted.
const SentinelDepartmentName = "Unassigned"

type Department struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"uniqueIndex;size:191;not null"`
	Employees []Employee `json:"employees,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsSentinel reports whether this is the reserved holding department.
func (d *Department) IsSentinel() bool {
	return d.Name == SentinelDepartmentName
}
