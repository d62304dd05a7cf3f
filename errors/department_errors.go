// api/errors/department_errors.go
package errors

import "errors"

var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrInvalidDepartmentData   = errors.New("invalid department data")
	ErrDepartmentConflict      = errors.New("department conflict")
	ErrSentinelDepartment      = errors.New("the Unassigned department cannot be deleted")
	ErrSentinelDepartmentGone  = errors.New("the Unassigned department is missing, run bootstrap")
	ErrGrowthRecordNotFound    = errors.New("department growth record not found")
	ErrGrowthRecordConflict    = errors.New("growth record already exists for that department and year")
	ErrInvalidGrowthRecordData = errors.New("invalid department growth data")
)
