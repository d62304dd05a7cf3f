// api/errors/salary_errors.go
package errors

import "errors"

var (
	ErrSalaryHistoryNotFound = errors.New("salary history record not found")
	ErrInvalidSalary         = errors.New("salary must be greater than zero")
)
