// api/errors/employee_errors.go
package errors

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrInvalidEmployeeData     = errors.New("invalid employee data")
	ErrEmployeeConflict        = errors.New("employee conflict")
	ErrEmployeeModified        = errors.New("employee was modified by another request, reload and retry")
	ErrEmployeeNumberExhausted = errors.New("could not allocate a unique employee number")
)
