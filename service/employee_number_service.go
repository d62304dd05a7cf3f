package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/talentforge/hcm/api/dao"
)

const (
	employeeNumberPrefix = "EMP"
	employeeNumberBase   = 1000
)

// NextEmployeeNumber derives the next sequential employee number from the
// set of numbers already assigned. Each number is split on "-" and the last
// segment parsed as an integer; malformed entries are skipped rather than
// rejected. The result is one past the highest parseable suffix, padded to
// four digits, so insertion order never matters. With no parseable suffix at
// all the sequence starts at EMP-1001.
func NextEmployeeNumber(existing []string) string {
	next := employeeNumberBase + 1
	for _, number := range existing {
		parts := strings.Split(number, "-")
		suffix, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			continue
		}
		if suffix+1 > next {
			next = suffix + 1
		}
	}
	return fmt.Sprintf("%s-%04d", employeeNumberPrefix, next)
}

// EmployeeNumberService allocates employee numbers from the live record set.
// Two concurrent allocations can compute the same candidate; the unique
// index on the number column rejects the loser and the caller re-allocates.
type EmployeeNumberService struct {
	employeeDAO *dao.EmployeeDAO
}

func NewEmployeeNumberService(employeeDAO *dao.EmployeeDAO) *EmployeeNumberService {
	return &EmployeeNumberService{employeeDAO: employeeDAO}
}

func (s *EmployeeNumberService) Generate(ctx context.Context) (string, error) {
	numbers, err := s.employeeDAO.ListEmployeeNumbers(ctx)
	if err != nil {
		return "", err
	}
	return NextEmployeeNumber(numbers), nil
}
