package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/talentforge/hcm/api/model"
)

// Aggregation helpers over employee sets. All of them are total: an empty
// input yields zero values, never an error. Department-facing figures
// (headcount, averages) exclude admin-flagged employees so that
// non-operational staff do not skew departmental numbers; that exclusion is
// a reporting rule and lives here, not in the authorization policy.

func AverageSalary(salaries []decimal.Decimal) decimal.Decimal {
	if len(salaries) == 0 {
		return decimal.Zero
	}
	return TotalSalary(salaries).Div(decimal.NewFromInt(int64(len(salaries))))
}

// MedianSalary sorts ascending and takes the middle value; an even count
// averages the two middle values.
func MedianSalary(salaries []decimal.Decimal) decimal.Decimal {
	if len(salaries) == 0 {
		return decimal.Zero
	}
	sorted := make([]decimal.Decimal, len(salaries))
	copy(sorted, salaries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

func MinSalary(salaries []decimal.Decimal) decimal.Decimal {
	if len(salaries) == 0 {
		return decimal.Zero
	}
	min := salaries[0]
	for _, s := range salaries[1:] {
		if s.LessThan(min) {
			min = s
		}
	}
	return min
}

func MaxSalary(salaries []decimal.Decimal) decimal.Decimal {
	if len(salaries) == 0 {
		return decimal.Zero
	}
	max := salaries[0]
	for _, s := range salaries[1:] {
		if s.GreaterThan(max) {
			max = s
		}
	}
	return max
}

func TotalSalary(salaries []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range salaries {
		total = total.Add(s)
	}
	return total
}

func Salaries(employees []*model.Employee) []decimal.Decimal {
	salaries := make([]decimal.Decimal, len(employees))
	for i, e := range employees {
		salaries[i] = e.Salary
	}
	return salaries
}

// SalarySummary bundles the headline figures for one employee set.
type SalarySummary struct {
	EmployeeCount int             `json:"employee_count"`
	TotalSalary   decimal.Decimal `json:"total_salary"`
	AverageSalary decimal.Decimal `json:"average_salary"`
	MedianSalary  decimal.Decimal `json:"median_salary"`
	HighestSalary decimal.Decimal `json:"highest_salary"`
	LowestSalary  decimal.Decimal `json:"lowest_salary"`
}

func SummarizeSalaries(employees []*model.Employee) SalarySummary {
	salaries := Salaries(employees)
	return SalarySummary{
		EmployeeCount: len(employees),
		TotalSalary:   TotalSalary(salaries),
		AverageSalary: AverageSalary(salaries),
		MedianSalary:  MedianSalary(salaries),
		HighestSalary: MaxSalary(salaries),
		LowestSalary:  MinSalary(salaries),
	}
}

// JobTitleStats is one row of the job-title distribution.
type JobTitleStats struct {
	Title         string          `json:"title"`
	Count         int             `json:"count"`
	AverageSalary decimal.Decimal `json:"average_salary"`
}

// JobTitleDistribution groups by the exact title string, ordered by
// descending count; ties break alphabetically so output is deterministic.
func JobTitleDistribution(employees []*model.Employee) []JobTitleStats {
	groups := make(map[string][]decimal.Decimal)
	for _, e := range employees {
		groups[e.JobTitle] = append(groups[e.JobTitle], e.Salary)
	}

	stats := make([]JobTitleStats, 0, len(groups))
	for title, salaries := range groups {
		stats = append(stats, JobTitleStats{
			Title:         title,
			Count:         len(salaries),
			AverageSalary: AverageSalary(salaries),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Title < stats[j].Title
	})
	return stats
}

// DepartmentStats is one row of the per-department breakdown.
type DepartmentStats struct {
	DepartmentName string          `json:"department_name"`
	EmployeeCount  int             `json:"employee_count"`
	TotalSalary    decimal.Decimal `json:"total_salary"`
	AverageSalary  decimal.Decimal `json:"average_salary"`
	HighestSalary  decimal.Decimal `json:"highest_salary"`
	LowestSalary   decimal.Decimal `json:"lowest_salary"`
}

// DepartmentBreakdown groups by department name, ordered by descending
// headcount then name. Admin-flagged employees are excluded here: this is a
// department-facing figure.
func DepartmentBreakdown(employees []*model.Employee) []DepartmentStats {
	groups := make(map[string][]decimal.Decimal)
	for _, e := range employees {
		if e.IsAdmin {
			continue
		}
		name := "No Department"
		if e.Department != nil {
			name = e.Department.Name
		}
		groups[name] = append(groups[name], e.Salary)
	}

	stats := make([]DepartmentStats, 0, len(groups))
	for name, salaries := range groups {
		stats = append(stats, DepartmentStats{
			DepartmentName: name,
			EmployeeCount:  len(salaries),
			TotalSalary:    TotalSalary(salaries),
			AverageSalary:  AverageSalary(salaries),
			HighestSalary:  MaxSalary(salaries),
			LowestSalary:   MinSalary(salaries),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].EmployeeCount != stats[j].EmployeeCount {
			return stats[i].EmployeeCount > stats[j].EmployeeCount
		}
		return stats[i].DepartmentName < stats[j].DepartmentName
	})
	return stats
}
