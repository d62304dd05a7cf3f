package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/talentforge/hcm/api/model"
)

func TestSalaryChange(t *testing.T) {
	h := model.SalaryHistory{
		OldSalary: decimal.NewFromInt(50000),
		NewSalary: decimal.NewFromInt(60000),
	}
	assert.True(t, h.SalaryChange().Equal(decimal.NewFromInt(10000)))

	cut := model.SalaryHistory{
		OldSalary: decimal.NewFromInt(60000),
		NewSalary: decimal.NewFromInt(50000),
	}
	assert.True(t, cut.SalaryChange().Equal(decimal.NewFromInt(-10000)))
}

func TestChangePercentage(t *testing.T) {
	h := model.SalaryHistory{
		OldSalary: decimal.NewFromInt(50000),
		NewSalary: decimal.NewFromInt(60000),
	}
	assert.True(t, h.ChangePercentage().Equal(decimal.NewFromInt(20)))

	// A zero base has no meaningful percentage.
	fromZero := model.SalaryHistory{
		OldSalary: decimal.Zero,
		NewSalary: decimal.NewFromInt(60000),
	}
	assert.True(t, fromZero.ChangePercentage().IsZero())
}
