package dao_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/hcm/api/dao"
	hcm_errors "github.com/talentforge/hcm/api/errors"
	"github.com/talentforge/hcm/api/model"
)

func TestCreateGrowthRecord_OnePerDepartmentYear(t *testing.T) {
	db := newTestDB(t)
	growthDAO := dao.NewDepartmentGrowthDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")

	record := model.DepartmentGrowth{
		DepartmentID: dept.ID,
		Year:         2024,
		Revenue:      decimal.NewFromInt(100000),
		Expenses:     decimal.NewFromInt(40000),
	}
	_, err := growthDAO.CreateGrowthRecord(context.Background(), record, "hr.admin@example.com")
	require.NoError(t, err)

	_, err = growthDAO.CreateGrowthRecord(context.Background(), record, "hr.admin@example.com")
	assert.ErrorIs(t, err, hcm_errors.ErrGrowthRecordConflict)
}

func TestListGrowthRecords_OrderedByYear(t *testing.T) {
	db := newTestDB(t)
	growthDAO := dao.NewDepartmentGrowthDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")

	for _, year := range []int{2025, 2023, 2024} {
		_, err := growthDAO.CreateGrowthRecord(context.Background(), model.DepartmentGrowth{
			DepartmentID: dept.ID,
			Year:         year,
			Revenue:      decimal.NewFromInt(100000),
			Expenses:     decimal.NewFromInt(40000),
		}, "hr.admin@example.com")
		require.NoError(t, err)
	}

	records, err := growthDAO.ListGrowthRecords(context.Background(), dept.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int{2023, 2024, 2025}, []int{records[0].Year, records[1].Year, records[2].Year})
}

func TestDeleteGrowthRecord_ByDepartmentAndYear(t *testing.T) {
	db := newTestDB(t)
	growthDAO := dao.NewDepartmentGrowthDAO(db, nil)
	dept := seedDepartment(t, db, "Engineering")

	_, err := growthDAO.CreateGrowthRecord(context.Background(), model.DepartmentGrowth{
		DepartmentID: dept.ID,
		Year:         2024,
		Revenue:      decimal.NewFromInt(100000),
		Expenses:     decimal.NewFromInt(40000),
	}, "hr.admin@example.com")
	require.NoError(t, err)

	require.NoError(t, growthDAO.DeleteGrowthRecord(context.Background(), dept.ID, 2024, "hr.admin@example.com"))

	err = growthDAO.DeleteGrowthRecord(context.Background(), dept.ID, 2024, "hr.admin@example.com")
	assert.ErrorIs(t, err, hcm_errors.ErrGrowthRecordNotFound)
}
