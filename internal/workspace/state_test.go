package workspace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/erp-records-backend/internal/records"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
)

func movedState() State {
	st := NewState("s1")
	st.Params.Page = 4
	return st
}

func TestNewStateDefaults(t *testing.T) {
	st := NewState("s1")
	assert.Equal(t, records.SortRecordDate, st.Params.SortField)
	assert.Equal(t, records.SortDesc, st.Params.SortDirection)
	assert.Equal(t, 1, st.Params.Page)
	assert.Equal(t, 50, st.Params.PageSize)
	assert.Equal(t, records.FilterAll, st.Params.StatusFilter)
	assert.Equal(t, records.FilterAll, st.Params.MarketplaceFilter)
	assert.Equal(t, 0, st.Selection.Len())
}

func TestFilterTransitionsResetPage(t *testing.T) {
	st := movedState().WithSearch("ret")
	assert.Equal(t, "ret", st.Params.Search)
	assert.Equal(t, 1, st.Params.Page)

	st = movedState().WithStatusFilter("completed")
	assert.Equal(t, "completed", st.Params.StatusFilter)
	assert.Equal(t, 1, st.Params.Page)

	st = movedState().WithMarketplaceFilter("")
	assert.Equal(t, records.FilterAll, st.Params.MarketplaceFilter)
	assert.Equal(t, 1, st.Params.Page)
}

func TestResetFilters(t *testing.T) {
	st := movedState().WithSearch("x").WithStatusFilter("pending").WithMarketplaceFilter("ozon")
	st.Params.Page = 3
	st = st.WithFiltersReset()

	assert.Empty(t, st.Params.Search)
	assert.Equal(t, records.FilterAll, st.Params.StatusFilter)
	assert.Equal(t, records.FilterAll, st.Params.MarketplaceFilter)
	assert.Equal(t, 1, st.Params.Page)
	assert.Equal(t, records.SortRecordDate, st.Params.SortField)
}

func TestSortTogglesOnSameField(t *testing.T) {
	st, err := movedState().WithSort(records.SortAmount)
	require.NoError(t, err)
	assert.Equal(t, records.SortAmount, st.Params.SortField)
	assert.Equal(t, records.SortAsc, st.Params.SortDirection)
	assert.Equal(t, 1, st.Params.Page)

	st, err = st.WithSort(records.SortAmount)
	require.NoError(t, err)
	assert.Equal(t, records.SortDesc, st.Params.SortDirection)

	st, err = st.WithSort(records.SortRecordDate)
	require.NoError(t, err)
	assert.Equal(t, records.SortAsc, st.Params.SortDirection)

	_, err = st.WithSort("colour")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
	_, err = st.WithSort(records.SortNone)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
}

func TestPageTransitions(t *testing.T) {
	st, err := NewState("s1").WithPage(7)
	require.NoError(t, err)
	assert.Equal(t, 7, st.Params.Page)

	_, err = st.WithPage(0)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))

	st = st.WithToggledOne(uuid.New())
	st, err = st.WithPageSize(100, 200)
	require.NoError(t, err)
	assert.Equal(t, 100, st.Params.PageSize)
	assert.Equal(t, 1, st.Params.Page)
	assert.Equal(t, 0, st.Selection.Len())

	_, err = st.WithPageSize(0, 200)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
	_, err = st.WithPageSize(500, 200)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
}

func TestValidateSessionID(t *testing.T) {
	assert.NoError(t, ValidateSessionID("tab-42_a"))
	for _, bad := range []string{"", "has space", "a:b", string(make([]byte, 200))} {
		err := ValidateSessionID(bad)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "id %q", bad)
	}
}
