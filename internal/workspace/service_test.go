package workspace

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/erp-records-backend/internal/records"
	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
	"github.com/angelmondragon/erp-records-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
	"github.com/angelmondragon/erp-records-backend/pkg/types"
)

type memoryStore struct {
	states map[string]State
	saves  int
}

func (m *memoryStore) Load(_ context.Context, sessionID string) (State, bool, error) {
	st, ok := m.states[sessionID]
	return st, ok, nil
}

func (m *memoryStore) Save(_ context.Context, st State) error {
	if m.states == nil {
		m.states = map[string]State{}
	}
	m.states[st.SessionID] = st
	m.saves++
	return nil
}

type stubLister struct {
	rows  []models.ERPRecord
	err   error
	calls int
}

func (s *stubLister) List(context.Context) ([]models.ERPRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func record(number string, status enums.RecordStatus, day int) models.ERPRecord {
	return models.ERPRecord{
		ID:            uuid.New(),
		RecordNumber:  number,
		RecordDate:    types.NewDate(time.Date(2025, 2, day, 0, 0, 0, 0, time.UTC)),
		RecordType:    enums.RecordTypeReturn,
		Status:        status,
		Priority:      enums.PriorityNormal,
		PaymentStatus: enums.PaymentStatusUnpaid,
		Quantity:      day,
		Amount:        decimal.NewFromInt(int64(day)),
	}
}

func newWorkspace(t *testing.T, rows ...models.ERPRecord) (Service, *memoryStore, *stubLister) {
	t.Helper()
	store := &memoryStore{}
	lister := &stubLister{rows: rows}
	svc, err := NewService(ServiceParams{
		Store:       store,
		Records:     lister,
		Logger:      logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		MaxPageSize: 200,
	})
	require.NoError(t, err)
	return svc, store, lister
}

func rowNumbers(view records.View) []string {
	out := make([]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		out = append(out, r.RecordNumber)
	}
	return out
}

func TestSnapshotInitializesSession(t *testing.T) {
	svc, store, _ := newWorkspace(t,
		record("R-1", enums.RecordStatusPending, 1),
		record("R-3", enums.RecordStatusPending, 3),
		record("R-2", enums.RecordStatusCompleted, 2),
	)

	snap, err := svc.Snapshot(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"R-3", "R-2", "R-1"}, rowNumbers(snap.View))
	assert.Equal(t, 1, store.saves)

	_, err = svc.Snapshot(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
}

func TestFilterAndSortTransitions(t *testing.T) {
	svc, store, _ := newWorkspace(t,
		record("R-1", enums.RecordStatusPending, 1),
		record("R-3", enums.RecordStatusPending, 3),
		record("R-2", enums.RecordStatusCompleted, 2),
	)
	ctx := context.Background()

	_, err := svc.SetPage(ctx, "tab-1", 3)
	require.NoError(t, err)

	snap, err := svc.SetStatusFilter(ctx, "tab-1", "pending")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.State.Params.Page)
	assert.Equal(t, 2, snap.View.TotalCount)
	assert.Equal(t, 4, snap.View.TotalQuantity)

	snap, err = svc.Sort(ctx, "tab-1", records.SortRecordNumber)
	require.NoError(t, err)
	assert.Equal(t, []string{"R-1", "R-3"}, rowNumbers(snap.View))

	snap, err = svc.Sort(ctx, "tab-1", records.SortRecordNumber)
	require.NoError(t, err)
	assert.Equal(t, []string{"R-3", "R-1"}, rowNumbers(snap.View))

	snap, err = svc.ResetFilters(ctx, "tab-1")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.View.TotalCount)
	assert.Equal(t, records.SortDesc, store.states["tab-1"].Params.SortDirection)
}

func TestInvalidFilterIsNotPersisted(t *testing.T) {
	svc, store, _ := newWorkspace(t, record("R-1", enums.RecordStatusPending, 1))

	_, err := svc.SetStatusFilter(context.Background(), "tab-1", "archived")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
	assert.Equal(t, 0, store.saves)
}

func TestToggleAllAcrossPages(t *testing.T) {
	svc, _, _ := newWorkspace(t,
		record("R-1", enums.RecordStatusPending, 1),
		record("R-2", enums.RecordStatusPending, 2),
		record("R-3", enums.RecordStatusPending, 3),
	)
	ctx := context.Background()

	_, err := svc.SetPageSize(ctx, "tab-1", 2)
	require.NoError(t, err)

	snap, err := svc.SetPage(ctx, "tab-1", 2)
	require.NoError(t, err)
	require.Len(t, snap.View.Rows, 1)
	other := snap.View.Rows[0].ID

	snap, err = svc.ToggleOne(ctx, "tab-1", other)
	require.NoError(t, err)
	assert.True(t, snap.AllSelected)

	_, err = svc.SetPage(ctx, "tab-1", 1)
	require.NoError(t, err)

	snap, err = svc.ToggleAll(ctx, "tab-1")
	require.NoError(t, err)
	assert.True(t, snap.AllSelected)
	assert.Equal(t, 3, snap.SelectedCount)

	snap, err = svc.ToggleAll(ctx, "tab-1")
	require.NoError(t, err)
	assert.False(t, snap.AllSelected)
	assert.Equal(t, 1, snap.SelectedCount)
	assert.True(t, snap.State.Selection.Has(other))
}

func TestToggleOneUnknownRecord(t *testing.T) {
	svc, _, _ := newWorkspace(t, record("R-1", enums.RecordStatusPending, 1))
	_, err := svc.ToggleOne(context.Background(), "tab-1", uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestSetPageSizeClearsSelection(t *testing.T) {
	r := record("R-1", enums.RecordStatusPending, 1)
	svc, _, _ := newWorkspace(t, r)
	ctx := context.Background()

	_, err := svc.ToggleOne(ctx, "tab-1", r.ID)
	require.NoError(t, err)

	snap, err := svc.SetPageSize(ctx, "tab-1", 25)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.SelectedCount)
	assert.Equal(t, 25, snap.State.Params.PageSize)

	_, err = svc.SetPageSize(ctx, "tab-1", 1000)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
}

func TestListFailureLeavesStateUntouched(t *testing.T) {
	svc, store, lister := newWorkspace(t, record("R-1", enums.RecordStatusPending, 1))
	ctx := context.Background()

	_, err := svc.SetSearch(ctx, "tab-1", "R")
	require.NoError(t, err)

	lister.err = pkgerrors.Wrap(pkgerrors.CodeStoreFailure, errors.New("timeout"), "list records")
	_, err = svc.SetSearch(ctx, "tab-1", "nothing")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStoreFailure))
	assert.Equal(t, "R", store.states["tab-1"].Params.Search)
}

func TestInvalidSessionID(t *testing.T) {
	svc, _, lister := newWorkspace(t)
	_, err := svc.Snapshot(context.Background(), "bad id")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, 0, lister.calls)
}

func TestSnapshotDTO(t *testing.T) {
	r := record("R-1", enums.RecordStatusCompleted, 1)
	svc, _, _ := newWorkspace(t, r)

	snap, err := svc.ToggleOne(context.Background(), "tab-1", r.ID)
	require.NoError(t, err)

	dto := NewSnapshotDTO(snap)
	assert.Equal(t, "tab-1", dto.SessionID)
	assert.Equal(t, []uuid.UUID{r.ID}, dto.Selection.IDs)
	assert.True(t, dto.Selection.AllSelected)
	require.Len(t, dto.View.Rows, 1)
	assert.Equal(t, "Завершено", dto.View.Rows[0].StatusLabel)
	assert.Equal(t, enums.BadgeToneGreen, dto.View.Rows[0].StatusTone)
}

func TestNewSessionUsesConfiguredPageSize(t *testing.T) {
	store := &memoryStore{}
	svc, err := NewService(ServiceParams{
		Store:           store,
		Records:         &stubLister{rows: []models.ERPRecord{record("R-1", enums.RecordStatusPending, 1)}},
		Logger:          logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		DefaultPageSize: 25,
		MaxPageSize:     200,
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background(), "tab-25")
	require.NoError(t, err)
	assert.Equal(t, 25, snap.State.Params.PageSize)
	assert.Equal(t, 25, store.states["tab-25"].Params.PageSize)
}
