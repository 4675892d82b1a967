package records

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
	"github.com/angelmondragon/erp-records-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
	"github.com/angelmondragon/erp-records-backend/pkg/metrics"
	"github.com/angelmondragon/erp-records-backend/pkg/types"
)

type stubStore struct {
	rows      []models.ERPRecord
	listCalls int
	listErr   error
	failList  func(call int) error
	createErr error
	updateErr error
	deleteErr error
	updates   map[uuid.UUID]map[string]any
	deletes   []uuid.UUID
}

func (s *stubStore) List(ctx context.Context) ([]models.ERPRecord, error) {
	s.listCalls++
	if s.failList != nil {
		if err := s.failList(s.listCalls); err != nil {
			return nil, err
		}
	}
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.ERPRecord, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *stubStore) Create(ctx context.Context, record *models.ERPRecord) (*models.ERPRecord, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	s.rows = append([]models.ERPRecord{*record}, s.rows...)
	return record, nil
}

func (s *stubStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.rows {
		if s.rows[i].ID == id {
			if s.updates == nil {
				s.updates = map[uuid.UUID]map[string]any{}
			}
			s.updates[id] = fields
			if status, ok := fields["status"].(enums.RecordStatus); ok {
				s.rows[i].Status = status
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletes = append(s.deletes, id)
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestService(t *testing.T, store *stubStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store:   store,
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Metrics: metrics.NewStoreMetrics(prometheus.NewRegistry()),
		Clock:   func() time.Time { return time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Store: &stubStore{}})
	require.Error(t, err)
}

func TestServiceViewWrapsStoreFailure(t *testing.T) {
	store := &stubStore{listErr: errors.New("connection reset")}
	svc := newTestService(t, store)

	_, err := svc.View(context.Background(), DefaultViewParams())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStoreFailure))
}

func TestServiceViewRejectsParamsBeforeListing(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store)

	p := DefaultViewParams()
	p.PageSize = 0
	_, err := svc.View(context.Background(), p)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
	assert.Equal(t, 0, store.listCalls)
}

func TestServiceCreateAppliesDefaultsAndRefetches(t *testing.T) {
	store := &stubStore{rows: []models.ERPRecord{newRecord("R-OLD")}}
	svc := newTestService(t, store)

	res, err := svc.Create(context.Background(), CreateRecordInput{RecordNumber: "  R-NEW  "}, DefaultViewParams())
	require.NoError(t, err)
	require.NotNil(t, res.Record)
	require.NotNil(t, res.View)

	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, "R-NEW", res.Record.RecordNumber)
	assert.Equal(t, enums.RecordTypeReturn, res.Record.RecordType)
	assert.Equal(t, enums.RecordStatusPending, res.Record.Status)
	assert.Equal(t, enums.PriorityNormal, res.Record.Priority)
	assert.Equal(t, enums.PaymentStatusUnpaid, res.Record.PaymentStatus)
	assert.Equal(t, "2025-03-14", res.Record.RecordDate.String())
	assert.Equal(t, 0, res.Record.Quantity)
	assert.True(t, res.Record.Amount.IsZero())
	assert.Equal(t, 2, res.View.TotalCount)
}

func TestServiceCreateValidation(t *testing.T) {
	badStatus := enums.RecordStatus("archived")
	negative := -1
	cases := map[string]CreateRecordInput{
		"blank number":        {RecordNumber: "   "},
		"negative quantity":   {RecordNumber: "R-1", Quantity: &negative},
		"unknown status":      {RecordNumber: "R-1", Status: &badStatus},
		"unknown marketplace": {RecordNumber: "R-1", Marketplace: strPtr("amazon")},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			store := &stubStore{}
			svc := newTestService(t, store)
			_, err := svc.Create(context.Background(), input, DefaultViewParams())
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
			assert.Empty(t, store.rows)
			assert.Equal(t, 0, store.listCalls)
		})
	}
}

func TestServiceCreateStoreFailureLeavesSetUntouched(t *testing.T) {
	store := &stubStore{rows: []models.ERPRecord{newRecord("R-1")}, createErr: errors.New("timeout")}
	svc := newTestService(t, store)

	res, err := svc.Create(context.Background(), CreateRecordInput{RecordNumber: "R-2"}, DefaultViewParams())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStoreFailure))
	assert.Len(t, store.rows, 1)
	assert.Equal(t, 0, store.listCalls)
}

func TestServiceCreateDuplicateIsConflict(t *testing.T) {
	store := &stubStore{createErr: errors.New("UNIQUE constraint failed: erp_records.id")}
	svc := newTestService(t, store)

	_, err := svc.Create(context.Background(), CreateRecordInput{RecordNumber: "R-1"}, DefaultViewParams())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestServiceMutationSurvivesRefreshFailure(t *testing.T) {
	store := &stubStore{failList: func(int) error { return errors.New("refresh failed") }}
	svc := newTestService(t, store)

	res, err := svc.Create(context.Background(), CreateRecordInput{RecordNumber: "R-1"}, DefaultViewParams())
	require.NoError(t, err)
	require.NotNil(t, res.Record)
	assert.Nil(t, res.View)
	assert.Len(t, store.rows, 1)
}

func TestServiceUpdate(t *testing.T) {
	record := newRecord("R-1")
	store := &stubStore{rows: []models.ERPRecord{record}}
	svc := newTestService(t, store)

	status := enums.RecordStatusCompleted
	input := UpdateRecordInput{Status: &status, Counterparty: types.NullableString{Valid: true}}
	res, err := svc.Update(context.Background(), record.ID, input, DefaultViewParams())
	require.NoError(t, err)
	require.NotNil(t, res.Record)
	require.NotNil(t, res.View)
	assert.Equal(t, enums.RecordStatusCompleted, res.Record.Status)
	assert.Equal(t, 1, store.listCalls)

	fields := store.updates[record.ID]
	assert.Equal(t, enums.RecordStatusCompleted, fields["status"])
	value, present := fields["counterparty"]
	assert.True(t, present)
	assert.Nil(t, value)
	_, present = fields["manager"]
	assert.False(t, present)
}

func TestServiceUpdateErrors(t *testing.T) {
	record := newRecord("R-1")
	store := &stubStore{rows: []models.ERPRecord{record}}
	svc := newTestService(t, store)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateRecordInput{}, DefaultViewParams())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	blank := " "
	_, err = svc.Update(context.Background(), record.ID, UpdateRecordInput{RecordNumber: &blank}, DefaultViewParams())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Update(context.Background(), record.ID, UpdateRecordInput{
		Marketplace: types.NullableString{Valid: true, Value: strPtr("amazon")},
	}, DefaultViewParams())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	store.updateErr = errors.New("deadlock")
	_, err = svc.Update(context.Background(), record.ID, UpdateRecordInput{}, DefaultViewParams())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStoreFailure))
	assert.Equal(t, 0, store.listCalls)
}

func TestServiceDeleteRequiresConfirmation(t *testing.T) {
	record := newRecord("R-1")
	store := &stubStore{rows: []models.ERPRecord{record}}
	svc := newTestService(t, store)

	_, err := svc.Delete(context.Background(), record.ID, false, DefaultViewParams())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, store.deletes)
	assert.Len(t, store.rows, 1)

	res, err := svc.Delete(context.Background(), record.ID, true, DefaultViewParams())
	require.NoError(t, err)
	require.NotNil(t, res.DeletedID)
	assert.Equal(t, record.ID, *res.DeletedID)
	require.NotNil(t, res.View)
	assert.Equal(t, 0, res.View.TotalCount)
	assert.Equal(t, 1, store.listCalls)
}

func TestServiceDeleteUnknownAndFailure(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store)

	_, err := svc.Delete(context.Background(), uuid.New(), true, DefaultViewParams())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	store.deleteErr = errors.New("broken pipe")
	_, err = svc.Delete(context.Background(), uuid.New(), true, DefaultViewParams())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStoreFailure))
}

func TestServiceExportWritesFilteredRowsAndTotals(t *testing.T) {
	store := &stubStore{rows: []models.ERPRecord{
		newRecord("R-1", func(r *models.ERPRecord) { r.Quantity = 2; r.Amount = decimal.RequireFromString("10.5") }),
		newRecord("R-2", func(r *models.ERPRecord) { r.Quantity = 5; r.Status = enums.RecordStatusCancelled }),
		newRecord("R-3", func(r *models.ERPRecord) { r.Quantity = 3; r.Amount = decimal.RequireFromString("4.5") }),
	}}
	svc := newTestService(t, store)

	p := DefaultViewParams()
	p.StatusFilter = "pending"
	p.SortField = SortRecordNumber
	p.SortDirection = SortDesc
	p.PageSize = 1

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), p, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(defaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Номер", rows[0][0])
	assert.Equal(t, "R-3", rows[1][0])
	assert.Equal(t, "R-1", rows[2][0])
	assert.Equal(t, "Итого", rows[3][0])
	assert.Equal(t, "5", rows[3][quantityColumn-1])
	assert.Equal(t, "15", rows[3][amountColumn-1])
}

func TestServiceExportRejectsBadSort(t *testing.T) {
	svc := newTestService(t, &stubStore{})
	p := DefaultViewParams()
	p.SortField = "colour"
	_, err := svc.Export(context.Background(), p, io.Discard)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidArgument))
}
