package records

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
)

const defaultSheetName = "Records"

// ExportContentType is the MIME type of the workbook written by Export.
const ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportColumn struct {
	header string
	value  func(r *models.ERPRecord) any
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

var exportColumns = []exportColumn{
	{header: "Номер", value: func(r *models.ERPRecord) any { return r.RecordNumber }},
	{header: "Дата", value: func(r *models.ERPRecord) any { return r.RecordDate.String() }},
	{header: "Тип", value: func(r *models.ERPRecord) any { return r.RecordType.Label() }},
	{header: "Статус", value: func(r *models.ERPRecord) any { return r.Status.Label() }},
	{header: "Номер заказа", value: func(r *models.ERPRecord) any { return deref(r.OrderNumber) }},
	{header: "Контрагент", value: func(r *models.ERPRecord) any { return deref(r.Counterparty) }},
	{header: "Маркетплейс", value: func(r *models.ERPRecord) any { return deref(r.Marketplace) }},
	{header: "Товар", value: func(r *models.ERPRecord) any { return deref(r.ProductName) }},
	{header: "Количество", value: func(r *models.ERPRecord) any { return r.Quantity }},
	{header: "Сумма", value: func(r *models.ERPRecord) any { return r.Amount.InexactFloat64() }},
	{header: "Приоритет", value: func(r *models.ERPRecord) any { return r.Priority.Label() }},
	{header: "Оплата", value: func(r *models.ERPRecord) any { return r.PaymentStatus.Label() }},
	{header: "Склад", value: func(r *models.ERPRecord) any { return deref(r.Warehouse) }},
	{header: "Менеджер", value: func(r *models.ERPRecord) any { return deref(r.Manager) }},
}

const (
	quantityColumn = 9
	amountColumn   = 10
)

// Export writes the whole filtered and sorted set as an xlsx workbook followed by
// a totals row. Pagination is ignored. It returns the number of records written.
func (s *service) Export(ctx context.Context, params ViewParams, w io.Writer) (int, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	arranged, err := Arrange(rows, params)
	if err != nil {
		return 0, err
	}

	f, err := buildWorkbook(s.sheetName, arranged)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build export workbook")
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export workbook")
	}

	s.metrics.AddExportedRows(len(arranged))
	s.logg.Info(s.logg.WithField(ctx, "rows", len(arranged)), "records exported")
	return len(arranged), nil
}

func buildWorkbook(sheet string, rows []models.ERPRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, c := range exportColumns {
		if err := setCell(f, sheet, col+1, 1, c.header); err != nil {
			return nil, err
		}
	}

	var total View
	for i := range rows {
		record := &rows[i]
		for col, c := range exportColumns {
			if err := setCell(f, sheet, col+1, i+2, c.value(record)); err != nil {
				return nil, err
			}
		}
		total.TotalQuantity += record.Quantity
		total.TotalAmount = total.TotalAmount.Add(record.Amount)
	}

	totalsRow := len(rows) + 2
	if err := setCell(f, sheet, 1, totalsRow, "Итого"); err != nil {
		return nil, err
	}
	if err := setCell(f, sheet, quantityColumn, totalsRow, total.TotalQuantity); err != nil {
		return nil, err
	}
	if err := setCell(f, sheet, amountColumn, totalsRow, total.TotalAmount.InexactFloat64()); err != nil {
		return nil, err
	}
	return f, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	return f.SetCellValue(sheet, cell, value)
}
