// Package export writes list-screen data to spreadsheet files.
package export

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"agrodesk/internal/domain"
)

var registerHeader = []string{
	"Reference", "Counterparty", "Issue Date", "Delivery Date", "Status",
	"Net Weight", "Subtotal", "Tax", "Total",
}

// PurchaseOrderRegister writes the purchase order register as an xlsx
// workbook. Amounts are formatted to two decimal places for display; the net
// weight column sums the per-lot net weights that have both measurements
// recorded.
func PurchaseOrderRegister(orders []domain.PurchaseOrder, customerNames map[uuid.UUID]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Purchase Orders"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("export.PurchaseOrderRegister: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export.PurchaseOrderRegister: %w", err)
	}

	for col, h := range registerHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("export.PurchaseOrderRegister header: %w", err)
		}
	}

	for row, po := range orders {
		values := []interface{}{
			po.ReferenceNumber,
			customerNames[po.CustomerID],
			po.IssueDate.Format("2006-01-02"),
			po.DeliveryDate.Format("2006-01-02"),
			string(po.Status),
			netWeightOf(po.Items),
			po.Totals.Subtotal.StringFixed(2),
			po.Totals.Tax.StringFixed(2),
			po.Totals.Total.StringFixed(2),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("export.PurchaseOrderRegister row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.PurchaseOrderRegister write: %w", err)
	}
	return buf.Bytes(), nil
}

func netWeightOf(items []domain.LineItem) string {
	var sum decimal.Decimal
	found := false
	for _, li := range items {
		if nw := li.NetWeight(); nw.Valid {
			sum = sum.Add(nw.Decimal)
			found = true
		}
	}
	if !found {
		return ""
	}
	return sum.StringFixed(2)
}
