package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"printstock/internal/domain"
	"printstock/internal/port"
)

// PurchaseOrderService manages purchase order drafts produced by the
// reconciliation handoff.
type PurchaseOrderService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error)
	// ExportXLSX renders a purchase order as a spreadsheet for sending to
	// the supplier.
	ExportXLSX(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type purchaseOrderService struct {
	poRepo port.PurchaseOrderRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService implementation.
func NewPurchaseOrderService(poRepo port.PurchaseOrderRepository) PurchaseOrderService {
	return &purchaseOrderService{poRepo: poRepo}
}

func (s *purchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	return s.poRepo.GetByID(ctx, id)
}

func (s *purchaseOrderService) List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error) {
	return s.poRepo.List(ctx, offset, limit)
}

func (s *purchaseOrderService) ExportXLSX(ctx context.Context, id uuid.UUID) ([]byte, error) {
	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Purchase Order"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	header := [][]interface{}{
		{"Supplier", po.Supplier},
		{"Invoice number", po.InvoiceNumber},
		{"Expected delivery", po.ExpectedDelivery},
		{"Status", string(po.Status)},
		{"Notes", po.Notes},
	}
	for i, row := range header {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing header row: %w", err)
		}
	}

	columns := []interface{}{"#", "Kind", "Description", "Quantity", "Unit cost", "Line total"}
	if err := f.SetSheetRow(sheet, "A7", &columns); err != nil {
		return nil, fmt.Errorf("writing column row: %w", err)
	}

	for i, line := range po.Lines {
		total := line.UnitCost.Mul(decimalFromInt(line.Quantity))
		row := []interface{}{
			line.Position + 1,
			string(line.Kind),
			line.Description,
			line.Quantity,
			line.UnitCost.String(),
			total.String(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, 8+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing line row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
