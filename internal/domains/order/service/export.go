package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/pkg/logger"
)

const (
	ordersSheet = "Orders"
	itemsSheet  = "Items"
)

// ExportOrders builds a workbook with one sheet of orders and one of their items.
func (s *orderService) ExportOrders(ctx context.Context, status *model.Status) (*excelize.File, error) {
	// 1. Collect every page
	var orders []model.Order
	for page := 1; ; page++ {
		batch, total, err := s.repo.List(ctx, model.ListOrdersRequest{
			Status: status,
			Page:   page,
			Limit:  model.MaxListLimit,
		})
		if err != nil {
			logger.Error("Failed to list orders for export", err)
			return nil, apperr.Persistence(model.ErrCodeExportFailed, "failed to export orders", err)
		}
		orders = append(orders, batch...)
		if len(batch) == 0 || len(orders) >= total {
			break
		}
	}

	// 2. Build workbook
	f, err := buildOrdersExcelFile(orders)
	if err != nil {
		return nil, apperr.Persistence(model.ErrCodeExportFailed, "failed to build export", err)
	}

	logger.Info("Orders exported", map[string]interface{}{
		"orders": len(orders),
	})
	return f, nil
}

func buildOrdersExcelFile(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	orderHeaders := []string{
		"Order ID", "Created At", "Status", "Customer", "Phone",
		"Email", "Address", "Comment", "Items", "Total",
	}
	itemHeaders := []string{
		"Order ID", "Product ID", "Name", "Memory", "Color",
		"Quantity", "Price", "Subtotal",
	}
	if err := writeHeader(f, ordersSheet, orderHeaders, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHeader(f, itemsSheet, itemHeaders, headerStyle); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, o := range orders {
		comment := ""
		if o.Comment != nil {
			comment = *o.Comment
		}
		row := []interface{}{
			o.ID.String(),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
			o.Status.Label(),
			o.CustomerName,
			o.CustomerPhone,
			o.CustomerEmail,
			o.CustomerAddress,
			comment,
			o.ItemCount(),
			o.TotalPrice.InexactFloat64(),
		}
		if err := writeRow(f, ordersSheet, i+2, row); err != nil {
			return nil, err
		}

		for _, it := range o.Items {
			row := []interface{}{
				o.ID.String(),
				it.ProductID,
				it.Name,
				it.Memory,
				it.Color,
				it.Quantity,
				it.Price.InexactFloat64(),
				it.Subtotal.InexactFloat64(),
			}
			if err := writeRow(f, itemsSheet, itemRow, row); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	return f, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
