package utils

import (
	"bytes"
	"fmt"

	"vastra-backend/models"

	"github.com/phpdave11/gofpdf"
)

// RenderInvoicePDF builds a printable invoice for an order.
func RenderInvoicePDF(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Vastra - Tax Invoice")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Order: %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Tracking: %s", order.TrackingNumber))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Ship to: %s", order.AddressText))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(90, 8, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, item.UnitPrice, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, FormatAmount(LineTotal(item.UnitPrice, item.Quantity)), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(150, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, order.Subtotal, "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "Shipping", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, order.Shipping, "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, order.Total, "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
