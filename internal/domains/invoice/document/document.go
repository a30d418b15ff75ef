// Package document renders invoices for printing and the ledger export.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	clientDto "studiodesk/internal/domains/client/model/dto"
	"studiodesk/internal/domains/invoice/model"
	"studiodesk/internal/domains/invoice/model/dto"
	"studiodesk/shared/constant"
)

const (
	ledgerSheet   = "Invoices"
	displayLayout = "Jan 2, 2006"
	pageMargin    = 15.0
	lineHeight    = 6.0
)

var ledgerHeaders = []string{
	"Invoice #", "Invoice ID", "Client ID", "Booking ID", "Created", "Due",
	"Subtotal", "Tax", "Total", "Paid", "Paid At",
}

// InvoicePDF lays out one invoice on a letter page. Dates are shown in loc,
// the client's own zone.
func InvoicePDF(aggregate dto.InvoiceAggregate, loc *time.Location) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle(fmt.Sprintf("Invoice %d", aggregate.Invoice.InvoiceNumber), true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	invoice := aggregate.Invoice

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Invoice #%d (%s)", invoice.InvoiceNumber, invoice.InvoiceID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, "Issued: "+localDate(invoice.CreatedAt, loc), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, "Due: "+localDate(invoice.DueDate, loc), "", 1, "L", false, 0, "")

	if invoice.PaymentCompleted {
		paid := "Paid"
		if invoice.PaidAt != nil {
			paid += " on " + localDate(*invoice.PaidAt, loc)
		}

		pdf.CellFormat(0, lineHeight, paid, "", 1, "L", false, 0, "")
	}

	pdf.Ln(lineHeight)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineHeight, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, line := range billTo(aggregate.Client) {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(lineHeight)

	widths := []float64{100, 20, 30, 30}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)

	for i, header := range []string{"Description", "Qty", "Unit Price", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}

		pdf.CellFormat(widths[i], 7, header, "B", 0, align, true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)

	for _, item := range aggregate.InvoiceItems {
		amount := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		pdf.CellFormat(widths[0], 7, tr(item.Description), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, money(item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(amount), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)

	labelWidth := widths[0] + widths[1] + widths[2]
	for _, row := range []struct {
		label  string
		amount decimal.Decimal
		bold   bool
	}{
		{label: "Subtotal", amount: invoice.AmountSubtotal},
		{label: "Tax", amount: invoice.AmountTax},
		{label: "Total", amount: invoice.AmountTotal, bold: true},
	} {
		style := ""
		if row.bold {
			style = "B"
		}

		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelWidth, 7, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(row.amount), "T", 1, "R", false, 0, "")
	}

	if invoice.Notes != nil && strings.TrimSpace(*invoice.Notes) != "" {
		pdf.Ln(lineHeight)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, lineHeight, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(*invoice.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// Ledger writes one spreadsheet row per invoice. Amounts are written as text
// so no value passes through a float.
func Ledger(invoices []model.Invoice) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, fmt.Errorf("failed to name ledger sheet: %w", err)
	}

	for i, header := range ledgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(ledgerSheet, cell, header)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(ledgerHeaders), 1)
		_ = file.SetCellStyle(ledgerSheet, "A1", lastHeader, headerStyle)
	}

	for i, invoice := range invoices {
		row := i + 2

		paidAt := ""
		if invoice.PaidAt != nil {
			paidAt = invoice.PaidAt.Format(constant.DateFormat)
		}

		values := []any{
			invoice.InvoiceNumber,
			invoice.InvoiceID,
			invoice.ClientID,
			deref(invoice.BookingID),
			invoice.CreatedAt.Format(constant.DateFormat),
			invoice.DueDate.Format(constant.DateFormat),
			invoice.AmountSubtotal.String(),
			invoice.AmountTax.String(),
			invoice.AmountTotal.String(),
			invoice.PaymentCompleted,
			paidAt,
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = file.SetCellValue(ledgerSheet, cell, value)
		}
	}

	_ = file.SetColWidth(ledgerSheet, "A", "K", 18)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write ledger: %w", err)
	}

	return buf.Bytes(), nil
}

func billTo(client clientDto.ClientResponse) []string {
	lines := []string{strings.TrimSpace(client.FirstName + " " + client.LastName)}

	if street := deref(client.AddressStreet); street != "" {
		lines = append(lines, street)
	}

	locality := strings.TrimSpace(strings.Join(nonEmpty(deref(client.AddressCity), deref(client.AddressState), deref(client.AddressZip)), ", "))
	if locality != "" {
		lines = append(lines, locality)
	}

	for _, extra := range nonEmpty(deref(client.AddressCountry), deref(client.Email), deref(client.Phone)) {
		lines = append(lines, extra)
	}

	return lines
}

func localDate(value string, loc *time.Location) string {
	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return value
	}

	return parsed.In(loc).Format(displayLayout)
}

func money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}

func nonEmpty(values ...string) []string {
	res := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			res = append(res, value)
		}
	}

	return res
}
