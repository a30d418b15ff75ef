package model

import (
	"time"

	"github.com/shopspring/decimal"

	"studiodesk/shared/model"
)

const (
	TableName  = "main.invoices"
	EntityName = "invoice"

	FieldID               = "invoice_id"
	FieldInvoiceNumber    = "invoice_number"
	FieldClientID         = "client_id"
	FieldBookingID        = "booking_id"
	FieldAmountSubtotal   = "amount_subtotal"
	FieldAmountTax        = "amount_tax"
	FieldAmountTotal      = "amount_total"
	FieldPaymentMethod    = "payment_method"
	FieldNotes            = "notes"
	FieldDueDate          = "due_date"
	FieldPaymentCompleted = "payment_completed"
	FieldPaidAt           = "paid_at"
	FieldCreatedAt        = "created_at"
)

const (
	ItemTableName  = "main.invoice_items"
	ItemEntityName = "invoice_item"

	ItemFieldID          = "invoice_item_id"
	ItemFieldInvoiceID   = "invoice_id"
	ItemFieldDescription = "description"
	ItemFieldQuantity    = "quantity"
	ItemFieldUnitPrice   = "unit_price"
)

// Invoice is the header row. PaidAt is non-null only while PaymentCompleted
// is true.
type Invoice struct {
	InvoiceID        string          `db:"invoice_id"`
	InvoiceNumber    int64           `db:"invoice_number" generated:"true"`
	ClientID         string          `db:"client_id"`
	BookingID        *string         `db:"booking_id"`
	AmountSubtotal   decimal.Decimal `db:"amount_subtotal"`
	AmountTax        decimal.Decimal `db:"amount_tax"`
	AmountTotal      decimal.Decimal `db:"amount_total"`
	PaymentMethod    *int16          `db:"payment_method"`
	Notes            *string         `db:"notes"`
	DueDate          time.Time       `db:"due_date"`
	PaymentCompleted bool            `db:"payment_completed"`
	PaidAt           *time.Time      `db:"paid_at"`
	model.Metadata
}

// Item is a line of an invoice. Items are never edited in place: an invoice
// edit deletes them all and inserts the new set.
type Item struct {
	InvoiceItemID string          `db:"invoice_item_id"`
	InvoiceID     string          `db:"invoice_id"`
	Description   string          `db:"description"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
}
