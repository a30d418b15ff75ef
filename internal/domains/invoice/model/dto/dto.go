package dto

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	clientDto "studiodesk/internal/domains/client/model/dto"
	"studiodesk/internal/domains/invoice/model"
	"studiodesk/shared"
	"studiodesk/shared/constant"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/failure"
	"studiodesk/shared/timezone"
)

// SelectOption is the {value, label} pair sent by the state and country pickers.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ItemRequest struct {
	Description string          `json:"description" validate:"required,max=1000"`
	Quantity    int             `json:"quantity"    validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"money"`
}

// BillingAddress is the optional address block of an invoice form.
type BillingAddress struct {
	AddressStreet  *string       `json:"address_street"  validate:"omitempty,max=255"`
	AddressCity    *string       `json:"address_city"    validate:"omitempty,max=255"`
	AddressState   *SelectOption `json:"address_state"`
	AddressZip     *string       `json:"address_zip"     validate:"omitempty,max=32"`
	AddressCountry SelectOption  `json:"address_country"`
}

func (b BillingAddress) ToAddress() clientDto.Address {
	address := clientDto.Address{Country: b.AddressCountry.Value}

	if b.AddressStreet != nil {
		address.Street = *b.AddressStreet
	}

	if b.AddressCity != nil {
		address.City = *b.AddressCity
	}

	if b.AddressState != nil {
		address.State = b.AddressState.Value
	}

	if b.AddressZip != nil {
		address.Zip = *b.AddressZip
	}

	return address
}

type CreateInvoiceRequest struct {
	ClientID      string           `json:"client_id"      validate:"omitempty,identifier"`
	BookingID     string           `json:"booking_id"     validate:"omitempty,identifier"`
	Items         []ItemRequest    `json:"invoice_items"  validate:"dive"`
	AmountTax     *decimal.Decimal `json:"amount_tax"     validate:"omitempty,money"`
	PaymentMethod *int16           `json:"payment_method" validate:"omitempty,min=0"`
	Notes         *string          `json:"notes"          validate:"omitempty,max=4000"`
	DueDate       time.Time        `json:"due_date"       validate:"required"`
	BillingAddress
}

func (c *CreateInvoiceRequest) ToModel(invoiceID, clientID string, totals Totals) model.Invoice {
	return model.Invoice{
		InvoiceID:      invoiceID,
		ClientID:       clientID,
		BookingID:      shared.NullIfBlank(c.BookingID),
		AmountSubtotal: totals.Subtotal,
		AmountTax:      totals.Tax,
		AmountTotal:    totals.Total,
		PaymentMethod:  c.PaymentMethod,
		Notes:          c.Notes,
		DueDate:        c.DueDate,
	}
}

// EditInvoiceRequest replaces the header fields and the whole item list.
type EditInvoiceRequest struct {
	Items            []ItemRequest    `json:"invoice_items"     validate:"dive"`
	AmountTax        *decimal.Decimal `json:"amount_tax"        validate:"omitempty,money"`
	PaymentMethod    *int16           `json:"payment_method"    validate:"omitempty,min=0"`
	Notes            *string          `json:"notes"             validate:"omitempty,max=4000"`
	DueDate          time.Time        `json:"due_date"          validate:"required"`
	PaymentCompleted bool             `json:"payment_completed"`
	PaidAt           *time.Time       `json:"paid_at"`
	BillingAddress
}

// ToFields builds the header update. paid_at is cleared whenever the invoice
// is not marked paid, whatever the request carried.
func (e *EditInvoiceRequest) ToFields(totals Totals) map[string]any {
	var paidAt *time.Time
	if e.PaymentCompleted {
		paidAt = e.PaidAt
	}

	return map[string]any{
		model.FieldAmountSubtotal:   totals.Subtotal,
		model.FieldAmountTax:        totals.Tax,
		model.FieldAmountTotal:      totals.Total,
		model.FieldPaymentMethod:    e.PaymentMethod,
		model.FieldNotes:            e.Notes,
		model.FieldDueDate:          e.DueDate,
		model.FieldPaymentCompleted: e.PaymentCompleted,
		model.FieldPaidAt:           paidAt,
	}
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums unit_price * quantity exactly. Tax is taken as given,
// zero when absent.
func ComputeTotals(items []ItemRequest, tax *decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	totals := Totals{Subtotal: subtotal, Tax: decimal.Zero}
	if tax != nil {
		totals.Tax = *tax
	}

	totals.Total = totals.Subtotal.Add(totals.Tax)

	return totals
}

func ItemToModel(item ItemRequest, invoiceID, itemID string) model.Item {
	return model.Item{
		InvoiceItemID: itemID,
		InvoiceID:     invoiceID,
		Description:   item.Description,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
	}
}

// FindInvoiceQuery holds raw query string values. Client name, email and
// phone resolve to a client id before invoices are searched.
type FindInvoiceQuery struct {
	ClientFirstName string `json:"client_first_name"`
	ClientLastName  string `json:"client_last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Year            string `json:"year"`
	Month           string `json:"month"`
	InvoiceNumber   string `json:"invoice_number"`
	InvoiceID       string `json:"invoice_id"`
	ClientID        string `json:"client_id"`

	Paging gDto.QueryParams `json:"-"`
}

func (q *FindInvoiceQuery) FromRequest(r *http.Request) {
	values := r.URL.Query()

	q.ClientFirstName = values.Get("client_first_name")
	q.ClientLastName = values.Get("client_last_name")
	q.Email = values.Get("email")
	q.Phone = values.Get("phone")
	q.Year = values.Get("year")
	q.Month = values.Get("month")
	q.InvoiceNumber = values.Get("invoice_number")
	q.InvoiceID = values.Get("invoice_id")
	q.ClientID = values.Get("client_id")
	q.Paging.FromRequest(r)
}

func (q FindInvoiceQuery) ClientQuery() clientDto.FindClientQuery {
	return clientDto.FindClientQuery{
		FirstName: q.ClientFirstName,
		LastName:  q.ClientLastName,
		Email:     q.Email,
		Phone:     q.Phone,
	}
}

// NeedsClientLookup reports whether a client must be resolved by identity
// before searching.
func (q FindInvoiceQuery) NeedsClientLookup() bool {
	return q.ClientID == "" && q.ClientQuery().HasIdentity()
}

// ToFilter builds the invoice predicates for an already resolved client id.
func (q FindInvoiceQuery) ToFilter(clientID string) (gDto.FilterGroup, error) {
	filter := gDto.NewAndGroup()

	number, err := shared.ParseOptionalInt(q.InvoiceNumber, "invoice_number")
	if err != nil {
		return filter, failure.BadRequest(err) // nolint:wrapcheck
	}

	filter.
		Add(clientID != "", gDto.Filter{Field: model.FieldClientID, Value: clientID, Operator: gDto.FilterOperatorEq, Table: model.TableName}).
		Add(q.InvoiceID != "", gDto.Filter{Field: model.FieldID, Value: q.InvoiceID, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	if number != nil {
		filter.Add(true, gDto.Filter{Field: model.FieldInvoiceNumber, Value: *number, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	period, err := PeriodQuery{Year: q.Year, Month: q.Month}.Filters()
	if err != nil {
		return filter, err
	}

	filter.Filters = append(filter.Filters, period.Filters...)

	return filter, nil
}

// PeriodQuery narrows invoices by creation year and, within a year, month.
type PeriodQuery struct {
	Year  string `json:"year"`
	Month string `json:"month"`
}

func (p PeriodQuery) Filters() (gDto.FilterGroup, error) {
	filter := gDto.NewAndGroup()

	year, err := shared.ParseOptionalInt(p.Year, "year")
	if err != nil {
		return filter, failure.BadRequest(err) // nolint:wrapcheck
	}

	month, err := shared.ParseOptionalInt(p.Month, "month")
	if err != nil {
		return filter, failure.BadRequest(err) // nolint:wrapcheck
	}

	if month != nil && (*month < 1 || *month > 12) {
		return filter, failure.BadRequestFromString("month must be between 1 and 12") // nolint:wrapcheck
	}

	if year == nil {
		return filter, nil
	}

	filter.Add(true, gDto.Filter{ArgName: "created_year", Field: model.FieldCreatedAt, Value: *year, Operator: gDto.FilterOperatorYear, Table: model.TableName})

	if month != nil {
		filter.Add(true, gDto.Filter{ArgName: "created_month", Field: model.FieldCreatedAt, Value: *month, Operator: gDto.FilterOperatorMonth, Table: model.TableName})
	}

	return filter, nil
}

type FoundInvoice struct {
	InvoiceNumber int64  `json:"invoice_number"`
	InvoiceID     string `json:"invoice_id"`
}

func FoundInvoicesFromModels(models []model.Invoice) []FoundInvoice {
	res := make([]FoundInvoice, len(models))
	for i, mod := range models {
		res[i] = FoundInvoice{InvoiceNumber: mod.InvoiceNumber, InvoiceID: mod.InvoiceID}
	}

	return res
}

type InvoiceResponse struct {
	InvoiceID        string          `json:"invoice_id"`
	InvoiceNumber    int64           `json:"invoice_number"`
	ClientID         string          `json:"client_id"`
	BookingID        *string         `json:"booking_id"`
	AmountSubtotal   decimal.Decimal `json:"amount_subtotal"`
	AmountTax        decimal.Decimal `json:"amount_tax"`
	AmountTotal      decimal.Decimal `json:"amount_total"`
	PaymentMethod    *int16          `json:"payment_method"`
	Notes            *string         `json:"notes"`
	DueDate          string          `json:"due_date"`
	PaymentCompleted bool            `json:"payment_completed"`
	PaidAt           *string         `json:"paid_at"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.InvoiceID = model.InvoiceID
	r.InvoiceNumber = model.InvoiceNumber
	r.ClientID = model.ClientID
	r.BookingID = model.BookingID
	r.AmountSubtotal = model.AmountSubtotal
	r.AmountTax = model.AmountTax
	r.AmountTotal = model.AmountTotal
	r.PaymentMethod = model.PaymentMethod
	r.Notes = model.Notes
	r.DueDate = timezone.Format(model.DueDate, constant.DateFormat)
	r.PaymentCompleted = model.PaymentCompleted

	if model.PaidAt != nil {
		paidAt := timezone.Format(*model.PaidAt, constant.DateFormat)
		r.PaidAt = &paidAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type ItemResponse struct {
	InvoiceItemID string          `json:"invoice_item_id"`
	InvoiceID     string          `json:"invoice_id"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

func ItemsFromModels(models []model.Item) []ItemResponse {
	res := make([]ItemResponse, len(models))
	for i, mod := range models {
		res[i] = ItemResponse{
			InvoiceItemID: mod.InvoiceItemID,
			InvoiceID:     mod.InvoiceID,
			Description:   mod.Description,
			Quantity:      mod.Quantity,
			UnitPrice:     mod.UnitPrice,
		}
	}

	return res
}

// InvoiceAggregate is an invoice with its items and owning client.
type InvoiceAggregate struct {
	Invoice      InvoiceResponse          `json:"invoice"`
	InvoiceItems []ItemResponse           `json:"invoice_items"`
	Client       clientDto.ClientResponse `json:"client"`
}

// Document is a rendered file ready to be sent to the caller.
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
	ArchiveURL  string
}
