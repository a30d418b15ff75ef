package dto

import (
	"net/http"

	"github.com/lib/pq"

	"studiodesk/internal/domains/booking/model"
	"studiodesk/shared"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/failure"
)

// CategoryOption is the {value, label} pair a multi-select sends.
type CategoryOption struct {
	Value string `json:"value" validate:"required,max=64"`
	Label string `json:"label" validate:"omitempty,max=128"`
}

type CreateBookingRequest struct {
	FirstName      string           `json:"first_name"      validate:"required,max=255"`
	LastName       string           `json:"last_name"       validate:"required,max=255"`
	Phone          string           `json:"phone"           validate:"omitempty,max=32"`
	Email          string           `json:"email"           validate:"omitempty,email,max=255"`
	Categories     []CategoryOption `json:"categories"      validate:"omitempty,max=32,dive"`
	Comments       *string          `json:"comments"        validate:"omitempty,max=4000"`
	Timezone       string           `json:"timezone"        validate:"omitempty,timezone"`
	TurnstileToken string           `json:"turnstile_token"`
}

// CategoryValues flattens the selected options to their values.
func (c *CreateBookingRequest) CategoryValues() pq.StringArray {
	categories := make(pq.StringArray, 0, len(c.Categories))
	for _, category := range c.Categories {
		categories = append(categories, category.Value)
	}

	return categories
}

// ToModel stores missing comments as "".
func (c *CreateBookingRequest) ToModel(bookingID string) model.Booking {
	comments := ""
	if c.Comments != nil {
		comments = *c.Comments
	}

	return model.Booking{
		BookingID:  bookingID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      shared.NullIfBlank(c.Phone),
		Email:      shared.NullIfBlank(c.Email),
		Categories: c.CategoryValues(),
		Comments:   comments,
		Completed:  false,
		Timezone:   shared.NullIfBlank(c.Timezone),
	}
}

type ChangeCompletionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// FindBookingQuery holds the raw query string values; numbers are parsed in
// ToFilter so a malformed value can be reported.
type FindBookingQuery struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BookingNumber string `json:"booking_number"`
	BookingID     string `json:"booking_id"`
	Year          string `json:"year"`
	Month         string `json:"month"`

	Paging gDto.QueryParams `json:"-"`
}

func (q *FindBookingQuery) FromRequest(r *http.Request) {
	values := r.URL.Query()

	q.FirstName = values.Get("first_name")
	q.LastName = values.Get("last_name")
	q.Email = values.Get("email")
	q.Phone = values.Get("phone")
	q.BookingNumber = values.Get("booking_number")
	q.BookingID = values.Get("booking_id")
	q.Year = values.Get("year")
	q.Month = values.Get("month")
	q.Paging.FromRequest(r)
}

// ToFilter ANDs every present predicate. Month narrows the result only when a
// year is given too.
func (q FindBookingQuery) ToFilter() (gDto.FilterGroup, error) {
	filter := gDto.NewAndGroup()

	number, err := shared.ParseOptionalInt(q.BookingNumber, "booking_number")
	if err != nil {
		return filter, failure.BadRequest(err) // nolint:wrapcheck
	}

	year, err := shared.ParseOptionalInt(q.Year, "year")
	if err != nil {
		return filter, failure.BadRequest(err) // nolint:wrapcheck
	}

	month, err := shared.ParseOptionalInt(q.Month, "month")
	if err != nil {
		return filter, failure.BadRequest(err) // nolint:wrapcheck
	}

	filter.
		Add(q.FirstName != "", like(model.FieldFirstName, q.FirstName)).
		Add(q.LastName != "", like(model.FieldLastName, q.LastName)).
		Add(q.Email != "", like(model.FieldEmail, q.Email)).
		Add(q.Phone != "", gDto.Filter{Field: model.FieldPhone, Value: q.Phone, Operator: gDto.FilterOperatorSuffix, Table: model.TableName}).
		Add(q.BookingID != "", like(model.FieldID, q.BookingID))

	if number != nil {
		filter.Add(true, gDto.Filter{Field: model.FieldBookingNumber, Value: *number, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if year != nil {
		filter.Add(true, gDto.Filter{ArgName: "created_year", Field: model.FieldCreatedAt, Value: *year, Operator: gDto.FilterOperatorYear, Table: model.TableName})

		if month != nil {
			filter.Add(true, gDto.Filter{ArgName: "created_month", Field: model.FieldCreatedAt, Value: *month, Operator: gDto.FilterOperatorMonth, Table: model.TableName})
		}
	}

	return filter, nil
}

func like(field, value string) gDto.Filter {
	return gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorLike, Table: model.TableName}
}

type FoundBooking struct {
	BookingNumber int64  `json:"booking_number"`
	BookingID     string `json:"booking_id"`
}

func FoundBookingsFromModels(models []model.Booking) []FoundBooking {
	res := make([]FoundBooking, len(models))
	for i, mod := range models {
		res[i] = FoundBooking{BookingNumber: mod.BookingNumber, BookingID: mod.BookingID}
	}

	return res
}

type BookingResponse struct {
	BookingID     string   `json:"booking_id"`
	BookingNumber int64    `json:"booking_number"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	Categories    []string `json:"categories"`
	Comments      string   `json:"comments"`
	Completed     bool     `json:"completed"`
	Timezone      *string  `json:"timezone"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.BookingID = model.BookingID
	r.BookingNumber = model.BookingNumber
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Phone = model.Phone
	r.Email = model.Email
	r.Categories = []string(model.Categories)
	if r.Categories == nil {
		r.Categories = []string{}
	}
	r.Comments = model.Comments
	r.Completed = model.Completed
	r.Timezone = model.Timezone
	r.Metadata.FromModel(model.Metadata)
}

func BookingsFromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
