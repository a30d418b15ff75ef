package model

import (
	"github.com/lib/pq"

	"studiodesk/shared/model"
)

const (
	TableName  = "main.booking_requests"
	EntityName = "booking"

	FieldID            = "booking_id"
	FieldBookingNumber = "booking_number"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldCategories    = "categories"
	FieldComments      = "comments"
	FieldCompleted     = "completed"
	FieldTimezone      = "timezone"
	FieldCreatedAt     = "created_at"
)

// Booking is a request submitted through the public intake form. Only the
// completed flag changes after insert.
type Booking struct {
	BookingID     string         `db:"booking_id"`
	BookingNumber int64          `db:"booking_number" generated:"true"`
	FirstName     string         `db:"first_name"`
	LastName      string         `db:"last_name"`
	Phone         *string        `db:"phone"`
	Email         *string        `db:"email"`
	Categories    pq.StringArray `db:"categories"`
	Comments      string         `db:"comments"`
	Completed     bool           `db:"completed"`
	Timezone      *string        `db:"timezone"`
	model.Metadata
}
