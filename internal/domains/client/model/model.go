package model

import "studiodesk/shared/model"

const (
	TableName  = "main.clients"
	EntityName = "client"

	FieldID             = "client_id"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldPhone          = "phone"
	FieldEmail          = "email"
	FieldAddressStreet  = "address_street"
	FieldAddressCity    = "address_city"
	FieldAddressState   = "address_state"
	FieldAddressZip     = "address_zip"
	FieldAddressCountry = "address_country"
	FieldTimezone       = "timezone"
	FieldCreatedAt      = "created_at"
)

type Client struct {
	ClientID       string  `db:"client_id"`
	FirstName      string  `db:"first_name"`
	LastName       string  `db:"last_name"`
	Phone          *string `db:"phone"`
	Email          *string `db:"email"`
	AddressStreet  *string `db:"address_street"`
	AddressCity    *string `db:"address_city"`
	AddressState   *string `db:"address_state"`
	AddressZip     *string `db:"address_zip"`
	AddressCountry *string `db:"address_country"`
	Timezone       *string `db:"timezone"`
	model.Metadata
}
