package dto

import (
	"net/http"
	"strings"

	"studiodesk/internal/domains/client/model"
	"studiodesk/shared"
	gDto "studiodesk/shared/dto"
)

// Address is a billing address. State is optional everywhere and stored as
// NULL when blank.
type Address struct {
	Street  string `json:"address_street"`
	City    string `json:"address_city"`
	State   string `json:"address_state"`
	Zip     string `json:"address_zip"`
	Country string `json:"address_country"`
}

// IsComplete reports whether the address is full enough to replace the one on
// file: every line present and a non-empty country.
func (a Address) IsComplete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		strings.TrimSpace(a.Zip) != "" &&
		strings.TrimSpace(a.Country) != ""
}

func (a Address) ToFields() map[string]any {
	return map[string]any{
		model.FieldAddressStreet:  a.Street,
		model.FieldAddressCity:    a.City,
		model.FieldAddressState:   shared.NullIfBlank(a.State),
		model.FieldAddressZip:     a.Zip,
		model.FieldAddressCountry: a.Country,
	}
}

type CreateClientRequest struct {
	FirstName      string `json:"first_name"      validate:"required,max=255"`
	LastName       string `json:"last_name"       validate:"required,max=255"`
	Email          string `json:"email"           validate:"required,email,max=255"`
	Phone          string `json:"phone"           validate:"omitempty,max=32"`
	AddressStreet  string `json:"address_street"  validate:"omitempty,max=255"`
	AddressCity    string `json:"address_city"    validate:"omitempty,max=255"`
	AddressState   string `json:"address_state"   validate:"omitempty,max=255"`
	AddressZip     string `json:"address_zip"     validate:"omitempty,max=32"`
	AddressCountry string `json:"address_country" validate:"omitempty,max=255"`
	Timezone       string `json:"timezone"        validate:"omitempty,timezone"`
}

func (c *CreateClientRequest) ToModel(clientID string) model.Client {
	return model.Client{
		ClientID:       clientID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          shared.NullIfBlank(c.Email),
		Phone:          shared.NullIfBlank(c.Phone),
		AddressStreet:  shared.NullIfBlank(c.AddressStreet),
		AddressCity:    shared.NullIfBlank(c.AddressCity),
		AddressState:   shared.NullIfBlank(c.AddressState),
		AddressZip:     shared.NullIfBlank(c.AddressZip),
		AddressCountry: shared.NullIfBlank(c.AddressCountry),
		Timezone:       shared.NullIfBlank(c.Timezone),
	}
}

// EditClientRequest replaces the whole profile; omitted optional fields are
// cleared.
type EditClientRequest CreateClientRequest

func (e *EditClientRequest) ToFields() map[string]any {
	return map[string]any{
		model.FieldFirstName:      e.FirstName,
		model.FieldLastName:       e.LastName,
		model.FieldEmail:          shared.NullIfBlank(e.Email),
		model.FieldPhone:          shared.NullIfBlank(e.Phone),
		model.FieldAddressStreet:  shared.NullIfBlank(e.AddressStreet),
		model.FieldAddressCity:    shared.NullIfBlank(e.AddressCity),
		model.FieldAddressState:   shared.NullIfBlank(e.AddressState),
		model.FieldAddressZip:     shared.NullIfBlank(e.AddressZip),
		model.FieldAddressCountry: shared.NullIfBlank(e.AddressCountry),
		model.FieldTimezone:       shared.NullIfBlank(e.Timezone),
	}
}

type ResolveClientRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name"  validate:"required,max=255"`
}

type ResolveClientResponse struct {
	ClientID string `json:"client_id"`
}

type FindClientQuery struct {
	ClientID  string `json:"client_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Paging gDto.QueryParams `json:"-"`
}

func (q *FindClientQuery) FromRequest(r *http.Request) {
	values := r.URL.Query()

	q.ClientID = values.Get("client_id")
	q.FirstName = values.Get("first_name")
	q.LastName = values.Get("last_name")
	q.Email = values.Get("email")
	q.Phone = values.Get("phone")
	q.Paging.FromRequest(r)
}

// HasIdentity reports whether any name or contact predicate is set.
func (q FindClientQuery) HasIdentity() bool {
	return q.FirstName != "" || q.LastName != "" || q.Email != "" || q.Phone != ""
}

func (q FindClientQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.NewAndGroup()

	filter.
		Add(q.ClientID != "", like(model.FieldID, q.ClientID)).
		Add(q.FirstName != "", like(model.FieldFirstName, q.FirstName)).
		Add(q.LastName != "", like(model.FieldLastName, q.LastName)).
		Add(q.Email != "", like(model.FieldEmail, q.Email)).
		Add(q.Phone != "", gDto.Filter{Field: model.FieldPhone, Value: q.Phone, Operator: gDto.FilterOperatorSuffix, Table: model.TableName})

	return filter
}

func like(field, value string) gDto.Filter {
	return gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorLike, Table: model.TableName}
}

type FoundClient struct {
	ClientID  string `json:"client_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func FoundClientsFromModels(models []model.Client) []FoundClient {
	res := make([]FoundClient, len(models))
	for i, mod := range models {
		res[i] = FoundClient{ClientID: mod.ClientID, FirstName: mod.FirstName, LastName: mod.LastName}
	}

	return res
}

type ClientResponse struct {
	ClientID       string  `json:"client_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	AddressStreet  *string `json:"address_street"`
	AddressCity    *string `json:"address_city"`
	AddressState   *string `json:"address_state"`
	AddressZip     *string `json:"address_zip"`
	AddressCountry *string `json:"address_country"`
	Timezone       *string `json:"timezone"`
	gDto.Metadata
}

func (r *ClientResponse) FromModel(model model.Client) {
	r.ClientID = model.ClientID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Phone = model.Phone
	r.Email = model.Email
	r.AddressStreet = model.AddressStreet
	r.AddressCity = model.AddressCity
	r.AddressState = model.AddressState
	r.AddressZip = model.AddressZip
	r.AddressCountry = model.AddressCountry
	r.Timezone = model.Timezone
	r.Metadata.FromModel(model.Metadata)
}
