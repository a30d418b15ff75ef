package validator_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"studiodesk/shared/validator"
)

type intakeStruct struct {
	FirstName string `validate:"required" json:"first_name"`
	Email     string `validate:"required,email" json:"email"`
	Quantity  int    `validate:"gte=1,lte=1000" json:"quantity"`
	Timezone  string `validate:"omitempty,timezone" json:"timezone"`
}

type moneyStruct struct {
	ClientID  string          `validate:"omitempty,identifier" json:"client_id"`
	UnitPrice decimal.Decimal `validate:"money" json:"unit_price"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        intakeStruct
		expectError bool
	}{
		{
			name:        "valid struct",
			data:        intakeStruct{FirstName: "Ada", Email: "ada@example.com", Quantity: 2, Timezone: "America/Chicago"},
			expectError: false,
		},
		{
			name:        "missing required field",
			data:        intakeStruct{Email: "ada@example.com", Quantity: 2},
			expectError: true,
		},
		{
			name:        "invalid email",
			data:        intakeStruct{FirstName: "Ada", Email: "nope", Quantity: 2},
			expectError: true,
		},
		{
			name:        "quantity out of range",
			data:        intakeStruct{FirstName: "Ada", Email: "ada@example.com", Quantity: 0},
			expectError: true,
		},
		{
			name:        "unknown timezone",
			data:        intakeStruct{FirstName: "Ada", Email: "ada@example.com", Quantity: 1, Timezone: "Mars/Olympus"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestCustomValidations(t *testing.T) {
	tests := []struct {
		name        string
		data        moneyStruct
		expectError bool
	}{
		{name: "valid id and price", data: moneyStruct{ClientID: "aB3xY9", UnitPrice: decimal.RequireFromString("10.005")}},
		{name: "empty id is allowed", data: moneyStruct{UnitPrice: decimal.Zero}},
		{name: "short id", data: moneyStruct{ClientID: "abc", UnitPrice: decimal.Zero}, expectError: true},
		{name: "id with symbols", data: moneyStruct{ClientID: "ab-c12", UnitPrice: decimal.Zero}, expectError: true},
		{name: "negative price", data: moneyStruct{UnitPrice: decimal.RequireFromString("-1")}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid identifier", field: "Zz09aA", tag: "identifier"},
		{name: "invalid identifier", field: "Zz09aA1", tag: "identifier", expectError: true},
		{name: "valid oneof", field: "admin", tag: "oneof=user admin guest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{name: "valid JSON", jsonBody: `{"first_name":"Ada","email":"ada@example.com","quantity":3}`},
		{name: "invalid email", jsonBody: `{"first_name":"Ada","email":"x","quantity":3}`, expectError: true},
		{name: "malformed JSON", jsonBody: `{"first_name":"Ada","email":}`, expectError: true},
		{name: "empty JSON", jsonBody: `{}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data intakeStruct
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := validator.ValidateStruct(&intakeStruct{Email: "ada@example.com", Quantity: 1})
	if err == nil {
		t.Fatal("expected validation error for missing first name")
	}

	if err.Error() != "first_name is required" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
