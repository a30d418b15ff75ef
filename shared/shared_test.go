package shared_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"studiodesk/shared"
	cacheMocks "studiodesk/shared/cache/mocks"
	"studiodesk/shared/dto"
)

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *int
		wantErr  bool
	}{
		{name: "absent", input: "", expected: nil},
		{name: "whitespace only", input: "  ", expected: nil},
		{name: "year", input: "2024", expected: intPtr(2024)},
		{name: "padded month", input: " 03 ", expected: intPtr(3)},
		{name: "malformed", input: "twenty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := shared.ParseOptionalInt(tt.input, "year")

			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestNullIfBlank(t *testing.T) {
	if shared.NullIfBlank("") != nil {
		t.Error("expected nil for empty string")
	}

	if shared.NullIfBlank("   ") != nil {
		t.Error("expected nil for blank string")
	}

	if got := shared.NullIfBlank("NY"); got == nil || *got != "NY" {
		t.Errorf("expected NY, got %v", got)
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("aB3xY9", "client_id", "main.clients")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "client_id",
				Value:    "aB3xY9",
				Operator: dto.FilterOperatorEq,
				Table:    "main.clients",
			},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("invoice:view", "aB3xY9"); got != "invoice:view:aB3xY9" {
		t.Errorf("unexpected key %q", got)
	}

	if got := shared.BuildCacheKey("gallery:categories"); got != "gallery:categories" {
		t.Errorf("unexpected key %q", got)
	}
}

func intPtr(i int) *int {
	return &i
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	done := make(chan struct{}, 2)

	mockCache.EXPECT().Delete(gomock.Any(), "booking:pending", "booking:view:BKG001").
		DoAndReturn(func(ctx context.Context, _ ...string) error {
			defer func() { done <- struct{}{} }()

			if ctx.Err() != nil {
				t.Error("expected a context detached from the request")
			}

			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	shared.InvalidateCaches(ctx, mockCache, "booking:pending", "booking:view:BKG001")
	cancel()

	mockCache.EXPECT().Delete(gomock.Any(), "invoice:view:INV001").
		DoAndReturn(func(context.Context, ...string) error {
			defer func() { done <- struct{}{} }()

			return errors.New("redis down")
		})
	shared.InvalidateCaches(context.Background(), mockCache, "invoice:view:INV001")

	for range 2 {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("cache invalidation did not run")
		}
	}
}
