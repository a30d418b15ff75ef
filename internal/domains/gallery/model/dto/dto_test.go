package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studiodesk/internal/domains/gallery/model/dto"
)

func TestNewCategory(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{name: "kitchens", label: "Kitchens"},
		{name: "living_rooms", label: "Living Rooms"},
		{name: "twilight-exteriors", label: "Twilight Exteriors"},
		{name: "AERIAL", label: "Aerial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category := dto.NewCategory(tt.name)

			assert.Equal(t, tt.name, category.Value)
			assert.Equal(t, tt.label, category.Label)
		})
	}
}
