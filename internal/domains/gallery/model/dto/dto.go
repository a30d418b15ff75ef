package dto

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Category is a photo folder with a display label derived from its name.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func NewCategory(name string) Category {
	label := strings.NewReplacer("_", " ", "-", " ").Replace(name)

	return Category{Value: name, Label: titleCaser.String(label)}
}

func CategoriesFromNames(names []string) []Category {
	res := make([]Category, len(names))
	for i, name := range names {
		res[i] = NewCategory(name)
	}

	return res
}

type Photo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
