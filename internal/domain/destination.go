package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a destination for the gallery and admin list.
type Category string

const (
	CategoryBeaches   Category = "beaches"
	CategoryMountains Category = "mountains"
	CategoryCities    Category = "cities"
	CategoryNature    Category = "nature"
)

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{CategoryBeaches, CategoryMountains, CategoryCities, CategoryNature}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBeaches, CategoryMountains, CategoryCities, CategoryNature:
		return true
	}
	return false
}

// Label is the human-readable name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryBeaches:
		return "Beaches"
	case CategoryMountains:
		return "Mountains"
	case CategoryCities:
		return "Cities"
	case CategoryNature:
		return "Nature"
	}
	return string(c)
}

// FeaturedLimit is the number of featured destinations shown on the home page.
const FeaturedLimit = 8

// Destination is a catalog entry curated by admins and shown to everyone.
type Destination struct {
	ID           int64
	Name         string
	Country      string
	Description  string
	Category     Category
	ImageURL     string
	PricePerDay  decimal.Decimal
	DurationDays int
	Highlights   string // comma-separated
	IsFeatured   bool
	CreatedBy    *int64 // nil once the creating admin is deleted
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HighlightList splits Highlights on commas, dropping blank entries.
func (d Destination) HighlightList() []string {
	var out []string
	for _, h := range strings.Split(d.Highlights, ",") {
		if t := strings.TrimSpace(h); t != "" {
			out = append(out, t)
		}
	}
	return out
}
