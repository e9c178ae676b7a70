package form

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/travelxplore/site/internal/domain"
)

// Price column is NUMERIC(10,2).
const (
	priceMaxDigits = 10
	pricePlaces    = 2
)

// DestinationInput is a validated catalog entry.
type DestinationInput struct {
	Name         string `form:"name" validate:"required,max=200"`
	Country      string `form:"country" validate:"required,max=100"`
	Description  string `form:"description" validate:"required"`
	Category     string `form:"category" validate:"required,oneof=beaches mountains cities nature"`
	ImageURL     string `form:"image_url" validate:"required,http_url,max=200"`
	Highlights   string `form:"highlights" validate:"required"`
	PricePerDay  decimal.Decimal
	DurationDays int
	IsFeatured   bool
}

// ParseDestination validates a destination form.
func ParseDestination(v url.Values) (DestinationInput, Errors) {
	in := DestinationInput{
		Name:        value(v, "name"),
		Country:     value(v, "country"),
		Description: value(v, "description"),
		Category:    value(v, "category"),
		ImageURL:    value(v, "image_url"),
		Highlights:  value(v, "highlights"),
		IsFeatured:  truthy(v.Get("is_featured")),
	}
	errs := check(in)

	if price, msg := parsePrice(value(v, "price_per_day")); msg != "" {
		errs.Add("price_per_day", msg)
	} else {
		in.PricePerDay = price
	}
	if days, msg := parseDuration(value(v, "duration_days")); msg != "" {
		errs.Add("duration_days", msg)
	} else {
		in.DurationDays = days
	}

	return in, errs
}

func parsePrice(raw string) (decimal.Decimal, string) {
	if raw == "" {
		return decimal.Zero, "This field is required."
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, "Enter a number."
	}
	if d.IsNegative() {
		return decimal.Zero, "Ensure this value is greater than or equal to 0."
	}
	if !d.Equal(d.Round(pricePlaces)) {
		return decimal.Zero, "Ensure that there are no more than 2 decimal places."
	}
	if len(d.Truncate(0).String()) > priceMaxDigits-pricePlaces {
		return decimal.Zero, "Ensure that there are no more than 10 digits in total."
	}
	return d.Round(pricePlaces), ""
}

func parseDuration(raw string) (int, string) {
	if raw == "" {
		return 0, "This field is required."
	}
	// duration_days is an INTEGER column.
	n, err := strconv.ParseInt(raw, 10, 32)
	switch {
	case errors.Is(err, strconv.ErrRange) && n > 0:
		return 0, "Ensure this value is less than or equal to 2147483647."
	case errors.Is(err, strconv.ErrRange):
		return 0, "Ensure this value is greater than or equal to 1."
	case err != nil:
		return 0, "Enter a whole number."
	case n < 1:
		return 0, "Ensure this value is greater than or equal to 1."
	}
	return int(n), ""
}

// Apply copies the input onto d, leaving identity, creator and timestamps untouched.
func (in DestinationInput) Apply(d domain.Destination) domain.Destination {
	d.Name = in.Name
	d.Country = in.Country
	d.Description = in.Description
	d.Category = domain.Category(in.Category)
	d.ImageURL = in.ImageURL
	d.PricePerDay = in.PricePerDay
	d.DurationDays = in.DurationDays
	d.Highlights = in.Highlights
	d.IsFeatured = in.IsFeatured
	return d
}

// DestinationValues pre-fills the edit form.
func DestinationValues(d domain.Destination) url.Values {
	v := url.Values{
		"name":          {d.Name},
		"country":       {d.Country},
		"description":   {d.Description},
		"category":      {string(d.Category)},
		"image_url":     {d.ImageURL},
		"price_per_day": {d.PricePerDay.StringFixed(pricePlaces)},
		"duration_days": {strconv.Itoa(d.DurationDays)},
		"highlights":    {d.Highlights},
	}
	if d.IsFeatured {
		v.Set("is_featured", "on")
	}
	return v
}
