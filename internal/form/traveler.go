package form

import (
	"net/url"

	"github.com/travelxplore/site/internal/domain"
)

// TravelerInput is a validated traveler submission.
type TravelerInput struct {
	Name        string `form:"name" validate:"required,max=100"`
	Email       string `form:"email" validate:"required,email,max=254"`
	Phone       string `form:"phone" validate:"required,max=15"`
	Destination string `form:"destination" validate:"required,max=100"`
}

// ParseTraveler validates a traveler form.
func ParseTraveler(v url.Values) (TravelerInput, Errors) {
	in := TravelerInput{
		Name:        value(v, "name"),
		Email:       value(v, "email"),
		Phone:       value(v, "phone"),
		Destination: value(v, "destination"),
	}
	return in, check(in)
}

// Apply copies the input onto t, leaving identity and ownership untouched.
func (in TravelerInput) Apply(t domain.Traveler) domain.Traveler {
	t.Name = in.Name
	t.Email = in.Email
	t.Phone = in.Phone
	t.Destination = in.Destination
	return t
}

// TravelerValues pre-fills the edit form.
func TravelerValues(t domain.Traveler) url.Values {
	return url.Values{
		"name":        {t.Name},
		"email":       {t.Email},
		"phone":       {t.Phone},
		"destination": {t.Destination},
	}
}
