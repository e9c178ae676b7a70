package form

import (
	"net/url"
	"time"

	"github.com/gabriel-vasile/mimetype"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/travelxplore/site/internal/domain"
)

// Upload is a file received with a form.
type Upload struct {
	Filename string
	Data     []byte
}

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ProfileInput is a validated profile submission. FirstName, LastName and
// Email belong to the user record and are copied onto it on save.
type ProfileInput struct {
	FirstName    string `form:"first_name" validate:"max=30"`
	LastName     string `form:"last_name" validate:"max=30"`
	Email        string `form:"email" validate:"omitempty,email,max=254"`
	Phone        string `form:"phone" validate:"max=15"`
	Address      string `form:"address"`
	DateOfBirth  *time.Time
	Picture      *Upload // nil keeps the current picture
	ClearPicture bool
}

// ParseProfile validates a profile form. pic is nil when no file was chosen.
func ParseProfile(v url.Values, pic *Upload) (ProfileInput, Errors) {
	in := ProfileInput{
		FirstName:    value(v, "first_name"),
		LastName:     value(v, "last_name"),
		Email:        value(v, "email"),
		Phone:        value(v, "phone"),
		Address:      value(v, "address"),
		ClearPicture: truthy(v.Get("profile_picture-clear")),
	}
	errs := check(in)

	if raw := value(v, "date_of_birth"); raw != "" {
		t, err := time.Parse(openapi_types.DateFormat, raw)
		if err != nil {
			errs.Add("date_of_birth", "Enter a valid date.")
		} else {
			in.DateOfBirth = &t
		}
	}

	if pic != nil && len(pic.Data) > 0 {
		if !mimetype.EqualsAny(mimetype.Detect(pic.Data).String(), imageTypes...) {
			errs.Add("profile_picture", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		} else {
			in.Picture = pic
		}
	}

	return in, errs
}

// ApplyUser copies the account fields onto u.
func (in ProfileInput) ApplyUser(u domain.User) domain.User {
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Email = in.Email
	return u
}

// ApplyProfile copies the profile fields onto p. The picture path is set by
// the caller once the upload has been stored.
func (in ProfileInput) ApplyProfile(p domain.Profile) domain.Profile {
	p.Phone = in.Phone
	p.Address = in.Address
	p.DateOfBirth = in.DateOfBirth
	if in.ClearPicture && in.Picture == nil {
		p.Picture = ""
	}
	return p
}

// ProfileInitial pre-fills the profile form, taking first name, last name and
// email from the user.
func ProfileInitial(u domain.User, p domain.Profile) url.Values {
	v := url.Values{
		"first_name": {u.FirstName},
		"last_name":  {u.LastName},
		"email":      {u.Email},
		"phone":      {p.Phone},
		"address":    {p.Address},
	}
	if p.DateOfBirth != nil {
		v.Set("date_of_birth", openapi_types.Date{Time: *p.DateOfBirth}.Format(openapi_types.DateFormat))
	}
	return v
}
