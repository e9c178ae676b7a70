package form

import (
	"net/url"

	"github.com/travelxplore/site/internal/domain"
)

// ContactInput is a validated contact-form submission.
type ContactInput struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" validate:"max=15"`
	Subject string `form:"subject" validate:"required,max=200"`
	Message string `form:"message" validate:"required"`
}

// ParseContact validates a contact form.
func ParseContact(v url.Values) (ContactInput, Errors) {
	in := ContactInput{
		Name:    value(v, "name"),
		Email:   value(v, "email"),
		Phone:   value(v, "phone"),
		Subject: value(v, "subject"),
		Message: value(v, "message"),
	}
	return in, check(in)
}

// ContactMessage builds the record to persist. The sender is always the caller.
func (in ContactInput) ContactMessage(sender domain.User) domain.ContactMessage {
	id := sender.ID
	return domain.ContactMessage{
		UserID:  &id,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	}
}

// ContactInitial pre-fills name and email from the user and phone from the
// profile, when there is one.
func ContactInitial(u domain.User, p *domain.Profile) url.Values {
	v := url.Values{
		"name":  {u.DisplayName()},
		"email": {u.Email},
	}
	if p != nil && p.Phone != "" {
		v.Set("phone", p.Phone)
	}
	return v
}
