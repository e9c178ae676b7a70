package form

import (
	"context"
	"fmt"
	"net/url"

	"github.com/travelxplore/site/internal/domain"
)

// AccountLookup answers the advisory uniqueness checks run during
// registration. The database constraint remains the final word.
type AccountLookup interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Registration is a validated sign-up submission.
type Registration struct {
	Username        string `form:"username" validate:"required,max=150,username"`
	Email           string `form:"email" validate:"required,email,max=254"`
	Phone           string `form:"phone" validate:"max=15"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// ParseRegistration validates a sign-up form. Every check runs, so duplicate
// username, duplicate email and mismatched passwords can be reported at once.
// The returned error is non-nil only when a lookup itself failed.
func ParseRegistration(ctx context.Context, v url.Values, lookup AccountLookup) (Registration, Errors, error) {
	in := Registration{
		Username:        value(v, "username"),
		Email:           value(v, "email"),
		Phone:           value(v, "phone"),
		Password:        v.Get("password"),
		ConfirmPassword: v.Get("confirm_password"),
	}
	errs := check(in)

	if _, bad := errs["username"]; !bad {
		taken, err := lookup.UsernameExists(ctx, in.Username)
		if err != nil {
			return in, errs, fmt.Errorf("form.ParseRegistration: %w", err)
		}
		if taken {
			errs.AddError("username", domain.ErrDuplicateUsername)
		}
	}
	if _, bad := errs["email"]; !bad {
		taken, err := lookup.EmailExists(ctx, in.Email)
		if err != nil {
			return in, errs, fmt.Errorf("form.ParseRegistration: %w", err)
		}
		if taken {
			errs.AddError("email", domain.ErrDuplicateEmail)
		}
	}
	if in.Password != "" && in.ConfirmPassword != "" && in.Password != in.ConfirmPassword {
		errs.AddError(NonField, domain.ErrPasswordMismatch)
	}

	return in, errs, nil
}

// Values returns the submission for re-rendering, without the passwords.
func (in Registration) Values() url.Values {
	return url.Values{
		"username": {in.Username},
		"email":    {in.Email},
		"phone":    {in.Phone},
	}
}
