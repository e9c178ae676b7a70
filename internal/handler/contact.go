package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/form"
)

// contact handles GET and POST /contact/. The form is pre-filled from the
// signed-in user and their profile; the stored message is always stamped
// with the signed-in user.
func (s *Server) contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := *currentUser(ctx)

	if r.Method == http.MethodGet {
		var profile *domain.Profile
		p, err := s.accounts.FindProfile(ctx, u.ID)
		switch {
		case err == nil:
			profile = &p
		case !errors.Is(err, domain.ErrNotFound):
			s.log.Warn("contact: profile lookup failed", zap.Int64("user_id", u.ID), zap.Error(err))
		}
		s.render(w, r, http.StatusOK, "contact.html", templateData{
			Title: "Contact Us",
			Form:  form.New(form.ContactInitial(u, profile), nil),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	in, errs := form.ParseContact(r.PostForm)
	if !errs.Valid() {
		s.render(w, r, http.StatusOK, "contact.html", templateData{Title: "Contact Us", Form: form.New(r.PostForm, errs)})
		return
	}

	if _, err := s.messages.Submit(ctx, u, in.ContactMessage(u)); err != nil {
		s.serverError(w, r, err)
		return
	}
	addNotice(w, r, levelSuccess, "Thank you! Your message has been sent successfully!")
	http.Redirect(w, r, "/contact/", http.StatusFound)
}
