package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/form"
	"github.com/travelxplore/site/internal/service"
)

// register handles GET and POST /register/. A successful sign-up creates the
// user and profile, signs the new user in and redirects to /profile/.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "register.html", templateData{Title: "Register"})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	in, errs, err := form.ParseRegistration(ctx, r.PostForm, s.accounts)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if !errs.Valid() {
		s.render(w, r, http.StatusOK, "register.html", templateData{Title: "Register", Form: form.New(in.Values(), errs)})
		return
	}

	u, err := s.accounts.Register(ctx, service.NewAccount{
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
	})
	if err != nil {
		// A concurrent sign-up can win the race after the advisory check.
		if field, ok := form.ConflictField(err); ok {
			errs.AddError(field, err)
		} else if errors.Is(err, domain.ErrValidation) {
			errs.Add("password", "Ensure this password has at most 72 bytes.")
		} else {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "register.html", templateData{Title: "Register", Form: form.New(in.Values(), errs)})
		return
	}

	if err := s.startSession(ctx, u); err != nil {
		s.serverError(w, r, err)
		return
	}
	addNotice(w, r, levelSuccess, fmt.Sprintf("Welcome %s! Your account has been created successfully!", u.Username))
	http.Redirect(w, r, "/profile/", http.StatusFound)
}

// login handles GET and POST /login/. On failure it redirects back to the
// login page with a notice that does not say which credential was wrong.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")

	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "login.html", templateData{Title: "Log in", Next: next})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if next == "" {
		next = r.PostForm.Get("next")
	}
	ctx := r.Context()

	u, err := s.accounts.Authenticate(ctx, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, domain.ErrInvalidCredentials) {
		s.log.Info("login failed", zap.String("username", r.PostForm.Get("username")))
		addNotice(w, r, levelError, form.Message(err))
		back := "/login/"
		if next != "" {
			back += "?next=" + url.QueryEscape(next)
		}
		http.Redirect(w, r, back, http.StatusFound)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	if err := s.startSession(ctx, u); err != nil {
		s.serverError(w, r, err)
		return
	}
	addNotice(w, r, levelSuccess, fmt.Sprintf("Welcome back, %s!", u.Username))
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

// logout handles GET and POST /logout/ for anyone, signed in or not.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(r.Context()); err != nil {
		s.serverError(w, r, err)
		return
	}
	addNotice(w, r, levelInfo, "You have been logged out successfully!")
	http.Redirect(w, r, "/", http.StatusFound)
}

// profile handles GET and POST /profile/. The profile is created on first
// visit; a submission updates the profile and the user's name and email
// together.
func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := *currentUser(ctx)

	p, err := s.accounts.Profile(ctx, u.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "profile.html", templateData{
			Title:   "My Profile",
			Profile: &p,
			Form:    form.New(form.ProfileInitial(u, p), nil),
		})
		return
	}

	pic, err := s.parseProfileForm(r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			errs := form.Errors{}
			errs.Add("profile_picture", "The uploaded file is too large.")
			s.render(w, r, http.StatusOK, "profile.html", templateData{
				Title: "My Profile", Profile: &p, Form: form.New(form.ProfileInitial(u, p), errs),
			})
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	in, errs := form.ParseProfile(r.PostForm, pic)
	if !errs.Valid() {
		s.render(w, r, http.StatusOK, "profile.html", templateData{
			Title: "My Profile", Profile: &p, Form: form.New(r.PostForm, errs),
		})
		return
	}

	var data []byte
	if in.Picture != nil {
		data = in.Picture.Data
	}
	_, _, err = s.accounts.UpdateProfile(ctx, in.ApplyUser(u), in.ApplyProfile(p), data)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		errs.AddError("email", err)
		s.render(w, r, http.StatusOK, "profile.html", templateData{
			Title: "My Profile", Profile: &p, Form: form.New(r.PostForm, errs),
		})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	addNotice(w, r, levelSuccess, "Profile updated successfully!")
	http.Redirect(w, r, "/profile/", http.StatusFound)
}

// parseProfileForm parses a multipart or urlencoded profile submission and
// returns the uploaded picture, or nil when none was chosen.
func (s *Server) parseProfileForm(r *http.Request) (*form.Upload, error) {
	err := r.ParseMultipartForm(s.maxUpload)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil, r.ParseForm()
	}
	if err != nil {
		return nil, err
	}

	f, hdr, err := r.FormFile("profile_picture")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	if int64(len(data)) > s.maxUpload {
		return nil, &http.MaxBytesError{Limit: s.maxUpload}
	}
	return &form.Upload{Filename: hdr.Filename, Data: data}, nil
}
