package handler

import (
	"net/http"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/form"
)

// travelerList handles GET /travelers/: the signed-in user's travelers only.
func (s *Server) travelerList(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	travelers, err := s.travelers.List(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "traveler_list.html", templateData{Title: "My Travelers", Travelers: travelers})
}

// travelerCreate handles GET and POST /travelers/add/. Any owner field in
// the submission is ignored; the owner is the signed-in user.
func (s *Server) travelerCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "traveler_form.html", templateData{Title: "Add Traveler"})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	in, errs := form.ParseTraveler(r.PostForm)
	if !errs.Valid() {
		s.render(w, r, http.StatusOK, "traveler_form.html", templateData{Title: "Add Traveler", Form: form.New(r.PostForm, errs)})
		return
	}

	u := currentUser(r.Context())
	if _, err := s.travelers.Create(r.Context(), u.ID, in.Apply(domain.Traveler{})); err != nil {
		s.serverError(w, r, err)
		return
	}
	addNotice(w, r, levelSuccess, "Traveler added successfully!")
	http.Redirect(w, r, "/travelers/", http.StatusFound)
}

// travelerUpdate handles GET and POST /travelers/edit/{id}/.
// Travelers owned by someone else are reported as not found.
func (s *Server) travelerUpdate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ownedTraveler(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "traveler_form.html", templateData{
			Title: "Edit Traveler", Traveler: &t, Form: form.New(form.TravelerValues(t), nil),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	in, errs := form.ParseTraveler(r.PostForm)
	if !errs.Valid() {
		s.render(w, r, http.StatusOK, "traveler_form.html", templateData{
			Title: "Edit Traveler", Traveler: &t, Form: form.New(r.PostForm, errs),
		})
		return
	}

	u := currentUser(r.Context())
	if _, err := s.travelers.Update(r.Context(), u.ID, in.Apply(t)); err != nil {
		s.fail(w, r, err)
		return
	}
	addNotice(w, r, levelSuccess, "Traveler updated successfully!")
	http.Redirect(w, r, "/travelers/", http.StatusFound)
}

// travelerDelete handles GET (confirm) and POST (delete) /travelers/delete/{id}/.
func (s *Server) travelerDelete(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ownedTraveler(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "traveler_confirm_delete.html", templateData{Title: "Delete Traveler", Traveler: &t})
		return
	}

	u := currentUser(r.Context())
	if err := s.travelers.Delete(r.Context(), u.ID, t.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	addNotice(w, r, levelSuccess, "Traveler deleted successfully!")
	http.Redirect(w, r, "/travelers/", http.StatusFound)
}

// ownedTraveler loads the {id} traveler scoped to the signed-in user. When it
// returns false the response has already been written.
func (s *Server) ownedTraveler(w http.ResponseWriter, r *http.Request) (domain.Traveler, bool) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return domain.Traveler{}, false
	}
	u := currentUser(r.Context())
	t, err := s.travelers.Get(r.Context(), u.ID, id)
	if err != nil {
		s.fail(w, r, err)
		return domain.Traveler{}, false
	}
	return t, true
}
