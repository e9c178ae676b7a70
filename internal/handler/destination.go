package handler

import (
	"errors"
	"net/http"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/form"
)

// destinationDetail handles GET /destinations/{id}/ for everyone.
func (s *Server) destinationDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	d, err := s.destinations.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "destination_detail.html", templateData{Title: d.Name, Destination: &d})
}

// destinationList handles GET /destinations/ (admin).
func (s *Server) destinationList(w http.ResponseWriter, r *http.Request) {
	all, err := s.destinations.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "destination_list.html", templateData{Title: "Destinations", Destinations: all})
}

// destinationCreate handles GET and POST /destinations/add/ (admin).
func (s *Server) destinationCreate(w http.ResponseWriter, r *http.Request) {
	data := templateData{Title: "Add Destination", Categories: domain.Categories()}

	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "destination_form.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	in, errs := form.ParseDestination(r.PostForm)
	if errs.Valid() {
		u := currentUser(r.Context())
		_, err := s.destinations.Create(r.Context(), *u, in.Apply(domain.Destination{}))
		if err == nil {
			addNotice(w, r, levelSuccess, "Destination added successfully!")
			http.Redirect(w, r, "/destinations/", http.StatusFound)
			return
		}
		if !errors.Is(err, domain.ErrValidation) {
			s.fail(w, r, err)
			return
		}
		errs.Add(form.NonField, unwrapMessage(err))
	}

	data.Form = form.New(r.PostForm, errs)
	s.render(w, r, http.StatusOK, "destination_form.html", data)
}

// destinationUpdate handles GET and POST /destinations/edit/{id}/ (admin).
func (s *Server) destinationUpdate(w http.ResponseWriter, r *http.Request) {
	d, ok := s.destinationByID(w, r)
	if !ok {
		return
	}
	data := templateData{Title: "Edit Destination", Destination: &d, Categories: domain.Categories()}

	if r.Method == http.MethodGet {
		data.Form = form.New(form.DestinationValues(d), nil)
		s.render(w, r, http.StatusOK, "destination_form.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	in, errs := form.ParseDestination(r.PostForm)
	if errs.Valid() {
		u := currentUser(r.Context())
		_, err := s.destinations.Update(r.Context(), *u, in.Apply(d))
		if err == nil {
			addNotice(w, r, levelSuccess, "Destination updated successfully!")
			http.Redirect(w, r, "/destinations/", http.StatusFound)
			return
		}
		if !errors.Is(err, domain.ErrValidation) {
			s.fail(w, r, err)
			return
		}
		errs.Add(form.NonField, unwrapMessage(err))
	}

	data.Form = form.New(r.PostForm, errs)
	s.render(w, r, http.StatusOK, "destination_form.html", data)
}

// destinationDelete handles GET (confirm) and POST (delete)
// /destinations/delete/{id}/ (admin).
func (s *Server) destinationDelete(w http.ResponseWriter, r *http.Request) {
	d, ok := s.destinationByID(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "destination_confirm_delete.html", templateData{Title: "Delete Destination", Destination: &d})
		return
	}

	u := currentUser(r.Context())
	if err := s.destinations.Delete(r.Context(), *u, d.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	addNotice(w, r, levelSuccess, "Destination deleted successfully!")
	http.Redirect(w, r, "/destinations/", http.StatusFound)
}

func (s *Server) destinationByID(w http.ResponseWriter, r *http.Request) (domain.Destination, bool) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return domain.Destination{}, false
	}
	d, err := s.destinations.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return domain.Destination{}, false
	}
	return d, true
}
