package handler

import "net/http"

// home handles GET /: up to eight featured destinations, newest first.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	featured, err := s.destinations.Featured(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "home.html", templateData{
		Title:        "Welcome to TravelXplore",
		Destinations: featured,
	})
}

func (s *Server) about(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "about.html", templateData{Title: "About Us"})
}

// gallery handles GET /gallery/: every destination, unpaginated.
func (s *Server) gallery(w http.ResponseWriter, r *http.Request) {
	all, err := s.destinations.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "gallery.html", templateData{Title: "Gallery", Destinations: all})
}
