package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the page router. Sessions are loaded for every page but not
// for /healthz. Static assets, uploads and /metrics are mounted by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(s.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Get("/healthz", s.health)

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.LoadAndSave)
		r.Use(s.loadUser)

		r.Get("/", s.home)
		r.Get("/about/", s.about)
		r.Get("/gallery/", s.gallery)
		r.Get("/destinations/{id}/", s.destinationDetail)

		r.Get("/logout/", s.logout)
		r.Post("/logout/", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.redirectIfAuthenticated)
			r.Use(s.limiter)
			r.Get("/register/", s.register)
			r.Post("/register/", s.register)
			r.Get("/login/", s.login)
			r.Post("/login/", s.login)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireLogin)

			r.Get("/profile/", s.profile)
			r.Post("/profile/", s.profile)
			r.Get("/contact/", s.contact)
			r.Post("/contact/", s.contact)

			r.Get("/travelers/", s.travelerList)
			r.Get("/travelers/export/", s.travelerExport)
			r.Get("/travelers/add/", s.travelerCreate)
			r.Post("/travelers/add/", s.travelerCreate)
			r.Get("/travelers/edit/{id}/", s.travelerUpdate)
			r.Post("/travelers/edit/{id}/", s.travelerUpdate)
			r.Get("/travelers/delete/{id}/", s.travelerDelete)
			r.Post("/travelers/delete/{id}/", s.travelerDelete)

			r.Get("/messages/", s.messageList)
			r.Get("/messages/{id}/", s.messageDetail)
			r.Get("/messages/delete/{id}/", s.messageDelete)
			r.Post("/messages/delete/{id}/", s.messageDelete)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/destinations/", s.destinationList)
				r.Get("/destinations/add/", s.destinationCreate)
				r.Post("/destinations/add/", s.destinationCreate)
				r.Get("/destinations/edit/{id}/", s.destinationUpdate)
				r.Post("/destinations/edit/{id}/", s.destinationUpdate)
				r.Get("/destinations/delete/{id}/", s.destinationDelete)
				r.Post("/destinations/delete/{id}/", s.destinationDelete)
			})
		})
	})

	return r
}
