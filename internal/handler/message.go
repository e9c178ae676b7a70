package handler

import "net/http"

// messageList handles GET /messages/: the user's own messages, or every
// message for staff.
func (s *Server) messageList(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	msgs, err := s.messages.List(r.Context(), *u)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "message_list.html", templateData{Title: "Messages", Messages: msgs})
}

// messageDetail handles GET /messages/{id}/. Viewing marks the message read.
// Messages outside the viewer's scope are reported as not found and left
// unchanged.
func (s *Server) messageDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	u := currentUser(r.Context())
	m, err := s.messages.View(r.Context(), *u, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "message_detail.html", templateData{Title: m.Subject, Message: &m})
}

// messageDelete handles GET (confirm) and POST (delete) /messages/delete/{id}/.
// The confirmation page does not mark the message read.
func (s *Server) messageDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	ctx := r.Context()
	u := *currentUser(ctx)

	m, err := s.messages.Get(ctx, u, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "message_confirm_delete.html", templateData{Title: "Delete Message", Message: &m})
		return
	}

	if err := s.messages.Delete(ctx, u, m.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	addNotice(w, r, levelSuccess, "Message deleted successfully!")
	http.Redirect(w, r, "/messages/", http.StatusFound)
}
