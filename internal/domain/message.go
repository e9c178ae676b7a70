package domain

import "time"

// ContactMessage is a submission of the contact form.
// UserID is nil when the sending account has since been deleted.
type ContactMessage struct {
	ID        int64
	UserID    *int64
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
	IsRead    bool
}
