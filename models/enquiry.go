package models

import "time"

// Enquiry statuses as issued by the upstream API.
const (
	EnquiryStatusPending    = "pending"
	EnquiryStatusInProgress = "in_progress"
	EnquiryStatusCompleted  = "completed"
	EnquiryStatusCancelled  = "cancelled"
)

// EnquiryDraft is the accommodation enquiry payload. Stay details are folded
// into the single free-text Message field for upstream compatibility.
type EnquiryDraft struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Accommodation int    `json:"accommodation"`
	Message       string `json:"message"`
}

// Enquiry is the server-authoritative accommodation enquiry record.
type Enquiry struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Accommodation string           `json:"accommodation"`
	Message       string           `json:"message"`
	Status        string           `json:"status"`
	Messages      []EnquiryMessage `json:"messages,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EnquiryMessage is one turn of the enquiry conversation thread.
type EnquiryMessage struct {
	ID        int       `json:"id"`
	Sender    string    `json:"sender"` // user | admin
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadAdminMessages counts admin-authored messages the user has not read.
func (e Enquiry) UnreadAdminMessages() int {
	n := 0
	for _, m := range e.Messages {
		if m.Sender == "admin" && !m.IsRead {
			n++
		}
	}
	return n
}
