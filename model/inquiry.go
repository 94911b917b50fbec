package model

import "time"

// InquiryStatusNew is the status every inquiry starts in. Later lifecycle
// states are set by manual curation, not by this service.
const InquiryStatusNew = "new"

// Inquiry is an exclusive-license offer submitted against a beat. BeatID is
// a soft reference: it is recorded as given, without an existence check.
type Inquiry struct {
	ID        int64     `json:"id"`
	BeatID    int64     `json:"beatId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Offer     string    `json:"offer"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
