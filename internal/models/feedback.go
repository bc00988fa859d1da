package models

import "errors"

type FeedbackStatus string

const (
	StatusPending   FeedbackStatus = "pending"
	StatusConfirmed FeedbackStatus = "confirmed"
	StatusCancelled FeedbackStatus = "cancelled"
)

var (
	ErrAlreadyCancelled = errors.New("record is already cancelled")
	ErrCancelled        = errors.New("cancelled records cannot be confirmed")
)

// Feedback is the staff-side lifecycle tag shared by reservations, infos,
// contracts and edition configs. It is embedded into each record with a
// feedback_ column prefix.
type Feedback struct {
	Status FeedbackStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Member *string        `json:"member,omitempty"`
}

// Confirm returns the feedback advanced to CONFIRMED. Confirming an
// already-confirmed record is a no-op so staff retries are safe; a
// cancelled record can never be confirmed again.
func (f Feedback) Confirm(member string) (Feedback, error) {
	switch f.Status {
	case StatusConfirmed:
		return f, nil
	case StatusCancelled:
		return f, ErrCancelled
	}
	return Feedback{Status: StatusConfirmed, Member: &member}, nil
}

// Cancel returns the feedback moved to CANCELLED. Cancelled is terminal:
// a second cancel fails and leaves the record untouched.
func (f Feedback) Cancel(member string) (Feedback, error) {
	if f.Status == StatusCancelled {
		return f, ErrAlreadyCancelled
	}
	return Feedback{Status: StatusCancelled, Member: &member}, nil
}
