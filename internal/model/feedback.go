package model

import "time"

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackApproved FeedbackStatus = "approved"
	FeedbackRejected FeedbackStatus = "rejected"
)

type Feedback struct {
	ID        int64
	ProjectID int64
	Name      *string
	Email     *string
	Message   string
	IPAddress *string // abuse tracking
	Status    FeedbackStatus
	CreatedAt time.Time
}
