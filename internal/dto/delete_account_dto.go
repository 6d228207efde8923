package dto

import "time"

type PasswordChangeRequest struct {
	Password string `json:"password"`
}

// FlowTransitionMessage is published on every deletion flow state change.
// It carries no password.
type FlowTransitionMessage struct {
	UserId     string    `json:"user_id"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	ErrorType  string    `json:"error_type,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type FlowStateMessage struct {
	Status    string `json:"status"`
	ErrorType string `json:"errorType"`
}
