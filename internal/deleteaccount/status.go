package deleteaccount

// Status is the lifecycle tag that decides which modal is visible.
type Status string

const (
	StatusNone       Status = ""
	StatusConfirming Status = "confirming"
	StatusPending    Status = "pending"
	StatusDeleted    Status = "deleted"
	StatusFailed     Status = "failed"
)

// ErrorType is set when local validation or the remote call fails.
type ErrorType string

const (
	ErrorNone          ErrorType = ""
	ErrorEmptyPassword ErrorType = "empty-password"
	ErrorServer        ErrorType = "server"
)

// State is the deleteAccount slice of the account settings store.
type State struct {
	Status    Status    `json:"status"`
	ErrorType ErrorType `json:"errorType"`
}

// Terminal reports whether the flow has reached an outcome worth recording.
func (s State) Terminal() bool {
	return s.Status == StatusDeleted || s.Status == StatusFailed
}
