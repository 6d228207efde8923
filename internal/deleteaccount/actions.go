package deleteaccount

import "fmt"

type ActionType string

const (
	ActionDelete       ActionType = "DELETE_ACCOUNT"
	ActionBegin        ActionType = "DELETE_ACCOUNT__BEGIN"
	ActionSuccess      ActionType = "DELETE_ACCOUNT__SUCCESS"
	ActionFailure      ActionType = "DELETE_ACCOUNT__FAILURE"
	ActionConfirmation ActionType = "DELETE_ACCOUNT__CONFIRMATION"
	ActionReset        ActionType = "DELETE_ACCOUNT__RESET"
	ActionCancel       ActionType = "DELETE_ACCOUNT__CANCEL"
)

// Action is a dispatched store message. Password is only set on
// ActionDelete and is excluded from every serialized form.
type Action struct {
	Type     ActionType `json:"type"`
	Password string     `json:"-"`
	Reason   ErrorType  `json:"reason,omitempty"`
}

func (a Action) String() string {
	if a.Reason != ErrorNone {
		return fmt.Sprintf("%s(%s)", a.Type, a.Reason)
	}
	return string(a.Type)
}

func DeleteAccount(password string) Action {
	return Action{Type: ActionDelete, Password: password}
}

func DeleteAccountBegin() Action {
	return Action{Type: ActionBegin}
}

func DeleteAccountSuccess() Action {
	return Action{Type: ActionSuccess}
}

func DeleteAccountFailure(reason ErrorType) Action {
	return Action{Type: ActionFailure, Reason: reason}
}

func DeleteAccountConfirmation() Action {
	return Action{Type: ActionConfirmation}
}

func DeleteAccountReset() Action {
	return Action{Type: ActionReset}
}

func DeleteAccountCancel() Action {
	return Action{Type: ActionCancel}
}
