package deleteaccount

// Reduce returns the next state for action. It never mutates state.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionConfirmation:
		state.Status = StatusConfirming
	case ActionBegin:
		state.Status = StatusPending
	case ActionSuccess:
		state.Status = StatusDeleted
	case ActionFailure:
		state.Status = StatusFailed
		state.ErrorType = action.Reason
		if state.ErrorType == ErrorNone {
			state.ErrorType = ErrorServer
		}
	case ActionReset:
		if state.Status == StatusFailed {
			state.Status = StatusConfirming
		}
		state.ErrorType = ErrorNone
	case ActionCancel:
		state = State{}
	}
	return state
}
