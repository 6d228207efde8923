package deleteaccount

import (
	"context"

	"learner-account-be/internal/pkg/logger"
)

// AccountDeleter performs the remote deletion.
type AccountDeleter interface {
	DeactivateLogout(ctx context.Context, password string) error
}

// NewDeleteEffect handles DELETE_ACCOUNT requests: BEGIN, the remote call,
// then SUCCESS or FAILURE(server). The remote error is logged, never the password.
func NewDeleteEffect(deleter AccountDeleter, log logger.ILogger) Effect {
	return func(ctx context.Context, action Action, dispatch DispatchFunc) {
		if action.Type != ActionDelete {
			return
		}

		dispatch(ctx, DeleteAccountBegin())

		if err := deleter.DeactivateLogout(ctx, action.Password); err != nil {
			log.Warn("DeleteAccount", "Remote account deletion failed", map[string]interface{}{"error": err.Error()})
			dispatch(ctx, DeleteAccountFailure(ErrorServer))
			return
		}

		dispatch(ctx, DeleteAccountSuccess())
	}
}
