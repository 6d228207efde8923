package contract

import (
	"context"

	"learner-account-be/internal/model"
	"learner-account-be/internal/repository/specification"
)

type DeletionAttemptRepository interface {
	Create(ctx context.Context, attempt *model.DeletionAttempt) error
	FindByUserId(ctx context.Context, userId string, limit int) ([]model.DeletionAttempt, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]model.DeletionAttempt, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
