package implementation

import (
	"context"

	"learner-account-be/internal/model"
	"learner-account-be/internal/repository/contract"
	"learner-account-be/internal/repository/specification"

	"gorm.io/gorm"
)

type DeletionAttemptRepositoryImpl struct {
	db *gorm.DB
}

func NewDeletionAttemptRepository(db *gorm.DB) contract.DeletionAttemptRepository {
	return &DeletionAttemptRepositoryImpl{db: db}
}

func (r *DeletionAttemptRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DeletionAttemptRepositoryImpl) Create(ctx context.Context, attempt *model.DeletionAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

// FindByUserId returns the newest attempts of a user first.
func (r *DeletionAttemptRepositoryImpl) FindByUserId(ctx context.Context, userId string, limit int) ([]model.DeletionAttempt, error) {
	return r.FindAll(ctx,
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
}

func (r *DeletionAttemptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]model.DeletionAttempt, error) {
	var attempts []model.DeletionAttempt
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *DeletionAttemptRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DeletionAttempt{}), specs...)
	err := query.Count(&count).Error
	return count, err
}
