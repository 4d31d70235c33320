package postgres

import (
	"context"
	"errors"
	"fmt"

	"refrescoBot/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{
		DB: db,
	}
}

// Upsert writes the rating for a session/beverage pair, overwriting any
// earlier score. It returns the replaced rating, nil when this is the
// first one, so the caller can adjust running aggregates without
// recounting.
func (r *RatingRepository) Upsert(ctx context.Context, rating domain.Rating) (*domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var previous *domain.Rating

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Rating
		err := tx.Where("session_id = ? AND beverage_id = ?", rating.SessionID, rating.BeverageID).
			First(&current).Error
		switch {
		case err == nil:
			previous = &current
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first rating for this pair
		default:
			return fmt.Errorf("failed to read existing rating: %w", err)
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "beverage_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "context", "updated_at"}),
		}).Create(&rating).Error
		if err != nil {
			return fmt.Errorf("failed to upsert rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return previous, nil
}

func (r *RatingRepository) FindAll(ctx context.Context) ([]domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ratings []domain.Rating
	err := r.DB.WithContext(ctx).Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}

	return ratings, nil
}

func (r *RatingRepository) CountAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Rating{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}

	return count, nil
}
