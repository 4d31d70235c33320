package postgres

import (
	"context"
	"errors"
	"fmt"

	"refrescoBot/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BeverageRepository struct {
	DB *gorm.DB
}

func NewBeverageRepository(db *gorm.DB) *BeverageRepository {
	return &BeverageRepository{
		DB: db,
	}
}

// EnsureSeeded loads the built-in drink catalog into an empty beverages
// table.
func (r *BeverageRepository) EnsureSeeded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Beverage{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count beverages: %w", err)
	}
	if count > 0 {
		return nil
	}

	beverages := domain.DefaultBeverages()
	if err := r.DB.WithContext(ctx).Create(&beverages).Error; err != nil {
		return fmt.Errorf("failed to seed beverages: %w", err)
	}

	return nil
}

func (r *BeverageRepository) FindAll(ctx context.Context) ([]domain.Beverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var beverages []domain.Beverage
	err := r.DB.WithContext(ctx).
		Preload("Presentations").
		Find(&beverages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find beverages: %w", err)
	}

	return beverages, nil
}

func (r *BeverageRepository) GetByID(ctx context.Context, id uint64) (domain.Beverage, error) {
	if err := ctx.Err(); err != nil {
		return domain.Beverage{}, fmt.Errorf("context error: %w", err)
	}

	var beverage domain.Beverage
	err := r.DB.WithContext(ctx).
		Preload("Presentations").
		First(&beverage, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Beverage{}, domain.ErrBeverageNotFound
		}
		return domain.Beverage{}, fmt.Errorf("failed to find beverage: %w", err)
	}

	return beverage, nil
}

// UpdateClassification stores the categorizer output for one beverage.
func (r *BeverageRepository) UpdateClassification(ctx context.Context, id uint64, clusterID int, tags []string, priceOutlier bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"cluster_id":    clusterID,
		"tags":          datatypes.NewJSONSlice(tags),
		"price_outlier": priceOutlier,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Beverage{}).Where("id = ?", id).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update beverage classification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrBeverageNotFound
	}

	return nil
}

// ApplyRating folds one score into the beverage's running rating
// aggregate. The row stays locked from read to write so concurrent
// ratings cannot clobber each other's update.
func (r *BeverageRepository) ApplyRating(ctx context.Context, id uint64, score, previous int, existed bool) (float64, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("context error: %w", err)
	}

	var mean float64
	var count int

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var beverage domain.Beverage
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&beverage, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBeverageNotFound
			}
			return fmt.Errorf("failed to lock beverage: %w", err)
		}

		mean, count = domain.NextRatingAggregate(beverage.RatingMean, beverage.RatingCount, score, previous, existed)
		err = tx.Model(&domain.Beverage{}).Where("id = ?", id).Updates(map[string]interface{}{
			"rating_mean":  mean,
			"rating_count": count,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update beverage rating stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return mean, count, nil
}

// ApplyPresentationRating folds one score into a presentation's running
// rating aggregate, under the same row lock discipline as ApplyRating.
func (r *BeverageRepository) ApplyPresentationRating(ctx context.Context, presentationID string, score, previous int, existed bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var presentation domain.Presentation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", presentationID).
			First(&presentation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("presentation %s not found", presentationID)
			}
			return fmt.Errorf("failed to lock presentation: %w", err)
		}

		mean, count := domain.NextRatingAggregate(presentation.RatingMean, presentation.RatingCount, score, previous, existed)
		err = tx.Model(&domain.Presentation{}).Where("id = ?", presentationID).Updates(map[string]interface{}{
			"rating_mean":  mean,
			"rating_count": count,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update presentation rating stats: %w", err)
		}
		return nil
	})
}

// RemovePresentationRating takes a score back out of a presentation's
// aggregate, for a re-rating that moved to another presentation.
func (r *BeverageRepository) RemovePresentationRating(ctx context.Context, presentationID string, score int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var presentation domain.Presentation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", presentationID).
			First(&presentation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("presentation %s not found", presentationID)
			}
			return fmt.Errorf("failed to lock presentation: %w", err)
		}

		mean, count := domain.RemoveRatingAggregate(presentation.RatingMean, presentation.RatingCount, score)
		err = tx.Model(&domain.Presentation{}).Where("id = ?", presentationID).Updates(map[string]interface{}{
			"rating_mean":  mean,
			"rating_count": count,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update presentation rating stats: %w", err)
		}
		return nil
	})
}

func (r *BeverageRepository) CountByCluster(ctx context.Context, clusterID int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Beverage{}).
		Where("cluster_id = ?", clusterID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count beverages in cluster: %w", err)
	}

	return count, nil
}

func (r *BeverageRepository) UpdateSizeCategory(ctx context.Context, presentationID, sizeCategory string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Presentation{}).
		Where("id = ?", presentationID).
		Update("size_category", sizeCategory)
	if result.Error != nil {
		return fmt.Errorf("failed to update presentation size category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("presentation %s not found", presentationID)
	}

	return nil
}
