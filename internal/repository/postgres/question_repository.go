package postgres

import (
	"context"
	"fmt"

	"refrescoBot/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{
		DB: db,
	}
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var questions []domain.Question
	err := r.DB.WithContext(ctx).
		Preload("Options").
		Order("position asc").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	return questions, nil
}

// EnsureSeeded loads the built-in quiz catalog into an empty questions
// table. Existing rows are left alone so catalog edits survive restarts.
func (r *QuestionRepository) EnsureSeeded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Question{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		return nil
	}

	questions := domain.DefaultQuestions()
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&questions).Error
	if err != nil {
		return fmt.Errorf("failed to seed questions: %w", err)
	}

	return nil
}
