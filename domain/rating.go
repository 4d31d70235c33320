package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Rating is one user rating of a beverage, unique per session and
// beverage. Re-submitting for the same pair overwrites the score.
type Rating struct {
	ID         uint64            `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID  string            `json:"session_id" gorm:"index:idx_session_beverage,unique"`
	BeverageID uint64            `json:"beverage_id" gorm:"index:idx_session_beverage,unique"`
	Score      int               `json:"score"`
	Context    datatypes.JSONMap `json:"context" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

// NextRatingAggregate folds a new or replaced score into a running
// mean. A replacement keeps the count and shifts the mean by the score
// delta; a fresh score extends the mean.
func NextRatingAggregate(mean float64, count, score, previous int, existed bool) (float64, int) {
	if existed {
		if count == 0 {
			return float64(score), 1
		}
		return mean + float64(score-previous)/float64(count), count
	}
	next := count + 1
	return (mean*float64(count) + float64(score)) / float64(next), next
}

// RemoveRatingAggregate takes one score back out of a running mean,
// for when a rating moves to a different presentation.
func RemoveRatingAggregate(mean float64, count, score int) (float64, int) {
	if count <= 1 {
		return 0, 0
	}
	next := count - 1
	return (mean*float64(count) - float64(score)) / float64(next), next
}
