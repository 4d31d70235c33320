package domain

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotCompleted = errors.New("quiz is not completed yet")
	ErrSessionFinished     = errors.New("quiz already finished")
	ErrMalformedAnswer     = errors.New("malformed answer")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrBeverageNotFound    = errors.New("beverage not found")
)
