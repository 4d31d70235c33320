package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"refrescoBot/domain"
	"refrescoBot/pkg/logger"
	"refrescoBot/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

type QuizService interface {
	StartSession(ctx context.Context) (*domain.Session, []domain.Question, error)
	RecordAnswer(ctx context.Context, sessionID string, questionID, optionID uint64, latencySeconds float64) (bool, error)
	ComputeRecommendations(ctx context.Context, sessionID string) (domain.RecommendationSet, error)
	RequestMore(ctx context.Context, sessionID string) (domain.MoreResult, error)
	RateBeverage(ctx context.Context, sessionID string, beverageID uint64, presentationID string, score int) (domain.RatingFeedback, error)
}

type SessionHandler struct {
	quizService QuizService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewSessionHandler(quizService QuizService) *SessionHandler {
	return &SessionHandler{
		quizService: quizService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type AnswerRequest struct {
	QuestionID     uint64  `json:"question_id" validate:"required"`
	OptionID       uint64  `json:"option_id" validate:"required"`
	LatencySeconds float64 `json:"latency_seconds" validate:"gte=0"`
}

type RateRequest struct {
	BeverageID     uint64 `json:"beverage_id" validate:"required"`
	PresentationID string `json:"presentation_id"`
	Score          int    `json:"score" validate:"required,min=1,max=5"`
}

// StartSession creates a fresh quiz session and returns its questions.
func (h *SessionHandler) StartSession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, questions, err := h.quizService.StartSession(ctx)
	if err != nil {
		logger.Error("Failed to start session", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	metrics.SessionsStarted.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"session_id": session.ID,
		"state":      session.State,
		"questions":  questions,
	}))
}

// RecordAnswer stores one quiz answer and reports whether the quiz is
// complete.
func (h *SessionHandler) RecordAnswer(c echo.Context) error {
	sessionID := c.Param("id")

	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind answer request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate answer request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	completed, err := h.quizService.RecordAnswer(ctx, sessionID, req.QuestionID, req.OptionID, req.LatencySeconds)
	if err != nil {
		return h.mapError(c, "Failed to record answer", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"session_id": sessionID,
		"completed":  completed,
	}))
}

// GetRecommendations returns the initial recommendation set for a
// completed quiz; repeated calls replay the same set.
func (h *SessionHandler) GetRecommendations(c echo.Context) error {
	sessionID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	set, err := h.quizService.ComputeRecommendations(ctx, sessionID)
	if err != nil {
		return h.mapError(c, "Failed to compute recommendations", err)
	}
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	metrics.RecommendationsServed.Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(set))
}

// MoreOptions serves the next page of unseen recommendations.
func (h *SessionHandler) MoreOptions(c echo.Context) error {
	sessionID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	more, err := h.quizService.RequestMore(ctx, sessionID)
	if err != nil {
		return h.mapError(c, "Failed to fetch more options", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(more))
}

// RateBeverage records a 1-5 rating for a recommended beverage.
func (h *SessionHandler) RateBeverage(c echo.Context) error {
	sessionID := c.Param("id")

	var req RateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind rating request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate rating request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	feedback, err := h.quizService.RateBeverage(ctx, sessionID, req.BeverageID, req.PresentationID, req.Score)
	if err != nil {
		return h.mapError(c, "Failed to record rating", err)
	}
	metrics.RatingsReceived.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(feedback))
}

func (h *SessionHandler) mapError(c echo.Context, msg string, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrBeverageNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrMalformedAnswer), errors.Is(err, domain.ErrInvalidRating):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrSessionNotCompleted), errors.Is(err, domain.ErrSessionFinished):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	}
	logger.Error(msg, "error", err)
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}

// parseID is shared by handlers taking numeric path params.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
