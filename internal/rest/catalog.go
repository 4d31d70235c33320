package rest

import (
	"context"
	"net/http"
	"time"

	"refrescoBot/business/categorizer"
	"refrescoBot/business/predictor"
	"refrescoBot/domain"
	"refrescoBot/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	FindAll(ctx context.Context) ([]domain.Beverage, error)
	GetByID(ctx context.Context, id uint64) (domain.Beverage, error)
}

type ClassifierService interface {
	ClassifyAll(ctx context.Context) (categorizer.Summary, error)
}

type LearningService interface {
	Retrain(ctx context.Context) error
}

type ModelSource interface {
	Current() *predictor.Snapshot
}

type RatingCounter interface {
	CountAll(ctx context.Context) (int64, error)
}

type CatalogHandler struct {
	catalogService CatalogService
	classifier     ClassifierService
	learning       LearningService
	model          ModelSource
	ratings        RatingCounter
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService, classifier ClassifierService, learning LearningService, model ModelSource, ratings RatingCounter) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		classifier:     classifier,
		learning:       learning,
		model:          model,
		ratings:        ratings,
		timeout:        30 * time.Second,
	}
}

func (h *CatalogHandler) GetAllBeverages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	beverages, err := h.catalogService.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all beverages", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(beverages))
}

func (h *CatalogHandler) GetBeverageByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		logger.Error("Invalid beverage id", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	beverage, err := h.catalogService.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrBeverageNotFound {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(beverage))
}

// Classify runs the catalog classification batch on demand. The same
// pass also runs on a cron schedule.
func (h *CatalogHandler) Classify(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.classifier.ClassifyAll(ctx)
	if err != nil {
		logger.Error("Failed to classify catalog", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}

// Retrain rebuilds the preference model from all stored ratings.
func (h *CatalogHandler) Retrain(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.learning.Retrain(ctx); err != nil {
		logger.Error("Failed to retrain model", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("model retrained"))
}

// Status reports the model snapshot and catalog dimensions.
func (h *CatalogHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	beverages, err := h.catalogService.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load catalog for status", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	ratingCount, err := h.ratings.CountAll(ctx)
	if err != nil {
		logger.Error("Failed to count ratings", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	snap := h.model.Current()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"model": map[string]interface{}{
			"version": snap.Version,
			"trained": snap.Trained(),
			"samples": snap.Samples,
		},
		"beverages": len(beverages),
		"ratings":   ratingCount,
	}))
}
