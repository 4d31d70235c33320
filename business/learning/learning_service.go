package learning

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"gorm.io/datatypes"

	"refrescoBot/business/predictor"
	"refrescoBot/domain"
	"refrescoBot/pkg/logger"
	"refrescoBot/pkg/metrics"
)

// ---- Repository interfaces ----

type RatingRepository interface {
	// Upsert stores the rating, replacing any previous one for the same
	// session and beverage. It returns the replaced rating when there
	// was one, nil otherwise.
	Upsert(ctx context.Context, rating domain.Rating) (*domain.Rating, error)
	FindAll(ctx context.Context) ([]domain.Rating, error)
}

type BeverageRepository interface {
	GetByID(ctx context.Context, id uint64) (domain.Beverage, error)
	// ApplyRating folds a score into the beverage aggregate in one
	// atomic step and returns the resulting mean and count.
	ApplyRating(ctx context.Context, id uint64, score, previous int, existed bool) (float64, int, error)
	ApplyPresentationRating(ctx context.Context, presentationID string, score, previous int, existed bool) error
	RemovePresentationRating(ctx context.Context, presentationID string, score int) error
	CountByCluster(ctx context.Context, clusterID int) (int64, error)
}

// ---- Usecase / Service ----

type Config struct {
	RetrainThreshold int
	MaxClusterBias   float64
	Model            predictor.Config
}

func (c Config) withDefaults() Config {
	if c.RetrainThreshold <= 0 {
		c.RetrainThreshold = 5
	}
	if c.MaxClusterBias <= 0 {
		c.MaxClusterBias = 0.5
	}
	return c
}

// Service absorbs rating events: it upserts the rating, maintains the
// beverage aggregates and cluster biases, and schedules background
// retrains. Retrain requests are coalesced, so a burst of ratings
// causes one retrain, not one per rating.
type Service struct {
	ratingRepo   RatingRepository
	beverageRepo BeverageRepository
	model        *predictor.Service
	cfg          Config

	mu     sync.Mutex
	biases map[int]float64

	pending   atomic.Int64
	version   atomic.Int64
	retrainCh chan struct{}
}

func NewService(ratingRepo RatingRepository, beverageRepo BeverageRepository, model *predictor.Service, cfg Config) *Service {
	return &Service{
		ratingRepo:   ratingRepo,
		beverageRepo: beverageRepo,
		model:        model,
		cfg:          cfg.withDefaults(),
		biases:       make(map[int]float64),
		retrainCh:    make(chan struct{}, 1),
	}
}

// Start launches the retrain worker. It exits when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.retrainCh:
				if err := s.Retrain(ctx); err != nil {
					logger.Error("background retrain failed", "error", err)
				}
			}
		}
	}()
}

// SubmitRating records one rating for a beverage the session was shown.
// Submitting again for the same pair replaces the score instead of
// double counting it. Ratings key on the beverage; when a presentation
// id is supplied its aggregate is kept current too, so recommendations
// can surface the best rated presentation.
func (s *Service) SubmitRating(ctx context.Context, sessionID string, beverageID uint64, presentationID string, score int, userVector []float64) (domain.RatingFeedback, error) {
	if err := ctx.Err(); err != nil {
		return domain.RatingFeedback{}, fmt.Errorf("context error: %w", err)
	}
	if score < 1 || score > 5 {
		return domain.RatingFeedback{}, domain.ErrInvalidRating
	}

	beverage, err := s.beverageRepo.GetByID(ctx, beverageID)
	if err != nil {
		return domain.RatingFeedback{}, fmt.Errorf("load beverage %d: %w", beverageID, err)
	}

	vec := make([]interface{}, len(userVector))
	for i, v := range userVector {
		vec[i] = v
	}
	ratingCtx := datatypes.JSONMap{
		"user_vector": vec,
	}
	if presentationID != "" {
		ratingCtx["presentation_id"] = presentationID
	}
	rating := domain.Rating{
		SessionID:  sessionID,
		BeverageID: beverageID,
		Score:      score,
		Context:    ratingCtx,
	}

	replaced, err := s.ratingRepo.Upsert(ctx, rating)
	if err != nil {
		return domain.RatingFeedback{}, fmt.Errorf("save rating: %w", err)
	}
	existed := replaced != nil
	previousScore := 0
	previousPresentation := ""
	if existed {
		previousScore = replaced.Score
		previousPresentation = presentationFromContext(replaced.Context)
	}

	mean, count, err := s.beverageRepo.ApplyRating(ctx, beverageID, score, previousScore, existed)
	if err != nil {
		return domain.RatingFeedback{}, fmt.Errorf("update rating stats: %w", err)
	}

	if err := s.applyPresentationStats(ctx, presentationID, previousPresentation, score, previousScore); err != nil {
		return domain.RatingFeedback{}, fmt.Errorf("update presentation stats: %w", err)
	}

	peers := s.nudgeCluster(ctx, beverage, score)

	retrainQueued := false
	if !existed {
		if s.pending.Add(1) >= int64(s.cfg.RetrainThreshold) {
			s.pending.Store(0)
			retrainQueued = s.requestRetrain()
		}
	}

	logger.Debug("rating recorded",
		"session_id", sessionID,
		"beverage_id", beverageID,
		"score", score,
		"replaced", existed,
		"beverage_mean", mean,
		"retrain_queued", retrainQueued,
	)

	fb := feedbackFor(score)
	fb.ClusterPeersAffected = peers
	fb.BeverageMean = mean
	fb.BeverageRatings = int64(count)
	fb.Retrained = retrainQueued
	return fb, nil
}

// applyPresentationStats keeps the per-presentation aggregates in step
// with the rating. A re-rating on the same presentation replaces the
// score; one that moved takes the old score out of the previous
// presentation before folding the new one in.
func (s *Service) applyPresentationStats(ctx context.Context, presentationID, previousPresentation string, score, previousScore int) error {
	if presentationID == previousPresentation {
		if presentationID == "" {
			return nil
		}
		return s.beverageRepo.ApplyPresentationRating(ctx, presentationID, score, previousScore, previousScore != 0)
	}

	if previousPresentation != "" {
		if err := s.beverageRepo.RemovePresentationRating(ctx, previousPresentation, previousScore); err != nil {
			return err
		}
	}
	if presentationID != "" {
		return s.beverageRepo.ApplyPresentationRating(ctx, presentationID, score, 0, false)
	}
	return nil
}

// nudgeCluster shifts the shared bias of the beverage's cluster toward
// the rating direction, so one strong rating gently lifts or sinks the
// beverage's neighbors until the next retrain.
func (s *Service) nudgeCluster(ctx context.Context, b domain.Beverage, score int) int {
	if b.ClusterID < 0 {
		return 0
	}

	s.mu.Lock()
	bias := s.biases[b.ClusterID] + 0.02*float64(score-3)
	if bias > s.cfg.MaxClusterBias {
		bias = s.cfg.MaxClusterBias
	}
	if bias < -s.cfg.MaxClusterBias {
		bias = -s.cfg.MaxClusterBias
	}
	s.biases[b.ClusterID] = bias
	s.mu.Unlock()

	peers, err := s.beverageRepo.CountByCluster(ctx, b.ClusterID)
	if err != nil {
		logger.Warn("cluster peer count failed", "cluster_id", b.ClusterID, "error", err)
		return 0
	}
	if peers > 0 {
		peers-- // the rated beverage itself is not a peer
	}
	return int(peers)
}

// ClusterBias is the current shared adjustment for a cluster, on the
// 1..5 rating scale.
func (s *Service) ClusterBias(clusterID int) float64 {
	if clusterID < 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.biases[clusterID]
}

// requestRetrain queues a retrain without blocking; a request already
// in flight absorbs this one.
func (s *Service) requestRetrain() bool {
	select {
	case s.retrainCh <- struct{}{}:
		return true
	default:
		return true // coalesced into the queued request
	}
}

// Retrain rebuilds the model from every stored rating and publishes the
// new snapshot. Cluster biases reset, their effect is now baked into
// the model.
func (s *Service) Retrain(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	ratings, err := s.ratingRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load ratings: %w", err)
	}

	samples := make([]predictor.Sample, 0, len(ratings))
	for _, r := range ratings {
		userVec, ok := vectorFromContext(r.Context)
		if !ok {
			continue
		}
		beverage, err := s.beverageRepo.GetByID(ctx, r.BeverageID)
		if err != nil {
			if errors.Is(err, domain.ErrBeverageNotFound) {
				// stale rating for a beverage no longer in the catalog
				continue
			}
			return fmt.Errorf("load beverage %d for retrain: %w", r.BeverageID, err)
		}
		samples = append(samples, predictor.Sample{
			User:     userVec,
			Beverage: predictor.BeverageVector(beverage),
			Rating:   float64(r.Score),
		})
	}

	version := s.version.Add(1)
	snap := predictor.Train(samples, version, s.cfg.Model)
	if current := s.model.Current(); !snap.Trained() && current.Trained() {
		// never replace a working model with an untrained one
		logger.Warn("retrain yielded too few samples, keeping current model",
			"samples", len(samples),
			"kept_version", current.Version,
		)
		return nil
	}
	s.model.Swap(snap)
	metrics.ModelRetrains.Inc()

	if snap.Trained() {
		s.mu.Lock()
		s.biases = make(map[int]float64)
		s.mu.Unlock()
	}

	logger.Info("model retrain finished",
		"version", version,
		"samples", len(samples),
		"trained", snap.Trained(),
	)
	return nil
}

func presentationFromContext(ctx datatypes.JSONMap) string {
	id, _ := ctx["presentation_id"].(string)
	return id
}

func vectorFromContext(ctx datatypes.JSONMap) ([]float64, bool) {
	raw, ok := ctx["user_vector"].([]interface{})
	if !ok {
		return nil, false
	}
	vec := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		vec = append(vec, f)
	}
	return vec, true
}
