package recommend

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"refrescoBot/business/decision"
	"refrescoBot/business/predictor"
	"refrescoBot/business/profile"
	"refrescoBot/domain"
	"refrescoBot/pkg/logger"
)

// ---- Repository interfaces ----

type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

type QuestionRepository interface {
	FindAll(ctx context.Context) ([]domain.Question, error)
}

type BeverageRepository interface {
	FindAll(ctx context.Context) ([]domain.Beverage, error)
}

// Scorer is the prediction side of the engine.
type Scorer interface {
	Predict(p profile.Profile, b domain.Beverage) predictor.Prediction
}

// BiasSource supplies the live per-cluster adjustment accumulated from
// ratings since the last retrain.
type BiasSource interface {
	ClusterBias(clusterID int) float64
}

// RatingRecorder absorbs a rating event.
type RatingRecorder interface {
	SubmitRating(ctx context.Context, sessionID string, beverageID uint64, presentationID string, score int, userVector []float64) (domain.RatingFeedback, error)
}

// ---- Usecase / Service ----

type Config struct {
	TotalQuestions    int
	MaxInitial        int
	MaxMore           int
	MaxHealthyInitial int
	MaxHealthyUser    int
}

func (c Config) withDefaults() Config {
	if c.TotalQuestions <= 0 {
		c.TotalQuestions = 6
	}
	if c.MaxInitial <= 0 {
		c.MaxInitial = 3
	}
	if c.MaxMore <= 0 {
		c.MaxMore = 3
	}
	if c.MaxHealthyInitial <= 0 {
		c.MaxHealthyInitial = 3
	}
	if c.MaxHealthyUser <= 0 {
		c.MaxHealthyUser = 4
	}
	return c
}

// Service drives the whole quiz-to-recommendation flow: session
// lifecycle, answer collection, the initial recommendation set and the
// paged "more options" follow-ups.
type Service struct {
	sessions     SessionStore
	questionRepo QuestionRepository
	beverageRepo BeverageRepository
	engine       *decision.Engine
	scorer       Scorer
	bias         BiasSource
	ratings      RatingRecorder
	cfg          Config
}

func NewService(
	sessions SessionStore,
	questionRepo QuestionRepository,
	beverageRepo BeverageRepository,
	engine *decision.Engine,
	scorer Scorer,
	bias BiasSource,
	ratings RatingRecorder,
	cfg Config,
) *Service {
	return &Service{
		sessions:     sessions,
		questionRepo: questionRepo,
		beverageRepo: beverageRepo,
		engine:       engine,
		scorer:       scorer,
		bias:         bias,
		ratings:      ratings,
		cfg:          cfg.withDefaults(),
	}
}

// ---- session lifecycle ----

// StartSession creates a session and draws its quiz: fixed questions
// first in catalog order, then a selection of the rest seeded by the
// session id, so reloading the same session shows the same quiz.
func (s *Service) StartSession(ctx context.Context) (*domain.Session, []domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}

	questions, err := s.questionRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load questions: %w", err)
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		State:     domain.SessionCreated,
		CreatedAt: time.Now(),
	}

	quiz := drawQuiz(questions, s.cfg.TotalQuestions, session.ID)
	for _, q := range quiz {
		session.QuestionIDs = append(session.QuestionIDs, q.ID)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save session: %w", err)
	}

	logger.Debug("session started", "session_id", session.ID, "questions", len(quiz))
	return session, quiz, nil
}

func drawQuiz(questions []domain.Question, total int, sessionID string) []domain.Question {
	var fixed, pool []domain.Question
	for _, q := range questions {
		if q.Fixed {
			fixed = append(fixed, q)
		} else {
			pool = append(pool, q)
		}
	}
	sort.Slice(fixed, func(i, j int) bool { return fixed[i].Position < fixed[j].Position })
	sort.Slice(pool, func(i, j int) bool { return pool[i].Position < pool[j].Position })

	h := fnv.New64a()
	h.Write([]byte(sessionID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	quiz := fixed
	for _, q := range pool {
		if len(quiz) >= total {
			break
		}
		quiz = append(quiz, q)
	}
	if len(quiz) > total {
		quiz = quiz[:total]
	}
	return quiz
}

// RecordAnswer appends one answer to the session. It reports whether
// the quiz is now complete.
func (s *Service) RecordAnswer(ctx context.Context, sessionID string, questionID, optionID uint64, latencySeconds float64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if session.State != domain.SessionCreated && session.State != domain.SessionAnswering {
		return false, domain.ErrSessionFinished
	}
	if !session.InQuiz(questionID) {
		return false, fmt.Errorf("%w: question %d is not part of this quiz", domain.ErrMalformedAnswer, questionID)
	}
	if session.Answered(questionID) {
		return false, fmt.Errorf("%w: question %d already answered", domain.ErrMalformedAnswer, questionID)
	}

	questions, err := s.questionRepo.FindAll(ctx)
	if err != nil {
		return false, fmt.Errorf("load questions: %w", err)
	}
	var question domain.Question
	for _, q := range questions {
		if q.ID == questionID {
			question = q
			break
		}
	}
	option, ok := question.OptionByID(optionID)
	if !ok {
		return false, fmt.Errorf("%w: question %d has no option %d", domain.ErrMalformedAnswer, questionID, optionID)
	}

	session.Answers = append(session.Answers, domain.Answer{
		QuestionID:     questionID,
		OptionID:       optionID,
		Category:       question.Category,
		Value:          option.Value,
		Weight:         option.Weight * question.Weight,
		LatencySeconds: latencySeconds,
		AnsweredAt:     time.Now(),
	})

	session.State = domain.SessionAnswering
	completed := len(session.Answers) == len(session.QuestionIDs)
	if completed {
		session.State = domain.SessionCompleted
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return false, fmt.Errorf("save session: %w", err)
	}
	return completed, nil
}

// ---- recommendations ----

// ComputeRecommendations builds the initial recommendation set for a
// completed quiz. Calling it again replays the cached result instead of
// recomputing, so refreshing the page never changes the answer.
func (s *Service) ComputeRecommendations(ctx context.Context, sessionID string) (domain.RecommendationSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("context error: %w", err)
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	switch session.State {
	case domain.SessionCreated, domain.SessionAnswering:
		return domain.RecommendationSet{}, domain.ErrSessionNotCompleted
	case domain.SessionRecommended, domain.SessionExhausted:
		return domain.RecommendationSet{
			SessionID: session.ID,
			Decision:  session.Decision,
			Items:     session.Initial,
			Message:   session.InitialMessage,
			Replay:    true,
		}, nil
	}

	p, err := s.buildProfile(ctx, session)
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	outcome := s.engine.Decide(p)

	beverages, err := s.beverageRepo.FindAll(ctx)
	if err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("load beverages: %w", err)
	}
	conventional, health := s.scoreSplit(p, beverages, nil)

	items, message := s.composeInitial(p, outcome.Decision, conventional, health)

	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.BeverageID)
	}
	session.MarkShown(ids...)
	session.Decision = outcome.Decision
	session.Initial = items
	session.InitialMessage = message
	session.State = domain.SessionRecommended

	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("save session: %w", err)
	}

	logger.Info("recommendations computed",
		"session_id", session.ID,
		"decision", outcome.Decision,
		"short_circuit", outcome.ShortCircuited(),
		"decided_by_question", outcome.QuestionID,
		"items", len(items),
	)

	return domain.RecommendationSet{
		SessionID: session.ID,
		Decision:  outcome.Decision,
		Items:     items,
		Message:   message,
	}, nil
}

func (s *Service) composeInitial(p profile.Profile, d domain.CategoryDecision, conventional, health []domain.Recommendation) ([]domain.Recommendation, string) {
	switch consumption := p.Signal(domain.CategoryConsumption); {
	case consumption == domain.ValueNoSodas:
		return firstN(health, s.cfg.MaxHealthyUser),
			"You told us sodas are not your thing, so everything here is a healthy pick:"
	case consumption == domain.ValuePrefersAlternatives:
		return firstN(health, s.cfg.MaxHealthyInitial*2),
			"We lead with healthy alternatives; hit 'more options' if you feel like a soda:"
	case d == domain.DecisionHealthOnly:
		return firstN(health, s.cfg.MaxHealthyInitial),
			"Based on your health-minded answers, these alternatives fit you best:"
	case d == domain.DecisionMixed:
		return interleave(conventional, health, s.cfg.MaxInitial+1),
			"Your answers point both ways, so here is the best of each side:"
	default:
		return firstN(conventional, s.cfg.MaxInitial),
			"These sodas line up with what you told us:"
	}
}

// RequestMore serves the next page of unseen recommendations. The page
// category depends on the user type and, for alternative-leaning users,
// on how many pages they already pulled.
func (s *Service) RequestMore(ctx context.Context, sessionID string) (domain.MoreResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.MoreResult{}, fmt.Errorf("context error: %w", err)
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.MoreResult{}, err
	}
	switch session.State {
	case domain.SessionCreated, domain.SessionAnswering, domain.SessionCompleted:
		return domain.MoreResult{}, domain.ErrSessionNotCompleted
	case domain.SessionExhausted:
		return exhausted(session.ID), nil
	}

	p, err := s.buildProfile(ctx, session)
	if err != nil {
		return domain.MoreResult{}, err
	}

	beverages, err := s.beverageRepo.FindAll(ctx)
	if err != nil {
		return domain.MoreResult{}, fmt.Errorf("load beverages: %w", err)
	}
	conventional, health := s.scoreSplit(p, beverages, session)

	if len(conventional) == 0 && len(health) == 0 {
		session.State = domain.SessionExhausted
		if err := s.sessions.Save(ctx, session); err != nil {
			return domain.MoreResult{}, fmt.Errorf("save session: %w", err)
		}
		return exhausted(session.ID), nil
	}

	items, kind, message := s.composeMore(p, session, conventional, health)

	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.BeverageID)
	}
	session.MarkShown(ids...)
	session.MoreClicks++
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.MoreResult{}, fmt.Errorf("save session: %w", err)
	}

	return domain.MoreResult{
		SessionID: session.ID,
		Items:     items,
		Kind:      kind,
		Message:   message,
	}, nil
}

func (s *Service) composeMore(p profile.Profile, session *domain.Session, conventional, health []domain.Recommendation) ([]domain.Recommendation, string, string) {
	var items []domain.Recommendation
	var kind, message string

	switch consumption := p.Signal(domain.CategoryConsumption); {
	case consumption == domain.ValueNoSodas:
		items = firstN(health, s.cfg.MaxMore)
		kind, message = "healthy_alternatives", "More healthy options made for you:"
	case consumption == domain.ValuePrefersAlternatives && session.MoreClicks == 0:
		// first pull offers the sodas held back from the initial set
		items = firstN(conventional, s.cfg.MaxMore)
		kind, message = "optional_sodas", "In case you change your mind, here are some sodas:"
	case consumption == domain.ValuePrefersAlternatives:
		items = firstN(health, s.cfg.MaxMore)
		kind, message = "healthy_alternatives", "More healthy alternatives:"
	case session.Decision == domain.DecisionHealthOnly:
		items = firstN(health, s.cfg.MaxMore)
		kind, message = "healthy_alternatives", "More healthy alternatives based on your preferences:"
	case session.Decision == domain.DecisionMixed:
		items = interleave(conventional, health, s.cfg.MaxMore)
		kind, message = "mixed", "More options from both sides:"
	default:
		items = firstN(conventional, s.cfg.MaxMore)
		kind, message = "traditional_sodas", "More sodas you might like:"
	}

	// cross over to the other category before giving up
	if len(items) == 0 {
		if kind == "traditional_sodas" && len(health) > 0 {
			items = firstN(health, s.cfg.MaxMore)
			kind, message = "cross_category", "No more sodas left, but here are some healthy alternatives:"
		} else if len(conventional) > 0 {
			items = firstN(conventional, s.cfg.MaxMore)
			kind, message = "cross_category", "No more alternatives left, but here are some sodas:"
		}
	}
	return items, kind, message
}

func exhausted(sessionID string) domain.MoreResult {
	return domain.MoreResult{
		SessionID: sessionID,
		Items:     []domain.Recommendation{},
		Exhausted: true,
		Message:   "You've seen everything we have; rate a few drinks so the picks get sharper.",
	}
}

// RateBeverage validates the session and forwards the rating with the
// session's profile vector attached as training context. Only beverages
// actually shown to the session can be rated.
func (s *Service) RateBeverage(ctx context.Context, sessionID string, beverageID uint64, presentationID string, score int) (domain.RatingFeedback, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.RatingFeedback{}, err
	}
	if session.State == domain.SessionCreated || session.State == domain.SessionAnswering {
		return domain.RatingFeedback{}, domain.ErrSessionNotCompleted
	}
	if !session.Seen(beverageID) {
		return domain.RatingFeedback{}, fmt.Errorf("%w: beverage %d was never shown to this session", domain.ErrInvalidRating, beverageID)
	}

	p, err := s.buildProfile(ctx, session)
	if err != nil {
		return domain.RatingFeedback{}, err
	}
	return s.ratings.SubmitRating(ctx, sessionID, beverageID, presentationID, score, p.Vector)
}

// ---- scoring helpers ----

func (s *Service) buildProfile(ctx context.Context, session *domain.Session) (profile.Profile, error) {
	questions, err := s.questionRepo.FindAll(ctx)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("load questions: %w", err)
	}
	p, err := profile.NewBuilder(questions).Build(session.Answers)
	if err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

// scoreSplit predicts every beverage and splits the results by catalog
// category, each side sorted best first. A non-nil session filters out
// beverages it has already seen.
func (s *Service) scoreSplit(p profile.Profile, beverages []domain.Beverage, session *domain.Session) (conventional, health []domain.Recommendation) {
	for _, b := range beverages {
		if session != nil && session.Seen(b.ID) {
			continue
		}
		rec := s.score(p, b)
		if b.Conventional() {
			conventional = append(conventional, rec)
		} else {
			health = append(health, rec)
		}
	}
	sortRecommendations(conventional)
	sortRecommendations(health)
	return conventional, health
}

func (s *Service) score(p profile.Profile, b domain.Beverage) domain.Recommendation {
	pred := s.scorer.Predict(p, b)

	rating := pred.Rating
	if s.bias != nil {
		rating += s.bias.ClusterBias(b.ClusterID)
	}
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}

	probability := rating * 20
	if probability < predictor.MinProbability {
		probability = predictor.MinProbability
	}
	if probability > predictor.MaxProbability {
		probability = predictor.MaxProbability
	}

	return domain.Recommendation{
		BeverageID:     b.ID,
		BeverageName:   b.Name,
		Category:       b.Category,
		PresentationID: bestPresentation(b),
		Probability:    probability,
		Score:          rating,
		Factors:        pred.Factors,
		Tags:           []string(b.Tags),
	}
}

// bestPresentation picks the highest rated presentation; an unrated
// catalog falls back to the first one.
func bestPresentation(b domain.Beverage) string {
	if len(b.Presentations) == 0 {
		return ""
	}
	best := b.Presentations[0]
	for _, pr := range b.Presentations[1:] {
		if pr.RatingMean > best.RatingMean {
			best = pr
		}
	}
	return best.ID
}

func sortRecommendations(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].BeverageID < recs[j].BeverageID
	})
}

func firstN(recs []domain.Recommendation, n int) []domain.Recommendation {
	if len(recs) > n {
		recs = recs[:n]
	}
	return append([]domain.Recommendation{}, recs...)
}

// interleave alternates both lists starting with the stronger top item.
func interleave(a, b []domain.Recommendation, n int) []domain.Recommendation {
	if len(b) > 0 && (len(a) == 0 || b[0].Score > a[0].Score) {
		a, b = b, a
	}
	out := make([]domain.Recommendation, 0, n)
	for i := 0; len(out) < n && (i < len(a) || i < len(b)); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if len(out) < n && i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}
