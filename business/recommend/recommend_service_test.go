package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"refrescoBot/business/decision"
	"refrescoBot/business/predictor"
	"refrescoBot/domain"
)

// ---- fakes ----

type fakeSessionStore struct {
	sessions map[string]domain.Session
}

func (f *fakeSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (f *fakeSessionStore) Save(_ context.Context, session *domain.Session) error {
	if f.sessions == nil {
		f.sessions = map[string]domain.Session{}
	}
	f.sessions[session.ID] = *session
	return nil
}

type fakeQuestionRepo struct{}

func (fakeQuestionRepo) FindAll(_ context.Context) ([]domain.Question, error) {
	return domain.DefaultQuestions(), nil
}

type fakeBeverageRepo struct {
	beverages []domain.Beverage
}

func (f *fakeBeverageRepo) FindAll(_ context.Context) ([]domain.Beverage, error) {
	return f.beverages, nil
}

type fakeRatingRecorder struct {
	lastSession  string
	lastBeverage uint64
	lastScore    int
	lastVector   []float64
}

func (f *fakeRatingRecorder) SubmitRating(_ context.Context, sessionID string, beverageID uint64, _ string, score int, userVector []float64) (domain.RatingFeedback, error) {
	f.lastSession = sessionID
	f.lastBeverage = beverageID
	f.lastScore = score
	f.lastVector = userVector
	return domain.RatingFeedback{Score: score}, nil
}

func testCatalog() []domain.Beverage {
	return []domain.Beverage{
		{ID: 1, Name: "Cola", Category: domain.BeverageConventional, SweetnessLevel: 9, Caffeinated: true, Carbonated: true, CalorieBand: domain.CaloriesHigh, ClusterID: 0},
		{ID: 2, Name: "Orange Soda", Category: domain.BeverageConventional, SweetnessLevel: 8, Carbonated: true, CalorieBand: domain.CaloriesHigh, ClusterID: 0},
		{ID: 3, Name: "Lemon Soda", Category: domain.BeverageConventional, SweetnessLevel: 7, Carbonated: true, CalorieBand: domain.CaloriesMedium, ClusterID: 0},
		{ID: 4, Name: "Energy Drink", Category: domain.BeverageConventional, SweetnessLevel: 8, Caffeinated: true, Energizing: true, CalorieBand: domain.CaloriesHigh, ClusterID: 1},
		{ID: 5, Name: "Mineral Water", Category: domain.BeverageHealthOriented, SweetnessLevel: 0, CalorieBand: domain.CaloriesZero, ClusterID: 2},
		{ID: 6, Name: "Green Tea", Category: domain.BeverageHealthOriented, SweetnessLevel: 2, Caffeinated: true, CalorieBand: domain.CaloriesVeryLow, ClusterID: 2},
		{ID: 7, Name: "Orange Juice", Category: domain.BeverageHealthOriented, SweetnessLevel: 6, CalorieBand: domain.CaloriesMedium, ClusterID: 2},
		{ID: 8, Name: "Coconut Water", Category: domain.BeverageHealthOriented, SweetnessLevel: 3, CalorieBand: domain.CaloriesLow, ClusterID: 2},
	}
}

func newService(t *testing.T) (*Service, *fakeSessionStore, *fakeRatingRecorder) {
	t.Helper()
	store := &fakeSessionStore{}
	recorder := &fakeRatingRecorder{}
	svc := NewService(
		store,
		fakeQuestionRepo{},
		&fakeBeverageRepo{beverages: testCatalog()},
		decision.NewEngine(decision.DefaultRules(), 0.15),
		predictor.NewService(predictor.Config{}),
		nil,
		recorder,
		Config{TotalQuestions: 4, MaxInitial: 3, MaxMore: 3},
	)
	return svc, store, recorder
}

// answerAll walks the session's quiz picking the option selected by
// pick, which maps question id to option id (missing = first option).
func answerAll(t *testing.T, svc *Service, session *domain.Session, quiz []domain.Question, pick map[uint64]uint64) {
	t.Helper()
	ctx := context.Background()
	for i, q := range quiz {
		optID := q.Options[0].ID
		if id, ok := pick[q.ID]; ok {
			optID = id
		}
		completed, err := svc.RecordAnswer(ctx, session.ID, q.ID, optID, 4.0)
		if err != nil {
			t.Fatalf("RecordAnswer(q=%d) error = %v", q.ID, err)
		}
		if want := i == len(quiz)-1; completed != want {
			t.Fatalf("RecordAnswer(q=%d) completed = %v, want %v", q.ID, completed, want)
		}
	}
}

func TestStartSessionDrawsStableQuiz(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	session, quiz, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if len(quiz) != 4 {
		t.Fatalf("quiz length = %d, want 4", len(quiz))
	}
	if !quiz[0].Fixed || quiz[0].ID != 1 {
		t.Errorf("first question = %d, want the fixed consumption question", quiz[0].ID)
	}
	if got := store.sessions[session.ID].State; got != domain.SessionCreated {
		t.Errorf("state = %v, want created", got)
	}

	// same id draws the same quiz
	questions, _ := fakeQuestionRepo{}.FindAll(ctx)
	again := drawQuiz(questions, 4, session.ID)
	for i := range quiz {
		if quiz[i].ID != again[i].ID {
			t.Fatalf("quiz draw not stable: %v vs %v at %d", quiz[i].ID, again[i].ID, i)
		}
	}
}

func TestRecordAnswerStateMachine(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	session, quiz, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	// unknown question
	if _, err := svc.RecordAnswer(ctx, session.ID, 999, 1, 1.0); !errors.Is(err, domain.ErrMalformedAnswer) {
		t.Errorf("unknown question: error = %v, want ErrMalformedAnswer", err)
	}

	answerAll(t, svc, session, quiz, nil)

	// repeat answer after completion
	if _, err := svc.RecordAnswer(ctx, session.ID, quiz[0].ID, quiz[0].Options[0].ID, 1.0); !errors.Is(err, domain.ErrSessionFinished) {
		t.Errorf("answer after completion: error = %v, want ErrSessionFinished", err)
	}

	// missing session
	if _, err := svc.RecordAnswer(ctx, "nope", 1, 11, 1.0); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("missing session: error = %v, want ErrSessionNotFound", err)
	}
}

func TestRecommendationsRequireCompletion(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if _, err := svc.ComputeRecommendations(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotCompleted) {
		t.Errorf("error = %v, want ErrSessionNotCompleted", err)
	}
	if _, err := svc.RequestMore(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotCompleted) {
		t.Errorf("RequestMore error = %v, want ErrSessionNotCompleted", err)
	}
}

func completeSession(t *testing.T, svc *Service, pick map[uint64]uint64) *domain.Session {
	t.Helper()
	session, quiz, err := svc.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	answerAll(t, svc, session, quiz, pick)
	return session
}

func TestComputeRecommendationsAndReplay(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	// loves sodas, very sweet where asked
	session := completeSession(t, svc, map[uint64]uint64{1: 11, 3: 31, 4: 41})

	first, err := svc.ComputeRecommendations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ComputeRecommendations() error = %v", err)
	}
	if first.Replay {
		t.Error("first computation marked as replay")
	}
	if len(first.Items) == 0 {
		t.Fatal("no recommendations")
	}
	for _, it := range first.Items {
		if it.Category != domain.BeverageConventional {
			t.Errorf("beverage %d category = %q, want conventional for soda lover", it.BeverageID, it.Category)
		}
		if it.Probability < predictor.MinProbability || it.Probability > predictor.MaxProbability {
			t.Errorf("probability %v out of range", it.Probability)
		}
		if len(it.Factors) == 0 {
			t.Errorf("beverage %d has no factors", it.BeverageID)
		}
	}

	second, err := svc.ComputeRecommendations(ctx, session.ID)
	if err != nil {
		t.Fatalf("replay error = %v", err)
	}
	if !second.Replay {
		t.Error("second computation not marked as replay")
	}
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Error("replay returned different items")
	}
}

func TestHealthUserGetsOnlyAlternatives(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	// never drinks sodas
	session := completeSession(t, svc, map[uint64]uint64{1: 14})

	got, err := svc.ComputeRecommendations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ComputeRecommendations() error = %v", err)
	}
	if len(got.Items) == 0 {
		t.Fatal("no recommendations")
	}
	if len(got.Items) > 4 {
		t.Errorf("items = %d, want at most 4 for a healthy user", len(got.Items))
	}
	for _, it := range got.Items {
		if it.Category != domain.BeverageHealthOriented {
			t.Errorf("beverage %d is not health oriented", it.BeverageID)
		}
	}
}

func TestMoreOptionsNoDuplicates(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	session := completeSession(t, svc, map[uint64]uint64{1: 11, 3: 31, 4: 41})
	initial, err := svc.ComputeRecommendations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ComputeRecommendations() error = %v", err)
	}

	seen := map[uint64]bool{}
	for _, it := range initial.Items {
		seen[it.BeverageID] = true
	}

	for page := 0; page < 5; page++ {
		more, err := svc.RequestMore(ctx, session.ID)
		if err != nil {
			t.Fatalf("RequestMore(page %d) error = %v", page, err)
		}
		if more.Exhausted {
			if len(more.Items) != 0 {
				t.Errorf("exhausted page still has %d items", len(more.Items))
			}
			return
		}
		if len(more.Items) == 0 {
			t.Fatalf("page %d empty but not exhausted", page)
		}
		for _, it := range more.Items {
			if seen[it.BeverageID] {
				t.Errorf("beverage %d recommended twice", it.BeverageID)
			}
			seen[it.BeverageID] = true
		}
	}
	t.Fatal("catalog never exhausted")
}

func TestPrefersAlternativesParity(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	// prefers alternatives but drinks sodas occasionally
	session := completeSession(t, svc, map[uint64]uint64{1: 13})
	initial, err := svc.ComputeRecommendations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ComputeRecommendations() error = %v", err)
	}
	for _, it := range initial.Items {
		if it.Category != domain.BeverageHealthOriented {
			t.Fatalf("initial set for alternative-leaning user contains soda %d", it.BeverageID)
		}
	}

	// first pull: the sodas held back
	first, err := svc.RequestMore(ctx, session.ID)
	if err != nil {
		t.Fatalf("RequestMore() error = %v", err)
	}
	if first.Kind != "optional_sodas" {
		t.Errorf("first page kind = %q, want optional_sodas", first.Kind)
	}
	for _, it := range first.Items {
		if it.Category != domain.BeverageConventional {
			t.Errorf("first page beverage %d should be a soda", it.BeverageID)
		}
	}

	// second pull: back to alternatives (or cross category if spent)
	second, err := svc.RequestMore(ctx, session.ID)
	if err != nil {
		t.Fatalf("RequestMore() error = %v", err)
	}
	if second.Kind == "optional_sodas" {
		t.Errorf("second page kind = %q, want alternatives", second.Kind)
	}
}

func TestExhaustionSignalled(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	session := completeSession(t, svc, map[uint64]uint64{1: 11, 3: 31, 4: 41})
	if _, err := svc.ComputeRecommendations(ctx, session.ID); err != nil {
		t.Fatalf("ComputeRecommendations() error = %v", err)
	}

	sawExhausted := false
	for page := 0; page < 8; page++ {
		more, err := svc.RequestMore(ctx, session.ID)
		if err != nil {
			t.Fatalf("RequestMore() error = %v", err)
		}
		if more.Exhausted {
			sawExhausted = true
			break
		}
	}
	if !sawExhausted {
		t.Fatal("catalog exhaustion never signalled")
	}
	if got := store.sessions[session.ID].State; got != domain.SessionExhausted {
		t.Errorf("state = %v, want exhausted", got)
	}

	// exhausted sessions still replay their initial result
	replay, err := svc.ComputeRecommendations(ctx, session.ID)
	if err != nil {
		t.Fatalf("replay error = %v", err)
	}
	if !replay.Replay || len(replay.Items) == 0 {
		t.Error("exhausted session lost its initial result")
	}

	// further pulls keep signalling exhaustion
	again, err := svc.RequestMore(ctx, session.ID)
	if err != nil {
		t.Fatalf("RequestMore() after exhaustion error = %v", err)
	}
	if !again.Exhausted {
		t.Error("exhaustion signal not sticky")
	}
}

func TestRateBeverageForwardsProfile(t *testing.T) {
	svc, _, recorder := newService(t)
	ctx := context.Background()

	session := completeSession(t, svc, map[uint64]uint64{1: 11, 4: 41})
	recs, err := svc.ComputeRecommendations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ComputeRecommendations() error = %v", err)
	}
	rated := recs.Items[0].BeverageID

	if _, err := svc.RateBeverage(ctx, session.ID, rated, "", 5); err != nil {
		t.Fatalf("RateBeverage() error = %v", err)
	}
	if recorder.lastSession != session.ID || recorder.lastBeverage != rated || recorder.lastScore != 5 {
		t.Errorf("rating forwarded wrong: %+v", recorder)
	}
	if len(recorder.lastVector) == 0 {
		t.Error("profile vector not forwarded")
	}

	// beverages never shown cannot be rated
	if _, err := svc.RateBeverage(ctx, session.ID, 999, "", 5); !errors.Is(err, domain.ErrInvalidRating) {
		t.Errorf("unshown beverage: error = %v, want ErrInvalidRating", err)
	}

	// incomplete sessions cannot rate
	fresh, _, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if _, err := svc.RateBeverage(ctx, fresh.ID, 1, "", 5); !errors.Is(err, domain.ErrSessionNotCompleted) {
		t.Errorf("error = %v, want ErrSessionNotCompleted", err)
	}
}
