package predictor

import (
	"math/rand"
	"reflect"
	"testing"

	"refrescoBot/business/profile"
	"refrescoBot/domain"
)

func healthProfile(t *testing.T) profile.Profile {
	t.Helper()
	b := profile.NewBuilder(domain.DefaultQuestions())
	p, err := b.Build([]domain.Answer{
		{QuestionID: 1, OptionID: 14, LatencySeconds: 4}, // never drinks sodas
		{QuestionID: 3, OptionID: 35, LatencySeconds: 5}, // zero sugar
		{QuestionID: 4, OptionID: 42, LatencySeconds: 6}, // priority health
		{QuestionID: 8, OptionID: 83, LatencySeconds: 4}, // avoids caffeine
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func sodaProfile(t *testing.T) profile.Profile {
	t.Helper()
	b := profile.NewBuilder(domain.DefaultQuestions())
	p, err := b.Build([]domain.Answer{
		{QuestionID: 1, OptionID: 11, LatencySeconds: 4}, // loves sodas
		{QuestionID: 3, OptionID: 31, LatencySeconds: 5}, // very sweet
		{QuestionID: 4, OptionID: 41, LatencySeconds: 6}, // priority flavor
		{QuestionID: 8, OptionID: 81, LatencySeconds: 4}, // wants caffeine
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

var cola = domain.Beverage{
	ID: 1, Name: "Cola", Category: domain.BeverageConventional,
	SweetnessLevel: 9, Caffeinated: true, Carbonated: true,
	CalorieBand: domain.CaloriesHigh,
}

var water = domain.Beverage{
	ID: 2, Name: "Mineral Water", Category: domain.BeverageHealthOriented,
	SweetnessLevel: 0, CalorieBand: domain.CaloriesZero,
}

func TestHeuristicOrdering(t *testing.T) {
	svc := NewService(Config{})

	hp := healthProfile(t)
	sp := sodaProfile(t)

	if !svc.Predict(hp, cola).Heuristic {
		t.Fatal("expected heuristic path with untrained model")
	}

	if w, c := svc.Predict(hp, water), svc.Predict(hp, cola); w.Rating <= c.Rating {
		t.Errorf("health profile: water %.2f should outscore cola %.2f", w.Rating, c.Rating)
	}
	if c, w := svc.Predict(sp, cola), svc.Predict(sp, water); c.Rating <= w.Rating {
		t.Errorf("soda profile: cola %.2f should outscore water %.2f", c.Rating, w.Rating)
	}
}

func TestProbabilityClamped(t *testing.T) {
	svc := NewService(Config{})
	profiles := []profile.Profile{healthProfile(t), sodaProfile(t)}
	beverages := []domain.Beverage{cola, water}

	for _, p := range profiles {
		for _, b := range beverages {
			got := svc.Predict(p, b)
			if got.Probability < MinProbability || got.Probability > MaxProbability {
				t.Errorf("probability %.2f outside [%v,%v]", got.Probability, MinProbability, MaxProbability)
			}
			if got.Rating < minRating || got.Rating > maxRating {
				t.Errorf("rating %.2f outside [1,5]", got.Rating)
			}
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	svc := NewService(Config{})
	p := healthProfile(t)

	first := svc.Predict(p, cola)
	second := svc.Predict(p, cola)

	if first.Rating != second.Rating {
		t.Errorf("ratings differ: %v vs %v", first.Rating, second.Rating)
	}
	if !reflect.DeepEqual(first.Factors, second.Factors) {
		t.Errorf("factors differ: %v vs %v", first.Factors, second.Factors)
	}
}

func TestFactorsPresent(t *testing.T) {
	svc := NewService(Config{})

	got := svc.Predict(healthProfile(t), water)
	if len(got.Factors) == 0 || len(got.Factors) > maxFactors {
		t.Fatalf("factor count = %d, want 1..%d", len(got.Factors), maxFactors)
	}

	// a blank profile still gets at least one line
	blank, err := profile.NewBuilder(domain.DefaultQuestions()).Build(nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if f := svc.Predict(blank, cola).Factors; len(f) == 0 {
		t.Error("blank profile produced no factors")
	}
}

func syntheticSamples(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Sample, n)
	for i := range out {
		user := make([]float64, profile.VectorSize)
		for j := range user {
			user[j] = rng.Float64()
		}
		bev := BeverageVector(cola)
		if i%2 == 0 {
			bev = BeverageVector(water)
		}
		// rating correlates with the health-affinity slot
		health := user[len(domain.QuestionCategories)+profile.DerivedHealthAffinity]
		rating := 1 + 4*health
		if i%2 != 0 {
			rating = 5 - 4*health
		}
		out[i] = Sample{User: user, Beverage: bev, Rating: rating}
	}
	return out
}

func TestTrainBelowMinSamples(t *testing.T) {
	snap := Train(syntheticSamples(5, 1), 1, Config{MinSamples: 10})
	if snap.Trained() {
		t.Error("model trained below minimum sample count")
	}

	svc := NewService(Config{})
	svc.Swap(snap)
	if !svc.Predict(healthProfile(t), cola).Heuristic {
		t.Error("expected heuristic fallback with empty snapshot")
	}
}

func TestTrainAndSwap(t *testing.T) {
	samples := syntheticSamples(80, 1)
	snap := Train(samples, 1, Config{})
	if !snap.Trained() {
		t.Fatal("model should train with 80 samples")
	}

	svc := NewService(Config{})
	svc.Swap(snap)

	got := svc.Predict(healthProfile(t), water)
	if got.Heuristic {
		t.Error("expected model path after swap")
	}
	if got.Probability < MinProbability || got.Probability > MaxProbability {
		t.Errorf("probability %.2f outside bounds", got.Probability)
	}
}

func TestTrainDeterministic(t *testing.T) {
	samples := syntheticSamples(60, 2)

	a := Train(samples, 3, Config{})
	b := Train(samples, 3, Config{})

	svc := NewService(Config{})
	p := sodaProfile(t)

	svc.Swap(a)
	first := svc.Predict(p, cola)
	svc.Swap(b)
	second := svc.Predict(p, cola)

	if first.Rating != second.Rating {
		t.Errorf("identical training runs predict differently: %v vs %v", first.Rating, second.Rating)
	}
}

func TestBrowsingUserSpread(t *testing.T) {
	b := profile.NewBuilder(domain.DefaultQuestions())
	fast, err := b.Build([]domain.Answer{
		{QuestionID: 1, OptionID: 11, LatencySeconds: 0.8},
		{QuestionID: 3, OptionID: 31, LatencySeconds: 1.1},
		{QuestionID: 4, OptionID: 41, LatencySeconds: 0.9},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !browsingUser(fast) {
		t.Fatal("fast answers not detected as browsing")
	}

	svc := NewService(Config{})
	first := svc.Predict(fast, cola)
	second := svc.Predict(fast, cola)
	if first.Rating != second.Rating {
		t.Errorf("browsing spread not stable: %v vs %v", first.Rating, second.Rating)
	}

	slow := sodaProfile(t)
	if browsingUser(slow) {
		t.Error("deliberate answers flagged as browsing")
	}
}
