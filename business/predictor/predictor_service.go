package predictor

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sync/atomic"

	"refrescoBot/business/profile"
	"refrescoBot/domain"
	"refrescoBot/pkg/logger"
)

// Probability bounds: a prediction is never presented as a certainty in
// either direction.
const (
	MinProbability = 5.0
	MaxProbability = 95.0
)

// Ratings live on a 1..5 scale.
const (
	minRating = 1.0
	maxRating = 5.0
)

// Browsing-user thresholds. Someone who clicks through the quiz faster
// than this is answering on autopilot, so their profile carries little
// signal and predictions get a per-session spread instead.
const (
	fastShareThreshold   = 0.7
	meanLatencyThreshold = 3.0
)

type Config struct {
	Trees      int
	MinSamples int
	Seed       int64
}

func (c Config) withDefaults() Config {
	if c.Trees <= 0 {
		c.Trees = 25
	}
	if c.MinSamples <= 0 {
		c.MinSamples = 10
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// Sample is one observed (profile, beverage, rating) triple.
type Sample struct {
	User     []float64
	Beverage []float64
	Rating   float64
}

// Snapshot is one trained, immutable model version. Readers grab the
// current snapshot once per request; training swaps in a new one
// atomically.
type Snapshot struct {
	Version int64
	Samples int
	trees   []*treeNode
}

// Trained reports whether the snapshot holds a usable ensemble.
func (s *Snapshot) Trained() bool {
	return s != nil && len(s.trees) > 0
}

func (s *Snapshot) predict(x []float64) float64 {
	sum := 0.0
	for _, t := range s.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(s.trees))
}

// Train grows a bagged ensemble. Seeding is per version, so retraining
// on identical data yields an identical model.
func Train(samples []Sample, version int64, cfg Config) *Snapshot {
	cfg = cfg.withDefaults()
	snap := &Snapshot{Version: version, Samples: len(samples)}
	if len(samples) < cfg.MinSamples {
		return snap
	}

	xs := make([][]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = append(append([]float64{}, s.User...), s.Beverage...)
		ys[i] = s.Rating
	}

	rng := rand.New(rand.NewSource(cfg.Seed + version))
	for t := 0; t < cfg.Trees; t++ {
		bx := make([][]float64, len(xs))
		by := make([]float64, len(xs))
		for i := range xs {
			j := rng.Intn(len(xs))
			bx[i], by[i] = xs[j], ys[j]
		}
		snap.trees = append(snap.trees, growTree(bx, by, 0, rng))
	}
	logger.Info("preference model trained",
		"version", version,
		"samples", len(samples),
		"trees", len(snap.trees),
	)
	return snap
}

// ---- Usecase / Service ----

// Service scores beverages for quiz profiles. It answers from the
// current model snapshot when one is trained and from the attribute
// heuristic otherwise; both paths go through the same clamping.
type Service struct {
	cfg   Config
	model atomic.Pointer[Snapshot]
}

func NewService(cfg Config) *Service {
	s := &Service{cfg: cfg.withDefaults()}
	s.model.Store(&Snapshot{})
	return s
}

// Swap publishes a new model snapshot. Older in-flight predictions
// finish on the snapshot they started with.
func (s *Service) Swap(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.model.Store(snap)
}

// Current returns the live snapshot.
func (s *Service) Current() *Snapshot {
	return s.model.Load()
}

// Prediction is one scored beverage.
type Prediction struct {
	Rating      float64
	Probability float64
	Factors     []string
	Heuristic   bool
}

// Predict scores one beverage for one profile. Deterministic for a
// fixed snapshot: identical inputs give identical ratings and factor
// order.
func (s *Service) Predict(p profile.Profile, b domain.Beverage) Prediction {
	snap := s.model.Load()

	var rating float64
	heuristic := !snap.Trained()
	if heuristic {
		rating = heuristicRating(p, b)
	} else {
		x := append(append([]float64{}, p.Vector...), BeverageVector(b)...)
		rating = snap.predict(x)
	}

	if browsingUser(p) {
		rating += browsingSpread(p, b.ID)
	}
	rating = clamp(rating, minRating, maxRating)

	return Prediction{
		Rating:      rating,
		Probability: clamp(rating*20, MinProbability, MaxProbability),
		Factors:     explain(p, b, rating),
		Heuristic:   heuristic,
	}
}

// BeverageVector is the numeric description of a beverage fed to the
// model, paired with the profile vector during training and prediction.
func BeverageVector(b domain.Beverage) []float64 {
	boolVal := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}
	calories := 0.5
	switch b.CalorieBand {
	case domain.CaloriesZero:
		calories = 0.0
	case domain.CaloriesVeryLow:
		calories = 0.2
	case domain.CaloriesLow:
		calories = 0.4
	case domain.CaloriesMedium:
		calories = 0.6
	case domain.CaloriesHigh:
		calories = 1.0
	}
	prior := 0.6 // unrated beverages sit just above the middle
	if b.RatingCount > 0 {
		prior = b.RatingMean / maxRating
	}
	return []float64{
		float64(b.SweetnessLevel) / 10,
		boolVal(b.Caffeinated),
		boolVal(b.Carbonated),
		boolVal(b.Energizing),
		boolVal(b.Conventional()),
		calories,
		prior,
	}
}

// heuristicRating is the cold-start path: a weighted sum of attribute
// matches between the profile and the beverage, expressed on the same
// 1..5 scale the model predicts.
func heuristicRating(p profile.Profile, b domain.Beverage) float64 {
	score := 0.0
	for _, c := range heuristicComponents(p, b) {
		score += c.weight * c.match
	}
	return minRating + score*(maxRating-minRating)
}

type component struct {
	name   string
	weight float64
	match  float64 // 0..1
}

func heuristicComponents(p profile.Profile, b domain.Beverage) []component {
	base := len(domain.QuestionCategories)
	healthAffinity := p.Vector[base+profile.DerivedHealthAffinity]
	sweetTooth := p.Vector[base+profile.DerivedSweetTooth]
	energyNeed := p.Vector[base+profile.DerivedEnergyNeed]

	categoryMatch := healthAffinity
	if b.Conventional() {
		categoryMatch = 1 - healthAffinity
	}

	sweetMatch := 1 - math.Abs(sweetTooth-float64(b.SweetnessLevel)/10)

	caffeineMatch := 0.5
	switch p.Signal(domain.CategoryCaffeine) {
	case domain.ValueCaffeinePositive:
		if b.Caffeinated {
			caffeineMatch = 1.0
		} else {
			caffeineMatch = 0.3
		}
	case domain.ValueCaffeineAvoid, domain.ValueCaffeineReject:
		if b.Caffeinated {
			caffeineMatch = 0.0
		} else {
			caffeineMatch = 1.0
		}
	}

	energyMatch := 1 - math.Abs(energyNeed-boolToFloat(b.Energizing))

	prior := 0.6
	if b.RatingCount > 0 {
		prior = b.RatingMean / maxRating
	}

	return []component{
		{name: "category", weight: 0.35, match: categoryMatch},
		{name: "sweetness", weight: 0.25, match: sweetMatch},
		{name: "caffeine", weight: 0.15, match: caffeineMatch},
		{name: "energy", weight: 0.10, match: energyMatch},
		{name: "crowd", weight: 0.15, match: prior},
	}
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// browsingUser detects quiz runs answered too fast to carry real
// preference signal.
func browsingUser(p profile.Profile) bool {
	if p.TotalAnswers == 0 {
		return false
	}
	return p.FastShare() > fastShareThreshold || (p.MeanLatency > 0 && p.MeanLatency < meanLatencyThreshold)
}

// browsingSpread derives a stable offset in [-0.75, 0.75] from the
// profile and beverage id. Hash-seeded, so the same session sees the
// same spread on every replay.
func browsingSpread(p profile.Profile, beverageID uint64) float64 {
	h := fnv.New64a()
	for _, v := range p.Vector {
		var buf [8]byte
		bits := math.Float64bits(v)
		for i := 0; i < 8; i++ {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	}
	var idBuf [8]byte
	for i := 0; i < 8; i++ {
		idBuf[i] = byte(beverageID >> (8 * i))
	}
	h.Write(idBuf[:])

	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return (rng.Float64() - 0.5) * 1.5
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
