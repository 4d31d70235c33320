package categorizer

import (
	"context"
	"fmt"

	"refrescoBot/domain"
	"refrescoBot/pkg/logger"
)

// ---- Repository interfaces ----

type BeverageRepository interface {
	FindAll(ctx context.Context) ([]domain.Beverage, error)
	UpdateClassification(ctx context.Context, id uint64, clusterID int, tags []string, priceOutlier bool) error
}

type PresentationRepository interface {
	UpdateSizeCategory(ctx context.Context, presentationID, sizeCategory string) error
}

// ---- Usecase / Service ----

type Config struct {
	Clusters      int
	Contamination float64
	Seed          int64
}

func (c Config) withDefaults() Config {
	if c.Clusters <= 0 {
		c.Clusters = 8
	}
	if c.Contamination <= 0 || c.Contamination >= 1 {
		c.Contamination = 0.1
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// Service runs the catalog classification batch: keyword tags, k-means
// cluster ids and price-outlier flags. The whole pass is deterministic
// for a fixed catalog and seed, so rerunning it is idempotent.
type Service struct {
	beverageRepo     BeverageRepository
	presentationRepo PresentationRepository
	cfg              Config
}

func NewService(beverageRepo BeverageRepository, presentationRepo PresentationRepository, cfg Config) *Service {
	return &Service{
		beverageRepo:     beverageRepo,
		presentationRepo: presentationRepo,
		cfg:              cfg.withDefaults(),
	}
}

// Summary reports what one classification pass touched.
type Summary struct {
	Processed  int `json:"processed"`
	Clusters   int `json:"clusters"`
	Outliers   int `json:"outliers"`
	SizesFixed int `json:"sizes_fixed"`
}

// ClassifyAll loads the catalog, classifies every beverage and persists
// the results.
func (s *Service) ClassifyAll(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, fmt.Errorf("context error: %w", err)
	}

	beverages, err := s.beverageRepo.FindAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load beverages: %w", err)
	}
	if len(beverages) == 0 {
		return Summary{}, nil
	}

	classified := Classify(beverages, s.cfg)

	var summary Summary
	for i, b := range beverages {
		r := classified[i]
		if err := s.beverageRepo.UpdateClassification(ctx, b.ID, r.ClusterID, r.Tags, r.PriceOutlier); err != nil {
			return summary, fmt.Errorf("save classification for beverage %d: %w", b.ID, err)
		}
		summary.Processed++
		if r.PriceOutlier {
			summary.Outliers++
		}

		for _, p := range b.Presentations {
			want := domain.SizeCategoryFor(p.SizeML)
			if p.SizeCategory == want {
				continue
			}
			if err := s.presentationRepo.UpdateSizeCategory(ctx, p.ID, want); err != nil {
				return summary, fmt.Errorf("save size category for presentation %s: %w", p.ID, err)
			}
			summary.SizesFixed++
		}
	}
	summary.Clusters = s.cfg.Clusters

	logger.Info("catalog classified",
		"processed", summary.Processed,
		"clusters", summary.Clusters,
		"price_outliers", summary.Outliers,
		"sizes_fixed", summary.SizesFixed,
	)
	return summary, nil
}

// Result is the classification computed for one beverage.
type Result struct {
	ClusterID    int
	Tags         []string
	PriceOutlier bool
}

// Classify is the pure core of the batch: same input and config always
// produce the same results, index-aligned with the input slice.
func Classify(beverages []domain.Beverage, cfg Config) []Result {
	cfg = cfg.withDefaults()
	results := make([]Result, len(beverages))

	// keyword tags first; they feed the numeric features
	categories := make([][]string, len(beverages))
	for i, b := range beverages {
		categories[i] = keywordCategories(b.Name, b.Description)
		results[i].Tags = autoTags(b, categories[i])
	}

	// numeric features per beverage for clustering
	rows := make([][]float64, len(beverages))
	for i, b := range beverages {
		rows[i] = featureRow(b, len(categories[i]))
	}
	assign := kmeans(standardize(rows), cfg.Clusters, cfg.Seed)
	for i, c := range assign {
		results[i].ClusterID = c
	}

	// price anomaly detection over every presentation
	var priceRows [][]float64
	var owner []int
	for i, b := range beverages {
		for _, p := range b.Presentations {
			priceRows = append(priceRows, []float64{float64(p.SizeML), p.Price, p.PricePerML()})
			owner = append(owner, i)
		}
	}
	if len(priceRows) > 1 {
		forest := buildForest(priceRows, cfg.Seed)
		for j, isOutlier := range forest.outliers(priceRows, cfg.Contamination) {
			if isOutlier {
				results[owner[j]].PriceOutlier = true
			}
		}
	}
	return results
}

func featureRow(b domain.Beverage, keywordHits int) []float64 {
	boolVal := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}
	meanPerML := 0.0
	if len(b.Presentations) > 0 {
		for _, p := range b.Presentations {
			meanPerML += p.PricePerML()
		}
		meanPerML /= float64(len(b.Presentations))
	}
	return []float64{
		float64(b.SweetnessLevel) / 10,
		boolVal(b.Caffeinated),
		boolVal(b.Carbonated),
		boolVal(b.Energizing),
		boolVal(b.Conventional()),
		meanPerML,
		float64(len(b.Presentations)),
		float64(keywordHits),
	}
}
