package categorizer

import (
	"context"
	"reflect"
	"testing"

	"refrescoBot/domain"
)

func sampleCatalog() []domain.Beverage {
	return []domain.Beverage{
		{
			ID: 1, Name: "Coca-Cola Classic", Description: "The traditional cola everyone knows",
			Category: domain.BeverageConventional, SweetnessLevel: 9, Caffeinated: true, Carbonated: true,
			CalorieBand: domain.CaloriesHigh,
			Presentations: []domain.Presentation{
				{ID: "p1", BeverageID: 1, SizeML: 355, Price: 18},
				{ID: "p2", BeverageID: 1, SizeML: 600, Price: 25},
				{ID: "p3", BeverageID: 1, SizeML: 2000, Price: 45},
			},
		},
		{
			ID: 2, Name: "Sparkling Water Zero", Description: "Sugar free sparkling mineral water",
			Category: domain.BeverageHealthOriented, SweetnessLevel: 0, Carbonated: true,
			CalorieBand: domain.CaloriesZero,
			Presentations: []domain.Presentation{
				{ID: "p4", BeverageID: 2, SizeML: 600, Price: 14},
			},
		},
		{
			ID: 3, Name: "Orange Juice", Description: "100% natural orange juice with vitamins",
			Category: domain.BeverageHealthOriented, SweetnessLevel: 6,
			CalorieBand: domain.CaloriesMedium,
			Presentations: []domain.Presentation{
				{ID: "p5", BeverageID: 3, SizeML: 250, Price: 15},
				{ID: "p6", BeverageID: 3, SizeML: 1000, Price: 42},
			},
		},
		{
			ID: 4, Name: "Thunder Energy", Description: "Energy boost drink with caffeine",
			Category: domain.BeverageConventional, SweetnessLevel: 8, Caffeinated: true, Carbonated: true, Energizing: true,
			CalorieBand: domain.CaloriesHigh,
			Presentations: []domain.Presentation{
				// deliberately mispriced row
				{ID: "p7", BeverageID: 4, SizeML: 250, Price: 250},
				{ID: "p8", BeverageID: 4, SizeML: 473, Price: 38},
			},
		},
	}
}

func TestKeywordCategories(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{"Coca-Cola Classic", "traditional cola", []string{"cola"}},
		{"Sparkling Water Zero", "sugar free mineral water", []string{"sugar_free", "tonic", "water"}},
		{"Orange Juice", "100% natural juice", []string{"citrus", "juice"}},
		{"Plain Drink", "nothing special", nil},
	}

	for _, tt := range tests {
		got := keywordCategories(tt.name, tt.description)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("keywordCategories(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAutoTags(t *testing.T) {
	catalog := sampleCatalog()

	cola := autoTags(catalog[0], []string{"cola"})
	wantTag(t, cola, "classic")
	wantTag(t, cola, "family_size")

	water := autoTags(catalog[1], []string{"sugar_free", "water"})
	wantTag(t, water, "diet")
	wantTag(t, water, "low_calorie")
	wantTag(t, water, "caffeine_free")

	energy := autoTags(catalog[3], []string{"energy"})
	wantTag(t, energy, "energizing")
	wantTag(t, energy, "premium") // 250 pesos for 250ml
}

func wantTag(t *testing.T, tags []string, want string) {
	t.Helper()
	for _, tag := range tags {
		if tag == want {
			return
		}
	}
	t.Errorf("tags %v missing %q", tags, want)
}

func TestClassifyDeterministic(t *testing.T) {
	cfg := Config{Clusters: 3, Seed: 7}
	catalog := sampleCatalog()

	first := Classify(catalog, cfg)
	second := Classify(catalog, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify is not deterministic:\n%+v\nvs\n%+v", first, second)
	}
}

func TestClassifyFlagsPriceOutlier(t *testing.T) {
	results := Classify(sampleCatalog(), Config{Clusters: 3, Seed: 7, Contamination: 0.15})

	if !results[3].PriceOutlier {
		t.Error("mispriced energy drink not flagged as outlier")
	}
	if results[1].PriceOutlier {
		t.Error("normally priced water flagged as outlier")
	}
}

// ---- fakes ----

type fakeBeverageRepo struct {
	beverages []domain.Beverage
	updates   map[uint64]Result
}

func (f *fakeBeverageRepo) FindAll(_ context.Context) ([]domain.Beverage, error) {
	return f.beverages, nil
}

func (f *fakeBeverageRepo) UpdateClassification(_ context.Context, id uint64, clusterID int, tags []string, priceOutlier bool) error {
	if f.updates == nil {
		f.updates = map[uint64]Result{}
	}
	f.updates[id] = Result{ClusterID: clusterID, Tags: tags, PriceOutlier: priceOutlier}
	return nil
}

type fakePresentationRepo struct {
	sizes map[string]string
}

func (f *fakePresentationRepo) UpdateSizeCategory(_ context.Context, presentationID, sizeCategory string) error {
	if f.sizes == nil {
		f.sizes = map[string]string{}
	}
	f.sizes[presentationID] = sizeCategory
	return nil
}

func TestClassifyAllPersists(t *testing.T) {
	bRepo := &fakeBeverageRepo{beverages: sampleCatalog()}
	pRepo := &fakePresentationRepo{}
	svc := NewService(bRepo, pRepo, Config{Clusters: 3, Seed: 7})

	summary, err := svc.ClassifyAll(context.Background())
	if err != nil {
		t.Fatalf("ClassifyAll() error = %v", err)
	}

	if summary.Processed != 4 {
		t.Errorf("processed = %d, want 4", summary.Processed)
	}
	if len(bRepo.updates) != 4 {
		t.Errorf("updates persisted = %d, want 4", len(bRepo.updates))
	}
	if got := pRepo.sizes["p3"]; got != domain.SizeFamily {
		t.Errorf("2L bottle size category = %q, want %q", got, domain.SizeFamily)
	}
	if got := pRepo.sizes["p5"]; got != domain.SizeMini {
		t.Errorf("250ml size category = %q, want %q", got, domain.SizeMini)
	}
}
