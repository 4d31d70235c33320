package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Beverage categories. The catalog assigns one of the two and the
// categorizer never flips it; it only adds tags, a cluster id and the
// outlier flag.
const (
	BeverageConventional   = "conventional"
	BeverageHealthOriented = "health_oriented"
)

// Calorie bands, ordered low to high.
const (
	CaloriesZero    = "zero"
	CaloriesVeryLow = "very_low"
	CaloriesLow     = "low"
	CaloriesMedium  = "medium"
	CaloriesHigh    = "high"
)

type Beverage struct {
	ID             uint64 `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"column:name;type:text;not null" json:"name"`
	Description    string `gorm:"column:description;type:text" json:"description"`
	Category       string `gorm:"column:category;not null" json:"category"`
	SweetnessLevel int    `gorm:"column:sweetness_level" json:"sweetness_level"` // 0-10
	Caffeinated    bool   `gorm:"column:caffeinated;default:false" json:"caffeinated"`
	Carbonated     bool   `gorm:"column:carbonated;default:false" json:"carbonated"`
	Energizing     bool   `gorm:"column:energizing;default:false" json:"energizing"`
	CalorieBand    string `gorm:"column:calorie_band;default:medium" json:"calorie_band"`
	FlavorProfile  string `gorm:"column:flavor_profile" json:"flavor_profile"`

	// Assigned by the categorizer batch pass.
	ClusterID    int                         `gorm:"column:cluster_id;default:-1" json:"cluster_id"`
	Tags         datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	PriceOutlier bool                        `gorm:"column:price_outlier;default:false" json:"price_outlier"`

	// Aggregate rating statistics, maintained by the learning updater.
	RatingMean  float64 `gorm:"column:rating_mean;default:0" json:"rating_mean"`
	RatingCount int     `gorm:"column:rating_count;default:0" json:"rating_count"`

	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Presentations []Presentation `gorm:"foreignKey:BeverageID" json:"presentations"`
}

func (Beverage) TableName() string {
	return "beverages"
}

// Conventional reports whether the beverage belongs to the sugar/caffeine
// forward category.
func (b Beverage) Conventional() bool {
	return b.Category == BeverageConventional
}

// MeanPrice averages the presentation prices; 0 with no presentations.
func (b Beverage) MeanPrice() float64 {
	if len(b.Presentations) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range b.Presentations {
		sum += p.Price
	}
	return sum / float64(len(b.Presentations))
}

// Presentation size categories assigned by the categorizer.
const (
	SizeMini       = "mini"       // up to 250ml
	SizeIndividual = "individual" // 251-400ml
	SizePersonal   = "personal"   // 401-750ml
	SizeFamily     = "family"     // 751ml+
)

// SizeCategoryFor maps a volume in ml to its size category.
func SizeCategoryFor(ml int) string {
	switch {
	case ml <= 250:
		return SizeMini
	case ml <= 400:
		return SizeIndividual
	case ml <= 750:
		return SizePersonal
	default:
		return SizeFamily
	}
}

// Presentation is a concrete sellable variant of a beverage. IDs are
// unique across the whole catalog, not just within one beverage.
type Presentation struct {
	ID           string  `gorm:"primaryKey" json:"presentation_id"`
	BeverageID   uint64  `gorm:"column:beverage_id;not null" json:"beverage_id"`
	SizeML       int     `gorm:"column:size_ml;not null" json:"size_ml"`
	Price        float64 `gorm:"column:price;type:numeric" json:"price"`
	Flavor       string  `gorm:"column:flavor" json:"flavor"`
	Description  string  `gorm:"column:description;type:text" json:"description"`
	ImageURL     string  `gorm:"column:image_url" json:"image_url"`
	SizeCategory string  `gorm:"column:size_category" json:"size_category"`

	RatingMean  float64 `gorm:"column:rating_mean;default:0" json:"rating_mean"`
	RatingCount int     `gorm:"column:rating_count;default:0" json:"rating_count"`
}

func (Presentation) TableName() string {
	return "presentations"
}

// PricePerML guards against zero volumes in bad catalog rows.
func (p Presentation) PricePerML() float64 {
	if p.SizeML <= 0 {
		return p.Price
	}
	return p.Price / float64(p.SizeML)
}
