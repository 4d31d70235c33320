package domain

// Quiz question categories, in the priority order used by the decision
// engine (most decisive first). The feature builder reserves one vector
// slot per category in this exact order.
const (
	CategoryPriority    = "priority"
	CategoryConsumption = "consumption"
	CategoryDrinkType   = "drink_type"
	CategoryHealth      = "health"
	CategoryActivity    = "activity"
	CategorySweetness   = "sweetness"
	CategoryCaffeine    = "caffeine"
	CategoryMood        = "mood"
	CategoryOccasion    = "occasion"
)

// QuestionCategories is the canonical category order. Index in this slice
// is the feature-vector slot for the category.
var QuestionCategories = []string{
	CategoryPriority,
	CategoryConsumption,
	CategoryDrinkType,
	CategoryHealth,
	CategoryActivity,
	CategorySweetness,
	CategoryCaffeine,
	CategoryMood,
	CategoryOccasion,
}

// Discrete option values shared by the decision rules, the feature
// builder and the heuristic predictor.
const (
	ValuePriorityFlavor = "priority_flavor"
	ValuePriorityHealth = "priority_health"
	ValueNaturalOnly    = "natural_only"

	ValueNoSodas             = "no_sodas"
	ValueLovesSodas          = "loves_sodas"
	ValueRejectsSodas        = "rejects_sodas"
	ValuePrefersAlternatives = "prefers_alternatives"
	ValueOccasionalSodas     = "occasional_sodas"

	ValueWaterOnly        = "water_only"
	ValueNaturalDrinks    = "natural_drinks"
	ValueTraditionalSodas = "traditional_sodas"

	ValueHealthSugarCalories      = "health_sugar_calories"
	ValueHealthNaturalIngredients = "health_natural_ingredients"
	ValueHealthNoAdditives        = "health_no_additives"
	ValueHealthVitamins           = "health_vitamins_minerals"
	ValueHealthNotImportant       = "health_not_important"

	ValueVerySweet       = "very_sweet"
	ValueModeratelySweet = "moderately_sweet"
	ValueBalancedSweet   = "balanced"
	ValueLowSugar        = "low_sugar"
	ValueZeroSugar       = "zero_sugar_natural"

	ValueExerciseSport = "exercise_sport"

	ValueIntenseActivity  = "intense_activity"
	ValueModerateActivity = "moderate_activity"
	ValueSedentaryWork    = "sedentary_work"
	ValueRelaxedActivity  = "relaxed_activity"

	ValueCaffeinePositive = "caffeine_positive"
	ValueCaffeineNeutral  = "caffeine_neutral"
	ValueCaffeineAvoid    = "caffeine_avoid"
	ValueCaffeineReject   = "caffeine_reject"

	ValueExperiencePleasure   = "experience_pleasure"
	ValueExperienceEnergy     = "experience_energy"
	ValueExperienceHydration  = "experience_hydration"
	ValueExperienceRelaxation = "experience_relaxation"
)

type Question struct {
	ID       uint64   `gorm:"primaryKey" json:"id"`
	Prompt   string   `gorm:"column:prompt;type:text;not null" json:"prompt"`
	Category string   `gorm:"column:category;not null" json:"category"`
	Weight   float64  `gorm:"column:weight;not null" json:"weight"`
	Fixed    bool     `gorm:"column:is_fixed;default:false" json:"is_fixed"`
	Position int      `gorm:"column:position" json:"position"`
	Options  []Option `gorm:"foreignKey:QuestionID" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

// Option is one selectable answer. Value is the discrete signal emitted
// when the option is chosen (e.g. "priority_flavor"); Weight is the
// option's contribution to the category's feature-vector slot.
type Option struct {
	ID         uint64  `gorm:"primaryKey" json:"id"`
	QuestionID uint64  `gorm:"column:question_id;not null" json:"question_id"`
	Label      string  `gorm:"column:label;type:text;not null" json:"label"`
	Value      string  `gorm:"column:value;not null" json:"value"`
	Weight     float64 `gorm:"column:weight;not null" json:"weight"`
}

func (Option) TableName() string {
	return "question_options"
}

// OptionByID returns the option with the given id, if any.
func (q Question) OptionByID(id uint64) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}
