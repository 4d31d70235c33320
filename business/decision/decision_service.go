package decision

import (
	"math"

	"refrescoBot/business/profile"
	"refrescoBot/domain"
)

// Rule maps one question's option values to a category outcome. Rules
// are evaluated in slice order; the first matched value wins. Values
// missing from Outcomes are ambiguous and fall through to the next
// rule.
type Rule struct {
	QuestionID uint64
	Category   string
	// Weight is the question's catalog weight, the upper bound of its
	// feature slot. The fallback needs it to split a slot value into a
	// conventional lean and a health lean.
	Weight   float64
	Outcomes map[string]domain.CategoryDecision
}

// DefaultRules is the priority table for the built-in catalog, most
// decisive question first.
func DefaultRules() []Rule {
	return []Rule{
		{
			QuestionID: 4,
			Weight:     1.0,
			Category:   domain.CategoryPriority,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValuePriorityFlavor: domain.DecisionConventionalOnly,
				domain.ValuePriorityHealth: domain.DecisionHealthOnly,
				domain.ValueNaturalOnly:    domain.DecisionHealthOnly,
			},
		},
		{
			QuestionID: 1,
			Weight:     1.0,
			Category:   domain.CategoryConsumption,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValueNoSodas:      domain.DecisionHealthOnly,
				domain.ValueLovesSodas:   domain.DecisionConventionalOnly,
				domain.ValueRejectsSodas: domain.DecisionHealthOnly,
			},
		},
		{
			QuestionID: 2,
			Weight:     0.9,
			Category:   domain.CategoryDrinkType,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValueWaterOnly:        domain.DecisionHealthOnly,
				domain.ValueNaturalDrinks:    domain.DecisionHealthOnly,
				domain.ValueTraditionalSodas: domain.DecisionConventionalOnly,
			},
		},
		{
			QuestionID: 5,
			Weight:     0.8,
			Category:   domain.CategoryHealth,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValueHealthSugarCalories:      domain.DecisionHealthOnly,
				domain.ValueHealthNaturalIngredients: domain.DecisionHealthOnly,
				domain.ValueHealthNoAdditives:        domain.DecisionHealthOnly,
				domain.ValueHealthVitamins:           domain.DecisionHealthOnly,
				domain.ValueHealthNotImportant:       domain.DecisionConventionalOnly,
			},
		},
		{
			QuestionID: 3,
			Weight:     0.7,
			Category:   domain.CategorySweetness,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValueZeroSugar: domain.DecisionHealthOnly,
			},
		},
		{
			QuestionID: 6,
			Weight:     0.5,
			Category:   domain.CategoryOccasion,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValueExerciseSport: domain.DecisionHealthOnly,
			},
		},
		{
			QuestionID: 7,
			Weight:     0.6,
			Category:   domain.CategoryActivity,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValueIntenseActivity:  domain.DecisionHealthOnly,
				domain.ValueModerateActivity: domain.DecisionHealthOnly,
				domain.ValueSedentaryWork:    domain.DecisionConventionalOnly,
				domain.ValueRelaxedActivity:  domain.DecisionConventionalOnly,
			},
		},
		{
			QuestionID: 8,
			Weight:     0.6,
			Category:   domain.CategoryCaffeine,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValueCaffeineAvoid:    domain.DecisionHealthOnly,
				domain.ValueCaffeineReject:   domain.DecisionHealthOnly,
				domain.ValueCaffeinePositive: domain.DecisionConventionalOnly,
			},
		},
		{
			QuestionID: 9,
			Weight:     0.5,
			Category:   domain.CategoryMood,
			Outcomes: map[string]domain.CategoryDecision{
				domain.ValueExperienceHydration:  domain.DecisionHealthOnly,
				domain.ValueExperienceRelaxation: domain.DecisionHealthOnly,
				domain.ValueExperiencePleasure:   domain.DecisionConventionalOnly,
				domain.ValueExperienceEnergy:     domain.DecisionConventionalOnly,
			},
		},
	}
}

// Engine decides which beverage category mix a completed quiz should
// surface. Evaluation is two-phase: walk the rule table in priority
// order and short-circuit on the first decisive answer; only when no
// rule matches are the per-category weighted scores compared, with
// Tolerance deciding how close they must be to count as mixed.
type Engine struct {
	rules          []Rule
	tolerance      float64
	slotByCategory map[string]int
}

func NewEngine(rules []Rule, tolerance float64) *Engine {
	if tolerance <= 0 {
		tolerance = 0.15
	}
	slots := make(map[string]int, len(domain.QuestionCategories))
	for i, c := range domain.QuestionCategories {
		slots[c] = i
	}
	return &Engine{rules: rules, tolerance: tolerance, slotByCategory: slots}
}

// Outcome carries the decision and how it was reached, for logging and
// explanation.
type Outcome struct {
	Decision   domain.CategoryDecision
	QuestionID uint64
	Signal     string
	// Fallback scores, only set when no rule short-circuited.
	ScoreConventional float64
	ScoreHealth       float64
}

// ShortCircuited reports whether a single answer decided the outcome.
func (o Outcome) ShortCircuited() bool {
	return o.QuestionID != 0
}

// Decide runs the short-circuit phase first, always. The fallback must
// never preempt a decisively answered rule question.
func (e *Engine) Decide(p profile.Profile) Outcome {
	for _, r := range e.rules {
		signal, answered := p.ByQuestion[r.QuestionID]
		if !answered {
			continue
		}
		if d, ok := r.Outcomes[signal]; ok {
			return Outcome{Decision: d, QuestionID: r.QuestionID, Signal: signal}
		}
	}
	return e.weightedFallback(p)
}

// weightedFallback aggregates every answered rule question into
// conventional vs health scores. The catalog assigns heavy option
// weights to soda-leaning answers, so the slot value itself is the
// conventional lean. Scores within tolerance of each other yield mixed.
func (e *Engine) weightedFallback(p profile.Profile) Outcome {
	var conventional, health float64

	for _, r := range e.rules {
		if _, answered := p.ByQuestion[r.QuestionID]; !answered {
			continue
		}
		w := p.Vector[e.slotByCategory[r.Category]]
		conventional += w
		health += r.Weight - w
	}

	out := Outcome{ScoreConventional: conventional, ScoreHealth: health}
	diff := math.Abs(conventional - health)
	scale := math.Max(conventional, health)
	if scale == 0 {
		out.Decision = domain.DecisionConventionalOnly
		return out
	}
	if diff <= e.tolerance*scale {
		out.Decision = domain.DecisionMixed
	} else if conventional > health {
		out.Decision = domain.DecisionConventionalOnly
	} else {
		out.Decision = domain.DecisionHealthOnly
	}
	return out
}
