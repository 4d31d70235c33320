package predictor

import (
	"refrescoBot/business/profile"
	"refrescoBot/domain"
)

const maxFactors = 3

// explain produces the natural-language reasons shown next to a
// recommendation. Candidates are evaluated in a fixed order from most
// to least specific, so identical inputs always yield the same list.
func explain(p profile.Profile, b domain.Beverage, rating float64) []string {
	var factors []string
	add := func(condition bool, text string) {
		if condition && len(factors) < maxFactors {
			factors = append(factors, text)
		}
	}

	base := len(domain.QuestionCategories)
	healthAffinity := p.Vector[base+profile.DerivedHealthAffinity]
	sweetTooth := p.Vector[base+profile.DerivedSweetTooth]

	add(healthAffinity >= 0.7 && !b.Conventional(),
		"Fits your focus on healthier choices")
	add(healthAffinity >= 0.7 && (b.CalorieBand == domain.CaloriesZero || b.CalorieBand == domain.CaloriesVeryLow),
		"Matches your preference for low sugar")
	add(healthAffinity < 0.3 && b.Conventional(),
		"A classic pick for someone who puts flavor first")

	add(sweetTooth >= 0.7 && b.SweetnessLevel >= 7,
		"As sweet as you like your drinks")
	add(sweetTooth <= 0.3 && b.SweetnessLevel <= 3,
		"Light on sweetness, the way you prefer it")

	switch p.Signal(domain.CategoryCaffeine) {
	case domain.ValueCaffeinePositive:
		add(b.Caffeinated, "Brings the caffeine you look for")
	case domain.ValueCaffeineAvoid, domain.ValueCaffeineReject:
		add(!b.Caffeinated, "Caffeine free, as you asked")
	}

	add(p.Signal(domain.CategoryMood) == domain.ValueExperienceEnergy && b.Energizing,
		"Gives you the energy kick you wanted")
	add(p.Signal(domain.CategoryMood) == domain.ValueExperienceHydration && !b.Carbonated && b.SweetnessLevel <= 2,
		"A clean option to keep you hydrated")
	add(p.Signal(domain.CategoryActivity) == domain.ValueIntenseActivity && !b.Conventional(),
		"Works well with your active routine")

	add(b.RatingCount >= 3 && b.RatingMean >= 4,
		"Highly rated by people with similar taste")
	add(rating >= 4.5, "One of the strongest matches for your profile")

	// never return an empty explanation
	if len(factors) == 0 {
		if b.Conventional() {
			factors = append(factors, "A solid option that lines up with your answers")
		} else {
			factors = append(factors, "A refreshing alternative that suits your profile")
		}
	}
	return factors
}
