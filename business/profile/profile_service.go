package profile

import (
	"fmt"

	"refrescoBot/domain"
)

// Feature vector layout: one slot per question category in canonical
// order, then the derived slots below.
const (
	DerivedHealthAffinity = iota
	DerivedSweetTooth
	DerivedEnergyNeed
	derivedCount
)

// VectorSize is the fixed length of every profile vector.
var VectorSize = len(domain.QuestionCategories) + derivedCount

// Profile is the numeric summary of a completed quiz. ByQuestion keeps
// the chosen option value per question id for the rule engine,
// ByCategory indexes the same signals by question category, and Vector
// feeds the regression model.
type Profile struct {
	Vector     []float64
	ByQuestion map[uint64]string
	ByCategory map[string]string

	// Latency stats used for browsing-user detection.
	MeanLatency  float64
	FastAnswers  int
	TotalAnswers int
}

// FastShare is the fraction of answers given in under two seconds.
func (p Profile) FastShare() float64 {
	if p.TotalAnswers == 0 {
		return 0
	}
	return float64(p.FastAnswers) / float64(p.TotalAnswers)
}

// Signal returns the chosen option value for a category, or "" if the
// category was never asked.
func (p Profile) Signal(category string) string {
	return p.ByCategory[category]
}

// ---- builder ----

type Builder struct {
	questions      map[uint64]domain.Question
	slotByCategory map[string]int
}

// NewBuilder indexes the question catalog once; Build is then pure.
func NewBuilder(questions []domain.Question) *Builder {
	qs := make(map[uint64]domain.Question, len(questions))
	for _, q := range questions {
		qs[q.ID] = q
	}
	slots := make(map[string]int, len(domain.QuestionCategories))
	for i, c := range domain.QuestionCategories {
		slots[c] = i
	}
	return &Builder{questions: qs, slotByCategory: slots}
}

// Build folds the ordered answers of a session into a Profile. An
// answer referencing an unknown question or option, or repeating a
// question, is rejected so a corrupt session never reaches the model.
func (b *Builder) Build(answers []domain.Answer) (Profile, error) {
	p := Profile{
		Vector:     make([]float64, VectorSize),
		ByQuestion: make(map[uint64]string, len(answers)),
		ByCategory: make(map[string]string, len(answers)),
	}

	var latencySum float64
	for _, a := range answers {
		q, ok := b.questions[a.QuestionID]
		if !ok {
			return Profile{}, fmt.Errorf("%w: unknown question %d", domain.ErrMalformedAnswer, a.QuestionID)
		}
		opt, ok := q.OptionByID(a.OptionID)
		if !ok {
			return Profile{}, fmt.Errorf("%w: question %d has no option %d", domain.ErrMalformedAnswer, a.QuestionID, a.OptionID)
		}
		if _, dup := p.ByQuestion[a.QuestionID]; dup {
			return Profile{}, fmt.Errorf("%w: question %d answered twice", domain.ErrMalformedAnswer, a.QuestionID)
		}

		slot := b.slotByCategory[q.Category]
		p.Vector[slot] = opt.Weight * q.Weight
		p.ByQuestion[a.QuestionID] = opt.Value
		p.ByCategory[q.Category] = opt.Value

		p.TotalAnswers++
		latencySum += a.LatencySeconds
		if a.LatencySeconds > 0 && a.LatencySeconds < 2.0 {
			p.FastAnswers++
		}
	}
	if p.TotalAnswers > 0 {
		p.MeanLatency = latencySum / float64(p.TotalAnswers)
	}

	b.fillDerived(&p)
	return p, nil
}

// fillDerived computes the cross-category slots appended after the raw
// category slots.
func (b *Builder) fillDerived(p *Profile) {
	base := len(domain.QuestionCategories)

	health := 0.0
	switch p.ByCategory[domain.CategoryHealth] {
	case domain.ValueHealthSugarCalories, domain.ValueHealthNaturalIngredients,
		domain.ValueHealthNoAdditives, domain.ValueHealthVitamins:
		health = 0.8
	case domain.ValueHealthNotImportant:
		health = 0.1
	}
	switch p.ByCategory[domain.CategoryPriority] {
	case domain.ValuePriorityHealth, domain.ValueNaturalOnly:
		health = 1.0
	case domain.ValuePriorityFlavor:
		health = 0.0
	}
	p.Vector[base+DerivedHealthAffinity] = health

	sweet := 0.5
	switch p.ByCategory[domain.CategorySweetness] {
	case domain.ValueVerySweet:
		sweet = 1.0
	case domain.ValueModeratelySweet:
		sweet = 0.75
	case domain.ValueBalancedSweet:
		sweet = 0.5
	case domain.ValueLowSugar:
		sweet = 0.25
	case domain.ValueZeroSugar:
		sweet = 0.0
	}
	p.Vector[base+DerivedSweetTooth] = sweet

	energy := 0.0
	switch p.ByCategory[domain.CategoryActivity] {
	case domain.ValueIntenseActivity:
		energy = 0.8
	case domain.ValueModerateActivity:
		energy = 0.5
	case domain.ValueSedentaryWork, domain.ValueRelaxedActivity:
		energy = 0.2
	}
	if p.ByCategory[domain.CategoryCaffeine] == domain.ValueCaffeinePositive {
		energy += 0.2
	}
	if p.ByCategory[domain.CategoryMood] == domain.ValueExperienceEnergy {
		energy += 0.2
	}
	if energy > 1.0 {
		energy = 1.0
	}
	p.Vector[base+DerivedEnergyNeed] = energy
}
