package domain

// DefaultQuestions is the built-in quiz catalog. IDs are stable: option
// ids are questionID*10 + slot. Question 1 is fixed (always asked
// first); the remaining questions fill the quiz up to the configured
// total.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID: 1, Prompt: "How would you describe your relationship with sodas?",
			Category: CategoryConsumption, Weight: 1.0, Fixed: true, Position: 1,
			Options: []Option{
				{ID: 11, QuestionID: 1, Label: "I love them, I drink them all the time", Value: ValueLovesSodas, Weight: 1.0},
				{ID: 12, QuestionID: 1, Label: "I have one every now and then", Value: ValueOccasionalSodas, Weight: 0.6},
				{ID: 13, QuestionID: 1, Label: "I prefer healthier drinks but sodas are fine sometimes", Value: ValuePrefersAlternatives, Weight: 0.3},
				{ID: 14, QuestionID: 1, Label: "I never drink sodas", Value: ValueNoSodas, Weight: 0.0},
				{ID: 15, QuestionID: 1, Label: "I actively avoid them", Value: ValueRejectsSodas, Weight: 0.0},
			},
		},
		{
			ID: 2, Prompt: "What kind of drinks do you usually look for?",
			Category: CategoryDrinkType, Weight: 0.9, Position: 2,
			Options: []Option{
				{ID: 21, QuestionID: 2, Label: "Classic sodas", Value: ValueTraditionalSodas, Weight: 1.0},
				{ID: 22, QuestionID: 2, Label: "A bit of everything", Value: "varied_drinks", Weight: 0.5},
				{ID: 23, QuestionID: 2, Label: "Natural drinks like juice or tea", Value: ValueNaturalDrinks, Weight: 0.2},
				{ID: 24, QuestionID: 2, Label: "Mostly just water", Value: ValueWaterOnly, Weight: 0.0},
			},
		},
		{
			ID: 3, Prompt: "How sweet do you like your drinks?",
			Category: CategorySweetness, Weight: 0.7, Position: 3,
			Options: []Option{
				{ID: 31, QuestionID: 3, Label: "Very sweet", Value: ValueVerySweet, Weight: 1.0},
				{ID: 32, QuestionID: 3, Label: "Moderately sweet", Value: ValueModeratelySweet, Weight: 0.75},
				{ID: 33, QuestionID: 3, Label: "Balanced", Value: ValueBalancedSweet, Weight: 0.5},
				{ID: 34, QuestionID: 3, Label: "Just a hint of sugar", Value: ValueLowSugar, Weight: 0.25},
				{ID: 35, QuestionID: 3, Label: "Zero sugar, naturally", Value: ValueZeroSugar, Weight: 0.0},
			},
		},
		{
			ID: 4, Prompt: "What matters most when you pick a drink?",
			Category: CategoryPriority, Weight: 1.0, Position: 4,
			Options: []Option{
				{ID: 41, QuestionID: 4, Label: "Flavor above everything", Value: ValuePriorityFlavor, Weight: 1.0},
				{ID: 42, QuestionID: 4, Label: "Health comes first", Value: ValuePriorityHealth, Weight: 0.0},
				{ID: 43, QuestionID: 4, Label: "Only natural ingredients", Value: ValueNaturalOnly, Weight: 0.0},
				{ID: 44, QuestionID: 4, Label: "Whatever is cheapest", Value: "priority_price", Weight: 0.5},
			},
		},
		{
			ID: 5, Prompt: "Which health aspect do you care about most?",
			Category: CategoryHealth, Weight: 0.8, Position: 5,
			Options: []Option{
				{ID: 51, QuestionID: 5, Label: "Sugar and calories", Value: ValueHealthSugarCalories, Weight: 0.2},
				{ID: 52, QuestionID: 5, Label: "Natural ingredients", Value: ValueHealthNaturalIngredients, Weight: 0.2},
				{ID: 53, QuestionID: 5, Label: "No artificial additives", Value: ValueHealthNoAdditives, Weight: 0.2},
				{ID: 54, QuestionID: 5, Label: "Vitamins and minerals", Value: ValueHealthVitamins, Weight: 0.3},
				{ID: 55, QuestionID: 5, Label: "I don't really think about it", Value: ValueHealthNotImportant, Weight: 1.0},
			},
		},
		{
			ID: 6, Prompt: "When do you usually grab a drink?",
			Category: CategoryOccasion, Weight: 0.5, Position: 6,
			Options: []Option{
				{ID: 61, QuestionID: 6, Label: "With meals", Value: "with_meals", Weight: 0.7},
				{ID: 62, QuestionID: 6, Label: "At social events", Value: "social_events", Weight: 0.8},
				{ID: 63, QuestionID: 6, Label: "During or after exercise", Value: ValueExerciseSport, Weight: 0.1},
				{ID: 64, QuestionID: 6, Label: "On a break at work", Value: "work_break", Weight: 0.5},
			},
		},
		{
			ID: 7, Prompt: "How active is a normal day for you?",
			Category: CategoryActivity, Weight: 0.6, Position: 7,
			Options: []Option{
				{ID: 71, QuestionID: 7, Label: "Intense training most days", Value: ValueIntenseActivity, Weight: 0.1},
				{ID: 72, QuestionID: 7, Label: "Moderate exercise", Value: ValueModerateActivity, Weight: 0.3},
				{ID: 73, QuestionID: 7, Label: "Desk work, little movement", Value: ValueSedentaryWork, Weight: 0.8},
				{ID: 74, QuestionID: 7, Label: "Relaxed, low-key days", Value: ValueRelaxedActivity, Weight: 0.7},
			},
		},
		{
			ID: 8, Prompt: "How do you feel about caffeine?",
			Category: CategoryCaffeine, Weight: 0.6, Position: 8,
			Options: []Option{
				{ID: 81, QuestionID: 8, Label: "I look for it", Value: ValueCaffeinePositive, Weight: 1.0},
				{ID: 82, QuestionID: 8, Label: "I don't mind it either way", Value: ValueCaffeineNeutral, Weight: 0.5},
				{ID: 83, QuestionID: 8, Label: "I try to avoid it", Value: ValueCaffeineAvoid, Weight: 0.1},
				{ID: 84, QuestionID: 8, Label: "Absolutely not", Value: ValueCaffeineReject, Weight: 0.0},
			},
		},
		{
			ID: 9, Prompt: "What are you looking for in a drink right now?",
			Category: CategoryMood, Weight: 0.5, Position: 9,
			Options: []Option{
				{ID: 91, QuestionID: 9, Label: "Pure enjoyment", Value: ValueExperiencePleasure, Weight: 0.9},
				{ID: 92, QuestionID: 9, Label: "An energy kick", Value: ValueExperienceEnergy, Weight: 0.8},
				{ID: 93, QuestionID: 9, Label: "Hydration", Value: ValueExperienceHydration, Weight: 0.1},
				{ID: 94, QuestionID: 9, Label: "Something relaxing", Value: ValueExperienceRelaxation, Weight: 0.2},
			},
		},
	}
}
