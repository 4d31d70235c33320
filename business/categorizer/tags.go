package categorizer

import (
	"sort"
	"strings"

	"refrescoBot/domain"
)

// Keyword groups for text categorization. Matching runs over the
// lowercased name plus description.
var categoryKeywords = map[string][]string{
	"cola":       {"cola", "coca", "pepsi"},
	"citrus":     {"lemon", "lime", "orange", "citrus", "lemonade"},
	"fruity":     {"fruit", "apple", "grape", "punch", "berry", "tropical"},
	"sugar_free": {"sugar free", "zero", "light", "diet", "no calories"},
	"water":      {"water", "mineral", "hydration"},
	"juice":      {"juice", "nectar", "natural", "100%"},
	"energy":     {"energy", "boost", "energizing"},
	"tonic":      {"tonic", "sparkling", "carbonated", "bubbly"},
	"functional": {"functional", "electrolytes", "minerals", "sports"},
}

// Tags derived from each keyword category.
var categoryTags = map[string][]string{
	"sugar_free": {"diet", "light", "healthy"},
	"cola":       {"classic", "traditional", "fizzy"},
	"citrus":     {"refreshing", "citrus", "vitamin_c"},
	"water":      {"hydrating", "pure", "mineral"},
	"juice":      {"natural", "fruity", "nutritious"},
	"energy":     {"energizing", "caffeine_kick"},
}

// keywordCategories returns the matched keyword groups, sorted for
// stable output.
func keywordCategories(name, description string) []string {
	text := strings.ToLower(name + " " + description)
	var out []string
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				out = append(out, category)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Price-per-ml cutoffs for the premium / budget tags.
const (
	premiumPricePerML = 0.10
	budgetPricePerML  = 0.05
)

// autoTags combines keyword tags with presentation and price derived
// ones. The result is sorted and deduplicated so repeated runs over the
// same catalog produce identical tag lists.
func autoTags(b domain.Beverage, categories []string) []string {
	seen := map[string]bool{}
	add := func(tags ...string) {
		for _, t := range tags {
			seen[t] = true
		}
	}

	for _, c := range categories {
		add(categoryTags[c]...)
	}

	if len(b.Presentations) > 0 {
		var priceSum float64
		for _, p := range b.Presentations {
			switch {
			case p.SizeML <= 250:
				add("mini_serving")
			case p.SizeML >= 1000:
				add("family_size")
			}
			priceSum += p.PricePerML()
		}
		if len(b.Presentations) > 3 {
			add("many_presentations")
		}
		meanPerML := priceSum / float64(len(b.Presentations))
		if meanPerML > premiumPricePerML {
			add("premium")
		} else if meanPerML < budgetPricePerML {
			add("budget")
		}
	}

	if b.Energizing {
		add("energizing")
	}
	if !b.Caffeinated {
		add("caffeine_free")
	}
	if b.CalorieBand == domain.CaloriesZero || b.CalorieBand == domain.CaloriesVeryLow {
		add("low_calorie")
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
