package domain

// DefaultBeverages is the built-in drink catalog used to seed an empty
// database. Cluster ids, tags and size categories are filled in later by
// the classification pass.
func DefaultBeverages() []Beverage {
	return []Beverage{
		{
			ID: 1, Name: "Classic Cola",
			Description:    "The original cola taste, fizzy and bold.",
			Category:       BeverageConventional,
			SweetnessLevel: 9, Caffeinated: true, Carbonated: true,
			CalorieBand: CaloriesHigh, FlavorProfile: "cola", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "cola-355", BeverageID: 1, SizeML: 355, Price: 25.00, Flavor: "cola", Description: "Everyday can, great with meals."},
				{ID: "cola-500", BeverageID: 1, SizeML: 500, Price: 30.00, Flavor: "cola", Description: "Personal bottle to take along."},
				{ID: "cola-600", BeverageID: 1, SizeML: 600, Price: 35.00, Flavor: "cola", Description: "Small family bottle for meals at home."},
				{ID: "cola-1000", BeverageID: 1, SizeML: 1000, Price: 45.00, Flavor: "cola", Description: "One liter for small gatherings."},
				{ID: "cola-2000", BeverageID: 1, SizeML: 2000, Price: 65.00, Flavor: "cola", Description: "Big family bottle for parties."},
			},
		},
		{
			ID: 2, Name: "Cola Blue",
			Description:    "A cola with its own twist, a challenger's take on the classic.",
			Category:       BeverageConventional,
			SweetnessLevel: 9, Caffeinated: true, Carbonated: true,
			CalorieBand: CaloriesHigh, FlavorProfile: "cola", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "blue-355", BeverageID: 2, SizeML: 355, Price: 24.00, Flavor: "cola", Description: "Classic can with the distinctive taste."},
				{ID: "blue-600", BeverageID: 2, SizeML: 600, Price: 34.00, Flavor: "cola", Description: "Medium bottle, right for sharing."},
				{ID: "blue-1250", BeverageID: 2, SizeML: 1250, Price: 48.00, Flavor: "cola", Description: "1.25L with more to enjoy."},
				{ID: "blue-2000", BeverageID: 2, SizeML: 2000, Price: 67.00, Flavor: "cola", Description: "Large family bottle for special occasions."},
			},
		},
		{
			ID: 3, Name: "Lemon Lime Sparkle",
			Description:    "Clear lemon lime soda, caffeine free and crisp.",
			Category:       BeverageConventional,
			SweetnessLevel: 7, Carbonated: true,
			CalorieBand: CaloriesHigh, FlavorProfile: "lemon", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "lemon-355", BeverageID: 3, SizeML: 355, Price: 23.00, Flavor: "lemon lime", Description: "Refreshing can with natural citrus bite."},
				{ID: "lemon-600", BeverageID: 3, SizeML: 600, Price: 33.00, Flavor: "lemon lime", Description: "More citrus freshness in a family size."},
				{ID: "lemon-2000", BeverageID: 3, SizeML: 2000, Price: 64.00, Flavor: "lemon lime", Description: "Big bottle for parties and reunions."},
			},
		},
		{
			ID: 4, Name: "Orange Fizz",
			Description:    "Orange soda with an intense fruit flavor and vibrant color.",
			Category:       BeverageConventional,
			SweetnessLevel: 8, Carbonated: true,
			CalorieBand: CaloriesHigh, FlavorProfile: "orange", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "fizz-355", BeverageID: 4, SizeML: 355, Price: 23.00, Flavor: "orange", Description: "A can bursting with orange flavor."},
				{ID: "fizz-600", BeverageID: 4, SizeML: 600, Price: 33.00, Flavor: "orange", Description: "The right size to enjoy with family."},
				{ID: "fizz-1000", BeverageID: 4, SizeML: 1000, Price: 44.00, Flavor: "orange", Description: "A liter of fruity flavor for everyone."},
			},
		},
		{
			ID: 5, Name: "Cola Zero",
			Description:    "All the cola flavor with zero sugar and no calories.",
			Category:       BeverageConventional,
			SweetnessLevel: 8, Caffeinated: true, Carbonated: true,
			CalorieBand: CaloriesZero, FlavorProfile: "cola", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "zero-355", BeverageID: 5, SizeML: 355, Price: 25.00, Flavor: "cola", Description: "The original taste without the calories."},
				{ID: "zero-500", BeverageID: 5, SizeML: 500, Price: 30.00, Flavor: "cola", Description: "Personal bottle, guilt free."},
				{ID: "zero-600", BeverageID: 5, SizeML: 600, Price: 35.00, Flavor: "cola", Description: "More sugar-free flavor to enjoy."},
			},
		},
		{
			ID: 6, Name: "Volt Energy",
			Description:    "Energy drink with caffeine and electrolytes for an instant boost.",
			Category:       BeverageConventional,
			SweetnessLevel: 8, Caffeinated: true, Carbonated: true, Energizing: true,
			CalorieBand: CaloriesHigh, FlavorProfile: "energy", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "volt-250", BeverageID: 6, SizeML: 250, Price: 35.00, Flavor: "energy", Description: "Compact can for a quick boost."},
				{ID: "volt-473", BeverageID: 6, SizeML: 473, Price: 48.00, Flavor: "energy", Description: "Tall can for long days."},
			},
		},
		{
			ID: 7, Name: "Sparkling Mineral Water",
			Description:    "Natural sparkling mineral water straight from the spring.",
			Category:       BeverageHealthOriented,
			SweetnessLevel: 0, Carbonated: true,
			CalorieBand: CaloriesZero, FlavorProfile: "water", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "mineral-355", BeverageID: 7, SizeML: 355, Price: 18.00, Flavor: "mineral", Description: "Iconic glass bottle with perfect mineralization."},
				{ID: "mineral-500", BeverageID: 7, SizeML: 500, Price: 22.00, Flavor: "mineral", Description: "More mineral water for full hydration."},
				{ID: "mineral-1000", BeverageID: 7, SizeML: 1000, Price: 35.00, Flavor: "mineral", Description: "Family bottle of premium mineral water."},
			},
		},
		{
			ID: 8, Name: "Pure Still Water",
			Description:    "Purified natural water, the healthiest choice for daily hydration.",
			Category:       BeverageHealthOriented,
			SweetnessLevel: 0,
			CalorieBand:    CaloriesZero, FlavorProfile: "water", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "still-500", BeverageID: 8, SizeML: 500, Price: 15.00, Flavor: "water", Description: "Personal bottle of crystal clear water."},
				{ID: "still-1000", BeverageID: 8, SizeML: 1000, Price: 20.00, Flavor: "water", Description: "A liter of healthy hydration."},
				{ID: "still-1500", BeverageID: 8, SizeML: 1500, Price: 25.00, Flavor: "water", Description: "Large bottle for the whole day."},
			},
		},
		{
			ID: 9, Name: "Valley Orange Juice",
			Description:    "Natural orange juice with vitamin C and authentic fruit flavor.",
			Category:       BeverageHealthOriented,
			SweetnessLevel: 6,
			CalorieBand:    CaloriesMedium, FlavorProfile: "orange", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "juice-400", BeverageID: 9, SizeML: 400, Price: 28.00, Flavor: "orange", Description: "Personal carton of 100% orange juice."},
				{ID: "juice-1000", BeverageID: 9, SizeML: 1000, Price: 45.00, Flavor: "orange", Description: "A liter of natural juice for the family."},
			},
		},
		{
			ID: 10, Name: "Green Tea Infusion",
			Description:    "Lightly sweetened green tea with natural antioxidants.",
			Category:       BeverageHealthOriented,
			SweetnessLevel: 3, Caffeinated: true,
			CalorieBand: CaloriesVeryLow, FlavorProfile: "tea", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "tea-500", BeverageID: 10, SizeML: 500, Price: 26.00, Flavor: "green tea", Description: "Personal bottle of fresh brewed tea."},
				{ID: "tea-1000", BeverageID: 10, SizeML: 1000, Price: 42.00, Flavor: "green tea", Description: "Family size to keep in the fridge."},
			},
		},
		{
			ID: 11, Name: "Coco Fresh",
			Description:    "Coconut water with natural electrolytes, nothing added.",
			Category:       BeverageHealthOriented,
			SweetnessLevel: 4,
			CalorieBand:    CaloriesLow, FlavorProfile: "coconut", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "coco-330", BeverageID: 11, SizeML: 330, Price: 32.00, Flavor: "coconut", Description: "Can of pure coconut water."},
				{ID: "coco-1000", BeverageID: 11, SizeML: 1000, Price: 68.00, Flavor: "coconut", Description: "A liter for after sports or the beach."},
			},
		},
		{
			ID: 12, Name: "Berry Punch Nectar",
			Description:    "Mixed berry fruit nectar, sweet and full of flavor.",
			Category:       BeverageHealthOriented,
			SweetnessLevel: 7,
			CalorieBand:    CaloriesMedium, FlavorProfile: "berry", ClusterID: -1,
			Presentations: []Presentation{
				{ID: "berry-400", BeverageID: 12, SizeML: 400, Price: 27.00, Flavor: "berry", Description: "Personal carton of berry nectar."},
				{ID: "berry-1000", BeverageID: 12, SizeML: 1000, Price: 44.00, Flavor: "berry", Description: "Family carton for breakfast."},
			},
		},
	}
}
