package factories

// zonesByCity lists the delivery zones generated for each supported city.
// Other cities get a single central zone.
var zonesByCity = map[string][]string{
	"Dubai":     {"Dubai Marina", "Deira", "Downtown", "JLT", "Al Barsha", "Jumeirah", "Business Bay"},
	"Abu Dhabi": {"Al Reem", "Khalifa City", "Corniche", "Yas Island", "Al Nahyan"},
	"Sharjah":   {"Al Nahda", "Al Majaz", "Al Khan", "Muwaileh"},
	"Ajman":     {"Al Nuaimiya", "Al Rashidiya"},
}

var menus = map[string][]menuItem{
	"Lebanese":     {{"Chicken Shawarma", 18}, {"Mixed Grill", 65}, {"Fattoush", 22}, {"Hummus", 16}, {"Manakish", 12}},
	"Indian":       {{"Chicken Biryani", 32}, {"Butter Chicken", 38}, {"Paneer Tikka", 30}, {"Garlic Naan", 6}, {"Dal Makhani", 24}},
	"Pakistani":    {{"Nihari", 35}, {"Seekh Kebab", 28}, {"Karahi", 42}, {"Paratha", 5}},
	"Emirati":      {{"Machboos", 45}, {"Harees", 30}, {"Luqaimat", 18}, {"Balaleet", 22}},
	"Italian":      {{"Margherita Pizza", 42}, {"Penne Arrabbiata", 39}, {"Tiramisu", 28}, {"Lasagna", 48}},
	"Chinese":      {{"Kung Pao Chicken", 36}, {"Fried Rice", 24}, {"Dim Sum", 32}, {"Spring Rolls", 18}},
	"Filipino":     {{"Chicken Adobo", 30}, {"Pancit", 26}, {"Sisig", 34}, {"Halo-Halo", 20}},
	"American":     {{"Cheeseburger", 38}, {"Fries", 14}, {"Buffalo Wings", 36}, {"Milkshake", 22}},
	"Japanese":     {{"Salmon Sushi", 55}, {"Chicken Katsu", 46}, {"Ramen", 44}, {"Edamame", 18}},
	"Arabic Grill": {{"Shish Tawook", 34}, {"Lamb Chops", 78}, {"Kofta", 32}, {"Grilled Halloumi", 26}},
}

var cuisineNames = []string{"Lebanese", "Indian", "Pakistani", "Emirati", "Italian", "Chinese", "Filipino", "American", "Japanese", "Arabic Grill"}

var (
	tiers        = []string{"Budget", "Standard", "Premium"}
	tierWeights  = []float64{0.35, 0.45, 0.20}
	tierPriceMul = map[string]float64{"Budget": 0.8, "Standard": 1.0, "Premium": 1.6}
	vehicleTypes = []string{"Motorbike", "Motorbike", "Motorbike", "Car", "Bicycle"}
)

type menuItem struct {
	name  string
	price float64
}

func zonesFor(city string) []string {
	if zones, ok := zonesByCity[city]; ok {
		return zones
	}
	return []string{city + " Central"}
}
