package recipe

// Cuisine is a closed set of cuisine styles.
type Cuisine string

const (
	CuisineItalian       Cuisine = "Italian"
	CuisineFrench        Cuisine = "French"
	CuisineChinese       Cuisine = "Chinese"
	CuisineJapanese      Cuisine = "Japanese"
	CuisineKorean        Cuisine = "Korean"
	CuisineIndian        Cuisine = "Indian"
	CuisineMexican       Cuisine = "Mexican"
	CuisineAmerican      Cuisine = "American"
	CuisineThai          Cuisine = "Thai"
	CuisineMediterranean Cuisine = "Mediterranean"
	CuisineAny           Cuisine = "Any"
)

// Cuisines returns every cuisine in display order.
func Cuisines() []Cuisine {
	return []Cuisine{
		CuisineItalian, CuisineFrench, CuisineChinese, CuisineJapanese, CuisineKorean, CuisineIndian,
		CuisineMexican, CuisineAmerican, CuisineThai, CuisineMediterranean, CuisineAny,
	}
}

type Difficulty string

const (
	DifficultyEasy       Difficulty = "Easy"
	DifficultyMedium     Difficulty = "Medium"
	DifficultyHard       Difficulty = "Hard"
	DifficultyMasterChef Difficulty = "Master Chef"
	DifficultyRandom     Difficulty = "Random"
)

func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMasterChef, DifficultyRandom}
}

// MealType keys. MealTypeAny is the "no constraint" sentinel.
type MealType string

const (
	MealTypeAny       MealType = "any"
	MealTypeBreakfast MealType = "breakfast"
	MealTypeBrunch    MealType = "brunch"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
	MealTypeDessert   MealType = "dessert"
)

func MealTypes() []MealType {
	return []MealType{
		MealTypeAny, MealTypeBreakfast, MealTypeBrunch, MealTypeLunch, MealTypeDinner, MealTypeSnack, MealTypeDessert,
	}
}

type PortionSize string

const (
	PortionOne   PortionSize = "1"
	PortionTwo   PortionSize = "2"
	PortionFour  PortionSize = "4"
	PortionParty PortionSize = "party"
	PortionPrep  PortionSize = "prep"
)

func PortionSizes() []PortionSize {
	return []PortionSize{PortionOne, PortionTwo, PortionFour, PortionParty, PortionPrep}
}

type Occasion string

const (
	OccasionDaily   Occasion = "daily"
	OccasionDate    Occasion = "date"
	OccasionParty   Occasion = "party"
	OccasionQuick   Occasion = "quick"
	OccasionHealthy Occasion = "healthy"
	OccasionComfort Occasion = "comfort"
)

func Occasions() []Occasion {
	return []Occasion{OccasionDaily, OccasionDate, OccasionParty, OccasionQuick, OccasionHealthy, OccasionComfort}
}

// Appliance keys. ApplianceAny is the "no constraint" sentinel.
type Appliance string

const (
	ApplianceAny        Appliance = "any"
	ApplianceStove      Appliance = "stove"
	ApplianceOven       Appliance = "oven"
	ApplianceAirFryer   Appliance = "airfryer"
	ApplianceMicrowave  Appliance = "microwave"
	ApplianceSlowCooker Appliance = "slowcooker"
	ApplianceRiceCooker Appliance = "ricecooker"
)

func Appliances() []Appliance {
	return []Appliance{
		ApplianceAny, ApplianceStove, ApplianceOven, ApplianceAirFryer,
		ApplianceMicrowave, ApplianceSlowCooker, ApplianceRiceCooker,
	}
}

type Dietary string

const (
	DietaryVegetarian Dietary = "vegetarian"
	DietaryVegan      Dietary = "vegan"
	DietaryGlutenFree Dietary = "glutenfree"
	DietaryDairyFree  Dietary = "dairyfree"
	DietaryNutFree    Dietary = "nutfree"
	DietaryLowCarb    Dietary = "lowcarb"
)

func DietaryOptions() []Dietary {
	return []Dietary{
		DietaryVegetarian, DietaryVegan, DietaryGlutenFree, DietaryDairyFree, DietaryNutFree, DietaryLowCarb,
	}
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (c Cuisine) Valid() bool     { return contains(Cuisines(), c) }
func (d Difficulty) Valid() bool  { return contains(Difficulties(), d) }
func (m MealType) Valid() bool    { return contains(MealTypes(), m) }
func (p PortionSize) Valid() bool { return contains(PortionSizes(), p) }
func (o Occasion) Valid() bool    { return contains(Occasions(), o) }
func (a Appliance) Valid() bool   { return contains(Appliances(), a) }
func (d Dietary) Valid() bool     { return contains(DietaryOptions(), d) }
