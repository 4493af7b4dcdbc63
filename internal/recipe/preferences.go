package recipe

import (
	"fmt"
	"strings"

	apperrors "github.com/culinai/chef/internal/errors"
)

// MaxDishes is the largest batch a caller may request.
const MaxDishes = 3

// Preferences describes the recipes a caller wants. Only Ingredients is
// required; Normalize fills the rest with their "no constraint" defaults.
type Preferences struct {
	Ingredients         string      `json:"ingredients"`
	Cuisine             Cuisine     `json:"cuisine"`
	Difficulty          Difficulty  `json:"difficulty"`
	Time                string      `json:"time"`
	NumDishes           int         `json:"numDishes"`
	PortionSize         PortionSize `json:"portionSize"`
	Occasion            Occasion    `json:"occasion"`
	MealType            MealType    `json:"mealType"`
	DietaryRestrictions []Dietary   `json:"dietaryRestrictions"`
	Appliance           Appliance   `json:"appliance"`
}

// DefaultPreferences returns the starting selection of a fresh form.
func DefaultPreferences() Preferences {
	return Preferences{
		Cuisine:     CuisineAny,
		Difficulty:  DifficultyMedium,
		NumDishes:   1,
		PortionSize: PortionTwo,
		Occasion:    OccasionDaily,
		MealType:    MealTypeAny,
		Appliance:   ApplianceAny,
	}
}

// Normalize trims free text, applies defaults to unset fields and removes
// duplicate dietary restrictions while keeping their first-seen order.
func (p Preferences) Normalize() Preferences {
	d := DefaultPreferences()

	p.Ingredients = strings.TrimSpace(p.Ingredients)
	p.Time = strings.TrimSpace(p.Time)
	if p.Cuisine == "" {
		p.Cuisine = d.Cuisine
	}
	if p.Difficulty == "" {
		p.Difficulty = d.Difficulty
	}
	if p.NumDishes == 0 {
		p.NumDishes = d.NumDishes
	}
	if p.PortionSize == "" {
		p.PortionSize = d.PortionSize
	}
	if p.Occasion == "" {
		p.Occasion = d.Occasion
	}
	if p.MealType == "" {
		p.MealType = d.MealType
	}
	if p.Appliance == "" {
		p.Appliance = d.Appliance
	}

	if len(p.DietaryRestrictions) > 0 {
		seen := make(map[Dietary]bool, len(p.DietaryRestrictions))
		unique := make([]Dietary, 0, len(p.DietaryRestrictions))
		for _, r := range p.DietaryRestrictions {
			if seen[r] {
				continue
			}
			seen[r] = true
			unique = append(unique, r)
		}
		p.DietaryRestrictions = unique
	}

	return p
}

// Validate checks a normalized Preferences value. Every enum field must be
// one of its known keys and NumDishes must be between 1 and MaxDishes.
func (p Preferences) Validate() error {
	if p.Ingredients == "" {
		return apperrors.NewValidationError("ingredients are required", "INGREDIENTS_REQUIRED",
			"List at least one ingredient you have available.")
	}
	if p.NumDishes < 1 || p.NumDishes > MaxDishes {
		return apperrors.NewValidationError(fmt.Sprintf("numDishes must be between 1 and %d", MaxDishes),
			"NUM_DISHES_OUT_OF_RANGE", "")
	}

	switch {
	case !p.Cuisine.Valid():
		return unknownKey("cuisine", string(p.Cuisine))
	case !p.Difficulty.Valid():
		return unknownKey("difficulty", string(p.Difficulty))
	case !p.PortionSize.Valid():
		return unknownKey("portionSize", string(p.PortionSize))
	case !p.Occasion.Valid():
		return unknownKey("occasion", string(p.Occasion))
	case !p.MealType.Valid():
		return unknownKey("mealType", string(p.MealType))
	case !p.Appliance.Valid():
		return unknownKey("appliance", string(p.Appliance))
	}

	seen := make(map[Dietary]bool, len(p.DietaryRestrictions))
	for _, r := range p.DietaryRestrictions {
		if !r.Valid() {
			return unknownKey("dietaryRestrictions", string(r))
		}
		if seen[r] {
			return apperrors.NewValidationError("duplicate dietary restriction "+string(r), "DUPLICATE_DIETARY", "")
		}
		seen[r] = true
	}

	return nil
}

func unknownKey(field, value string) error {
	return apperrors.NewValidationError(fmt.Sprintf("unknown %s %q", field, value), "UNKNOWN_OPTION",
		"Use one of the keys listed by GET /api/options.")
}
