package recipe

// Recipe is one generated dish. Optional fields decode to "" when the
// provider leaves them out.
type Recipe struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	CookingTime      string   `json:"cookingTime,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	Cuisine          string   `json:"cuisine,omitempty"`
	Ingredients      []string `json:"ingredients"`
	Instructions     []string `json:"instructions"`
	Tips             string   `json:"tips,omitempty"`
	VideoSearchQuery string   `json:"videoSearchQuery"`
}

// MissingFields lists the mandatory fields the provider left empty.
func (r Recipe) MissingFields() []string {
	var missing []string
	if r.Title == "" {
		missing = append(missing, "title")
	}
	if r.Description == "" {
		missing = append(missing, "description")
	}
	if len(r.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(r.Instructions) == 0 {
		missing = append(missing, "instructions")
	}
	if r.VideoSearchQuery == "" {
		missing = append(missing, "videoSearchQuery")
	}
	return missing
}

// Batch is the ordered result of one generation, in model output order.
type Batch []Recipe

// SummaryTitle is the title of the batch's representative, the first recipe.
func (b Batch) SummaryTitle() string {
	if len(b) == 0 {
		return ""
	}
	return b[0].Title
}
