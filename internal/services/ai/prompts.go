package ai

import (
	"fmt"
	"strings"

	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/recipe"
	"google.golang.org/genai"
)

const (
	anyMealType  = "Appropriate for any time"
	anyAppliance = "Any standard kitchen tools"
	noDietary    = "None"
	anyTime      = "As needed"
)

const ingredientsPolicySection = `IMPORTANT INSTRUCTION ON INGREDIENTS:
- The "Ingredients available" list contains what the user has in their kitchen.
- You do NOT need to use every single ingredient listed.
- Select the best combination of the provided ingredients to create a coherent and delicious dish.
- You may assume the user has basic pantry staples (oil, salt, pepper, soy sauce, sugar, water, etc.) even if not listed.`

const constraintsPolicySection = `IMPORTANT INSTRUCTION ON CONSTRAINTS:
- If a specific appliance is selected (e.g., Air Fryer), ensure the recipe primarily uses that tool.
- Strictly adhere to dietary restrictions (e.g., if Vegan, do not use meat, eggs, or dairy).
- If a specific meal type is selected (e.g. Breakfast), ensure the recipe is appropriate for that meal.`

const outputFieldsSection = `Return a JSON array of objects, where each object represents a recipe with the following fields:
- title (string): Creative name of the dish
- description (string): A short, appetizing description (max 2 sentences)
- cookingTime (string): Estimated time (e.g. "30 mins")
- difficulty (string): The difficulty level
- cuisine (string): The cuisine type
- ingredients (array of strings): List of ingredients with quantities adjusted for the portion size
- instructions (array of strings): Step-by-step cooking instructions including temperature and mode for specific appliances
- tips (string): One or two pro tips for this dish
- videoSearchQuery (string): A search query string optimized for finding a YouTube video tutorial for this specific dish (e.g. 'How to make authentic Mapo Tofu' or '麻婆豆腐做法').`

// plainSchemaSection is appended for providers that cannot take a typed
// response schema.
const plainSchemaSection = `Respond with a JSON object only, without markdown fences or commentary. Put the recipes in its "recipes" field, matching this structure:
{"recipes": [{"title": string, "description": string, "cookingTime": string, "difficulty": string, "cuisine": string, "ingredients": [string], "instructions": [string], "tips": string, "videoSearchQuery": string}]}
The fields title, description, ingredients, instructions and videoSearchQuery are mandatory.`

// RequiredRecipeFields returns the fields every generated recipe must carry.
func RequiredRecipeFields() []string {
	return []string{"title", "description", "ingredients", "instructions", "videoSearchQuery"}
}

// RecipeSchema is the typed response schema: an array of recipe objects.
var RecipeSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":            {Type: genai.TypeString},
			"description":      {Type: genai.TypeString},
			"cookingTime":      {Type: genai.TypeString},
			"difficulty":       {Type: genai.TypeString},
			"cuisine":          {Type: genai.TypeString},
			"ingredients":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"instructions":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"tips":             {Type: genai.TypeString},
			"videoSearchQuery": {Type: genai.TypeString},
		},
		Required: RequiredRecipeFields(),
	},
}

// Prompt is a compiled generation request.
type Prompt struct {
	Instruction string
	Schema      *genai.Schema
}

// PlainText returns the instruction with the schema spelled out in prose,
// for providers that only return free text.
func (p Prompt) PlainText() string {
	return p.Instruction + "\n\n" + plainSchemaSection
}

// LanguageDirective returns the output-language sentence for lang. Unknown
// languages get the English directive.
func LanguageDirective(lang i18n.Language) string {
	switch lang {
	case i18n.TraditionalChinese:
		return "Output the entire response in Traditional Chinese (Taiwan)."
	case i18n.SimplifiedChinese:
		return "Output the entire response in Simplified Chinese (Mainland China)."
	case i18n.Korean:
		return "Output the entire response in Korean."
	default:
		return "Output the response in English."
	}
}

// Compile turns preferences into a generation request. It is pure: the same
// inputs always give byte-identical output.
func Compile(prefs recipe.Preferences, lang i18n.Language) Prompt {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Create %d distinct and detailed cooking recipe(s) based on these parameters:\n\n", prefs.NumDishes)
	fmt.Fprintf(&sb, "1. Ingredients available: %s\n", prefs.Ingredients)
	fmt.Fprintf(&sb, "2. Cuisine style: %s\n", prefs.Cuisine)
	fmt.Fprintf(&sb, "3. Difficulty level: %s\n", prefs.Difficulty)
	fmt.Fprintf(&sb, "4. Preferred cooking time: %s\n", timeString(prefs.Time))
	fmt.Fprintf(&sb, "5. Portion Size: %s\n", prefs.PortionSize)
	fmt.Fprintf(&sb, "6. Occasion/Purpose: %s\n", prefs.Occasion)
	fmt.Fprintf(&sb, "7. Meal Type: %s\n", mealTypeString(prefs.MealType))
	fmt.Fprintf(&sb, "8. Dietary Restrictions/Allergies: %s\n", dietString(prefs.DietaryRestrictions))
	fmt.Fprintf(&sb, "9. Preferred Cooking Method/Appliance: %s\n", applianceString(prefs.Appliance))

	sb.WriteString("\n")
	sb.WriteString(ingredientsPolicySection)
	sb.WriteString("\n\n")
	sb.WriteString(constraintsPolicySection)
	sb.WriteString("\n\n")
	sb.WriteString(LanguageDirective(lang))
	sb.WriteString("\n\n")
	sb.WriteString(outputFieldsSection)

	return Prompt{
		Instruction: sb.String(),
		Schema:      RecipeSchema,
	}
}

func timeString(t string) string {
	if strings.TrimSpace(t) == "" {
		return anyTime
	}
	return t
}

func mealTypeString(m recipe.MealType) string {
	if m == recipe.MealTypeAny {
		return anyMealType
	}
	return string(m)
}

func applianceString(a recipe.Appliance) string {
	if a == recipe.ApplianceAny {
		return anyAppliance
	}
	return string(a)
}

func dietString(restrictions []recipe.Dietary) string {
	if len(restrictions) == 0 {
		return noDietary
	}
	parts := make([]string, len(restrictions))
	for i, r := range restrictions {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// BuildImagePrompt is the photography prompt for a dish preview.
func BuildImagePrompt(title, description string) string {
	return fmt.Sprintf("Professional food photography of %s. %s. \n  High resolution, delicious, soft lighting, michelin star plating, photorealistic, 8k.", title, description)
}

// ChefPersona is the system instruction binding a chat to the chef
// character in lang.
func ChefPersona(lang i18n.Language) string {
	switch lang {
	case i18n.TraditionalChinese:
		return "你是一位名叫 Gemini 大厨的世界级厨师。你乐于助人、充满鼓励，并且对所有菜系都非常了解。请用繁体中文回答，保持简洁友好的语气。"
	case i18n.SimplifiedChinese:
		return "你是一位名叫 Gemini 大厨的世界级厨师。你乐于助人、充满鼓励，并且对所有菜系都非常了解。请用简体中文回答，保持简洁友好的语气。"
	case i18n.Korean:
		return "당신은 셰프 Gemini라는 세계적인 요리사입니다. 당신은 도움이 되고, 격려를 아끼지 않으며, 모든 요리에 대해 잘 알고 있습니다. 한국어로 대답하고 간결하지만 친근한 어조를 유지하세요."
	default:
		return "You are a world-class chef named Chef Gemini. You are helpful, encouraging, and knowledgeable about all cuisines. Keep answers concise but friendly."
	}
}
