// Package i18n holds the supported output languages and the localized
// display tables for every preference option and user-facing message.
//
// The tables are checked by Validate at startup so a missing translation
// stops the server instead of leaking a raw key to clients.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"github.com/culinai/chef/internal/recipe"
)

// Language is a supported output language code.
type Language string

const (
	English            Language = "en"
	TraditionalChinese Language = "zh-TW"
	SimplifiedChinese  Language = "zh-CN"
	Korean             Language = "ko"
)

// Languages returns the supported languages in toggle order.
func Languages() []Language {
	return []Language{English, TraditionalChinese, SimplifiedChinese, Korean}
}

// Parse maps a language code to a supported Language. Anything unknown,
// including the empty string, is English.
func Parse(code string) Language {
	for _, l := range Languages() {
		if strings.EqualFold(code, string(l)) {
			return l
		}
	}
	return English
}

// Next returns the language after l in toggle order, wrapping to English.
func (l Language) Next() Language {
	langs := Languages()
	for i, candidate := range langs {
		if candidate == l {
			return langs[(i+1)%len(langs)]
		}
	}
	return English
}

// Group names one option table.
type Group string

const (
	GroupCuisines     Group = "cuisines"
	GroupDifficulties Group = "difficulties"
	GroupMealTypes    Group = "mealTypes"
	GroupPortions     Group = "portions"
	GroupOccasions    Group = "occasions"
	GroupAppliances   Group = "appliances"
	GroupDietary      Group = "dietary"
)

// Groups returns every option group in form order.
func Groups() []Group {
	return []Group{
		GroupMealTypes, GroupCuisines, GroupDifficulties, GroupPortions,
		GroupOccasions, GroupDietary, GroupAppliances,
	}
}

// Keys returns the closed set of option keys for a group.
func Keys(g Group) []string {
	switch g {
	case GroupCuisines:
		return toStrings(recipe.Cuisines())
	case GroupDifficulties:
		return toStrings(recipe.Difficulties())
	case GroupMealTypes:
		return toStrings(recipe.MealTypes())
	case GroupPortions:
		return toStrings(recipe.PortionSizes())
	case GroupOccasions:
		return toStrings(recipe.Occasions())
	case GroupAppliances:
		return toStrings(recipe.Appliances())
	case GroupDietary:
		return toStrings(recipe.DietaryOptions())
	default:
		return nil
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Messages are the user-facing strings shown per feature area.
type Messages struct {
	ChatWelcome string `json:"chatWelcome"`
	ChatError   string `json:"chatError"`
	ErrorGen    string `json:"errorGen"`
	ErrorImage  string `json:"errorImage"`
}

type catalog struct {
	messages Messages
	labels   map[Group]map[string]string
}

// MessagesFor returns the messages for lang.
func MessagesFor(lang Language) Messages {
	return catalogs[Parse(string(lang))].messages
}

// Label returns the display label of an option key. Validate guarantees
// every known key has one; unknown keys come back unchanged.
func Label(lang Language, g Group, key string) string {
	if label, ok := catalogs[Parse(string(lang))].labels[g][key]; ok {
		return label
	}
	return key
}

// Option is one selectable key with its localized label.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Options returns every group's options localized for lang, in key order.
func Options(lang Language) map[Group][]Option {
	out := make(map[Group][]Option, len(Groups()))
	for _, g := range Groups() {
		keys := Keys(g)
		opts := make([]Option, len(keys))
		for i, k := range keys {
			opts[i] = Option{Key: k, Label: Label(lang, g, k)}
		}
		out[g] = opts
	}
	return out
}

// Validate reports every missing or stray entry across all language tables.
func Validate() error {
	var problems []string
	for _, lang := range Languages() {
		c, ok := catalogs[lang]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: no catalog", lang))
			continue
		}

		m := c.messages
		for name, text := range map[string]string{
			"chatWelcome": m.ChatWelcome,
			"chatError":   m.ChatError,
			"errorGen":    m.ErrorGen,
			"errorImage":  m.ErrorImage,
		} {
			if strings.TrimSpace(text) == "" {
				problems = append(problems, fmt.Sprintf("%s: message %s is empty", lang, name))
			}
		}

		for _, g := range Groups() {
			known := make(map[string]bool)
			for _, key := range Keys(g) {
				known[key] = true
				if strings.TrimSpace(c.labels[g][key]) == "" {
					problems = append(problems, fmt.Sprintf("%s: %s.%s has no label", lang, g, key))
				}
			}
			for key := range c.labels[g] {
				if !known[key] {
					problems = append(problems, fmt.Sprintf("%s: %s.%s is not a known option", lang, g, key))
				}
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("i18n: incomplete translation tables: %s", strings.Join(problems, "; "))
	}
	return nil
}
