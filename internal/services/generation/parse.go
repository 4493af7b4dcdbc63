package generation

import (
	"bytes"
	"encoding/json"
	"strings"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/recipe"
)

// ParseBatch decodes a provider reply into recipes. Markdown code fences are
// stripped first. A top-level array is expected; an object carrying the
// array under "recipes" is accepted too, since JSON-mode chat completions
// only return objects.
//
// Only JSON validity is checked. Missing fields are left zero, but a reply
// holding no recipes at all is an empty response.
func ParseBatch(raw string) (recipe.Batch, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return nil, apperrors.NewEmptyResponseError("no response from provider", "EMPTY_RESPONSE")
	}

	data := []byte(text)
	if bytes.HasPrefix(data, []byte("{")) {
		var wrapped struct {
			Recipes json.RawMessage `json:"recipes"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, apperrors.NewMalformedResponseError("provider returned invalid JSON", "MALFORMED_JSON", err)
		}
		if len(wrapped.Recipes) == 0 {
			return nil, apperrors.NewMalformedResponseError("provider returned an object without recipes", "MALFORMED_JSON", nil)
		}
		data = wrapped.Recipes
	}

	var batch recipe.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, apperrors.NewMalformedResponseError("provider returned invalid JSON", "MALFORMED_JSON", err)
	}
	if len(batch) == 0 {
		return nil, apperrors.NewEmptyResponseError("provider returned no recipes", "NO_RECIPES")
	}
	return batch, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
