package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validCoachingJSON = `{
  "strength": {"overview": "Clear metrics", "detail": "The result section quantifies impact."},
  "gap": {"overview": "Team framing", "detail": "The action section uses 'we' language."},
  "suggestion": {"overview": "Own the action", "detail": "Rewrite the action section in first person."}
}`

func TestValidateCoaching_ValidDocument(t *testing.T) {
	assert.NoError(t, ValidateCoaching(validCoachingJSON))
}

func TestValidateCoaching_ReasoningFieldAllowed(t *testing.T) {
	doc := `{
  "strength": {"overview": "a", "detail": "b"},
  "gap": {"overview": "c", "detail": "d"},
  "suggestion": {"overview": "e", "detail": "f"},
  "_reasoning": "internal notes"
}`
	assert.NoError(t, ValidateCoaching(doc))
}

func TestValidateCoaching_MissingRequiredKey(t *testing.T) {
	doc := `{
  "strength": {"overview": "a", "detail": "b"},
  "gap": {"overview": "c", "detail": "d"}
}`
	err := ValidateCoaching(doc)
	assert.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateCoaching_InsightMissingDetail(t *testing.T) {
	doc := `{
  "strength": {"overview": "a"},
  "gap": {"overview": "c", "detail": "d"},
  "suggestion": {"overview": "e", "detail": "f"}
}`
	assert.Error(t, ValidateCoaching(doc))
}

func TestValidateDocument_ToolArguments(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"query"},
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
			"top_k": map[string]any{"type": "integer"},
		},
	}

	assert.NoError(t, ValidateDocument(schema, map[string]any{"query": "golang", "top_k": 3}))
	assert.Error(t, ValidateDocument(schema, map[string]any{"top_k": 3}))
	assert.Error(t, ValidateDocument(schema, map[string]any{"query": 42}))
}
