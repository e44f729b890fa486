package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPrompts(t *testing.T) {
	ClearCache()

	cases := []struct {
		file string
		key  string
	}{
		{StructuringFile, "system"},
		{StructuringFile, "user"},
		{TaggingFile, "system"},
		{TaggingFile, "user"},
		{CoachingFile, "system"},
		{CoachingFile, "agent_system"},
		{CoachingFile, "user"},
	}

	for _, tc := range cases {
		prompt, err := Get(tc.file, tc.key)
		require.NoError(t, err, "%s/%s", tc.file, tc.key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get(CoachingFile, "no-such-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-key")
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("missing.json", "system")
	assert.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("missing.json", "system")
	})
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, story: {{.Title}}", map[string]string{
		"Name":  "Dana",
		"Title": "Migration Under Pressure",
	})
	assert.Equal(t, "Hello Dana, story: Migration Under Pressure", out)
}

func TestAgentSystemPromptNamesAllTools(t *testing.T) {
	prompt := MustGet(CoachingFile, "agent_system")

	for _, name := range []string{
		"search_memory",
		"analyze_storytelling",
		"analyze_structure",
		"check_career_alignment",
		"get_portfolio_coverage",
		"find_similar_stories",
		"get_company_insights",
		"get_role_trends",
		"get_industry_info",
		"get_metric_benchmarks",
	} {
		assert.True(t, strings.Contains(prompt, name), "missing tool %s", name)
	}
}
