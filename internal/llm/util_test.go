package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONBlock_JSONFence(t *testing.T) {
	text := "```json\n{\"strength\": \"clear\"}\n```"
	assert.Equal(t, "{\"strength\": \"clear\"}", ExtractJSONBlock(text))
}

func TestExtractJSONBlock_ProsePrefix(t *testing.T) {
	text := "Here is my answer:\n```json\n{\"gap\": {\"overview\": \"x\"}}\n```"
	assert.Equal(t, "{\"gap\": {\"overview\": \"x\"}}", ExtractJSONBlock(text))
}

func TestExtractJSONBlock_ProseSuffix(t *testing.T) {
	text := "```json\n{\"a\": 1}\n```\nLet me know if you need more."
	assert.Equal(t, "{\"a\": 1}", ExtractJSONBlock(text))
}

func TestExtractJSONBlock_GenericFence(t *testing.T) {
	text := "```\n{\"a\": 1}\n```"
	assert.Equal(t, "{\"a\": 1}", ExtractJSONBlock(text))
}

func TestExtractJSONBlock_BareJSON(t *testing.T) {
	text := "  {\"a\": 1}  "
	assert.Equal(t, "{\"a\": 1}", ExtractJSONBlock(text))
}

func TestExtractJSONBlock_LastJSONFenceWins(t *testing.T) {
	text := "```json\n{\"draft\": true}\n```\nRevised:\n```json\n{\"draft\": false}\n```"
	assert.Equal(t, "{\"draft\": false}", ExtractJSONBlock(text))
}

func TestExtractJSONBlock_UnclosedFence(t *testing.T) {
	text := "```json\n{\"a\": 1}"
	assert.Equal(t, "{\"a\": 1}", ExtractJSONBlock(text))
}

func TestExtractJSONBlock_Empty(t *testing.T) {
	assert.Equal(t, "", ExtractJSONBlock(""))
	assert.Equal(t, "", ExtractJSONBlock("   "))
}
