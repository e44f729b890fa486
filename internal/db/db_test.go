package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoryStatusConstants(t *testing.T) {
	assert.Equal(t, "draft", StoryStatusDraft)
	assert.Equal(t, "complete", StoryStatusComplete)
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-postgres-url")
	assert.Error(t, err)
}
