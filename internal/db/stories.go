package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/parfolio/internal/types"
)

// Story statuses.
const (
	StoryStatusDraft    = "draft"
	StoryStatusComplete = "complete"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ListStories returns all stories owned by a user, newest first.
// Satisfies the portfolio.StoryLister contract.
func (db *DB) ListStories(ctx context.Context, userID string) ([]types.Story, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, problem, action, result, tags, status
		 FROM stories
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var stories []types.Story
	for rows.Next() {
		var story types.Story
		if err := rows.Scan(&story.ID, &story.UserID, &story.Title, &story.Problem,
			&story.Action, &story.Result, &story.Tags, &story.Status); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stories: %w", err)
	}
	return stories, nil
}

// GetStory returns a single story by id, scoped to its owner
func (db *DB) GetStory(ctx context.Context, userID, storyID string) (*types.Story, error) {
	var story types.Story
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, problem, action, result, tags, status
		 FROM stories
		 WHERE id = $1 AND user_id = $2`,
		storyID, userID,
	).Scan(&story.ID, &story.UserID, &story.Title, &story.Problem,
		&story.Action, &story.Result, &story.Tags, &story.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &story, nil
}

// CreateStory inserts a new story and returns its generated id
func (db *DB) CreateStory(ctx context.Context, story types.Story) (string, error) {
	if story.ID == "" {
		story.ID = uuid.NewString()
	}
	if story.Status == "" {
		story.Status = StoryStatusDraft
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO stories (id, user_id, title, problem, action, result, tags, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		story.ID, story.UserID, story.Title, story.Problem,
		story.Action, story.Result, story.Tags, story.Status,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create story: %w", err)
	}
	return story.ID, nil
}

// UpdateStoryTags replaces a story's tags, scoped to its owner
func (db *DB) UpdateStoryTags(ctx context.Context, userID, storyID string, tags []string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE stories SET tags = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		tags, storyID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update story tags: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
