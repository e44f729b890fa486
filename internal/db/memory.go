package db

import (
	"context"
	"fmt"

	"github.com/jonathan/parfolio/internal/types"
)

// SearchMemory returns up to topK personal-memory entries matching the query,
// scoped to the given user. Satisfies the tools.MemorySearcher contract.
//
// Matching is keyword ILIKE over content; an empty result is returned as an
// empty slice, never an error.
func (db *DB) SearchMemory(ctx context.Context, userID, query string, topK int) ([]types.MemoryEntry, error) {
	if topK <= 0 {
		topK = 3
	}

	rows, err := db.pool.Query(ctx,
		`SELECT content, category
		 FROM memory_entries
		 WHERE user_id = $1 AND content ILIKE '%' || $2 || '%'
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, query, topK,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search memory: %w", err)
	}
	defer rows.Close()

	entries := make([]types.MemoryEntry, 0, topK)
	for rows.Next() {
		var entry types.MemoryEntry
		if err := rows.Scan(&entry.Content, &entry.Category); err != nil {
			return nil, fmt.Errorf("failed to scan memory entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memory entries: %w", err)
	}
	return entries, nil
}

// SaveMemory stores a personal-memory entry for a user
func (db *DB) SaveMemory(ctx context.Context, userID string, entry types.MemoryEntry) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO memory_entries (user_id, content, category)
		 VALUES ($1, $2, $3)`,
		userID, entry.Content, entry.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to save memory entry: %w", err)
	}
	return nil
}
