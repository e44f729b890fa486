package tools

import (
	"context"
	"fmt"
	"strings"
)

func (r *Registry) memoryTool() Tool {
	return Tool{
		Name: ToolSearchMemory,
		Description: "Search the user's personal memory database for relevant professional context. " +
			"Use this when you need to recall specific skills, projects, or background.",
		Params: []Param{
			{Name: "query", Type: "string", Description: "A natural language search query or key terms to look for", Required: true},
			{Name: "top_k", Type: "integer", Description: "Number of relevant results to return (default: 3)"},
		},
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			query := stringArg(args, "query")
			if r.deps.Memory == nil {
				return "Personal memory is not configured. No memories available.", nil
			}

			entries, err := r.deps.Memory.SearchMemory(ctx, r.userID, query, intArg(args, "top_k", 3))
			if err != nil {
				return fmt.Sprintf("Error searching personal memory: %v", err), nil
			}
			if len(entries) == 0 {
				return fmt.Sprintf("No relevant personal memories found for query: %s", query), nil
			}

			lines := make([]string, 0, len(entries))
			for _, entry := range entries {
				category := entry.Category
				if category == "" {
					category = "info"
				}
				lines = append(lines, fmt.Sprintf("[%s] %s", strings.ToUpper(category), entry.Content))
			}
			return strings.Join(lines, "\n"), nil
		},
	}
}
