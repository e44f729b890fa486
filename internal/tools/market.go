package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/parfolio/internal/research"
)

// Market-intelligence tools share a pattern: the query is derived from the
// arguments, the lookup is cached, and every failure path resolves to text so
// the model can still produce a final answer.

func (r *Registry) companyInsightsTool() Tool {
	return Tool{
		Name: ToolCompanyInsights,
		Description: "Get insights about a company's interview culture and process. " +
			"Use when the user is targeting a specific company.",
		Params: []Param{
			{Name: "company_name", Type: "string", Description: `Name of the target company (e.g., "Google", "Meta", "Stripe")`, Required: true},
		},
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			company := stringArg(args, "company_name")
			query := fmt.Sprintf("%s interview process culture behavioral questions what interviewers look for", company)
			body := r.marketSearch(ctx, "company_insights", map[string]string{"company": company}, query, company+" interview insights")
			return fmt.Sprintf("=== Interview Insights for %s ===\n\n%s", company, body), nil
		},
	}
}

func (r *Registry) roleTrendsTool() Tool {
	return Tool{
		Name: ToolRoleTrends,
		Description: "Get current interview trends and expectations for a specific role. " +
			"Use to understand what competencies are valued for the target role.",
		Params: []Param{
			{Name: "role_title", Type: "string", Description: `The target role (e.g., "Product Manager", "Software Engineer")`, Required: true},
		},
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			role := stringArg(args, "role_title")
			query := fmt.Sprintf("%s behavioral interview questions what interviewers look for competencies", role)
			body := r.marketSearch(ctx, "role_trends", map[string]string{"role": role}, query, role+" interview trends")
			return fmt.Sprintf("=== Interview Trends for %s ===\n\n%s", role, body), nil
		},
	}
}

func (r *Registry) industryContextTool() Tool {
	return Tool{
		Name: ToolIndustryContext,
		Description: "Get current context and trends for a specific industry. " +
			"Use to understand industry-specific terminology and priorities.",
		Params: []Param{
			{Name: "industry", Type: "string", Description: `The target industry (e.g., "fintech", "healthcare tech")`, Required: true},
		},
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			industry := stringArg(args, "industry")
			query := fmt.Sprintf("%s industry trends hiring priorities key skills challenges", industry)
			body := r.marketSearch(ctx, "industry_context", map[string]string{"industry": industry}, query, industry+" context")
			return fmt.Sprintf("=== Industry Context for %s ===\n\n%s", industry, body), nil
		},
	}
}

func (r *Registry) metricBenchmarksTool() Tool {
	return Tool{
		Name: ToolMetricBenchmarks,
		Description: "Get benchmark data for impact metrics to help quantify results. " +
			"Useful for helping users add specific numbers to vague results.",
		Params: []Param{
			{Name: "metric_type", Type: "string", Description: `The type of metric to benchmark (e.g., "conversion rate", "cost reduction")`, Required: true},
			{Name: "industry", Type: "string", Description: "Optional industry context for more relevant benchmarks"},
			{Name: "role", Type: "string", Description: "Optional role context for more relevant benchmarks"},
		},
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			metric := stringArg(args, "metric_type")
			industry := stringArg(args, "industry")
			role := stringArg(args, "role")

			parts := []string{metric, "benchmark", "industry average", "what is good"}
			if industry != "" {
				parts = append(parts, industry)
			}
			if role != "" {
				parts = append(parts, role)
			}
			query := strings.Join(parts, " ")

			params := map[string]string{"metric": metric, "industry": industry, "role": role}
			body := r.marketSearch(ctx, "metric_benchmarks", params, query, metric+" benchmarks")

			qualifier := ""
			if industry != "" {
				qualifier = " for " + industry
			}
			if role != "" {
				if qualifier != "" {
					qualifier += fmt.Sprintf(" (%s)", role)
				} else {
					qualifier = " for " + role
				}
			}
			return fmt.Sprintf("=== Benchmarks for %s%s ===\n\n%s", metric, qualifier, body), nil
		},
	}
}

// marketSearch runs a cached, timeout-bounded external lookup. The returned
// string is always usable prompt text; configuration gaps and slow lookups
// degrade to placeholders.
func (r *Registry) marketSearch(ctx context.Context, operation string, params map[string]string, query, subject string) string {
	if r.deps.Search == nil {
		return fmt.Sprintf("Unable to search for %s. Market intelligence search is not configured.", subject)
	}

	body, err := r.deps.Cache.GetOrFill(operation, params, r.deps.CacheTTL, func() (string, error) {
		searchCtx, cancel := context.WithTimeout(ctx, r.deps.SearchTimeout)
		defer cancel()

		results, err := r.deps.Search.Search(searchCtx, query)
		if err != nil {
			return "", err
		}
		return formatSearchResults(results), nil
	})
	if err != nil {
		if errors.Is(err, research.ErrNotConfigured) {
			return fmt.Sprintf("Unable to search for %s. Market intelligence search is not configured.", subject)
		}
		return fmt.Sprintf("Search results unavailable for %s.", subject)
	}
	return body
}

// formatSearchResults renders search hits into readable prompt text
func formatSearchResults(results []research.Result) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	for i, result := range results {
		title := result.Title
		if title == "" {
			title = "Untitled"
		}
		content := result.Content
		if len(content) > 300 {
			content = content[:300] + "..."
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, title, content))
		if result.URL != "" {
			sb.WriteString(fmt.Sprintf("   Source: %s\n", result.URL))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
