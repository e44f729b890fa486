// Package tools binds the deterministic analyzers, portfolio lookups, memory
// search, and market-intelligence lookups into the fixed set of named tools the
// coaching agent can call. A registry is scoped to one user so a tool
// invocation can never act on another user's data.
package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/parfolio/internal/analysis"
	"github.com/jonathan/parfolio/internal/portfolio"
	"github.com/jonathan/parfolio/internal/research"
	"github.com/jonathan/parfolio/internal/schemas"
	"github.com/jonathan/parfolio/internal/toolcache"
	"github.com/jonathan/parfolio/internal/types"
)

// The ten tool names exposed to the model. These identifiers appear verbatim
// in the agent prompt and must not change.
const (
	ToolSearchMemory         = "search_memory"
	ToolAnalyzeStorytelling  = "analyze_storytelling"
	ToolAnalyzeStructure     = "analyze_structure"
	ToolCheckCareerAlignment = "check_career_alignment"
	ToolPortfolioCoverage    = "get_portfolio_coverage"
	ToolFindSimilarStories   = "find_similar_stories"
	ToolCompanyInsights      = "get_company_insights"
	ToolRoleTrends           = "get_role_trends"
	ToolIndustryContext      = "get_industry_info"
	ToolMetricBenchmarks     = "get_metric_benchmarks"
)

// Param describes one tool argument, used both for the model-facing
// declaration and for schema validation before dispatch.
type Param struct {
	Name        string
	Type        string // "string" or "integer"
	Description string
	Required    bool
}

// Tool is a self-describing callable unit
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Invoke      func(ctx context.Context, args map[string]any) (string, error)
}

// MemorySearcher is the personal-memory collaborator
type MemorySearcher interface {
	SearchMemory(ctx context.Context, userID, query string, topK int) ([]types.MemoryEntry, error)
}

// Default bounds for market-intelligence lookups
const (
	DefaultSearchTimeout = 15 * time.Second
)

// Deps bundles the collaborators a registry needs. Stories and Memory may be
// nil in degraded deployments; Search may be nil when market intelligence is
// not configured.
type Deps struct {
	Stories       portfolio.StoryLister
	Memory        MemorySearcher
	Search        research.Searcher
	Career        *analysis.CareerValidator
	Cache         *toolcache.Cache[string]
	CacheTTL      time.Duration // 0 means toolcache.DefaultTTL
	SearchTimeout time.Duration // 0 means DefaultSearchTimeout
}

// Registry is the ordered, user-scoped tool set
type Registry struct {
	userID string
	deps   Deps
	tools  []Tool
	byName map[string]*Tool
}

// NewRegistry builds the ten coaching tools closed over userID
func NewRegistry(userID string, deps Deps) *Registry {
	if deps.Career == nil {
		deps.Career = analysis.NewCareerValidator(nil)
	}
	if deps.Cache == nil {
		deps.Cache = toolcache.New[string](0)
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = toolcache.DefaultTTL
	}
	if deps.SearchTimeout <= 0 {
		deps.SearchTimeout = DefaultSearchTimeout
	}

	r := &Registry{userID: userID, deps: deps}
	r.tools = []Tool{
		r.memoryTool(),
		r.storytellingTool(),
		r.structureTool(),
		r.careerAlignmentTool(),
		r.coverageTool(),
		r.similarStoriesTool(),
		r.companyInsightsTool(),
		r.roleTrendsTool(),
		r.industryContextTool(),
		r.metricBenchmarksTool(),
	}
	r.byName = make(map[string]*Tool, len(r.tools))
	for i := range r.tools {
		r.byName[r.tools[i].Name] = &r.tools[i]
	}
	return r
}

// Tools returns the tool list in registration order
func (r *Registry) Tools() []Tool {
	return r.tools
}

// Dispatch validates and executes a tool call by name. It always returns text:
// unknown names, invalid arguments, and tool failures become descriptive
// messages fed back into the conversation rather than orchestrator errors.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) string {
	tool, ok := r.byName[name]
	if !ok {
		return fmt.Sprintf("Unknown tool %q. Available tools: %s.", name, strings.Join(r.toolNames(), ", "))
	}

	if args == nil {
		args = map[string]any{}
	}
	if err := schemas.ValidateDocument(argSchema(tool.Params), args); err != nil {
		return fmt.Sprintf("Invalid arguments for %s: %v", name, err)
	}

	output, err := tool.Invoke(ctx, args)
	if err != nil {
		return fmt.Sprintf("Error running %s: %v", name, err)
	}
	return output
}

func (r *Registry) toolNames() []string {
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// argSchema builds a JSON schema document from a tool's parameter list
func argSchema(params []Param) map[string]any {
	properties := make(map[string]any, len(params))
	required := make([]any, 0, len(params))
	for _, p := range params {
		properties[p.Name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Argument extraction helpers. JSON numbers decode as float64.

func stringArg(args map[string]any, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, name string, fallback int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}
