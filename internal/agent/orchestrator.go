// Package agent drives the tool-calling coaching conversation. It runs the
// deterministic analyzers up front, opens a model session with the user-scoped
// tool registry bound, executes tool calls the model requests, and parses the
// model's terminal text into a typed coaching result. Model failures degrade
// first to the fallback tier and then to the basic non-agentic chain; parse
// failures of a completed conversation are surfaced to the caller.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/parfolio/internal/analysis"
	"github.com/jonathan/parfolio/internal/chains"
	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/prompts"
	"github.com/jonathan/parfolio/internal/schemas"
	"github.com/jonathan/parfolio/internal/tools"
	"github.com/jonathan/parfolio/internal/types"
)

// DefaultMaxTurns bounds the number of tool-calling turns per coaching
// request so a looping model cannot stall a request forever.
const DefaultMaxTurns = 8

// Coach orchestrates agentic coaching requests against a model pair.
type Coach struct {
	client   llm.AgentClient
	deps     tools.Deps
	maxTurns int
}

// Option configures a Coach.
type Option func(*Coach)

// WithMaxTurns overrides the tool-calling turn ceiling.
func WithMaxTurns(n int) Option {
	return func(c *Coach) {
		if n > 0 {
			c.maxTurns = n
		}
	}
}

// NewCoach creates a Coach. The tool dependencies are shared across requests;
// a per-request registry scoped to the requesting user is built on each call.
func NewCoach(client llm.AgentClient, deps tools.Deps, opts ...Option) *Coach {
	c := &Coach{
		client:   client,
		deps:     deps,
		maxTurns: DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CoachStory produces strength/gap/suggestion insights for a PAR story.
//
// The happy path is a tool-calling conversation on the primary model with
// pre-computed analyzer findings injected as context. If the primary model
// cannot be invoked the fallback model is tried with the same tools; if that
// also fails, or the conversation exceeds the turn ceiling, the basic
// non-agentic chain on the fallback tier is the last resort. A conversation
// that completes but yields unparseable output fails hard with
// MalformedAgentOutput rather than degrading to the chain.
func (c *Coach) CoachStory(ctx context.Context, userID string, input chains.CoachingInput) (*types.CoachingResult, error) {
	registry := tools.NewRegistry(userID, c.deps)

	finalText, err := c.converse(ctx, registry, input)
	if err != nil {
		log.Printf("agent coaching failed, falling back to basic chain: %v", err)
		return chains.CoachStory(ctx, c.client, input, llm.TierFallback)
	}

	return ParseCoachingOutput(finalText)
}

// converse runs the tool-calling conversation to completion and returns the
// model's terminal text.
func (c *Coach) converse(ctx context.Context, registry *tools.Registry, input chains.CoachingInput) (string, error) {
	decls := toolDecls(registry.Tools())
	opening := c.openingMessage(input)

	reply, session, err := c.startConversation(ctx, decls, opening)
	if err != nil {
		return "", err
	}

	for turn := 0; len(reply.Calls) > 0; turn++ {
		if turn >= c.maxTurns {
			return "", fmt.Errorf("tool-calling conversation exceeded %d turns", c.maxTurns)
		}

		results := make([]llm.ToolResult, 0, len(reply.Calls))
		for _, call := range reply.Calls {
			log.Printf("agent tool call: %s", call.Name)
			results = append(results, llm.ToolResult{
				Name:   call.Name,
				Output: registry.Dispatch(ctx, call.Name, call.Args),
			})
		}

		reply, err = session.SendToolResults(ctx, results)
		if err != nil {
			return "", fmt.Errorf("tool result turn failed: %w", err)
		}
	}

	return reply.Text, nil
}

// startConversation opens a session on the primary tier and sends the opening
// message, retrying once on the fallback tier if the primary fails outright.
func (c *Coach) startConversation(ctx context.Context, decls []llm.ToolDecl, opening string) (*llm.Reply, llm.AgentSession, error) {
	var lastErr error
	for _, tier := range []llm.ModelTier{llm.TierPrimary, llm.TierFallback} {
		session, err := c.client.StartSession(ctx, tier, decls)
		if err != nil {
			lastErr = err
			log.Printf("agent session on %s tier failed to start: %v", tier, err)
			continue
		}

		reply, err := session.SendText(ctx, opening)
		if err != nil {
			lastErr = err
			log.Printf("agent opening turn on %s tier failed: %v", tier, err)
			continue
		}
		return reply, session, nil
	}
	return nil, nil, fmt.Errorf("all model tiers failed: %w", lastErr)
}

// openingMessage assembles the system prompt, the story, and the pre-computed
// analyzer findings into the conversation's first message.
func (c *Coach) openingMessage(input chains.CoachingInput) string {
	system := prompts.Format(prompts.MustGet(prompts.CoachingFile, "agent_system"), map[string]string{
		"FirstName": firstName(input),
	})
	return system + "\n\n" + chains.BuildCoachingUserMessage(input, preAnalyze(input.PAR))
}

// preAnalyze runs the storytelling and structure analyzers synchronously and
// renders their findings as the plain-text context block. The model always
// sees these deterministic signals even if it never calls a tool.
func preAnalyze(par types.PARTriple) string {
	storytelling := analysis.AnalyzeStorytelling(par.Problem, par.Action, par.Result)
	structure := analysis.AnalyzeStructure(par.Problem, par.Action, par.Result)

	return "AUTOMATIC ANALYSIS (deterministic, already computed):\n\n" +
		tools.FormatStorytelling(storytelling) + "\n\n" +
		tools.FormatStructure(structure)
}

// ParseCoachingOutput extracts the JSON object from the model's final text
// and decodes it into a coaching result. A _reasoning field, if present, is
// logged and stripped; it never reaches the caller.
func ParseCoachingOutput(text string) (*types.CoachingResult, error) {
	raw := llm.ExtractJSONBlock(text)

	if err := schemas.ValidateCoaching(raw); err != nil {
		return nil, &MalformedAgentOutput{RawText: text, Cause: err}
	}

	var full struct {
		types.CoachingResult
		Reasoning string `json:"_reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &full); err != nil {
		return nil, &MalformedAgentOutput{RawText: text, Cause: err}
	}

	if full.Reasoning != "" {
		log.Printf("agent reasoning: %s", full.Reasoning)
	}
	return &full.CoachingResult, nil
}

func toolDecls(toolSet []tools.Tool) []llm.ToolDecl {
	decls := make([]llm.ToolDecl, 0, len(toolSet))
	for _, tool := range toolSet {
		decl := llm.ToolDecl{
			Name:        tool.Name,
			Description: tool.Description,
		}
		for _, param := range tool.Params {
			decl.Params = append(decl.Params, llm.ParamDecl{
				Name:        param.Name,
				Type:        param.Type,
				Description: param.Description,
				Required:    param.Required,
			})
		}
		decls = append(decls, decl)
	}
	return decls
}

func firstName(input chains.CoachingInput) string {
	if input.FirstName == "" {
		return "User"
	}
	return input.FirstName
}
