package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// ToolDecl describes a callable function exposed to the model
type ToolDecl struct {
	Name        string
	Description string
	Params      []ParamDecl
}

// ParamDecl describes a single tool parameter
type ParamDecl struct {
	Name        string
	Type        string // "string" or "integer"
	Description string
	Required    bool
}

// ToolCall is the model's request to execute a named tool
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolResult is the text output of an executed tool, sent back to the model
type ToolResult struct {
	Name   string
	Output string
}

// Reply is one model turn: final text, tool calls, or both
type Reply struct {
	Text  string
	Calls []ToolCall
}

// AgentSession is a single tool-calling conversation. Turns alternate between
// the caller sending text or tool results and the model replying.
type AgentSession interface {
	// SendText sends a user/context message and returns the model's reply
	SendText(ctx context.Context, text string) (*Reply, error)
	// SendToolResults feeds executed tool outputs back and returns the next reply
	SendToolResults(ctx context.Context, results []ToolResult) (*Reply, error)
}

// StartSession opens a Gemini chat with the declared tools bound
func (c *GeminiClient) StartSession(ctx context.Context, tier ModelTier, decls []ToolDecl) (AgentSession, error) {
	model, err := c.model(tier)
	if err != nil {
		return nil, err
	}
	if len(decls) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: toFunctionDeclarations(decls)}}
	}

	return &geminiSession{chat: model.StartChat()}, nil
}

type geminiSession struct {
	chat *genai.ChatSession
}

func (s *geminiSession) SendText(ctx context.Context, text string) (*Reply, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("model turn failed: %w", err)
	}
	return replyFromResponse(resp)
}

func (s *geminiSession) SendToolResults(ctx context.Context, results []ToolResult) (*Reply, error) {
	parts := make([]genai.Part, 0, len(results))
	for _, result := range results {
		parts = append(parts, genai.FunctionResponse{
			Name:     result.Name,
			Response: map[string]any{"output": result.Output},
		})
	}

	resp, err := s.chat.SendMessage(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("model turn failed: %w", err)
	}
	return replyFromResponse(resp)
}

// replyFromResponse splits a Gemini response into text and tool calls
func replyFromResponse(resp *genai.GenerateContentResponse) (*Reply, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, fmt.Errorf("no content in response")
	}

	reply := &Reply{}
	var texts []string
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			texts = append(texts, string(p))
		case genai.FunctionCall:
			reply.Calls = append(reply.Calls, ToolCall{Name: p.Name, Args: p.Args})
		}
	}
	reply.Text = strings.Join(texts, "")
	return reply, nil
}

func toFunctionDeclarations(decls []ToolDecl) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, decl := range decls {
		var params *genai.Schema
		if len(decl.Params) > 0 {
			params = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: make(map[string]*genai.Schema, len(decl.Params)),
			}
			for _, p := range decl.Params {
				params.Properties[p.Name] = &genai.Schema{
					Type:        schemaType(p.Type),
					Description: p.Description,
				}
				if p.Required {
					params.Required = append(params.Required, p.Name)
				}
			}
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        decl.Name,
			Description: decl.Description,
			Parameters:  params,
		})
	}
	return out
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
