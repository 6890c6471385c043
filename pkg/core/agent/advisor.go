package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"finagent/pkg/core/engine"
	"finagent/pkg/core/registry"
	"finagent/pkg/core/utils"
)

// =============================================================================
// FUNCTION-CALLING ADVISOR
// The model never does arithmetic: every calculation is dispatched into the
// registry and the structured result is handed back to the model.
// =============================================================================

const advisorSystemPrompt = `You are a financial advisor for Indian retail users.
You MUST use the provided tools for every calculation: tax, capital gains,
insurance, retirement, EMI, SIP, and portfolio numbers all come from tools,
never from your own arithmetic. Quote tool outputs exactly, in INR.
Ask for missing inputs instead of assuming them. Format comparisons as
Markdown tables. You provide education and computation, not SEBI-registered
investment advice, and should say so when recommending products.`

// A single model answer is allowed this many rounds of tool calls.
const maxToolRounds = 8

// ToolCall records one dispatched calculator invocation.
type ToolCall struct {
	Tool   string                 `json:"tool"`
	Args   map[string]interface{} `json:"args"`
	Result registry.Result        `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Answer is one advisor turn.
type Answer struct {
	SessionID string     `json:"session_id"`
	Text      string     `json:"text"`
	HTML      string     `json:"html"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Advisor drives a Gemini chat with every registry calculator declared as a
// callable function. Safe for concurrent sessions.
type Advisor struct {
	client   *genai.Client
	model    string
	registry *registry.Registry

	mu       sync.Mutex
	sessions map[string]*genai.ChatSession
}

// NewAdvisor builds the advisor on the given model with the full tool set
// declared.
func NewAdvisor(ctx context.Context, apiKey, model string, reg *registry.Registry) (*Advisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the advisor")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Advisor{
		client:   client,
		model:    model,
		registry: reg,
		sessions: make(map[string]*genai.ChatSession),
	}, nil
}

func (a *Advisor) Close() error {
	return a.client.Close()
}

// declarations converts every registry tool contract into a Gemini function
// declaration.
func (a *Advisor) declarations() []*genai.FunctionDeclaration {
	specs := a.registry.Specs()
	decls := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, spec := range specs {
		properties := make(map[string]*genai.Schema, len(spec.Params))
		var required []string
		for _, p := range spec.Params {
			properties[p.Name] = &genai.Schema{
				Type:        schemaType(p.Type),
				Description: p.Description,
				Enum:        p.Enum,
			}
			if p.Type == engine.ParamArray {
				properties[p.Name].Items = &genai.Schema{Type: genai.TypeObject}
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   required,
			},
		})
	}
	return decls
}

func schemaType(t engine.ParamType) genai.Type {
	switch t {
	case engine.ParamNumber:
		return genai.TypeNumber
	case engine.ParamInteger:
		return genai.TypeInteger
	case engine.ParamBoolean:
		return genai.TypeBoolean
	case engine.ParamArray:
		return genai.TypeArray
	case engine.ParamObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func (a *Advisor) session(id string) (*genai.ChatSession, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id != "" {
		if cs, ok := a.sessions[id]; ok {
			return cs, id
		}
	} else {
		id = uuid.NewString()
	}

	model := a.client.GenerativeModel(a.model)
	model.SetTemperature(0.1)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(advisorSystemPrompt)},
	}
	model.Tools = []*genai.Tool{
		{FunctionDeclarations: a.declarations()},
	}
	cs := model.StartChat()
	a.sessions[id] = cs
	return cs, id
}

// Ask runs one advisor turn, dispatching tool calls until the model answers
// in text. An empty sessionID starts a new session.
func (a *Advisor) Ask(ctx context.Context, sessionID, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is empty")
	}
	cs, id := a.session(sessionID)
	answer := &Answer{SessionID: id}

	resp, err := cs.SendMessage(ctx, genai.Text(question))
	if err != nil {
		return nil, fmt.Errorf("advisor turn failed: %w", err)
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, fc := range calls {
			record := ToolCall{Tool: fc.Name, Args: fc.Args}

			rawArgs, err := json.Marshal(fc.Args)
			if err != nil {
				return nil, fmt.Errorf("cannot marshal args for %s: %w", fc.Name, err)
			}
			result, err := a.registry.Execute(fc.Name, string(rawArgs))
			if err != nil {
				// Feed the failure back so the model can correct its call or
				// ask the user for the missing input.
				record.Error = err.Error()
				replies = append(replies, genai.FunctionResponse{
					Name:     fc.Name,
					Response: map[string]interface{}{"error": err.Error()},
				})
			} else {
				record.Result = result
				replies = append(replies, genai.FunctionResponse{
					Name:     fc.Name,
					Response: result,
				})
			}
			answer.ToolCalls = append(answer.ToolCalls, record)
		}

		resp, err = cs.SendMessage(ctx, replies...)
		if err != nil {
			return nil, fmt.Errorf("tool response turn failed: %w", err)
		}
	}

	answer.Text = utils.CleanMarkdown(responseText(resp))
	if answer.Text == "" {
		return nil, fmt.Errorf("model produced no text after %d tool rounds", maxToolRounds)
	}
	html, err := utils.RenderMarkdown(answer.Text)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	answer.HTML = html
	return answer, nil
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if fc, ok := part.(genai.FunctionCall); ok {
				calls = append(calls, fc)
			}
		}
	}
	return calls
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
