package runner

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/petasbytes/agentcli/conversation"
	"github.com/petasbytes/agentcli/internal/config"
	"github.com/petasbytes/agentcli/internal/telemetry"
	"github.com/petasbytes/agentcli/internal/windowing"
	"github.com/petasbytes/agentcli/tools"
)

// Display is the user-facing surface the runner renders to. Implementations
// must not block for long; every call happens on the turn's goroutine.
type Display interface {
	// AssistantText shows a complete text block (non-streamed path).
	AssistantText(text string)
	// AssistantDelta shows a streamed text fragment as it arrives.
	AssistantDelta(text string)
	// Thinking shows a complete thinking block (non-streamed path).
	Thinking(text string)
	// ThinkingDelta shows a streamed thinking fragment as it arrives.
	ThinkingDelta(text string)
	// StreamEnd terminates any in-progress streamed line.
	StreamEnd()
	// ToolStart announces a tool dispatch with its raw input.
	ToolStart(name string, input json.RawMessage)
	// ToolDone reports a finished dispatch and whether it succeeded.
	ToolDone(name string, ok bool)
	// Error surfaces a turn-fatal failure.
	Error(err error)
}

// Runner drives the conversation: it sends the message log to the API,
// interprets the response's content blocks in order, dispatches tool_use
// blocks sequentially, and keeps re-sending until a response carries no
// tool requests.
type Runner struct {
	Client  *anthropic.Client
	Tools   []tools.ToolDefinition
	Display Display

	Model        anthropic.Model
	MaxTokens    int64
	WindowBudget int
	Streaming    bool
}

func New(client *anthropic.Client, cfg *config.Config, model anthropic.Model, defs []tools.ToolDefinition, display Display) *Runner {
	return &Runner{
		Client:       client,
		Tools:        defs,
		Display:      display,
		Model:        model,
		MaxTokens:    int64(cfg.MaxTokens),
		WindowBudget: windowBudget(cfg),
		Streaming:    cfg.Streaming(),
	}
}

// windowBudget resolves the send-window token budget: AGT_TOKEN_BUDGET
// overrides the config value when set and valid.
func windowBudget(cfg *config.Config) int {
	if v := os.Getenv("AGT_TOKEN_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		logrus.Warnf("ignoring invalid AGT_TOKEN_BUDGET %q", v)
	}
	return cfg.WindowBudget
}

// RunTurn processes one full user turn: append the input, then loop
// send → interpret → dispatch → append tool results until a response has no
// tool_use blocks. Empty input is a silent no-op. A transport failure (or a
// streaming protocol violation) aborts only this turn: the error is
// returned, and no partial assistant message is appended.
func (r *Runner) RunTurn(ctx context.Context, log *conversation.Log, userText string) error {
	if isBlank(userText) {
		return nil
	}
	log.AppendUserText(userText)

	turnID := uuid.NewString()
	ctx = telemetry.WithTurnID(ctx, turnID)
	telemetry.Emit("turn_started", map[string]any{"turn_id": turnID})
	telemetry.EmitLocalFeatures(ctx, userText)

	for {
		blocks, assistant, err := r.step(ctx, log.Messages())
		if err != nil {
			return err
		}
		log.Append(assistant)

		results := r.interpret(ctx, blocks)
		if len(results) == 0 {
			return nil
		}
		// All tool results for this response travel in one user message.
		log.Append(anthropic.NewUserMessage(results...))
	}
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\r' && r != '\n' {
			return false
		}
	}
	return true
}

// step performs one API exchange over the configured transport and returns
// the response's blocks plus the assistant message param to append.
func (r *Runner) step(ctx context.Context, msgs []anthropic.MessageParam) ([]Block, anthropic.MessageParam, error) {
	params, err := r.buildParams(ctx, msgs)
	if err != nil {
		return nil, anthropic.MessageParam{}, err
	}
	if r.Streaming {
		return r.streamStep(ctx, params)
	}

	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		return nil, anthropic.MessageParam{}, err
	}
	return blocksFromContent(msg.Content), msg.ToParam(), nil
}

func (r *Runner) buildParams(ctx context.Context, msgs []anthropic.MessageParam) (anthropic.MessageNewParams, error) {
	counter := windowing.HeuristicCounter{}
	window, stats := windowing.PrepareSendWindow(msgs, r.WindowBudget, counter)

	turnID, _ := telemetry.TurnIDFromContext(ctx)
	telemetry.Emit("window_prepared", map[string]any{
		"turn_id":            turnID,
		"model":              string(r.Model),
		"budget":             stats.Budget,
		"total_estimated":    stats.Total,
		"included_groups":    stats.IncludedGroups,
		"skipped_groups":     stats.SkippedGroups,
		"over_budget_newest": stats.OverBudgetNewest,
	})
	logrus.Debugf("window: model=%s budget=%d est_total=%d groups_in=%d groups_skip=%d newest_over=%t",
		r.Model, stats.Budget, stats.Total, stats.IncludedGroups, stats.SkippedGroups, stats.OverBudgetNewest)

	// The newest group must always fit; tool output caps are sized so it
	// does. Failing here means a misconfigured budget.
	if stats.OverBudgetNewest {
		return anthropic.MessageNewParams{}, &BudgetError{Budget: stats.Budget}
	}

	return anthropic.MessageNewParams{
		Model:     r.Model,
		MaxTokens: r.MaxTokens,
		Messages:  window,
		Tools:     r.anthropicTools(),
	}, nil
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.Tools))
	for _, t := range r.Tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// interpret walks the response blocks in model-emitted order: text and
// thinking go straight to the display (the streamed path has already shown
// them as deltas), tool_use blocks are dispatched one at a time. Returned
// tool_result params correspond 1:1, in dispatch order, to the tool_use
// blocks encountered.
func (r *Runner) interpret(ctx context.Context, blocks []Block) []anthropic.ContentBlockParamUnion {
	var results []anthropic.ContentBlockParamUnion
	for _, b := range blocks {
		switch b.Kind {
		case BlockText:
			if !r.Streaming {
				r.Display.AssistantText(b.Text)
			}
		case BlockThinking:
			if !r.Streaming {
				r.Display.Thinking(b.Text)
			}
		case BlockToolUse:
			results = append(results, r.execTool(ctx, b.ID, b.Name, b.Input))
		}
	}
	return results
}

// execTool dispatches one tool_use block. Lookup misses and handler errors
// are contained: both become error tool_results carrying the original
// tool_use id, and the turn continues.
func (r *Runner) execTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	start := time.Now()

	emit := func(outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   name,
			"duration_ms": time.Since(start).Milliseconds(),
			"input_size":  len(input),
			"output_size": outputSize,
			"turn_id":     turnID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	def, ok := tools.Find(r.Tools, name)
	if !ok {
		emit(0, "tool not found")
		logrus.Debugf("tool_use %s: unknown tool %q", id, name)
		return anthropic.NewToolResultBlock(id, "Tool not found: "+name, true)
	}

	r.Display.ToolStart(name, input)
	resp, err := def.Function(input)
	if err != nil {
		r.Display.ToolDone(name, false)
		// Telemetry gets a generic marker; the detailed message goes back to
		// the model in the tool_result payload.
		emit(0, "tool error")
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}
	r.Display.ToolDone(name, true)
	emit(len(resp), "")
	return anthropic.NewToolResultBlock(id, resp, false)
}
