package runner

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/tidwall/gjson"

	"github.com/petasbytes/agentcli/internal/telemetry"
)

// accumulator reconstructs the discrete content-block sequence from the
// incremental event stream. It is explicit state-machine style: at most one
// block is open at any moment, and any event that contradicts that is a
// protocol violation fatal to the turn.
type accumulator struct {
	display Display

	blocks   []Block
	open     *Block
	inputBuf strings.Builder // partial tool_use input JSON fragments
	done     bool
}

func newAccumulator(display Display) *accumulator {
	return &accumulator{display: display}
}

func (a *accumulator) handle(ev anthropic.MessageStreamEventUnion) error {
	if a.done {
		return protocolViolation("event %q after message_stop", ev.Type)
	}

	switch v := ev.AsAny().(type) {
	case anthropic.MessageStartEvent:
		// Carries message metadata only; block events follow.
		return nil

	case anthropic.ContentBlockStartEvent:
		if a.open != nil {
			return protocolViolation("content_block_start while a block is open")
		}
		switch b := v.ContentBlock.AsAny().(type) {
		case anthropic.TextBlock:
			a.open = &Block{Kind: BlockText}
		case anthropic.ThinkingBlock:
			a.open = &Block{Kind: BlockThinking}
		case anthropic.ToolUseBlock:
			// Name and id are known at start; input arrives as partial JSON
			// and is only complete at content_block_stop.
			a.open = &Block{Kind: BlockToolUse, ID: b.ID, Name: b.Name}
			a.inputBuf.Reset()
		default:
			return protocolViolation("unsupported content block type %T", b)
		}
		return nil

	case anthropic.ContentBlockDeltaEvent:
		if a.open == nil {
			return protocolViolation("content_block_delta with no open block")
		}
		switch d := v.Delta.AsAny().(type) {
		case anthropic.TextDelta:
			if a.open.Kind != BlockText {
				return protocolViolation("text_delta for a non-text block")
			}
			a.open.Text += d.Text
			a.display.AssistantDelta(d.Text)
		case anthropic.ThinkingDelta:
			if a.open.Kind != BlockThinking {
				return protocolViolation("thinking_delta for a non-thinking block")
			}
			a.open.Text += d.Thinking
			a.display.ThinkingDelta(d.Thinking)
		case anthropic.SignatureDelta:
			if a.open.Kind != BlockThinking {
				return protocolViolation("signature_delta for a non-thinking block")
			}
			a.open.Signature += d.Signature
		case anthropic.InputJSONDelta:
			if a.open.Kind != BlockToolUse {
				return protocolViolation("input_json_delta for a non-tool_use block")
			}
			a.inputBuf.WriteString(d.PartialJSON)
		}
		return nil

	case anthropic.ContentBlockStopEvent:
		if a.open == nil {
			return protocolViolation("content_block_stop with no open block")
		}
		if a.open.Kind == BlockToolUse {
			raw := a.inputBuf.String()
			if raw == "" {
				raw = "{}"
			}
			if !gjson.Valid(raw) {
				return protocolViolation("tool_use input is not valid JSON at block stop")
			}
			a.open.Input = []byte(raw)
		}
		a.blocks = append(a.blocks, *a.open)
		a.open = nil
		return nil

	case anthropic.MessageStopEvent:
		if a.open != nil {
			return protocolViolation("message_stop while a block is open")
		}
		a.done = true
		return nil

	default:
		// message_delta and future informational events.
		return nil
	}
}

// streamStep consumes one streamed API exchange, forwarding text and
// thinking deltas to the display as they arrive, and returns the same block
// sequence the non-streamed path would have produced.
func (r *Runner) streamStep(ctx context.Context, params anthropic.MessageNewParams) ([]Block, anthropic.MessageParam, error) {
	stream := r.Client.Messages.NewStreaming(ctx, params)
	acc := newAccumulator(r.Display)

	for stream.Next() {
		if err := acc.handle(stream.Current()); err != nil {
			r.Display.StreamEnd()
			return nil, anthropic.MessageParam{}, err
		}
	}
	r.Display.StreamEnd()
	if err := stream.Err(); err != nil {
		return nil, anthropic.MessageParam{}, err
	}
	if !acc.done {
		return nil, anthropic.MessageParam{}, protocolViolation("stream ended before message_stop")
	}

	turnID, _ := telemetry.TurnIDFromContext(ctx)
	telemetry.Emit("stream_completed", map[string]any{
		"turn_id": turnID,
		"blocks":  len(acc.blocks),
	})
	return acc.blocks, assistantParam(acc.blocks), nil
}
