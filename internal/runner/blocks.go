package runner

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
)

// BlockKind discriminates the closed set of assistant content blocks the
// dispatch loop interprets.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockThinking
	BlockToolUse
)

// Block is one assistant content block in model-emitted order, in a form
// shared by the streamed and non-streamed transports. Text carries the
// payload for text and thinking blocks; ID, Name, and Input are set only
// for tool_use blocks.
type Block struct {
	Kind BlockKind

	Text string

	// thinking blocks carry a signature that must be echoed back when the
	// block is resent to the API.
	Signature string

	ID    string
	Name  string
	Input json.RawMessage
}

// blocksFromContent converts a finished API response's content into Blocks,
// preserving order. Unknown block types are dropped; the closed Block set is
// what the interpreter is written against.
func blocksFromContent(content []anthropic.ContentBlockUnion) []Block {
	out := make([]Block, 0, len(content))
	for _, c := range content {
		switch v := c.AsAny().(type) {
		case anthropic.TextBlock:
			out = append(out, Block{Kind: BlockText, Text: v.Text})
		case anthropic.ThinkingBlock:
			out = append(out, Block{Kind: BlockThinking, Text: v.Thinking, Signature: v.Signature})
		case anthropic.ToolUseBlock:
			out = append(out, Block{
				Kind:  BlockToolUse,
				ID:    v.ID,
				Name:  v.Name,
				Input: json.RawMessage(v.JSON.Input.Raw()),
			})
		}
	}
	return out
}

// assistantParam rebuilds an assistant message param from reconstructed
// blocks so the streamed path can append the same conversation shape the
// non-streamed path gets from Message.ToParam.
func assistantParam(blocks []Block) anthropic.MessageParam {
	parts := make([]anthropic.ContentBlockParamUnion, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case BlockText:
			parts = append(parts, anthropic.NewTextBlock(b.Text))
		case BlockThinking:
			parts = append(parts, anthropic.NewThinkingBlock(b.Signature, b.Text))
		case BlockToolUse:
			parts = append(parts, anthropic.ContentBlockParamUnion{
				OfToolUse: &anthropic.ToolUseBlockParam{
					Type:  "tool_use",
					ID:    b.ID,
					Name:  b.Name,
					Input: b.Input,
				},
			})
		}
	}
	return anthropic.NewAssistantMessage(parts...)
}
