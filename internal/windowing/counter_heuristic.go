package windowing

import (
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// TokenCounter estimates input-token cost for messages or groups.
type TokenCounter interface {
	CountMessage(m anthropic.MessageParam) int
	CountGroup(g Group, all []anthropic.MessageParam) int
}

// HeuristicCounter is the default deterministic estimator: rune counts for
// text and tool_result payloads plus a fixed per-block overhead. It is a
// sizing heuristic, not a tokenizer; the budget should carry headroom.
type HeuristicCounter struct{}

// Fixed per-block overhead; changing this requires updating the guard test.
const blockOverhead = 4

func (HeuristicCounter) CountMessage(m anthropic.MessageParam) int {
	total := 0
	for _, blk := range m.Content {
		total += countBlock(blk)
	}
	return total
}

func (h HeuristicCounter) CountGroup(g Group, all []anthropic.MessageParam) int {
	total := 0
	for i := g.Start; i < g.End && i < len(all); i++ {
		total += h.CountMessage(all[i])
	}
	return total
}

func countBlock(blk anthropic.ContentBlockParamUnion) int {
	if tb := blk.OfText; tb != nil {
		return utf8.RuneCountInString(tb.Text) + blockOverhead
	}

	if tr := blk.OfToolResult; tr != nil {
		subtotal := 0
		for _, nb := range tr.Content {
			if nt := nb.OfText; nt != nil {
				subtotal += utf8.RuneCountInString(nt.Text)
			}
			// Non-text nested blocks contribute only via the parent overhead.
		}
		return subtotal + blockOverhead
	}

	// tool_use, thinking, images, documents: overhead only in this minimal
	// heuristic.
	return blockOverhead
}
