// Package windowing prepares bounded send windows over the conversation
// without ever splitting a tool exchange.
package windowing

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sirupsen/logrus"
)

// GroupKind denotes the atomic unit type when preparing a send window.
type GroupKind int

const (
	GroupSingleton GroupKind = iota
	GroupPair
)

// Group describes a contiguous span of messages [Start, End) in the
// original slice. Kind indicates whether it is a singleton or a validated
// tool exchange pair.
type Group struct {
	Kind  GroupKind
	Start int // inclusive index into msgs
	End   int // exclusive index into msgs
}

// GroupBlocks groups messages into atomic units that preserve tool-use
// pairs. A pair is exactly two adjacent messages, assistant(tool_use+...)
// then user(tool_result...), where:
//   - in the user message all tool_result blocks come first, text after;
//   - every tool_use id in the assistant message appears in the user
//     message's leading tool_result segment, and nothing extra does.
//
// Error tool_results group the same as successful ones. Anything that fails
// validation falls back to singleton grouping.
func GroupBlocks(msgs []anthropic.MessageParam) []Group {
	groups := make([]Group, 0, len(msgs))
	for i := 0; i < len(msgs); {
		m := msgs[i]
		if m.Role == anthropic.MessageParamRoleAssistant {
			useIDs := toolUseIDs(m)
			if len(useIDs) > 0 {
				if i+1 < len(msgs) && msgs[i+1].Role == anthropic.MessageParamRoleUser {
					valid, resultIDs := leadingToolResultIDs(msgs[i+1])
					if valid && idsEqual(resultIDs, useIDs) {
						groups = append(groups, Group{Kind: GroupPair, Start: i, End: i + 2})
						i += 2
						continue
					}
					logrus.Debugf("windowing: exclude pair: reason=%s idx=%d", pairRejectReason(valid, resultIDs, useIDs), i)
				} else {
					logrus.Debugf("windowing: exclude pair: reason=not_followed_by_user idx=%d", i)
				}
			}
		}
		groups = append(groups, Group{Kind: GroupSingleton, Start: i, End: i + 1})
		i++
	}
	return groups
}

// toolUseIDs returns the set of tool_use ids present in an assistant message.
func toolUseIDs(m anthropic.MessageParam) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, blk := range m.Content {
		if tu := blk.OfToolUse; tu != nil && tu.ID != "" {
			ids[tu.ID] = struct{}{}
		}
	}
	return ids
}

// leadingToolResultIDs inspects a user message and returns valid=false when
// any tool_result appears after a non-tool_result block, plus the ids of
// the leading tool_result segment. Trailing text is allowed and ignored.
func leadingToolResultIDs(m anthropic.MessageParam) (valid bool, resultIDs map[string]struct{}) {
	resultIDs = make(map[string]struct{})
	seenNonResult := false
	for _, blk := range m.Content {
		if tr := blk.OfToolResult; tr != nil {
			if seenNonResult {
				return false, resultIDs
			}
			if tr.ToolUseID != "" {
				resultIDs[tr.ToolUseID] = struct{}{}
			}
			continue
		}
		seenNonResult = true
	}
	return true, resultIDs
}

// idsEqual checks exact correspondence between result ids and use ids:
// nothing missing, nothing extra.
func idsEqual(have, want map[string]struct{}) bool {
	if len(have) != len(want) {
		return false
	}
	for id := range want {
		if _, ok := have[id]; !ok {
			return false
		}
	}
	return true
}

func pairRejectReason(valid bool, have, want map[string]struct{}) string {
	switch {
	case !valid:
		return "ordering_invalid"
	case len(have) < len(want):
		return "missing_results"
	default:
		return "extra_results"
	}
}
