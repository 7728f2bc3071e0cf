package windowing

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sirupsen/logrus"
)

// Stats summarizes the result of window preparation.
type Stats struct {
	Total            int  // estimated tokens for included groups only
	Budget           int  // the input token budget used
	IncludedGroups   int  // number of groups included
	SkippedGroups    int  // total groups minus IncludedGroups
	OverBudgetNewest bool // true when the newest single group alone exceeds Budget
}

// PrepareSendWindow returns a subslice of msgs (oldest to newest) that fits
// within budget using the TokenCounter, without splitting groups.
//
// Whole groups are included scanning newest to oldest while the running
// total stays within budget. When the newest group alone exceeds the
// budget, or the budget is non-positive, the window is empty and
// OverBudgetNewest is set.
func PrepareSendWindow(msgs []anthropic.MessageParam, budget int, c TokenCounter) ([]anthropic.MessageParam, Stats) {
	if len(msgs) == 0 {
		return nil, Stats{Budget: budget}
	}

	groups := GroupBlocks(msgs)

	if budget <= 0 {
		return nil, Stats{Budget: budget, SkippedGroups: len(groups), OverBudgetNewest: true}
	}

	total := 0
	included := 0
	startIdx := len(groups)

	for gi := len(groups) - 1; gi >= 0; gi-- {
		cost := c.CountGroup(groups[gi], msgs)
		if included == 0 && cost > budget {
			logrus.Debugf("windowing: reason=over_budget_newest_group budget=%d cost=%d", budget, cost)
			return nil, Stats{Budget: budget, SkippedGroups: len(groups), OverBudgetNewest: true}
		}
		if total+cost > budget {
			break
		}
		total += cost
		included++
		startIdx = gi
	}

	if included == 0 {
		return nil, Stats{Budget: budget, SkippedGroups: len(groups)}
	}

	// Groups are contiguous and non-overlapping, so the window starts at the
	// first included group's message index.
	window := msgs[groups[startIdx].Start:]
	return window, Stats{
		Total:          total,
		Budget:         budget,
		IncludedGroups: included,
		SkippedGroups:  len(groups) - included,
	}
}
