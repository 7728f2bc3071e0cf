package runner

import (
	"errors"
	"fmt"
)

// ErrStreamProtocol marks event-ordering violations from the streamed
// transport. Like any transport fault it is fatal to the current turn only.
var ErrStreamProtocol = errors.New("stream protocol violation")

func protocolViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStreamProtocol, fmt.Sprintf(format, args...))
}

// BudgetError reports that the newest message group alone exceeds the send
// window budget, which means the budget or the tool output caps are
// misconfigured.
type BudgetError struct {
	Budget int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("windowing: newest group exceeds token budget %d; raise window_budget or tighten tool caps", e.Budget)
}
