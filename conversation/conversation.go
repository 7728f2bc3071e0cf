package conversation

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// Log is the ordered, append-only record of one conversation.
// It is owned by the dispatch loop: only the loop appends, and only one
// turn is ever in flight, so no locking is needed.
type Log struct {
	msgs []anthropic.MessageParam
}

func New() *Log {
	return &Log{}
}

// Append adds a message to the end of the log. Messages are never
// mutated or removed after this point.
func (l *Log) Append(m anthropic.MessageParam) {
	l.msgs = append(l.msgs, m)
}

// AppendUserText appends an ordinary user input message.
func (l *Log) AppendUserText(text string) {
	l.Append(anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
}

// Messages returns a snapshot of the log for sending. The backing array is
// shared; callers must treat the slice as read-only.
func (l *Log) Messages() []anthropic.MessageParam {
	return l.msgs[:len(l.msgs):len(l.msgs)]
}

func (l *Log) Len() int {
	return len(l.msgs)
}
