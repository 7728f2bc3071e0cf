// Package display renders the conversation to a terminal.
package display

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	colorAssistant = "\u001b[93m" // yellow
	colorThinking  = "\u001b[90m" // dim grey
	colorTool      = "\u001b[92m" // green
	colorError     = "\u001b[91m" // red
	colorReset     = "\u001b[0m"
)

// Console writes the assistant's output, tool activity, and errors to a
// single writer. It satisfies the runner's Display interface.
type Console struct {
	w io.Writer

	// streaming line state: true while deltas have been written without a
	// terminating newline.
	lineOpen bool
	// streamLabel is the label of the open streamed line ("assistant" or
	// "thinking"); empty when no label has been printed yet.
	streamLabel string
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) AssistantText(text string) {
	fmt.Fprintf(c.w, "%sClaude%s: %s\n", colorAssistant, colorReset, text)
}

func (c *Console) Thinking(text string) {
	fmt.Fprintf(c.w, "%sthinking: %s%s\n", colorThinking, text, colorReset)
}

func (c *Console) AssistantDelta(text string) {
	c.ensureLabel("assistant", fmt.Sprintf("%sClaude%s: ", colorAssistant, colorReset))
	fmt.Fprint(c.w, text)
	c.lineOpen = true
}

func (c *Console) ThinkingDelta(text string) {
	c.ensureLabel("thinking", fmt.Sprintf("%sthinking:%s ", colorThinking, colorReset))
	fmt.Fprintf(c.w, "%s%s%s", colorThinking, text, colorReset)
	c.lineOpen = true
}

// ensureLabel prints the role label once per streamed block. A kind change
// mid-stream (thinking followed by text) closes the open line so the new
// block starts labelled on its own line.
func (c *Console) ensureLabel(kind, label string) {
	if c.streamLabel == kind {
		return
	}
	if c.lineOpen {
		fmt.Fprintln(c.w)
		c.lineOpen = false
	}
	fmt.Fprint(c.w, label)
	c.streamLabel = kind
}

func (c *Console) StreamEnd() {
	if c.lineOpen {
		fmt.Fprintln(c.w)
		c.lineOpen = false
	}
	c.streamLabel = ""
}

func (c *Console) ToolStart(name string, input json.RawMessage) {
	c.StreamEnd()
	fmt.Fprintf(c.w, "%stool%s: %s(%s)\n", colorTool, colorReset, name, compactJSON(input))
}

func (c *Console) ToolDone(name string, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	fmt.Fprintf(c.w, "%stool%s: %s -> %s\n", colorTool, colorReset, name, status)
}

func (c *Console) Error(err error) {
	c.StreamEnd()
	fmt.Fprintf(c.w, "%serror%s: %v\n", colorError, colorReset, err)
}

// compactJSON renders tool input on one line; invalid or empty input is
// shown as-is rather than hidden.
func compactJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var buf []byte
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		if buf, err = json.Marshal(v); err == nil {
			return string(buf)
		}
	}
	return string(raw)
}
