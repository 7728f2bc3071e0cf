// Package conversation holds the in-process conversation state.
//
// Model:
//   - One Log per process run; no cross-run persistence.
//   - Append-only: the dispatch loop appends user input, assistant
//     responses, and tool_result messages in strict turn order.
package conversation
