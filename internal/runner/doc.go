// Package runner coordinates message exchange with the Anthropic Messages
// API and dispatches tool calls.
//
// Turn shape:
//
//	user(text) -> assistant(text|tool_use...) -> user(tool_result...) -> ... -> assistant(text)
//
// Invariants:
//   - Blocks are interpreted, and tools dispatched, strictly in the order
//     the model emitted them; tool calls never run concurrently.
//   - Every tool_use is answered by exactly one tool_result (matched by id)
//     before the next API call; failures travel as error tool_results.
//   - A turn ends with the first response that contains no tool_use block.
//   - The streamed transport reconstructs the identical block sequence the
//     non-streamed transport receives, before interpretation begins.
package runner
