// Package tools defines tool contracts and implementations.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - File tools: read_file, list_files (non-recursive), edit_file.
//   - Workspace tools: search_files (regex over text files), run_command
//     (allowlisted shell execution).
//
// Handlers are stateless between invocations; any state they touch lives in
// the filesystem under the sandbox roots.
package tools
