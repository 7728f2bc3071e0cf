package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

type RunCommandInput struct {
	Command string `json:"command" jsonschema_description:"Shell command line to execute. Must match one of the configured allowlist patterns."`
}

var RunCommandInputSchema = GenerateSchema[RunCommandInput]()

// commandTimeout bounds a single tool invocation; the dispatch loop awaits
// each tool before moving on, so a hung command would stall the whole turn.
const commandTimeout = 2 * time.Minute

const maxCommandOutputRunes = 12_000

// RunCommandDefinition builds the run_command tool over the configured
// allowlist. With an empty allowlist the tool is still registered so the
// model gets a clear refusal rather than a tool-not-found.
func RunCommandDefinition(allowed []string) ToolDefinition {
	return ToolDefinition{
		Name:        "run_command",
		Description: describeRunCommand(allowed),
		InputSchema: RunCommandInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return runCommand(input, allowed)
		},
	}
}

func describeRunCommand(allowed []string) string {
	if len(allowed) == 0 {
		return "Execute a shell command in the workspace. No commands are currently allowed; ask the operator to configure allowed_commands."
	}
	var b strings.Builder
	b.WriteString("Execute a shell command in the workspace and return its combined output. Allowed command patterns:\n")
	for _, p := range allowed {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}

func runCommand(input json.RawMessage, allowed []string) (string, error) {
	var in RunCommandInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	command := strings.TrimSpace(in.Command)
	if command == "" {
		return "", fmt.Errorf("command must not be empty")
	}

	ok, err := commandAllowed(command, allowed)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("command %q is not in the list of allowed commands", command)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	parts := strings.Fields(command)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	output, err := cmd.CombinedOutput()
	out := string(output)
	if r := []rune(out); len(r) > maxCommandOutputRunes {
		out = string(r[:maxCommandOutputRunes]) + "\n-- output truncated --\n"
	}
	if err != nil {
		return "", fmt.Errorf("command failed: %w\noutput:\n%s", err, out)
	}
	return out, nil
}

// commandAllowed matches the command line against the allowlist regexes.
// Malformed patterns fall back to exact string comparison.
func commandAllowed(command string, allowed []string) (bool, error) {
	for _, pattern := range allowed {
		re, err := regexp.Compile(pattern)
		if err != nil {
			if command == pattern {
				return true, nil
			}
			continue
		}
		if re.MatchString(command) {
			return true, nil
		}
	}
	return false, nil
}
