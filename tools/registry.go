package tools

import "github.com/petasbytes/agentcli/internal/config"

// Registry returns all tool definitions wired for the agent. The slice
// order is the order descriptors are presented to the model.
func Registry(cfg *config.Config) []ToolDefinition {
	fa := &cfg.FilesystemAccess
	return []ToolDefinition{
		ReadFileDefinition(fa),
		ListFilesDefinition(fa),
		EditFileDefinition(fa),
		SearchFilesDefinition(fa),
		RunCommandDefinition(cfg.AllowedCommands),
	}
}

// Find returns the definition registered under name, matched case-sensitively.
func Find(defs []ToolDefinition, name string) (*ToolDefinition, bool) {
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i], true
		}
	}
	return nil, false
}
