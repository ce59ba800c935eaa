package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ShellTool runs bash commands. Calls should pass through the policy engine.
type ShellTool struct {
	Dir     string
	Timeout time.Duration
}

func NewShellTool(dir string) *ShellTool {
	return &ShellTool{Dir: dir, Timeout: 2 * time.Minute}
}

func (s *ShellTool) Name() string {
	return "shell"
}

func (s *ShellTool) Description() string {
	return "Execute a bash command in the workspace and return its combined output. Input is the command line."
}

func (s *ShellTool) Execute(ctx context.Context, input string) (string, error) {
	command := field(input, "command")
	if command == "" {
		return "Error: empty command", nil
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	cmd.Dir = s.Dir
	output, err := cmd.CombinedOutput()

	result := strings.TrimSpace(string(output))
	if result == "" {
		result = "(no output)"
	}
	if err != nil {
		return fmt.Sprintf("Command failed with error: %v\nOutput: %s", err, result), nil
	}
	return result, nil
}
