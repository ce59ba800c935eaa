package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// FilesystemTool gives the model access to files below Root and nowhere else.
type FilesystemTool struct {
	Root string
}

func NewFilesystemTool(root string) *FilesystemTool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = filepath.Clean(root)
	}
	return &FilesystemTool{Root: absRoot}
}

func (f *FilesystemTool) Name() string {
	return "filesystem"
}

func (f *FilesystemTool) Description() string {
	return `Manage files in the local workspace. Input is a JSON string: {"command": "read|write|list|mkdir", "path": "<relative path>", "content": "<text, write only>"}.`
}

func (f *FilesystemTool) resolve(rel string) (string, error) {
	target := filepath.Join(f.Root, rel)
	r, err := filepath.Rel(f.Root, target)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", errors.Newf("unsafe path attempt: %s", rel)
	}
	return target, nil
}

func (f *FilesystemTool) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Command string `json:"command"`
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", errors.Wrap(err, "invalid filesystem input")
	}

	target, err := f.resolve(args.Path)
	if err != nil {
		return "", err
	}

	switch args.Command {
	case "read":
		data, err := os.ReadFile(target)
		if err != nil {
			return "", errors.Wrap(err, "failed to read file")
		}
		return string(data), nil

	case "write":
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return "", errors.Wrap(err, "failed to create parent directory")
		}
		if err := os.WriteFile(target, []byte(args.Content), 0644); err != nil {
			return "", errors.Wrap(err, "failed to write file")
		}
		return fmt.Sprintf("Successfully wrote %d bytes to %s", len(args.Content), args.Path), nil

	case "list":
		entries, err := os.ReadDir(target)
		if err != nil {
			return "", errors.Wrap(err, "failed to list directory")
		}
		if len(entries) == 0 {
			return "Directory is empty", nil
		}
		var sb strings.Builder
		for _, entry := range entries {
			kind := "file"
			if entry.IsDir() {
				kind = "dir"
			}
			fmt.Fprintf(&sb, "[%s] %s\n", kind, entry.Name())
		}
		return strings.TrimRight(sb.String(), "\n"), nil

	case "mkdir":
		if err := os.MkdirAll(target, 0755); err != nil {
			return "", errors.Wrap(err, "failed to create directory")
		}
		return fmt.Sprintf("Successfully created directory %s", args.Path), nil

	default:
		return "Invalid command. Use 'read', 'write', 'list' or 'mkdir'", nil
	}
}
