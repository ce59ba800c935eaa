package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemTool(t *testing.T) {
	root := t.TempDir()
	fs := NewFilesystemTool(root)
	ctx := context.Background()

	out, err := fs.Execute(ctx, `{"command": "write", "path": "notes/todo.txt", "content": "buy milk"}`)
	require.NoError(t, err)
	assert.Equal(t, "Successfully wrote 8 bytes to notes/todo.txt", out)

	data, err := os.ReadFile(filepath.Join(root, "notes", "todo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "buy milk", string(data))

	out, err = fs.Execute(ctx, `{"command": "read", "path": "notes/todo.txt"}`)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", out)

	_, err = fs.Execute(ctx, `{"command": "mkdir", "path": "empty"}`)
	require.NoError(t, err)

	out, err = fs.Execute(ctx, `{"command": "list", "path": "."}`)
	require.NoError(t, err)
	assert.Equal(t, "[dir] empty\n[dir] notes", out)

	out, err = fs.Execute(ctx, `{"command": "list", "path": "empty"}`)
	require.NoError(t, err)
	assert.Equal(t, "Directory is empty", out)
}

func TestFilesystemTool_RejectsEscape(t *testing.T) {
	fs := NewFilesystemTool(t.TempDir())

	_, err := fs.Execute(context.Background(), `{"command": "read", "path": "../../etc/passwd"}`)
	assert.ErrorContains(t, err, "unsafe path attempt")

	_, err = fs.Execute(context.Background(), "not json")
	assert.Error(t, err)
}

func TestShellTool(t *testing.T) {
	dir := t.TempDir()
	sh := NewShellTool(dir)

	out, err := sh.Execute(context.Background(), "pwd")
	require.NoError(t, err)
	resolved, _ := filepath.EvalSymlinks(dir)
	assert.Contains(t, []string{dir, resolved}, out)

	out, err = sh.Execute(context.Background(), "exit 3")
	require.NoError(t, err)
	assert.Contains(t, out, "Command failed with error")

	out, err = sh.Execute(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "Error: empty command", out)
}
