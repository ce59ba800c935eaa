package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	at := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	require.NoError(t, j.Record(ctx, Entry{
		RequestID: "r1", Session: "cli", Prompt: "reverse hello",
		ToolChoice: "reverse_string", ToolInput: "hello", Tool: "reverse_string",
		Output: "The reversed string is: olleh", CreatedAt: at,
	}))
	require.NoError(t, j.Record(ctx, Entry{
		RequestID: "r2", Session: "tg-42", Prompt: "hi",
		ToolChoice: "no tool", ToolInput: "Hello!", Output: "Hello!",
	}))
	require.NoError(t, j.Record(ctx, Entry{
		RequestID: "r3", Session: "cli", Prompt: "boom", Error: "network down",
	}))

	all, err := j.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r3", all[0].RequestID)
	assert.Equal(t, "network down", all[0].Error)
	assert.Equal(t, "r1", all[2].RequestID)
	assert.True(t, at.Equal(all[2].CreatedAt))
	assert.Equal(t, "reverse_string", all[2].Tool)

	cli, err := j.Recent(ctx, "cli", 10)
	require.NoError(t, err)
	require.Len(t, cli, 2)
	assert.Equal(t, "r3", cli[0].RequestID)
	assert.Equal(t, "r1", cli[1].RequestID)

	limited, err := j.Recent(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "r3", limited[0].RequestID)
}

func TestJournal_Empty(t *testing.T) {
	entries, err := openTemp(t).Recent(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
