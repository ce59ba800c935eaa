package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir stands in for testing.T.Chdir (Go 1.24+): it changes the working
// directory and restores the previous one when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
