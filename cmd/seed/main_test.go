package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplydash/internal/store"
)

func TestSeedCommand_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seed.json")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--output", path, "--suppliers", "4", "--inventory", "10", "--orders", "50", "--seed", "9"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), path)

	data, err := store.ReadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, data.Suppliers, 4)
	assert.Len(t, data.Inventory, 10)
	assert.Len(t, data.Orders, 50)
}

func TestSeedCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCmd(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}
