package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTUIInsecureConfigReturnsError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".rxmart"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rxmart", "config"), []byte("base_url: http://localhost:8080\n"), 0644))

	err := newRootCmd().RunE(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions too open")
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"search", "pick", "get", "status", "config"} {
		assert.True(t, names[want], want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("base-url"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestMainHelpFlagDoesNotExit(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"rxmart", "--help"}
	defer func() { os.Args = oldArgs }()

	// main() should return normally for help (no os.Exit).
	main()
}

func TestRootHelpListsCommands(t *testing.T) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "search")
	assert.Contains(t, out.String(), "pick")
}
