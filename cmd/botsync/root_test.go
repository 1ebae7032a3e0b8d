package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd("test")

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"discover", "sync", "provision", "serve"} {
		assert.Contains(t, names, want)
	}

	flag := root.PersistentFlags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "json", flag.DefValue)
	assert.Equal(t, "o", flag.Shorthand)
}

func TestRootRejectsUnknownOutput(t *testing.T) {
	root := newRootCmd("test")
	var stderr bytes.Buffer
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&stderr)
	root.SetArgs([]string{"discover", "-o", "xml"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRootRejectsArgs(t *testing.T) {
	root := newRootCmd("test")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"provision", "extra"})

	require.Error(t, root.ExecuteContext(context.Background()))
}
