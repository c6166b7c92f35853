package root_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moneyflow/cmd/root"
)

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "moneyflow", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "finance tracker")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root.Init()

	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("data-dir"))
}
