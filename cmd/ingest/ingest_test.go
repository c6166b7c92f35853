package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moneyflow/cmd/ingest"
)

func TestImportCommandMetadata(t *testing.T) {
	assert.Equal(t, "import <file>", ingest.Cmd.Use)
	assert.Contains(t, ingest.Cmd.Short, "Import a bank statement")
	assert.NotNil(t, ingest.Cmd.RunE)
}

func TestImportCommandFlags(t *testing.T) {
	profileFlag := ingest.Cmd.Flags().Lookup("profile")
	assert.NotNil(t, profileFlag)
	assert.Equal(t, "p", profileFlag.Shorthand)

	conflictFlag := ingest.Cmd.Flags().Lookup("on-conflict")
	assert.NotNil(t, conflictFlag)
	assert.Equal(t, "skip", conflictFlag.DefValue)

	assert.NotNil(t, ingest.Cmd.Flags().Lookup("dry-run"))
	assert.NotNil(t, ingest.Cmd.Flags().Lookup("map-date"))
	assert.NotNil(t, ingest.Cmd.Flags().Lookup("save-profile"))
}
