package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityRecomputeRequiresCustomerID(t *testing.T) {
	cmd := EligibilityCmd()
	cmd.SetArgs([]string{"recompute"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestResendPendingDefaultsToDryRun(t *testing.T) {
	cmd := resendPendingCmd()

	confirm, err := cmd.Flags().GetBool("confirm")
	require.NoError(t, err)
	assert.False(t, confirm)

	docType, err := cmd.Flags().GetString("document-type")
	require.NoError(t, err)
	assert.Equal(t, "contract", docType)
}

func TestMigrateWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cmd := MigrateCmd()
	cmd.SetArgs([]string{"up"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
