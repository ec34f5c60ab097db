package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	cmd := Plan()

	require.NotNil(t, cmd)
	assert.Equal(t, "plan", cmd.Use)
	assert.Equal(t, "Show what apply would do", cmd.Short)
}

func TestPlan_ConfigFlag(t *testing.T) {
	cmd := Plan()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag, "config flag should exist")
	assert.Equal(t, "c", flag.Shorthand)
}

func TestPlan_RunE(t *testing.T) {
	cmd := Plan()
	assert.NotNil(t, cmd.RunE, "Plan command should have RunE function")
}
