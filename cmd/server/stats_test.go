package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloomviewer/internal/client"
	"bloomviewer/internal/fixtures"
)

func TestRunStats(t *testing.T) {
	seed, err := fixtures.Default()
	require.NoError(t, err)

	var out bytes.Buffer
	err = runStats(context.Background(), &out, client.NewMockClient(seed), statsOptions{
		selected: []int{1, 2, 2, 50},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Antelope Valley Poppy Reserve")
	assert.Contains(t, text, "Ho Chi Minh City Center")
	assert.Contains(t, text, "2 overlay(s) selected, 2 location(s)")
}

func TestRunStats_Query(t *testing.T) {
	seed, err := fixtures.Default()
	require.NoError(t, err)

	var out bytes.Buffer
	err = runStats(context.Background(), &out, client.NewMockClient(seed), statsOptions{query: "walker"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Walker Canyon")
	assert.NotContains(t, text, "Antelope")
	assert.Contains(t, text, "0 overlay(s) selected, 0 location(s)")
}

func TestStatsCommand_SeedData(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"stats", "--select", "3"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1 overlay(s) selected, 1 location(s)")
}
