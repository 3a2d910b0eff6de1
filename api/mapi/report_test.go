package mapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	var sb strings.Builder

	n, err := WriteReport(&sb, []Marker{
		{Label: "Spawn", Detail: "Welcome<br>to <b>Abexilas</b>", Position: Position{X: 1.5, Y: 64, Z: -3}},
		{Label: "Port", Detail: "Docks", Position: Position{}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expected := "=== Spawn ===\n" +
		"Position: X=1.5, Y=64, Z=-3\n" +
		"Details:\nWelcome\nto Abexilas\n" +
		"\n" + reportSeparator + "\n" +
		"\n" +
		"=== Port ===\n" +
		"Position: X=0, Y=0, Z=0\n" +
		"Details:\nDocks\n" +
		"\n" + reportSeparator + "\n"
	assert.Equal(t, expected, sb.String())
}

func TestWriteReportEmpty(t *testing.T) {
	var sb strings.Builder

	n, err := WriteReport(&sb, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, sb.String())
}

func TestNationTotals(t *testing.T) {
	totals := NationTotals(sampleMarkers())
	require.Len(t, totals, 1)

	// Duplicate markers are not collapsed here.
	assert.Equal(t, NationTotal{Name: "Bardonia", Chunks: 19, Balance: 1750.25}, totals[0])
	assert.Equal(t, "Bardonia: 19 chunks", totals[0].ChunksLine())
	assert.Equal(t, "Bardonia: $1,750.25", totals[0].BalanceLine())
}
