package mapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailText(t *testing.T) {
	text := DetailText(`<div><b>Level:</b> Town<br/>Balance: $1,234.56<br>  <br>Owner: Tom &amp; Jerry</div>`)
	assert.Equal(t, "Level: Town\nBalance: $1,234.56\nOwner: Tom & Jerry", text)

	assert.Equal(t, "", DetailText(""))
	assert.Equal(t, "plain", DetailText("  plain  "))
}

func TestParseMarker(t *testing.T) {
	m := landMarker("Westmarch", "12,345.67", 12, "Alice, Bob", "Bardonia")

	terr, ok := ParseMarker(m)
	require.True(t, ok)

	assert.Equal(t, "Westmarch", terr.Name)
	require.NotNil(t, terr.Level)
	assert.Equal(t, "Town", *terr.Level)
	assert.Equal(t, 12345.67, terr.Balance)
	assert.Equal(t, 12, terr.Chunks)
	assert.Equal(t, 2, terr.PlayerCount)
	assert.Equal(t, []string{"Alice", "Bob"}, terr.Players)
	assert.Equal(t, 12*256, terr.TerritoryArea)
	assert.Equal(t, 256.0, terr.ShapeArea)
	assert.Equal(t, 4, terr.CoordinateCount)
	assert.Equal(t, m.Detail, terr.DetailHTML)

	require.NotNil(t, terr.NationName)
	assert.Equal(t, "Bardonia", *terr.NationName)
	require.NotNil(t, terr.NationLevel)
	assert.Equal(t, "Kingdom", *terr.NationLevel)
	require.NotNil(t, terr.NationCapital)
	assert.Equal(t, "Westmarch", *terr.NationCapital)
}

func TestParseMarkerWithoutNation(t *testing.T) {
	terr, ok := ParseMarker(landMarker("Lonely Hut", "0.50", 1, "", ""))
	require.True(t, ok)

	assert.Nil(t, terr.NationName)
	assert.Nil(t, terr.NationLevel)
	assert.Nil(t, terr.NationCapital)
	assert.Equal(t, 0, terr.PlayerCount)
	assert.Empty(t, terr.Players)
	assert.NotNil(t, terr.Players)
	assert.Equal(t, 0.5, terr.Balance)
}

func TestParseMarkerMissingFields(t *testing.T) {
	terr, ok := ParseMarker(Marker{Label: "Ruins", Detail: "<p>Nothing to see</p>"})
	require.True(t, ok)

	assert.Nil(t, terr.Level)
	assert.Zero(t, terr.Balance)
	assert.Zero(t, terr.Chunks)
	assert.Zero(t, terr.ShapeArea)
}

func TestParseMarkerNoLabel(t *testing.T) {
	_, ok := ParseMarker(Marker{Label: "   ", Detail: landDetail("Town", "1.00", 1, "", "")})
	assert.False(t, ok)
}

func TestShapePointDefaultY(t *testing.T) {
	y := 70.0

	assert.Equal(t, Coordinate{X: 1, Y: DEFAULT_SHAPE_Y, Z: 2}, ShapePoint{X: 1, Z: 2}.Coordinate())
	assert.Equal(t, Coordinate{X: 1, Y: 70, Z: 2}, ShapePoint{X: 1, Y: &y, Z: 2}.Coordinate())
}

func TestParseMarkerEmptyPlayersBeforeOtherFields(t *testing.T) {
	terr, ok := ParseMarker(Marker{
		Label:  "Empty Keep",
		Detail: "Level: Town<br>Players (0):<br>Chunks: 4<br>Balance: $1.00",
	})
	require.True(t, ok)

	assert.Equal(t, 0, terr.PlayerCount)
	assert.Empty(t, terr.Players)
	assert.Equal(t, 4, terr.Chunks)
	assert.Equal(t, 1.0, terr.Balance)
}
