package mapi

import (
	"regexp"
	"strconv"
	"strings"

	"swnations/utils/geometry"

	"golang.org/x/net/html"
)

var (
	levelRegex   = regexp.MustCompile(`Level:\s*(\w+)`)
	balanceRegex = regexp.MustCompile(`Balance:\s*\$([0-9,]+\.\d{2})`)
	chunksRegex  = regexp.MustCompile(`Chunks:\s*(\d+)`)
	playersRegex = regexp.MustCompile(`Players \((\d+)\):[ \t]*([^\n]*)`)
	nationRegex  = regexp.MustCompile(`This land belongs to nation ([^:]+):`)
	capitalRegex = regexp.MustCompile(`Capital:\s*([^<\n]+)`)
)

// Elements that start a new line of text when the detail popup is rendered.
var lineBreakTags = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// A single land claim parsed from a marker.
type Territory struct {
	Name             string       `json:"name"`
	Position         Position     `json:"position"`
	Level            *string      `json:"level"`
	Balance          float64      `json:"balance"`
	Chunks           int          `json:"chunks"`
	PlayerCount      int          `json:"player_count"`
	Players          []string     `json:"players"`
	NationName       *string      `json:"nation_name"`
	NationLevel      *string      `json:"nation_level"`
	NationCapital    *string      `json:"nation_capital"`
	TerritoryArea    int          `json:"territory_area"` // Blocks covered by the claimed chunks.
	ShapeArea        float64      `json:"shape_area"`     // Blocks inside the marker outline.
	ShapeCoordinates []ShapePoint `json:"shape_coordinates"`
	CoordinateCount  int          `json:"coordinate_count"`
	DetailHTML       string       `json:"detail_html"`
}

// Strips the markup from a marker's detail HTML, unescaping entities and
// putting every visual line (br, div, p etc.) on its own line. Blank lines are dropped.
func DetailText(detail string) string {
	var sb strings.Builder

	z := html.NewTokenizer(strings.NewReader(detail))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed markup, either way keep what we have.
			return cleanLines(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if lineBreakTags[string(name)] {
				sb.WriteByte('\n')
			}
		}
	}
}

func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

func firstGroup(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	return m[1], true
}

func optional(re *regexp.Regexp, text string) *string {
	v, ok := firstGroup(re, text)
	if !ok {
		return nil
	}

	v = strings.TrimSpace(v)
	return &v
}

// Splits a comma separated player list, ignoring blanks.
func parsePlayers(list string) []string {
	players := []string{}
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			players = append(players, p)
		}
	}

	return players
}

// Parses the territory described by a Lands marker. The detail text holds the land's own stats first,
// optionally followed by a "This land belongs to nation X:" section with the nation's level and capital.
//
// Returns false if the marker has no label, since territories are identified by it.
func ParseMarker(m Marker) (Territory, bool) {
	name := strings.TrimSpace(m.Label)
	if name == "" {
		return Territory{}, false
	}

	text := DetailText(m.Detail)

	landText, nationText := text, ""
	var nationName *string
	if loc := nationRegex.FindStringSubmatchIndex(text); loc != nil {
		n := strings.TrimSpace(text[loc[2]:loc[3]])
		nationName = &n
		landText, nationText = text[:loc[0]], text[loc[1]:]
	}

	t := Territory{
		Name:             name,
		Position:         m.Position,
		Level:            optional(levelRegex, landText),
		Players:          []string{},
		NationName:       nationName,
		ShapeCoordinates: m.Shape,
		CoordinateCount:  len(m.Shape),
		DetailHTML:       m.Detail,
	}

	if nationName != nil {
		t.NationLevel = optional(levelRegex, nationText)
		t.NationCapital = optional(capitalRegex, nationText)
	}

	if bal, ok := firstGroup(balanceRegex, landText); ok {
		t.Balance, _ = strconv.ParseFloat(strings.ReplaceAll(bal, ",", ""), 64)
	}

	if chunks, ok := firstGroup(chunksRegex, landText); ok {
		t.Chunks, _ = strconv.Atoi(chunks)
	}

	if pm := playersRegex.FindStringSubmatch(landText); pm != nil {
		t.PlayerCount, _ = strconv.Atoi(pm[1])
		t.Players = parsePlayers(pm[2])
	}

	t.TerritoryArea = geometry.ChunksToBlocks(t.Chunks)
	t.ShapeArea = geometry.PolygonArea(shapePoints(m.Shape))

	return t, true
}

func shapePoints(shape []ShapePoint) []geometry.Point2D {
	points := make([]geometry.Point2D, len(shape))
	for i, p := range shape {
		points[i] = geometry.Point2D{X: p.X, Z: p.Z}
	}

	return points
}
