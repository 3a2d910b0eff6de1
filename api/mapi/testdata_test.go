package mapi

import "fmt"

func landDetail(level, balance string, chunks int, players string, nation string) string {
	detail := fmt.Sprintf(
		`<div class="land"><b>Level:</b> %s<br>Balance: $%s<br>Chunks: %d<br>Players (%d): %s<br>`,
		level, balance, chunks, countPlayers(players), players,
	)

	if nation != "" {
		detail += fmt.Sprintf(`<br><div>This land belongs to nation %s:</div>Level: Kingdom<br>Capital: Westmarch</div>`, nation)
	}

	return detail
}

func countPlayers(players string) int {
	if players == "" {
		return 0
	}

	n := 1
	for _, r := range players {
		if r == ',' {
			n++
		}
	}

	return n
}

func square(x, z, size float64) []ShapePoint {
	return []ShapePoint{
		{X: x, Z: z},
		{X: x + size, Z: z},
		{X: x + size, Z: z + size},
		{X: x, Z: z + size},
	}
}

func landMarker(label, balance string, chunks int, players, nation string) Marker {
	return Marker{
		Type:     "shape",
		Label:    label,
		Detail:   landDetail("Town", balance, chunks, players, nation),
		Position: Position{X: 100, Y: 64, Z: -200},
		Shape:    square(0, 0, 16),
	}
}
