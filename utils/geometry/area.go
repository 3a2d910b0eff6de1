package geometry

import "math"

// A point on the horizontal plane of a Minecraft world.
type Point2D struct {
	X float64
	Z float64
}

// Calculates the area of a 2D polygon (with or without irregular vertices) using the Shoelace formula.
// Anything with less than 3 points has no area.
func PolygonArea(points []Point2D) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	area := 0.0
	j := n - 1
	for i := range n {
		area += (points[j].X + points[i].X) * (points[j].Z - points[i].Z)
		j = i
	}

	return math.Abs(area / 2)
}

// Blocks covered by the given amount of chunks. A chunk is 16x16 blocks.
func ChunksToBlocks(chunks int) int {
	return chunks * 256
}
