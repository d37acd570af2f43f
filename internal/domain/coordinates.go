package domain

import "math"

// Rough degree-to-kilometer conversion near the equator. Distances in this
// service are Euclidean in degree-space and explicitly approximate.
const DegreesToKm = 111.0

// Immutable geographic coordinates (longitude, latitude) in degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Euclidean distance to another coordinate in degree-space.
func (c Coordinates) DistanceTo(o Coordinates) float64 {
	dx := c.Lon - o.Lon
	dy := c.Lat - o.Lat
	return math.Sqrt(dx*dx + dy*dy)
}
