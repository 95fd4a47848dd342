package geo

import (
	"github.com/golang/geo/s2"
)

// ProjectPointToSegment returns the closest point on the great-circle
// segment (pointA, pointB) to snap.
func ProjectPointToSegment(pointA Coordinate, pointB Coordinate,
	snap Coordinate) Coordinate {
	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.Lat, pointA.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.Lat, pointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointToSegmentDistance. perpendicular (clamped to the segment endpoints)
// distance from snap to segment (pointA, pointB), in meter.
func PointToSegmentDistance(pointA Coordinate, pointB Coordinate,
	snap Coordinate) float64 {
	projectionPoint := ProjectPointToSegment(pointA, pointB, snap)

	dist := CalculateHaversineDistance(snap.GetLat(), snap.GetLon(), projectionPoint.GetLat(), projectionPoint.GetLon())

	return dist * 1000
}

// PointToPolylineDistance. minimum distance (meter) from snap to any segment
// of the polyline. Polylines with fewer than two vertices have no segments;
// callers must treat that as malformed.
func PointToPolylineDistance(polyline []Coordinate, snap Coordinate) float64 {
	best := -1.0
	for i := 0; i+1 < len(polyline); i++ {
		d := PointToSegmentDistance(polyline[i], polyline[i+1], snap)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
