package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Bounds is a lat/lng bounding box used as a cheap SQL prefilter before
// exact haversine distances are computed in memory.
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// BoundingBox approximates a box of radiusKm around the point.
// ~111km per degree of latitude; longitude degrees shrink with cos(lat).
func BoundingBox(lat, lng, radiusKm float64) Bounds {
	latRange := radiusKm / 111.0
	lngRange := radiusKm / (111.0 * math.Cos(lat*math.Pi/180))
	return Bounds{
		MinLat: lat - latRange,
		MaxLat: lat + latRange,
		MinLng: lng - lngRange,
		MaxLng: lng + lngRange,
	}
}
