package provider

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// earthRadiusMeters is the WGS84 equatorial radius.
const earthRadiusMeters = 6378137.0

// AreaOfInterest returns the bounding box of a circle of bufferMeters around
// (lat, lon) as an EPSG:4326 polygon.
func AreaOfInterest(lat, lon float64, bufferMeters int) (*geom.Polygon, error) {
	if bufferMeters <= 0 {
		return nil, eris.Errorf("aoi: buffer must be positive, got %d", bufferMeters)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, eris.Errorf("aoi: coordinate out of range (%f, %f)", lat, lon)
	}

	dLat := float64(bufferMeters) / earthRadiusMeters * 180 / math.Pi
	cosLat := math.Cos(lat * math.Pi / 180)
	dLon := 180.0
	if cosLat > 1e-9 {
		dLon = math.Min(dLat/cosLat, 180)
	}

	b := geom.NewBounds(geom.XY).Set(
		math.Max(lon-dLon, -180), math.Max(lat-dLat, -90),
		math.Min(lon+dLon, 180), math.Min(lat+dLat, 90),
	)
	return b.Polygon().SetSRID(4326), nil
}

// encodeRegion converts the area of interest to GeoJSON.
func encodeRegion(poly *geom.Polygon) (*geojson.Geometry, error) {
	g, err := geojson.Encode(poly)
	if err != nil {
		return nil, eris.Wrap(err, "aoi: encode geojson")
	}
	return g, nil
}
