package api

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/amakhet/soil-api/internal/model"
)

// badRequest is an input error reported to the client with status 400.
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

func badRequestf(format string, args ...any) error {
	return &badRequest{msg: fmt.Sprintf(format, args...)}
}

// Location validates the body and resolves it to a Location. The window is
// checked before anything else.
func (req AnalysisRequest) Location(defaultBuffer int) (model.Location, error) {
	start, err := time.Parse(model.DateLayout, req.StartDate)
	if err != nil {
		return model.Location{}, badRequestf("Invalid date format: %v", err)
	}
	end, err := time.Parse(model.DateLayout, req.EndDate)
	if err != nil {
		return model.Location{}, badRequestf("Invalid date format: %v", err)
	}
	w, err := model.NewWindow(start, end)
	if err != nil {
		return model.Location{}, badRequestf("End date must be after start date")
	}

	if req.Latitude == nil || req.Longitude == nil {
		return model.Location{}, badRequestf("Invalid request body: latitude and longitude are required")
	}
	buffer := defaultBuffer
	if req.BufferMeters != nil {
		buffer = *req.BufferMeters
	}
	return newLocation(*req.Latitude, *req.Longitude, buffer, w)
}

// pathLocation parses the coordinates of GET /api/soil-analysis/{lat}/{lon}.
func pathLocation(rawLat, rawLon string, buffer int, w model.Window) (model.Location, error) {
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return model.Location{}, badRequestf("Invalid latitude: %q", rawLat)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return model.Location{}, badRequestf("Invalid longitude: %q", rawLon)
	}
	return newLocation(lat, lon, buffer, w)
}

func newLocation(lat, lon float64, buffer int, w model.Window) (model.Location, error) {
	switch {
	case math.IsNaN(lat) || math.IsNaN(lon):
		return model.Location{}, badRequestf("Coordinates must be numbers")
	case lat < -90 || lat > 90:
		return model.Location{}, badRequestf("Latitude must be between -90 and 90, got %g", lat)
	case lon < -180 || lon > 180:
		return model.Location{}, badRequestf("Longitude must be between -180 and 180, got %g", lon)
	case buffer <= 0:
		return model.Location{}, badRequestf("Buffer must be a positive number of meters, got %d", buffer)
	}
	return model.Location{
		Latitude:     lat,
		Longitude:    lon,
		BufferMeters: buffer,
		Window:       w,
	}, nil
}
