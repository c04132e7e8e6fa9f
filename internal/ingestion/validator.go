package ingestion

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports one bad field in an incoming ping.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

// ValidateTrackingPing validates an incoming ping message before it is
// queued for batching.
func ValidateTrackingPing(msg *TrackingPingMessage) error {
	if msg.LoadID == "" {
		return &ValidationError{Field: "load_id", Message: "load_id is required"}
	}
	if _, err := uuid.Parse(msg.LoadID); err != nil {
		return &ValidationError{Field: "load_id", Message: "load_id must be a valid UUID"}
	}

	if msg.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Message: "timestamp is required"}
	}

	if msg.Latitude < -90 || msg.Latitude > 90 {
		return &ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"}
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return &ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"}
	}

	if msg.SpeedMPH != nil && (*msg.SpeedMPH < 0 || *msg.SpeedMPH > 150) {
		return &ValidationError{Field: "speed_mph", Message: "speed_mph must be between 0 and 150"}
	}
	if msg.HeadingDeg != nil && (*msg.HeadingDeg < 0 || *msg.HeadingDeg > 360) {
		return &ValidationError{Field: "heading_deg", Message: "heading_deg must be between 0 and 360"}
	}
	if msg.OdometerMiles != nil && *msg.OdometerMiles < 0 {
		return &ValidationError{Field: "odometer_miles", Message: "odometer_miles must be non-negative"}
	}
	if msg.FuelPercent != nil && (*msg.FuelPercent < 0 || *msg.FuelPercent > 100) {
		return &ValidationError{Field: "fuel_percent", Message: "fuel_percent must be between 0 and 100"}
	}
	if msg.TemperatureF != nil && (*msg.TemperatureF < -60 || *msg.TemperatureF > 200) {
		return &ValidationError{Field: "temperature_f", Message: "temperature_f must be between -60 and 200"}
	}

	return nil
}
