package ingestion

import (
	"encoding/json"
	"time"
)

// TrackingPingMessage is the wire shape telematics providers publish per
// vehicle position sample. LoadID is the stringified load uuid.
type TrackingPingMessage struct {
	LoadID        string    `json:"load_id"`
	Timestamp     time.Time `json:"timestamp"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	SpeedMPH      *float64  `json:"speed_mph"`
	HeadingDeg    *float64  `json:"heading_deg"`
	OdometerMiles *float64  `json:"odometer_miles"`
	FuelPercent   *float64  `json:"fuel_percent"`
	TemperatureF  *float64  `json:"temperature_f"`
	StatusText    *string   `json:"status_text"`

	// Breadcrumb requests a visible event on the load's timeline in
	// addition to the tracking row.
	Breadcrumb bool `json:"breadcrumb"`
}

// ParseTrackingPing decodes a ping payload, defaulting a missing timestamp
// to receipt time.
func ParseTrackingPing(payload []byte) (*TrackingPingMessage, error) {
	var msg TrackingPingMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return &msg, nil
}
