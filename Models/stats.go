package Models

import (
	"encoding/json"
	"fmt"
)

// AggregateStats is one /get_stats snapshot. It always replaces the previous
// snapshot as a whole.
type AggregateStats struct {
	Total    Number            `json:"total"`
	Vehicles Number            `json:"vehicles"`
	AvgSpeed Number            `json:"avg_speed"`
	Recent   []RecentViolation `json:"recent,omitempty"`
}

type RecentViolation struct {
	Plate string `json:"plate"`
	Speed Number `json:"speed"`
	Time  Text   `json:"time"`
}

type statsPayload struct {
	Total    *Number           `json:"total" validate:"required"`
	Vehicles *Number           `json:"vehicles" validate:"required"`
	AvgSpeed *Number           `json:"avg_speed" validate:"required"`
	Recent   []RecentViolation `json:"recent"`
}

// DecodeStats decodes a stats payload; the three counters must be present.
func DecodeStats(data []byte) (AggregateStats, error) {
	var payload statsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return AggregateStats{}, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	if err := Validate.Struct(payload); err != nil {
		return AggregateStats{}, fmt.Errorf("invalid stats: %s", ValidationMessage(err))
	}
	return AggregateStats{
		Total:    *payload.Total,
		Vehicles: *payload.Vehicles,
		AvgSpeed: *payload.AvgSpeed,
		Recent:   payload.Recent,
	}, nil
}
