package Models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ViolationRecord is one detected speeding event as the backend serves it on
// /violations and /stream. A record is never edited after it is received.
type ViolationRecord struct {
	ID         *int64  `json:"id,omitempty"`
	Plate      string  `json:"plate" validate:"required"`
	OwnerName  *string `json:"owner_name"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	Speed      Number  `json:"speed"`
	SpeedLimit Number  `json:"speed_limit"`
	Time       Text    `json:"time"`
	Image      string  `json:"image"`
}

// ViolationRow is the rendered projection of a record: six scalar columns,
// the capture time and the resolved image reference.
type ViolationRow struct {
	Plate      string `json:"plate"`
	OwnerName  string `json:"owner_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Speed      string `json:"speed"`
	SpeedLimit string `json:"speed_limit"`
	Time       string `json:"time"`
	ImageURL   string `json:"image_url"`
}

// Row projects the record. Absent, null and blank registry fields all render
// as unknown.
func (v ViolationRecord) Row(unknown string, imageURL func(string) string) ViolationRow {
	row := ViolationRow{
		Plate:      v.Plate,
		OwnerName:  orUnknown(v.OwnerName, unknown),
		Address:    orUnknown(v.Address, unknown),
		Phone:      orUnknown(v.Phone, unknown),
		Speed:      v.Speed.String(),
		SpeedLimit: v.SpeedLimit.String(),
		Time:       string(v.Time),
	}
	if imageURL != nil {
		row.ImageURL = imageURL(v.Image)
	} else {
		row.ImageURL = v.Image
	}
	return row
}

func orUnknown(value *string, unknown string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return unknown
	}
	return *value
}

// violationPayload tracks presence of the required fields; JSON null
// counts as absent.
type violationPayload struct {
	ID         *int64  `json:"id,omitempty"`
	Plate      string  `json:"plate" validate:"required"`
	OwnerName  *string `json:"owner_name"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	Speed      *Number `json:"speed" validate:"required"`
	SpeedLimit *Number `json:"speed_limit" validate:"required"`
	Time       *Text   `json:"time" validate:"required"`
	Image      *string `json:"image" validate:"required"`
}

func (p violationPayload) record() ViolationRecord {
	return ViolationRecord{
		ID:         p.ID,
		Plate:      p.Plate,
		OwnerName:  p.OwnerName,
		Address:    p.Address,
		Phone:      p.Phone,
		Speed:      *p.Speed,
		SpeedLimit: *p.SpeedLimit,
		Time:       *p.Time,
		Image:      *p.Image,
	}
}

// DecodeViolations decodes a bulk history payload. Any malformed or invalid
// record fails the whole batch.
func DecodeViolations(data []byte) ([]ViolationRecord, error) {
	var payloads []violationPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("failed to unmarshal violations: %w", err)
	}
	records := make([]ViolationRecord, 0, len(payloads))
	for i := range payloads {
		if err := Validate.Struct(payloads[i]); err != nil {
			return nil, fmt.Errorf("violation %d: %s", i, ValidationMessage(err))
		}
		records = append(records, payloads[i].record())
	}
	return records, nil
}

// DecodeViolation decodes a single stream event.
func DecodeViolation(data []byte) (ViolationRecord, error) {
	var payload violationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return ViolationRecord{}, fmt.Errorf("failed to unmarshal violation: %w", err)
	}
	if err := Validate.Struct(payload); err != nil {
		return ViolationRecord{}, fmt.Errorf("invalid violation: %s", ValidationMessage(err))
	}
	return payload.record(), nil
}
