package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestViolationRecord_RowUnknownPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		given ViolationRecord
	}{
		{name: "absent", given: ViolationRecord{Plate: "51A-12345"}},
		{name: "empty", given: ViolationRecord{Plate: "51A-12345", OwnerName: strPtr(""), Address: strPtr(""), Phone: strPtr("")}},
		{name: "blank", given: ViolationRecord{Plate: "51A-12345", OwnerName: strPtr("  "), Address: strPtr("\t"), Phone: strPtr(" ")}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			row := test.given.Row("Không rõ", nil)
			assert.Equal(t, "Không rõ", row.OwnerName)
			assert.Equal(t, "Không rõ", row.Address)
			assert.Equal(t, "Không rõ", row.Phone)
		})
	}
}

func TestViolationRecord_Row(t *testing.T) {
	record := ViolationRecord{
		Plate:      "51A-12345",
		OwnerName:  strPtr("Nguyen Van A"),
		Address:    strPtr("Q1"),
		Phone:      strPtr("0901"),
		Speed:      72.5,
		SpeedLimit: 60,
		Time:       "2025-01-02 10:00:00",
		Image:      "51A-12345_1.jpg",
	}

	row := record.Row("?", func(image string) string { return "/static/uploads/" + image })

	assert.Equal(t, ViolationRow{
		Plate:      "51A-12345",
		OwnerName:  "Nguyen Van A",
		Address:    "Q1",
		Phone:      "0901",
		Speed:      "72.5",
		SpeedLimit: "60",
		Time:       "2025-01-02 10:00:00",
		ImageURL:   "/static/uploads/51A-12345_1.jpg",
	}, row)
}

func TestDecodeViolations(t *testing.T) {
	data := []byte(`[
		{"id": 3, "plate": "A", "owner_name": null, "speed": 80, "speed_limit": 60, "time": "t3", "image": "a.jpg"},
		{"id": 2, "plate": "B", "owner_name": "Tran", "speed": "75.25", "speed_limit": "60", "time": "t2", "image": "b.jpg"}
	]`)

	records, err := DecodeViolations(data)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Plate)
	assert.Nil(t, records[0].OwnerName)
	assert.Equal(t, Number(75.25), records[1].Speed)
	assert.Equal(t, "Tran", *records[1].OwnerName)
}

const fullRecord = `{"plate": "51A-1", "speed": 80, "speed_limit": 60, "time": "t1", "image": "a.jpg"}`

func TestDecodeViolations_Failures(t *testing.T) {
	tests := []struct {
		name  string
		given string
	}{
		{name: "not json", given: `<html>oops</html>`},
		{name: "not an array", given: `{"plate": "A"}`},
		{name: "missing plate", given: `[{"plate": "A"}, {"speed": 90}]`},
		{name: "bad speed", given: `[{"plate": "A", "speed": "fast"}]`},
		{name: "plate only", given: `[` + fullRecord + `, {"plate": "51A-2"}]`},
		{name: "null speed", given: `[{"plate": "A", "speed": null, "speed_limit": 60, "time": "t", "image": "a.jpg"}]`},
		{name: "missing speed limit", given: `[{"plate": "A", "speed": 80, "time": "t", "image": "a.jpg"}]`},
		{name: "missing time", given: `[{"plate": "A", "speed": 80, "speed_limit": 60, "image": "a.jpg"}]`},
		{name: "null image", given: `[{"plate": "A", "speed": 80, "speed_limit": 60, "time": "t", "image": null}]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			records, err := DecodeViolations([]byte(test.given))
			assert.Error(t, err)
			assert.Nil(t, records)
		})
	}
}

func TestDecodeViolation(t *testing.T) {
	record, err := DecodeViolation([]byte(`{"plate": "51A-67890", "speed": 91, "speed_limit": 50, "time": "Wed, 01 Jan 2025 10:00:00 GMT", "image": "x.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, "51A-67890", record.Plate)
	assert.Equal(t, Text("Wed, 01 Jan 2025 10:00:00 GMT"), record.Time)

	_, err = DecodeViolation([]byte(`{"plate": ""}`))
	assert.Error(t, err)

	_, err = DecodeViolation([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeViolation_RequiredFields(t *testing.T) {
	for _, given := range []string{
		`{"plate": "51A-2"}`,
		`{"plate": "51A-2", "speed": null, "speed_limit": 60, "time": "t", "image": "a.jpg"}`,
		`{"plate": "51A-2", "speed": 80, "speed_limit": null, "time": "t", "image": "a.jpg"}`,
		`{"plate": "51A-2", "speed": 80, "speed_limit": 60, "time": null, "image": "a.jpg"}`,
		`{"plate": "51A-2", "speed": 80, "speed_limit": 60, "time": "t"}`,
	} {
		_, err := DecodeViolation([]byte(given))
		assert.Error(t, err, given)
	}

	record, err := DecodeViolation([]byte(fullRecord))
	require.NoError(t, err)
	assert.Equal(t, Number(80), record.Speed)
	assert.Equal(t, Number(60), record.SpeedLimit)
	assert.Equal(t, Text("t1"), record.Time)
	assert.Equal(t, "a.jpg", record.Image)
}
