package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStats(t *testing.T) {
	stats, err := DecodeStats([]byte(`{
		"total": 5,
		"vehicles": 3,
		"avg_speed": "72.35",
		"recent": [{"plate": "A", "speed": 80, "time": "t1"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, Number(5), stats.Total)
	assert.Equal(t, Number(3), stats.Vehicles)
	assert.Equal(t, Number(72.35), stats.AvgSpeed)
	require.Len(t, stats.Recent, 1)
	assert.Equal(t, "A", stats.Recent[0].Plate)
}

func TestDecodeStats_Failures(t *testing.T) {
	for _, given := range []string{
		`not json`,
		`[]`,
		`{"total": 5, "vehicles": 3}`,
		`{"total": "x", "vehicles": 3, "avg_speed": 0}`,
	} {
		_, err := DecodeStats([]byte(given))
		assert.Error(t, err, given)
	}
}
