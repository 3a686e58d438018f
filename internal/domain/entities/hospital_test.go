package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHospitalWithDistance_FlattensHospitalFields(t *testing.T) {
	d := 2.5
	result := HospitalWithDistance{
		Hospital: Hospital{ID: "h-1", Name: "Riverside Clinic", Type: HospitalTypeClinic},
		Distance: &d,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "h-1", decoded["id"])
	assert.Equal(t, "clinic", decoded["type"])
	assert.Equal(t, 2.5, decoded["distance"])
}

func TestHospitalWithDistance_OmitsDistanceWithoutReferencePoint(t *testing.T) {
	data, err := json.Marshal(HospitalWithDistance{Hospital: Hospital{ID: "h-1"}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "distance")
}

func TestNewHospitalEvent(t *testing.T) {
	h := &Hospital{ID: "h-9", Latitude: 40.7, Longitude: -74}
	event := NewHospitalEvent(HospitalEventTypeCreated, h)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "h-9", event.HospitalID)
	assert.Equal(t, HospitalEventTypeCreated, event.EventType)
	assert.Equal(t, 40.7, event.Latitude)

	seeded := NewHospitalEvent(HospitalEventTypeSeeded, nil)
	assert.Empty(t, seeded.HospitalID)
}
