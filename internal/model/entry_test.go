package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/spotsecure/internal/model"
)

func TestParseParkingType(t *testing.T) {
	tests := []struct {
		input string
		want  model.ParkingType
		ok    bool
	}{
		{"Paid", model.Paid, true},
		{"paid", model.Paid, true},
		{" FREE ", model.Free, true},
		{"", "", false},
		{"valet", "", false},
	}
	for _, tt := range tests {
		got, ok := model.ParseParkingType(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestDraftNormalize(t *testing.T) {
	d := model.Draft{
		Owner:        "  Jane ",
		Car:          "Golf\t",
		LicensePlate: " AB-12-34",
		MobileNumber: " 0612345678 ",
	}.Normalize()

	assert.Equal(t, "Jane", d.Owner)
	assert.Equal(t, "Golf", d.Car)
	assert.Equal(t, "AB-12-34", d.LicensePlate)
	assert.Equal(t, "0612345678", d.MobileNumber)
}

func TestPatchApply(t *testing.T) {
	created := time.Date(2026, 2, 27, 8, 0, 0, 0, time.UTC)
	e := model.Entry{
		ID:           "id-1",
		Owner:        "Jane",
		Car:          "Golf",
		LicensePlate: "AB-12-34",
		EntryTime:    "08:00",
		ExitTime:     "10:00",
		Date:         "2026-02-27",
		ParkingType:  model.Free,
		CreatedAt:    created,
		Status:       model.StatusActive,
	}

	owner := " John "
	paid := model.Paid
	got := model.Patch{Owner: &owner, ParkingType: &paid}.Apply(e)

	assert.Equal(t, "John", got.Owner)
	assert.Equal(t, model.Paid, got.ParkingType)
	assert.Equal(t, "Golf", got.Car)
	assert.Equal(t, "id-1", got.ID)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.Equal(t, "Jane", e.Owner, "original must not be modified")
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, model.Patch{}.Empty())
	car := "Polo"
	assert.False(t, model.Patch{Car: &car}.Empty())
}

func TestEntryJSONLayout(t *testing.T) {
	e := model.Entry{
		ID:           "id-1",
		Owner:        "Jane",
		LicensePlate: "AB-12-34",
		ParkingType:  model.Paid,
		Status:       model.StatusActive,
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "owner", "car", "licensePlate", "entryTime", "exitTime", "date", "parkingType", "mobileNumber", "createdAt", "status"} {
		assert.Contains(t, raw, key)
	}
}

func TestEntryToleratesUnknownFields(t *testing.T) {
	data := []byte(`{"id":"x","owner":"Jane","licensePlate":"AB-12-34","status":"active","parkingSpot":7}`)
	var e model.Entry
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, "Jane", e.Owner)
	assert.True(t, e.Active())
}
