package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/spotsecure/internal/model"
	"github.com/Tiliavir/spotsecure/internal/registry"
)

func TestSearch(t *testing.T) {
	entries := []model.Entry{
		{ID: "1", Owner: "Jane Doe", Car: "VW Golf", LicensePlate: "AB-12-34", ParkingType: model.Paid, Date: "2026-02-27"},
		{ID: "2", Owner: "John Roe", Car: "Fiat Panda", LicensePlate: "12-CD-34", ParkingType: model.Free, MobileNumber: "0611111111"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2"}},
		{"   ", []string{"1", "2"}},
		{"jane", []string{"1"}},
		{"PANDA", []string{"2"}},
		{"-34", []string{"1", "2"}},
		{"paid", []string{"1"}},
		{"0611", []string{"2"}},
		{"2026-02", []string{"1"}},
		{"tesla", nil},
	}
	for _, tt := range tests {
		var got []string
		for _, e := range registry.Search(entries, tt.query) {
			got = append(got, e.ID)
		}
		assert.Equal(t, tt.want, got, "query %q", tt.query)
	}
}
