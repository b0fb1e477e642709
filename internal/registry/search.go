package registry

import (
	"strings"

	"github.com/Tiliavir/spotsecure/internal/model"
)

// Search returns the entries with at least one displayed field containing
// query, case-insensitively. An empty query matches everything.
func Search(entries []model.Entry, query string) []model.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []model.Entry
	for _, e := range entries {
		for _, field := range searchable(e) {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func searchable(e model.Entry) []string {
	return []string{
		e.Owner,
		e.Car,
		e.LicensePlate,
		e.EntryTime,
		e.ExitTime,
		e.Date,
		string(e.ParkingType),
		e.MobileNumber,
	}
}
