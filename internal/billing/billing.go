// Package billing derives durations, costs and lot statistics from entries.
// All functions are pure over their inputs.
package billing

import (
	"math"

	"github.com/Tiliavir/spotsecure/internal/model"
	"github.com/Tiliavir/spotsecure/internal/timecalc"
)

const (
	DefaultRatePerHour = 5.0
	DefaultCapacity    = 20
)

// Engine holds the tariff and lot size used for derivations.
type Engine struct {
	RatePerHour float64
	Capacity    int
}

// New returns an Engine for the given rate and capacity.
func New(ratePerHour float64, capacity int) Engine {
	return Engine{RatePerHour: ratePerHour, Capacity: capacity}
}

// Duration returns the started hours between entry and exit time on the
// entry's date. Unparseable or non-positive spans yield 0.
func Duration(e model.Entry) int {
	span, err := timecalc.Span(e.Date, e.EntryTime, e.ExitTime)
	if err != nil || span <= 0 {
		return 0
	}
	return timecalc.CeilHours(span)
}

// Cost returns the amount owed for e. Only paid parking accrues cost.
func (g Engine) Cost(e model.Entry) float64 {
	if e.ParkingType != model.Paid {
		return 0
	}
	return float64(Duration(e)) * g.RatePerHour
}

// Stats summarises a snapshot of entries.
type Stats struct {
	TotalCount    int     `json:"totalCount"`
	PaidCount     int     `json:"paidCount"`
	FreeCount     int     `json:"freeCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
	OccupancyRate float64 `json:"occupancyRate"`
	Capacity      int     `json:"capacity"`
}

// Aggregate folds entries into Stats. Entries that are not paid count as free.
func (g Engine) Aggregate(entries []model.Entry) Stats {
	s := Stats{Capacity: g.Capacity}
	for _, e := range entries {
		if !e.Active() {
			continue
		}
		s.TotalCount++
		if e.ParkingType == model.Paid {
			s.PaidCount++
		} else {
			s.FreeCount++
		}
		s.TotalRevenue += g.Cost(e)
	}
	if g.Capacity > 0 {
		s.OccupancyRate = math.Round(float64(s.TotalCount)/float64(g.Capacity)*100*10) / 10
	}
	return s
}
