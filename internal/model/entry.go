package model

import (
	"strings"
	"time"
)

// ParkingType is the billing classification of an entry.
type ParkingType string

const (
	Free ParkingType = "Free"
	Paid ParkingType = "Paid"
)

// ParseParkingType accepts "Free" or "Paid" case-insensitively.
func ParseParkingType(s string) (ParkingType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return Free, true
	case "paid":
		return Paid, true
	}
	return "", false
}

// Status is the lifecycle state of a stored entry. Deletion is physical, so
// stored rows are always StatusActive; the field is kept for layout
// compatibility.
type Status string

const (
	StatusActive  Status = "active"
	StatusRemoved Status = "removed"
)

// Entry represents a single parking transaction.
type Entry struct {
	ID           string      `json:"id"`
	Owner        string      `json:"owner"`
	Car          string      `json:"car"`
	LicensePlate string      `json:"licensePlate"`
	EntryTime    string      `json:"entryTime"`
	ExitTime     string      `json:"exitTime"`
	Date         string      `json:"date"`
	ParkingType  ParkingType `json:"parkingType"`
	MobileNumber string      `json:"mobileNumber"`
	CreatedAt    time.Time   `json:"createdAt"`
	Status       Status      `json:"status"`
}

// Active reports whether the entry counts towards occupancy and uniqueness.
// Rows written before the status field existed have an empty status.
func (e Entry) Active() bool {
	return e.Status == StatusActive || e.Status == ""
}

// Draft holds the caller-supplied fields of a new entry.
type Draft struct {
	Owner        string
	Car          string
	LicensePlate string
	EntryTime    string
	ExitTime     string
	Date         string
	ParkingType  ParkingType
	MobileNumber string
}

// Normalize trims the free-text fields the way form input is trimmed.
func (d Draft) Normalize() Draft {
	d.Owner = strings.TrimSpace(d.Owner)
	d.Car = strings.TrimSpace(d.Car)
	d.LicensePlate = strings.TrimSpace(d.LicensePlate)
	d.MobileNumber = strings.TrimSpace(d.MobileNumber)
	d.EntryTime = strings.TrimSpace(d.EntryTime)
	d.ExitTime = strings.TrimSpace(d.ExitTime)
	d.Date = strings.TrimSpace(d.Date)
	return d
}

// Entry builds an unsaved entry from the draft. ID, CreatedAt and Status are
// left for the registry to assign.
func (d Draft) Entry() Entry {
	return Entry{
		Owner:        d.Owner,
		Car:          d.Car,
		LicensePlate: d.LicensePlate,
		EntryTime:    d.EntryTime,
		ExitTime:     d.ExitTime,
		Date:         d.Date,
		ParkingType:  d.ParkingType,
		MobileNumber: d.MobileNumber,
	}
}

// Patch is a partial update. Nil fields are left untouched. ID and CreatedAt
// are deliberately absent.
type Patch struct {
	Owner        *string
	Car          *string
	LicensePlate *string
	EntryTime    *string
	ExitTime     *string
	Date         *string
	ParkingType  *ParkingType
	MobileNumber *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Owner == nil && p.Car == nil && p.LicensePlate == nil &&
		p.EntryTime == nil && p.ExitTime == nil && p.Date == nil &&
		p.ParkingType == nil && p.MobileNumber == nil
}

// Apply returns a copy of e with the patch merged in. String values are
// trimmed like Draft.Normalize.
func (p Patch) Apply(e Entry) Entry {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&e.Owner, p.Owner)
	set(&e.Car, p.Car)
	set(&e.LicensePlate, p.LicensePlate)
	set(&e.EntryTime, p.EntryTime)
	set(&e.ExitTime, p.ExitTime)
	set(&e.Date, p.Date)
	set(&e.MobileNumber, p.MobileNumber)
	if p.ParkingType != nil {
		e.ParkingType = *p.ParkingType
	}
	return e
}
