// Package export serializes entry lists for download.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/spotsecure/internal/billing"
	"github.com/Tiliavir/spotsecure/internal/model"
)

// CSVHeader lists the exported columns in order.
var CSVHeader = []string{
	"Owner", "Car", "License Plate", "Entry Time", "Exit Time", "Date",
	"Parking Type", "Mobile Number", "Duration (hours)", "Cost ($)",
}

// WriteCSV writes one quoted row per entry after a plain header row.
func WriteCSV(w io.Writer, entries []model.Entry, engine billing.Engine) error {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))
	for _, e := range entries {
		row := []string{
			e.Owner,
			e.Car,
			e.LicensePlate,
			e.EntryTime,
			e.ExitTime,
			e.Date,
			string(e.ParkingType),
			e.MobileNumber,
			strconv.Itoa(billing.Duration(e)),
			FormatAmount(engine.Cost(e)),
		}
		for i, field := range row {
			row[i] = quote(field)
		}
		lines = append(lines, strings.Join(row, ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// WriteJSON writes the entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

// FileName suggests a download name like parking_data_2026-02-27.csv.
func FileName(now time.Time, format string) string {
	return fmt.Sprintf("parking_data_%s.%s", now.Format("2006-01-02"), format)
}

// FormatAmount renders a money amount without trailing zeros: 15, 7.5.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quote wraps a field in double quotes, doubling any inner quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
