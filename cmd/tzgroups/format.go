package main

import (
	"fmt"
	"io"
	"time"

	"github.com/mmynk/tzgroups/internal/availability"
)

// weekStart is a Monday; hour 0 of a week is Monday 00:00.
var weekStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// formatHour renders an hour of the week as e.g. "Monday 7 AM".
func formatHour(h int) string {
	return weekStart.Add(time.Duration(h) * time.Hour).Format("Monday 3 PM")
}

// printWeek draws one row per day, '#' for free hours and '.' for busy ones.
func printWeek(w io.Writer, week availability.Week) {
	fmt.Fprintln(w, "           0     6     12    18")
	for day := 0; day < availability.DaysPerWeek; day++ {
		row := make([]byte, availability.HoursPerDay)
		for h := range row {
			row[h] = '.'
			if week.Has(day*availability.HoursPerDay + h) {
				row[h] = '#'
			}
		}
		name := weekStart.AddDate(0, 0, day).Format("Monday")
		fmt.Fprintf(w, "%-10s %s\n", name, row)
	}
}
