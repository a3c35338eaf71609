// Package thaitime formats dates in the Thai Buddhist calendar, the display
// convention throughout the dashboard.
package thaitime

import (
	"fmt"
	"time"
)

// The Buddhist Era runs 543 years ahead of the Common Era.
const eraOffset = 543

var months = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// Format renders a date as "2 มกราคม 2569".
func Format(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year()+eraOffset)
}

// FormatShort renders a date as "02/01/2569".
func FormatShort(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year()+eraOffset)
}

// Year returns the Buddhist Era year for a Common Era time.
func Year(t time.Time) int {
	return t.Year() + eraOffset
}
