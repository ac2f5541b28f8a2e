package services

import "regexp"

var calendarDateRE = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ParseDates extracts calendar dates (YYYY-MM-DD) from free text, left to
// right. One match means a one-way trip; the second match is the return date;
// anything past the second is ignored. No chronological validation happens
// here.
func ParseDates(dates string) (departDate, returnDate string) {
	found := calendarDateRE.FindAllString(dates, -1)
	switch {
	case len(found) == 0:
		return "", ""
	case len(found) == 1:
		return found[0], ""
	default:
		return found[0], found[1]
	}
}
