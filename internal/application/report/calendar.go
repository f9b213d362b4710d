package report

import "time"

// dayKeyLayout is the calendar-day bucket key format
const dayKeyLayout = "2006-01-02"

// DailyKeys returns one key per calendar day from start to end inclusive,
// ascending, in the given location. Returns a single key when start equals
// end and an empty slice when start is after end.
func DailyKeys(start, end time.Time, loc *time.Location) []string {
	first := dateOnly(start.In(loc))
	last := dateOnly(end.In(loc))

	if first.After(last) {
		return []string{}
	}

	days := int(last.Sub(first).Hours()/24) + 1
	keys := make([]string, 0, days)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(dayKeyLayout))
	}
	return keys
}

// dateOnly truncates a time to midnight in its own location
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthBucket is one of the twelve fixed calendar months. Number 1 is
// always January.
type MonthBucket struct {
	Number int
	Name   string
	Abbrev string
}

// monthBuckets is the static month table, indexed 1..12 in calendar order
var monthBuckets = [12]MonthBucket{
	{1, "January", "Jan"},
	{2, "February", "Feb"},
	{3, "March", "Mar"},
	{4, "April", "Apr"},
	{5, "May", "May"},
	{6, "June", "Jun"},
	{7, "July", "Jul"},
	{8, "August", "Aug"},
	{9, "September", "Sep"},
	{10, "October", "Oct"},
	{11, "November", "Nov"},
	{12, "December", "Dec"},
}

// MonthBuckets returns the twelve calendar months in order
func MonthBuckets() [12]MonthBucket {
	return monthBuckets
}
