package kernel

import "time"

// AddWorkingDays returns the date obtained by moving daysToAdd working days
// forward from date. Working days are Monday through Friday; Saturday and
// Sunday are skipped. Holidays are not considered.
//
// The time-of-day component of date is discarded: counting starts from the
// beginning of the calendar day, matching how escalation deadlines are
// communicated to operators ("three working days from intake").
func AddWorkingDays(date time.Time, daysToAdd int) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	for daysToAdd > 0 {
		day = day.AddDate(0, 0, 1)
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			daysToAdd--
		}
	}

	return day
}
