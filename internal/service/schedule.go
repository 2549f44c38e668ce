package service

import (
	"fmt"
	"strings"
	"time"
)

// WeekSchedule maps weekdays to class names. Days without an entry have no
// class and reminders skip them.
type WeekSchedule map[time.Weekday]string

var weekdaysByName = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday accepts full or three-letter English day names, case
// insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return day, nil
}

// ParseWeekSchedule parses a "mon=Salsa,wed=Bachata" table. Empty input
// yields an empty schedule; a malformed entry fails the whole parse.
func ParseWeekSchedule(s string) (WeekSchedule, error) {
	res := WeekSchedule{}

	s = strings.TrimSpace(s)
	if s == "" {
		return res, nil
	}

	for _, entry := range strings.Split(s, ",") {
		day, class, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("malformed schedule entry %q", entry)
		}

		weekday, err := ParseWeekday(day)
		if err != nil {
			return nil, fmt.Errorf("schedule entry %q: %w", entry, err)
		}

		class = strings.TrimSpace(class)
		if class == "" {
			return nil, fmt.Errorf("schedule entry %q: empty class name", entry)
		}

		res[weekday] = class
	}

	return res, nil
}
