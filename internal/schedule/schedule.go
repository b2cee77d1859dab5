package schedule

import (
	"errors"
	"fmt"
	"time"
)

// SlotMinutes is the granularity of service slots offered on the booking form.
const SlotMinutes = 60

var (
	ErrInvalidDate = errors.New("invalid date format")
	ErrInvalidTime = errors.New("invalid time format")
)

type TimeRange struct {
	Start string
	End   string
}

func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func ParseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	if _, err := time.Parse("15:04", timeStr); err != nil {
		return time.Time{}, ErrInvalidTime
	}
	_, err := ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}

	parsed, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}

	return parsed, nil
}

func ParseClockToMinutes(timeStr string) (int, error) {
	tm, err := time.Parse("15:04", timeStr)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return tm.Hour()*60 + tm.Minute(), nil
}

func MinutesToClock(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

func IsDatePast(dateStr string, loc *time.Location, now time.Time) (bool, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false, err
	}
	startToday := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	return date.Before(startToday), nil
}

func IsSlotPast(dateStr, timeStr string, loc *time.Location, now time.Time) (bool, error) {
	slot, err := ParseDateTime(dateStr, timeStr, loc)
	if err != nil {
		return false, err
	}
	return !slot.After(now.In(loc)), nil
}

// Workshop hours: weekdays with a midday break, shorter Saturday, closed Sunday.
func dayRanges(day time.Weekday) []TimeRange {
	switch day {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
		return []TimeRange{{Start: "08:00", End: "12:00"}, {Start: "13:00", End: "17:00"}}
	case time.Saturday:
		return []TimeRange{{Start: "08:00", End: "14:00"}}
	default:
		return nil
	}
}

func GenerateSlots(dateStr string, loc *time.Location) ([]string, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return nil, err
	}

	ranges := dayRanges(date.Weekday())
	if len(ranges) == 0 {
		return []string{}, nil
	}

	slots := make([]string, 0)
	for _, tr := range ranges {
		startMin, err := ParseClockToMinutes(tr.Start)
		if err != nil {
			return nil, err
		}
		endMin, err := ParseClockToMinutes(tr.End)
		if err != nil {
			return nil, err
		}

		for cursor := startMin; cursor+SlotMinutes <= endMin; cursor += SlotMinutes {
			slots = append(slots, MinutesToClock(cursor))
		}
	}

	return slots, nil
}

func IsSlotAllowed(dateStr, timeStr string, loc *time.Location) (bool, error) {
	slots, err := GenerateSlots(dateStr, loc)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s == timeStr {
			return true, nil
		}
	}
	return false, nil
}
