package event

import (
	"sort"
	"time"
)

// EventsOn returns the events whose start timestamp falls on the given
// calendar date. An event spanning midnight is indexed only under its start
// date; this is same-day bucketing, not overlap search.
func EventsOn(events []Event, date time.Time) []Event {
	matched := make([]Event, 0, len(events))
	for _, e := range events {
		if SameDay(e.StartAt, date) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Upcoming returns the events starting strictly after now, ordered by start
// time ascending.
func Upcoming(events []Event, now time.Time) []Event {
	matched := make([]Event, 0, len(events))
	for _, e := range events {
		if e.StartAt.After(now) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartAt.Before(matched[j].StartAt)
	})
	return matched
}
