package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, time.Local)
}

func TestEvent_Validate(t *testing.T) {
	valid := Event{
		Title:   "Team standup",
		StartAt: at(2024, time.March, 15, 9, 0),
		EndAt:   at(2024, time.March, 15, 9, 30),
		Color:   "#FF5733",
	}

	t.Run("should accept a valid event", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("should reject a blank title", func(t *testing.T) {
		e := valid
		e.Title = "   "
		assert.ErrorIs(t, e.Validate(), ErrEmptyTitle)
	})

	t.Run("should reject an end before the start", func(t *testing.T) {
		e := valid
		e.EndAt = at(2024, time.March, 15, 8, 0)
		assert.ErrorIs(t, e.Validate(), ErrTimeOrder)
	})

	t.Run("should reject an end equal to the start", func(t *testing.T) {
		e := valid
		e.EndAt = e.StartAt
		assert.ErrorIs(t, e.Validate(), ErrTimeOrder)
	})

	t.Run("should reject an event spanning midnight", func(t *testing.T) {
		e := valid
		e.StartAt = at(2024, time.March, 15, 23, 30)
		e.EndAt = at(2024, time.March, 16, 0, 30)
		assert.ErrorIs(t, e.Validate(), ErrMultiDay)
	})

	t.Run("should reject an unrecognizable color", func(t *testing.T) {
		e := valid
		e.Color = "tomato"
		assert.ErrorIs(t, e.Validate(), ErrInvalidColor)
	})

	t.Run("should accept an empty color", func(t *testing.T) {
		e := valid
		e.Color = ""
		assert.NoError(t, e.Validate())
	})
}

func TestValidColor(t *testing.T) {
	t.Run("should accept every palette color", func(t *testing.T) {
		for _, p := range Palette {
			assert.True(t, ValidColor(p.Value), p.Label)
		}
	})

	t.Run("should accept palette colors case-insensitively", func(t *testing.T) {
		assert.True(t, ValidColor("#ff5733"))
	})

	t.Run("should accept free-form hex values", func(t *testing.T) {
		assert.True(t, ValidColor("#123abc"))
	})

	t.Run("should reject malformed values", func(t *testing.T) {
		assert.False(t, ValidColor("FF5733"))
		assert.False(t, ValidColor("#FF573"))
		assert.False(t, ValidColor("#GG5733"))
	})
}

func TestEventsOn(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Morning", StartAt: at(2024, time.March, 15, 9, 0), EndAt: at(2024, time.March, 15, 10, 0)},
		{ID: "b", Title: "Evening", StartAt: at(2024, time.March, 15, 20, 0), EndAt: at(2024, time.March, 15, 21, 0)},
		{ID: "c", Title: "Next day", StartAt: at(2024, time.March, 16, 9, 0), EndAt: at(2024, time.March, 16, 10, 0)},
	}

	t.Run("should bucket events by their start date", func(t *testing.T) {
		// when
		matched := EventsOn(events, at(2024, time.March, 15, 0, 0))

		// then
		assert.Len(t, matched, 2)
		assert.Equal(t, "a", matched[0].ID)
		assert.Equal(t, "b", matched[1].ID)
	})

	t.Run("should match regardless of the query time of day", func(t *testing.T) {
		matched := EventsOn(events, at(2024, time.March, 16, 18, 45))
		assert.Len(t, matched, 1)
		assert.Equal(t, "c", matched[0].ID)
	})

	t.Run("should return an empty slice for an empty day", func(t *testing.T) {
		matched := EventsOn(events, at(2024, time.March, 17, 0, 0))
		assert.Empty(t, matched)
	})
}

func TestUpcoming(t *testing.T) {
	now := at(2024, time.March, 15, 12, 0)
	events := []Event{
		{ID: "later", StartAt: at(2024, time.March, 20, 9, 0)},
		{ID: "past", StartAt: at(2024, time.March, 10, 9, 0)},
		{ID: "soon", StartAt: at(2024, time.March, 15, 14, 0)},
		{ID: "now", StartAt: now},
	}

	t.Run("should return future events soonest first", func(t *testing.T) {
		// when
		upcoming := Upcoming(events, now)

		// then
		assert.Len(t, upcoming, 2)
		assert.Equal(t, "soon", upcoming[0].ID)
		assert.Equal(t, "later", upcoming[1].ID)
	})

	t.Run("should exclude an event starting exactly now", func(t *testing.T) {
		upcoming := Upcoming(events, now)
		for _, e := range upcoming {
			assert.NotEqual(t, "now", e.ID)
		}
	})
}
