package event_form

import (
	"testing"
	"time"

	"github.com/calevents/calevents/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 11, 30, 0, 0, time.Local)}

func newForm(t *testing.T, increment int) *Form {
	form, err := New(increment, clock)
	require.NoError(t, err)
	return form
}

func TestNew(t *testing.T) {
	t.Run("should accept 15 and 30 minute increments", func(t *testing.T) {
		for _, increment := range []int{15, 30} {
			_, err := New(increment, clock)
			assert.NoError(t, err)
		}
	})

	t.Run("should reject other increments", func(t *testing.T) {
		for _, increment := range []int{0, 5, 20, 60} {
			_, err := New(increment, clock)
			assert.Error(t, err, "increment %d", increment)
		}
	})
}

func TestForm_TimeOptions(t *testing.T) {
	t.Run("should cover the whole day in 15 minute slots", func(t *testing.T) {
		options := newForm(t, 15).TimeOptions()

		require.Len(t, options, 96)
		assert.Equal(t, "00:00", options[0])
		assert.Equal(t, "09:15", options[37])
		assert.Equal(t, "23:45", options[95])
	})

	t.Run("should cover the whole day in 30 minute slots", func(t *testing.T) {
		options := newForm(t, 30).TimeOptions()

		require.Len(t, options, 48)
		assert.Equal(t, "23:30", options[47])
	})
}

func TestForm_Defaults(t *testing.T) {
	t.Run("should preset today with a one hour morning slot", func(t *testing.T) {
		defaults := newForm(t, 15).Defaults()

		assert.Equal(t, "2024-03-15", defaults.StartDate)
		assert.Equal(t, "09:00", defaults.StartTime)
		assert.Equal(t, "10:00", defaults.EndTime)
		assert.Equal(t, "#FF5733", defaults.Color)
		assert.Empty(t, defaults.Title)
	})
}

func TestForm_Compose(t *testing.T) {
	form := newForm(t, 15)

	valid := Values{
		Title:     "Team standup",
		StartDate: "2024-03-15",
		StartTime: "09:00",
		EndTime:   "09:15",
		Color:     "#33FF57",
	}

	t.Run("should compose both timestamps from the single start date", func(t *testing.T) {
		// when
		e, err := form.Compose(valid, "")

		// then
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local), e.StartAt)
		assert.Equal(t, time.Date(2024, time.March, 15, 9, 15, 0, 0, time.Local), e.EndAt)
		assert.Empty(t, e.ID)
		assert.NoError(t, e.Validate())
	})

	t.Run("should carry the id over when editing", func(t *testing.T) {
		e, err := form.Compose(valid, "existing-id")

		require.NoError(t, err)
		assert.Equal(t, "existing-id", e.ID)
	})

	t.Run("should reject an end time before the start time", func(t *testing.T) {
		values := valid
		values.StartTime = "09:00"
		values.EndTime = "08:00"

		_, err := form.Compose(values, "")

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 1)
		assert.Equal(t, "endTime", errs[0].Field)
	})

	t.Run("should reject an end time equal to the start time", func(t *testing.T) {
		values := valid
		values.EndTime = values.StartTime

		_, err := form.Compose(values, "")

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "endTime", errs[0].Field)
	})

	t.Run("should collect every failing field at once", func(t *testing.T) {
		// given a submission with a blank title and malformed times
		values := Values{
			Title:     "  ",
			StartDate: "2024-03-15",
			StartTime: "9am",
			EndTime:   "later",
		}

		// when
		_, err := form.Compose(values, "")

		// then
		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.Field)
		}
		assert.Contains(t, fields, "eventTitle")
		assert.Contains(t, fields, "startTime")
		assert.Contains(t, fields, "endTime")
	})

	t.Run("should reject times off the increment grid", func(t *testing.T) {
		values := valid
		values.StartTime = "09:10"

		_, err := form.Compose(values, "")

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "startTime", errs[0].Field)
	})

	t.Run("should reject a past date for a new event", func(t *testing.T) {
		values := valid
		values.StartDate = "2024-03-14"

		_, err := form.Compose(values, "")

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "startDate", errs[0].Field)
	})

	t.Run("should allow a past date when editing", func(t *testing.T) {
		values := valid
		values.StartDate = "2024-03-14"

		_, err := form.Compose(values, "existing-id")

		assert.NoError(t, err)
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		values := valid
		values.StartDate = "15/03/2024"

		_, err := form.Compose(values, "")

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "startDate", errs[0].Field)
	})

	t.Run("should fall back to the default color", func(t *testing.T) {
		values := valid
		values.Color = ""

		e, err := form.Compose(values, "")

		require.NoError(t, err)
		assert.Equal(t, DefaultColor, e.Color)
	})

	t.Run("should reject an unknown color", func(t *testing.T) {
		values := valid
		values.Color = "tomato"

		_, err := form.Compose(values, "")

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "eventColor", errs[0].Field)
	})
}

func TestValuesFor(t *testing.T) {
	t.Run("should prefill the form from an existing event", func(t *testing.T) {
		e, err := newForm(t, 15).Compose(Values{
			Title:     "Review",
			StartDate: "2024-03-20",
			StartTime: "14:00",
			EndTime:   "15:30",
			Color:     "#3357FF",
		}, "id-1")
		require.NoError(t, err)

		values := ValuesFor(e)

		assert.Equal(t, "Review", values.Title)
		assert.Equal(t, "2024-03-20", values.StartDate)
		assert.Equal(t, "14:00", values.StartTime)
		assert.Equal(t, "15:30", values.EndTime)
		assert.Equal(t, "#3357FF", values.Color)
	})
}
