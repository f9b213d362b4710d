package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestDailyKeys(t *testing.T) {
	bangkok := mustLoadLocation(t, "Asia/Bangkok")

	t.Run("covers every day in the inclusive range", func(t *testing.T) {
		start := time.Date(2024, 1, 5, 0, 0, 0, 0, bangkok)
		end := time.Date(2024, 1, 7, 0, 0, 0, 0, bangkok)

		keys := DailyKeys(start, end, bangkok)

		assert.Equal(t, []string{"2024-01-05", "2024-01-06", "2024-01-07"}, keys)
	})

	t.Run("returns single element when start equals end", func(t *testing.T) {
		day := time.Date(2024, 3, 15, 0, 0, 0, 0, bangkok)

		keys := DailyKeys(day, day, bangkok)

		assert.Equal(t, []string{"2024-03-15"}, keys)
	})

	t.Run("returns empty sequence when start is after end", func(t *testing.T) {
		start := time.Date(2024, 1, 10, 0, 0, 0, 0, bangkok)
		end := time.Date(2024, 1, 5, 0, 0, 0, 0, bangkok)

		keys := DailyKeys(start, end, bangkok)

		assert.Empty(t, keys)
	})

	t.Run("discards time of day", func(t *testing.T) {
		start := time.Date(2024, 1, 5, 23, 30, 0, 0, bangkok)
		end := time.Date(2024, 1, 6, 0, 15, 0, 0, bangkok)

		keys := DailyKeys(start, end, bangkok)

		assert.Equal(t, []string{"2024-01-05", "2024-01-06"}, keys)
	})

	t.Run("normalizes bounds into the report zone", func(t *testing.T) {
		// 2024-01-05 18:00 UTC is already 2024-01-06 01:00 in Bangkok.
		start := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 6, 18, 0, 0, 0, time.UTC)

		keys := DailyKeys(start, end, bangkok)

		assert.Equal(t, []string{"2024-01-06", "2024-01-07"}, keys)
	})

	t.Run("crosses month boundaries", func(t *testing.T) {
		start := time.Date(2024, 2, 28, 0, 0, 0, 0, bangkok)
		end := time.Date(2024, 3, 1, 0, 0, 0, 0, bangkok)

		keys := DailyKeys(start, end, bangkok)

		// 2024 is a leap year.
		assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, keys)
	})

	t.Run("length matches inclusive day count over a long range", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, bangkok)
		end := time.Date(2024, 12, 31, 0, 0, 0, 0, bangkok)

		keys := DailyKeys(start, end, bangkok)

		require.Len(t, keys, 366)
		assert.Equal(t, "2024-01-01", keys[0])
		assert.Equal(t, "2024-12-31", keys[365])
		for i := 1; i < len(keys); i++ {
			assert.Less(t, keys[i-1], keys[i])
		}
	})
}

func TestMonthBuckets(t *testing.T) {
	buckets := MonthBuckets()

	t.Run("returns exactly twelve months in calendar order", func(t *testing.T) {
		require.Len(t, buckets, 12)
		for i, bucket := range buckets {
			assert.Equal(t, i+1, bucket.Number)
		}
	})

	t.Run("index one is January", func(t *testing.T) {
		assert.Equal(t, "January", buckets[0].Name)
		assert.Equal(t, "Jan", buckets[0].Abbrev)
		assert.Equal(t, "December", buckets[11].Name)
		assert.Equal(t, "Dec", buckets[11].Abbrev)
	})

	t.Run("abbreviations are three letters", func(t *testing.T) {
		for _, bucket := range buckets {
			assert.Len(t, bucket.Abbrev, 3)
		}
	})
}
