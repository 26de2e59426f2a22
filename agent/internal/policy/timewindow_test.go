package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:00", 360, false},
		{"21:00", 1260, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:0", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestIsRestrictedSameDayWindow(t *testing.T) {
	w := Window{Start: 540, End: 1020} // 09:00 - 17:00
	cases := []struct {
		now  int
		want bool
	}{
		{539, false},
		{540, true}, // start boundary inclusive
		{720, true},
		{1020, true}, // end boundary inclusive
		{1021, false},
		{0, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsRestricted(tc.now, w, true), "now=%d", tc.now)
	}
}

func TestIsRestrictedOvernightWindow(t *testing.T) {
	w := Window{Start: 1260, End: 360} // 21:00 - 06:00
	cases := []struct {
		now  int
		want bool
	}{
		{1380, true}, // 23:00
		{720, false}, // 12:00
		{1260, true}, // start boundary
		{360, true},  // end boundary
		{361, false},
		{1259, false},
		{0, true}, // midnight inside the window
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsRestricted(tc.now, w, true), "now=%d", tc.now)
	}
}

// Start == End restricts the whole day; both boundaries and points far from
// them are all restricted.
func TestIsRestrictedDegenerateWindow(t *testing.T) {
	w := Window{Start: 600, End: 600}
	for _, now := range []int{0, 599, 600, 601, 1439} {
		assert.True(t, IsRestricted(now, w, true), "now=%d", now)
	}
}

func TestIsRestrictedDisabled(t *testing.T) {
	w := Window{Start: 0, End: 1439}
	assert.False(t, IsRestricted(720, w, false))
}

func TestMinuteOfDay(t *testing.T) {
	at := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 1380, MinuteOfDay(at))
}

func TestWindowOf(t *testing.T) {
	w, err := WindowOf(TimeRestriction{StartTime: "21:00", EndTime: "06:00"})
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 1260, End: 360}, w)

	_, err = WindowOf(TimeRestriction{StartTime: "25:00", EndTime: "06:00"})
	assert.Error(t, err)
}
