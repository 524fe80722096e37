package parking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-07", d.String())
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = ParseDate("07.09.2026")
	assert.Error(t, err)
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	d := DateOf(time.Date(2026, 9, 7, 23, 59, 0, 0, loc))
	assert.Equal(t, "2026-09-07", d.String())
}

func TestDateOrderingAndArithmetic(t *testing.T) {
	d1, err := ParseDate("2026-09-07")
	require.NoError(t, err)
	d2 := d1.AddDays(3)

	assert.True(t, d1.Before(d2))
	assert.False(t, d2.Before(d1))
	assert.Equal(t, "2026-09-10", d2.String())
	assert.True(t, d1.Equal(d1.AddDays(0)))
}

func TestIsWeekday(t *testing.T) {
	mon, err := ParseDate("2026-09-07")
	require.NoError(t, err)
	assert.True(t, mon.IsWeekday())
	assert.True(t, mon.AddDays(4).IsWeekday())  // Friday
	assert.False(t, mon.AddDays(5).IsWeekday()) // Saturday
	assert.False(t, mon.AddDays(6).IsWeekday()) // Sunday
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-09-07")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-07"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`42`), &back))
}
