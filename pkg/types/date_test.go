package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate_DropsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)

	d := NewDate(time.Date(2024, 5, 20, 23, 59, 59, 0, loc))

	assert.Equal(t, "2024-05-20", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())
	assert.True(t, d.Time().Equal(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)))
}

func TestNewDateFromString(t *testing.T) {
	d, err := NewDateFromString("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = NewDateFromString("29.02.2024")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = NewDateFromString("2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestDate_Comparisons(t *testing.T) {
	a, err := NewDateFromString("2024-03-01")
	require.NoError(t, err)
	b, err := NewDateFromString("2024-03-02")
	require.NoError(t, err)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewDate(a.Time())))
}

func TestDate_Arithmetic(t *testing.T) {
	d, err := NewDateFromString("2024-01-31")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-01", d.AddDays(1).String())
	// Jan 31 + 1 month normalizes past the end of February
	assert.Equal(t, "2024-03-02", d.AddMonths(1).String())
	assert.Equal(t, "2024-07-31", d.AddMonths(6).String())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d, err := NewDateFromString("2024-10-05")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-10-05"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed))

	assert.Error(t, json.Unmarshal([]byte(`"05/10/2024"`), &parsed))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 7, 14, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-07-14", d.String())

	require.NoError(t, d.Scan([]byte("2024-07-15")))
	assert.Equal(t, "2024-07-15", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	var zero Date
	v, err := zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	d, err := NewDateFromString("2024-09-01")
	require.NoError(t, err)
	v, err = d.Value()
	require.NoError(t, err)
	assert.Equal(t, d.Time(), v)
}
