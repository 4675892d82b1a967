package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-15"`), &d))
	assert.Equal(t, "2024-03-15", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-15"`, string(out))
}

func TestDateAcceptsTimestamps(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-15T22:10:00+03:00"`), &d))
	assert.Equal(t, "2024-03-15", d.String())
}

func TestDateNullAndInvalid(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	assert.Error(t, json.Unmarshal([]byte(`"15.03.2024"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2024-01-02", d.String())

	require.NoError(t, d.Scan("2024-02-03"))
	assert.Equal(t, "2024-02-03", d.String())

	require.NoError(t, d.Scan([]byte("2024-02-04 00:00:00+00:00")))
	assert.Equal(t, "2024-02-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateValueAndOrdering(t *testing.T) {
	early := NewDate(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC))
	late := NewDate(time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC))

	v, err := early.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", v)
	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
