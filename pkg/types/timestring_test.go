package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "plain", input: "09:05", want: "09:05"},
		{name: "with seconds", input: "18:30:59", want: "18:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute", input: "23:59", want: "23:59"},
		{name: "no leading zero", input: "9:05", wantErr: true},
		{name: "hour overflow", input: "24:00", wantErr: true},
		{name: "minute overflow", input: "10:60", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "bad separator", input: "10-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:45")

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Between(t *testing.T) {
	assert.True(t, TimeString("14:30").Between("12:00", "18:00"))
	assert.True(t, TimeString("12:00").Between("12:00", "18:00"))
	assert.True(t, TimeString("18:00").Between("12:00", "18:00"))
	assert.False(t, TimeString("18:01").Between("12:00", "18:00"))
	assert.False(t, TimeString("23:00").Between("22:00", "06:00"))
}

func TestTimeString_MinutesUntil(t *testing.T) {
	diff, err := TimeString("09:00").MinutesUntil("09:20")
	require.NoError(t, err)
	assert.Equal(t, 20, diff)

	diff, err = TimeString("10:00").MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -60, diff)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan([]byte("08:30:00")))
	assert.Equal(t, TimeString("08:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.Equal(t, TimeString(""), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Normalized(t *testing.T) {
	assert.Equal(t, TimeString("14:30"), TimeString("14:30:00").Normalized())
	assert.Equal(t, TimeString("14:30"), TimeString("14:30").Normalized())
	assert.Equal(t, TimeString("late"), TimeString("late").Normalized())
}

func TestTimeString_UnmarshalJSON(t *testing.T) {
	var v struct {
		Start TimeString `json:"start"`
		End   TimeString `json:"end"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"14:30:00","end":"9:5"}`), &v))
	assert.Equal(t, TimeString("14:30"), v.Start)
	assert.Equal(t, TimeString("9:5"), v.End, "malformed value is kept for the resolver to skip")

	assert.Error(t, json.Unmarshal([]byte(`{"start":930}`), &v))
}

func TestTimeString_UnmarshalYAML(t *testing.T) {
	var v struct {
		From TimeString `yaml:"from"`
	}

	require.NoError(t, yaml.Unmarshal([]byte(`from: "06:00:00"`), &v))
	assert.Equal(t, TimeString("06:00"), v.From)
}
