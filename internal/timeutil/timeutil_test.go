package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_AcceptedFormats(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 9, 14, 5, 30, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"exif", "2024:03:09 14:05:30", want},
		{"iso", "2024-03-09T14:05:30", want},
		{"db", "2024-03-09 14:05:30", want},
		{"iso fraction", "2024-03-09T14:05:30.250", want.Add(250 * time.Millisecond)},
		{"db fraction", "2024-03-09 14:05:30.123456", want.Add(123456 * time.Microsecond)},
		{"exif zone", "2024:03:09 19:35:30+0530", want},
		{"iso zone", "2024-03-09T16:05:30+0200", want},
		{"rfc3339 z", "2024-03-09T14:05:30Z", want},
		{"rfc3339 offset", "2024-03-09T09:05:30-05:00", want},
		{"surrounding space", "  2024:03:09 14:05:30\n", want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.text)
			require.True(t, ok, "expected %q to parse", tt.text)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseTimestamp_Rejects(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "yesterday", "2024/03/09 14:05:30", "2024-13-40 99:99:99", "1709993130"} {
		got, ok := ParseTimestamp(text)
		assert.False(t, ok, "expected %q to be rejected", text)
		assert.True(t, got.IsZero())
	}
}

func TestFormatISO(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-03-09T14:05:30", FormatISO(time.Date(2024, 3, 9, 14, 5, 30, 0, time.UTC)))
	assert.Equal(t, "2024-03-09T14:05:30.5", FormatISO(time.Date(2024, 3, 9, 14, 5, 30, 500000000, time.UTC)))

	zoned := time.Date(2024, 3, 9, 14, 5, 30, 0, time.FixedZone("IST", 19800))
	assert.Equal(t, "2024-03-09T14:05:30+05:30", FormatISO(zoned))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    string
	}{
		{-1, "N/A"},
		{0, "0s"},
		{59.9, "59s"},
		{61, "1m 1s"},
		{3600, "1h 0m 0s"},
		{3723, "1h 2m 3s"},
		{90061, "25h 1m 1s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%v", tt.seconds)
	}

	assert.Equal(t, "N/A", FormatOptionalDuration(nil))
	v := 125.0
	assert.Equal(t, "2m 5s", FormatOptionalDuration(&v))
}
