package offers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want float64
	}{
		{"1:30", 1.5},
		{"0:10", 1.0 / 6.0},
		{"1", 1.0},
		{"0.75", 0.75},
		{"1,5", 1.5},
		{"", 0},
		{"2h 15min", 2.25},
		{"3h", 3},
		{"45min", 0.75},
		{"   ", 0},
		{"abc", 0},
		{"1:99", 0},
		{"-2", 0},
	}
	for _, tc := range cases {
		require.InDelta(t, tc.want, ParseHours(tc.raw), 1e-9, "input %q", tc.raw)
	}
}

func TestFormatHours(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1.5", FormatHours(1.5))
	require.Equal(t, "2", FormatHours(2))
	require.Equal(t, "0.25", FormatHours(0.25))
	require.Equal(t, "0", FormatHours(0))
}
