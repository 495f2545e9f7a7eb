package lap_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pitdash.klederson.com/internal/lap"
)

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{seconds(65.4321), "1:05.432"},
		{0, "0:00.000"},
		{seconds(9.5), "0:09.500"},
		{seconds(59.999), "0:59.999"},
		{seconds(60), "1:00.000"},
		{seconds(754.1), "12:34.100"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, lap.FormatTime(tt.in), "%v", tt.in)
	}
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{seconds(-0.342), "-0.342"},
		{0, "+0.000"},
		{seconds(0.342), "+0.342"},
		{seconds(-12.5), "-12.500"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, lap.FormatDelta(tt.in), "%v", tt.in)
	}
}
