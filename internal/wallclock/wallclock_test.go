package wallclock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pitdash.klederson.com/internal/wallclock"
)

func TestManualAdvance(t *testing.T) {
	start := time.Unix(1000, 0)
	c := wallclock.NewManual(start)

	require.Equal(t, start, c.Now())
	require.Equal(t, start.Add(1500*time.Millisecond), c.Advance(1500*time.Millisecond))
	require.Equal(t, start.Add(1500*time.Millisecond), c.Now())

	c.Set(start)
	require.Equal(t, start, c.Now())
}

func TestSystemIsMonotonic(t *testing.T) {
	a := wallclock.System.Now()
	b := wallclock.System.Now()
	require.GreaterOrEqual(t, b.Sub(a), time.Duration(0))
}
