package app

import "time"

// TickMsg triggers a dashboard refresh.
type TickMsg time.Time
