package domain

import "time"

// StatePatch is a typed field mask for partial player updates: only
// non-nil fields are written, everything else is preserved.
type StatePatch struct {
	Coins         *int64
	TotalEarnings *int64
	XP            *int64
	Energy        *int64
	LastEnergyAt  *time.Time
	LastOfflineAt *time.Time
}

// Int64 is a pointer helper for building patches.
func Int64(v int64) *int64 { return &v }

// Time is a pointer helper for building patches.
func Time(t time.Time) *time.Time { return &t }
