package clock

import "time"

// NowFunc returns the wall clock in UTC. Tests replace it to pin report timestamps.
var NowFunc = func() time.Time { return time.Now().UTC() }

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }

// Since returns the time elapsed from start according to NowFunc.
func Since(start time.Time) time.Duration { return NowFunc().Sub(start) }
