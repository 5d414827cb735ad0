package core

import "time"

var systemTicks uint32

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// TicksSince returns the ticks elapsed from start to now.
// Unsigned subtraction keeps the result correct across one rollover.
func TicksSince[D Duration](start, now D) D {
	return now - start
}

// SystemClock exposes the software tick counter as a TimeCount.
// Target code keeps it current with SetTime.
type SystemClock struct{}

// TryNowRaw returns the current system tick count. It never fails.
func (SystemClock) TryNowRaw() (uint32, error) {
	return GetTime(), nil
}

// TryNow returns the system time as a duration.
func (c SystemClock) TryNow() (time.Duration, error) {
	return TryNow[SystemTickScale, uint32, time.Duration](c)
}

// SystemTickScale scales TimerFreq ticks to time.Duration.
type SystemTickScale struct{}

// Mul implements TickScale.
func (SystemTickScale) Mul(ticks uint32) time.Duration {
	return time.Duration(uint64(ticks) * uint64(time.Second) / TimerFreq)
}
