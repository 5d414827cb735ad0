//go:build tinygo

package core

import "sync/atomic"

// getSystemTicks returns the current system ticks.
// The tick value may be written from the timer interrupt.
func getSystemTicks() uint32 {
	return atomic.LoadUint32(&systemTicks)
}

// setSystemTicks sets the system ticks
func setSystemTicks(ticks uint32) {
	atomic.StoreUint32(&systemTicks, ticks)
}
