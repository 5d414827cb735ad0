//go:build !tinygo

package core

// Host builds have no timer interrupt; tests drive the counter with SetTime.

func getSystemTicks() uint32 {
	return systemTicks
}

func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}
