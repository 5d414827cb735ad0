//go:build rp2040

package main

import (
	"runtime/volatile"
	"time"
	"unsafe"

	"tickcount/core"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // Raw timer high word
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// HardwareTimer is the free-running 64-bit 1MHz timer.
type HardwareTimer struct{}

// TryNowRaw returns a consistent 64-bit snapshot of the timer. The raw
// registers are unlatched, so high is read on both sides of low and the
// read retried if it changed.
func (HardwareTimer) TryNowRaw() (uint64, error) {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low), nil
		}
	}
}

// TryNow returns the time since boot.
func (t HardwareTimer) TryNow() (time.Duration, error) {
	return core.TryNow[Microseconds, uint64, time.Duration](t)
}

// Microseconds scales HardwareTimer ticks
type Microseconds struct{}

// Mul implements core.TickScale.
func (Microseconds) Mul(ticks uint64) time.Duration {
	return time.Duration(ticks) * time.Microsecond
}

// UpdateSystemTime copies the low timer word into the core tick counter.
// Called from the main loop.
func UpdateSystemTime() {
	core.SetTime(timerRAWL.Get())
}
