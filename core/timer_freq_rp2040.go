//go:build rp2040

package core

// TimerFreq matches the RP2040 1MHz hardware timer that feeds SetTime.
const TimerFreq = 1000000
