//go:build !rp2040

package core

// TimerFreq is the rate at which target code advances the system tick
// counter.
const TimerFreq = 12000000 // 12MHz default timer frequency
