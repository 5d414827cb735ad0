// Package core defines the capability contracts for reading time-like and
// count-like peripherals.
//
// A peripheral implements TimeCount (a raw tick read plus a TickScale type)
// or Counter (a raw count read plus a conversion). TryNow and TryRead turn
// the raw sample into a measurement. Both are instantiated at compile time
// and never allocate, so the package is usable from TinyGo firmware.
package core
