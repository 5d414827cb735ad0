// Package quadrature exposes an incremental encoder position as a
// count-reading peripheral.
package quadrature

import "tinygo.org/x/drivers/encoders"

// Positioner is any accumulating position source
type Positioner interface {
	Position() int
}

var _ Positioner = (*encoders.QuadratureDevice)(nil)

// Gear describes the output shaft: encoder counts per revolution.
// Implementations are zero-size types; their zero value is used.
type Gear interface {
	CountsPerRev() int
}

// Revolutions of the output shaft
type Revolutions float64

// Encoder reads Source through gear G.
type Encoder[G Gear] struct {
	Source Positioner
}

// New wraps a position source
func New[G Gear](src Positioner) *Encoder[G] {
	return &Encoder[G]{Source: src}
}

// TryReadRaw returns the current position. It never fails.
func (e *Encoder[G]) TryReadRaw() (int, error) {
	return e.Source.Position(), nil
}

// RawToMeasure converts a position to output shaft revolutions through G.
func (e *Encoder[G]) RawToMeasure(raw int) Revolutions {
	var gear G
	return Revolutions(float64(raw) / float64(gear.CountsPerRev()))
}
