package mcu

import (
	"fmt"

	"tickcount/core"
	"tickcount/protocol"
)

// Gearing converts pulses into units; the zero value of a Gearing type is
// used, so ratios are fixed per type.
type Gearing interface {
	PulsesPerUnit() float64
}

// Pulses reports raw pulses as the measurement
type Pulses struct{}

// PulsesPerUnit implements Gearing.
func (Pulses) PulsesPerUnit() float64 { return 1 }

// Counter is a pulse counter configured on a serial-attached MCU under oid.
type Counter[G Gearing] struct {
	session *Session
	ids     CommandIDs
	oid     uint8
}

// NewCounter returns the counter registered as oid on the MCU
func NewCounter[G Gearing](session *Session, ids CommandIDs, oid uint8) *Counter[G] {
	return &Counter[G]{session: session, ids: ids, oid: oid}
}

// TryReadRaw sends get_counter and returns the count from the reply.
func (c *Counter[G]) TryReadRaw() (uint32, error) {
	payload, err := c.session.Query(c.ids.GetCounter, func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, uint32(c.oid))
	}, c.ids.Counter)
	if err != nil {
		return 0, err
	}

	oid, err := protocol.DecodeVLQUint(&payload)
	if err != nil {
		return 0, fmt.Errorf("mcu: decode counter oid: %w", err)
	}
	if oid != uint32(c.oid) {
		return 0, fmt.Errorf("%w: counter oid %d, expected %d", ErrUnexpectedResponse, oid, c.oid)
	}
	count, err := protocol.DecodeVLQUint(&payload)
	if err != nil {
		return 0, fmt.Errorf("mcu: decode count: %w", err)
	}
	return count, nil
}

// RawToMeasure divides the pulse count by the gearing ratio.
func (c *Counter[G]) RawToMeasure(raw uint32) float64 {
	var g G
	return float64(raw) / g.PulsesPerUnit()
}

// TryRead returns the count in units of G.
func (c *Counter[G]) TryRead() (float64, error) {
	return core.TryRead[uint32, float64](c)
}
