// Package as5600 reads the ams AS5600 magnetic rotary position sensor as a
// count-reading peripheral: the 12-bit RAW_ANGLE register is the raw count.
package as5600

import (
	"encoding/binary"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/as560x"
)

// CountsPerRev is the resolution of RAW_ANGLE
const CountsPerRev = 4096

// Milliradians is a shaft angle in thousandths of a radian
type Milliradians int32

// Device is an AS5600 on an I2C bus.
type Device struct {
	bus     drivers.I2C
	Address uint8

	reg [1]byte
	buf [2]byte
}

// New returns a device at the default address (0x36)
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: as560x.DefaultAddress,
	}
}

// TryReadRaw reads RAW_ANGLE (0-4095). Bus errors are returned as-is.
func (d *Device) TryReadRaw() (uint16, error) {
	if err := d.read(as560x.RAW_ANGLE, d.buf[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(d.buf[:2]) & 0x0FFF, nil
}

// RawToMeasure converts a RAW_ANGLE count to milliradians, rounded.
func (d *Device) RawToMeasure(raw uint16) Milliradians {
	// 2*pi*1000 scaled by 1e6 keeps the math in integers
	const mradPerRevE6 = 6283185307
	const den = CountsPerRev * 1000000
	return Milliradians((int64(raw)*mradPerRevE6 + den/2) / den)
}

// MagnetDetected reports the STATUS MD bit.
func (d *Device) MagnetDetected() (bool, error) {
	if err := d.read(as560x.STATUS, d.buf[:1]); err != nil {
		return false, err
	}
	return d.buf[0]&as560x.STATUS_MD != 0, nil
}

func (d *Device) read(reg uint8, buf []byte) error {
	d.reg[0] = reg
	return d.bus.Tx(uint16(d.Address), d.reg[:], buf)
}
