package protocol

// CRC16 calculates the checksum carried in every message trailer.
// This is CRC-16/MCRF4XX (init 0xFFFF, reflected), as used by Klipper.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b ^= uint8(crc)
		b ^= b << 4
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
