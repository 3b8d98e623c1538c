package protocol

import (
	"hash/crc32"

	"github.com/sigurn/crc8"
)

// CRC8Params is the reflected CRC-8 the receiver checks codewords against:
// polynomial 0x07 (0xE0 reflected), init 0xFF, reflected in and out, final
// complement.
var CRC8Params = crc8.Params{
	Poly:   0x07,
	Init:   0xFF,
	RefIn:  true,
	RefOut: true,
	XorOut: 0xFF,
	Check:  0x2F,
	Name:   "CRC-8/BEACON",
}

var crc8Table = crc8.MakeTable(CRC8Params)

// CRC8 returns the integrity tag appended to every payload.
func CRC8(data []byte) uint8 {
	return crc8.Checksum(data, crc8Table)
}

// CRC32 is the standard reflected CRC-32 (0xEDB88320, init and final
// complement), used to derive the beacon identity.
func CRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
