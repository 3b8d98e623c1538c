package protocol

import "math/bits"

// Symbol is one BPSK phase as a byte pattern for the serial line. Shifting the
// pattern out at the bit clock produces a square tone whose phase carries the
// bit.
type Symbol byte

const (
	SymbolMinus Symbol = 0xAA // -1+0j
	SymbolPlus  Symbol = 0x55 // +1+0j
)

func (s Symbol) String() string {
	switch s {
	case SymbolPlus:
		return "+"
	case SymbolMinus:
		return "-"
	default:
		return "?"
	}
}

// symbolFor maps the parity of reg&poly to a symbol.
func symbolFor(reg, poly uint32) Symbol {
	if bits.OnesCount32(reg&poly)&1 == 1 {
		return SymbolPlus
	}
	return SymbolMinus
}

// EncodeWord runs the rate-1/2 convolutional encoder over the codeword, MSB
// first, then shifts in FlushBits zeros so the last data bits are fully
// protected. Output symbols alternate polyA, polyB.
func EncodeWord(dst *[CodewordSize]Symbol, codeword uint32) {
	var reg uint32
	n := 0
	for i := CodewordBits - 1; i >= 0; i-- {
		reg = reg<<1 | (codeword>>uint(i))&1
		dst[n] = symbolFor(reg, PolyA)
		dst[n+1] = symbolFor(reg, PolyB)
		n += 2
	}
	for i := 0; i < FlushBits; i++ {
		reg <<= 1
		dst[n] = symbolFor(reg, PolyA)
		dst[n+1] = symbolFor(reg, PolyB)
		n += 2
	}
}
