package protocol

import "strings"

// Message represents one beacon transmission as shifted out by the PHY.
// Layout: Training(4) | Preamble(16) | Codeword(80) | Trailer(4), 104 symbols.
// Training and trailer are all SymbolMinus; the preamble is Barker-13
// followed by three minus symbols.
type Message struct {
	Training [TrainingSize]Symbol
	Preamble [PreambleSize]Symbol
	Codeword [CodewordSize]Symbol
	Trailer  [TrailerSize]Symbol
}

// Preamble is the fixed synchronisation pattern a receiver correlates
// against for frame and phase acquisition.
var Preamble = [PreambleSize]Symbol{
	SymbolPlus, SymbolPlus, SymbolPlus, SymbolPlus, SymbolPlus, // b15..b11
	SymbolMinus, SymbolMinus, // b10..b09
	SymbolPlus, SymbolPlus, // b08..b07
	SymbolMinus, SymbolPlus, SymbolMinus, SymbolPlus, // b06..b03
	SymbolMinus, SymbolMinus, SymbolMinus, // b02..b00
}

// NewMessage returns a message with its constant regions framed and an
// all-minus codeword region.
func NewMessage() *Message {
	m := &Message{}
	m.Frame()
	for i := range m.Codeword {
		m.Codeword[i] = SymbolMinus
	}
	return m
}

// Frame writes the training, preamble and trailer regions. The codeword
// region is left untouched.
func (m *Message) Frame() {
	for i := range m.Training {
		m.Training[i] = SymbolMinus
	}
	m.Preamble = Preamble
	for i := range m.Trailer {
		m.Trailer[i] = SymbolMinus
	}
}

// SetCodeword FEC-encodes the codeword into the codeword region. The constant
// regions are left untouched.
func (m *Message) SetCodeword(codeword uint32) {
	EncodeWord(&m.Codeword, codeword)
}

// Bytes returns the message in wire order.
func (m *Message) Bytes() [MessageSize]byte {
	var out [MessageSize]byte
	n := 0
	for _, region := range [][]Symbol{m.Training[:], m.Preamble[:], m.Codeword[:], m.Trailer[:]} {
		for _, s := range region {
			out[n] = byte(s)
			n++
		}
	}
	return out
}

// String renders the message as +/- symbols with the regions separated by
// spaces.
func (m *Message) String() string {
	var b strings.Builder
	b.Grow(MessageSize + 3)
	for i, region := range [][]Symbol{m.Training[:], m.Preamble[:], m.Codeword[:], m.Trailer[:]} {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(SymbolString(region))
	}
	return b.String()
}

// SymbolString renders symbols as a +/- string.
func SymbolString(symbols []Symbol) string {
	var b strings.Builder
	b.Grow(len(symbols))
	for _, s := range symbols {
		b.WriteString(s.String())
	}
	return b.String()
}
