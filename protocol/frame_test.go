package protocol

import (
	"strings"
	"testing"
)

const preambleString = "+++++--++-+-+---"

func TestMessageLayout(t *testing.T) {
	if MessageSize != 104 {
		t.Fatalf("MessageSize = %d, want 104", MessageSize)
	}
	if CodewordOffset != 20 || TrailerOffset != 100 {
		t.Fatalf("offsets = %d/%d, want 20/100", CodewordOffset, TrailerOffset)
	}
	if got := SymbolString(Preamble[:]); got != preambleString {
		t.Errorf("Preamble = %s, want %s", got, preambleString)
	}
}

func TestMessageFraming(t *testing.T) {
	codewords := []uint32{0, 0xFFFFFFFF, 0x57BDD5C6, 0xA3123475}

	for _, cw := range codewords {
		m := NewMessage()
		m.SetCodeword(cw)
		b := m.Bytes()

		for i := 0; i < TrainingSize; i++ {
			if b[TrainingOffset+i] != byte(SymbolMinus) {
				t.Errorf("codeword %#08x: training[%d] = %#02x", cw, i, b[TrainingOffset+i])
			}
		}
		for i := 0; i < TrailerSize; i++ {
			if b[TrailerOffset+i] != byte(SymbolMinus) {
				t.Errorf("codeword %#08x: trailer[%d] = %#02x", cw, i, b[TrailerOffset+i])
			}
		}
		for i, s := range Preamble {
			if b[PreambleOffset+i] != byte(s) {
				t.Errorf("codeword %#08x: preamble[%d] = %#02x, want %#02x", cw, i, b[PreambleOffset+i], byte(s))
			}
		}

		var want [CodewordSize]Symbol
		EncodeWord(&want, cw)
		for i, s := range want {
			if b[CodewordOffset+i] != byte(s) {
				t.Fatalf("codeword %#08x: symbol %d = %#02x, want %#02x", cw, i, b[CodewordOffset+i], byte(s))
			}
		}
	}
}

func TestMessageRegionsIndependent(t *testing.T) {
	m := &Message{}
	m.SetCodeword(0x57BDD5C6)
	before := m.Codeword

	m.Frame()
	if m.Codeword != before {
		t.Error("Frame() modified the codeword region")
	}

	m.SetCodeword(0xA3123475)
	if m.Preamble != Preamble {
		t.Error("SetCodeword() modified the preamble")
	}
	if m.Training != [TrainingSize]Symbol{SymbolMinus, SymbolMinus, SymbolMinus, SymbolMinus} {
		t.Error("SetCodeword() modified the training sequence")
	}
}

func TestNewMessageIsSendable(t *testing.T) {
	b := NewMessage().Bytes()
	for i, v := range b {
		if v != byte(SymbolMinus) && v != byte(SymbolPlus) {
			t.Fatalf("byte %d = %#02x, not a symbol", i, v)
		}
	}
}

func TestMessageString(t *testing.T) {
	m := NewMessage()
	m.SetCodeword(0x57BDD5C6)
	parts := strings.Split(m.String(), " ")
	if len(parts) != 4 {
		t.Fatalf("String() has %d regions, want 4", len(parts))
	}
	if parts[0] != "----" || parts[1] != preambleString || parts[3] != "----" {
		t.Errorf("String() = %q", m.String())
	}
	if parts[2] != encodeString(0x57BDD5C6) {
		t.Errorf("codeword region = %s", parts[2])
	}
}
