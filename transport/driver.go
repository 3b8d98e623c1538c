package transport

import "github.com/ystepanoff/bpskbeacon/protocol"

// PhysicalLayer shifts symbols out of a serial interface at the bit clock.
type PhysicalLayer interface {
	// SendUnit enqueues one unit. Callers check IsReady first.
	SendUnit(b byte)
	// IsReady reports whether another unit may be enqueued.
	IsReady() bool
	// IsBusy reports whether enqueued units are still being shifted out.
	IsBusy() bool
}

// TickSource is the free-running 16-bit hardware counter and its overflow
// interrupt.
type TickSource interface {
	ReadCounter() uint16
	// OnOverflow registers the handler run once per counter wrap.
	OnOverflow(handler func())
}

// InterruptGate masks the tick interrupt. An overflow that happens while
// suppressed is delivered on Release, never dropped.
type InterruptGate interface {
	Suppress()
	Release()
}

// Indicator is the heartbeat LED.
type Indicator interface {
	Set(on bool)
}

// BeaconDriver is the interface that wraps the hardware a beacon runs on.
type BeaconDriver interface {
	PhysicalLayer
	TickSource
	InterruptGate
	Indicator
	UniqueID() protocol.UID
}
