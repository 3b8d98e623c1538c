package transport

import "sync/atomic"

// Epoch counts full wraps of the hardware tick counter. Tick is the only
// writer and runs from the overflow interrupt; the scheduler only loads.
type Epoch struct {
	v atomic.Uint32
}

// Tick is the periodic overflow callback.
func (e *Epoch) Tick() { e.v.Add(1) }

// Load returns the current epoch, wrapped to 16 bits.
func (e *Epoch) Load() uint16 { return uint16(e.v.Load()) }

// Store sets the epoch. Only for start-up and tests.
func (e *Epoch) Store(v uint16) { e.v.Store(uint32(v)) }
